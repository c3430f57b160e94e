package pkg

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"
	"testing"
)

func TestName(t *testing.T) {
	expected := "litcfg"
	if Name != expected {
		t.Errorf("Expected Name to be %q, got %q", expected, Name)
	}
}

func TestVersion(t *testing.T) {
	// Version is embedded from VERSION file, so it should not be empty.
	buf, err := os.ReadFile("VERSION")
	if err != nil {
		t.Fatalf("Failed to read VERSION file: %v", err)
	}

	if content := strings.TrimSpace(string(buf)); Version != content {
		t.Errorf("Expected Version to be %q, got %q", content, Version)
	}
}

func TestAuthor(t *testing.T) {
	if !slices.ContainsFunc(Author, func(a AuthorInfo) bool {
		return a.Name == "ardnew" && a.Email == "andrew@ardnew.com"
	}) {
		t.Errorf("Expected Author to contain ardnew, got %v", Author)
	}
}

func TestError_IsMatchesSentinelAfterDerivation(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")
	err := ErrSyntax.
		With(slog.String("token", "=")).
		At(Position{Line: 3, Column: 7}).
		Wrap(cause)

	if !errors.Is(err, ErrSyntax) {
		t.Error("derived error does not match its sentinel")
	}

	if !errors.Is(err, cause) {
		t.Error("derived error does not match wrapped cause")
	}

	if errors.Is(err, ErrTooDeep) {
		t.Error("derived error matches an unrelated sentinel")
	}

	want := "syntax error (line 3, column 7): boom"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	if v, ok := err.Attr("token"); !ok || v.String() != "=" {
		t.Errorf("Attr(token) = %v, %v", v, ok)
	}
}

func TestError_KindMatchesParent(t *testing.T) {
	t.Parallel()

	kind := ErrUnsupported.Kind("imports are not supported")
	sub := kind.Kind("relative imports are not supported")
	err := fmt.Errorf("load: %w", sub.At(Position{Line: 1, Column: 1}))

	for _, target := range []error{sub, kind, ErrUnsupported} {
		if !errors.Is(err, target) {
			t.Errorf("expected errors.Is(%v, %v)", err, target)
		}
	}

	if errors.Is(kind, sub) {
		t.Error("parent kind must not match its child")
	}
}

func TestError_LogValue(t *testing.T) {
	t.Parallel()

	err := ErrTooDeep.With(slog.Int("depth", 17)).At(Position{Line: 2, Column: 1})

	got := map[string]string{}
	for _, a := range err.LogValue().Group() {
		got[a.Key] = a.Value.String()
	}

	want := map[string]string{
		"error":  "configuration schema nesting too deep",
		"line":   "2",
		"column": "1",
		"depth":  "17",
	}

	for k, v := range want {
		if got[k] != v {
			t.Errorf("LogValue[%s] = %q, want %q", k, got[k], v)
		}
	}
}

func TestWrapError(t *testing.T) {
	t.Parallel()

	plain := errors.New("plain")
	if w := WrapError(plain); !errors.Is(w, plain) || w.Error() != "plain" {
		t.Errorf("WrapError(plain) = %v", w)
	}

	derived := ErrSyntax.With(slog.String("k", "v"))
	if w := WrapError(fmt.Errorf("ctx: %w", derived)); w != derived {
		t.Errorf("WrapError did not return the embedded *Error")
	}
}
