package query

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/expr-lang/expr"

	"github.com/ardnew/litcfg/lang"
	"github.com/ardnew/litcfg/log"
	"github.com/ardnew/litcfg/pkg"
	"github.com/ardnew/litcfg/value"
)

// ErrQuery is returned when an expression fails to compile or run.
var ErrQuery = pkg.NewError("query failed")

// Env returns the expression environment for ns: every top-level name
// bound to its plain Go value, with blocks as nested maps.
func Env(ns *value.Namespace) map[string]any {
	env, _ := value.Native(ns).(map[string]any)
	if env == nil {
		env = map[string]any{}
	}

	return env
}

// Eval compiles src against the names bound in ns and runs it. Values are
// the plain Go forms of [value.Native]; the result is whatever the
// expression yields.
func Eval(ctx context.Context, ns *value.Namespace, src string) (any, error) {
	env := Env(ns)

	program, err := expr.Compile(src, expr.Env(env))
	if err != nil {
		return nil, ErrQuery.Wrap(err).With(slog.String("expr", src))
	}

	out, err := expr.Run(program, env)
	if err != nil {
		return nil, ErrQuery.Wrap(err).With(slog.String("expr", src))
	}

	log.TraceContext(ctx, "query evaluated",
		slog.String("expr", src),
		slog.Any("result", out))

	return out, nil
}

// Text spells an expression result as a dialect literal. Booleans, which
// the dialect lacks, spell as true or false. A result with no literal
// spelling, such as nil, fails with [pkg.ErrUnrepresentable].
func Text(result any) (string, error) {
	if b, ok := result.(bool); ok {
		return strconv.FormatBool(b), nil
	}

	v, err := value.FromNative(result)
	if err != nil {
		return "", pkg.WrapError(err).With(slog.String("type", fmt.Sprintf("%T", result)))
	}

	return lang.Literal(v)
}
