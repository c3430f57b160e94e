package repl

import (
	"maps"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/expr-lang/expr/builtin"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/litcfg/value"
)

// commands are the names accepted after the command prefix.
//
//nolint:gochecknoglobals
var commands = []string{"clear", "help", "list", "quit"}

// commandPrefix starts a line that is a REPL command, not an expression.
const commandPrefix = ":"

// isWordBoundary reports whether r delimits words for completion: spaces,
// the member-access dot, and expression operators and punctuation.
func isWordBoundary(r rune) bool {
	switch r {
	case '.', ' ', '\t',
		'(', ')', '[', ']', '{', '}',
		'+', '-', '*', '/', '%', '^',
		'<', '>', '=', '!',
		'&', '|', ',', '?', ':', ';',
		'\'', '"':
		return true
	}

	return false
}

// wordBounds returns the word at cursor and its byte boundaries within
// input. The word is empty when the cursor sits on a boundary.
func wordBounds(input string, cursor int) (word string, start, end int) {
	cursor = min(cursor, len(input))

	start = cursor

	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if isWordBoundary(r) {
			break
		}

		start -= size
	}

	end = cursor

	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if isWordBoundary(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// parentPath returns the member-access chain leading up to the word that
// starts at wordStart. For "x + server.http.ho" and the word "ho", it is
// "server.http". Top-level words have no parent.
func parentPath(input string, wordStart int) string {
	prefix := input[:wordStart]
	if !strings.HasSuffix(prefix, ".") {
		return ""
	}

	prefix = strings.TrimRight(prefix, ".")
	pos := len(prefix)

	for pos > 0 {
		r, size := utf8.DecodeLastRuneInString(prefix[:pos])
		if r != '.' && isWordBoundary(r) {
			break
		}

		pos -= size
	}

	return prefix[pos:]
}

// candidates returns the names that complete a word below parent: the
// top-level names and expression builtins for an empty parent, otherwise
// the names bound in the block or string-keyed dict at parent.
func candidates(ns *value.Namespace, parent string) []string {
	if parent == "" {
		return append(ns.Names(), slices.Sorted(maps.Keys(builtin.Index))...)
	}

	v, ok := ns.Lookup(strings.Split(parent, ".")...)
	if !ok {
		return nil
	}

	switch x := v.(type) {
	case *value.Namespace:
		return x.Names()

	case *value.Dict:
		var names []string

		for k := range x.All() {
			if s, ok := k.(value.String); ok {
				names = append(names, string(s))
			}
		}

		return names
	}

	return nil
}

// isFunction reports whether name is an expression builtin.
func isFunction(name string) bool {
	_, ok := builtin.Index[name]

	return ok
}

// computeMatches ranks the completions for the word at the cursor. After
// a dot, an empty word matches every member. An empty top-level word
// matches nothing so the hint stays visible.
func (m model) computeMatches() (matches fuzzy.Matches, wordStart, wordEnd int) {
	input := m.input.Value()

	word, wordStart, wordEnd := wordBounds(input, m.input.Position())

	var names []string

	if rest, ok := strings.CutPrefix(input, commandPrefix); ok {
		if strings.ContainsAny(rest, " \t") || wordStart != len(commandPrefix) {
			return nil, wordStart, wordEnd
		}

		names = commands
	} else {
		parent := parentPath(input, wordStart)
		names = candidates(m.ns, parent)

		if word == "" {
			if parent == "" {
				return nil, wordStart, wordEnd
			}

			matches = make(fuzzy.Matches, len(names))
			for i, name := range names {
				matches[i] = fuzzy.Match{Str: name, Index: i}
			}

			return matches, wordStart, wordEnd
		}
	}

	return fuzzy.Find(word, names), wordStart, wordEnd
}

// renderCandidateBar builds the single-line completion bar, ellipsized to
// fit width. The selected candidate uses the selected style while tabbing.
func renderCandidateBar(matches fuzzy.Matches, selected int, tabbing bool, width int) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	ellipsis := hintStyle.Render("...")
	reserve := lipgloss.Width(sep) + lipgloss.Width(ellipsis)

	var b strings.Builder

	used := 0

	for i, match := range matches {
		rendered := renderCandidate(match, tabbing && i == selected)

		w := lipgloss.Width(rendered)
		if i > 0 {
			w += lipgloss.Width(sep)
		}

		last := i == len(matches)-1
		if i > 0 && used+w > width-reserve && !(last && used+w <= width) {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += w
	}

	return b.String()
}

// renderCandidate renders one candidate with its matched characters
// highlighted. Builtins carry a "()" suffix that completion does not
// insert.
func renderCandidate(match fuzzy.Match, selected bool) string {
	base, highlight := suggestionStyle, matchStyle
	if selected {
		base, highlight = selectedStyle, selectedMatchStyle
	}

	var b strings.Builder

	for i, r := range match.Str {
		if slices.Contains(match.MatchedIndexes, i) {
			b.WriteString(highlight.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}

	if isFunction(match.Str) {
		b.WriteString(base.Render("()"))
	}

	return b.String()
}
