// Package repl implements the interactive expression prompt of the litcfg
// command.
//
// Each entered line is evaluated over a loaded namespace, and the result is
// printed as a literal. Completion candidates are the names bound at the
// member-access chain under the cursor, ranked by fuzzy match, plus the
// expression builtins at the top level. Lines starting with ":" are REPL
// commands rather than expressions.
//
// Entered lines persist across sessions in a [History] file.
package repl
