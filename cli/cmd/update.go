package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/ardnew/litcfg/config"
	"github.com/ardnew/litcfg/format"
	"github.com/ardnew/litcfg/lang"
	"github.com/ardnew/litcfg/log"
	"github.com/ardnew/litcfg/schema"
	"github.com/ardnew/litcfg/value"
)

// Update adds the fields a template declares but a configuration file
// lacks. The template's values are the defaults of the added fields.
type Update struct {
	File     string `arg:""                 help:"Configuration file to update; created if absent." name:"file"`
	Template string `help:"File declaring every field and its default."          required:""         short:"t" type:"existingfile"`
	Format   string `default:"" enum:",${formats}" help:"Format of FILE (default: by extension)." short:"f"`
	DryRun   bool   `help:"Print a diff instead of writing."                                          short:"n"`
}

// Run executes the update command.
func (u *Update) Run(ctx context.Context) error {
	tmpl, err := config.Read(ctx, u.Template, config.WithLogger(log.Default()))
	if err != nil {
		return fail(err, "update", slog.String("template", u.Template))
	}

	node, err := schema.FromNamespace(tmpl)
	if err != nil {
		return fail(err, "update", slog.String("template", u.Template))
	}

	opts := []config.Option{
		config.WithLogger(log.Default()),
		config.WithDryRun(u.DryRun),
	}

	if u.Format != "" {
		f, err := format.ByName(u.Format)
		if err != nil {
			return fail(err, "update")
		}

		opts = append(opts, config.WithFormat(f))
	}

	change, err := config.Update(ctx, u.File, node, opts...)
	if err != nil {
		return fail(err, "update", slog.String("file", u.File))
	}

	if u.DryRun {
		err = writeDiff(stdout(ctx), change)
	} else {
		err = writeReport(stderr(ctx), change)
	}

	if err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}

// writeDiff writes the lines change removes and adds, prefixed with "-"
// and "+", between unchanged lines prefixed with a space. Nothing is
// written when the text is unchanged.
func writeDiff(w io.Writer, change *config.Change) error {
	if !change.Changed() {
		return nil
	}

	var sb strings.Builder

	fmt.Fprintf(&sb, "--- %s\n+++ %s\n", change.Path, change.Path)

	dmp := diffmatchpatch.New()
	before, after, lines := dmp.DiffLinesToChars(change.Before, change.After)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(before, after, false), lines)

	for _, d := range diffs {
		prefix := " "

		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		case diffmatchpatch.DiffEqual:
		}

		for line := range strings.Lines(d.Text) {
			sb.WriteString(prefix)
			sb.WriteString(line)

			if !strings.HasSuffix(line, "\n") {
				sb.WriteString("\n\\ No newline at end of file\n")
			}
		}
	}

	_, err := io.WriteString(w, sb.String())

	return err
}

// writeReport tells the user which fields were added and that they need
// review. Nothing is written when no field was added.
func writeReport(w io.Writer, change *config.Change) error {
	if change.Missing.Empty() {
		return nil
	}

	r := lipgloss.NewRenderer(w)
	title := r.NewStyle().Bold(true)
	field := r.NewStyle().Foreground(lipgloss.Color("2"))
	hint := r.NewStyle().Faint(true)

	var sb strings.Builder

	noun := "fields"
	if change.Missing.Len() == 1 {
		noun = "field"
	}

	sb.WriteString(title.Render(fmt.Sprintf("Added %d %s to %s:", change.Missing.Len(), noun, change.Path)))
	sb.WriteByte('\n')

	for path, a := range change.Missing.All() {
		name := strings.Join(append(path, a.Name), ".")

		sb.WriteString("  + ")
		sb.WriteString(field.Render(name))
		sb.WriteString(" = ")
		sb.WriteString(additionText(a.Value))
		sb.WriteByte('\n')
	}

	sb.WriteString(hint.Render("Review the added fields and adjust their values."))
	sb.WriteByte('\n')

	_, err := io.WriteString(w, sb.String())

	return err
}

func additionText(v value.Value) string {
	if ns, ok := v.(*value.Namespace); ok {
		return fmt.Sprintf("<block of %d>", ns.Len())
	}

	text, err := lang.Literal(v)
	if err != nil {
		return v.String()
	}

	return text
}
