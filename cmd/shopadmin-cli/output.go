package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	apperrors "github.com/target/shop-admin/internal/errors"
	"github.com/target/shop-admin/internal/service"
	"github.com/target/shop-admin/internal/table"
	"github.com/target/shop-admin/internal/ui"
)

var (
	headerColor = color.New(color.FgCyan, color.Bold)
	okColor     = color.New(color.FgGreen)
	warnColor   = color.New(color.FgYellow)
	errColor    = color.New(color.FgRed, color.Bold)
	dimColor    = color.New(color.FgHiBlack)
)

// writef ignores write errors; a broken stdout pipe leaves nothing to report to.
func writef(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}

// printStatus writes the toast a command left as its closing status line.
func printStatus(w io.Writer, t ui.Toast) {
	if !t.Open {
		return
	}
	glyph, c := "•", dimColor
	switch t.Severity {
	case ui.SeveritySuccess:
		glyph, c = "✓", okColor
	case ui.SeverityWarning:
		glyph, c = "!", warnColor
	case ui.SeverityError:
		glyph, c = "✗", errColor
	}
	_, _ = c.Fprint(w, glyph+" ")
	writef(w, "%s\n", t.Message)
}

func errorf(w io.Writer, format string, args ...any) {
	_, _ = errColor.Fprint(w, "✗ ")
	writef(w, format, args...)
}

// describeError prefers the message the shop API sent.
func describeError(err error) string {
	switch {
	case errors.Is(err, errNotLoggedIn):
		return err.Error()
	case errors.Is(err, service.ErrSessionExpired):
		return "session expired; run shopadmin-cli login"
	case errors.Is(err, errUsage):
		return strings.TrimPrefix(err.Error(), errUsage.Error()+": ")
	}
	if msg := apperrors.UserMessage(err); msg != "" && msg != apperrors.FallbackMessage {
		return msg
	}
	return err.Error()
}

// renderTable prints one page of v with its pager line.
func renderTable[T any](w io.Writer, v table.View[T], cols []table.Column[T], cell func(T, string) string) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	labels := make([]string, 0, len(v.Headers))
	for _, h := range v.Headers {
		label := h.Label
		if h.Active {
			if h.Order == table.Desc {
				label += " ↓"
			} else {
				label += " ↑"
			}
		}
		labels = append(labels, headerColor.Sprint(label))
	}
	writef(tw, "%s\n", strings.Join(labels, "\t"))

	if v.Empty {
		_ = tw.Flush()
		_, _ = warnColor.Fprintln(w, v.EmptyMessage)
		return
	}

	for _, row := range v.Rows {
		cells := make([]string, 0, len(cols))
		for _, c := range cols {
			cells = append(cells, cell(row, c.ID))
		}
		writef(tw, "%s\n", strings.Join(cells, "\t"))
	}
	_ = tw.Flush()

	size := "all"
	if v.Page.Size != table.All {
		size = fmt.Sprint(v.Page.Size)
	}
	_, _ = dimColor.Fprintf(w, "page %d/%d · %d rows · size %s\n", v.Page.Page+1, v.PageCount, v.Total, size)
}
