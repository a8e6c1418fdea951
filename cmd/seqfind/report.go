package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/fatih/color"

	"sequincore/internal/core"
	"sequincore/internal/findrepl"
)

var (
	changedColor = color.New(color.FgGreen, color.Bold)
	foundColor   = color.New(color.FgCyan)
	warnColor    = color.New(color.FgYellow)
	blockColor   = color.New(color.FgRed, color.Bold)
)

func printf(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}

// printSummary writes one line per touched item followed by the totals.
func printSummary(w io.Writer, s findrepl.Summary, replaced bool) {
	for _, item := range s.Items {
		status := foundColor.Sprint("found")
		if item.Changed {
			status = changedColor.Sprint("changed")
		}
		printf(w, "%-10s %4d  %-8s %s\n", item.Kind, item.ID, status, item.Label)
	}
	if replaced {
		printf(w, "%d items matched, %d changed", s.Found, s.Changed)
	} else {
		printf(w, "%d items matched", s.Found)
	}
	if s.FailedFields > 0 {
		printf(w, ", %s", warnColor.Sprintf("%d fields left unchanged", s.FailedFields))
	}
	printf(w, "\n")
}

func (a *app) printViolations(res core.Result) {
	for _, v := range res.Violations {
		c := warnColor
		if v.Severity == core.SeverityBlock {
			c = blockColor
		}
		printf(a.errOut, "%s %s: %s\n", c.Sprintf("[%s]", v.Severity), v.Rule, v.Message)
	}
}

// logListener reports session notifications at debug level.
type logListener struct {
	l *log.Logger
}

func (ll logListener) MarkDirty(item findrepl.Item) {
	ll.l.Debug("dirty", "kind", item.Kind, "id", item.ID, "label", item.Label)
}

func (ll logListener) Select(item findrepl.Item) {
	ll.l.Debug("selected", "kind", item.Kind, "id", item.ID, "label", item.Label)
}
