package formatting

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"alertstate/internal/reconciler"
	pkgstrings "alertstate/pkg/strings"
)

// TableFormatter provides rich table output formatting
type TableFormatter struct {
	options Options
}

// FormatPlan renders one row per action followed by a summary line.
func (f *TableFormatter) FormatPlan(w io.Writer, plan reconciler.Plan) error {
	if plan.Empty() {
		_, err := fmt.Fprintln(w, f.paint(text.FgGreen, fmt.Sprintf(
			"No changes. %d declared monitors match the remote ones for project %s.", len(plan.Declared), plan.Project)))
		return err
	}

	t := f.createTable(w)
	t.AppendHeader(table.Row{"#", "ACTION", "MONITOR", "REMOTE ID", "CHANGES"})

	for i, a := range plan.Actions {
		remoteID := "-"
		if a.Kind != reconciler.ActionCreate {
			remoteID = fmt.Sprintf("%d", a.RemoteID)
		}
		changes := "-"
		if len(a.Changes) > 0 {
			changes = strings.Join(a.Changes, ", ")
		}
		t.AppendRow(table.Row{i + 1, f.action(a.Kind), pkgstrings.Truncate(a.Name, pkgstrings.DefaultCellMaxLen), remoteID, changes})
	}

	t.Render()

	if _, err := fmt.Fprintf(w, "Plan: %d to create, %d to update, %d to delete.\n",
		plan.Count(reconciler.ActionCreate),
		plan.Count(reconciler.ActionUpdate),
		plan.Count(reconciler.ActionDelete)); err != nil {
		return err
	}

	if f.options.Details {
		return f.writeDetails(w, plan)
	}
	return nil
}

// writeDetails prints the diff of every update and the payload of every create.
func (f *TableFormatter) writeDetails(w io.Writer, plan reconciler.Plan) error {
	for _, a := range plan.Actions {
		var body string
		switch a.Kind {
		case reconciler.ActionCreate:
			body = PrettyJSON(a.Record)
		case reconciler.ActionUpdate:
			body = strings.TrimRight(a.Diff, "\n")
		default:
			continue
		}
		if _, err := fmt.Fprintf(w, "\n%s %s\n%s\n", f.action(a.Kind), a.Name, body); err != nil {
			return err
		}
	}
	return nil
}

// createTable creates a new table with standard styling
func (f *TableFormatter) createTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	return t
}

func (f *TableFormatter) action(kind reconciler.ActionKind) string {
	switch kind {
	case reconciler.ActionCreate:
		return f.paint(text.FgGreen, string(kind))
	case reconciler.ActionUpdate:
		return f.paint(text.FgYellow, string(kind))
	case reconciler.ActionDelete:
		return f.paint(text.FgRed, string(kind))
	default:
		return string(kind)
	}
}

func (f *TableFormatter) paint(color text.Color, s string) string {
	if !f.options.Color {
		return s
	}
	return color.Sprint(s)
}
