package app

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize/english"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"immich-stacker/internal/stacker"
)

// reporter writes run output for the operator. Plans render as tables on a
// terminal and as plain lines when output is redirected.
type reporter struct {
	out   io.Writer
	table bool
}

func newReporter(out io.Writer) *reporter {
	return &reporter{out: out, table: isTerminal(out)}
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// plan writes the planned stacks for one scope. Scopes without requests stay
// silent; skips are logged rather than printed.
func (r *reporter) plan(scope string, plan stacker.Plan) {
	if len(plan.Requests) == 0 {
		return
	}
	if r.table {
		fmt.Fprintln(r.out, planTable(scope, plan))
		return
	}
	for _, req := range plan.Requests {
		names := make([]string, 0, len(req.Assets))
		for _, md := range req.Assets {
			names = append(names, md.DisplayName())
		}
		fmt.Fprintf(r.out, "%s: %s\n", scope, strings.Join(names, " + "))
	}
}

func planTable(scope string, plan stacker.Plan) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.SetTitle("%s", scope)
	tw.AppendHeader(table.Row{"Key", "Primary", "Assets"})
	for _, req := range plan.Requests {
		tw.AppendRow(table.Row{req.Key, req.Primary.DisplayName(), len(req.Assets)})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}

// summary writes the cumulative totals of a run.
func (r *reporter) summary(s Summary, submitted bool) {
	fmt.Fprintf(r.out, "planned %s in %s, skipped %s\n",
		english.Plural(s.Planned, "stack", ""),
		english.Plural(s.Scopes, "scope", ""),
		english.Plural(s.Skipped, "group", ""))
	if submitted {
		fmt.Fprintf(r.out, "created %s covering %s\n",
			english.Plural(s.Created, "stack", ""),
			english.Plural(s.AssetsStacked, "asset", ""))
	}
	if s.ScopesFailed > 0 {
		fmt.Fprintf(r.out, "%s failed\n", english.Plural(s.ScopesFailed, "scope", ""))
	}
}
