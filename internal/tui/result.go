// Package tui renders qubocraft search results as terminal tables.
package tui

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/rbscholtus/qubocraft/internal/tabu"
	"github.com/rbscholtus/qubocraft/internal/tabuutil"
)

// RenderResult prints a single search outcome as a key/value table.
func RenderResult(w io.Writer, name string, res tabu.SearchResult, elapsed time.Duration) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(EmptyStyle())
	tw.Style().Title.Align = text.AlignLeft
	tw.SetTitle(fmt.Sprintf("Search Result - %s", name))

	tw.AppendRow(table.Row{"Variables", Comma(len(res.BestAssignment))})
	tw.AppendRow(table.Row{"Energy", Energy(res.BestEnergy)})
	tw.AppendRow(table.Row{"Restarts", Comma(res.Restarts)})
	tw.AppendRow(table.Row{"Elapsed", Elapsed(elapsed)})
	tw.AppendRow(table.Row{"Assignment", Bits(res.BestAssignment)})

	tw.Render()
}

// SessionRow is one line of a comparison table: a labelled solver run
// and its outcome. Restarts is negative for solvers that have no
// notion of a restart.
type SessionRow struct {
	Label    string
	Energy   float64
	Restarts int
	Elapsed  time.Duration
}

// RenderComparison prints solver runs side by side, best energy first.
// The winning energy is highlighted green.
func RenderComparison(w io.Writer, title string, rows []SessionRow) {
	sorted := append([]SessionRow(nil), rows...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Energy < sorted[j].Energy
	})

	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(CompactRounded())
	tw.Style().Title.Align = text.AlignLeft
	tw.SetTitle(title)

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Name: "#", Align: text.AlignRight},
		{Name: "Run", Align: text.AlignLeft},
		{Name: "Energy", Align: text.AlignRight, AlignHeader: text.AlignRight},
		{Name: "Restarts", Align: text.AlignRight, AlignHeader: text.AlignRight},
		{Name: "Time", Align: text.AlignRight, AlignHeader: text.AlignRight},
	})
	tw.AppendHeader(table.Row{"#", "Run", "Energy", "Restarts", "Time"})

	for i, row := range sorted {
		energy := Energy(row.Energy)
		energy = tabuutil.IfThen(i == 0 && len(sorted) > 1, text.FgGreen.Sprint(energy), energy)
		restarts := "-"
		if row.Restarts >= 0 {
			restarts = Comma(row.Restarts)
		}
		tw.AppendRow(table.Row{i + 1, row.Label, energy, restarts, Elapsed(row.Elapsed)})
	}

	tw.Render()
}
