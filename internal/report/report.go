// Package report renders fighter profiles, histories, and predictions as
// terminal tables.
package report

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/a-bakhtine/UFC-predictor/internal/model"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))
}

// metricCell formats a Metric, rendering unknown values as "—" so an
// undefined rate is never mistaken for a measured zero.
func metricCell(m model.Metric) string {
	if !m.Known {
		return "—"
	}
	return fmt.Sprintf("%.2f", m.Value)
}

// PrintProfiles prints a fighter's career and recent-form profiles side by side.
func PrintProfiles(w io.Writer, f model.Fighter, career, recent *model.FighterProfile) {
	fmt.Fprintf(w, "\n%s (%s)  —  as of %s  (recent window: last %d)\n\n",
		f.Name, f.ID, career.AsOf.Format("2006-01-02"), recent.Window.N)

	table := newTable(w)
	table.Header("STAT", "CAREER", "RECENT")
	rows := []struct {
		name           string
		career, recent string
	}{
		{"Fights", fmt.Sprintf("%d", career.Fights), fmt.Sprintf("%d", recent.Fights)},
		{"Wins", fmt.Sprintf("%d", career.Wins), fmt.Sprintf("%d", recent.Wins)},
		{"Win rate", metricCell(career.WinRate), metricCell(recent.WinRate)},
		{"Sig. strikes/min", metricCell(career.SigStrikesPerMin), metricCell(recent.SigStrikesPerMin)},
		{"Total strikes/min", metricCell(career.TotalStrikesPerMin), metricCell(recent.TotalStrikesPerMin)},
		{"Sig. strike acc.", metricCell(career.SigStrikeAccuracy), metricCell(recent.SigStrikeAccuracy)},
		{"TD accuracy", metricCell(career.TakedownAccuracy), metricCell(recent.TakedownAccuracy)},
		{"TD / 15min", metricCell(career.TakedownsPer15Min), metricCell(recent.TakedownsPer15Min)},
		{"Sub att. / 15min", metricCell(career.SubAttemptsPer15Min), metricCell(recent.SubAttemptsPer15Min)},
		{"KD / 15min", metricCell(career.KnockdownsPer15Min), metricCell(recent.KnockdownsPer15Min)},
		{"Control ratio", metricCell(career.ControlRatio), metricCell(recent.ControlRatio)},
		{"Strike diff/min", metricCell(career.SigStrikeDiffPerMin), metricCell(recent.SigStrikeDiffPerMin)},
	}
	for _, r := range rows {
		table.Append(r.name, r.career, r.recent)
	}
	table.Render()

	if career.Fights == 0 {
		fmt.Fprintln(w, "\nNo prior fights before this date — all rates are undefined.")
	}
}

// PrintTrend prints a fighter's chronological per-fight performance.
func PrintTrend(w io.Writer, f model.Fighter, history []model.HistoryRow) {
	fmt.Fprintf(w, "\n%s (%s)  —  %d fight(s)\n\n", f.Name, f.ID, len(history))

	table := newTable(w)
	table.Header("DATE", "OPPONENT", "RESULT", "METHOD", "SIG STR", "TD", "CTRL", "TIME")
	for _, h := range history {
		result := "L"
		switch {
		case h.Won():
			result = "W"
		case !h.Fight.Decisive():
			result = "D/NC"
		}
		table.Append(
			h.Fight.EventDate.Format("2006-01-02"),
			h.Opponent.FighterID,
			result,
			h.Fight.Method,
			fmt.Sprintf("%d/%d", h.Own.SigStrikesLanded, h.Own.SigStrikesAttempted),
			fmt.Sprintf("%d/%d", h.Own.TakedownsLanded, h.Own.TakedownsAttempted),
			fmt.Sprintf("%d:%02d", h.Own.ControlTimeSeconds/60, h.Own.ControlTimeSeconds%60),
			fmt.Sprintf("%d:%02d", h.Own.TimeFoughtSeconds/60, h.Own.TimeFoughtSeconds%60),
		)
	}
	table.Render()
}

// PrintPrediction prints the matchup prediction block.
func PrintPrediction(w io.Writer, f1, f2 model.Fighter, probF1 float64) {
	fmt.Fprint(w, "\n=== Matchup Prediction ===\n\n")
	fmt.Fprintf(w, "  Fighter 1: %s (%s)\n", f1.Name, f1.ID)
	fmt.Fprintf(w, "  Fighter 2: %s (%s)\n\n", f2.Name, f2.ID)
	fmt.Fprintf(w, "  P(%s wins) = %.3f\n", f1.Name, probF1)

	winner := f1
	if probF1 < 0.5 {
		winner = f2
	}
	fmt.Fprintf(w, "\n  Predicted winner: %s\n\n", winner.Name)
}
