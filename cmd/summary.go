package cmd

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show database-wide counts",
	Args:  cobra.NoArgs,
	RunE:  runSummary,
}

func runSummary(_ *cobra.Command, _ []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	ov, err := db.GetOverview()
	if err != nil {
		return err
	}

	table := tablewriter.NewTable(os.Stdout, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
	}))
	table.Append("Fighters", fmt.Sprintf("%d", ov.Fighters))
	table.Append("Fights", fmt.Sprintf("%d", ov.Fights))
	table.Append("Decisive fights", fmt.Sprintf("%d", ov.DecisiveFights))
	table.Append("Events", fmt.Sprintf("%d", ov.Events))
	table.Append("Earliest event", ov.EarliestDate)
	table.Append("Latest event", ov.LatestDate)
	table.Render()
	return nil
}
