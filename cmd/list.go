package cmd

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored events",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(_ *cobra.Command, _ []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	events, err := db.ListEvents()
	if err != nil {
		return err
	}
	if len(events) == 0 {
		fmt.Println("No events stored. Run \"ufcpred scrape\" first.")
		return nil
	}

	table := tablewriter.NewTable(os.Stdout, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))
	table.Header("DATE", "EVENT", "FIGHTS", "DECISIVE")
	for _, e := range events {
		table.Append(e.Date, e.Name, fmt.Sprintf("%d", e.Fights), fmt.Sprintf("%d", e.Decisive))
	}
	table.Render()
	fmt.Fprintf(os.Stdout, "\n(%d events)\n", len(events))
	return nil
}
