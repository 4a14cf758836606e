package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"
)

var sqlCmd = &cobra.Command{
	Use:   "sql <query>",
	Short: "Run a raw SQL query against the fight database",
	Long: `Run an arbitrary SQL query and print results as a table.

Schema overview:
  fighters(fighter_id, name)
  fights(fight_id, event_name, event_date, weight_class, fighter1_id,
    fighter2_id, winner_id, method, round_ended, time_ended_seconds)
  fighter_stats(fight_id, fighter_id, knockdowns, sig_strikes_landed,
    sig_strikes_attempted, total_strikes_landed, total_strikes_attempted,
    td_landed, td_attempts, sub_attempts, control_time_seconds,
    time_fought_seconds)

Note: event_date is stored as TEXT "YYYY-MM-DD"; winner_id is NULL for
draws and no-contests.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSQL,
}

func runSQL(_ *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	cols, rows, err := db.QueryRaw(query)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Println("(no rows)")
		return nil
	}

	table := tablewriter.NewTable(os.Stdout, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))

	colsAny := make([]any, len(cols))
	for i, c := range cols {
		colsAny[i] = c
	}
	table.Header(colsAny...)

	for _, row := range rows {
		rowAny := make([]any, len(row))
		for i, v := range row {
			rowAny[i] = v
		}
		table.Append(rowAny...)
	}
	table.Render()
	fmt.Fprintf(os.Stdout, "\n(%d rows)\n", len(rows))
	return nil
}
