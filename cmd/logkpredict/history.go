package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fzahariev/logkpredict/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent predictions from the history ledger",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath := viper.GetString("history.db_path")
		if v, _ := cmd.Flags().GetString("db"); v != "" {
			dbPath = v
		}
		if dbPath == "" {
			return fmt.Errorf("no history database configured (history.db_path)")
		}

		limit, _ := cmd.Flags().GetInt("limit")
		store, err := history.Open(dbPath, viper.GetInt("history.max_results"))
		if err != nil {
			return err
		}
		defer store.Close()

		entries, err := store.Recent(limit)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "WHEN\tINPUT\tPREDICTION\tSMILES")
		for _, e := range entries {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				e.Timestamp.Local().Format(time.DateTime), e.InputHash, e.Prediction, e.Smiles)
		}
		return w.Flush()
	},
}

func init() {
	historyCmd.Flags().String("db", "", "history database file")
	historyCmd.Flags().Int("limit", 0, "maximum rows to list")

	rootCmd.AddCommand(historyCmd)
}
