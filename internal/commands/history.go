package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/healthpulse/companion/internal/assessment"
)

var historyLimit int

var HistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past daily scores",
	RunE:  runHistory,
}

func init() {
	HistoryCmd.Flags().IntVar(&historyLimit, "limit", 14, "Number of days to show")
}

func runHistory(cmd *cobra.Command, args []string) error {
	_, client, err := requireAuth()
	if err != nil {
		return err
	}

	if !cmd.Flags().Changed("limit") {
		historyLimit = loadConfig().HistoryDays
	}

	entries, err := client.History(cmd.Context(), historyLimit)
	if err != nil {
		return friendly(err)
	}
	if len(entries) == 0 {
		fmt.Println("No scores yet. Take today's assessment: healthpulse assess")
		return nil
	}

	fmt.Println(titleStyle.Render("Score History"))
	// Oldest first for a chronological read.
	for i := len(entries) - 1; i >= 0; i-- {
		entry := entries[i]
		fmt.Printf("%s  %5.1f  %s\n", entry.Date, entry.CompositeScore, dimStyle.Render(assessment.Badge(entry.CompositeScore)))
	}
	return nil
}
