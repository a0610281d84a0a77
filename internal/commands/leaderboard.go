package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var LeaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show the points leaderboard",
	RunE:  runLeaderboard,
}

func runLeaderboard(cmd *cobra.Command, args []string) error {
	_, client, err := requireAuth()
	if err != nil {
		return err
	}

	entries, err := client.Leaderboard(cmd.Context())
	if err != nil {
		return friendly(err)
	}
	if len(entries) == 0 {
		fmt.Println("Leaderboard is empty.")
		return nil
	}

	fmt.Println(titleStyle.Render("Leaderboard"))
	for _, entry := range entries {
		medal := "  "
		switch entry.Rank {
		case 1:
			medal = "🥇"
		case 2:
			medal = "🥈"
		case 3:
			medal = "🥉"
		}
		fmt.Printf("%s %2d. %-20s %6d pts\n", medal, entry.Rank, entry.Username, entry.Points)
	}
	return nil
}
