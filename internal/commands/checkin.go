package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var CheckinCmd = &cobra.Command{
	Use:   "checkin [how you're feeling...]",
	Short: "Record a mental health check-in",
	Long: `Describe how you're feeling in free text. The backend assesses
sentiment and responds with coping suggestions.

Example:
  healthpulse checkin feeling a bit overwhelmed with deadlines today`,
	RunE: runCheckin,
}

func runCheckin(cmd *cobra.Command, args []string) error {
	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" {
		return fmt.Errorf("tell me how you're feeling, e.g.: healthpulse checkin slept badly, anxious about work")
	}

	_, client, err := requireAuth()
	if err != nil {
		return err
	}

	checkin, err := client.CreateCheckin(cmd.Context(), text)
	if err != nil {
		return friendly(err)
	}

	fmt.Println(titleStyle.Render("Mental Check-in"))
	if checkin.Sentiment != "" {
		fmt.Printf("%s %s", labelStyle.Render("Sentiment:"), checkin.Sentiment)
		if checkin.EmotionalState != "" {
			fmt.Printf(" (%s)", checkin.EmotionalState)
		}
		fmt.Println()
	}
	if checkin.Response != "" {
		fmt.Println()
		fmt.Println(checkin.Response)
	}
	if checkin.CopingSuggestions != "" {
		fmt.Println()
		fmt.Println(labelStyle.Render("Suggestions:"))
		fmt.Println(checkin.CopingSuggestions)
	}
	return nil
}
