package commands

import (
	"github.com/spf13/cobra"

	"github.com/healthpulse/companion/internal/assessment"
	"github.com/healthpulse/companion/internal/tui"
)

var AssessCmd = &cobra.Command{
	Use:   "assess",
	Short: "Take today's daily assessment",
	Long: `Open the interactive daily assessment.

Five quick questions about sleep, diet, activity, mood and surroundings;
answering all of them yields a composite wellness score and a badge. Each
day's assessment can be completed once.`,
	RunE: runAssess,
}

func runAssess(cmd *cobra.Command, args []string) error {
	_, client, err := requireAuth()
	if err != nil {
		return err
	}

	engine := assessment.NewEngine(client)
	return tui.RunAssessment(engine)
}
