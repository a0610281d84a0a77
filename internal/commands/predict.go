package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/healthpulse/companion/internal/api"
)

var PredictCmd = &cobra.Command{
	Use:   "predict <hypertension|malaria>",
	Short: "Run a health risk prediction",
	Long: `Ask the backend to estimate your risk for a condition based on your
health profile. Results are cached server-side for a short while.`,
	Args: cobra.ExactArgs(1),
	RunE: runPredict,
}

func runPredict(cmd *cobra.Command, args []string) error {
	predictionType := args[0]
	if !api.ValidPredictionType(predictionType) {
		return fmt.Errorf("unknown prediction type %q (use hypertension or malaria)", predictionType)
	}

	_, client, err := requireAuth()
	if err != nil {
		return err
	}

	pred, err := client.CreatePrediction(cmd.Context(), predictionType)
	if err != nil {
		return friendly(err)
	}

	fmt.Println(titleStyle.Render(fmt.Sprintf("Risk Prediction: %s", pred.PredictionType)))
	fmt.Printf("%s %.1f%% (%s)\n", labelStyle.Render("Risk:"), pred.RiskPercentage, pred.RiskLevel)
	if pred.Explanation != "" {
		fmt.Println()
		fmt.Println(pred.Explanation)
	}
	if pred.PreventionAdvice != "" {
		fmt.Println()
		fmt.Println(labelStyle.Render("Advice:"))
		fmt.Println(pred.PreventionAdvice)
	}
	return nil
}
