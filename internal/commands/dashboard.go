package commands

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/healthpulse/companion/internal/api"
	"github.com/healthpulse/companion/internal/channel"
	"github.com/healthpulse/companion/internal/dashboard"
	"github.com/healthpulse/companion/internal/tui"
)

var DashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Open the live dashboard",
	Long: `Open the interactive dashboard: latest score, 14-day trend, risk
prediction, mental check-in, streak and points.

While open, a push connection keeps the view fresh; new scores from any
device appear without a manual refresh.`,
	RunE: runDashboard,
}

func runDashboard(cmd *cobra.Command, args []string) error {
	store, client, err := requireAuth()
	if err != nil {
		return err
	}

	ch := channel.New(api.WSBaseURL(backendURL()), store)
	ch.SetVerbose(Verbose)
	defer ch.Close()

	// A rejected credential anywhere must also take the push channel down.
	client.SetAuthExpiredHandler(func() {
		ch.Close()
	})

	if err := ch.Connect(); err != nil {
		// The dashboard still works pull-only; log and move on.
		if Verbose {
			log.Printf("[Dashboard] push channel unavailable: %v", err)
		}
	}

	agg := dashboard.New(client)
	return tui.RunDashboard(agg, ch)
}
