package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/healthpulse/companion/internal/commands"
)

// Version is set at build time via -ldflags "-X main.Version=X.Y.Z"
var Version = "0.0.0-dev"

var rootCmd = &cobra.Command{
	Use:   "healthpulse",
	Short: "HealthPulse - your daily health companion",
	Long: `HealthPulse tracks your daily health from the terminal.

Quick Start:
  healthpulse register            Create an account (first time)
  healthpulse login               Sign in
  healthpulse assess              Take today's assessment
  healthpulse                     Open the live dashboard (default)

Commands:
  assess                     Answer today's health questions
  dashboard                  Live dashboard with score, trend and risk
  history                    Past daily scores
  checkin                    Free-text mental health check-in
  predict <type>             Hypertension or malaria risk prediction
  leaderboard                Points leaderboard
  profile                    Show or update your health profile
  upgrade                    Upgrade to premium
  config                     Show or change client settings
  status                     Show who's signed in

Session: ~/.healthpulse/session.yaml`,
	Version: Version,
	RunE: func(cmd *cobra.Command, args []string) error {
		// No subcommand opens the dashboard, same as `healthpulse dashboard`.
		return commands.DashboardCmd.RunE(cmd, args)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&commands.Verbose, "verbose", "v", false, "Enable verbose logging")

	rootCmd.AddCommand(commands.RegisterCmd)
	rootCmd.AddCommand(commands.LoginCmd)
	rootCmd.AddCommand(commands.LogoutCmd)
	rootCmd.AddCommand(commands.StatusCmd)
	rootCmd.AddCommand(commands.ProfileCmd)
	rootCmd.AddCommand(commands.AssessCmd)
	rootCmd.AddCommand(commands.DashboardCmd)
	rootCmd.AddCommand(commands.HistoryCmd)
	rootCmd.AddCommand(commands.CheckinCmd)
	rootCmd.AddCommand(commands.PredictCmd)
	rootCmd.AddCommand(commands.LeaderboardCmd)
	rootCmd.AddCommand(commands.UpgradeCmd)
	rootCmd.AddCommand(commands.ConfigCmd)
}

func main() {
	commands.AppVersion = Version
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
