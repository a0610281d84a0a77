package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/healthpulse/companion/internal/session"
)

var StatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show session and backend status",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	fmt.Println("📊 HealthPulse Status")
	fmt.Println()

	store := openStore()
	sess, ok := store.Load()
	if !ok {
		fmt.Println("🔐 Authentication: ❌ Not logged in")
		fmt.Println("   Run 'healthpulse login' to authenticate")
		fmt.Println()
		fmt.Printf("🌐 Backend: %s\n", backendURL())
		return nil
	}

	fmt.Println("🔐 Authentication: ✅ Logged in")
	fmt.Printf("   Username: %s\n", sess.Username)
	if sess.IsPremium {
		fmt.Println("   Plan: premium")
	} else {
		fmt.Println("   Plan: free")
	}
	fmt.Println()
	fmt.Printf("🌐 Backend: %s\n", backendURL())
	fmt.Printf("📁 Session file: %s\n", session.DefaultPath())

	// Streak and points are nice to have here; a dead backend shouldn't
	// make status fail.
	client := newClient(store)
	if stats, err := client.MyStats(cmd.Context()); err == nil {
		fmt.Println()
		fmt.Printf("🔥 Streak: %d days\n", stats.StreakDays)
		fmt.Printf("⭐ Points: %d\n", stats.Points)
	}

	return nil
}
