package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var LogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out of HealthPulse",
	Long:  `Remove the locally stored session. Any live dashboard connection ends with it.`,
	RunE:  runLogout,
}

func runLogout(cmd *cobra.Command, args []string) error {
	store := openStore()
	if _, ok := store.Load(); !ok {
		fmt.Println("Already logged out.")
		return nil
	}
	if err := store.Clear(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	fmt.Println(successStyle.Render("✅ Logged out."))
	return nil
}
