package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/healthpulse/companion/internal/session"
)

var (
	loginEmail    string
	loginPassword string
)

var LoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to HealthPulse",
	Long: `Log in to your HealthPulse account with email and password.

The session is saved locally so later commands don't need to log in again.`,
	RunE: runLogin,
}

func init() {
	LoginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email")
	LoginCmd.Flags().StringVar(&loginPassword, "password", "", "Account password")
}

func runLogin(cmd *cobra.Command, args []string) error {
	fmt.Println(titleStyle.Render("HealthPulse Login"))

	email := strings.TrimSpace(loginEmail)
	password := loginPassword
	reader := bufio.NewReader(os.Stdin)

	if email == "" {
		fmt.Print("Email: ")
		line, _ := reader.ReadString('\n')
		email = strings.TrimSpace(line)
	}
	if password == "" {
		fmt.Print("Password: ")
		line, _ := reader.ReadString('\n')
		password = strings.TrimRight(line, "\r\n")
	}

	// Validate before any call is made.
	if email == "" || password == "" {
		return fmt.Errorf("email and password are required")
	}

	store := openStore()
	client := newClient(store)

	resp, err := client.Login(cmd.Context(), email, password)
	if err != nil {
		return friendly(err)
	}

	if err := store.Save(&session.Session{
		Token:     resp.AccessToken,
		UserID:    resp.UserID,
		Username:  resp.Username,
		IsPremium: resp.IsPremium,
	}); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	fmt.Println()
	fmt.Println(successStyle.Render(fmt.Sprintf("✅ Logged in as %s", resp.Username)))
	if resp.IsPremium {
		fmt.Println(dimStyle.Render("Premium account"))
	}
	fmt.Println()
	fmt.Println("Next:")
	fmt.Println("  healthpulse dashboard    Live dashboard")
	fmt.Println("  healthpulse assess       Today's check-in")
	return nil
}
