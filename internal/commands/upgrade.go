package commands

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var upgradeAmount float64

var UpgradeCmd = &cobra.Command{
	Use:   "upgrade",
	Short: "Upgrade to premium",
	Long: `Start a premium upgrade payment. You'll get a checkout URL; once the
payment is complete the transaction is verified and premium is activated.`,
	RunE: runUpgrade,
}

func init() {
	UpgradeCmd.Flags().Float64Var(&upgradeAmount, "amount", 5000, "Payment amount (NGN)")
}

func runUpgrade(cmd *cobra.Command, args []string) error {
	store, client, err := requireAuth()
	if err != nil {
		return err
	}

	if sess := store.Current(); sess != nil && sess.IsPremium {
		fmt.Println("You're already on premium. 🎉")
		return nil
	}

	fmt.Println(titleStyle.Render("Premium Upgrade"))

	payment, err := client.InitiatePayment(cmd.Context(), upgradeAmount)
	if err != nil {
		return friendly(err)
	}

	if payment.Status != "demo" {
		fmt.Println("Complete the payment in your browser:")
		fmt.Printf("  %s\n", payment.AuthorizationURL)
		fmt.Println()
		fmt.Print(dimStyle.Render("Press Enter once you've paid..."))
		bufio.NewReader(os.Stdin).ReadString('\n')
		fmt.Println()
	}

	result, err := client.VerifyPayment(cmd.Context(), payment.Reference)
	if err != nil {
		return friendly(err)
	}

	if result.IsPremium {
		// Keep the local session in step with the backend. The whole session
		// is rewritten so the flag can't drift from its siblings.
		if err := store.SetPremium(true); err != nil {
			return fmt.Errorf("premium active, but saving the session failed: %w", err)
		}
		fmt.Println(successStyle.Render("✅ Premium activated!"))
		return nil
	}

	fmt.Println(errorStyle.Render("Payment not confirmed: " + result.Message))
	return nil
}
