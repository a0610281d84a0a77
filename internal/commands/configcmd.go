package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/healthpulse/companion/internal/api"
	"github.com/healthpulse/companion/internal/config"
)

var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change client settings",
	Long: `Show the current client settings, or change one:

  healthpulse config                       Show settings
  healthpulse config set api_url URL       Point at a different backend
  healthpulse config set history_days N    Days shown in trend and history
  healthpulse config set verbose true      Always log requests`,
	RunE: runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

func init() {
	ConfigCmd.AddCommand(configSetCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	fmt.Println(titleStyle.Render("Client Settings"))
	fmt.Printf("%s %s\n", labelStyle.Render("api_url:"), cfg.ResolveAPIURL(api.DefaultBaseURL))
	fmt.Printf("%s %d\n", labelStyle.Render("history_days:"), cfg.HistoryDays)
	fmt.Printf("%s %t\n", labelStyle.Render("verbose:"), cfg.Verbose)
	fmt.Println()
	fmt.Println(dimStyle.Render("File: " + config.Path()))
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	cfg := loadConfig()
	switch key {
	case "api_url":
		cfg.APIURL = value
	case "history_days":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("history_days must be a positive number")
		}
		cfg.HistoryDays = n
	case "verbose":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("verbose must be true or false")
		}
		cfg.Verbose = b
	default:
		return fmt.Errorf("unknown setting %q (api_url, history_days, verbose)", key)
	}

	if err := config.Save(cfg); err != nil {
		return err
	}
	fmt.Println(successStyle.Render(fmt.Sprintf("✅ %s updated", key)))
	return nil
}
