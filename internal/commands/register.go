package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/healthpulse/companion/internal/api"
	"github.com/healthpulse/companion/internal/session"
)

var registerParams = struct {
	email      string
	username   string
	password   string
	age        int
	gender     string
	heightCm   float64
	weightKg   float64
	genotype   string
	bloodGroup string
	location   string
	history    []string
	conditions []string
	reportPath string
}{}

var RegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a HealthPulse account",
	Long: `Create a new HealthPulse account.

Health profile fields are optional but improve risk predictions. A medical
report (PDF, image, or document) can be attached with --report.`,
	RunE: runRegister,
}

func init() {
	f := RegisterCmd.Flags()
	f.StringVar(&registerParams.email, "email", "", "Account email (required)")
	f.StringVar(&registerParams.username, "username", "", "Display name (required)")
	f.StringVar(&registerParams.password, "password", "", "Password (required)")
	f.IntVar(&registerParams.age, "age", 0, "Age in years")
	f.StringVar(&registerParams.gender, "gender", "", "Gender")
	f.Float64Var(&registerParams.heightCm, "height", 0, "Height in cm")
	f.Float64Var(&registerParams.weightKg, "weight", 0, "Weight in kg")
	f.StringVar(&registerParams.genotype, "genotype", "", "Genotype (e.g. AA, AS)")
	f.StringVar(&registerParams.bloodGroup, "blood-group", "", "Blood group")
	f.StringVar(&registerParams.location, "location", "", "City or region")
	f.StringSliceVar(&registerParams.history, "family-history", nil, "Family conditions (e.g. hypertension,diabetes)")
	f.StringSliceVar(&registerParams.conditions, "conditions", nil, "Pre-existing conditions")
	f.StringVar(&registerParams.reportPath, "report", "", "Path to a medical report to upload")
}

func runRegister(cmd *cobra.Command, args []string) error {
	fmt.Println(titleStyle.Render("HealthPulse Registration"))

	if registerParams.email == "" || registerParams.username == "" || registerParams.password == "" {
		return fmt.Errorf("--email, --username and --password are required")
	}
	if registerParams.reportPath != "" {
		if _, err := os.Stat(registerParams.reportPath); err != nil {
			return fmt.Errorf("medical report not found: %s", registerParams.reportPath)
		}
	}

	params := api.RegisterParams{
		Email:      registerParams.email,
		Username:   registerParams.username,
		Password:   registerParams.password,
		Age:        registerParams.age,
		Gender:     registerParams.gender,
		HeightCm:   registerParams.heightCm,
		WeightKg:   registerParams.weightKg,
		Genotype:   registerParams.genotype,
		BloodGroup: registerParams.bloodGroup,
		Location:   registerParams.location,
		ReportPath: registerParams.reportPath,
	}
	if len(registerParams.history) > 0 {
		params.FamilyHistory = make(map[string]bool, len(registerParams.history))
		for _, condition := range registerParams.history {
			params.FamilyHistory[strings.ToLower(strings.TrimSpace(condition))] = true
		}
	}
	params.PreExistingConditions = registerParams.conditions

	store := openStore()
	client := newClient(store)

	resp, err := client.Register(cmd.Context(), params)
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
	fmt.Println(successStyle.Render(fmt.Sprintf("✅ Welcome, %s! Your account is ready.", resp.Username)))
	fmt.Println()
	fmt.Println("Start with: healthpulse assess")
	return nil
}
