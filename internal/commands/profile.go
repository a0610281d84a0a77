package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/healthpulse/companion/internal/api"
)

var profileUpdate = struct {
	age        int
	gender     string
	heightCm   float64
	weightKg   float64
	genotype   string
	bloodGroup string
	location   string
}{}

var ProfileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show your health profile",
	RunE:  runProfileShow,
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update health profile fields",
	Long: `Update one or more profile fields. Only the flags you pass change;
everything else stays as it is.

Example:
  healthpulse profile set --weight 72.5 --location Lagos`,
	RunE: runProfileSet,
}

func init() {
	f := profileSetCmd.Flags()
	f.IntVar(&profileUpdate.age, "age", 0, "Age in years")
	f.StringVar(&profileUpdate.gender, "gender", "", "Gender")
	f.Float64Var(&profileUpdate.heightCm, "height", 0, "Height in cm")
	f.Float64Var(&profileUpdate.weightKg, "weight", 0, "Weight in kg")
	f.StringVar(&profileUpdate.genotype, "genotype", "", "Genotype (e.g. AA, AS)")
	f.StringVar(&profileUpdate.bloodGroup, "blood-group", "", "Blood group")
	f.StringVar(&profileUpdate.location, "location", "", "City or region")
	ProfileCmd.AddCommand(profileSetCmd)
}

func runProfileShow(cmd *cobra.Command, args []string) error {
	_, client, err := requireAuth()
	if err != nil {
		return err
	}

	profile, err := client.Me(cmd.Context())
	if err != nil {
		return friendly(err)
	}

	fmt.Println(titleStyle.Render("Health Profile"))
	fmt.Printf("%s %s (%s)\n", labelStyle.Render("Account:"), profile.Username, profile.Email)
	if profile.Age != nil {
		fmt.Printf("%s %d\n", labelStyle.Render("Age:"), *profile.Age)
	}
	if profile.Gender != "" {
		fmt.Printf("%s %s\n", labelStyle.Render("Gender:"), profile.Gender)
	}
	if profile.HeightCm != nil {
		fmt.Printf("%s %.1f cm\n", labelStyle.Render("Height:"), *profile.HeightCm)
	}
	if profile.WeightKg != nil {
		fmt.Printf("%s %.1f kg\n", labelStyle.Render("Weight:"), *profile.WeightKg)
	}
	if profile.Genotype != "" {
		fmt.Printf("%s %s\n", labelStyle.Render("Genotype:"), profile.Genotype)
	}
	if profile.BloodGroup != "" {
		fmt.Printf("%s %s\n", labelStyle.Render("Blood group:"), profile.BloodGroup)
	}
	if profile.Location != "" {
		fmt.Printf("%s %s\n", labelStyle.Render("Location:"), profile.Location)
	}
	if len(profile.FamilyHistory) > 0 {
		var conditions []string
		for condition, present := range profile.FamilyHistory {
			if present {
				conditions = append(conditions, condition)
			}
		}
		if len(conditions) > 0 {
			fmt.Printf("%s %s\n", labelStyle.Render("Family history:"), strings.Join(conditions, ", "))
		}
	}
	fmt.Println()
	fmt.Printf("🔥 Streak: %d days   ⭐ Points: %d\n", profile.StreakDays, profile.Points)
	return nil
}

func runProfileSet(cmd *cobra.Command, args []string) error {
	_, client, err := requireAuth()
	if err != nil {
		return err
	}

	var update api.ProfileUpdate
	flags := cmd.Flags()
	if flags.Changed("age") {
		update.Age = &profileUpdate.age
	}
	if flags.Changed("gender") {
		update.Gender = &profileUpdate.gender
	}
	if flags.Changed("height") {
		update.HeightCm = &profileUpdate.heightCm
	}
	if flags.Changed("weight") {
		update.WeightKg = &profileUpdate.weightKg
	}
	if flags.Changed("genotype") {
		update.Genotype = &profileUpdate.genotype
	}
	if flags.Changed("blood-group") {
		update.BloodGroup = &profileUpdate.bloodGroup
	}
	if flags.Changed("location") {
		update.Location = &profileUpdate.location
	}
	if update == (api.ProfileUpdate{}) {
		return fmt.Errorf("nothing to update; pass at least one flag (see --help)")
	}

	profile, err := client.UpdateProfile(cmd.Context(), update)
	if err != nil {
		return friendly(err)
	}

	fmt.Println(successStyle.Render(fmt.Sprintf("✅ Profile updated for %s", profile.Username)))
	return nil
}
