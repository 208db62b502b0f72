package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/career-companion/internal/intake"
)

var profileCmd = &cobra.Command{
	Use:   "profile [file]",
	Short: "Validate and print a profile file, optionally adding or removing skills",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		showProfile(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)

	profileCmd.Flags().StringArray("add", nil, "a skill to add to the profile file, can be repeated")
	profileCmd.Flags().StringArray("remove", nil, "a skill to remove from the profile file, can be repeated")
}

func showProfile(cmd *cobra.Command, args []string) {
	logger, config := setup()

	path := config.Profile
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		logger.Fatal("profile file is not configured",
			zap.String("hint", "pass a file argument or set profile in the configuration file"),
		)
	}

	profile, err := intake.LoadProfile(path)
	if err != nil {
		logger.Fatal("loading profile", zap.Error(err))
	}

	toAdd, _ := cmd.Flags().GetStringArray("add")
	toRemove, _ := cmd.Flags().GetStringArray("remove")

	changed := false
	for _, skill := range toAdd {
		if profile.AddSkill(skill) {
			changed = true
		} else {
			logger.Warn("skill is empty or already present", zap.String("skill", skill))
		}
	}
	for _, skill := range toRemove {
		before := len(profile.Skills)
		profile.RemoveSkill(skill)
		changed = changed || before != len(profile.Skills)
	}

	if err := profile.Validate(); err != nil {
		logger.Fatal("profile is not valid", zap.String("file", path), zap.Error(err))
	}

	if changed {
		if err := intake.WriteProfile(path, profile); err != nil {
			logger.Fatal("saving profile", zap.Error(err))
		}
		logger.Info("profile saved", zap.String("file", path), zap.Int("skills", len(profile.Skills)))
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Name:         %s\n", profile.Name)
	if profile.Email != "" {
		fmt.Fprintf(out, "Email:        %s\n", profile.Email)
	}
	fmt.Fprintf(out, "Current role: %s\n", profile.CurrentRole)
	if profile.Experience != "" {
		fmt.Fprintf(out, "Experience:   %s\n", profile.Experience)
	}
	if profile.Education != "" {
		fmt.Fprintf(out, "Education:    %s\n", profile.Education)
	}
	fmt.Fprintf(out, "Skills (%d):   %s\n", len(profile.Skills), listOrDash(profile.Skills))
}
