package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/career-companion/internal/logger"
	"github.com/spigell/career-companion/internal/skillgap"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Compare skills against a list of required skills",
	Example: `  career-companion match --skill React --skill TypeScript --require React --require GraphQL
  career-companion match --skill JavaScript --require Java --strategy exact`,
	Run: func(cmd *cobra.Command, _ []string) {
		match(cmd)
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().StringArrayP("require", "r", nil, "a required skill, can be repeated")
	matchCmd.Flags().StringP("strategy", "s", skillgap.Containment.String(), "matching strategy: contains or exact")
}

func match(cmd *cobra.Command) {
	l, config := setup()

	name, _ := cmd.Flags().GetString("strategy")
	strategy, err := skillgap.ParseStrategy(name)
	if err != nil {
		l.Fatal("parsing strategy", zap.Error(err))
	}

	requirements, _ := cmd.Flags().GetStringArray("require")
	skills := configuredSkills(config)

	gap := skillgap.Match(strategy, skills, requirements)
	l.Debug("skills matched", append(logger.GapFields("", gap), zap.Stringer("strategy", strategy))...)

	printGap(cmd.OutOrStdout(), gap)
}
