package cmd

import (
	"fmt"
	"io"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/career-companion/internal/careers"
)

const PromptExploreJobs = "Explore jobs"

var careersCmd = &cobra.Command{
	Use:   "careers",
	Short: "Suggest career paths for your skills",
	Run: func(cmd *cobra.Command, _ []string) {
		suggestCareers(cmd)
	},
}

func init() {
	rootCmd.AddCommand(careersCmd)

	careersCmd.Flags().BoolP("explore", "e", false, "choose a career path and explore matching jobs")
}

func suggestCareers(cmd *cobra.Command) {
	logger, config := setup()

	ctx, cancel := commandContext()
	defer cancel()

	skills := userSkills(ctx, config, logger)
	cat := loadCatalog(config, logger)

	suggestions := careers.Suggest(skills, cat.Careers)
	logger.Info("career paths suggested", zap.Int("count", len(suggestions)))

	out := cmd.OutOrStdout()
	for _, s := range suggestions {
		printCareer(out, s)
	}

	if explore, _ := cmd.Flags().GetBool("explore"); !explore {
		return
	}

	for {
		pathPrompt := promptui.Select{
			Label: "Choose a career path and press ENTER",
			Items: append(careers.Titles(suggestions), PromptBack),
		}

		_, title, err := pathPrompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}
		if title == PromptBack {
			return
		}

		selected, ok := careers.Find(suggestions, title)
		if !ok {
			logger.Fatal("there is no such career path", zap.String("title", title))
		}
		printCareer(out, *selected)

		actionPrompt := promptui.Select{
			Label: "What next?",
			Items: []string{PromptExploreJobs, PromptBack},
		}
		_, action, err := actionPrompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}
		if action != PromptExploreJobs {
			continue
		}

		postings, err := matchJobs(ctx, config.Jobs, skills, cat, logger)
		if err != nil {
			logger.Fatal("filtering failed", zap.Error(err))
		}
		printJobs(out, postings)
		return
	}
}

func printCareer(w io.Writer, s careers.Suggestion) {
	fmt.Fprintf(w, "%s\n", s.Path.Title)
	fmt.Fprintf(w, "  %s\n", s.Path.Description)
	fmt.Fprintf(w, "  Salary: %s | Growth: %s\n", s.Path.AverageSalary, s.Path.GrowthRate)
	printGap(w, s.Gap)
}
