package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/career-companion/internal/ai"
	"github.com/spigell/career-companion/internal/careers"
	"github.com/spigell/career-companion/internal/dashboard"
	"github.com/spigell/career-companion/internal/fieldinterest"
	"github.com/spigell/career-companion/internal/jobs"
)

const dashboardTopJobs = 3

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Run the full flow: intake, ATS scan, career paths, jobs and an optional learning plan",
	Run: func(cmd *cobra.Command, _ []string) {
		runDashboard(cmd)
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)

	dashboardCmd.Flags().StringP("field", "f", "", "a field of interest to include in the overview")
}

func runDashboard(cmd *cobra.Command) {
	logger, config := setup()

	ctx, cancel := commandContext()
	defer cancel()

	logger.Info("starting the career-companion", zap.String("version", version))

	res, err := runIntake(ctx, config, logger, true)
	if err != nil {
		logger.Fatal("intake failed", zap.Error(err))
	}
	state := res.state
	out := cmd.OutOrStdout()

	if !state.HasData() && len(state.Skills) == 0 {
		fmt.Fprintln(out, "Welcome! Upload your resume or fill in your profile to get personalized career insights.")
		logger.Info("exiting",
			zap.String("reason", "no profile, resume or skills"),
			zap.String("hint", "set profile or resume in the configuration file or pass --skill"),
		)
		return
	}

	cat := loadCatalog(config, logger)
	suggestions := careers.Suggest(state.Skills, cat.Careers)

	postings, err := matchJobs(ctx, config.Jobs, state.Skills, cat, logger)
	if err != nil {
		logger.Fatal("filtering failed", zap.Error(err))
	}

	stats := dashboard.ComputeStats(state, suggestions, postings)
	logger.Debug("dashboard stats",
		zap.Int("skills", stats.SkillsIdentified),
		zap.Int("career_paths", stats.CareerPaths),
		zap.Int("job_matches", stats.JobMatches),
		zap.Int("best_match", stats.BestMatch),
	)

	fmt.Fprintf(out, "Welcome back, %s!\n\n", state.DisplayName())
	printStats(out, stats)
	fmt.Fprintf(out, "Your skills: %s\n\n", listOrDash(state.Skills))

	if res.scan != nil {
		printScan(out, res.scan)
		fmt.Fprintln(out)
	}

	fmt.Fprintln(out, "Career paths:")
	for _, s := range suggestions {
		printCareer(out, s)
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "Top job matches:")
	printJobs(out, top(postings, dashboardTopJobs))
	fmt.Fprintln(out)

	if name, _ := cmd.Flags().GetString("field"); name != "" {
		analysis, err := fieldinterest.Analyze(cat, state.Skills, name)
		if err != nil {
			logger.Fatal("analyzing field", zap.String("field", name), zap.Error(err))
		}
		printField(out, analysis)
		fmt.Fprintln(out)
	}

	if config.AI.Enabled && len(suggestions) > 0 {
		best := suggestions[0]
		requestPlan(ctx, out, config, logger, ai.LearningRequest{
			Target: best.Path.Title,
			Skills: state.Skills,
			Gap:    best.Gap,
		})
	}
}

func printStats(w io.Writer, s dashboard.Stats) {
	fmt.Fprintf(w, "Skills identified: %d\n", s.SkillsIdentified)
	fmt.Fprintf(w, "Career paths:      %d\n", s.CareerPaths)
	fmt.Fprintf(w, "Job matches:       %d\n", s.JobMatches)
	fmt.Fprintf(w, "Best match:        %d%%\n\n", s.BestMatch)
}

func top(postings *jobs.Jobs, n int) *jobs.Jobs {
	if postings.Len() <= n {
		return postings
	}
	return &jobs.Jobs{Items: postings.Items[:n]}
}
