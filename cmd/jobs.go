package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/career-companion/internal/catalog"
	"github.com/spigell/career-companion/internal/filtering"
	"github.com/spigell/career-companion/internal/jobs"
)

const (
	PromptBack              = "back"
	PromptExit              = "Exit"
	PromptReportByCompanies = "Report by companies"
	PromptJobsToFile        = "Dump jobs to file"
	PromptDropJobs          = "Drop jobs in manual mode"
)

var errExit = errors.New("exit requested")

var jobsPrompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptReportByCompanies, PromptJobsToFile, PromptDropJobs, PromptExit},
}

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Match your skills against job postings",
	Run: func(cmd *cobra.Command, _ []string) {
		listJobs(cmd)
	},
}

func init() {
	rootCmd.AddCommand(jobsCmd)

	jobsCmd.Flags().StringP("query", "q", "", "keep postings whose title or company contains the query")
	jobsCmd.Flags().StringP("location", "l", "", "keep postings whose location contains the value")
	jobsCmd.Flags().IntP("min-match", "m", 0, "drop postings with a lower match percentage")
	jobsCmd.Flags().StringArray("exclude-company", nil, "a company to exclude, can be repeated")
	jobsCmd.Flags().Bool("report", false, "print postings grouped by company")
	jobsCmd.Flags().Bool("dump", false, "dump postings to a temporary json file")
	jobsCmd.Flags().BoolP("interactive", "i", false, "ask what to do with the postings")

	viper.BindPFlag("jobs.query", jobsCmd.Flags().Lookup("query"))
	viper.BindPFlag("jobs.location", jobsCmd.Flags().Lookup("location"))
	viper.BindPFlag("jobs.minimum-match", jobsCmd.Flags().Lookup("min-match"))
	viper.BindPFlag("jobs.exclude-companies", jobsCmd.Flags().Lookup("exclude-company"))
}

func listJobs(cmd *cobra.Command) {
	logger, config := setup()

	ctx, cancel := commandContext()
	defer cancel()

	skills := userSkills(ctx, config, logger)
	cat := loadCatalog(config, logger)

	postings, err := matchJobs(ctx, config.Jobs, skills, cat, logger)
	if err != nil {
		logger.Fatal("filtering failed", zap.Error(err))
	}

	if postings.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no postings left after filters"))
		return
	}

	out := cmd.OutOrStdout()
	printJobs(out, postings)

	if report, _ := cmd.Flags().GetBool("report"); report {
		if err := handleJobsAction(PromptReportByCompanies, logger, config.Jobs, postings); err != nil {
			logger.Fatal("reporting", zap.Error(err))
		}
	}

	if dump, _ := cmd.Flags().GetBool("dump"); dump {
		if err := handleJobsAction(PromptJobsToFile, logger, config.Jobs, postings); err != nil {
			logger.Fatal("dumping", zap.Error(err))
		}
	}

	if interactive, _ := cmd.Flags().GetBool("interactive"); !interactive {
		return
	}

	for {
		logger.Info("current list of postings", zap.Int("count", postings.Len()))

		_, action, err := jobsPrompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleJobsAction(action, logger, config.Jobs, postings); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}

		if action == PromptDropJobs {
			printJobs(out, postings)
		}
	}
}

// matchJobs scores every catalog posting and runs the filtering pipeline.
func matchJobs(ctx context.Context, cfg *JobsConfig, skills []string, cat *catalog.Catalog, logger *zap.Logger) (*jobs.Jobs, error) {
	postings := jobs.Score(skills, cat.Jobs)
	logger.Info("scoring job postings", zap.Int("count", postings.Len()))

	pipeline := filtering.New([]filtering.Filter{
		filtering.NewQuery(cfg.Query),
		filtering.NewLocation(cfg.Location),
		filtering.NewExcludedCompanies(cfg.ExcludeCompanies, logger),
		filtering.NewDismissed(cfg.DismissedFile, logger),
		filtering.NewMinimumMatch(cfg.MinimumMatch),
	}, logger)

	for _, status := range pipeline.Describe() {
		logger.Debug("filter configured",
			zap.String("name", status.Name),
			zap.Bool("enabled", status.Enabled),
			zap.String("reason", status.Reason),
			zap.Any("details", status.Details),
		)
	}

	return pipeline.RunFilters(ctx, postings)
}

func handleJobsAction(action string, logger *zap.Logger, cfg *JobsConfig, postings *jobs.Jobs) error {
	switch action {
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	case PromptReportByCompanies:
		pretty, _ := json.MarshalIndent(postings.ReportByCompany(), "", "  ")
		logger.Info(string(pretty), zap.Int("postings count", postings.Len()))
		return nil
	case PromptJobsToFile:
		filename, err := postings.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		logger.Info("dumping result to file", zap.String("filename", filename))
		return nil
	case PromptDropJobs:
		return dropJobs(logger, cfg.DismissedFile, postings)
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

// dropJobs removes postings chosen by the user. With a dismissed file configured the
// choice is stored and applied on the next runs too.
func dropJobs(logger *zap.Logger, dismissedFile string, postings *jobs.Jobs) error {
	for {
		items := make([]string, 0, postings.Len()+1)
		for _, p := range postings.Items {
			items = append(items, fmt.Sprintf("%s %s / %s / %d%%", p.ID, p.Title, p.Company, p.MatchScore()))
		}

		jobPrompt := promptui.Select{
			Label: "Choose a posting to drop and press ENTER",
			Items: append(items, PromptBack),
		}

		_, selected, err := jobPrompt.Run()
		if err != nil {
			return err
		}

		if selected == PromptBack {
			return nil
		}

		id := strings.Split(selected, " ")[0]
		if postings.FindByID(id) == nil {
			return fmt.Errorf("there is no such posting id %s", id)
		}

		if dismissedFile != "" {
			dismissed, err := jobs.LoadDismissed(dismissedFile)
			if err != nil {
				return err
			}

			dismissed.Append(postings.ToDismissed([]string{id}))

			if err = dismissed.ToFile(dismissedFile); err != nil {
				return err
			}

			logger.Info("appended to dismissed file", zap.String("filename", dismissedFile))
		}

		postings.Exclude(jobs.PostingIDField, []string{id})
		logger.Info("posting dropped", zap.String("posting_id", id), zap.Int("postings_left", postings.Len()))
	}
}

func printJobs(w io.Writer, postings *jobs.Jobs) {
	for _, p := range postings.Items {
		fmt.Fprintf(w, "[%s] %s at %s\n", p.ID, p.Title, p.Company)
		fmt.Fprintf(w, "  %s | %s | %s | posted %s\n", p.Location, p.Salary, p.Type, p.PostedDate)
		printGap(w, p.Gap)
	}
}
