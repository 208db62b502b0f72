package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/career-companion/internal/ai"
	"github.com/spigell/career-companion/internal/catalog"
	"github.com/spigell/career-companion/internal/fieldinterest"
	"github.com/spigell/career-companion/internal/logger"
)

const PromptOtherField = "Other..."

var fieldCmd = &cobra.Command{
	Use:   "field [name]",
	Short: "Analyze your readiness for a field of interest and print a learning roadmap",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		analyzeField(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(fieldCmd)

	fieldCmd.Flags().Bool("list", false, "list popular fields")
	fieldCmd.Flags().Bool("plan", false, "ask the AI advisor for a learning plan (requires ai.enabled)")
}

func analyzeField(cmd *cobra.Command, args []string) {
	l, config := setup()
	cat := loadCatalog(config, l)
	out := cmd.OutOrStdout()

	if list, _ := cmd.Flags().GetBool("list"); list {
		fmt.Fprintln(out, "Popular fields:")
		for _, name := range cat.SuggestedFields {
			fmt.Fprintf(out, "  - %s\n", name)
		}
		fmt.Fprintln(out, "Curated roadmaps:")
		for _, f := range cat.Fields {
			fmt.Fprintf(out, "  - %s (%s)\n", f.Key, f.Name)
		}
		return
	}

	ctx, cancel := commandContext()
	defer cancel()

	var name string
	if len(args) > 0 {
		name = args[0]
	} else {
		name = chooseField(cat, l)
	}

	skills := userSkills(ctx, config, l)

	analysis, err := fieldinterest.Analyze(cat, skills, name)
	if err != nil {
		l.Fatal("analyzing field", zap.String("field", name), zap.Error(err))
	}
	l.Info("field analyzed", logger.GapFields(analysis.Field.Name, analysis.Gap)...)

	printField(out, analysis)

	if plan, _ := cmd.Flags().GetBool("plan"); plan {
		requestPlan(ctx, out, config, l, ai.LearningRequest{
			Target: analysis.Field.Name,
			Skills: skills,
			Gap:    analysis.Gap,
		})
	}
}

func chooseField(cat *catalog.Catalog, l *zap.Logger) string {
	fieldPrompt := promptui.Select{
		Label: "Choose a field of interest",
		Items: append(append([]string{}, cat.SuggestedFields...), PromptOtherField),
	}

	_, selected, err := fieldPrompt.Run()
	if err != nil {
		l.Fatal("exiting", zap.Error(err))
	}
	if selected != PromptOtherField {
		return selected
	}

	namePrompt := promptui.Prompt{
		Label: "Field name",
		Validate: func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fieldinterest.ErrEmptyField
			}
			return nil
		},
	}
	name, err := namePrompt.Run()
	if err != nil {
		l.Fatal("exiting", zap.Error(err))
	}
	return name
}

func printField(w io.Writer, a *fieldinterest.Analysis) {
	f := a.Field
	fmt.Fprintf(w, "%s\n", f.Name)
	fmt.Fprintf(w, "  %s\n", f.Description)
	fmt.Fprintf(w, "  Salary: %s | Growth: %s\n", f.AverageSalary, f.GrowthRate)
	printGap(w, a.Gap)

	fmt.Fprintln(w, "Learning roadmap:")
	for i, phase := range f.Roadmap {
		fmt.Fprintf(w, "  %d. %s (%s)\n", i+1, phase.Name, phase.Duration)
		fmt.Fprintf(w, "     Skills: %s\n", listOrDash(phase.Skills))
		for _, r := range phase.Resources {
			fmt.Fprintf(w, "     - [%s] %s: %s\n", r.Type, r.Title, r.URL)
		}
	}
}

// requestPlan prints an AI learning plan. Failures are logged, the analysis already
// printed stays valid.
func requestPlan(ctx context.Context, w io.Writer, config *Config, l *zap.Logger, req ai.LearningRequest) {
	if !config.AI.Enabled {
		l.Warn("skipping learning plan", zap.String("reason", "ai is disabled"),
			zap.String("hint", "set ai.enabled in the configuration file"),
		)
		return
	}

	advisor, err := newAdvisor(ctx, config.AI, l)
	if err != nil {
		l.Warn("skipping learning plan", zap.Error(err))
		return
	}

	plan, err := advisor.Recommend(ctx, req)
	if err != nil {
		l.Warn("learning plan request failed", zap.Error(err))
		return
	}

	printPlan(w, plan)
}

func printPlan(w io.Writer, plan *ai.LearningPlan) {
	if len(plan.Items) == 0 {
		fmt.Fprintln(w, "Learning plan: nothing to learn, all required skills are covered")
		return
	}

	fmt.Fprintln(w, "Learning plan:")
	for _, item := range plan.Items {
		fmt.Fprintf(w, "  - %s [%s]", item.Skill, item.Priority)
		if item.LearningTime != "" {
			fmt.Fprintf(w, " %s", item.LearningTime)
		}
		fmt.Fprintln(w)
		if item.Suggestion != "" {
			fmt.Fprintf(w, "    %s\n", item.Suggestion)
		}
	}
	if plan.Plan != "" {
		fmt.Fprintf(w, "  %s\n", plan.Plan)
	}
	if plan.Summary != "" {
		fmt.Fprintf(w, "  %s\n", plan.Summary)
	}
}
