package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/career-companion/internal/intake"
)

var uploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Analyze a resume (PDF or Word) and extract skills",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		upload(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(uploadCmd)
}

func upload(cmd *cobra.Command, path string) {
	logger, config := setup()

	ctx, cancel := commandContext()
	defer cancel()

	doc, err := intake.OpenDocument(path)
	if err != nil {
		logger.Fatal("opening resume", zap.Error(err))
	}

	logger.Info("analyzing resume",
		zap.String("file", doc.Name),
		zap.String("mime", doc.MIME),
		zap.Stringer("kind", doc.Kind),
	)

	parser := intake.NewSimulatedParser(logger)
	parser.Delay = config.Analysis.ParseDelay

	parsed, err := parser.Parse(ctx, doc)
	if err != nil {
		logger.Fatal("parsing resume", zap.Error(err))
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Resume:     %s\n", parsed.FileName)
	fmt.Fprintf(out, "Skills:     %s\n", listOrDash(parsed.Skills))
	fmt.Fprintf(out, "Experience: %s\n", parsed.Experience)
	fmt.Fprintf(out, "Education:  %s\n", parsed.Education)
	fmt.Fprintf(out, "Job titles: %s\n", listOrDash(parsed.JobTitles))
}
