package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/career-companion/internal/ats"
	"github.com/spigell/career-companion/internal/intake"
)

var scanCmd = &cobra.Command{
	Use:   "scan <file.pdf>",
	Short: "Run an ATS compatibility scan of a PDF resume",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		scan(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

func scan(cmd *cobra.Command, path string) {
	logger, config := setup()

	ctx, cancel := commandContext()
	defer cancel()

	doc, err := intake.OpenDocument(path)
	if err != nil {
		logger.Fatal("opening resume", zap.Error(err))
	}

	analyzer := ats.NewSimulatedAnalyzer(logger)
	analyzer.Delay = config.Analysis.ScanDelay

	logger.Info("scanning resume", zap.String("file", doc.Name))

	analysis, err := analyzer.Analyze(ctx, doc)
	if err != nil {
		logger.Fatal("scanning resume", zap.Error(err))
	}

	printScan(cmd.OutOrStdout(), analysis)
}

func printScan(w io.Writer, a *ats.Analysis) {
	rating := a.Rating()
	fmt.Fprintf(w, "ATS score: %d/100 %s\n", a.Score, progressBar(a.Score))
	fmt.Fprintf(w, "  %s\n", rating.Description())

	printList(w, "Strengths", a.Strengths)
	printList(w, "Areas for improvement", a.Weaknesses)
	printList(w, "Suggestions", a.Suggestions)

	fmt.Fprintf(w, "Keywords found:   %s\n", listOrDash(a.Keywords.Found))
	fmt.Fprintf(w, "Keywords missing: %s\n", listOrDash(a.Keywords.Missing))
}

func printList(w io.Writer, title string, items []string) {
	fmt.Fprintf(w, "%s:\n", title)
	for _, item := range items {
		fmt.Fprintf(w, "  - %s\n", item)
	}
}
