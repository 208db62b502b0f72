package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/career-companion/internal/ai"
	"github.com/spigell/career-companion/internal/ai/gemini"
	"github.com/spigell/career-companion/internal/ats"
	"github.com/spigell/career-companion/internal/catalog"
	"github.com/spigell/career-companion/internal/dashboard"
	"github.com/spigell/career-companion/internal/intake"
	"github.com/spigell/career-companion/internal/logger"
	"github.com/spigell/career-companion/internal/resumetemplate"
	"github.com/spigell/career-companion/internal/secrets"
	"github.com/spigell/career-companion/internal/skillgap"
)

// setup builds the logger and the config for a command.
func setup() (*zap.Logger, *Config) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	return logger, config
}

// commandContext is canceled on interrupt, aborting any running analysis.
func commandContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func loadCatalog(config *Config, logger *zap.Logger) *catalog.Catalog {
	if config.Catalog == "" {
		return catalog.Default()
	}

	c, err := catalog.Load(config.Catalog)
	if err != nil {
		logger.Fatal("loading catalog", zap.Error(err))
	}
	logger.Debug("using catalog override", zap.String("file", config.Catalog))
	return c
}

func loadTemplates(config *Config, logger *zap.Logger) *resumetemplate.Templates {
	templates := resumetemplate.Builtin()
	if config.Templates.File == "" {
		return templates
	}

	if _, err := os.Stat(config.Templates.File); errors.Is(err, os.ErrNotExist) {
		logger.Debug("templates file does not exist yet, using built-in templates",
			zap.String("file", config.Templates.File),
		)
		return templates
	}

	overrides, err := resumetemplate.LoadFile(config.Templates.File)
	if err != nil {
		logger.Fatal("loading templates", zap.Error(err))
	}
	for _, t := range overrides.Items {
		templates.Replace(t)
	}
	logger.Debug("using templates override",
		zap.String("file", config.Templates.File),
		zap.Strings("ids", overrides.IDs()),
	)
	return templates
}

// configuredSkills returns the skills from the config merged with the --skill flags.
func configuredSkills(config *Config) []string {
	skills := make([]string, 0, len(config.Skills)+len(extraSkills))
	for _, s := range dashboard.MergeSkills(config.Skills, extraSkills) {
		if s = strings.TrimSpace(s); s != "" {
			skills = append(skills, s)
		}
	}
	return skills
}

type intakeResult struct {
	state dashboard.State
	scan  *ats.Analysis
}

// runIntake loads the profile and parses the resume concurrently, and scans the resume
// when scan is set. Skills are merged in a fixed order: profile, resume, then the
// configured skills.
func runIntake(ctx context.Context, config *Config, logger *zap.Logger, scan bool) (*intakeResult, error) {
	var (
		profile *intake.Profile
		parsed  *intake.ParsedResume
		doc     *intake.Document
		result  = &intakeResult{}
	)

	if config.Resume != "" {
		d, err := intake.OpenDocument(config.Resume)
		if err != nil {
			return nil, err
		}
		doc = d
	}

	g, ctx := errgroup.WithContext(ctx)

	if config.Profile != "" {
		g.Go(func() error {
			p, err := intake.LoadProfile(config.Profile)
			if err != nil {
				return err
			}
			if err := p.Validate(); err != nil {
				return fmt.Errorf("profile %q: %w", config.Profile, err)
			}
			profile = p
			logger.Info("profile loaded", zap.String("name", p.Name), zap.Int("skills", len(p.Skills)))
			return nil
		})
	}

	if doc != nil {
		g.Go(func() error {
			parser := intake.NewSimulatedParser(logger)
			parser.Delay = config.Analysis.ParseDelay

			r, err := parser.Parse(ctx, doc)
			if err != nil {
				return fmt.Errorf("parsing resume: %w", err)
			}
			parsed = r
			return nil
		})

		if scan {
			g.Go(func() error {
				analyzer := ats.NewSimulatedAnalyzer(logger)
				analyzer.Delay = config.Analysis.ScanDelay

				a, err := analyzer.Analyze(ctx, doc)
				if errors.Is(err, ats.ErrNotPDF) {
					logger.Warn("skipping ats scan", zap.String("file", doc.Name), zap.Error(err))
					return nil
				}
				if err != nil {
					return fmt.Errorf("scanning resume: %w", err)
				}
				result.scan = a
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	result.state = dashboard.State{}.
		WithProfile(profile).
		WithResume(parsed).
		WithSkills(configuredSkills(config))

	logger.Debug("skills aggregated", zap.Strings("skills", result.state.Skills))
	return result, nil
}

// userSkills runs the intake without the ats scan and stops the command when there is
// nothing to match.
func userSkills(ctx context.Context, config *Config, logger *zap.Logger) []string {
	res, err := runIntake(ctx, config, logger, false)
	if err != nil {
		logger.Fatal("collecting skills", zap.Error(err))
	}

	if len(res.state.Skills) == 0 {
		logger.Fatal("no skills to match",
			zap.String("hint", "set profile or resume in the config file or pass --skill"),
		)
	}
	return res.state.Skills
}

func newAdvisor(ctx context.Context, cfg *AIConfig, logger *zap.Logger) (ai.Advisor, error) {
	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		File:  cfg.Gemini.APIKeyFile,
		Env:   "GEMINI_API_KEY",
		Value: cfg.Gemini.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file, GEMINI_API_KEY_FILE or GEMINI_API_KEY)", err)
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.MaxRetries, logger)
	if err != nil {
		return nil, err
	}

	return gemini.NewAdvisor(generator, logger, cfg.Gemini.MaxLogLength), nil
}

func printGap(w io.Writer, gap skillgap.Result) {
	fmt.Fprintf(w, "  Match: %d%% %s\n", gap.CompletionPercentage, progressBar(gap.CompletionPercentage))
	fmt.Fprintf(w, "  Matched (%d): %s\n", len(gap.Matched), listOrDash(gap.Matched))
	fmt.Fprintf(w, "  Missing (%d): %s\n", len(gap.Missing), listOrDash(gap.Missing))
}

func progressBar(pct int) string {
	const width = 20
	filled := pct * width / 100
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", width-filled) + "]"
}

func listOrDash(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}
