package intake

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/spigell/career-companion/internal/logger"
	"github.com/spigell/career-companion/internal/utils"
)

// DefaultParseDelay mimics the time a real parser takes to process a resume.
const DefaultParseDelay = 2 * time.Second

var ErrUnsupportedDocument = errors.New("please upload a PDF or Word document")

// ParsedResume is the structured result of parsing a resume.
type ParsedResume struct {
	FileName   string   `mapstructure:"fileName" json:"file_name"`
	Skills     []string `mapstructure:"skills" json:"skills"`
	Experience string   `mapstructure:"experience" json:"experience"`
	Education  string   `mapstructure:"education" json:"education"`
	JobTitles  []string `mapstructure:"jobTitles" json:"job_titles"`
}

type ResumeParser interface {
	Parse(ctx context.Context, doc *Document) (*ParsedResume, error)
}

// SimulatedParser returns a fixed result after Delay for any PDF or Word document.
type SimulatedParser struct {
	Delay  time.Duration
	Logger *zap.Logger
}

func NewSimulatedParser(logger *zap.Logger) *SimulatedParser {
	return &SimulatedParser{
		Delay:  DefaultParseDelay,
		Logger: logger,
	}
}

func (p *SimulatedParser) Parse(ctx context.Context, doc *Document) (*ParsedResume, error) {
	log := logger.OrNop(p.Logger).With(zap.String("document", doc.Name), zap.String("mime", doc.MIME))

	if doc.Kind != KindPDF && doc.Kind != KindWord {
		return nil, fmt.Errorf("%w: %s is %s", ErrUnsupportedDocument, doc.Name, doc.MIME)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log.Debug("parsing resume", zap.Duration("delay", p.Delay))
	if err := utils.WaitFor(ctx, p.Delay); err != nil {
		return nil, err
	}

	var parsed ParsedResume
	if err := mapstructure.Decode(samplePayload(doc.Name), &parsed); err != nil {
		return nil, fmt.Errorf("decoding parser response: %w", err)
	}

	log.Info("resume processed", zap.Strings("skills", parsed.Skills))
	return &parsed, nil
}

func samplePayload(fileName string) map[string]any {
	return map[string]any{
		"fileName":   fileName,
		"skills":     []string{"React", "TypeScript", "Node.js", "Python", "Machine Learning"},
		"experience": "3+ years",
		"education":  "Bachelor's in Computer Science",
		"jobTitles":  []string{"Software Developer", "Frontend Engineer"},
	}
}
