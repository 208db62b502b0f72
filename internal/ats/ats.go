// Package ats scores a resume for compatibility with applicant tracking systems.
package ats

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spigell/career-companion/internal/intake"
	"github.com/spigell/career-companion/internal/logger"
	"github.com/spigell/career-companion/internal/skillgap"
	"github.com/spigell/career-companion/internal/utils"
)

// DefaultScanDelay mimics the time an ATS scan takes.
const DefaultScanDelay = 3 * time.Second

var ErrNotPDF = errors.New("upload a PDF file to get your ATS compatibility score")

var (
	// DefaultTargetKeywords are the keywords the target role is scanned for.
	DefaultTargetKeywords = []string{"React", "JavaScript", "Python", "Git", "TypeScript", "AWS", "Docker", "Kubernetes", "GraphQL"}
	// DefaultResumeKeywords are the keywords the simulated scan finds in any resume.
	DefaultResumeKeywords = []string{"React", "JavaScript", "Python", "Git"}
)

type Keywords struct {
	Found   []string `json:"found"`
	Missing []string `json:"missing"`
}

type Analysis struct {
	ID          uuid.UUID `json:"id"`
	FileName    string    `json:"file_name"`
	Score       int       `json:"score"`
	Strengths   []string  `json:"strengths"`
	Weaknesses  []string  `json:"weaknesses"`
	Suggestions []string  `json:"suggestions"`
	Keywords    Keywords  `json:"keywords"`
}

func (a *Analysis) Rating() Rating {
	return RatingFor(a.Score)
}

type Analyzer interface {
	Analyze(ctx context.Context, doc *intake.Document) (*Analysis, error)
}

// SimulatedAnalyzer returns a fixed analysis after Delay. Keywords are the exact,
// case-insensitive overlap of ResumeKeywords with TargetKeywords.
type SimulatedAnalyzer struct {
	Delay          time.Duration
	TargetKeywords []string
	ResumeKeywords []string
	Logger         *zap.Logger
}

func NewSimulatedAnalyzer(logger *zap.Logger) *SimulatedAnalyzer {
	return &SimulatedAnalyzer{
		Delay:  DefaultScanDelay,
		Logger: logger,
	}
}

func (a *SimulatedAnalyzer) Analyze(ctx context.Context, doc *intake.Document) (*Analysis, error) {
	log := logger.OrNop(a.Logger).With(zap.String("document", doc.Name))

	if doc.Kind != intake.KindPDF {
		return nil, fmt.Errorf("%w: %s is %s", ErrNotPDF, doc.Name, doc.MIME)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log.Debug("scanning resume", zap.Duration("delay", a.Delay))
	if err := utils.WaitFor(ctx, a.Delay); err != nil {
		return nil, err
	}

	target := a.TargetKeywords
	if target == nil {
		target = DefaultTargetKeywords
	}
	found := a.ResumeKeywords
	if found == nil {
		found = DefaultResumeKeywords
	}
	keywords := skillgap.MatchExact(found, target)

	analysis := &Analysis{
		ID:       uuid.New(),
		FileName: doc.Name,
		Score:    75,
		Strengths: []string{
			"Clear contact information",
			"Relevant work experience",
			"Technical skills section",
			"Education details present",
		},
		Weaknesses: []string{
			"Missing keywords for target role",
			"No quantified achievements",
			"Generic objective statement",
			"Inconsistent formatting",
		},
		Suggestions: []string{
			"Add more industry-specific keywords",
			"Include metrics and numbers in achievements",
			"Use bullet points consistently",
			"Add a professional summary",
			"Include relevant certifications",
		},
		Keywords: Keywords{
			Found:   keywords.Matched,
			Missing: keywords.Missing,
		},
	}

	log.Info("ats scan finished",
		zap.Int("score", analysis.Score),
		zap.String("rating", analysis.Rating().String()),
		zap.Strings("missing_keywords", analysis.Keywords.Missing),
	)
	return analysis, nil
}
