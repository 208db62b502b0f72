package ats

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/career-companion/internal/intake"
)

func pdf(name string) *intake.Document {
	return intake.NewDocument(name, []byte("%PDF-1.7\n%%EOF\n"))
}

func TestSimulatedAnalyzerAnalyze(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.InfoLevel)
	a := &SimulatedAnalyzer{Logger: zap.New(core)}

	got, err := a.Analyze(context.Background(), pdf("cv.pdf"))
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, got.ID)
	assert.Equal(t, "cv.pdf", got.FileName)
	assert.Equal(t, 75, got.Score)
	assert.Equal(t, Good, got.Rating())
	assert.Len(t, got.Strengths, 4)
	assert.Len(t, got.Weaknesses, 4)
	assert.Len(t, got.Suggestions, 5)
	assert.Equal(t, []string{"React", "JavaScript", "Python", "Git"}, got.Keywords.Found)
	assert.Equal(t, []string{"TypeScript", "AWS", "Docker", "Kubernetes", "GraphQL"}, got.Keywords.Missing)

	entries := logs.FilterMessage("ats scan finished").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "good", entries[0].ContextMap()["rating"])
}

func TestSimulatedAnalyzerCustomKeywords(t *testing.T) {
	t.Parallel()

	a := &SimulatedAnalyzer{
		TargetKeywords: []string{"Go", "Kubernetes", "gRPC"},
		ResumeKeywords: []string{"go", "kubernetes operators"},
	}

	got, err := a.Analyze(context.Background(), pdf("cv.pdf"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Go"}, got.Keywords.Found)
	assert.Equal(t, []string{"Kubernetes", "gRPC"}, got.Keywords.Missing)
}

func TestSimulatedAnalyzerRejectsNonPDF(t *testing.T) {
	t.Parallel()

	doc := &intake.Document{Name: "cv.docx", MIME: "application/msword", Kind: intake.KindWord}
	got, err := (&SimulatedAnalyzer{}).Analyze(context.Background(), doc)
	require.ErrorIs(t, err, ErrNotPDF)
	assert.Nil(t, got)
}

func TestSimulatedAnalyzerCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	got, err := (&SimulatedAnalyzer{Delay: time.Minute}).Analyze(ctx, pdf("cv.pdf"))
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Nil(t, got)
}

func TestRating(t *testing.T) {
	t.Parallel()

	tests := []struct {
		score       int
		rating      Rating
		description string
	}{
		{score: 100, rating: Excellent, description: "Excellent ATS compatibility"},
		{score: 80, rating: Excellent, description: "Excellent ATS compatibility"},
		{score: 79, rating: Good, description: "Good ATS compatibility with room for improvement"},
		{score: 60, rating: Good, description: "Good ATS compatibility with room for improvement"},
		{score: 59, rating: NeedsWork, description: "Needs significant improvements for ATS compatibility"},
		{score: 0, rating: NeedsWork, description: "Needs significant improvements for ATS compatibility"},
	}

	for _, tt := range tests {
		got := RatingFor(tt.score)
		assert.Equal(t, tt.rating, got, tt.score)
		assert.Equal(t, tt.description, got.Description(), tt.score)
	}
}

func TestNewSimulatedAnalyzerDefaults(t *testing.T) {
	t.Parallel()

	assert.Equal(t, DefaultScanDelay, NewSimulatedAnalyzer(nil).Delay)
}
