package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spigell/career-companion/internal/jobs"
	"github.com/spigell/career-companion/internal/skillgap"
)

// resetViper gives a test a clean global viper with the application defaults.
func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	initViper()
	t.Cleanup(func() {
		viper.Reset()
		initViper()
	})
}

func TestGetConfigDefaults(t *testing.T) {
	resetViper(t)

	config, err := getConfig()
	require.NoError(t, err)

	assert.Equal(t, 2*time.Second, config.Analysis.ParseDelay)
	assert.Equal(t, 3*time.Second, config.Analysis.ScanDelay)
	assert.Equal(t, "gemini-2.5-pro", config.AI.Gemini.Model)
	assert.Equal(t, 2, config.AI.Gemini.MaxRetries)
	assert.Equal(t, 200, config.AI.Gemini.MaxLogLength)
	assert.False(t, config.AI.Enabled)
	assert.Empty(t, config.Templates.File)
	assert.Zero(t, config.Jobs.MinimumMatch)
}

func TestGetConfigFromEnvironment(t *testing.T) {
	t.Setenv("CAREER_COMPANION_JOBS_MINIMUM_MATCH", "50")
	t.Setenv("CAREER_COMPANION_ANALYSIS_PARSE_DELAY", "0s")
	t.Setenv("CAREER_COMPANION_SKILLS", "Go,SQL")
	t.Setenv("GEMINI_API_KEY", "secret")
	resetViper(t)

	config, err := getConfig()
	require.NoError(t, err)

	assert.Equal(t, 50, config.Jobs.MinimumMatch)
	assert.Zero(t, config.Analysis.ParseDelay)
	assert.Equal(t, []string{"Go", "SQL"}, config.Skills)
	assert.Equal(t, "secret", config.AI.Gemini.APIKey)
}

func TestGetConfigFromFile(t *testing.T) {
	resetViper(t)

	path := filepath.Join(t.TempDir(), "career-companion.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
profile: me.yaml
jobs:
  location: Remote
  exclude-companies: [TechCorp Inc]
ai:
  enabled: true
  gemini:
    model: gemini-2.5-flash
`), 0o600))

	viper.SetConfigFile(path)
	require.NoError(t, viper.ReadInConfig())

	config, err := getConfig()
	require.NoError(t, err)

	assert.Equal(t, "me.yaml", config.Profile)
	assert.Equal(t, "Remote", config.Jobs.Location)
	assert.Equal(t, []string{"TechCorp Inc"}, config.Jobs.ExcludeCompanies)
	assert.True(t, config.AI.Enabled)
	assert.Equal(t, "gemini-2.5-flash", config.AI.Gemini.Model)
	assert.Equal(t, 2, config.AI.Gemini.MaxRetries)
}

func TestConfiguredSkills(t *testing.T) {
	previous := extraSkills
	t.Cleanup(func() { extraSkills = previous })

	extraSkills = []string{"Docker", " ", "Go"}
	config := &Config{Skills: []string{"Go", "SQL", ""}}

	assert.Equal(t, []string{"Go", "SQL", "Docker"}, configuredSkills(config))
}

func TestRunIntake(t *testing.T) {
	previous := extraSkills
	t.Cleanup(func() { extraSkills = previous })
	extraSkills = []string{"Docker"}

	dir := t.TempDir()
	profile := filepath.Join(dir, "profile.yaml")
	require.NoError(t, os.WriteFile(profile, []byte(`
name: Ada
current-role: Engineer
skills: [Go, React]
`), 0o600))

	resume := filepath.Join(dir, "resume.pdf")
	require.NoError(t, os.WriteFile(resume, []byte("%PDF-1.4\n%EOF\n"), 0o600))

	config := &Config{
		Profile:  profile,
		Resume:   resume,
		Analysis: &AnalysisConfig{},
	}

	res, err := runIntake(context.Background(), config, zap.NewNop(), true)
	require.NoError(t, err)

	assert.Equal(t, "Ada", res.state.DisplayName())
	assert.Equal(t,
		[]string{"Go", "React", "TypeScript", "Node.js", "Python", "Machine Learning", "Docker"},
		res.state.Skills,
	)
	require.NotNil(t, res.scan)
	assert.Equal(t, 75, res.scan.Score)
	assert.Equal(t, "resume.pdf", res.scan.FileName)
}

func TestRunIntakeUnsupportedResume(t *testing.T) {
	resume := filepath.Join(t.TempDir(), "resume.txt")
	require.NoError(t, os.WriteFile(resume, []byte("plain text"), 0o600))

	config := &Config{Resume: resume, Analysis: &AnalysisConfig{}}

	_, err := runIntake(context.Background(), config, zap.NewNop(), true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing resume")
}

func TestRunIntakeInvalidProfile(t *testing.T) {
	profile := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(profile, []byte("name: Ada\n"), 0o600))

	_, err := runIntake(context.Background(), &Config{Profile: profile, Analysis: &AnalysisConfig{}}, zap.NewNop(), false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "current role")
}

func TestPrintGap(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printGap(&buf, skillgap.MatchContains(
		[]string{"React", "TypeScript", "Node.js"},
		[]string{"React", "TypeScript", "Node.js", "GraphQL", "AWS"},
	))

	assert.Equal(t, "  Match: 60% [############........]\n"+
		"  Matched (3): React, TypeScript, Node.js\n"+
		"  Missing (2): GraphQL, AWS\n", buf.String())

	buf.Reset()
	printGap(&buf, skillgap.MatchContains([]string{"Python"}, nil))
	assert.Contains(t, buf.String(), "Matched (0): -")
}

func TestTop(t *testing.T) {
	t.Parallel()

	postings := &jobs.Jobs{Items: []*jobs.Posting{{}, {}, {}, {}}}
	assert.Equal(t, 3, top(postings, 3).Len())
	assert.Equal(t, 4, postings.Len())

	short := &jobs.Jobs{Items: []*jobs.Posting{{}}}
	assert.Same(t, short, top(short, 3))
}
