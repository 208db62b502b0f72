package gemini

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/spigell/career-companion/internal/ai"
	"github.com/spigell/career-companion/internal/logger"
	"github.com/spigell/career-companion/internal/utils"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	Model() string
}

// Advisor asks Gemini for a learning plan that closes a skill gap.
type Advisor struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

//go:embed prompt.md
var promptTemplate string

const (
	defaultMaxLogLength = 200
	defaultPriority     = "medium"
)

func NewAdvisor(generator contentGenerator, l *zap.Logger, maxLogLength int) *Advisor {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Advisor{
		generator: generator,
		logger:    logger.WithFields(l, logger.CommonFields(Provider, generator.Model())...),
		maxLogLen: maxLogLength,
	}
}

func (a *Advisor) Recommend(ctx context.Context, req ai.LearningRequest) (*ai.LearningPlan, error) {
	log := a.logger.With(logger.GapFields(req.Target, req.Gap)...)

	if len(req.Gap.Missing) == 0 {
		log.Debug("nothing to learn, skipping gemini request")
		return &ai.LearningPlan{Items: []ai.LearningItem{}}, nil
	}

	prompt := buildPrompt(req)

	log.Debug("gemini generate content request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, a.maxLogLen)),
	)

	raw, err := a.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	log.Debug("gemini generate content response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, a.maxLogLen)),
	)

	plan, err := parseResponse(raw)
	if err != nil {
		return nil, err
	}

	plan.Items = completeItems(plan.Items, req.Gap.Missing)
	plan.Raw = raw
	return plan, nil
}

func buildPrompt(req ai.LearningRequest) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Target: {{TARGET}}\nSkills: {{SKILLS}}\nMissing: {{MISSING}}\n\nJSON Response:"
	}

	target := strings.TrimSpace(req.Target)
	if target == "" {
		target = "not specified"
	}

	replacer := strings.NewReplacer(
		"{{TARGET}}", target,
		"{{SKILLS}}", listOrNone(req.Skills),
		"{{MATCHED}}", listOrNone(req.Gap.Matched),
		"{{MISSING}}", listOrNone(req.Gap.Missing),
		"{{COMPLETION}}", strconv.Itoa(req.Gap.CompletionPercentage),
	)
	return replacer.Replace(template)
}

func listOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}

func parseResponse(raw string) (*ai.LearningPlan, error) {
	cleaned := extractJSON(raw)

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	plan := &ai.LearningPlan{
		Plan:    coerceString(data["learning_plan"]),
		Summary: coerceString(data["summary"]),
	}

	entries, _ := data["missing_skills"].([]any)
	for _, entry := range entries {
		switch v := entry.(type) {
		case map[string]any:
			item := ai.LearningItem{
				Skill:        coerceString(v["skill"]),
				Priority:     strings.ToLower(coerceString(v["priority"])),
				LearningTime: coerceString(v["learning_time"]),
				Suggestion:   coerceString(v["suggestion"]),
			}
			if item.Skill != "" {
				plan.Items = append(plan.Items, item)
			}
		case string:
			if skill := strings.TrimSpace(v); skill != "" {
				plan.Items = append(plan.Items, ai.LearningItem{Skill: skill})
			}
		}
	}

	return plan, nil
}

// completeItems fills blank priorities and appends the missing skills the model skipped.
func completeItems(items []ai.LearningItem, missing []string) []ai.LearningItem {
	out := make([]ai.LearningItem, 0, max(len(items), len(missing)))
	covered := make(map[string]struct{}, len(items))
	for _, item := range items {
		if item.Priority == "" {
			item.Priority = defaultPriority
		}
		covered[strings.ToLower(item.Skill)] = struct{}{}
		out = append(out, item)
	}

	for _, skill := range missing {
		if _, ok := covered[strings.ToLower(skill)]; ok {
			continue
		}
		out = append(out, ai.LearningItem{Skill: skill, Priority: defaultPriority})
	}
	return out
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case fmt.Stringer:
		return strings.TrimSpace(val.String())
	default:
		if v == nil {
			return ""
		}
		bytes, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(bytes)
	}
}
