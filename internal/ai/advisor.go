package ai

import (
	"context"

	"github.com/spigell/career-companion/internal/skillgap"
)

// LearningRequest describes the gap a learning plan is requested for.
type LearningRequest struct {
	Target string
	Skills []string
	Gap    skillgap.Result
}

type LearningItem struct {
	Skill        string `json:"skill"`
	Priority     string `json:"priority"`
	LearningTime string `json:"learning_time"`
	Suggestion   string `json:"suggestion"`
}

type LearningPlan struct {
	Items   []LearningItem `json:"items"`
	Plan    string         `json:"plan"`
	Summary string         `json:"summary"`
	Raw     string         `json:"-"`
}

type Advisor interface {
	Recommend(ctx context.Context, req LearningRequest) (*LearningPlan, error)
}
