package filtering

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/career-companion/internal/jobs"
	"github.com/spigell/career-companion/internal/logger"
)

// Filter represents a single filtering step applied to job postings.
type Filter interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	Validate() error
	Apply(ctx context.Context, j *jobs.Jobs) (*jobs.Jobs, Step, error)
}

// Step describes the result of executing a filtering step.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// Status represents runtime information about a filter.
type Status struct {
	Name    string
	Enabled bool
	Reason  string
	Details map[string]string
}

// statusProvider is implemented by filters that can supply detailed status information.
type statusProvider interface {
	Status() Status
}

// toggle holds the enabled state shared by the filters. The zero value is enabled.
type toggle struct {
	disabled bool
	reason   string
}

func (t *toggle) Disable(reason string) {
	t.disabled = true
	t.reason = reason
}

func (t *toggle) IsEnabled() bool { return !t.disabled }

type Pipeline struct {
	steps  []Filter
	logger *zap.Logger
}

func New(steps []Filter, l *zap.Logger) *Pipeline {
	return &Pipeline{
		steps:  steps,
		logger: logger.OrNop(l),
	}
}

// DisableByName marks a filter with the provided name as disabled while keeping it in the list.
func (p *Pipeline) DisableByName(name, reason string) {
	for _, step := range p.steps {
		if step.Name() == name {
			step.Disable(reason)
		}
	}
}

// RunFilters validates every enabled step, then applies them in order. The surviving
// postings are returned best match first.
func (p *Pipeline) RunFilters(ctx context.Context, j *jobs.Jobs) (*jobs.Jobs, error) {
	for _, step := range p.steps {
		if !step.IsEnabled() {
			continue
		}
		if err := step.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}
	}

	for _, step := range p.steps {
		if !step.IsEnabled() {
			p.logger.Debug("filter disabled", zap.String("name", step.Name()))
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		next, info, err := step.Apply(ctx, j)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}

		p.logger.Info("filter step",
			zap.String("name", step.Name()),
			zap.Int("initial", info.Initial),
			zap.Int("dropped", info.Dropped),
			zap.Int("left", info.Left),
		)

		j = next
	}

	j.SortByMatch()
	return j, nil
}

// Describe returns status entries for the pipeline filters.
func (p *Pipeline) Describe() []Status {
	statuses := make([]Status, 0, len(p.steps))
	for _, step := range p.steps {
		if reporter, ok := step.(statusProvider); ok {
			statuses = append(statuses, reporter.Status())
			continue
		}

		statuses = append(statuses, Status{
			Name:    step.Name(),
			Enabled: step.IsEnabled(),
		})
	}
	return statuses
}

func keep(j *jobs.Jobs, match func(*jobs.Posting) bool) (*jobs.Jobs, Step) {
	initial := j.Len()
	next := j.Keep(match)
	return next, Step{Initial: initial, Dropped: initial - next.Len(), Left: next.Len()}
}
