package filtering

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spigell/career-companion/internal/jobs"
)

const MinimumMatchName = "minimum_match"

type minimumMatchFilter struct {
	toggle
	minimum int
}

// NewMinimumMatch drops postings matched below minimum percent.
// A non-positive minimum disables the filter.
func NewMinimumMatch(minimum int) Filter {
	f := &minimumMatchFilter{minimum: minimum}
	if minimum <= 0 {
		f.Disable("minimum match is not set")
	}
	return f
}

func (f *minimumMatchFilter) Name() string { return MinimumMatchName }

func (f *minimumMatchFilter) Validate() error {
	if f.minimum > 100 {
		return fmt.Errorf("minimum match %d%% is above 100%%", f.minimum)
	}
	return nil
}

func (f *minimumMatchFilter) Apply(_ context.Context, j *jobs.Jobs) (*jobs.Jobs, Step, error) {
	next, step := keep(j, func(p *jobs.Posting) bool {
		return p.MatchScore() >= f.minimum
	})
	return next, step, nil
}

func (f *minimumMatchFilter) Status() Status {
	return Status{
		Name:    f.Name(),
		Enabled: f.IsEnabled(),
		Reason:  f.reason,
		Details: map[string]string{"minimum": strconv.Itoa(f.minimum)},
	}
}
