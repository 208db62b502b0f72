package filtering

import (
	"context"
	"strings"

	"github.com/spigell/career-companion/internal/jobs"
)

type locationFilter struct {
	toggle
	location string
}

// NewLocation keeps postings whose location contains loc, ignoring case.
func NewLocation(loc string) Filter {
	return &locationFilter{location: strings.TrimSpace(loc)}
}

func (f *locationFilter) Name() string { return "location" }

func (f *locationFilter) Validate() error { return nil }

func (f *locationFilter) Apply(_ context.Context, j *jobs.Jobs) (*jobs.Jobs, Step, error) {
	if f.location == "" {
		return j, Step{Initial: j.Len(), Left: j.Len()}, nil
	}

	loc := strings.ToLower(f.location)
	next, step := keep(j, func(p *jobs.Posting) bool {
		return strings.Contains(strings.ToLower(p.Location), loc)
	})
	return next, step, nil
}

func (f *locationFilter) Status() Status {
	details := map[string]string{}
	if f.location != "" {
		details["location"] = f.location
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
