package filtering

import (
	"context"
	"strings"

	"github.com/spigell/career-companion/internal/jobs"
)

type queryFilter struct {
	toggle
	query string
}

// NewQuery keeps postings whose title or company contains the query, ignoring case.
func NewQuery(query string) Filter {
	return &queryFilter{query: strings.TrimSpace(query)}
}

func (f *queryFilter) Name() string { return "query" }

func (f *queryFilter) Validate() error { return nil }

func (f *queryFilter) Apply(_ context.Context, j *jobs.Jobs) (*jobs.Jobs, Step, error) {
	if f.query == "" {
		return j, Step{Initial: j.Len(), Left: j.Len()}, nil
	}

	q := strings.ToLower(f.query)
	next, step := keep(j, func(p *jobs.Posting) bool {
		return strings.Contains(strings.ToLower(p.Title), q) ||
			strings.Contains(strings.ToLower(p.Company), q)
	})
	return next, step, nil
}

func (f *queryFilter) Status() Status {
	details := map[string]string{}
	if f.query != "" {
		details["query"] = f.query
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
