package filtering

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/career-companion/internal/jobs"
	"github.com/spigell/career-companion/internal/logger"
)

type companiesFilter struct {
	toggle
	companies []string
	logger    *zap.Logger
}

// NewExcludedCompanies creates a filter that removes postings of the listed companies.
func NewExcludedCompanies(companies []string, l *zap.Logger) Filter {
	return &companiesFilter{
		companies: companies,
		logger:    logger.OrNop(l),
	}
}

func (f *companiesFilter) Name() string { return "excluded_companies" }

func (f *companiesFilter) Validate() error { return nil }

func (f *companiesFilter) Apply(_ context.Context, j *jobs.Jobs) (*jobs.Jobs, Step, error) {
	initial := j.Len()
	if len(f.companies) == 0 {
		return j, Step{Initial: initial, Dropped: 0, Left: j.Len()}, nil
	}

	excluded := j.Exclude(jobs.PostingCompanyField, f.companies)
	if len(excluded) > 0 {
		f.logger.Info("excluding postings by companies",
			zap.Strings("excluded_companies", f.companies),
			zap.Strings("excluded_postings", excluded),
			zap.Int("postings_left", j.Len()),
		)
	}

	return j, Step{Initial: initial, Dropped: len(excluded), Left: j.Len()}, nil
}

func (f *companiesFilter) Status() Status {
	details := map[string]string{}
	if len(f.companies) > 0 {
		details["companies"] = strings.Join(f.companies, ",")
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
