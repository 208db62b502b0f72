package filtering

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/career-companion/internal/jobs"
	"github.com/spigell/career-companion/internal/logger"
)

type dismissedFilter struct {
	toggle
	path   string
	logger *zap.Logger
}

// NewDismissed creates a filter that removes postings listed in a dismissed postings file.
func NewDismissed(path string, l *zap.Logger) Filter {
	return &dismissedFilter{
		path:   path,
		logger: logger.OrNop(l),
	}
}

func (f *dismissedFilter) Name() string { return "dismissed_file" }

func (f *dismissedFilter) Validate() error { return nil }

func (f *dismissedFilter) Apply(_ context.Context, j *jobs.Jobs) (*jobs.Jobs, Step, error) {
	initial := j.Len()
	if f.path == "" {
		return j, Step{Initial: initial, Dropped: 0, Left: j.Len()}, nil
	}

	dismissed, err := jobs.LoadDismissed(f.path)
	if err != nil {
		return j, Step{}, fmt.Errorf("getting dismissed postings from file: %w", err)
	}

	removed := j.Exclude(jobs.PostingIDField, dismissed.IDs())
	if len(removed) > 0 {
		f.logger.Info("excluding postings based on dismissed file",
			zap.String("path", f.path),
			zap.Strings("excluded_postings", removed),
			zap.Int("postings_left", j.Len()),
		)
	}

	return j, Step{Initial: initial, Dropped: len(removed), Left: j.Len()}, nil
}

func (f *dismissedFilter) Status() Status {
	details := map[string]string{}
	if f.path != "" {
		details["path"] = f.path
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
