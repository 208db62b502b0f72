// Package jobs scores job postings against a skill set and offers the collection
// helpers the filtering pipeline works with.
package jobs

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spigell/career-companion/internal/catalog"
	"github.com/spigell/career-companion/internal/skillgap"
)

const (
	PostingIDField      = "ID"
	PostingCompanyField = "Company"
)

type Jobs struct {
	Items []*Posting
}

// Posting is a catalog job together with the user's skill gap for it.
type Posting struct {
	catalog.Job
	Gap skillgap.Result `json:"gap"`
}

// Score computes the skill gap of every posting.
func Score(skills []string, postings []catalog.Job) *Jobs {
	jobs := &Jobs{Items: make([]*Posting, 0, len(postings))}
	for _, job := range postings {
		jobs.Items = append(jobs.Items, &Posting{
			Job: job,
			Gap: skillgap.MatchContains(skills, job.RequiredSkills),
		})
	}
	return jobs
}

func (p *Posting) MatchScore() int {
	return p.Gap.CompletionPercentage
}

func (p *Posting) GetStringField(name string) string {
	switch name {
	case PostingIDField:
		return p.ID
	case PostingCompanyField:
		return p.Company
	default:
		return ""
	}
}

func (j *Jobs) Len() int {
	return len(j.Items)
}

func (j *Jobs) FindByID(id string) *Posting {
	for _, posting := range j.Items {
		if posting.ID == id {
			return posting
		}
	}
	return nil
}

// IDs lists posting ids in collection order.
func (j *Jobs) IDs() []string {
	ids := make([]string, 0, len(j.Items))
	for _, posting := range j.Items {
		ids = append(ids, posting.ID)
	}
	return ids
}

// Exclude removes every posting whose field equals one of targets, ignoring case,
// and returns the removed ids. The order of the remaining postings is kept.
func (j *Jobs) Exclude(name string, targets []string) []string {
	excluded := make([]string, 0)
	if len(targets) == 0 {
		return excluded
	}

	kept := j.Items[:0]
	for _, posting := range j.Items {
		if containsFold(targets, posting.GetStringField(name)) {
			excluded = append(excluded, posting.ID)
			continue
		}
		kept = append(kept, posting)
	}
	clear(j.Items[len(kept):])
	j.Items = kept
	return excluded
}

// Keep returns a new collection with the postings accepted by keep.
func (j *Jobs) Keep(keep func(*Posting) bool) *Jobs {
	filtered := &Jobs{Items: make([]*Posting, 0, len(j.Items))}
	for _, posting := range j.Items {
		if keep(posting) {
			filtered.Items = append(filtered.Items, posting)
		}
	}
	return filtered
}

// SortByMatch orders postings by match score, best first. Ties keep their order.
func (j *Jobs) SortByMatch() {
	sort.SliceStable(j.Items, func(a, b int) bool {
		return j.Items[a].MatchScore() > j.Items[b].MatchScore()
	})
}

// BestMatch returns the highest match score, or 0 for an empty collection.
func (j *Jobs) BestMatch() int {
	best := 0
	for _, posting := range j.Items {
		best = max(best, posting.MatchScore())
	}
	return best
}

// ReportByCompany groups postings by company for printing.
func (j *Jobs) ReportByCompany() map[string][]map[string]string {
	report := make(map[string][]map[string]string)
	for _, posting := range j.Items {
		report[posting.Company] = append(report[posting.Company], map[string]string{
			"id":       posting.ID,
			"title":    posting.Title,
			"location": posting.Location,
			"salary":   posting.Salary,
			"type":     posting.Type,
			"posted":   posting.PostedDate,
			"match":    fmt.Sprintf("%d%%", posting.MatchScore()),
			"matching": strings.Join(posting.Gap.Matched, ", "),
			"missing":  strings.Join(posting.Gap.Missing, ", "),
		})
	}
	return report
}

func (j *Jobs) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "jobs_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(j); err != nil {
		return "", err
	}
	return file.Name(), nil
}

func containsFold(list []string, s string) bool {
	for _, item := range list {
		if strings.EqualFold(strings.TrimSpace(item), s) {
			return true
		}
	}
	return false
}
