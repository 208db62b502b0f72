// Package dashboard aggregates the user's profile and resume into one skill set and
// derives the overview numbers.
package dashboard

import (
	"github.com/spigell/career-companion/internal/careers"
	"github.com/spigell/career-companion/internal/intake"
	"github.com/spigell/career-companion/internal/jobs"
)

const anonymousName = "Professional"

// MergeSkills returns existing followed by the incoming skills not seen yet. Equality
// is exact, so "react" and "React" are both kept. Neither input is modified.
func MergeSkills(existing, incoming []string) []string {
	merged := make([]string, 0, len(existing)+len(incoming))
	seen := make(map[string]struct{}, len(existing)+len(incoming))

	for _, list := range [][]string{existing, incoming} {
		for _, skill := range list {
			if _, ok := seen[skill]; ok {
				continue
			}
			seen[skill] = struct{}{}
			merged = append(merged, skill)
		}
	}
	return merged
}

// State is the aggregated user data. Transitions return a new State.
type State struct {
	Profile *intake.Profile
	Resume  *intake.ParsedResume
	Skills  []string
}

func (s State) WithProfile(p *intake.Profile) State {
	s.Profile = p
	if p != nil {
		s.Skills = MergeSkills(s.Skills, p.Skills)
	}
	return s
}

func (s State) WithResume(r *intake.ParsedResume) State {
	s.Resume = r
	if r != nil {
		s.Skills = MergeSkills(s.Skills, r.Skills)
	}
	return s
}

// WithSkills merges skills given outside of a profile or resume.
func (s State) WithSkills(skills []string) State {
	s.Skills = MergeSkills(s.Skills, skills)
	return s
}

func (s State) HasData() bool {
	return s.Profile != nil || s.Resume != nil
}

func (s State) DisplayName() string {
	if s.Profile != nil && s.Profile.Name != "" {
		return s.Profile.Name
	}
	return anonymousName
}

type Stats struct {
	SkillsIdentified int `json:"skills_identified"`
	CareerPaths      int `json:"career_paths"`
	JobMatches       int `json:"job_matches"`
	BestMatch        int `json:"best_match"`
}

// ComputeStats derives the overview numbers. A job counts as a match once at least one
// required skill is covered.
func ComputeStats(state State, suggestions []careers.Suggestion, postings *jobs.Jobs) Stats {
	stats := Stats{
		SkillsIdentified: len(state.Skills),
		CareerPaths:      len(suggestions),
	}

	for _, s := range suggestions {
		stats.BestMatch = max(stats.BestMatch, s.Gap.CompletionPercentage)
	}

	if postings != nil {
		for _, p := range postings.Items {
			if len(p.Gap.Matched) > 0 {
				stats.JobMatches++
			}
		}
		stats.BestMatch = max(stats.BestMatch, postings.BestMatch())
	}
	return stats
}
