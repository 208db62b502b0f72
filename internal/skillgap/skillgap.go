// Package skillgap classifies required skills as matched or missing against a user's
// skill set and computes how complete the user's skills are for the requirement list.
package skillgap

import (
	"fmt"
	"math"
	"strings"
)

// Strategy selects the predicate used to decide whether a requirement is covered.
type Strategy int

const (
	// Containment matches when either lowercased string is a substring of the other.
	// "Java" matches "JavaScript" under this strategy.
	Containment Strategy = iota
	// Exact matches on case-folded equality only.
	Exact
)

func (s Strategy) String() string {
	switch s {
	case Containment:
		return "contains"
	case Exact:
		return "exact"
	default:
		return fmt.Sprintf("strategy(%d)", int(s))
	}
}

// ParseStrategy converts a user-supplied strategy name.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "contains", "containment", "":
		return Containment, nil
	case "exact":
		return Exact, nil
	default:
		return Containment, fmt.Errorf("unknown match strategy %q (want contains or exact)", name)
	}
}

// Result partitions a requirement list into matched and missing skills.
type Result struct {
	Matched              []string `json:"matched"`
	Missing              []string `json:"missing"`
	CompletionPercentage int      `json:"completion_percentage"`
}

// Total is the number of requirements the result was computed for.
func (r Result) Total() int {
	return len(r.Matched) + len(r.Missing)
}

// IsComplete reports whether every requirement is covered. An empty requirement list is
// never complete.
func (r Result) IsComplete() bool {
	return len(r.Matched) > 0 && len(r.Missing) == 0
}

// Match classifies requirements against skills with the given strategy.
// Neither input is modified and both output slices are non-nil.
func Match(strategy Strategy, skills, requirements []string) Result {
	lowered := make([]string, len(skills))
	for i, skill := range skills {
		lowered[i] = strings.ToLower(skill)
	}

	result := Result{
		Matched: make([]string, 0, len(requirements)),
		Missing: make([]string, 0),
	}

	for _, requirement := range requirements {
		if covered(strategy, lowered, strings.ToLower(requirement)) {
			result.Matched = append(result.Matched, requirement)
			continue
		}
		result.Missing = append(result.Missing, requirement)
	}

	result.CompletionPercentage = Completion(len(result.Matched), len(requirements))
	return result
}

// MatchContains is Match with the Containment strategy.
func MatchContains(skills, requirements []string) Result {
	return Match(Containment, skills, requirements)
}

// MatchExact is Match with the Exact strategy.
func MatchExact(skills, requirements []string) Result {
	return Match(Exact, skills, requirements)
}

// Completion returns round(100*matched/total), or 0 when total is not positive.
func Completion(matched, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(matched) / float64(total)))
}

func covered(strategy Strategy, skills []string, requirement string) bool {
	for _, skill := range skills {
		switch strategy {
		case Exact:
			if skill == requirement {
				return true
			}
		default:
			if strings.Contains(requirement, skill) || strings.Contains(skill, requirement) {
				return true
			}
		}
	}
	return false
}
