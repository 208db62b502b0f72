// Package careers ranks career paths by how much of their required skill set a user
// already covers.
package careers

import (
	"sort"
	"strings"

	"github.com/spigell/career-companion/internal/catalog"
	"github.com/spigell/career-companion/internal/skillgap"
)

type Suggestion struct {
	Path catalog.CareerPath `json:"path"`
	Gap  skillgap.Result    `json:"gap"`
}

// Suggest scores every path against skills. The best covered paths come first and
// ties keep catalog order.
func Suggest(skills []string, paths []catalog.CareerPath) []Suggestion {
	suggestions := make([]Suggestion, 0, len(paths))
	for _, path := range paths {
		suggestions = append(suggestions, Suggestion{
			Path: path,
			Gap:  skillgap.MatchContains(skills, path.RequiredSkills),
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Gap.CompletionPercentage > suggestions[j].Gap.CompletionPercentage
	})
	return suggestions
}

// Find looks a suggestion up by its path title, ignoring case.
func Find(suggestions []Suggestion, title string) (*Suggestion, bool) {
	title = strings.TrimSpace(title)
	for i := range suggestions {
		if strings.EqualFold(suggestions[i].Path.Title, title) {
			return &suggestions[i], true
		}
	}
	return nil, false
}

// Titles lists the path titles in suggestion order.
func Titles(suggestions []Suggestion) []string {
	titles := make([]string, 0, len(suggestions))
	for _, s := range suggestions {
		titles = append(titles, s.Path.Title)
	}
	return titles
}
