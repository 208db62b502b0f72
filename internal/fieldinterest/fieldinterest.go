// Package fieldinterest analyzes how ready a user is for a chosen career field.
package fieldinterest

import (
	"errors"

	"github.com/spigell/career-companion/internal/catalog"
	"github.com/spigell/career-companion/internal/skillgap"
)

var ErrEmptyField = errors.New("field name is empty")

type Analysis struct {
	Field catalog.Field   `json:"field"`
	Gap   skillgap.Result `json:"gap"`
}

// Analyze resolves the field in cat and computes the skill gap against its required skills.
func Analyze(cat *catalog.Catalog, skills []string, name string) (*Analysis, error) {
	field, ok := cat.Field(name)
	if !ok {
		return nil, ErrEmptyField
	}

	return &Analysis{
		Field: field,
		Gap:   skillgap.MatchContains(skills, field.RequiredSkills),
	}, nil
}
