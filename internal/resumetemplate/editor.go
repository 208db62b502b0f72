package resumetemplate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spigell/career-companion/internal/utils"
)

var (
	ErrUnknownField    = errors.New("unknown personal info field")
	ErrIndexOutOfRange = errors.New("index out of range")
)

// PersonalInfoFields are the field names accepted by SetPersonalInfo.
var PersonalInfoFields = []string{"name", "email", "phone", "location", "linkedin"}

// Editor works on a copy of a template. Changes reach Saved only through Save.
type Editor struct {
	saved   *Template
	working *Template
}

func NewEditor(t *Template) *Editor {
	return &Editor{
		saved:   t.Clone(),
		working: t.Clone(),
	}
}

// Current returns the working copy.
func (e *Editor) Current() *Template {
	return e.working
}

// Saved returns the last committed copy.
func (e *Editor) Saved() *Template {
	return e.saved
}

// Save commits the working copy and returns the committed template.
func (e *Editor) Save() *Template {
	e.saved = e.working.Clone()
	return e.saved.Clone()
}

// Discard drops uncommitted changes.
func (e *Editor) Discard() {
	e.working = e.saved.Clone()
}

func (e *Editor) SetPersonalInfo(field, value string) error {
	info := &e.working.Sections.PersonalInfo
	switch strings.ToLower(strings.TrimSpace(field)) {
	case "name":
		info.Name = value
	case "email":
		info.Email = value
	case "phone":
		info.Phone = value
	case "location":
		info.Location = value
	case "linkedin":
		info.LinkedIn = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

// PersonalInfo returns the working value of a personal info field.
func (e *Editor) PersonalInfo(field string) (string, error) {
	info := e.working.Sections.PersonalInfo
	switch strings.ToLower(strings.TrimSpace(field)) {
	case "name":
		return info.Name, nil
	case "email":
		return info.Email, nil
	case "phone":
		return info.Phone, nil
	case "location":
		return info.Location, nil
	case "linkedin":
		return info.LinkedIn, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
}

func (e *Editor) SetSummary(summary string) {
	e.working.Sections.Summary = summary
}

// SetSkills replaces the skills with a comma separated list.
func (e *Editor) SetSkills(csv string) {
	e.working.Sections.Skills = utils.SplitList(csv)
}

// AddExperience appends a blank entry and returns its index.
func (e *Editor) AddExperience() int {
	e.working.Sections.Experience = append(e.working.Sections.Experience, Experience{})
	return len(e.working.Sections.Experience) - 1
}

func (e *Editor) UpdateExperience(i int, exp Experience) error {
	if err := checkIndex(i, len(e.working.Sections.Experience)); err != nil {
		return err
	}
	e.working.Sections.Experience[i] = exp
	return nil
}

func (e *Editor) RemoveExperience(i int) error {
	items, err := remove(e.working.Sections.Experience, i)
	if err != nil {
		return err
	}
	e.working.Sections.Experience = items
	return nil
}

// AddEducation appends a blank entry and returns its index.
func (e *Editor) AddEducation() int {
	e.working.Sections.Education = append(e.working.Sections.Education, Education{})
	return len(e.working.Sections.Education) - 1
}

func (e *Editor) UpdateEducation(i int, edu Education) error {
	if err := checkIndex(i, len(e.working.Sections.Education)); err != nil {
		return err
	}
	e.working.Sections.Education[i] = edu
	return nil
}

func (e *Editor) RemoveEducation(i int) error {
	items, err := remove(e.working.Sections.Education, i)
	if err != nil {
		return err
	}
	e.working.Sections.Education = items
	return nil
}

// AddProject appends a blank entry and returns its index.
func (e *Editor) AddProject() int {
	e.working.Sections.Projects = append(e.working.Sections.Projects, Project{Technologies: []string{}})
	return len(e.working.Sections.Projects) - 1
}

func (e *Editor) UpdateProject(i int, p Project) error {
	if err := checkIndex(i, len(e.working.Sections.Projects)); err != nil {
		return err
	}
	p.Technologies = append([]string(nil), p.Technologies...)
	e.working.Sections.Projects[i] = p
	return nil
}

func (e *Editor) RemoveProject(i int) error {
	items, err := remove(e.working.Sections.Projects, i)
	if err != nil {
		return err
	}
	e.working.Sections.Projects = items
	return nil
}

func checkIndex(i, n int) error {
	if i < 0 || i >= n {
		return fmt.Errorf("%w: %d (have %d)", ErrIndexOutOfRange, i, n)
	}
	return nil
}

func remove[T any](items []T, i int) ([]T, error) {
	if err := checkIndex(i, len(items)); err != nil {
		return nil, err
	}
	out := make([]T, 0, len(items)-1)
	out = append(out, items[:i]...)
	return append(out, items[i+1:]...), nil
}
