package intake

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var (
	ErrIncompleteProfile = errors.New("name, current role, and at least one skill are required")
	ErrInvalidEmail      = errors.New("email address is not valid")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Profile is the manually entered professional profile.
type Profile struct {
	Name        string   `yaml:"name" json:"name" validate:"required"`
	Email       string   `yaml:"email,omitempty" json:"email,omitempty" validate:"omitempty,email"`
	CurrentRole string   `yaml:"current-role" json:"current_role" validate:"required"`
	Experience  string   `yaml:"experience,omitempty" json:"experience,omitempty"`
	Education   string   `yaml:"education,omitempty" json:"education,omitempty"`
	Skills      []string `yaml:"skills" json:"skills" validate:"min=1"`
}

// AddSkill appends a trimmed skill. Empty and already present skills are rejected.
func (p *Profile) AddSkill(skill string) bool {
	skill = strings.TrimSpace(skill)
	if skill == "" {
		return false
	}
	for _, s := range p.Skills {
		if s == skill {
			return false
		}
	}
	p.Skills = append(p.Skills, skill)
	return true
}

// RemoveSkill drops every entry equal to skill.
func (p *Profile) RemoveSkill(skill string) {
	kept := p.Skills[:0]
	for _, s := range p.Skills {
		if s != skill {
			kept = append(kept, s)
		}
	}
	p.Skills = kept
}

// Validate checks the fields required before a profile can be submitted.
func (p *Profile) Validate() error {
	err := validate.Struct(p)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating profile: %w", err)
	}

	var missing []string
	badEmail := false
	for _, fe := range verrs {
		if fe.Field() == "Email" {
			badEmail = true
			continue
		}
		missing = append(missing, fe.Field())
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w (missing: %s)", ErrIncompleteProfile, strings.Join(missing, ", "))
	}
	if badEmail {
		return fmt.Errorf("%w: %q", ErrInvalidEmail, p.Email)
	}
	return nil
}

// LoadProfile reads a YAML profile file. The result is not validated.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profile %q: %w", path, err)
	}

	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decoding profile %q: %w", path, err)
	}

	skills := p.Skills
	p.Skills = nil
	for _, s := range skills {
		p.AddSkill(s)
	}
	return &p, nil
}

// WriteProfile stores p as YAML, replacing the file content.
func WriteProfile(path string, p *Profile) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := yaml.NewEncoder(file)
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("encoding profile %q: %w", path, err)
	}
	return enc.Close()
}
