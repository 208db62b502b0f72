// Package resumetemplate provides the ATS-friendly resume templates, an editor for
// customizing them and a plain-text preview renderer.
package resumetemplate

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed templates.yaml
var embedded []byte

type PersonalInfo struct {
	Name     string `yaml:"name" json:"name"`
	Email    string `yaml:"email" json:"email"`
	Phone    string `yaml:"phone" json:"phone"`
	Location string `yaml:"location" json:"location"`
	LinkedIn string `yaml:"linkedin" json:"linkedin"`
}

type Experience struct {
	Title       string `yaml:"title" json:"title"`
	Company     string `yaml:"company" json:"company"`
	Duration    string `yaml:"duration" json:"duration"`
	Description string `yaml:"description" json:"description"`
}

type Education struct {
	Degree      string `yaml:"degree" json:"degree"`
	Institution string `yaml:"institution" json:"institution"`
	Year        string `yaml:"year" json:"year"`
	GPA         string `yaml:"gpa,omitempty" json:"gpa,omitempty"`
}

type Project struct {
	Name         string   `yaml:"name" json:"name"`
	Description  string   `yaml:"description" json:"description"`
	Technologies []string `yaml:"technologies" json:"technologies"`
}

type Sections struct {
	PersonalInfo PersonalInfo `yaml:"personal-info" json:"personal_info"`
	Summary      string       `yaml:"summary" json:"summary"`
	Experience   []Experience `yaml:"experience" json:"experience"`
	Education    []Education  `yaml:"education" json:"education"`
	Skills       []string     `yaml:"skills" json:"skills"`
	Projects     []Project    `yaml:"projects" json:"projects"`
}

type Template struct {
	ID          string   `yaml:"id" json:"id"`
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description" json:"description"`
	ATSScore    int      `yaml:"ats-score" json:"ats_score"`
	Sections    Sections `yaml:"sections" json:"sections"`
}

// Clone returns a deep copy of t.
func (t *Template) Clone() *Template {
	c := *t
	c.Sections.Experience = append([]Experience(nil), t.Sections.Experience...)
	c.Sections.Education = append([]Education(nil), t.Sections.Education...)
	c.Sections.Skills = append([]string(nil), t.Sections.Skills...)
	c.Sections.Projects = make([]Project, 0, len(t.Sections.Projects))
	for _, p := range t.Sections.Projects {
		p.Technologies = append([]string(nil), p.Technologies...)
		c.Sections.Projects = append(c.Sections.Projects, p)
	}
	return &c
}

type Templates struct {
	Items []*Template
}

// Builtin returns a fresh copy of the templates compiled into the binary.
func Builtin() *Templates {
	t, err := Parse(embedded)
	if err != nil {
		panic(fmt.Sprintf("embedded templates: %v", err))
	}
	return t
}

// Parse decodes a YAML list of templates.
func Parse(data []byte) (*Templates, error) {
	var items []*Template
	if err := yaml.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decoding templates: %w", err)
	}

	seen := make(map[string]struct{}, len(items))
	for i, t := range items {
		if t == nil || t.ID == "" {
			return nil, fmt.Errorf("template #%d has no id", i)
		}
		if _, ok := seen[t.ID]; ok {
			return nil, fmt.Errorf("duplicate template id %q", t.ID)
		}
		seen[t.ID] = struct{}{}
	}
	return &Templates{Items: items}, nil
}

// LoadFile reads templates from a YAML file. A file holding a single template
// is accepted too.
func LoadFile(path string) (*Templates, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading templates %q: %w", path, err)
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("decoding templates %q: %w", path, err)
	}
	if len(node.Content) > 0 && node.Content[0].Kind == yaml.MappingNode {
		var t Template
		if err := node.Content[0].Decode(&t); err != nil {
			return nil, fmt.Errorf("decoding template %q: %w", path, err)
		}
		if t.ID == "" {
			return nil, fmt.Errorf("template in %q has no id", path)
		}
		return &Templates{Items: []*Template{&t}}, nil
	}

	templates, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return templates, nil
}

// WriteFile exports a single template as YAML.
func WriteFile(path string, t *Template) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := yaml.NewEncoder(file)
	enc.SetIndent(2)
	if err := enc.Encode(t); err != nil {
		return fmt.Errorf("encoding template %q: %w", t.ID, err)
	}
	return enc.Close()
}

func (t *Templates) Len() int {
	return len(t.Items)
}

func (t *Templates) FindByID(id string) *Template {
	for _, template := range t.Items {
		if template.ID == id {
			return template
		}
	}
	return nil
}

// Names lists the labels shown in selection prompts.
func (t *Templates) Names() []string {
	names := make([]string, 0, len(t.Items))
	for _, template := range t.Items {
		names = append(names, fmt.Sprintf("%s: %s (ATS %d%%)", template.ID, template.Name, template.ATSScore))
	}
	return names
}

// IDs lists template ids in order.
func (t *Templates) IDs() []string {
	ids := make([]string, 0, len(t.Items))
	for _, template := range t.Items {
		ids = append(ids, template.ID)
	}
	return ids
}

// Replace swaps the template with the same id, or appends t.
func (t *Templates) Replace(template *Template) {
	for i, existing := range t.Items {
		if existing.ID == template.ID {
			t.Items[i] = template
			return
		}
	}
	t.Items = append(t.Items, template)
}
