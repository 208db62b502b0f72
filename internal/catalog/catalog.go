// Package catalog holds the static reference data used by the analyzers: career paths,
// job postings, curated field roadmaps and the skill families used to synthesize
// roadmaps for fields that are not curated.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var embedded []byte

// ResourceType is the kind of a learning resource.
type ResourceType string

const (
	ResourceVideo   ResourceType = "video"
	ResourceCourse  ResourceType = "course"
	ResourceArticle ResourceType = "article"
)

type CareerPath struct {
	Title          string   `yaml:"title" json:"title"`
	Description    string   `yaml:"description" json:"description"`
	RequiredSkills []string `yaml:"required-skills" json:"required_skills"`
	AverageSalary  string   `yaml:"average-salary" json:"average_salary"`
	GrowthRate     string   `yaml:"growth-rate" json:"growth_rate"`
}

type Job struct {
	ID             string   `yaml:"id" json:"id"`
	Title          string   `yaml:"title" json:"title"`
	Company        string   `yaml:"company" json:"company"`
	Location       string   `yaml:"location" json:"location"`
	Salary         string   `yaml:"salary" json:"salary"`
	Type           string   `yaml:"type" json:"type"`
	PostedDate     string   `yaml:"posted" json:"posted"`
	Description    string   `yaml:"description" json:"description"`
	RequiredSkills []string `yaml:"required-skills" json:"required_skills"`
}

type Resource struct {
	Title string       `yaml:"title" json:"title"`
	Type  ResourceType `yaml:"type" json:"type"`
	URL   string       `yaml:"url" json:"url"`
}

// Phase is one step of a field roadmap.
type Phase struct {
	Name      string     `yaml:"name" json:"name"`
	Duration  string     `yaml:"duration" json:"duration"`
	Skills    []string   `yaml:"skills" json:"skills"`
	Resources []Resource `yaml:"resources" json:"resources"`
}

// Field describes a career field with its required skills and learning roadmap.
type Field struct {
	Key            string   `yaml:"key" json:"key"`
	Name           string   `yaml:"name" json:"name"`
	Description    string   `yaml:"description" json:"description"`
	RequiredSkills []string `yaml:"required-skills" json:"required_skills"`
	AverageSalary  string   `yaml:"average-salary" json:"average_salary"`
	GrowthRate     string   `yaml:"growth-rate" json:"growth_rate"`
	Roadmap        []Phase  `yaml:"roadmap" json:"roadmap"`
}

// SkillFamily maps a keyword found in a field name to the skills of that family.
type SkillFamily struct {
	Key    string   `yaml:"key"`
	Skills []string `yaml:"skills"`
}

type Catalog struct {
	Careers         []CareerPath  `yaml:"careers"`
	Jobs            []Job         `yaml:"jobs"`
	Fields          []Field       `yaml:"fields"`
	SkillFamilies   []SkillFamily `yaml:"skill-families"`
	DefaultSkills   []string      `yaml:"default-skills"`
	SuggestedFields []string      `yaml:"suggested-fields"`

	byKey map[string]Field
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the catalog compiled into the binary.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Parse(embedded)
		if err != nil {
			panic(fmt.Sprintf("embedded catalog: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Load reads a catalog file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %q: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %q: %w", path, err)
	}
	return c, nil
}

// Parse decodes a YAML catalog document.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}

	c.byKey = make(map[string]Field, len(c.Fields))
	for _, f := range c.Fields {
		c.byKey[strings.ToLower(f.Key)] = f
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	var errs []error
	seen := make(map[string]struct{}, len(c.Jobs))
	for i, job := range c.Jobs {
		if job.ID == "" {
			errs = append(errs, fmt.Errorf("job #%d has no id", i))
			continue
		}
		if _, ok := seen[job.ID]; ok {
			errs = append(errs, fmt.Errorf("duplicate job id %q", job.ID))
		}
		seen[job.ID] = struct{}{}
	}
	for i, f := range c.Fields {
		if f.Key == "" {
			errs = append(errs, fmt.Errorf("field #%d has no key", i))
		}
	}
	for i, family := range c.SkillFamilies {
		if family.Key == "" {
			errs = append(errs, fmt.Errorf("skill family #%d has no key", i))
		}
	}
	return errors.Join(errs...)
}

// Field resolves a field by name. Curated fields are found by their lowercased key,
// so "frontend" resolves to the curated roadmap while "Frontend Development" is
// generated. An empty name is not found.
func (c *Catalog) Field(name string) (Field, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Field{}, false
	}
	if f, ok := c.byKey[strings.ToLower(name)]; ok {
		return cloneField(f), true
	}
	return c.GenerateField(name), true
}

// cloneField copies the slices of a curated record so callers cannot mutate the catalog.
func cloneField(f Field) Field {
	f.RequiredSkills = append([]string(nil), f.RequiredSkills...)
	roadmap := make([]Phase, len(f.Roadmap))
	for i, phase := range f.Roadmap {
		phase.Skills = append([]string(nil), phase.Skills...)
		phase.Resources = append([]Resource(nil), phase.Resources...)
		roadmap[i] = phase
	}
	f.Roadmap = roadmap
	return f
}

// GenerateField synthesizes a field for a name without a curated record.
func (c *Catalog) GenerateField(name string) Field {
	skills := c.familySkills(strings.ToLower(name))

	return Field{
		Key:            strings.ToLower(strings.ReplaceAll(name, " ", "-")),
		Name:           name,
		Description:    fmt.Sprintf("Build expertise in %s with industry-relevant skills and knowledge", name),
		RequiredSkills: skills,
		AverageSalary:  "₹6L - ₹30L",
		GrowthRate:     "12-25%",
		Roadmap: []Phase{
			{
				Name:     "Foundation",
				Duration: "2-3 months",
				Skills:   window(skills, 0, 3),
				Resources: []Resource{
					{Title: name + " Fundamentals", Type: ResourceVideo, URL: youtube(name + " tutorial beginner")},
					{Title: "Learn " + name, Type: ResourceCourse, URL: "https://www.coursera.org/courses?query=" + escape(name)},
					{Title: name + " Documentation", Type: ResourceArticle, URL: google(name + " official documentation")},
				},
			},
			{
				Name:     "Intermediate",
				Duration: "3-4 months",
				Skills:   window(skills, 3, 5),
				Resources: []Resource{
					{Title: "Advanced " + name, Type: ResourceVideo, URL: youtube("advanced " + name + " course")},
					{Title: name + " Projects", Type: ResourceCourse, URL: "https://www.udemy.com/courses/search/?q=" + escape(name)},
					{Title: name + " Best Practices", Type: ResourceArticle, URL: google(name + " best practices guide")},
				},
			},
			{
				Name:     "Advanced",
				Duration: "3-4 months",
				Skills:   window(skills, 5, len(skills)),
				Resources: []Resource{
					{Title: name + " Mastery", Type: ResourceVideo, URL: youtube(name + " expert level mastery")},
					{Title: name + " Certification", Type: ResourceCourse, URL: "https://www.coursera.org/professional-certificates"},
					{Title: name + " Industry Trends", Type: ResourceArticle, URL: google(name + " industry trends 2024")},
				},
			},
		},
	}
}

func (c *Catalog) familySkills(lowered string) []string {
	for _, family := range c.SkillFamilies {
		if strings.Contains(lowered, strings.ToLower(family.Key)) {
			return append([]string(nil), family.Skills...)
		}
	}
	return append([]string(nil), c.DefaultSkills...)
}

// FindJob returns the posting with the given id.
func (c *Catalog) FindJob(id string) (Job, bool) {
	for _, job := range c.Jobs {
		if job.ID == id {
			return job, true
		}
	}
	return Job{}, false
}

func window(skills []string, from, to int) []string {
	if from > len(skills) {
		from = len(skills)
	}
	if to > len(skills) {
		to = len(skills)
	}
	if to < from {
		to = from
	}
	return append([]string{}, skills[from:to]...)
}

func youtube(query string) string {
	return "https://www.youtube.com/results?search_query=" + escape(query)
}

func google(query string) string {
	return "https://www.google.com/search?q=" + escape(query)
}

// componentReplacer undoes the escaping of characters that encodeURIComponent leaves as is.
var componentReplacer = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// escape percent-encodes a query component with spaces as %20 and !'()* kept literal.
func escape(s string) string {
	return componentReplacer.Replace(url.QueryEscape(s))
}
