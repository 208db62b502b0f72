package resumetemplate

import (
	"fmt"
	"io"
	"strings"
	"text/template"
)

const preview = `{{ with .Sections.PersonalInfo -}}
{{ .Name }}
{{ .Email }} | {{ .Phone }}
{{ .Location }} | {{ .LinkedIn }}
{{- end }}

PROFESSIONAL SUMMARY
{{ .Sections.Summary }}

PROFESSIONAL EXPERIENCE
{{- range .Sections.Experience }}
{{ .Title }} ({{ .Duration }})
{{ .Company }}
{{- if .Description }}
{{ .Description }}
{{- end }}
{{- end }}

EDUCATION
{{- range .Sections.Education }}
{{ .Degree }} ({{ .Year }})
{{ .Institution }}
{{- if .GPA }}
GPA: {{ .GPA }}
{{- end }}
{{- end }}

TECHNICAL SKILLS
{{ join .Sections.Skills }}
{{- if .Sections.Projects }}

PROJECTS
{{- range .Sections.Projects }}
{{ .Name }}
{{ .Description }}
Technologies: {{ join .Technologies }}
{{- end }}
{{- end }}
`

var previewTemplate = template.Must(template.New("preview").
	Funcs(template.FuncMap{"join": func(items []string) string { return strings.Join(items, ", ") }}).
	Parse(preview))

// Render writes a plain-text preview of t.
func Render(w io.Writer, t *Template) error {
	if err := previewTemplate.Execute(w, t); err != nil {
		return fmt.Errorf("rendering template %q: %w", t.ID, err)
	}
	return nil
}
