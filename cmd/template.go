package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/spigell/career-companion/internal/resumetemplate"
	"github.com/spigell/career-companion/internal/utils"
)

const (
	PromptEditPersonalInfo = "Edit personal info"
	PromptEditSummary      = "Edit summary"
	PromptEditSkills       = "Edit skills"
	PromptAddExperience    = "Add experience"
	PromptRemoveExperience = "Remove experience"
	PromptAddEducation     = "Add education"
	PromptRemoveEducation  = "Remove education"
	PromptAddProject       = "Add project"
	PromptRemoveProject    = "Remove project"
	PromptPreview          = "Preview"
	PromptSave             = "Save"
	PromptDiscard          = "Discard changes"
)

var editorPrompt = promptui.Select{
	Label: "Edit template",
	Size:  13,
	Items: []string{
		PromptEditPersonalInfo, PromptEditSummary, PromptEditSkills,
		PromptAddExperience, PromptRemoveExperience,
		PromptAddEducation, PromptRemoveEducation,
		PromptAddProject, PromptRemoveProject,
		PromptPreview, PromptSave, PromptDiscard, PromptExit,
	},
}

var templateCmd = &cobra.Command{
	Use:     "template",
	Aliases: []string{"templates"},
	Short:   "Browse, preview, edit and export ATS-friendly resume templates",
}

var templateListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available templates",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		l, config := setup()
		templates := loadTemplates(config, l)
		out := cmd.OutOrStdout()
		for i, name := range templates.Names() {
			fmt.Fprintf(out, "%s\n  %s\n", name, templates.Items[i].Description)
		}
	},
}

var templateShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a template as YAML",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		l, config := setup()
		t := findTemplate(loadTemplates(config, l), args[0], l)

		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		if err := enc.Encode(t); err != nil {
			l.Fatal("encoding template", zap.Error(err))
		}
		if err := enc.Close(); err != nil {
			l.Fatal("encoding template", zap.Error(err))
		}
	},
}

var templateRenderCmd = &cobra.Command{
	Use:   "render <id>",
	Short: "Print a plain-text preview of a template",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		l, config := setup()
		t := findTemplate(loadTemplates(config, l), args[0], l)

		if err := resumetemplate.Render(cmd.OutOrStdout(), t); err != nil {
			l.Fatal("rendering template", zap.Error(err))
		}
	},
}

var templateExportCmd = &cobra.Command{
	Use:   "export <id> <file>",
	Short: "Write a template to a YAML file",
	Args:  cobra.ExactArgs(2),
	Run: func(_ *cobra.Command, args []string) {
		l, config := setup()
		t := findTemplate(loadTemplates(config, l), args[0], l)

		if err := resumetemplate.WriteFile(args[1], t); err != nil {
			l.Fatal("exporting template", zap.Error(err))
		}
		l.Info("template exported", zap.String("id", t.ID), zap.String("file", args[1]))
	},
}

var templateEditCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Edit a template interactively",
	Long: `Edit a template interactively. Saved changes are written to --out,
or to templates.file from the configuration when --out is not set.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		editTemplate(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(templateCmd)
	templateCmd.AddCommand(templateListCmd, templateShowCmd, templateRenderCmd, templateExportCmd, templateEditCmd)

	templateEditCmd.Flags().StringP("out", "o", "", "a file to write the saved template to")
}

func findTemplate(templates *resumetemplate.Templates, id string, l *zap.Logger) *resumetemplate.Template {
	t := templates.FindByID(id)
	if t == nil {
		l.Fatal("template with given id not found",
			zap.String("id", id),
			zap.Strings("existed template ids", templates.IDs()),
		)
	}
	return t
}

func editTemplate(cmd *cobra.Command, args []string) {
	l, config := setup()
	templates := loadTemplates(config, l)
	out := cmd.OutOrStdout()

	var t *resumetemplate.Template
	if len(args) > 0 {
		t = findTemplate(templates, args[0], l)
	} else {
		choose := promptui.Select{
			Label: "Choose a template",
			Items: templates.Names(),
		}
		i, _, err := choose.Run()
		if err != nil {
			l.Fatal("exiting", zap.Error(err))
		}
		t = templates.Items[i]
	}

	target, _ := cmd.Flags().GetString("out")
	if target == "" {
		target = config.Templates.File
	}

	editor := resumetemplate.NewEditor(t)
	for {
		_, action, err := editorPrompt.Run()
		if err != nil {
			l.Fatal("exiting", zap.Error(err))
		}

		if err := handleEditorAction(action, editor, out, target, l); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			if errors.Is(err, promptui.ErrInterrupt) {
				l.Fatal("exiting", zap.Error(err))
			}
			l.Warn("edit failed", zap.String("action", action), zap.Error(err))
		}
	}
}

func handleEditorAction(action string, e *resumetemplate.Editor, out io.Writer, target string, l *zap.Logger) error {
	switch action {
	case PromptEditPersonalInfo:
		return editPersonalInfo(e)
	case PromptEditSummary:
		summary, err := ask("Summary", e.Current().Sections.Summary)
		if err != nil {
			return err
		}
		e.SetSummary(summary)
	case PromptEditSkills:
		skills, err := ask("Skills (comma separated)", strings.Join(e.Current().Sections.Skills, ", "))
		if err != nil {
			return err
		}
		e.SetSkills(skills)
	case PromptAddExperience:
		return addExperience(e)
	case PromptRemoveExperience:
		labels := make([]string, 0, len(e.Current().Sections.Experience))
		for _, exp := range e.Current().Sections.Experience {
			labels = append(labels, fmt.Sprintf("%s at %s (%s)", exp.Title, exp.Company, exp.Duration))
		}
		return removeEntry("experience", labels, e.RemoveExperience)
	case PromptAddEducation:
		return addEducation(e)
	case PromptRemoveEducation:
		labels := make([]string, 0, len(e.Current().Sections.Education))
		for _, edu := range e.Current().Sections.Education {
			labels = append(labels, fmt.Sprintf("%s, %s (%s)", edu.Degree, edu.Institution, edu.Year))
		}
		return removeEntry("education", labels, e.RemoveEducation)
	case PromptAddProject:
		return addProject(e)
	case PromptRemoveProject:
		labels := make([]string, 0, len(e.Current().Sections.Projects))
		for _, p := range e.Current().Sections.Projects {
			labels = append(labels, p.Name)
		}
		return removeEntry("project", labels, e.RemoveProject)
	case PromptPreview:
		return resumetemplate.Render(out, e.Current())
	case PromptSave:
		saved := e.Save()
		l.Info("template saved", zap.String("id", saved.ID))
		if target == "" {
			l.Warn("saved template is kept in memory only",
				zap.String("hint", "pass --out or set templates.file in the configuration file"),
			)
			return nil
		}
		if err := resumetemplate.WriteFile(target, saved); err != nil {
			return fmt.Errorf("writing template: %w", err)
		}
		l.Info("template written", zap.String("file", target))
	case PromptDiscard:
		e.Discard()
		l.Info("changes discarded", zap.String("id", e.Current().ID))
	case PromptExit:
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
	return nil
}

func editPersonalInfo(e *resumetemplate.Editor) error {
	fieldPrompt := promptui.Select{
		Label: "Choose a field",
		Items: resumetemplate.PersonalInfoFields,
	}
	_, field, err := fieldPrompt.Run()
	if err != nil {
		return err
	}

	current, err := e.PersonalInfo(field)
	if err != nil {
		return err
	}
	value, err := ask(field, current)
	if err != nil {
		return err
	}
	return e.SetPersonalInfo(field, value)
}

func addExperience(e *resumetemplate.Editor) error {
	var exp resumetemplate.Experience
	if err := askAll(
		question{"Job title", &exp.Title},
		question{"Company", &exp.Company},
		question{"Duration", &exp.Duration},
		question{"Description", &exp.Description},
	); err != nil {
		return err
	}
	return e.UpdateExperience(e.AddExperience(), exp)
}

func addEducation(e *resumetemplate.Editor) error {
	var edu resumetemplate.Education
	if err := askAll(
		question{"Degree", &edu.Degree},
		question{"Institution", &edu.Institution},
		question{"Year", &edu.Year},
		question{"GPA (optional)", &edu.GPA},
	); err != nil {
		return err
	}
	return e.UpdateEducation(e.AddEducation(), edu)
}

func addProject(e *resumetemplate.Editor) error {
	var (
		p    resumetemplate.Project
		tech string
	)
	if err := askAll(
		question{"Project name", &p.Name},
		question{"Description", &p.Description},
		question{"Technologies (comma separated)", &tech},
	); err != nil {
		return err
	}
	p.Technologies = utils.SplitList(tech)
	return e.UpdateProject(e.AddProject(), p)
}

func removeEntry(kind string, labels []string, remove func(int) error) error {
	if len(labels) == 0 {
		return fmt.Errorf("there is no %s to remove", kind)
	}

	entryPrompt := promptui.Select{
		Label: fmt.Sprintf("Choose %s to remove", kind),
		Items: append(labels, PromptBack),
	}
	i, selected, err := entryPrompt.Run()
	if err != nil {
		return err
	}
	if selected == PromptBack {
		return nil
	}
	return remove(i)
}

type question struct {
	label string
	value *string
}

func askAll(questions ...question) error {
	for _, q := range questions {
		answer, err := ask(q.label, *q.value)
		if err != nil {
			return err
		}
		*q.value = answer
	}
	return nil
}

func ask(label, current string) (string, error) {
	p := promptui.Prompt{
		Label:     label,
		Default:   current,
		AllowEdit: true,
	}
	answer, err := p.Run()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(answer), nil
}
