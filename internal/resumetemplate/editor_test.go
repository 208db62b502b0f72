package resumetemplate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEditorPersonalInfo(t *testing.T) {
	t.Parallel()

	e := NewEditor(Builtin().FindByID("tech"))

	for _, field := range PersonalInfoFields {
		require.NoError(t, e.SetPersonalInfo(field, "new "+field))
		got, err := e.PersonalInfo(field)
		require.NoError(t, err)
		assert.Equal(t, "new "+field, got)
	}

	require.ErrorIs(t, e.SetPersonalInfo("twitter", "@jane"), ErrUnknownField)
	_, err := e.PersonalInfo("twitter")
	require.ErrorIs(t, err, ErrUnknownField)

	require.NoError(t, e.SetPersonalInfo(" LinkedIn ", "linkedin.com/in/jane"))
	assert.Equal(t, "linkedin.com/in/jane", e.Current().Sections.PersonalInfo.LinkedIn)
}

func TestEditorSaveAndDiscard(t *testing.T) {
	t.Parallel()

	original := Builtin().FindByID("tech")
	e := NewEditor(original)

	e.SetSummary("Go engineer")
	assert.Equal(t, "Go engineer", e.Current().Sections.Summary)
	assert.NotEqual(t, "Go engineer", e.Saved().Sections.Summary)

	e.Discard()
	assert.Equal(t, original.Sections.Summary, e.Current().Sections.Summary)

	e.SetSummary("Go engineer")
	saved := e.Save()
	assert.Equal(t, "Go engineer", saved.Sections.Summary)
	assert.Equal(t, "Go engineer", e.Saved().Sections.Summary)

	// Editing after a save leaves the saved copy alone.
	e.SetSummary("Rust engineer")
	assert.Equal(t, "Go engineer", saved.Sections.Summary)
	assert.Equal(t, "Go engineer", e.Saved().Sections.Summary)

	assert.NotEqual(t, "Go engineer", original.Sections.Summary)
}

func TestEditorSetSkills(t *testing.T) {
	t.Parallel()

	e := NewEditor(Builtin().FindByID("marketing"))
	e.SetSkills(" SEO, ,Go ,  , Docker")
	assert.Equal(t, []string{"SEO", "Go", "Docker"}, e.Current().Sections.Skills)

	e.SetSkills("")
	assert.Empty(t, e.Current().Sections.Skills)
}

func TestEditorArrays(t *testing.T) {
	t.Parallel()

	e := NewEditor(Builtin().FindByID("tech"))
	sections := func() Sections { return e.Current().Sections }

	i := e.AddExperience()
	assert.Equal(t, 2, i)
	require.NoError(t, e.UpdateExperience(i, Experience{Title: "Intern"}))
	require.NoError(t, e.RemoveExperience(0))
	require.Len(t, sections().Experience, 2)
	assert.Equal(t, "Junior Developer", sections().Experience[0].Title)
	assert.Equal(t, "Intern", sections().Experience[1].Title)

	i = e.AddEducation()
	require.NoError(t, e.UpdateEducation(i, Education{Degree: "MSc", GPA: "4.0"}))
	require.Len(t, sections().Education, 2)
	require.NoError(t, e.RemoveEducation(0))
	assert.Equal(t, "MSc", sections().Education[0].Degree)

	i = e.AddProject()
	assert.Equal(t, 2, i)
	assert.NotNil(t, sections().Projects[i].Technologies)
	require.NoError(t, e.UpdateProject(i, Project{Name: "CLI", Technologies: []string{"Go"}}))
	require.NoError(t, e.RemoveProject(0))
	assert.Equal(t, []string{"Task Management App", "CLI"}, []string{sections().Projects[0].Name, sections().Projects[1].Name})
}

func TestEditorIndexOutOfRange(t *testing.T) {
	t.Parallel()

	e := NewEditor(Builtin().FindByID("marketing"))

	require.ErrorIs(t, e.RemoveExperience(2), ErrIndexOutOfRange)
	require.ErrorIs(t, e.RemoveExperience(-1), ErrIndexOutOfRange)
	require.ErrorIs(t, e.RemoveEducation(1), ErrIndexOutOfRange)
	require.ErrorIs(t, e.RemoveProject(1), ErrIndexOutOfRange)
	require.ErrorIs(t, e.UpdateExperience(5, Experience{}), ErrIndexOutOfRange)
	require.ErrorIs(t, e.UpdateEducation(5, Education{}), ErrIndexOutOfRange)
	require.ErrorIs(t, e.UpdateProject(5, Project{}), ErrIndexOutOfRange)

	assert.Len(t, e.Current().Sections.Experience, 2)
}
