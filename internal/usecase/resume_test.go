package usecase

import (
	"testing"

	"portfolio/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strp(s string) *string { return &s }

func samplePortfolio() Portfolio {
	info := domain.PersonalInfo{ID: 1, PersonalInfoInput: domain.PersonalInfoInput{
		Name:        "Jane Doe",
		Title:       "Software Developer",
		Description: "I build things.",
		Email:       "jane.doe@example.com",
		Location:    "Seattle, Washington",
		Social:      domain.Social{Github: "https://www.github.com/janedoe", Linkedin: "https://linkedin.com"},
	}}
	return Portfolio{
		Info: &info,
		Experience: []domain.Experience{
			{ID: 1, ExperienceInput: domain.ExperienceInput{Company: "AWS", Position: "Senior Engineer", StartDate: "2020-01", Description: "Led a team."}},
			{ID: 2, ExperienceInput: domain.ExperienceInput{Company: "Startup", Position: "Engineer", StartDate: "2017-03", EndDate: strp("2019-12"), Description: "Shipped."}},
		},
		Education: []domain.Education{
			{ID: 1, EducationInput: domain.EducationInput{Institution: "Stanford", Degree: "MSc", Field: "Computer Science", StartDate: "2015", EndDate: strp("2017"), GPA: strp("3.9/4.0")}},
		},
		Skills: []domain.Skill{
			{ID: 1, SkillInput: domain.SkillInput{Name: "Go", Category: "technical", Ordinal: 1}},
			{ID: 2, SkillInput: domain.SkillInput{Name: "Communication", Category: "soft", Ordinal: 2}},
			{ID: 3, SkillInput: domain.SkillInput{Name: "SQL", Category: "technical", Ordinal: 3}},
		},
		Projects: []domain.Project{
			{ID: 9, ProjectInput: domain.ProjectInput{Title: "Dashboard", Description: "Analytics", Github: strp("https://github.com/janedoe/dash"), Featured: true, Year: strp("2023")}},
		},
		Technologies: map[int64][]domain.Technology{
			9: {
				{ID: 1, TechnologyInput: domain.TechnologyInput{Name: "Node.js"}},
				{ID: 2, TechnologyInput: domain.TechnologyInput{Name: "React"}},
			},
		},
	}
}

func TestAssembleResume(t *testing.T) {
	r := AssembleResume(samplePortfolio())

	assert.Equal(t, "Jane Doe", r.Meta.Name)
	require.Len(t, r.Meta.Links, 2)
	assert.Equal(t, "github.com/janedoe", r.Meta.Links[0].Label)
	assert.Equal(t, "linkedin.com", r.Meta.Links[1].Label)

	require.Len(t, r.Experience, 2)
	assert.Equal(t, "Jan 2020 – Present", r.Experience[0].Period)
	assert.Equal(t, "Mar 2017 – Dec 2019", r.Experience[1].Period)
	assert.Equal(t, "2015 – 2017", r.Education[0].Period)

	require.Len(t, r.Skills, 2)
	assert.Equal(t, "Technical", r.Skills[0].Category)
	assert.Equal(t, []string{"Go", "SQL"}, r.Skills[0].Skills)
	assert.Equal(t, "Soft", r.Skills[1].Category)

	require.Len(t, r.Projects, 1)
	assert.Equal(t, []string{"Node.js", "React"}, r.Projects[0].Technologies)
	assert.Equal(t, "github.com/janedoe/dash", r.Projects[0].Links[0].Label)
	assert.Equal(t, "Jane_Doe_Resume.pdf", r.FileName())
}

func TestAssembleResumeWithoutPersonalInfo(t *testing.T) {
	r := AssembleResume(Portfolio{})
	assert.Empty(t, r.Meta.Name)
	assert.Equal(t, "Resume.pdf", r.FileName())
}

func TestRenderResumeHTML(t *testing.T) {
	html, err := RenderResumeHTML(AssembleResume(samplePortfolio()))
	require.NoError(t, err)

	assert.Contains(t, html, "<h1>Jane Doe</h1>")
	assert.Contains(t, html, "Senior Engineer · AWS")
	assert.Contains(t, html, "Node.js · React")
	assert.Contains(t, html, "GPA 3.9/4.0")
}
