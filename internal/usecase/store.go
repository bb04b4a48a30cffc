package usecase

import (
	"context"

	"portfolio/internal/domain"
)

// Store is the persistence contract for the portfolio tables. Lookups by id
// report absence through the bool result and never through the error.
// Errors are only returned for failures of the underlying database.
type Store interface {
	GetPersonalInfo(ctx context.Context) (domain.PersonalInfo, bool, error)
	// UpdatePersonalInfo inserts the profile row or replaces the existing one.
	UpdatePersonalInfo(ctx context.Context, in domain.PersonalInfoInput) (domain.PersonalInfo, error)

	ListSkills(ctx context.Context) ([]domain.Skill, error)
	ListSkillsByCategory(ctx context.Context, category string) ([]domain.Skill, error)
	GetSkill(ctx context.Context, id int64) (domain.Skill, bool, error)
	CreateSkill(ctx context.Context, in domain.SkillInput) (domain.Skill, error)
	UpdateSkill(ctx context.Context, id int64, p domain.SkillPatch) (domain.Skill, bool, error)
	DeleteSkill(ctx context.Context, id int64) (bool, error)

	ListEducation(ctx context.Context) ([]domain.Education, error)
	GetEducation(ctx context.Context, id int64) (domain.Education, bool, error)
	CreateEducation(ctx context.Context, in domain.EducationInput) (domain.Education, error)
	UpdateEducation(ctx context.Context, id int64, p domain.EducationPatch) (domain.Education, bool, error)
	DeleteEducation(ctx context.Context, id int64) (bool, error)

	ListExperience(ctx context.Context) ([]domain.Experience, error)
	GetExperience(ctx context.Context, id int64) (domain.Experience, bool, error)
	CreateExperience(ctx context.Context, in domain.ExperienceInput) (domain.Experience, error)
	UpdateExperience(ctx context.Context, id int64, p domain.ExperiencePatch) (domain.Experience, bool, error)
	DeleteExperience(ctx context.Context, id int64) (bool, error)

	ListProjects(ctx context.Context) ([]domain.Project, error)
	GetProject(ctx context.Context, id int64) (domain.Project, bool, error)
	CreateProject(ctx context.Context, in domain.ProjectInput) (domain.Project, error)
	UpdateProject(ctx context.Context, id int64, p domain.ProjectPatch) (domain.Project, bool, error)
	// DeleteProject also drops the project's technology links.
	DeleteProject(ctx context.Context, id int64) (bool, error)

	ListTechnologies(ctx context.Context) ([]domain.Technology, error)
	GetTechnology(ctx context.Context, id int64) (domain.Technology, bool, error)
	CreateTechnology(ctx context.Context, in domain.TechnologyInput) (domain.Technology, error)
	DeleteTechnology(ctx context.Context, id int64) (bool, error)

	ListProjectTechnologies(ctx context.Context, projectID int64) ([]domain.Technology, error)
	// AddTechnologyToProject is idempotent. It reports false when the project
	// or the technology does not exist.
	AddTechnologyToProject(ctx context.Context, projectID, technologyID int64) (bool, error)
	RemoveTechnologyFromProject(ctx context.Context, projectID, technologyID int64) error
}
