package repository

import (
	"context"
	"os"
	"testing"

	"portfolio/internal/domain"
	"portfolio/internal/infrastructure/migration"
	infra "portfolio/pkg/infrastructure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs only when PORTFOLIO_TEST_DATABASE_URL points at a disposable
// Postgres database. Every table is truncated first.
func newPostgresStore(t *testing.T) *PostgresStore {
	t.Helper()
	dsn := os.Getenv("PORTFOLIO_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("PORTFOLIO_TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	pool, err := infra.NewPool(ctx, dsn, 4)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, migration.RunMigrations(ctx, pool))
	_, err = pool.Exec(ctx, `TRUNCATE personal_info, skills, education, experience, project_technologies, projects, technologies RESTART IDENTITY CASCADE`)
	require.NoError(t, err)
	return NewPostgresStore(pool)
}

func TestPostgresSkillCRUD(t *testing.T) {
	s := newPostgresStore(t)
	ctx := context.Background()

	sk, err := s.CreateSkill(ctx, domain.SkillInput{Name: "Go", Category: domain.CategoryTechnical, Proficiency: intp(80), Ordinal: 2})
	require.NoError(t, err)
	_, err = s.CreateSkill(ctx, domain.SkillInput{Name: "SQL", Category: domain.CategoryTechnical, Ordinal: 1})
	require.NoError(t, err)

	all, err := s.ListSkills(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "SQL", all[0].Name)

	updated, ok, err := s.UpdateSkill(ctx, sk.ID, domain.SkillPatch{Proficiency: domain.Null[int](), Icon: domain.Of("go")})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Nil(t, updated.Proficiency)
	assert.Equal(t, strp("go"), updated.Icon)
	assert.Equal(t, "Go", updated.Name)

	_, ok, err = s.UpdateSkill(ctx, 9999, domain.SkillPatch{Name: domain.Of("x")})
	require.NoError(t, err)
	assert.False(t, ok)

	deleted, err := s.DeleteSkill(ctx, sk.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
	_, ok, err = s.GetSkill(ctx, sk.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPostgresPersonalInfoUpsert(t *testing.T) {
	s := newPostgresStore(t)
	ctx := context.Background()

	in := domain.PersonalInfoInput{Name: "Jane", Title: "Dev", Description: "Hi", Email: "jane@example.com", Location: "Seattle",
		Social: domain.Social{Github: "https://github.com/jane"}}
	first, err := s.UpdatePersonalInfo(ctx, in)
	require.NoError(t, err)

	in.Title = "Engineer"
	second, err := s.UpdatePersonalInfo(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	got, ok, err := s.GetPersonalInfo(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Engineer", got.Title)
	assert.Equal(t, "https://github.com/jane", got.Social.Github)
}

func TestPostgresProjectTechnologies(t *testing.T) {
	s := newPostgresStore(t)
	ctx := context.Background()

	p, err := s.CreateProject(ctx, domain.ProjectInput{Title: "Dash", Description: "d", Image: "i", Ordinal: 1})
	require.NoError(t, err)
	tech, err := s.CreateTechnology(ctx, domain.TechnologyInput{Name: " React "})
	require.NoError(t, err)
	assert.Equal(t, "React", tech.Name)

	for i := 0; i < 2; i++ {
		ok, err := s.AddTechnologyToProject(ctx, p.ID, tech.ID)
		require.NoError(t, err)
		assert.True(t, ok)
	}
	ok, err := s.AddTechnologyToProject(ctx, p.ID+100, tech.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	techs, err := s.ListProjectTechnologies(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, techs, 1)

	_, err = s.DeleteProject(ctx, p.ID)
	require.NoError(t, err)
	techs, err = s.ListProjectTechnologies(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, techs)
}
