package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationsOrder(t *testing.T) {
	ms := Migrations()
	require.NotEmpty(t, ms)

	pos := map[string]int{}
	for i, m := range ms {
		_, dup := pos[m.Name]
		assert.False(t, dup, "duplicate migration %s", m.Name)
		assert.NotNil(t, m.Up)
		pos[m.Name] = i
	}

	join := pos["create_project_technologies"]
	assert.Less(t, pos["create_projects"], join)
	assert.Less(t, pos["create_technologies"], join)
	assert.Less(t, join, pos["create_ordinal_indexes"])
}

func TestPersonalInfoIsSingleRow(t *testing.T) {
	assert.Contains(t, createPersonalInfo, "slot        SMALLINT NOT NULL DEFAULT 1 UNIQUE")
	assert.Contains(t, createProjectTechnologies, "ON DELETE CASCADE")
	assert.Contains(t, createProjectTechnologies, "PRIMARY KEY (project_id, technology_id)")
}

func TestIDsAreBigint(t *testing.T) {
	for _, ddl := range []string{createPersonalInfo, createSkills, createEducation, createExperience, createProjects, createTechnologies} {
		assert.Contains(t, ddl, "BIGSERIAL PRIMARY KEY")
	}
	assert.Contains(t, createProjectTechnologies, "project_id     BIGINT NOT NULL")
	assert.Contains(t, createProjectTechnologies, "technology_id  BIGINT NOT NULL")

	pos := map[string]int{}
	for i, m := range Migrations() {
		pos[m.Name] = i
	}
	assert.Less(t, pos["create_project_technologies"], pos["widen_ids"])
	assert.Contains(t, widenIDs, "ALTER TABLE project_technologies ALTER COLUMN technology_id TYPE BIGINT")
}
