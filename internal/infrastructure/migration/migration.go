package migration

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v4/pgxpool"
)

// RunMigrations creates the portfolio schema on startup. Every statement is
// idempotent so it is safe to run against an existing database.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	slog.Info("Starting database migrations")

	for _, m := range Migrations() {
		if err := m.Up(ctx, pool); err != nil {
			slog.Error("Migration failed", "name", m.Name, "error", err)
			return fmt.Errorf("migration %s: %w", m.Name, err)
		}
		slog.Info("Migration completed", "name", m.Name)
	}

	slog.Info("All migrations completed successfully")
	return nil
}

// Migration represents a database migration
type Migration struct {
	Name string
	Up   func(ctx context.Context, pool *pgxpool.Pool) error
}

// Migrations returns the schema steps in the order they must run.
// Parents come before the join table that references them.
func Migrations() []Migration {
	return []Migration{
		execStep("create_personal_info", createPersonalInfo),
		execStep("create_skills", createSkills),
		execStep("create_education", createEducation),
		execStep("create_experience", createExperience),
		execStep("create_projects", createProjects),
		execStep("create_technologies", createTechnologies),
		execStep("create_project_technologies", createProjectTechnologies),
		execStep("widen_ids", widenIDs),
		execStep("create_ordinal_indexes", createOrdinalIndexes),
	}
}

func execStep(name, query string) Migration {
	return Migration{
		Name: name,
		Up: func(ctx context.Context, pool *pgxpool.Pool) error {
			_, err := pool.Exec(ctx, query)
			return err
		},
	}
}

// slot is always 1 and unique, which keeps personal_info to a single row.
const createPersonalInfo = `
	CREATE TABLE IF NOT EXISTS personal_info (
		id          BIGSERIAL PRIMARY KEY,
		slot        SMALLINT NOT NULL DEFAULT 1 UNIQUE CHECK (slot = 1),
		name        TEXT NOT NULL,
		title       TEXT NOT NULL,
		description TEXT NOT NULL,
		email       TEXT NOT NULL,
		phone       TEXT,
		location    TEXT NOT NULL,
		avatar      TEXT,
		social      JSONB NOT NULL DEFAULT '{}'::jsonb,
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	);
`

const createSkills = `
	CREATE TABLE IF NOT EXISTS skills (
		id           BIGSERIAL PRIMARY KEY,
		name         TEXT NOT NULL,
		category     TEXT NOT NULL,
		icon         TEXT,
		proficiency  INTEGER CHECK (proficiency BETWEEN 0 AND 100),
		ordinal      INTEGER NOT NULL DEFAULT 0,
		updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
	);
`

const createEducation = `
	CREATE TABLE IF NOT EXISTS education (
		id           BIGSERIAL PRIMARY KEY,
		institution  TEXT NOT NULL,
		degree       TEXT NOT NULL,
		field        TEXT NOT NULL,
		start_date   TEXT NOT NULL,
		end_date     TEXT,
		description  TEXT,
		location     TEXT,
		gpa          TEXT,
		ordinal      INTEGER NOT NULL DEFAULT 0,
		updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
	);
`

const createExperience = `
	CREATE TABLE IF NOT EXISTS experience (
		id           BIGSERIAL PRIMARY KEY,
		company      TEXT NOT NULL,
		position     TEXT NOT NULL,
		start_date   TEXT NOT NULL,
		end_date     TEXT,
		description  TEXT NOT NULL,
		location     TEXT,
		logo         TEXT,
		ordinal      INTEGER NOT NULL DEFAULT 0,
		updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
	);
`

const createProjects = `
	CREATE TABLE IF NOT EXISTS projects (
		id           BIGSERIAL PRIMARY KEY,
		title        TEXT NOT NULL,
		description  TEXT NOT NULL,
		image        TEXT NOT NULL,
		github       TEXT,
		demo         TEXT,
		featured     BOOLEAN NOT NULL DEFAULT FALSE,
		year         VARCHAR(4),
		ordinal      INTEGER NOT NULL DEFAULT 0,
		updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
	);
`

const createTechnologies = `
	CREATE TABLE IF NOT EXISTS technologies (
		id          BIGSERIAL PRIMARY KEY,
		name        TEXT NOT NULL,
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	);
`

const createProjectTechnologies = `
	CREATE TABLE IF NOT EXISTS project_technologies (
		project_id     BIGINT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		technology_id  BIGINT NOT NULL REFERENCES technologies(id) ON DELETE CASCADE,
		PRIMARY KEY (project_id, technology_id)
	);
`

const createOrdinalIndexes = `
	CREATE INDEX IF NOT EXISTS idx_skills_ordinal ON skills (ordinal, id);
	CREATE INDEX IF NOT EXISTS idx_education_ordinal ON education (ordinal, id);
	CREATE INDEX IF NOT EXISTS idx_experience_ordinal ON experience (ordinal, id);
	CREATE INDEX IF NOT EXISTS idx_projects_ordinal ON projects (ordinal, id);
	CREATE INDEX IF NOT EXISTS idx_project_technologies_technology ON project_technologies (technology_id);
`

// Databases created with SERIAL ids are widened in place. Altering a column
// that is already BIGINT does not rewrite the table.
const widenIDs = `
	ALTER TABLE personal_info ALTER COLUMN id TYPE BIGINT;
	ALTER TABLE skills ALTER COLUMN id TYPE BIGINT;
	ALTER TABLE education ALTER COLUMN id TYPE BIGINT;
	ALTER TABLE experience ALTER COLUMN id TYPE BIGINT;
	ALTER TABLE projects ALTER COLUMN id TYPE BIGINT;
	ALTER TABLE technologies ALTER COLUMN id TYPE BIGINT;
	ALTER TABLE project_technologies ALTER COLUMN project_id TYPE BIGINT;
	ALTER TABLE project_technologies ALTER COLUMN technology_id TYPE BIGINT;
	ALTER SEQUENCE IF EXISTS personal_info_id_seq AS BIGINT;
	ALTER SEQUENCE IF EXISTS skills_id_seq AS BIGINT;
	ALTER SEQUENCE IF EXISTS education_id_seq AS BIGINT;
	ALTER SEQUENCE IF EXISTS experience_id_seq AS BIGINT;
	ALTER SEQUENCE IF EXISTS projects_id_seq AS BIGINT;
	ALTER SEQUENCE IF EXISTS technologies_id_seq AS BIGINT;
`
