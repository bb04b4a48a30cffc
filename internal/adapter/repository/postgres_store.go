package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"portfolio/internal/domain"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// PostgresStore implements usecase.Store with hand-written SQL over a pgx
// pool. The schema is created by the migration package.
type PostgresStore struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool, now: func() time.Time { return time.Now().UTC() }}
}

type scanner interface {
	Scan(dest ...interface{}) error
}

const (
	personalInfoCols = `id, name, title, description, email, location, phone, avatar, social, updated_at`
	skillCols        = `id, name, category, icon, proficiency, ordinal, updated_at`
	educationCols    = `id, institution, degree, field, start_date, end_date, description, location, gpa, ordinal, updated_at`
	experienceCols   = `id, company, position, start_date, end_date, description, location, logo, ordinal, updated_at`
	projectCols      = `id, title, description, image, github, demo, featured, year, ordinal, updated_at`
	technologyCols   = `id, name, updated_at`
)

func scanPersonalInfo(row scanner) (domain.PersonalInfo, error) {
	var p domain.PersonalInfo
	var social []byte
	err := row.Scan(&p.ID, &p.Name, &p.Title, &p.Description, &p.Email, &p.Location, &p.Phone, &p.Avatar, &social, &p.UpdatedAt)
	if err != nil {
		return p, err
	}
	if len(social) > 0 {
		if err := json.Unmarshal(social, &p.Social); err != nil {
			return p, fmt.Errorf("decode social links: %w", err)
		}
	}
	return p, nil
}

func scanSkill(row scanner) (domain.Skill, error) {
	var s domain.Skill
	err := row.Scan(&s.ID, &s.Name, &s.Category, &s.Icon, &s.Proficiency, &s.Ordinal, &s.UpdatedAt)
	return s, err
}

func scanEducation(row scanner) (domain.Education, error) {
	var e domain.Education
	err := row.Scan(&e.ID, &e.Institution, &e.Degree, &e.Field, &e.StartDate, &e.EndDate, &e.Description, &e.Location, &e.GPA, &e.Ordinal, &e.UpdatedAt)
	return e, err
}

func scanExperience(row scanner) (domain.Experience, error) {
	var e domain.Experience
	err := row.Scan(&e.ID, &e.Company, &e.Position, &e.StartDate, &e.EndDate, &e.Description, &e.Location, &e.Logo, &e.Ordinal, &e.UpdatedAt)
	return e, err
}

func scanProject(row scanner) (domain.Project, error) {
	var p domain.Project
	err := row.Scan(&p.ID, &p.Title, &p.Description, &p.Image, &p.Github, &p.Demo, &p.Featured, &p.Year, &p.Ordinal, &p.UpdatedAt)
	return p, err
}

func scanTechnology(row scanner) (domain.Technology, error) {
	var t domain.Technology
	err := row.Scan(&t.ID, &t.Name, &t.UpdatedAt)
	return t, err
}

func queryAll[T any](ctx context.Context, pool *pgxpool.Pool, scan func(scanner) (T, error), sql string, args ...interface{}) ([]T, error) {
	rows, err := pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// queryOne scans a single row, turning pgx.ErrNoRows into found == false.
func queryOne[T any](row pgx.Row, scan func(scanner) (T, error)) (T, bool, error) {
	v, err := scan(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return v, false, nil
	}
	if err != nil {
		return v, false, err
	}
	return v, true, nil
}

// updateRow builds an UPDATE for the given columns plus updated_at.
func (s *PostgresStore) updateRow(ctx context.Context, table, returning string, id int64, cols map[string]interface{}) pgx.Row {
	cols["updated_at"] = s.now()

	names := make([]string, 0, len(cols))
	for name := range cols {
		names = append(names, name)
	}
	sort.Strings(names)

	sets := make([]string, 0, len(names))
	args := make([]interface{}, 0, len(names)+1)
	for i, name := range names {
		sets = append(sets, fmt.Sprintf("%s = $%d", name, i+1))
		args = append(args, cols[name])
	}
	args = append(args, id)

	sql := fmt.Sprintf(`UPDATE %s SET %s WHERE id = $%d RETURNING %s`, table, strings.Join(sets, ", "), len(args), returning)
	return s.pool.QueryRow(ctx, sql, args...)
}

func (s *PostgresStore) deleteRow(ctx context.Context, table string, id int64) (bool, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM `+table+` WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete from %s: %w", table, err)
	}
	return tag.RowsAffected() > 0, nil
}

// ---------------- PERSONAL INFO ----------------

func (s *PostgresStore) GetPersonalInfo(ctx context.Context) (domain.PersonalInfo, bool, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+personalInfoCols+` FROM personal_info ORDER BY updated_at DESC, id DESC LIMIT 1`)
	p, ok, err := queryOne(row, scanPersonalInfo)
	if err != nil {
		return p, false, fmt.Errorf("get personal info: %w", err)
	}
	return p, ok, nil
}

func (s *PostgresStore) UpdatePersonalInfo(ctx context.Context, in domain.PersonalInfoInput) (domain.PersonalInfo, error) {
	social, err := json.Marshal(in.Social)
	if err != nil {
		return domain.PersonalInfo{}, fmt.Errorf("encode social links: %w", err)
	}
	query := `
		INSERT INTO personal_info (slot, name, title, description, email, location, phone, avatar, social, updated_at)
		VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (slot)
		DO UPDATE SET name = EXCLUDED.name, title = EXCLUDED.title, description = EXCLUDED.description,
			email = EXCLUDED.email, location = EXCLUDED.location, phone = EXCLUDED.phone,
			avatar = EXCLUDED.avatar, social = EXCLUDED.social, updated_at = EXCLUDED.updated_at
		RETURNING ` + personalInfoCols
	row := s.pool.QueryRow(ctx, query, in.Name, in.Title, in.Description, in.Email, in.Location, in.Phone, in.Avatar, string(social), s.now())
	p, err := scanPersonalInfo(row)
	if err != nil {
		return p, fmt.Errorf("upsert personal info: %w", err)
	}
	return p, nil
}

// ---------------- SKILLS ----------------

func (s *PostgresStore) ListSkills(ctx context.Context) ([]domain.Skill, error) {
	out, err := queryAll(ctx, s.pool, scanSkill, `SELECT `+skillCols+` FROM skills ORDER BY ordinal, id`)
	if err != nil {
		return nil, fmt.Errorf("list skills: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) ListSkillsByCategory(ctx context.Context, category string) ([]domain.Skill, error) {
	out, err := queryAll(ctx, s.pool, scanSkill, `SELECT `+skillCols+` FROM skills WHERE category = $1 ORDER BY ordinal, id`, category)
	if err != nil {
		return nil, fmt.Errorf("list skills by category: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) GetSkill(ctx context.Context, id int64) (domain.Skill, bool, error) {
	sk, ok, err := queryOne(s.pool.QueryRow(ctx, `SELECT `+skillCols+` FROM skills WHERE id = $1`, id), scanSkill)
	if err != nil {
		return sk, false, fmt.Errorf("get skill %d: %w", id, err)
	}
	return sk, ok, nil
}

func (s *PostgresStore) CreateSkill(ctx context.Context, in domain.SkillInput) (domain.Skill, error) {
	row := s.pool.QueryRow(ctx, `INSERT INTO skills (name, category, icon, proficiency, ordinal, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING `+skillCols,
		in.Name, in.Category, in.Icon, in.Proficiency, in.Ordinal, s.now())
	sk, err := scanSkill(row)
	if err != nil {
		return sk, fmt.Errorf("create skill: %w", err)
	}
	return sk, nil
}

func (s *PostgresStore) UpdateSkill(ctx context.Context, id int64, p domain.SkillPatch) (domain.Skill, bool, error) {
	sk, ok, err := queryOne(s.updateRow(ctx, "skills", skillCols, id, skillColumns(p)), scanSkill)
	if err != nil {
		return sk, false, fmt.Errorf("update skill %d: %w", id, err)
	}
	return sk, ok, nil
}

func (s *PostgresStore) DeleteSkill(ctx context.Context, id int64) (bool, error) {
	return s.deleteRow(ctx, "skills", id)
}

// ---------------- EDUCATION ----------------

func (s *PostgresStore) ListEducation(ctx context.Context) ([]domain.Education, error) {
	out, err := queryAll(ctx, s.pool, scanEducation, `SELECT `+educationCols+` FROM education ORDER BY ordinal, id`)
	if err != nil {
		return nil, fmt.Errorf("list education: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) GetEducation(ctx context.Context, id int64) (domain.Education, bool, error) {
	e, ok, err := queryOne(s.pool.QueryRow(ctx, `SELECT `+educationCols+` FROM education WHERE id = $1`, id), scanEducation)
	if err != nil {
		return e, false, fmt.Errorf("get education %d: %w", id, err)
	}
	return e, ok, nil
}

func (s *PostgresStore) CreateEducation(ctx context.Context, in domain.EducationInput) (domain.Education, error) {
	row := s.pool.QueryRow(ctx, `INSERT INTO education (institution, degree, field, start_date, end_date, description, location, gpa, ordinal, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING `+educationCols,
		in.Institution, in.Degree, in.Field, in.StartDate, in.EndDate, in.Description, in.Location, in.GPA, in.Ordinal, s.now())
	e, err := scanEducation(row)
	if err != nil {
		return e, fmt.Errorf("create education: %w", err)
	}
	return e, nil
}

func (s *PostgresStore) UpdateEducation(ctx context.Context, id int64, p domain.EducationPatch) (domain.Education, bool, error) {
	e, ok, err := queryOne(s.updateRow(ctx, "education", educationCols, id, educationColumns(p)), scanEducation)
	if err != nil {
		return e, false, fmt.Errorf("update education %d: %w", id, err)
	}
	return e, ok, nil
}

func (s *PostgresStore) DeleteEducation(ctx context.Context, id int64) (bool, error) {
	return s.deleteRow(ctx, "education", id)
}

// ---------------- EXPERIENCE ----------------

func (s *PostgresStore) ListExperience(ctx context.Context) ([]domain.Experience, error) {
	out, err := queryAll(ctx, s.pool, scanExperience, `SELECT `+experienceCols+` FROM experience ORDER BY ordinal, id`)
	if err != nil {
		return nil, fmt.Errorf("list experience: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) GetExperience(ctx context.Context, id int64) (domain.Experience, bool, error) {
	e, ok, err := queryOne(s.pool.QueryRow(ctx, `SELECT `+experienceCols+` FROM experience WHERE id = $1`, id), scanExperience)
	if err != nil {
		return e, false, fmt.Errorf("get experience %d: %w", id, err)
	}
	return e, ok, nil
}

func (s *PostgresStore) CreateExperience(ctx context.Context, in domain.ExperienceInput) (domain.Experience, error) {
	row := s.pool.QueryRow(ctx, `INSERT INTO experience (company, position, start_date, end_date, description, location, logo, ordinal, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING `+experienceCols,
		in.Company, in.Position, in.StartDate, in.EndDate, in.Description, in.Location, in.Logo, in.Ordinal, s.now())
	e, err := scanExperience(row)
	if err != nil {
		return e, fmt.Errorf("create experience: %w", err)
	}
	return e, nil
}

func (s *PostgresStore) UpdateExperience(ctx context.Context, id int64, p domain.ExperiencePatch) (domain.Experience, bool, error) {
	e, ok, err := queryOne(s.updateRow(ctx, "experience", experienceCols, id, experienceColumns(p)), scanExperience)
	if err != nil {
		return e, false, fmt.Errorf("update experience %d: %w", id, err)
	}
	return e, ok, nil
}

func (s *PostgresStore) DeleteExperience(ctx context.Context, id int64) (bool, error) {
	return s.deleteRow(ctx, "experience", id)
}

// ---------------- PROJECTS ----------------

func (s *PostgresStore) ListProjects(ctx context.Context) ([]domain.Project, error) {
	out, err := queryAll(ctx, s.pool, scanProject, `SELECT `+projectCols+` FROM projects ORDER BY ordinal, id`)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) GetProject(ctx context.Context, id int64) (domain.Project, bool, error) {
	p, ok, err := queryOne(s.pool.QueryRow(ctx, `SELECT `+projectCols+` FROM projects WHERE id = $1`, id), scanProject)
	if err != nil {
		return p, false, fmt.Errorf("get project %d: %w", id, err)
	}
	return p, ok, nil
}

func (s *PostgresStore) CreateProject(ctx context.Context, in domain.ProjectInput) (domain.Project, error) {
	row := s.pool.QueryRow(ctx, `INSERT INTO projects (title, description, image, github, demo, featured, year, ordinal, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING `+projectCols,
		in.Title, in.Description, in.Image, in.Github, in.Demo, in.Featured, in.Year, in.Ordinal, s.now())
	p, err := scanProject(row)
	if err != nil {
		return p, fmt.Errorf("create project: %w", err)
	}
	return p, nil
}

func (s *PostgresStore) UpdateProject(ctx context.Context, id int64, p domain.ProjectPatch) (domain.Project, bool, error) {
	pr, ok, err := queryOne(s.updateRow(ctx, "projects", projectCols, id, projectColumns(p)), scanProject)
	if err != nil {
		return pr, false, fmt.Errorf("update project %d: %w", id, err)
	}
	return pr, ok, nil
}

// DeleteProject relies on ON DELETE CASCADE to drop the join rows.
func (s *PostgresStore) DeleteProject(ctx context.Context, id int64) (bool, error) {
	return s.deleteRow(ctx, "projects", id)
}

// ---------------- TECHNOLOGIES ----------------

func (s *PostgresStore) ListTechnologies(ctx context.Context) ([]domain.Technology, error) {
	out, err := queryAll(ctx, s.pool, scanTechnology, `SELECT `+technologyCols+` FROM technologies ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("list technologies: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) GetTechnology(ctx context.Context, id int64) (domain.Technology, bool, error) {
	t, ok, err := queryOne(s.pool.QueryRow(ctx, `SELECT `+technologyCols+` FROM technologies WHERE id = $1`, id), scanTechnology)
	if err != nil {
		return t, false, fmt.Errorf("get technology %d: %w", id, err)
	}
	return t, ok, nil
}

func (s *PostgresStore) CreateTechnology(ctx context.Context, in domain.TechnologyInput) (domain.Technology, error) {
	row := s.pool.QueryRow(ctx, `INSERT INTO technologies (name, updated_at) VALUES ($1, $2) RETURNING `+technologyCols,
		domain.NormalizeName(in.Name), s.now())
	t, err := scanTechnology(row)
	if err != nil {
		return t, fmt.Errorf("create technology: %w", err)
	}
	return t, nil
}

func (s *PostgresStore) DeleteTechnology(ctx context.Context, id int64) (bool, error) {
	return s.deleteRow(ctx, "technologies", id)
}

func (s *PostgresStore) ListProjectTechnologies(ctx context.Context, projectID int64) ([]domain.Technology, error) {
	query := `
		SELECT t.id, t.name, t.updated_at
		FROM technologies t
		JOIN project_technologies pt ON pt.technology_id = t.id
		WHERE pt.project_id = $1
		ORDER BY t.name, t.id`
	out, err := queryAll(ctx, s.pool, scanTechnology, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("list technologies of project %d: %w", projectID, err)
	}
	return out, nil
}

func (s *PostgresStore) AddTechnologyToProject(ctx context.Context, projectID, technologyID int64) (bool, error) {
	found := false
	err := s.pool.BeginFunc(ctx, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM projects WHERE id = $1) AND EXISTS (SELECT 1 FROM technologies WHERE id = $2)`,
			projectID, technologyID).Scan(&found)
		if err != nil || !found {
			return err
		}
		_, err = tx.Exec(ctx, `INSERT INTO project_technologies (project_id, technology_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			projectID, technologyID)
		return err
	})
	if err != nil {
		return false, fmt.Errorf("add technology %d to project %d: %w", technologyID, projectID, err)
	}
	return found, nil
}

func (s *PostgresStore) RemoveTechnologyFromProject(ctx context.Context, projectID, technologyID int64) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM project_technologies WHERE project_id = $1 AND technology_id = $2`, projectID, technologyID)
	if err != nil {
		return fmt.Errorf("remove technology %d from project %d: %w", technologyID, projectID, err)
	}
	return nil
}
