package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"portfolio/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// personalInfoSlot is the only value the personal_info.slot column takes.
// Its unique index is the conflict target of the profile upsert.
const personalInfoSlot = 1

type personalInfoRow struct {
	domain.PersonalInfo
	Slot int `gorm:"not null;default:1;uniqueIndex"`
}

func (personalInfoRow) TableName() string { return "personal_info" }

type projectTechnologyRow struct {
	ProjectID    int64              `gorm:"primaryKey;autoIncrement:false"`
	TechnologyID int64              `gorm:"primaryKey;autoIncrement:false"`
	Project      *domain.Project    `gorm:"constraint:OnDelete:CASCADE"`
	Technology   *domain.Technology `gorm:"constraint:OnDelete:CASCADE"`
}

func (projectTechnologyRow) TableName() string { return "project_technologies" }

// GormStore implements usecase.Store through gorm. It backs the sqlite
// driver used for local runs and tests.
type GormStore struct {
	db  *gorm.DB
	now func() time.Time
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db, now: func() time.Time { return time.Now().UTC() }}
}

// AutoMigrate creates or updates the portfolio tables.
func (s *GormStore) AutoMigrate() error {
	err := s.db.AutoMigrate(
		&personalInfoRow{},
		&domain.Skill{},
		&domain.Education{},
		&domain.Experience{},
		&domain.Project{},
		&domain.Technology{},
		&projectTechnologyRow{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

func getByID[T any](ctx context.Context, db *gorm.DB, id int64) (T, bool, error) {
	var v T
	err := db.WithContext(ctx).First(&v, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return v, false, nil
	}
	if err != nil {
		return v, false, err
	}
	return v, true, nil
}

// updateByID applies a column map and reads the row back.
func updateByID[T any](ctx context.Context, db *gorm.DB, now time.Time, id int64, cols map[string]interface{}) (T, bool, error) {
	var v T
	cols["updated_at"] = now
	res := db.WithContext(ctx).Model(&v).Where("id = ?", id).Updates(cols)
	if res.Error != nil {
		return v, false, res.Error
	}
	if res.RowsAffected == 0 {
		return v, false, nil
	}
	return getByID[T](ctx, db, id)
}

func deleteByID[T any](ctx context.Context, db *gorm.DB, id int64) (bool, error) {
	var v T
	res := db.WithContext(ctx).Delete(&v, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ---------------- PERSONAL INFO ----------------

func (s *GormStore) GetPersonalInfo(ctx context.Context) (domain.PersonalInfo, bool, error) {
	var row personalInfoRow
	err := s.db.WithContext(ctx).Order("updated_at DESC").Order("id DESC").First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.PersonalInfo{}, false, nil
	}
	if err != nil {
		return domain.PersonalInfo{}, false, fmt.Errorf("failed to retrieve personal info: %w", err)
	}
	return row.PersonalInfo, true, nil
}

func (s *GormStore) UpdatePersonalInfo(ctx context.Context, in domain.PersonalInfoInput) (domain.PersonalInfo, error) {
	row := personalInfoRow{
		PersonalInfo: domain.PersonalInfo{PersonalInfoInput: in, UpdatedAt: s.now()},
		Slot:         personalInfoSlot,
	}
	var out personalInfoRow
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "slot"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "title", "description", "email", "location", "phone", "avatar", "social", "updated_at",
			}),
		}).Create(&row).Error
		if err != nil {
			return err
		}
		return tx.Where("slot = ?", personalInfoSlot).First(&out).Error
	})
	if err != nil {
		return domain.PersonalInfo{}, fmt.Errorf("failed to upsert personal info: %w", err)
	}
	return out.PersonalInfo, nil
}

// ---------------- SKILLS ----------------

func (s *GormStore) ListSkills(ctx context.Context) ([]domain.Skill, error) {
	out := []domain.Skill{}
	if err := s.db.WithContext(ctx).Order("ordinal, id").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve skills: %w", err)
	}
	return out, nil
}

func (s *GormStore) ListSkillsByCategory(ctx context.Context, category string) ([]domain.Skill, error) {
	out := []domain.Skill{}
	if err := s.db.WithContext(ctx).Where("category = ?", category).Order("ordinal, id").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve skills: %w", err)
	}
	return out, nil
}

func (s *GormStore) GetSkill(ctx context.Context, id int64) (domain.Skill, bool, error) {
	sk, ok, err := getByID[domain.Skill](ctx, s.db, id)
	if err != nil {
		return sk, false, fmt.Errorf("failed to retrieve skill %d: %w", id, err)
	}
	return sk, ok, nil
}

func (s *GormStore) CreateSkill(ctx context.Context, in domain.SkillInput) (domain.Skill, error) {
	sk := domain.Skill{SkillInput: in, UpdatedAt: s.now()}
	if err := s.db.WithContext(ctx).Create(&sk).Error; err != nil {
		return sk, fmt.Errorf("failed to add skill: %w", err)
	}
	return sk, nil
}

func (s *GormStore) UpdateSkill(ctx context.Context, id int64, p domain.SkillPatch) (domain.Skill, bool, error) {
	sk, ok, err := updateByID[domain.Skill](ctx, s.db, s.now(), id, skillColumns(p))
	if err != nil {
		return sk, false, fmt.Errorf("failed to update skill %d: %w", id, err)
	}
	return sk, ok, nil
}

func (s *GormStore) DeleteSkill(ctx context.Context, id int64) (bool, error) {
	ok, err := deleteByID[domain.Skill](ctx, s.db, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete skill %d: %w", id, err)
	}
	return ok, nil
}

// ---------------- EDUCATION ----------------

func (s *GormStore) ListEducation(ctx context.Context) ([]domain.Education, error) {
	out := []domain.Education{}
	if err := s.db.WithContext(ctx).Order("ordinal, id").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve education: %w", err)
	}
	return out, nil
}

func (s *GormStore) GetEducation(ctx context.Context, id int64) (domain.Education, bool, error) {
	e, ok, err := getByID[domain.Education](ctx, s.db, id)
	if err != nil {
		return e, false, fmt.Errorf("failed to retrieve education %d: %w", id, err)
	}
	return e, ok, nil
}

func (s *GormStore) CreateEducation(ctx context.Context, in domain.EducationInput) (domain.Education, error) {
	e := domain.Education{EducationInput: in, UpdatedAt: s.now()}
	if err := s.db.WithContext(ctx).Create(&e).Error; err != nil {
		return e, fmt.Errorf("failed to add education: %w", err)
	}
	return e, nil
}

func (s *GormStore) UpdateEducation(ctx context.Context, id int64, p domain.EducationPatch) (domain.Education, bool, error) {
	e, ok, err := updateByID[domain.Education](ctx, s.db, s.now(), id, educationColumns(p))
	if err != nil {
		return e, false, fmt.Errorf("failed to update education %d: %w", id, err)
	}
	return e, ok, nil
}

func (s *GormStore) DeleteEducation(ctx context.Context, id int64) (bool, error) {
	ok, err := deleteByID[domain.Education](ctx, s.db, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete education %d: %w", id, err)
	}
	return ok, nil
}

// ---------------- EXPERIENCE ----------------

func (s *GormStore) ListExperience(ctx context.Context) ([]domain.Experience, error) {
	out := []domain.Experience{}
	if err := s.db.WithContext(ctx).Order("ordinal, id").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve experience: %w", err)
	}
	return out, nil
}

func (s *GormStore) GetExperience(ctx context.Context, id int64) (domain.Experience, bool, error) {
	e, ok, err := getByID[domain.Experience](ctx, s.db, id)
	if err != nil {
		return e, false, fmt.Errorf("failed to retrieve experience %d: %w", id, err)
	}
	return e, ok, nil
}

func (s *GormStore) CreateExperience(ctx context.Context, in domain.ExperienceInput) (domain.Experience, error) {
	e := domain.Experience{ExperienceInput: in, UpdatedAt: s.now()}
	if err := s.db.WithContext(ctx).Create(&e).Error; err != nil {
		return e, fmt.Errorf("failed to add experience: %w", err)
	}
	return e, nil
}

func (s *GormStore) UpdateExperience(ctx context.Context, id int64, p domain.ExperiencePatch) (domain.Experience, bool, error) {
	e, ok, err := updateByID[domain.Experience](ctx, s.db, s.now(), id, experienceColumns(p))
	if err != nil {
		return e, false, fmt.Errorf("failed to update experience %d: %w", id, err)
	}
	return e, ok, nil
}

func (s *GormStore) DeleteExperience(ctx context.Context, id int64) (bool, error) {
	ok, err := deleteByID[domain.Experience](ctx, s.db, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete experience %d: %w", id, err)
	}
	return ok, nil
}

// ---------------- PROJECTS ----------------

func (s *GormStore) ListProjects(ctx context.Context) ([]domain.Project, error) {
	out := []domain.Project{}
	if err := s.db.WithContext(ctx).Order("ordinal, id").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve projects: %w", err)
	}
	return out, nil
}

func (s *GormStore) GetProject(ctx context.Context, id int64) (domain.Project, bool, error) {
	p, ok, err := getByID[domain.Project](ctx, s.db, id)
	if err != nil {
		return p, false, fmt.Errorf("failed to retrieve project %d: %w", id, err)
	}
	return p, ok, nil
}

func (s *GormStore) CreateProject(ctx context.Context, in domain.ProjectInput) (domain.Project, error) {
	p := domain.Project{ProjectInput: in, UpdatedAt: s.now()}
	if err := s.db.WithContext(ctx).Create(&p).Error; err != nil {
		return p, fmt.Errorf("failed to add project: %w", err)
	}
	return p, nil
}

func (s *GormStore) UpdateProject(ctx context.Context, id int64, p domain.ProjectPatch) (domain.Project, bool, error) {
	pr, ok, err := updateByID[domain.Project](ctx, s.db, s.now(), id, projectColumns(p))
	if err != nil {
		return pr, false, fmt.Errorf("failed to update project %d: %w", id, err)
	}
	return pr, ok, nil
}

// DeleteProject relies on the join table's ON DELETE CASCADE, which needs
// foreign keys enabled on the sqlite connection.
func (s *GormStore) DeleteProject(ctx context.Context, id int64) (bool, error) {
	ok, err := deleteByID[domain.Project](ctx, s.db, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete project %d: %w", id, err)
	}
	return ok, nil
}

// ---------------- TECHNOLOGIES ----------------

func (s *GormStore) ListTechnologies(ctx context.Context) ([]domain.Technology, error) {
	out := []domain.Technology{}
	if err := s.db.WithContext(ctx).Order("name, id").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve technologies: %w", err)
	}
	return out, nil
}

func (s *GormStore) GetTechnology(ctx context.Context, id int64) (domain.Technology, bool, error) {
	t, ok, err := getByID[domain.Technology](ctx, s.db, id)
	if err != nil {
		return t, false, fmt.Errorf("failed to retrieve technology %d: %w", id, err)
	}
	return t, ok, nil
}

func (s *GormStore) CreateTechnology(ctx context.Context, in domain.TechnologyInput) (domain.Technology, error) {
	in.Name = domain.NormalizeName(in.Name)
	t := domain.Technology{TechnologyInput: in, UpdatedAt: s.now()}
	if err := s.db.WithContext(ctx).Create(&t).Error; err != nil {
		return t, fmt.Errorf("failed to add technology: %w", err)
	}
	return t, nil
}

func (s *GormStore) DeleteTechnology(ctx context.Context, id int64) (bool, error) {
	ok, err := deleteByID[domain.Technology](ctx, s.db, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete technology %d: %w", id, err)
	}
	return ok, nil
}

func (s *GormStore) ListProjectTechnologies(ctx context.Context, projectID int64) ([]domain.Technology, error) {
	out := []domain.Technology{}
	err := s.db.WithContext(ctx).
		Joins("JOIN project_technologies ON project_technologies.technology_id = technologies.id").
		Where("project_technologies.project_id = ?", projectID).
		Order("technologies.name, technologies.id").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve technologies of project %d: %w", projectID, err)
	}
	return out, nil
}

func (s *GormStore) AddTechnologyToProject(ctx context.Context, projectID, technologyID int64) (bool, error) {
	found := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var projects, technologies int64
		if err := tx.Model(&domain.Project{}).Where("id = ?", projectID).Count(&projects).Error; err != nil {
			return err
		}
		if err := tx.Model(&domain.Technology{}).Where("id = ?", technologyID).Count(&technologies).Error; err != nil {
			return err
		}
		if projects == 0 || technologies == 0 {
			return nil
		}
		found = true
		link := projectTechnologyRow{ProjectID: projectID, TechnologyID: technologyID}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error
	})
	if err != nil {
		return false, fmt.Errorf("failed to add technology %d to project %d: %w", technologyID, projectID, err)
	}
	return found, nil
}

func (s *GormStore) RemoveTechnologyFromProject(ctx context.Context, projectID, technologyID int64) error {
	err := s.db.WithContext(ctx).
		Where("project_id = ? AND technology_id = ?", projectID, technologyID).
		Delete(&projectTechnologyRow{}).Error
	if err != nil {
		return fmt.Errorf("failed to remove technology %d from project %d: %w", technologyID, projectID, err)
	}
	return nil
}
