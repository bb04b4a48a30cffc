package domain

import (
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// Skill categories used by the portfolio front end. The store does not
// enforce them.
const (
	CategoryTechnical = "technical"
	CategorySoft      = "soft"
)

// EndDatePresent marks an ongoing education or experience entry.
const EndDatePresent = "Present"

type Social struct {
	Github    string `json:"github,omitempty" yaml:"github,omitempty"`
	Linkedin  string `json:"linkedin,omitempty" yaml:"linkedin,omitempty"`
	Twitter   string `json:"twitter,omitempty" yaml:"twitter,omitempty"`
	Instagram string `json:"instagram,omitempty" yaml:"instagram,omitempty"`
}

type PersonalInfoInput struct {
	Name        string  `json:"name" yaml:"name" gorm:"not null"`
	Title       string  `json:"title" yaml:"title" gorm:"not null"`
	Description string  `json:"description" yaml:"description" gorm:"not null"`
	Email       string  `json:"email" yaml:"email" gorm:"not null"`
	Location    string  `json:"location" yaml:"location" gorm:"not null"`
	Phone       *string `json:"phone" yaml:"phone"`
	Avatar      *string `json:"avatar" yaml:"avatar"`
	Social      Social  `json:"social" yaml:"social" gorm:"serializer:json;not null"`
}

// PersonalInfo is the portfolio owner's profile. Only one row is expected.
type PersonalInfo struct {
	ID int64 `json:"id" gorm:"primaryKey"`
	PersonalInfoInput
	UpdatedAt time.Time `json:"updatedAt" gorm:"not null"`
}

func (PersonalInfo) TableName() string { return "personal_info" }

type SkillInput struct {
	Name        string  `json:"name" yaml:"name" gorm:"not null"`
	Category    string  `json:"category" yaml:"category" gorm:"not null;index"`
	Icon        *string `json:"icon" yaml:"icon"`
	Proficiency *int    `json:"proficiency" yaml:"proficiency"`
	Ordinal     int     `json:"ordinal" yaml:"ordinal" gorm:"not null"`
}

type Skill struct {
	ID int64 `json:"id" gorm:"primaryKey"`
	SkillInput
	UpdatedAt time.Time `json:"updatedAt" gorm:"not null"`
}

func (Skill) TableName() string { return "skills" }

type SkillPatch struct {
	Name        Field[string] `json:"name"`
	Category    Field[string] `json:"category"`
	Icon        Field[string] `json:"icon"`
	Proficiency Field[int]    `json:"proficiency"`
	Ordinal     Field[int]    `json:"ordinal"`
}

type EducationInput struct {
	Institution string  `json:"institution" yaml:"institution" gorm:"not null"`
	Degree      string  `json:"degree" yaml:"degree" gorm:"not null"`
	Field       string  `json:"field" yaml:"field" gorm:"not null"`
	StartDate   string  `json:"startDate" yaml:"startDate" gorm:"not null"`
	EndDate     *string `json:"endDate" yaml:"endDate"`
	Description *string `json:"description" yaml:"description"`
	Location    *string `json:"location" yaml:"location"`
	GPA         *string `json:"gpa" yaml:"gpa" gorm:"column:gpa"`
	Ordinal     int     `json:"ordinal" yaml:"ordinal" gorm:"not null"`
}

type Education struct {
	ID int64 `json:"id" gorm:"primaryKey"`
	EducationInput
	UpdatedAt time.Time `json:"updatedAt" gorm:"not null"`
}

func (Education) TableName() string { return "education" }

type EducationPatch struct {
	Institution Field[string] `json:"institution"`
	Degree      Field[string] `json:"degree"`
	Field       Field[string] `json:"field"`
	StartDate   Field[string] `json:"startDate"`
	EndDate     Field[string] `json:"endDate"`
	Description Field[string] `json:"description"`
	Location    Field[string] `json:"location"`
	GPA         Field[string] `json:"gpa"`
	Ordinal     Field[int]    `json:"ordinal"`
}

type ExperienceInput struct {
	Company     string  `json:"company" yaml:"company" gorm:"not null"`
	Position    string  `json:"position" yaml:"position" gorm:"not null"`
	StartDate   string  `json:"startDate" yaml:"startDate" gorm:"not null"`
	EndDate     *string `json:"endDate" yaml:"endDate"`
	Description string  `json:"description" yaml:"description" gorm:"not null"`
	Location    *string `json:"location" yaml:"location"`
	Logo        *string `json:"logo" yaml:"logo"`
	Ordinal     int     `json:"ordinal" yaml:"ordinal" gorm:"not null"`
}

type Experience struct {
	ID int64 `json:"id" gorm:"primaryKey"`
	ExperienceInput
	UpdatedAt time.Time `json:"updatedAt" gorm:"not null"`
}

func (Experience) TableName() string { return "experience" }

type ExperiencePatch struct {
	Company     Field[string] `json:"company"`
	Position    Field[string] `json:"position"`
	StartDate   Field[string] `json:"startDate"`
	EndDate     Field[string] `json:"endDate"`
	Description Field[string] `json:"description"`
	Location    Field[string] `json:"location"`
	Logo        Field[string] `json:"logo"`
	Ordinal     Field[int]    `json:"ordinal"`
}

type ProjectInput struct {
	Title       string  `json:"title" yaml:"title" gorm:"not null"`
	Description string  `json:"description" yaml:"description" gorm:"not null"`
	Image       string  `json:"image" yaml:"image" gorm:"not null"`
	Github      *string `json:"github" yaml:"github"`
	Demo        *string `json:"demo" yaml:"demo"`
	Featured    bool    `json:"featured" yaml:"featured" gorm:"not null"`
	Year        *string `json:"year" yaml:"year" gorm:"size:4"`
	Ordinal     int     `json:"ordinal" yaml:"ordinal" gorm:"not null"`
}

type Project struct {
	ID int64 `json:"id" gorm:"primaryKey"`
	ProjectInput
	UpdatedAt time.Time `json:"updatedAt" gorm:"not null"`
}

func (Project) TableName() string { return "projects" }

type ProjectPatch struct {
	Title       Field[string] `json:"title"`
	Description Field[string] `json:"description"`
	Image       Field[string] `json:"image"`
	Github      Field[string] `json:"github"`
	Demo        Field[string] `json:"demo"`
	Featured    Field[bool]   `json:"featured"`
	Year        Field[string] `json:"year"`
	Ordinal     Field[int]    `json:"ordinal"`
}

type TechnologyInput struct {
	Name string `json:"name" yaml:"name" gorm:"not null;index"`
}

type Technology struct {
	ID int64 `json:"id" gorm:"primaryKey"`
	TechnologyInput
	UpdatedAt time.Time `json:"updatedAt" gorm:"not null"`
}

func (Technology) TableName() string { return "technologies" }

// ProjectTechnology links a project to one of the technologies it uses.
type ProjectTechnology struct {
	ProjectID    int64 `json:"projectId"`
	TechnologyID int64 `json:"technologyId"`
}

// NormalizeName trims a technology name and puts it in Unicode NFC so that
// visually identical names sort and compare the same.
func NormalizeName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}
