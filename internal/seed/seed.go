// Package seed loads portfolio content from a YAML document and writes it
// through a usecase.Store.
package seed

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"portfolio/internal/domain"
	"portfolio/internal/model"
	"portfolio/internal/usecase"

	"gopkg.in/yaml.v3"
)

// Project is a project entry together with the names of the technologies
// it uses.
type Project struct {
	domain.ProjectInput `yaml:",inline"`
	Technologies        []string `yaml:"technologies"`
}

type Document struct {
	PersonalInfo *domain.PersonalInfoInput `yaml:"personalInfo"`
	Skills       []domain.SkillInput       `yaml:"skills"`
	Education    []domain.EducationInput   `yaml:"education"`
	Experience   []domain.ExperienceInput  `yaml:"experience"`
	Projects     []Project                 `yaml:"projects"`
}

// Result counts the rows written by Apply.
type Result struct {
	PersonalInfo bool
	Skills       int
	Education    int
	Experience   int
	Projects     int
	Technologies int
	Links        int
}

func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes a seed document. Unknown keys are rejected.
func Parse(r io.Reader) (*Document, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var doc Document
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode seed document: %w", err)
	}
	return &doc, nil
}

// Validate runs every entry through the same schemas the API uses.
func (d *Document) Validate(v *model.Validator) error {
	var errs []error
	check := func(e model.Entity, where string, item interface{}) {
		body, err := json.Marshal(item)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", where, err))
			return
		}
		if err := v.Validate(e, body); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", where, err))
		}
	}

	if d.PersonalInfo != nil {
		check(model.PersonalInfo, "personalInfo", d.PersonalInfo)
	}
	for i, s := range d.Skills {
		check(model.Skill, fmt.Sprintf("skills[%d]", i), s)
	}
	for i, e := range d.Education {
		check(model.Education, fmt.Sprintf("education[%d]", i), e)
	}
	for i, e := range d.Experience {
		check(model.Experience, fmt.Sprintf("experience[%d]", i), e)
	}
	for i, p := range d.Projects {
		check(model.Project, fmt.Sprintf("projects[%d]", i), p.ProjectInput)
		for j, name := range p.Technologies {
			check(model.Technology, fmt.Sprintf("projects[%d].technologies[%d]", i, j), domain.TechnologyInput{Name: name})
		}
	}
	return errors.Join(errs...)
}

// Apply writes the document. Personal info is always upserted; every other
// collection is only seeded while its table is empty, so running Apply twice
// does not duplicate rows. Technologies are matched by normalised name and
// created once.
func Apply(ctx context.Context, store usecase.Store, doc *Document) (Result, error) {
	var res Result

	if doc.PersonalInfo != nil {
		if _, err := store.UpdatePersonalInfo(ctx, *doc.PersonalInfo); err != nil {
			return res, fmt.Errorf("seed personal info: %w", err)
		}
		res.PersonalInfo = true
	}

	var err error
	if res.Skills, err = seedEmpty(ctx, "skills", doc.Skills, store.ListSkills, store.CreateSkill); err != nil {
		return res, err
	}
	if res.Education, err = seedEmpty(ctx, "education", doc.Education, store.ListEducation, store.CreateEducation); err != nil {
		return res, err
	}
	if res.Experience, err = seedEmpty(ctx, "experience", doc.Experience, store.ListExperience, store.CreateExperience); err != nil {
		return res, err
	}

	existing, err := store.ListProjects(ctx)
	if err != nil {
		return res, fmt.Errorf("seed projects: %w", err)
	}
	if len(existing) > 0 || len(doc.Projects) == 0 {
		return res, nil
	}

	techs, err := store.ListTechnologies(ctx)
	if err != nil {
		return res, fmt.Errorf("seed technologies: %w", err)
	}
	byName := make(map[string]int64, len(techs))
	for _, t := range techs {
		if _, ok := byName[t.Name]; !ok {
			byName[t.Name] = t.ID
		}
	}

	for _, p := range doc.Projects {
		created, err := store.CreateProject(ctx, p.ProjectInput)
		if err != nil {
			return res, fmt.Errorf("seed project %q: %w", p.Title, err)
		}
		res.Projects++

		for _, name := range p.Technologies {
			name = domain.NormalizeName(name)
			id, ok := byName[name]
			if !ok {
				t, err := store.CreateTechnology(ctx, domain.TechnologyInput{Name: name})
				if err != nil {
					return res, fmt.Errorf("seed technology %q: %w", name, err)
				}
				id = t.ID
				byName[name] = id
				res.Technologies++
			}
			if _, err := store.AddTechnologyToProject(ctx, created.ID, id); err != nil {
				return res, fmt.Errorf("link %q to %q: %w", name, p.Title, err)
			}
			res.Links++
		}
	}

	slog.Info("seed applied",
		"projects", res.Projects,
		"technologies", res.Technologies,
		"links", res.Links,
	)
	return res, nil
}

func seedEmpty[T, In any](
	ctx context.Context,
	name string,
	items []In,
	list func(context.Context) ([]T, error),
	create func(context.Context, In) (T, error),
) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}
	existing, err := list(ctx)
	if err != nil {
		return 0, fmt.Errorf("seed %s: %w", name, err)
	}
	if len(existing) > 0 {
		slog.Info("seed skipped, table not empty", "table", name, "rows", len(existing))
		return 0, nil
	}
	for i, in := range items {
		if _, err := create(ctx, in); err != nil {
			return i, fmt.Errorf("seed %s[%d]: %w", name, i, err)
		}
	}
	return len(items), nil
}

// Export reads the store back into a document that Apply accepts.
func Export(ctx context.Context, store usecase.Store) (*Document, error) {
	doc := &Document{}

	info, ok, err := store.GetPersonalInfo(ctx)
	if err != nil {
		return nil, fmt.Errorf("export personal info: %w", err)
	}
	if ok {
		doc.PersonalInfo = &info.PersonalInfoInput
	}

	skills, err := store.ListSkills(ctx)
	if err != nil {
		return nil, fmt.Errorf("export skills: %w", err)
	}
	for _, s := range skills {
		doc.Skills = append(doc.Skills, s.SkillInput)
	}

	education, err := store.ListEducation(ctx)
	if err != nil {
		return nil, fmt.Errorf("export education: %w", err)
	}
	for _, e := range education {
		doc.Education = append(doc.Education, e.EducationInput)
	}

	experience, err := store.ListExperience(ctx)
	if err != nil {
		return nil, fmt.Errorf("export experience: %w", err)
	}
	for _, e := range experience {
		doc.Experience = append(doc.Experience, e.ExperienceInput)
	}

	projects, err := store.ListProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("export projects: %w", err)
	}
	for _, p := range projects {
		techs, err := store.ListProjectTechnologies(ctx, p.ID)
		if err != nil {
			return nil, fmt.Errorf("export technologies of project %d: %w", p.ID, err)
		}
		out := Project{ProjectInput: p.ProjectInput}
		for _, t := range techs {
			out.Technologies = append(out.Technologies, t.Name)
		}
		doc.Projects = append(doc.Projects, out)
	}
	return doc, nil
}

// Marshal renders a document back to YAML.
func Marshal(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode seed document: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
