package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"portfolio/internal/domain"
	"portfolio/internal/seed"
	"portfolio/internal/usecase"
)

// Renders the resume HTML for a seed document, no database or Chrome needed.
// Open the output in a browser to check the template.
func main() {
	in := flag.String("seed", filepath.Join("seed", "portfolio.yaml"), "seed document")
	out := flag.String("out", filepath.Join("resume-data", "generated", "resume_preview.html"), "output file")
	flag.Parse()

	doc, err := seed.Load(*in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load seed: %v\n", err)
		os.Exit(2)
	}

	html, err := usecase.RenderResumeHTML(usecase.AssembleResume(portfolioOf(doc)))
	if err != nil {
		fmt.Fprintf(os.Stderr, "render: %v\n", err)
		os.Exit(2)
	}

	if err := os.MkdirAll(filepath.Dir(*out), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "create out dir: %v\n", err)
		os.Exit(2)
	}
	if err := os.WriteFile(*out, []byte(html), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "write out: %v\n", err)
		os.Exit(2)
	}
	fmt.Printf("wrote %s\n", *out)
}

// portfolioOf numbers the seed entries the way a fresh store would.
func portfolioOf(doc *seed.Document) usecase.Portfolio {
	p := usecase.Portfolio{Technologies: map[int64][]domain.Technology{}}
	if doc.PersonalInfo != nil {
		p.Info = &domain.PersonalInfo{ID: 1, PersonalInfoInput: *doc.PersonalInfo}
	}
	for i, s := range doc.Skills {
		p.Skills = append(p.Skills, domain.Skill{ID: int64(i + 1), SkillInput: s})
	}
	for i, e := range doc.Education {
		p.Education = append(p.Education, domain.Education{ID: int64(i + 1), EducationInput: e})
	}
	for i, e := range doc.Experience {
		p.Experience = append(p.Experience, domain.Experience{ID: int64(i + 1), ExperienceInput: e})
	}
	for i, pr := range doc.Projects {
		id := int64(i + 1)
		p.Projects = append(p.Projects, domain.Project{ID: id, ProjectInput: pr.ProjectInput})
		for _, name := range pr.Technologies {
			p.Technologies[id] = append(p.Technologies[id], domain.Technology{TechnologyInput: domain.TechnologyInput{Name: name}})
		}
	}
	return p
}
