package usecase

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/url"
	"strings"
	"time"

	"portfolio/internal/domain"
	"portfolio/internal/model"

	"golang.org/x/net/publicsuffix"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed templates/resume.html
var templateFS embed.FS

var resumeTemplate = template.Must(template.ParseFS(templateFS, "templates/resume.html"))

type Renderer interface {
	RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error)
}

// ResumeService turns the stored portfolio into a downloadable resume.
type ResumeService struct {
	store    Store
	renderer Renderer
}

func NewResumeService(store Store, r Renderer) *ResumeService {
	return &ResumeService{store: store, renderer: r}
}

// Portfolio is everything the resume is assembled from.
type Portfolio struct {
	Info         *domain.PersonalInfo
	Experience   []domain.Experience
	Education    []domain.Education
	Skills       []domain.Skill
	Projects     []domain.Project
	Technologies map[int64][]domain.Technology
}

// Load reads the whole portfolio from the store.
func (s *ResumeService) Load(ctx context.Context) (Portfolio, error) {
	var p Portfolio
	info, ok, err := s.store.GetPersonalInfo(ctx)
	if err != nil {
		return p, fmt.Errorf("load personal info: %w", err)
	}
	if ok {
		p.Info = &info
	}
	if p.Experience, err = s.store.ListExperience(ctx); err != nil {
		return p, fmt.Errorf("load experience: %w", err)
	}
	if p.Education, err = s.store.ListEducation(ctx); err != nil {
		return p, fmt.Errorf("load education: %w", err)
	}
	if p.Skills, err = s.store.ListSkills(ctx); err != nil {
		return p, fmt.Errorf("load skills: %w", err)
	}
	if p.Projects, err = s.store.ListProjects(ctx); err != nil {
		return p, fmt.Errorf("load projects: %w", err)
	}
	p.Technologies = make(map[int64][]domain.Technology, len(p.Projects))
	for _, pr := range p.Projects {
		techs, err := s.store.ListProjectTechnologies(ctx, pr.ID)
		if err != nil {
			return p, fmt.Errorf("load technologies of project %d: %w", pr.ID, err)
		}
		p.Technologies[pr.ID] = techs
	}
	return p, nil
}

// RenderPDF builds the resume from the store and prints it. It returns the
// PDF bytes and the file name to offer for download.
func (s *ResumeService) RenderPDF(ctx context.Context) ([]byte, string, error) {
	p, err := s.Load(ctx)
	if err != nil {
		return nil, "", err
	}
	doc := AssembleResume(p)
	html, err := RenderResumeHTML(doc)
	if err != nil {
		return nil, "", err
	}
	pdf, err := s.renderer.RenderHTMLToPDF(ctx, html)
	if err != nil {
		return nil, "", fmt.Errorf("render resume pdf: %w", err)
	}
	return pdf, doc.FileName(), nil
}

func RenderResumeHTML(r model.Resume) (string, error) {
	var buf bytes.Buffer
	if err := resumeTemplate.Execute(&buf, r); err != nil {
		return "", fmt.Errorf("execute resume template: %w", err)
	}
	return buf.String(), nil
}

// AssembleResume maps portfolio rows onto the display model. Collections keep
// the order they were loaded in, which is ordinal order.
func AssembleResume(p Portfolio) model.Resume {
	var r model.Resume
	if p.Info != nil {
		r.Meta = model.Meta{
			Name:     p.Info.Name,
			Headline: p.Info.Title,
			Summary:  p.Info.Description,
			Email:    p.Info.Email,
			Location: p.Info.Location,
			Phone:    deref(p.Info.Phone),
			Avatar:   deref(p.Info.Avatar),
			Links: links(
				p.Info.Social.Github,
				p.Info.Social.Linkedin,
				p.Info.Social.Twitter,
				p.Info.Social.Instagram,
			),
		}
	}

	for _, e := range p.Experience {
		r.Experience = append(r.Experience, model.Role{
			Company:     e.Company,
			Position:    e.Position,
			Period:      period(e.StartDate, e.EndDate),
			Location:    deref(e.Location),
			Description: e.Description,
		})
	}

	for _, e := range p.Education {
		r.Education = append(r.Education, model.Degree{
			Institution: e.Institution,
			Degree:      e.Degree,
			Field:       e.Field,
			Period:      period(e.StartDate, e.EndDate),
			Location:    deref(e.Location),
			GPA:         deref(e.GPA),
			Description: deref(e.Description),
		})
	}

	title := cases.Title(language.English)
	groups := map[string]int{}
	for _, s := range p.Skills {
		i, ok := groups[s.Category]
		if !ok {
			i = len(r.Skills)
			groups[s.Category] = i
			r.Skills = append(r.Skills, model.SkillGroup{Category: title.String(s.Category)})
		}
		r.Skills[i].Skills = append(r.Skills[i].Skills, s.Name)
	}

	for _, pr := range p.Projects {
		doc := model.ResumeProject{
			Title:       pr.Title,
			Year:        deref(pr.Year),
			Description: pr.Description,
			Featured:    pr.Featured,
			Links:       links(deref(pr.Github), deref(pr.Demo)),
		}
		for _, t := range p.Technologies[pr.ID] {
			doc.Technologies = append(doc.Technologies, t.Name)
		}
		r.Projects = append(r.Projects, doc)
	}
	return r
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// period renders "YYYY-MM" bounds as "Jan 2020 – Present". Values that are
// not in that form are shown as stored.
func period(start string, end *string) string {
	to := domain.EndDatePresent
	if end != nil && *end != "" {
		to = monthYear(*end)
	}
	return monthYear(start) + " – " + to
}

func monthYear(s string) string {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return s
	}
	return t.Format("Jan 2006")
}

func links(urls ...string) []model.Link {
	var out []model.Link
	for _, u := range urls {
		if u == "" {
			continue
		}
		out = append(out, model.Link{URL: u, Label: linkLabel(u)})
	}
	return out
}

// linkLabel drops the scheme and any subdomain, so
// "https://www.github.com/jane" becomes "github.com/jane".
func linkLabel(raw string) string {
	candidate := raw
	if !strings.HasPrefix(candidate, "http://") && !strings.HasPrefix(candidate, "https://") {
		candidate = "https://" + candidate
	}
	parsed, err := url.Parse(candidate)
	if err != nil || parsed.Hostname() == "" {
		return raw
	}
	host := strings.TrimPrefix(parsed.Hostname(), "www.")
	if etld, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil {
		host = etld
	}
	if path := strings.Trim(parsed.Path, "/"); path != "" {
		return host + "/" + path
	}
	return host
}
