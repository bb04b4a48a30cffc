package model

// Resume is the document rendered into resume.pdf. It is assembled from the
// portfolio tables and carries display-ready strings only.

type Link struct {
	URL   string
	Label string
}

type Meta struct {
	Name     string
	Headline string
	Summary  string
	Email    string
	Location string
	Phone    string
	Avatar   string
	Links    []Link
}

type Role struct {
	Company     string
	Position    string
	Period      string
	Location    string
	Description string
}

type Degree struct {
	Institution string
	Degree      string
	Field       string
	Period      string
	Location    string
	GPA         string
	Description string
}

type SkillGroup struct {
	Category string
	Skills   []string
}

type ResumeProject struct {
	Title        string
	Year         string
	Description  string
	Featured     bool
	Technologies []string
	Links        []Link
}

type Resume struct {
	Meta       Meta
	Experience []Role
	Education  []Degree
	Skills     []SkillGroup
	Projects   []ResumeProject
}

// FileName is the download name offered for the rendered PDF.
func (r Resume) FileName() string {
	name := r.Meta.Name
	if name == "" {
		return "Resume.pdf"
	}
	out := make([]rune, 0, len(name))
	for _, c := range name {
		switch c {
		case ' ', '\t':
			out = append(out, '_')
		case '"', '/', '\\', ';':
		default:
			out = append(out, c)
		}
	}
	return string(out) + "_Resume.pdf"
}
