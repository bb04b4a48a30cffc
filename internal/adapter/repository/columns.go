package repository

import "portfolio/internal/domain"

// Column maps built from PATCH bodies. Keys are column names, a nil value
// writes NULL. Both stores apply these maps as-is, so only columns that
// appear here can ever be updated.

func set[T any](cols map[string]interface{}, name string, f domain.Field[T]) {
	if !f.Set {
		return
	}
	if f.Null {
		cols[name] = nil
		return
	}
	cols[name] = f.Value
}

func skillColumns(p domain.SkillPatch) map[string]interface{} {
	cols := map[string]interface{}{}
	set(cols, "name", p.Name)
	set(cols, "category", p.Category)
	set(cols, "icon", p.Icon)
	set(cols, "proficiency", p.Proficiency)
	set(cols, "ordinal", p.Ordinal)
	return cols
}

func educationColumns(p domain.EducationPatch) map[string]interface{} {
	cols := map[string]interface{}{}
	set(cols, "institution", p.Institution)
	set(cols, "degree", p.Degree)
	set(cols, "field", p.Field)
	set(cols, "start_date", p.StartDate)
	set(cols, "end_date", p.EndDate)
	set(cols, "description", p.Description)
	set(cols, "location", p.Location)
	set(cols, "gpa", p.GPA)
	set(cols, "ordinal", p.Ordinal)
	return cols
}

func experienceColumns(p domain.ExperiencePatch) map[string]interface{} {
	cols := map[string]interface{}{}
	set(cols, "company", p.Company)
	set(cols, "position", p.Position)
	set(cols, "start_date", p.StartDate)
	set(cols, "end_date", p.EndDate)
	set(cols, "description", p.Description)
	set(cols, "location", p.Location)
	set(cols, "logo", p.Logo)
	set(cols, "ordinal", p.Ordinal)
	return cols
}

func projectColumns(p domain.ProjectPatch) map[string]interface{} {
	cols := map[string]interface{}{}
	set(cols, "title", p.Title)
	set(cols, "description", p.Description)
	set(cols, "image", p.Image)
	set(cols, "github", p.Github)
	set(cols, "demo", p.Demo)
	set(cols, "featured", p.Featured)
	set(cols, "year", p.Year)
	set(cols, "ordinal", p.Ordinal)
	return cols
}
