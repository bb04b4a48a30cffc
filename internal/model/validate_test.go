package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newValidator(t *testing.T) *Validator {
	t.Helper()
	v, err := NewValidator()
	require.NoError(t, err)
	return v
}

func fields(err error) []string {
	var verr *ValidationError
	if !errors.As(err, &verr) {
		return nil
	}
	out := make([]string, 0, len(verr.Errors))
	for _, fe := range verr.Errors {
		out = append(out, fe.Field)
	}
	return out
}

func TestValidateSkill(t *testing.T) {
	v := newValidator(t)

	tests := []struct {
		name   string
		body   string
		fields []string
	}{
		{name: "complete", body: `{"name":"Go","category":"technical","ordinal":1,"proficiency":90}`},
		{name: "null optionals", body: `{"name":"Go","category":"technical","ordinal":1,"icon":null,"proficiency":null}`},
		{name: "missing name", body: `{"category":"technical","ordinal":1}`, fields: []string{"name"}},
		{name: "proficiency above range", body: `{"name":"Go","category":"technical","ordinal":1,"proficiency":101}`, fields: []string{"proficiency"}},
		{name: "fractional ordinal", body: `{"name":"Go","category":"technical","ordinal":1.5}`, fields: []string{"ordinal"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(Skill, []byte(tt.body))
			if tt.fields == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.fields, fields(err))
		})
	}
}

func TestValidateRejectsNonObject(t *testing.T) {
	v := newValidator(t)

	err := v.Validate(Skill, []byte(`[]`))
	require.Error(t, err)
	assert.Contains(t, fields(err), "")
}

func TestValidatePartialAllowsMissingFields(t *testing.T) {
	v := newValidator(t)

	assert.NoError(t, v.ValidatePartial(Skill, []byte(`{"ordinal":3}`)))
	assert.NoError(t, v.ValidatePartial(Education, []byte(`{}`)))
	assert.NoError(t, v.ValidatePartial(Project, []byte(`{"github":null}`)))

	err := v.ValidatePartial(Skill, []byte(`{"name":null}`))
	assert.Equal(t, []string{"name"}, fields(err))

	err = v.ValidatePartial(Project, []byte(`{"year":"20245"}`))
	assert.Equal(t, []string{"year"}, fields(err))
}

func TestValidateReportsEveryMissingField(t *testing.T) {
	v := newValidator(t)

	err := v.Validate(Experience, []byte(`{"company":"Acme"}`))
	assert.Equal(t, []string{"description", "ordinal", "position", "startDate"}, fields(err))
}

func TestValidateMalformed(t *testing.T) {
	v := newValidator(t)

	assert.ErrorIs(t, v.Validate(Technology, []byte(`{"name":`)), ErrMalformed)
	assert.ErrorIs(t, v.ValidatePartial(Technology, nil), ErrMalformed)
}

func TestValidateContact(t *testing.T) {
	v := newValidator(t)

	ok := `{"name":"Jo","email":"jo@example.com","subject":"Hello","message":"Long enough message"}`
	assert.NoError(t, v.Validate(Contact, []byte(ok)))

	tests := []struct {
		name  string
		body  string
		field string
	}{
		{name: "short name", body: `{"name":"J","email":"jo@example.com","subject":"Hello","message":"Long enough message"}`, field: "name"},
		{name: "bad email", body: `{"name":"Jo","email":"not-an-email","subject":"Hello","message":"Long enough message"}`, field: "email"},
		{name: "display name email", body: `{"name":"Jo","email":"Jane Doe <jane@example.com>","subject":"Hello","message":"Long enough message"}`, field: "email"},
		{name: "dotless domain", body: `{"name":"Jo","email":"jane@localhost","subject":"Hello","message":"Long enough message"}`, field: "email"},
		{name: "quoted local part", body: `{"name":"Jo","email":"\"a b\"@x","subject":"Hello","message":"Long enough message"}`, field: "email"},
		{name: "trailing dot domain", body: `{"name":"Jo","email":"jo@example.","subject":"Hello","message":"Long enough message"}`, field: "email"},
		{name: "short subject", body: `{"name":"Jane","email":"jo@example.com","subject":"Hey","message":"Long enough message"}`, field: "subject"},
		{name: "short message", body: `{"name":"Jo","email":"jo@example.com","subject":"Hello","message":"short"}`, field: "message"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(Contact, []byte(tt.body))
			assert.Equal(t, []string{tt.field}, fields(err))
		})
	}
}

func TestValidateOrdinalFitsInt32(t *testing.T) {
	v := newValidator(t)

	err := v.Validate(Skill, []byte(`{"name":"Go","category":"technical","ordinal":3000000000}`))
	assert.Equal(t, []string{"ordinal"}, fields(err))
	err = v.ValidatePartial(Project, []byte(`{"ordinal":-3000000000}`))
	assert.Equal(t, []string{"ordinal"}, fields(err))
	assert.NoError(t, v.ValidatePartial(Education, []byte(`{"ordinal":2147483647}`)))
}

func TestResumeFileName(t *testing.T) {
	assert.Equal(t, "Jane_Doe_Resume.pdf", Resume{Meta: Meta{Name: "Jane Doe"}}.FileName())
	assert.Equal(t, "Resume.pdf", Resume{}.FileName())
}

func TestResumeProjectsAndProjectEntity(t *testing.T) {
	r := Resume{Projects: []ResumeProject{{Title: "Dash", Technologies: []string{"Go"}}}}
	assert.Equal(t, "Dash", r.Projects[0].Title)
	assert.Equal(t, "project", Project.Label())
}
