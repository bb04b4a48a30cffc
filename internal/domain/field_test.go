package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldTracksPresenceAndNull(t *testing.T) {
	var p ExperiencePatch
	require.NoError(t, json.Unmarshal([]byte(`{"company":"Acme","endDate":null,"ordinal":4}`), &p))

	assert.Equal(t, Of("Acme"), p.Company)
	assert.True(t, p.EndDate.Set)
	assert.True(t, p.EndDate.Null)
	assert.Equal(t, Of(4), p.Ordinal)
	assert.False(t, p.Position.Set)
	assert.False(t, p.Logo.Set)
}

func TestEntityJSONIsFlat(t *testing.T) {
	year := "2024"
	p := Project{ID: 7, ProjectInput: ProjectInput{Title: "Site", Year: &year, Ordinal: 1}}

	b, err := json.Marshal(p)
	require.NoError(t, err)

	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &m))
	assert.Equal(t, float64(7), m["id"])
	assert.Equal(t, "Site", m["title"])
	assert.Equal(t, "2024", m["year"])
	assert.Nil(t, m["github"])
	assert.Contains(t, m, "updatedAt")
}

func TestNormalizeName(t *testing.T) {
	// "e" followed by a combining acute accent composes to a single rune.
	assert.Equal(t, "Caf\u00e9", NormalizeName("  Cafe\u0301 "))
	assert.Equal(t, "Go", NormalizeName("Go"))
}
