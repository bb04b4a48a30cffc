package repository

import (
	"context"
	"path/filepath"
	"testing"

	"portfolio/internal/config"
	"portfolio/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSQLite(t *testing.T) {
	cfg := &config.Config{StoreDriver: config.DriverSQLite, SQLitePath: filepath.Join(t.TempDir(), "open.db")}

	store, closeStore, err := Open(context.Background(), cfg)
	require.NoError(t, err)
	defer closeStore()

	_, ok, err := store.GetPersonalInfo(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)

	tech, err := store.CreateTechnology(context.Background(), domain.TechnologyInput{Name: "Go"})
	require.NoError(t, err)
	assert.NotZero(t, tech.ID)
}

func TestOpenUnknownDriver(t *testing.T) {
	_, _, err := Open(context.Background(), &config.Config{StoreDriver: "mongo"})
	assert.Error(t, err)
}
