package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/organized-life/backend/config"
)

type widget struct {
	ID   uint
	Name string
}

func TestNewConnection_SQLite(t *testing.T) {
	database, err := NewConnection(&config.DatabaseConfig{
		Driver: DriverSQLite,
		URL:    "file::memory:",
	})
	require.NoError(t, err)
	defer database.Close()

	require.NoError(t, database.AutoMigrate(&widget{}))
	assert.True(t, database.DB().Migrator().HasTable(&widget{}))
	assert.NoError(t, database.Ping(context.Background()))
}

func TestNewConnection_UnknownDriver(t *testing.T) {
	_, err := NewConnection(&config.DatabaseConfig{Driver: "oracle"})
	assert.ErrorContains(t, err, "unsupported database driver")
}
