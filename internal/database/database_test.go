package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estateledger/server/internal/models"
)

func TestRunMigrations(t *testing.T) {
	db, err := NewDatabase(filepath.Join(t.TempDir(), "estate.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, db.RunMigrations())

	migrator := db.GetDB().Migrator()
	for _, table := range []any{
		&models.Office{}, &models.Agent{}, &models.Customer{},
		&models.AgentOffice{}, &models.House{}, &models.Listing{},
		&models.Sale{}, &models.AgentCommission{}, &models.SalePriceSummary{},
	} {
		assert.True(t, migrator.HasTable(table))
	}

	// Running them a second time is a no-op, not an error.
	assert.NoError(t, db.RunMigrations())
}

func TestForeignKeysEnabled(t *testing.T) {
	db, err := NewDatabase(filepath.Join(t.TempDir(), "estate.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	var enabled int
	require.NoError(t, db.GetDB().Raw("PRAGMA foreign_keys").Scan(&enabled).Error)
	assert.Equal(t, 1, enabled)
}
