package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestColumnMismatches(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&Project{}, &ProjectTag{}))
	require.NoError(t, db.Exec("ALTER TABLE projects ADD COLUMN legacy_slug text").Error)

	report, err := ColumnMismatches(db)
	require.NoError(t, err)

	assert.Equal(t, map[string][]string{"projects": {"legacy_slug"}}, report)
	assert.Contains(t, FormatColumnReport(report), "Total mismatched columns across all tables: 1")
}
