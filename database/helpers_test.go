package database

import (
	"context"
	"testing"

	"github.com/diyhub/backend/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) Database {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	d := New(db)
	require.NoError(t, d.Migrate())
	return d
}

func seedUser(t *testing.T, d Database, email string) *models.User {
	t.Helper()
	user := &models.User{FirstName: "Ada", LastName: "Lovelace", Email: email, PasswordHash: "x"}
	require.NoError(t, d.UserRepo().Add(context.Background(), user))
	return user
}

func seedProject(t *testing.T, d Database, owner *models.User, title string, tags ...string) *models.Project {
	t.Helper()
	project := &models.Project{
		UserID:      owner.ID,
		Title:       title,
		Level:       models.LevelEasy,
		Description: "desc",
		Tags:        models.NewProjectTags(tags),
	}
	require.NoError(t, d.ProjectRepo().Add(context.Background(), project))
	return project
}
