// Package testutil holds fixtures shared by repository, service and handler tests.
package testutil

import (
	migration "Recipe-Share-Backend/cmd/database/migrate"
	"Recipe-Share-Backend/entities"
	"Recipe-Share-Backend/internal/database"
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NewDB returns a migrated SQLite database living in the test's temp dir.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "recipes_test.db"), true)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := migration.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// CreateProfile inserts a user and its profile.
func CreateProfile(t testing.TB, db *gorm.DB, username, fullName string) entities.Profile {
	t.Helper()

	user := entities.User{Email: username + "@example.com", Password: "x"}
	if err := db.WithContext(context.Background()).Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	profile := entities.Profile{ID: user.ID, Username: username}
	if fullName != "" {
		profile.FullName = &fullName
	}
	if err := db.Create(&profile).Error; err != nil {
		t.Fatalf("create profile: %v", err)
	}
	return profile
}

func CreateRecipe(t testing.TB, db *gorm.DB, ownerID uuid.UUID, title string) entities.Recipe {
	t.Helper()

	recipe := entities.Recipe{
		UserID:       ownerID,
		Title:        title,
		Ingredients:  []string{"flour", "water"},
		Instructions: []string{"mix", "bake"},
		CookingTime:  30,
		Difficulty:   "easy",
		Category:     "bread",
	}
	if err := db.Create(&recipe).Error; err != nil {
		t.Fatalf("create recipe: %v", err)
	}
	return recipe
}
