package migration

import (
	"Recipe-Share-Backend/entities"
	"fmt"
	"log"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	models := []struct {
		name  string
		model any
	}{
		{"user", &entities.User{}},
		{"profile", &entities.Profile{}},
		{"recipe", &entities.Recipe{}},
		{"like", &entities.Like{}},
		{"comment", &entities.Comment{}},
	}

	for _, m := range models {
		if err := db.AutoMigrate(m.model); err != nil {
			return fmt.Errorf("error migrating %s database: %w", m.name, err)
		}
	}

	log.Println("Database migration complete")
	return nil
}
