package config

import (
	"Recipe-Share-Backend/internal/database"
	"Recipe-Share-Backend/internal/utils"
	"log"

	"gorm.io/gorm"
)

func ConnectDB() (*gorm.DB, error) {
	db, err := database.Open(database.Options{
		Driver:   utils.GetConfig("DB_DRIVER"),
		Host:     utils.GetConfig("DB_HOST"),
		User:     utils.GetConfig("DB_USER"),
		Password: utils.GetConfig("DB_PASSWORD"),
		Name:     utils.GetConfig("DB_NAME"),
		Port:     utils.GetConfig("DB_PORT"),
		Path:     utils.GetConfig("DB_PATH"),
	})
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
		return nil, err
	}
	return db, nil
}
