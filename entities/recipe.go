package entities

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Recipe struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Title        string    `gorm:"not null" json:"title"`
	Ingredients  []string  `gorm:"type:text;serializer:json" json:"ingredients"`
	Instructions []string  `gorm:"type:text;serializer:json" json:"instructions"`
	CookingTime  int       `json:"cooking_time"`
	Difficulty   string    `json:"difficulty"`
	Category     string    `gorm:"index" json:"category"`
	ImageURL     string    `json:"image_url,omitempty"`

	Profile *Profile `gorm:"foreignKey:UserID"`
	Timestamp
}

func (r *Recipe) BeforeCreate(*gorm.DB) error {
	ensureID(&r.ID)
	return nil
}
