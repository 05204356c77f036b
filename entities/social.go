package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Like is unique per (recipe, user); the index is what keeps a racing
// double toggle from producing two rows.
type Like struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	RecipeID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_likes_recipe_user" json:"recipe_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_likes_recipe_user" json:"user_id"`
	CreatedAt time.Time `gorm:"type:timestamp" json:"created_at"`

	Recipe  *Recipe  `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	Profile *Profile `gorm:"foreignKey:UserID"`
}

func (l *Like) BeforeCreate(*gorm.DB) error {
	ensureID(&l.ID)
	return nil
}

type Comment struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	RecipeID uuid.UUID `gorm:"type:uuid;not null;index" json:"recipe_id"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Content  string    `gorm:"type:text;not null" json:"content"`

	Recipe  *Recipe  `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	Profile *Profile `gorm:"foreignKey:UserID"`
	Timestamp
}

func (c *Comment) BeforeCreate(*gorm.DB) error {
	ensureID(&c.ID)
	return nil
}
