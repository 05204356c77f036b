package recipe

import (
	"Recipe-Share-Backend/entities"
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	RecipeRepository interface {
		CreateRecipe(ctx context.Context, recipe *entities.Recipe) error
		GetRecipeByID(ctx context.Context, id uuid.UUID) (*entities.Recipe, error)
		UpdateRecipe(ctx context.Context, recipe *entities.Recipe) error
		UpdateImageURL(ctx context.Context, id uuid.UUID, imageURL string) error
		DeleteRecipe(ctx context.Context, id uuid.UUID) error
		GetRecipes(ctx context.Context, query, category string, page, limit int) ([]*entities.Recipe, int64, error)
		CountLikes(ctx context.Context, recipeIDs []uuid.UUID) (map[uuid.UUID]int64, error)
		CountComments(ctx context.Context, recipeIDs []uuid.UUID) (map[uuid.UUID]int64, error)
	}

	recipeRepository struct {
		db *gorm.DB
	}
)

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) CreateRecipe(ctx context.Context, recipe *entities.Recipe) error {
	return r.db.WithContext(ctx).Create(recipe).Error
}

func (r *recipeRepository) GetRecipeByID(ctx context.Context, id uuid.UUID) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).Preload("Profile").Where("id = ?", id).First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) UpdateRecipe(ctx context.Context, recipe *entities.Recipe) error {
	return r.db.WithContext(ctx).
		Model(recipe).
		Select("title", "ingredients", "instructions", "cooking_time", "difficulty", "category", "updated_at").
		Updates(recipe).Error
}

func (r *recipeRepository) UpdateImageURL(ctx context.Context, id uuid.UUID, imageURL string) error {
	return r.db.WithContext(ctx).
		Model(&entities.Recipe{}).
		Where("id = ?", id).
		Update("image_url", imageURL).Error
}

// DeleteRecipe removes the recipe together with its likes and comments.
func (r *recipeRepository) DeleteRecipe(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&entities.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&entities.Comment{}).Error; err != nil {
			return err
		}
		q := tx.Where("id = ?", id).Delete(&entities.Recipe{})
		if q.Error != nil {
			return q.Error
		}
		if q.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *recipeRepository) GetRecipes(ctx context.Context, query, category string, page, limit int) ([]*entities.Recipe, int64, error) {
	var recipes []*entities.Recipe
	var count int64
	offset := (page - 1) * limit

	filtered := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&entities.Recipe{})
		if s := strings.TrimSpace(query); s != "" {
			q = q.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(s)+"%")
		}
		if category != "" {
			q = q.Where("category = ?", category)
		}
		return q
	}

	if err := filtered().Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := filtered().
		Preload("Profile").
		Offset(offset).
		Limit(limit).
		Order("created_at desc").
		Find(&recipes).Error; err != nil {
		return nil, 0, err
	}

	return recipes, count, nil
}

type recipeCount struct {
	RecipeID uuid.UUID
	Total    int64
}

func (r *recipeRepository) countBy(ctx context.Context, model any, recipeIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64, len(recipeIDs))
	if len(recipeIDs) == 0 {
		return counts, nil
	}

	var rows []recipeCount
	if err := r.db.WithContext(ctx).
		Model(model).
		Select("recipe_id, COUNT(*) AS total").
		Where("recipe_id IN ?", recipeIDs).
		Group("recipe_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.RecipeID] = row.Total
	}
	return counts, nil
}

func (r *recipeRepository) CountLikes(ctx context.Context, recipeIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	return r.countBy(ctx, &entities.Like{}, recipeIDs)
}

func (r *recipeRepository) CountComments(ctx context.Context, recipeIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	return r.countBy(ctx, &entities.Comment{}, recipeIDs)
}
