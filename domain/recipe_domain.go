package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessGetRecipes      = "success get recipes"
	MessageSuccessGetRecipeDetail = "success get recipe detail"
	MessageSuccessCreateRecipe    = "recipe created successfully"
	MessageSuccessUpdateRecipe    = "recipe updated successfully"
	MessageSuccessDeleteRecipe    = "recipe deleted successfully"
	MessageSuccessUploadImage     = "recipe image uploaded successfully"

	MessageFailedGetRecipes      = "failed to get recipes"
	MessageFailedGetRecipeDetail = "failed to get recipe detail"
	MessageFailedCreateRecipe    = "failed to create recipe"
	MessageFailedUpdateRecipe    = "failed to update recipe"
	MessageFailedDeleteRecipe    = "failed to delete recipe"
	MessageFailedUploadImage     = "failed to upload recipe image"

	ErrRecipeNotFound           = errors.New("recipe not found")
	ErrUnauthorizedRecipeAccess = errors.New("unauthorized access to recipe")
	ErrStorageUnavailable       = errors.New("image storage is not configured")
)

type (
	RecipeRequest struct {
		Title        string   `json:"title" validate:"required,notblank,max=200"`
		Ingredients  []string `json:"ingredients" validate:"required,min=1,dive,notblank"`
		Instructions []string `json:"instructions" validate:"required,min=1,dive,notblank"`
		CookingTime  int      `json:"cooking_time" validate:"gte=0,lte=10080"`
		Difficulty   string   `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
		Category     string   `json:"category" validate:"omitempty,max=64"`
	}

	RecipeFeedRequest struct {
		Query    string
		Category string
		Page     int
		Limit    int
	}

	Recipe struct {
		ID            string    `json:"id"`
		UserID        string    `json:"user_id"`
		AuthorName    string    `json:"author_name"`
		Title         string    `json:"title"`
		Ingredients   []string  `json:"ingredients"`
		Instructions  []string  `json:"instructions"`
		CookingTime   int       `json:"cooking_time"`
		Difficulty    string    `json:"difficulty"`
		Category      string    `json:"category"`
		ImageURL      string    `json:"image_url,omitempty"`
		LikesCount    int64     `json:"likes_count"`
		CommentsCount int64     `json:"comments_count"`
		CreatedAt     time.Time `json:"created_at"`
		UpdatedAt     time.Time `json:"updated_at"`
	}

	RecipeFeedResponse struct {
		Recipes    []Recipe           `json:"recipes"`
		Pagination PaginationResponse `json:"pagination"`
	}
)
