package recipe

import (
	"Recipe-Share-Backend/domain"
	"Recipe-Share-Backend/entities"
)

// ToDomain maps a stored recipe plus its read-time counts to the API shape.
func ToDomain(r *entities.Recipe, likesCount, commentsCount int64) domain.Recipe {
	ingredients := r.Ingredients
	if ingredients == nil {
		ingredients = []string{}
	}
	instructions := r.Instructions
	if instructions == nil {
		instructions = []string{}
	}

	return domain.Recipe{
		ID:            r.ID.String(),
		UserID:        r.UserID.String(),
		AuthorName:    r.Profile.DisplayName(),
		Title:         r.Title,
		Ingredients:   ingredients,
		Instructions:  instructions,
		CookingTime:   r.CookingTime,
		Difficulty:    r.Difficulty,
		Category:      r.Category,
		ImageURL:      r.ImageURL,
		LikesCount:    likesCount,
		CommentsCount: commentsCount,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}
