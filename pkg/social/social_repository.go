package social

import (
	"Recipe-Share-Backend/entities"
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	SocialRepository interface {
		// Likes
		FindLike(ctx context.Context, recipeID, userID uuid.UUID) (*entities.Like, error)
		InsertLike(ctx context.Context, like *entities.Like) error
		DeleteLike(ctx context.Context, likeID uuid.UUID) error
		HasUserLiked(ctx context.Context, recipeID, userID uuid.UUID) (bool, error)

		// Comments
		InsertComment(ctx context.Context, comment *entities.Comment) error
		GetCommentByID(ctx context.Context, commentID uuid.UUID) (*entities.Comment, error)
		UpdateComment(ctx context.Context, commentID, userID uuid.UUID, content string) (int64, error)
		DeleteComment(ctx context.Context, commentID, userID uuid.UUID) (int64, error)
		GetComments(ctx context.Context, recipeID uuid.UUID) ([]*entities.Comment, error)

		// Aggregates
		GetRecipeSocial(ctx context.Context, recipeID uuid.UUID) (*RecipeSocialRow, error)
		GetCommentNotice(ctx context.Context, comment *entities.Comment) (*CommentNotice, error)
	}

	// RecipeSocialRow is a recipe with its like and comment counts taken at read time.
	RecipeSocialRow struct {
		Recipe        *entities.Recipe
		LikesCount    int64
		CommentsCount int64
	}

	CommentNotice struct {
		OwnerID       uuid.UUID
		OwnerEmail    string
		RecipeTitle   string
		CommenterName string
	}

	socialRepository struct {
		db *gorm.DB
	}
)

func NewSocialRepository(db *gorm.DB) SocialRepository {
	return &socialRepository{db: db}
}

func (r *socialRepository) FindLike(ctx context.Context, recipeID, userID uuid.UUID) (*entities.Like, error) {
	var like entities.Like
	if err := r.db.WithContext(ctx).
		Select("id").
		Where("recipe_id = ? AND user_id = ?", recipeID, userID).
		First(&like).Error; err != nil {
		return nil, err
	}
	return &like, nil
}

func (r *socialRepository) InsertLike(ctx context.Context, like *entities.Like) error {
	return r.db.WithContext(ctx).Create(like).Error
}

func (r *socialRepository) DeleteLike(ctx context.Context, likeID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", likeID).Delete(&entities.Like{}).Error
}

func (r *socialRepository) HasUserLiked(ctx context.Context, recipeID, userID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Like{}).
		Where("recipe_id = ? AND user_id = ?", recipeID, userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *socialRepository) InsertComment(ctx context.Context, comment *entities.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *socialRepository) GetCommentByID(ctx context.Context, commentID uuid.UUID) (*entities.Comment, error) {
	var comment entities.Comment
	if err := r.db.WithContext(ctx).Where("id = ?", commentID).First(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// UpdateComment only touches the row when the caller is its author; the
// affected row count tells the caller whether anything matched.
func (r *socialRepository) UpdateComment(ctx context.Context, commentID, userID uuid.UUID, content string) (int64, error) {
	q := r.db.WithContext(ctx).
		Model(&entities.Comment{}).
		Where("id = ? AND user_id = ?", commentID, userID).
		Updates(map[string]any{
			"content":    content,
			"updated_at": time.Now(),
		})
	return q.RowsAffected, q.Error
}

func (r *socialRepository) DeleteComment(ctx context.Context, commentID, userID uuid.UUID) (int64, error) {
	q := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", commentID, userID).
		Delete(&entities.Comment{})
	return q.RowsAffected, q.Error
}

func (r *socialRepository) GetComments(ctx context.Context, recipeID uuid.UUID) ([]*entities.Comment, error) {
	var comments []*entities.Comment
	if err := r.db.WithContext(ctx).
		Preload("Profile").
		Where("recipe_id = ?", recipeID).
		Order("created_at desc").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *socialRepository) GetRecipeSocial(ctx context.Context, recipeID uuid.UUID) (*RecipeSocialRow, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).
		Preload("Profile").
		Where("id = ?", recipeID).
		First(&recipe).Error; err != nil {
		return nil, err
	}

	row := &RecipeSocialRow{Recipe: &recipe}
	if err := r.db.WithContext(ctx).
		Model(&entities.Like{}).
		Where("recipe_id = ?", recipeID).
		Count(&row.LikesCount).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).
		Model(&entities.Comment{}).
		Where("recipe_id = ?", recipeID).
		Count(&row.CommentsCount).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *socialRepository) GetCommentNotice(ctx context.Context, comment *entities.Comment) (*CommentNotice, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).Where("id = ?", comment.RecipeID).First(&recipe).Error; err != nil {
		return nil, err
	}

	var owner entities.User
	if err := r.db.WithContext(ctx).Where("id = ?", recipe.UserID).First(&owner).Error; err != nil {
		return nil, err
	}

	var commenter entities.Profile
	if err := r.db.WithContext(ctx).Where("id = ?", comment.UserID).First(&commenter).Error; err != nil {
		return nil, err
	}

	return &CommentNotice{
		OwnerID:       owner.ID,
		OwnerEmail:    owner.Email,
		RecipeTitle:   recipe.Title,
		CommenterName: commenter.DisplayName(),
	}, nil
}
