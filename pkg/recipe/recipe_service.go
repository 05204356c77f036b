package recipe

import (
	"Recipe-Share-Backend/domain"
	"Recipe-Share-Backend/entities"
	"Recipe-Share-Backend/internal/utils/storage"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	defaultFeedLimit = 20
	maxFeedLimit     = 100
)

type (
	RecipeService interface {
		CreateRecipe(ctx context.Context, req domain.RecipeRequest, userID string) (domain.Recipe, error)
		UpdateRecipe(ctx context.Context, recipeID string, req domain.RecipeRequest, userID string) (domain.Recipe, error)
		DeleteRecipe(ctx context.Context, recipeID string, userID string) error
		GetRecipes(ctx context.Context, req domain.RecipeFeedRequest) (domain.RecipeFeedResponse, error)
		UploadRecipeImage(ctx context.Context, recipeID string, userID string, image *multipart.FileHeader) (domain.Recipe, error)
	}

	recipeService struct {
		recipeRepository RecipeRepository
		s3               storage.AwsS3
	}
)

// NewRecipeService wires the service; s3 may be nil when uploads are disabled.
func NewRecipeService(recipeRepository RecipeRepository, s3 storage.AwsS3) RecipeService {
	return &recipeService{
		recipeRepository: recipeRepository,
		s3:               s3,
	}
}

func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := strings.TrimSpace(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func (s *recipeService) CreateRecipe(ctx context.Context, req domain.RecipeRequest, userID string) (domain.Recipe, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.Recipe{}, domain.ErrParseUUID
	}

	recipe := &entities.Recipe{
		UserID:       userUUID,
		Title:        strings.TrimSpace(req.Title),
		Ingredients:  cleanList(req.Ingredients),
		Instructions: cleanList(req.Instructions),
		CookingTime:  req.CookingTime,
		Difficulty:   req.Difficulty,
		Category:     strings.TrimSpace(req.Category),
	}
	if err := s.recipeRepository.CreateRecipe(ctx, recipe); err != nil {
		return domain.Recipe{}, err
	}

	created, err := s.recipeRepository.GetRecipeByID(ctx, recipe.ID)
	if err != nil {
		return domain.Recipe{}, err
	}
	return ToDomain(created, 0, 0), nil
}

// ownedRecipe loads a recipe and checks that userID owns it.
func (s *recipeService) ownedRecipe(ctx context.Context, recipeID, userID string) (*entities.Recipe, error) {
	recipeUUID, err := uuid.Parse(recipeID)
	if err != nil {
		return nil, domain.ErrRecipeNotFound
	}
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, err
	}
	if recipe.UserID != userUUID {
		return nil, domain.ErrUnauthorizedRecipeAccess
	}
	return recipe, nil
}

func (s *recipeService) counts(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]int64, map[uuid.UUID]int64, error) {
	likes, err := s.recipeRepository.CountLikes(ctx, ids)
	if err != nil {
		return nil, nil, err
	}
	comments, err := s.recipeRepository.CountComments(ctx, ids)
	if err != nil {
		return nil, nil, err
	}
	return likes, comments, nil
}

func (s *recipeService) withCounts(ctx context.Context, recipe *entities.Recipe) (domain.Recipe, error) {
	likes, comments, err := s.counts(ctx, []uuid.UUID{recipe.ID})
	if err != nil {
		return domain.Recipe{}, err
	}
	return ToDomain(recipe, likes[recipe.ID], comments[recipe.ID]), nil
}

func (s *recipeService) UpdateRecipe(ctx context.Context, recipeID string, req domain.RecipeRequest, userID string) (domain.Recipe, error) {
	recipe, err := s.ownedRecipe(ctx, recipeID, userID)
	if err != nil {
		return domain.Recipe{}, err
	}

	recipe.Title = strings.TrimSpace(req.Title)
	recipe.Ingredients = cleanList(req.Ingredients)
	recipe.Instructions = cleanList(req.Instructions)
	recipe.CookingTime = req.CookingTime
	recipe.Difficulty = req.Difficulty
	recipe.Category = strings.TrimSpace(req.Category)
	recipe.UpdatedAt = time.Now()

	if err := s.recipeRepository.UpdateRecipe(ctx, recipe); err != nil {
		return domain.Recipe{}, err
	}
	return s.withCounts(ctx, recipe)
}

func (s *recipeService) DeleteRecipe(ctx context.Context, recipeID string, userID string) error {
	recipe, err := s.ownedRecipe(ctx, recipeID, userID)
	if err != nil {
		return err
	}

	if err := s.recipeRepository.DeleteRecipe(ctx, recipe.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotFound
		}
		return err
	}
	return nil
}

func (s *recipeService) GetRecipes(ctx context.Context, req domain.RecipeFeedRequest) (domain.RecipeFeedResponse, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 {
		req.Limit = defaultFeedLimit
	}
	if req.Limit > maxFeedLimit {
		req.Limit = maxFeedLimit
	}

	recipes, total, err := s.recipeRepository.GetRecipes(ctx, req.Query, req.Category, req.Page, req.Limit)
	if err != nil {
		return domain.RecipeFeedResponse{}, err
	}

	ids := make([]uuid.UUID, 0, len(recipes))
	for _, r := range recipes {
		ids = append(ids, r.ID)
	}
	likes, comments, err := s.counts(ctx, ids)
	if err != nil {
		return domain.RecipeFeedResponse{}, err
	}

	result := make([]domain.Recipe, 0, len(recipes))
	for _, r := range recipes {
		result = append(result, ToDomain(r, likes[r.ID], comments[r.ID]))
	}

	return domain.RecipeFeedResponse{
		Recipes:    result,
		Pagination: domain.NewPaginationResponse(req.Page, req.Limit, total),
	}, nil
}

func (s *recipeService) UploadRecipeImage(ctx context.Context, recipeID string, userID string, image *multipart.FileHeader) (domain.Recipe, error) {
	if s.s3 == nil {
		return domain.Recipe{}, domain.ErrStorageUnavailable
	}

	recipe, err := s.ownedRecipe(ctx, recipeID, userID)
	if err != nil {
		return domain.Recipe{}, err
	}

	objectKey, err := s.s3.UploadFile(
		ctx,
		fmt.Sprintf("recipe-%s-%d", recipe.ID.String(), time.Now().Unix()),
		image,
		"recipes",
		storage.AllowImage...,
	)
	if err != nil {
		return domain.Recipe{}, err
	}

	recipe.ImageURL = s.s3.ObjectURL(objectKey)
	if err := s.recipeRepository.UpdateImageURL(ctx, recipe.ID, recipe.ImageURL); err != nil {
		return domain.Recipe{}, err
	}
	return s.withCounts(ctx, recipe)
}
