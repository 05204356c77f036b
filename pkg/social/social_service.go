package social

import (
	"Recipe-Share-Backend/domain"
	"Recipe-Share-Backend/entities"
	"Recipe-Share-Backend/internal/database"
	"Recipe-Share-Backend/pkg/recipe"
	"context"
	"errors"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type (
	// SocialService never returns a Go error: every failure is logged and
	// folded into the returned Result.
	SocialService interface {
		ToggleLike(ctx context.Context, recipeID, userID string) domain.Result
		AddComment(ctx context.Context, recipeID, userID, content string) domain.Result
		UpdateComment(ctx context.Context, commentID, userID, content string) domain.Result
		DeleteComment(ctx context.Context, commentID, userID string) domain.Result
		GetRecipeWithSocial(ctx context.Context, recipeID, userID string) domain.RecipeWithSocialResult
	}

	socialService struct {
		socialRepository SocialRepository
		notifier         CommentNotifier
	}
)

// NewSocialService wires the service; notifier may be nil.
func NewSocialService(socialRepository SocialRepository, notifier CommentNotifier) SocialService {
	return &socialService{
		socialRepository: socialRepository,
		notifier:         notifier,
	}
}

func failed(action string, err error) domain.Result {
	log.Errorf("Error %s: %v", action, err)
	return domain.Failed(err)
}

func parseIDs(ids ...string) ([]uuid.UUID, error) {
	parsed := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		u, err := uuid.Parse(id)
		if err != nil {
			return nil, domain.ErrInvalidSocialIdentity
		}
		parsed = append(parsed, u)
	}
	return parsed, nil
}

func (s *socialService) ToggleLike(ctx context.Context, recipeID, userID string) domain.Result {
	ids, err := parseIDs(recipeID, userID)
	if err != nil {
		return failed("toggling like", err)
	}
	rid, uid := ids[0], ids[1]

	existing, err := s.socialRepository.FindLike(ctx, rid, uid)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return failed("toggling like", err)
	}

	if existing != nil {
		if err := s.socialRepository.DeleteLike(ctx, existing.ID); err != nil {
			return failed("toggling like", err)
		}
		return domain.Result{Success: true, Outcome: domain.OutcomeUnliked, Liked: false}
	}

	if err := s.socialRepository.InsertLike(ctx, &entities.Like{RecipeID: rid, UserID: uid}); err != nil {
		// A concurrent toggle inserted first; the pair is liked either way.
		if database.IsUniqueViolation(err) {
			log.Infof("like for recipe %s by %s already exists", rid, uid)
			return domain.Result{Success: true, Outcome: domain.OutcomeLiked, Liked: true}
		}
		return failed("toggling like", err)
	}
	return domain.Result{Success: true, Outcome: domain.OutcomeLiked, Liked: true}
}

func (s *socialService) AddComment(ctx context.Context, recipeID, userID, content string) domain.Result {
	ids, err := parseIDs(recipeID, userID)
	if err != nil {
		return failed("adding comment", err)
	}

	comment := &entities.Comment{
		RecipeID: ids[0],
		UserID:   ids[1],
		Content:  content,
	}
	if err := s.socialRepository.InsertComment(ctx, comment); err != nil {
		return failed("adding comment", err)
	}

	if s.notifier != nil {
		go s.notifier.NotifyComment(context.Background(), *comment)
	}
	return domain.Succeeded(domain.OutcomeApplied)
}

// authorizeComment loads the comment and checks authorship. A non-nil
// outcome means the caller must stop and report it.
func (s *socialService) authorizeComment(ctx context.Context, commentID, userID uuid.UUID) (*domain.Outcome, error) {
	comment, err := s.socialRepository.GetCommentByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			outcome := domain.OutcomeNotFound
			return &outcome, nil
		}
		return nil, err
	}
	if comment.UserID != userID {
		outcome := domain.OutcomeForbidden
		return &outcome, nil
	}
	return nil, nil
}

func (s *socialService) UpdateComment(ctx context.Context, commentID, userID, content string) domain.Result {
	ids, err := parseIDs(commentID, userID)
	if err != nil {
		return failed("updating comment", err)
	}
	cid, uid := ids[0], ids[1]

	stop, err := s.authorizeComment(ctx, cid, uid)
	if err != nil {
		return failed("updating comment", err)
	}
	if stop != nil {
		return domain.Succeeded(*stop)
	}

	affected, err := s.socialRepository.UpdateComment(ctx, cid, uid, content)
	if err != nil {
		return failed("updating comment", err)
	}
	if affected == 0 {
		return domain.Succeeded(domain.OutcomeNoOp)
	}
	return domain.Succeeded(domain.OutcomeApplied)
}

func (s *socialService) DeleteComment(ctx context.Context, commentID, userID string) domain.Result {
	ids, err := parseIDs(commentID, userID)
	if err != nil {
		return failed("deleting comment", err)
	}
	cid, uid := ids[0], ids[1]

	stop, err := s.authorizeComment(ctx, cid, uid)
	if err != nil {
		return failed("deleting comment", err)
	}
	if stop != nil {
		return domain.Succeeded(*stop)
	}

	affected, err := s.socialRepository.DeleteComment(ctx, cid, uid)
	if err != nil {
		return failed("deleting comment", err)
	}
	if affected == 0 {
		return domain.Succeeded(domain.OutcomeNoOp)
	}
	return domain.Succeeded(domain.OutcomeApplied)
}

func (s *socialService) GetRecipeWithSocial(ctx context.Context, recipeID, userID string) domain.RecipeWithSocialResult {
	notFound := domain.RecipeWithSocialResult{Result: domain.Succeeded(domain.OutcomeNotFound)}

	rid, err := uuid.Parse(recipeID)
	if err != nil {
		return notFound
	}

	var uid uuid.UUID
	anonymous := userID == ""
	if !anonymous {
		if uid, err = uuid.Parse(userID); err != nil {
			return domain.RecipeWithSocialResult{Result: failed("fetching recipe with social data", domain.ErrInvalidSocialIdentity)}
		}
	}

	var (
		row      *RecipeSocialRow
		liked    bool
		comments []*entities.Comment
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r, err := s.socialRepository.GetRecipeSocial(gctx, rid)
		row = r
		return err
	})
	if !anonymous {
		g.Go(func() error {
			l, err := s.socialRepository.HasUserLiked(gctx, rid, uid)
			liked = l
			return err
		})
	}
	g.Go(func() error {
		c, err := s.socialRepository.GetComments(gctx, rid)
		comments = c
		return err
	})

	if err := g.Wait(); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound
		}
		return domain.RecipeWithSocialResult{Result: failed("fetching recipe with social data", err)}
	}

	view := &domain.RecipeWithSocial{
		Recipe:       recipe.ToDomain(row.Recipe, row.LikesCount, row.CommentsCount),
		UserHasLiked: liked,
		Comments:     make([]domain.CommentWithUser, 0, len(comments)),
	}
	for _, c := range comments {
		view.Comments = append(view.Comments, toCommentWithUser(c))
	}

	return domain.RecipeWithSocialResult{
		Result: domain.Succeeded(domain.OutcomeApplied),
		Recipe: view,
	}
}

func toCommentWithUser(c *entities.Comment) domain.CommentWithUser {
	author := domain.CommentAuthor{ID: c.UserID.String()}
	if c.Profile != nil {
		author.FullName = c.Profile.DisplayName()
		author.Username = c.Profile.Username
	}
	return domain.CommentWithUser{
		ID:        c.ID.String(),
		RecipeID:  c.RecipeID.String(),
		UserID:    c.UserID.String(),
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		User:      author,
	}
}
