package social

import (
	"Recipe-Share-Backend/domain"
	"Recipe-Share-Backend/entities"
	"Recipe-Share-Backend/internal/testutil"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db      *gorm.DB
	repo    SocialRepository
	service SocialService
	owner   entities.Profile
	alice   entities.Profile
	bob     entities.Profile
	recipe  entities.Recipe
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	db := testutil.NewDB(t)
	owner := testutil.CreateProfile(t, db, "chef", "Chef Owner")
	alice := testutil.CreateProfile(t, db, "alice", "Alice A")
	bob := testutil.CreateProfile(t, db, "bob", "")
	recipe := testutil.CreateRecipe(t, db, owner.ID, "Sourdough")
	repo := NewSocialRepository(db)
	return fixture{
		db:      db,
		repo:    repo,
		service: NewSocialService(repo, nil),
		owner:   owner,
		alice:   alice,
		bob:     bob,
		recipe:  recipe,
	}
}

func (f fixture) likeRows(t *testing.T, userID uuid.UUID) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(&entities.Like{}).Where("recipe_id = ? AND user_id = ?", f.recipe.ID, userID).Count(&n).Error)
	return n
}

func TestToggleLikeParity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		res := f.service.ToggleLike(ctx, f.recipe.ID.String(), f.alice.ID.String())
		require.True(t, res.Success, res.Error)

		if i%2 == 1 {
			assert.Equal(t, domain.OutcomeLiked, res.Outcome)
			assert.True(t, res.Liked)
			assert.EqualValues(t, 1, f.likeRows(t, f.alice.ID), "after %d toggles", i)
		} else {
			assert.Equal(t, domain.OutcomeUnliked, res.Outcome)
			assert.False(t, res.Liked)
			assert.EqualValues(t, 0, f.likeRows(t, f.alice.ID), "after %d toggles", i)
		}
	}
}

func TestToggleLikeIsPerUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.True(t, f.service.ToggleLike(ctx, f.recipe.ID.String(), f.alice.ID.String()).Success)
	require.True(t, f.service.ToggleLike(ctx, f.recipe.ID.String(), f.bob.ID.String()).Success)

	assert.EqualValues(t, 1, f.likeRows(t, f.alice.ID))
	assert.EqualValues(t, 1, f.likeRows(t, f.bob.ID))
}

// staleRepo always misses on the existence check, reproducing the window
// where two toggles both observe "not liked".
type staleRepo struct {
	SocialRepository
}

func (staleRepo) FindLike(context.Context, uuid.UUID, uuid.UUID) (*entities.Like, error) {
	return nil, gorm.ErrRecordNotFound
}

func TestToggleLikeDuplicateInsertIsAlreadyLiked(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewSocialService(staleRepo{f.repo}, nil)

	first := svc.ToggleLike(ctx, f.recipe.ID.String(), f.alice.ID.String())
	second := svc.ToggleLike(ctx, f.recipe.ID.String(), f.alice.ID.String())

	require.True(t, first.Success, first.Error)
	require.True(t, second.Success, second.Error)
	assert.Equal(t, domain.OutcomeLiked, second.Outcome)
	assert.True(t, second.Liked)
	assert.EqualValues(t, 1, f.likeRows(t, f.alice.ID))
}

func TestToggleLikeConcurrentDoubleClickKeepsOneRow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewSocialService(staleRepo{f.repo}, nil)

	var wg sync.WaitGroup
	results := make([]domain.Result, 4)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = svc.ToggleLike(ctx, f.recipe.ID.String(), f.alice.ID.String())
		}(i)
	}
	wg.Wait()

	for _, res := range results {
		assert.True(t, res.Success, res.Error)
	}
	assert.EqualValues(t, 1, f.likeRows(t, f.alice.ID))
}

func TestToggleLikeUnknownRecipeFails(t *testing.T) {
	f := newFixture(t)

	res := f.service.ToggleLike(context.Background(), uuid.NewString(), f.alice.ID.String())
	assert.False(t, res.Success)
	assert.NotEmpty(t, res.Error)
	assert.Equal(t, domain.OutcomeFailed, res.Outcome)
}

func TestToggleLikeRejectsMalformedIDs(t *testing.T) {
	f := newFixture(t)

	res := f.service.ToggleLike(context.Background(), "not-a-uuid", f.alice.ID.String())
	assert.False(t, res.Success)
	assert.Equal(t, domain.ErrInvalidSocialIdentity.Error(), res.Error)
}

func TestAddComment(t *testing.T) {
	f := newFixture(t)

	res := f.service.AddComment(context.Background(), f.recipe.ID.String(), f.alice.ID.String(), "Lovely crumb")
	require.True(t, res.Success, res.Error)

	var comments []entities.Comment
	require.NoError(t, f.db.Where("recipe_id = ?", f.recipe.ID).Find(&comments).Error)
	require.Len(t, comments, 1)
	assert.Equal(t, "Lovely crumb", comments[0].Content)
	assert.Equal(t, f.alice.ID, comments[0].UserID)
}

func TestAddCommentUnknownRecipeFails(t *testing.T) {
	f := newFixture(t)

	res := f.service.AddComment(context.Background(), uuid.NewString(), f.alice.ID.String(), "hello")
	assert.False(t, res.Success)
	assert.NotEmpty(t, res.Error)
}

func (f fixture) seedComment(t *testing.T, author entities.Profile, content string, at time.Time) entities.Comment {
	t.Helper()
	c := entities.Comment{RecipeID: f.recipe.ID, UserID: author.ID, Content: content}
	c.CreatedAt = at
	c.UpdatedAt = at
	require.NoError(t, f.db.Create(&c).Error)
	return c
}

func (f fixture) reload(t *testing.T, id uuid.UUID) (entities.Comment, bool) {
	t.Helper()
	var c entities.Comment
	err := f.db.Where("id = ?", id).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c, false
	}
	require.NoError(t, err)
	return c, true
}

func TestUpdateCommentByAuthor(t *testing.T) {
	f := newFixture(t)
	c := f.seedComment(t, f.alice, "first", time.Now())

	res := f.service.UpdateComment(context.Background(), c.ID.String(), f.alice.ID.String(), "edited")
	require.True(t, res.Success, res.Error)
	assert.Equal(t, domain.OutcomeApplied, res.Outcome)

	got, ok := f.reload(t, c.ID)
	require.True(t, ok)
	assert.Equal(t, "edited", got.Content)
}

func TestUpdateCommentByNonAuthorLeavesContent(t *testing.T) {
	f := newFixture(t)
	c := f.seedComment(t, f.alice, "original", time.Now())

	res := f.service.UpdateComment(context.Background(), c.ID.String(), f.bob.ID.String(), "hijacked")
	assert.True(t, res.Success)
	assert.Equal(t, domain.OutcomeForbidden, res.Outcome)

	got, ok := f.reload(t, c.ID)
	require.True(t, ok)
	assert.Equal(t, "original", got.Content)
}

func TestUpdateCommentMissing(t *testing.T) {
	f := newFixture(t)

	res := f.service.UpdateComment(context.Background(), uuid.NewString(), f.bob.ID.String(), "x")
	assert.True(t, res.Success)
	assert.Equal(t, domain.OutcomeNotFound, res.Outcome)
}

func TestDeleteCommentByNonAuthorKeepsRow(t *testing.T) {
	f := newFixture(t)
	c := f.seedComment(t, f.alice, "stay", time.Now())

	res := f.service.DeleteComment(context.Background(), c.ID.String(), f.bob.ID.String())
	assert.True(t, res.Success)
	assert.Equal(t, domain.OutcomeForbidden, res.Outcome)

	_, ok := f.reload(t, c.ID)
	assert.True(t, ok)
}

func TestDeleteCommentByAuthor(t *testing.T) {
	f := newFixture(t)
	c := f.seedComment(t, f.alice, "bye", time.Now())

	res := f.service.DeleteComment(context.Background(), c.ID.String(), f.alice.ID.String())
	require.True(t, res.Success, res.Error)
	assert.Equal(t, domain.OutcomeApplied, res.Outcome)

	_, ok := f.reload(t, c.ID)
	assert.False(t, ok)
}

// vanishingRepo reports the comment as present but the guarded write
// matches nothing, as when the row is deleted between load and write.
type vanishingRepo struct {
	SocialRepository
}

func (vanishingRepo) DeleteComment(context.Context, uuid.UUID, uuid.UUID) (int64, error) {
	return 0, nil
}

func TestDeleteCommentZeroRowsIsNoOp(t *testing.T) {
	f := newFixture(t)
	c := f.seedComment(t, f.alice, "racy", time.Now())
	svc := NewSocialService(vanishingRepo{f.repo}, nil)

	res := svc.DeleteComment(context.Background(), c.ID.String(), f.alice.ID.String())
	assert.True(t, res.Success)
	assert.Equal(t, domain.OutcomeNoOp, res.Outcome)
}

func TestGetRecipeWithSocialNotFound(t *testing.T) {
	f := newFixture(t)

	for _, id := range []string{uuid.NewString(), "garbage"} {
		res := f.service.GetRecipeWithSocial(context.Background(), id, f.alice.ID.String())
		assert.True(t, res.Success, id)
		assert.Equal(t, domain.OutcomeNotFound, res.Outcome, id)
		assert.Nil(t, res.Recipe, id)
	}
}

func TestGetRecipeWithSocialAssemblesView(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	base := time.Now().Add(-time.Hour)

	f.seedComment(t, f.alice, "older", base)
	f.seedComment(t, f.bob, "newer", base.Add(time.Minute))
	require.True(t, f.service.ToggleLike(ctx, f.recipe.ID.String(), f.alice.ID.String()).Success)
	require.True(t, f.service.ToggleLike(ctx, f.recipe.ID.String(), f.owner.ID.String()).Success)

	res := f.service.GetRecipeWithSocial(ctx, f.recipe.ID.String(), f.alice.ID.String())
	require.True(t, res.Success, res.Error)
	require.NotNil(t, res.Recipe)

	view := res.Recipe
	assert.Equal(t, "Sourdough", view.Title)
	assert.Equal(t, "Chef Owner", view.AuthorName)
	assert.EqualValues(t, 2, view.LikesCount)
	assert.EqualValues(t, 2, view.CommentsCount)
	assert.True(t, view.UserHasLiked)
	require.Len(t, view.Comments, 2)
	assert.Equal(t, "newer", view.Comments[0].Content)
	assert.Equal(t, "bob", view.Comments[0].User.FullName, "falls back to username")
	assert.Equal(t, "Alice A", view.Comments[1].User.FullName)

	bobView := f.service.GetRecipeWithSocial(ctx, f.recipe.ID.String(), f.bob.ID.String())
	require.True(t, bobView.Success)
	assert.False(t, bobView.Recipe.UserHasLiked)
}

func TestGetRecipeWithSocialAnonymous(t *testing.T) {
	f := newFixture(t)
	require.True(t, f.service.ToggleLike(context.Background(), f.recipe.ID.String(), f.alice.ID.String()).Success)

	res := f.service.GetRecipeWithSocial(context.Background(), f.recipe.ID.String(), "")
	require.True(t, res.Success, res.Error)
	assert.False(t, res.Recipe.UserHasLiked)
	assert.EqualValues(t, 1, res.Recipe.LikesCount)
	assert.NotNil(t, res.Recipe.Comments)
}

type brokenRepo struct {
	SocialRepository
}

func (brokenRepo) GetComments(context.Context, uuid.UUID) ([]*entities.Comment, error) {
	return nil, errors.New("connection reset")
}

func (brokenRepo) FindLike(context.Context, uuid.UUID, uuid.UUID) (*entities.Like, error) {
	return nil, errors.New("connection reset")
}

func TestStoreFailuresBecomeResults(t *testing.T) {
	f := newFixture(t)
	svc := NewSocialService(brokenRepo{f.repo}, nil)

	fetch := svc.GetRecipeWithSocial(context.Background(), f.recipe.ID.String(), f.alice.ID.String())
	assert.False(t, fetch.Success)
	assert.Equal(t, "connection reset", fetch.Error)
	assert.Nil(t, fetch.Recipe)

	toggle := svc.ToggleLike(context.Background(), f.recipe.ID.String(), f.alice.ID.String())
	assert.False(t, toggle.Success)
	assert.Equal(t, "connection reset", toggle.Error)
}
