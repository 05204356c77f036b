package commentpanel

import (
	"Recipe-Share-Backend/domain"
	"Recipe-Share-Backend/internal/notify"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type call struct {
	op, id, userID, content string
}

type fakeCommenter struct {
	calls  []call
	result domain.Result
}

func (f *fakeCommenter) AddComment(_ context.Context, recipeID, userID, content string) domain.Result {
	f.calls = append(f.calls, call{"add", recipeID, userID, content})
	return f.result
}

func (f *fakeCommenter) UpdateComment(_ context.Context, commentID, userID, content string) domain.Result {
	f.calls = append(f.calls, call{"update", commentID, userID, content})
	return f.result
}

func (f *fakeCommenter) DeleteComment(_ context.Context, commentID, userID string) domain.Result {
	f.calls = append(f.calls, call{"delete", commentID, userID, ""})
	return f.result
}

var seeded = []domain.CommentWithUser{
	{ID: "c2", RecipeID: "r1", UserID: "bob", Content: "nice"},
	{ID: "c1", RecipeID: "r1", UserID: "alice", Content: "first!"},
	{ID: "c0", RecipeID: "r1", UserID: "alice", Content: "older"},
}

func newPanel(userID string, result domain.Result) (*Panel, *fakeCommenter, *notify.Recorder, *int) {
	commenter := &fakeCommenter{result: result}
	rec := &notify.Recorder{}
	refreshes := new(int)
	p := New(commenter, rec, Options{RecipeID: "r1", UserID: userID, OnRefresh: func() { *refreshes++ }})
	p.SetComments(seeded)
	return p, commenter, rec, refreshes
}

func TestSubmitBlankIsIgnored(t *testing.T) {
	p, commenter, rec, refreshes := newPanel("alice", domain.Succeeded(domain.OutcomeApplied))

	p.SetInput("   \n\t")
	assert.False(t, p.Submit(context.Background()))
	assert.Empty(t, commenter.calls)
	assert.Equal(t, "   \n\t", p.Input())
	assert.Zero(t, *refreshes)
	assert.Empty(t, rec.All())
}

func TestSubmitSuccessRefreshesOnce(t *testing.T) {
	p, commenter, rec, refreshes := newPanel("alice", domain.Succeeded(domain.OutcomeApplied))

	p.SetInput("  so good  ")
	require.True(t, p.Submit(context.Background()))

	require.Len(t, commenter.calls, 1)
	assert.Equal(t, call{"add", "r1", "alice", "so good"}, commenter.calls[0])
	assert.Equal(t, "", p.Input())
	assert.Equal(t, 1, *refreshes)
	assert.Len(t, p.Comments(), len(seeded))
	assert.False(t, p.Submitting())

	last, ok := rec.Last()
	require.True(t, ok)
	assert.Equal(t, "Comment added", last.Title)
}

func TestSubmitFailureKeepsBuffer(t *testing.T) {
	p, _, rec, refreshes := newPanel("alice", domain.Failed(nil))

	p.SetInput("hello")
	require.True(t, p.Submit(context.Background()))
	assert.Equal(t, "hello", p.Input())
	assert.Zero(t, *refreshes)

	last, _ := rec.Last()
	assert.Equal(t, "Unknown error", last.Description)
	assert.Equal(t, notify.VariantDestructive, last.Variant)
}

func TestAnonymousCannotComment(t *testing.T) {
	p, commenter, _, _ := newPanel("", domain.Succeeded(domain.OutcomeApplied))

	assert.False(t, p.CanComment())
	p.SetInput("hi")
	assert.False(t, p.Submit(context.Background()))
	assert.False(t, p.BeginEdit("c1"))
	assert.False(t, p.Delete(context.Background(), "c1"))
	assert.Empty(t, commenter.calls)
}

func TestCanModify(t *testing.T) {
	p, _, _, _ := newPanel("alice", domain.Result{})
	assert.True(t, p.CanModify(seeded[1]))
	assert.False(t, p.CanModify(seeded[0]))
}

func TestSingleEditFocus(t *testing.T) {
	p, _, _, _ := newPanel("alice", domain.Succeeded(domain.OutcomeApplied))

	assert.False(t, p.BeginEdit("c2"))
	id, _ := p.Editing()
	assert.Empty(t, id)

	require.True(t, p.BeginEdit("c1"))
	p.SetEditBuffer("changed")
	require.True(t, p.BeginEdit("c0"))

	id, buf := p.Editing()
	assert.Equal(t, "c0", id)
	assert.Equal(t, "older", buf)

	p.CancelEdit()
	id, buf = p.Editing()
	assert.Empty(t, id)
	assert.Empty(t, buf)
}

func TestSaveEdit(t *testing.T) {
	p, commenter, rec, refreshes := newPanel("alice", domain.Succeeded(domain.OutcomeApplied))

	require.True(t, p.BeginEdit("c1"))
	p.SetEditBuffer("  ")
	assert.False(t, p.SaveEdit(context.Background()))
	assert.Empty(t, commenter.calls)

	p.SetEditBuffer(" edited ")
	require.True(t, p.SaveEdit(context.Background()))
	assert.Equal(t, call{"update", "c1", "alice", "edited"}, commenter.calls[0])
	assert.Equal(t, 1, *refreshes)

	id, _ := p.Editing()
	assert.Empty(t, id)
	last, _ := rec.Last()
	assert.Equal(t, "Comment updated", last.Title)
}

func TestSaveEditFailureStaysInEditMode(t *testing.T) {
	p, _, rec, refreshes := newPanel("alice", domain.Result{Error: "timeout"})

	require.True(t, p.BeginEdit("c1"))
	p.SetEditBuffer("edited")
	require.True(t, p.SaveEdit(context.Background()))

	id, buf := p.Editing()
	assert.Equal(t, "c1", id)
	assert.Equal(t, "edited", buf)
	assert.Zero(t, *refreshes)
	last, _ := rec.Last()
	assert.Equal(t, "timeout", last.Description)
}

func TestSaveEditForbiddenOutcome(t *testing.T) {
	p, _, rec, refreshes := newPanel("alice", domain.Succeeded(domain.OutcomeForbidden))

	require.True(t, p.BeginEdit("c1"))
	require.True(t, p.SaveEdit(context.Background()))
	assert.Equal(t, 1, *refreshes)

	last, _ := rec.Last()
	assert.Equal(t, domain.ErrCommentNotOwned.Error(), last.Description)
}

func TestDelete(t *testing.T) {
	p, commenter, rec, refreshes := newPanel("alice", domain.Succeeded(domain.OutcomeApplied))

	assert.False(t, p.Delete(context.Background(), "c2"))
	assert.False(t, p.Delete(context.Background(), "missing"))
	assert.Empty(t, commenter.calls)

	require.True(t, p.BeginEdit("c1"))
	require.True(t, p.Delete(context.Background(), "c1"))
	assert.Equal(t, call{"delete", "c1", "alice", ""}, commenter.calls[0])
	assert.Equal(t, 1, *refreshes)

	id, _ := p.Editing()
	assert.Empty(t, id)
	last, _ := rec.Last()
	assert.Equal(t, "Comment deleted", last.Title)
}

func TestDeleteFailure(t *testing.T) {
	p, _, rec, refreshes := newPanel("alice", domain.Result{})

	require.True(t, p.Delete(context.Background(), "c0"))
	assert.Zero(t, *refreshes)
	last, _ := rec.Last()
	assert.Equal(t, fallbackDeleteError, last.Description)
}

func TestSetCommentsDropsStaleEditFocus(t *testing.T) {
	p, _, _, _ := newPanel("alice", domain.Result{})

	require.True(t, p.BeginEdit("c0"))
	p.SetComments(seeded[:2])
	id, _ := p.Editing()
	assert.Empty(t, id)
}

func TestClosedPanelDropsResponses(t *testing.T) {
	p, _, rec, refreshes := newPanel("alice", domain.Succeeded(domain.OutcomeApplied))
	p.Close()

	p.SetInput("late")
	assert.False(t, p.Submit(context.Background()))
	assert.Zero(t, *refreshes)
	assert.Empty(t, rec.All())
}

type closingCommenter struct {
	fakeCommenter
	panel *Panel
}

func (c *closingCommenter) AddComment(ctx context.Context, recipeID, userID, content string) domain.Result {
	c.panel.Close()
	return c.fakeCommenter.AddComment(ctx, recipeID, userID, content)
}

func TestLateResponseAfterClose(t *testing.T) {
	commenter := &closingCommenter{fakeCommenter: fakeCommenter{result: domain.Succeeded(domain.OutcomeApplied)}}
	rec := &notify.Recorder{}
	refreshes := 0
	p := New(commenter, rec, Options{RecipeID: "r1", UserID: "alice", OnRefresh: func() { refreshes++ }})
	commenter.panel = p

	p.SetInput("bye")
	require.True(t, p.Submit(context.Background()))
	assert.Len(t, commenter.calls, 1)
	assert.Zero(t, refreshes)
	assert.Empty(t, rec.All())
	assert.Equal(t, "bye", p.Input())
}
