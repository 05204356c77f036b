// Package commentpanel holds the comment list, composer and inline editor
// shown under a recipe.
package commentpanel

import (
	"Recipe-Share-Backend/domain"
	"Recipe-Share-Backend/internal/notify"
	"context"
	"strings"
	"sync"
)

const (
	fallbackAddError    = "Failed to add comment"
	fallbackUpdateError = "Failed to update comment"
	fallbackDeleteError = "Failed to delete comment"
)

// Commenter is the slice of the social service the panel needs.
type Commenter interface {
	AddComment(ctx context.Context, recipeID, userID, content string) domain.Result
	UpdateComment(ctx context.Context, commentID, userID, content string) domain.Result
	DeleteComment(ctx context.Context, commentID, userID string) domain.Result
}

type Options struct {
	RecipeID string
	// UserID is empty for anonymous viewers.
	UserID string
	// OnRefresh asks the owner of the panel to reload the comment list.
	OnRefresh func()
}

type Panel struct {
	mu         sync.Mutex
	commenter  Commenter
	notifier   notify.Notifier
	opts       Options
	comments   []domain.CommentWithUser
	input      string
	submitting bool
	editingID  string
	editBuffer string
	closed     bool
}

func New(commenter Commenter, notifier notify.Notifier, opts Options) *Panel {
	return &Panel{
		commenter: commenter,
		notifier:  notifier,
		opts:      opts,
	}
}

// SetComments replaces the displayed list. The panel never edits it locally.
func (p *Panel) SetComments(comments []domain.CommentWithUser) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.comments = append([]domain.CommentWithUser(nil), comments...)
	if p.editingID != "" && p.find(p.editingID) == nil {
		p.editingID, p.editBuffer = "", ""
	}
}

func (p *Panel) Comments() []domain.CommentWithUser {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]domain.CommentWithUser(nil), p.comments...)
}

func (p *Panel) SetInput(s string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.input = s
}

func (p *Panel) Input() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.input
}

func (p *Panel) Submitting() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.submitting
}

// Editing returns the focused comment id and its buffer; id is empty when
// no comment is being edited.
func (p *Panel) Editing() (string, string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.editingID, p.editBuffer
}

func (p *Panel) CanComment() bool {
	return p.opts.UserID != ""
}

func (p *Panel) CanModify(c domain.CommentWithUser) bool {
	return p.opts.UserID != "" && c.UserID == p.opts.UserID
}

func (p *Panel) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
}

func (p *Panel) find(id string) *domain.CommentWithUser {
	for i := range p.comments {
		if p.comments[i].ID == id {
			return &p.comments[i]
		}
	}
	return nil
}

// Submit posts the composer content. It reports whether a request was issued.
func (p *Panel) Submit(ctx context.Context) bool {
	p.mu.Lock()
	content := strings.TrimSpace(p.input)
	if p.closed || !p.CanComment() || p.submitting || content == "" {
		p.mu.Unlock()
		return false
	}
	p.submitting = true
	p.mu.Unlock()

	result := p.commenter.AddComment(ctx, p.opts.RecipeID, p.opts.UserID, content)

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return true
	}
	p.submitting = false
	if !result.Success {
		p.mu.Unlock()
		p.notify(notify.Error(result.Error, fallbackAddError))
		return true
	}
	p.input = ""
	p.mu.Unlock()

	p.refresh()
	p.notify(notify.Info("Comment added", "Your comment has been posted successfully."))
	return true
}

// BeginEdit focuses the editor on one of the actor's comments, replacing any
// previous focus.
func (p *Panel) BeginEdit(commentID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	c := p.find(commentID)
	if p.closed || c == nil || !p.CanModify(*c) {
		return false
	}
	p.editingID = c.ID
	p.editBuffer = c.Content
	return true
}

func (p *Panel) SetEditBuffer(s string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.editingID != "" {
		p.editBuffer = s
	}
}

func (p *Panel) CancelEdit() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.editingID, p.editBuffer = "", ""
}

// SaveEdit sends the edit buffer for the focused comment.
func (p *Panel) SaveEdit(ctx context.Context) bool {
	p.mu.Lock()
	id := p.editingID
	content := strings.TrimSpace(p.editBuffer)
	if p.closed || id == "" || content == "" {
		p.mu.Unlock()
		return false
	}
	p.mu.Unlock()

	result := p.commenter.UpdateComment(ctx, id, p.opts.UserID, content)

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return true
	}
	if !result.Success {
		p.mu.Unlock()
		p.notify(notify.Error(result.Error, fallbackUpdateError))
		return true
	}
	if p.editingID == id {
		p.editingID, p.editBuffer = "", ""
	}
	p.mu.Unlock()

	p.refresh()
	if n, ok := notApplied(result); ok {
		p.notify(n)
		return true
	}
	p.notify(notify.Info("Comment updated", "Your comment has been updated successfully."))
	return true
}

// Delete removes one of the actor's comments.
func (p *Panel) Delete(ctx context.Context, commentID string) bool {
	p.mu.Lock()
	c := p.find(commentID)
	if p.closed || c == nil || !p.CanModify(*c) {
		p.mu.Unlock()
		return false
	}
	p.mu.Unlock()

	result := p.commenter.DeleteComment(ctx, commentID, p.opts.UserID)

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return true
	}
	if p.editingID == commentID && result.Success {
		p.editingID, p.editBuffer = "", ""
	}
	p.mu.Unlock()

	if !result.Success {
		p.notify(notify.Error(result.Error, fallbackDeleteError))
		return true
	}

	p.refresh()
	if n, ok := notApplied(result); ok {
		p.notify(n)
		return true
	}
	p.notify(notify.Info("Comment deleted", "Your comment has been removed."))
	return true
}

// notApplied explains a successful call that changed nothing.
func notApplied(result domain.Result) (notify.Notification, bool) {
	switch result.Outcome {
	case domain.OutcomeForbidden:
		return notify.Error(domain.ErrCommentNotOwned.Error(), ""), true
	case domain.OutcomeNotFound, domain.OutcomeNoOp:
		return notify.Error(domain.ErrCommentNotFound.Error(), ""), true
	}
	return notify.Notification{}, false
}

func (p *Panel) refresh() {
	if p.opts.OnRefresh != nil {
		p.opts.OnRefresh()
	}
}

func (p *Panel) notify(n notify.Notification) {
	if p.notifier != nil {
		p.notifier.Notify(n)
	}
}
