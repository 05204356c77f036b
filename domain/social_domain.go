package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessToggleLike    = "like updated"
	MessageSuccessAddComment    = "comment added"
	MessageSuccessUpdateComment = "comment updated"
	MessageSuccessDeleteComment = "comment deleted"

	MessageFailedToggleLike    = "failed to update like"
	MessageFailedAddComment    = "failed to add comment"
	MessageFailedUpdateComment = "failed to update comment"
	MessageFailedDeleteComment = "failed to delete comment"

	ErrCommentNotFound       = errors.New("comment not found")
	ErrCommentNotOwned       = errors.New("comment belongs to another user")
	ErrInvalidSocialIdentity = errors.New("recipe, comment and user ids must be valid UUIDs")
)

// Outcome tells a caller what a successful social call actually did.
type Outcome string

const (
	OutcomeApplied   Outcome = "applied"
	OutcomeLiked     Outcome = "liked"
	OutcomeUnliked   Outcome = "unliked"
	OutcomeNoOp      Outcome = "noop"
	OutcomeForbidden Outcome = "forbidden"
	OutcomeNotFound  Outcome = "not_found"
	OutcomeFailed    Outcome = "failed"
)

// Result is returned by every social mutation. Success is false only when
// the store call itself failed; ownership and existence are reported
// through Outcome.
type Result struct {
	Success bool    `json:"success"`
	Error   string  `json:"error,omitempty"`
	Outcome Outcome `json:"outcome"`
	Liked   bool    `json:"liked,omitempty"`
}

func Succeeded(outcome Outcome) Result {
	return Result{Success: true, Outcome: outcome}
}

func Failed(err error) Result {
	msg := "Unknown error"
	if err != nil {
		msg = err.Error()
	}
	return Result{Success: false, Error: msg, Outcome: OutcomeFailed}
}

type (
	CommentAuthor struct {
		ID       string `json:"id"`
		FullName string `json:"full_name"`
		Username string `json:"username"`
	}

	CommentWithUser struct {
		ID        string        `json:"id"`
		RecipeID  string        `json:"recipe_id"`
		UserID    string        `json:"user_id"`
		Content   string        `json:"content"`
		CreatedAt time.Time     `json:"created_at"`
		UpdatedAt time.Time     `json:"updated_at"`
		User      CommentAuthor `json:"user"`
	}

	RecipeWithSocial struct {
		Recipe
		UserHasLiked bool              `json:"user_has_liked"`
		Comments     []CommentWithUser `json:"comments"`
	}

	RecipeWithSocialResult struct {
		Result
		Recipe *RecipeWithSocial `json:"recipe,omitempty"`
	}

	CommentRequest struct {
		Content string `json:"content" validate:"required,notblank,max=2000"`
	}
)
