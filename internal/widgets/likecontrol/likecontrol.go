// Package likecontrol holds the optimistic like toggle shown next to a recipe.
package likecontrol

import (
	"Recipe-Share-Backend/domain"
	"Recipe-Share-Backend/internal/notify"
	"context"
	"sync"
)

const fallbackError = "Failed to update like"

// Toggler is the slice of the social service the control needs.
type Toggler interface {
	ToggleLike(ctx context.Context, recipeID, userID string) domain.Result
}

type State struct {
	Liked     bool
	Count     int64
	Animating bool
	Pending   bool
}

type Options struct {
	RecipeID string
	// UserID is empty for anonymous viewers; clicks are then ignored.
	UserID       string
	InitialLiked bool
	InitialCount int64
	// OnChange fires after a toggle is confirmed with the settled values.
	OnChange func(count int64, liked bool)
}

type Control struct {
	mu       sync.Mutex
	toggler  Toggler
	notifier notify.Notifier
	opts     Options
	state    State
	closed   bool
}

func New(toggler Toggler, notifier notify.Notifier, opts Options) *Control {
	count := opts.InitialCount
	if count < 0 {
		count = 0
	}
	return &Control{
		toggler:  toggler,
		notifier: notifier,
		opts:     opts,
		state:    State{Liked: opts.InitialLiked, Count: count},
	}
}

func (c *Control) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Close detaches the control; responses arriving afterwards are dropped.
func (c *Control) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

// Click applies the toggle optimistically and reconciles with the service.
// It reports whether a request was issued.
func (c *Control) Click(ctx context.Context) bool {
	c.mu.Lock()
	if c.closed || c.opts.UserID == "" || c.state.Pending {
		c.mu.Unlock()
		return false
	}

	snapshot := c.state
	if snapshot.Liked {
		c.state.Liked = false
		if c.state.Count > 0 {
			c.state.Count--
		}
	} else {
		c.state.Liked = true
		c.state.Count++
	}
	c.state.Pending = true
	c.state.Animating = true
	c.mu.Unlock()

	result := c.toggler.ToggleLike(ctx, c.opts.RecipeID, c.opts.UserID)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return true
	}

	if !result.Success {
		c.state = snapshot
		c.mu.Unlock()
		c.notify(notify.Error(result.Error, fallbackError))
		return true
	}

	c.state.Pending = false
	c.state.Animating = false
	count, liked := c.state.Count, c.state.Liked
	c.mu.Unlock()

	if c.opts.OnChange != nil {
		c.opts.OnChange(count, liked)
	}
	return true
}

func (c *Control) notify(n notify.Notification) {
	if c.notifier != nil {
		c.notifier.Notify(n)
	}
}
