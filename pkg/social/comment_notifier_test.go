package social

import (
	"Recipe-Share-Backend/entities"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMail struct {
	to, subject, body string
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
	done chan struct{}
}

func (m *fakeMailer) SendMail(to, subject, body string) error {
	m.mu.Lock()
	m.sent = append(m.sent, sentMail{to, subject, body})
	m.mu.Unlock()
	if m.done != nil {
		m.done <- struct{}{}
	}
	return m.err
}

func TestNotifyCommentMailsOwner(t *testing.T) {
	f := newFixture(t)
	mailer := &fakeMailer{}
	n := NewMailCommentNotifier(f.repo, mailer, "http://app")

	n.NotifyComment(context.Background(), entities.Comment{RecipeID: f.recipe.ID, UserID: f.alice.ID, Content: "yum"})

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "chef@example.com", mailer.sent[0].to)
	assert.Equal(t, "New comment on Sourdough", mailer.sent[0].subject)
	assert.Contains(t, mailer.sent[0].body, "Alice A")
}

func TestNotifyCommentSkipsOwnComment(t *testing.T) {
	f := newFixture(t)
	mailer := &fakeMailer{}
	n := NewMailCommentNotifier(f.repo, mailer, "http://app")

	n.NotifyComment(context.Background(), entities.Comment{RecipeID: f.recipe.ID, UserID: f.owner.ID, Content: "note to self"})

	assert.Empty(t, mailer.sent)
}

func TestNotifyCommentSwallowsMailErrors(t *testing.T) {
	f := newFixture(t)
	mailer := &fakeMailer{err: errors.New("smtp down")}
	n := NewMailCommentNotifier(f.repo, mailer, "http://app")

	assert.NotPanics(t, func() {
		n.NotifyComment(context.Background(), entities.Comment{RecipeID: f.recipe.ID, UserID: f.bob.ID, Content: "hi"})
	})
	assert.Len(t, mailer.sent, 1)
}

func TestAddCommentNotifiesInBackground(t *testing.T) {
	f := newFixture(t)
	mailer := &fakeMailer{done: make(chan struct{}, 1)}
	svc := NewSocialService(f.repo, NewMailCommentNotifier(f.repo, mailer, "http://app"))

	res := svc.AddComment(context.Background(), f.recipe.ID.String(), f.bob.ID.String(), "great")
	require.True(t, res.Success, res.Error)

	select {
	case <-mailer.done:
	case <-time.After(5 * time.Second):
		t.Fatal("owner was not notified")
	}
	mailer.mu.Lock()
	defer mailer.mu.Unlock()
	assert.Equal(t, "chef@example.com", mailer.sent[0].to)
}
