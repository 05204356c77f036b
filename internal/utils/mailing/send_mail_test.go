package mailing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMailConfigEnabled(t *testing.T) {
	assert.False(t, MailConfig{}.Enabled())
	assert.False(t, MailConfig{SMTPHost: "smtp.example.com"}.Enabled())
	assert.True(t, MailConfig{SMTPHost: "smtp.example.com", SMTPPort: "587", SMTPEmail: "bot@example.com"}.Enabled())
}

func TestSendMailRejectsBadPort(t *testing.T) {
	m := NewMailer(MailConfig{SMTPHost: "localhost", SMTPPort: "not-a-port", SMTPEmail: "bot@example.com"})
	err := m.SendMail("owner@example.com", "hi", "<p>hi</p>")
	assert.ErrorContains(t, err, "invalid SMTP_PORT")
}

func TestCommentNoticeBodyEscapesInput(t *testing.T) {
	body := CommentNoticeBody("http://app", "r1", "Pie <3", "bob", "<script>x</script>")
	assert.Contains(t, body, "Pie &lt;3")
	assert.Contains(t, body, "&lt;script&gt;")
	assert.Contains(t, body, `href="http://app/recipes/r1"`)
}
