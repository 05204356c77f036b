package social

import (
	"Recipe-Share-Backend/entities"
	"Recipe-Share-Backend/internal/utils/mailing"
	"context"
	"time"

	"github.com/gofiber/fiber/v2/log"
)

const commentNoticeTimeout = 30 * time.Second

// CommentNotifier is told about every stored comment. Implementations must
// not block the caller for long and must swallow their own failures.
type CommentNotifier interface {
	NotifyComment(ctx context.Context, comment entities.Comment)
}

type mailCommentNotifier struct {
	socialRepository SocialRepository
	mailer           mailing.Mailer
	appURL           string
}

func NewMailCommentNotifier(socialRepository SocialRepository, mailer mailing.Mailer, appURL string) CommentNotifier {
	return &mailCommentNotifier{
		socialRepository: socialRepository,
		mailer:           mailer,
		appURL:           appURL,
	}
}

func (n *mailCommentNotifier) NotifyComment(ctx context.Context, comment entities.Comment) {
	ctx, cancel := context.WithTimeout(ctx, commentNoticeTimeout)
	defer cancel()

	notice, err := n.socialRepository.GetCommentNotice(ctx, &comment)
	if err != nil {
		log.Errorf("Error loading comment notice for %s: %v", comment.ID, err)
		return
	}
	// Owners are not told about their own comments.
	if notice.OwnerID == comment.UserID || notice.OwnerEmail == "" {
		return
	}

	body := mailing.CommentNoticeBody(n.appURL, comment.RecipeID.String(), notice.RecipeTitle, notice.CommenterName, comment.Content)
	if err := n.mailer.SendMail(notice.OwnerEmail, "New comment on "+notice.RecipeTitle, body); err != nil {
		log.Errorf("Error sending comment notice for %s: %v", comment.ID, err)
	}
}
