package mailing

import (
	"fmt"
	"html"
)

// CommentNoticeBody renders the message a recipe owner receives when
// someone comments on their recipe.
func CommentNoticeBody(appURL, recipeID, recipeTitle, commenter, content string) string {
	return fmt.Sprintf(
		`<p><strong>%s</strong> commented on your recipe <em>%s</em>:</p><blockquote>%s</blockquote><p><a href="%s/recipes/%s">View recipe</a></p>`,
		html.EscapeString(commenter),
		html.EscapeString(recipeTitle),
		html.EscapeString(content),
		appURL,
		recipeID,
	)
}
