package main

import (
	"Recipe-Share-Backend/cmd/config"
	"Recipe-Share-Backend/domain"
	"Recipe-Share-Backend/internal/notify"
	"Recipe-Share-Backend/internal/utils"
	"Recipe-Share-Backend/internal/widgets/commentpanel"
	"Recipe-Share-Backend/internal/widgets/likecontrol"
	"Recipe-Share-Backend/pkg/jwt"
	"Recipe-Share-Backend/pkg/social"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

var (
	tokenFlag  string
	recipeFlag string
)

// socialCmd drives the like control and comment panel against the configured store.
var socialCmd = &cobra.Command{
	Use:   "social",
	Short: "Like and comment on recipes from the terminal",
}

var socialShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print a recipe with its likes and comments",
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := openSession(cmd, false)
		if err != nil {
			return err
		}
		view, err := session.load(cmd.Context())
		if err != nil {
			return err
		}
		printRecipe(cmd.OutOrStdout(), view)
		return nil
	},
}

var socialLikeCmd = &cobra.Command{
	Use:   "like",
	Short: "Toggle your like on a recipe",
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := openSession(cmd, true)
		if err != nil {
			return err
		}
		view, err := session.load(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		control := likecontrol.New(session.service, notify.NewConsole(out), likecontrol.Options{
			RecipeID:     recipeFlag,
			UserID:       session.userID,
			InitialLiked: view.UserHasLiked,
			InitialCount: view.LikesCount,
			OnChange: func(count int64, liked bool) {
				fmt.Fprintf(out, "liked=%t likes=%d\n", liked, count)
			},
		})
		defer control.Close()

		control.Click(cmd.Context())
		return nil
	},
}

var socialCommentCmd = &cobra.Command{
	Use:   "comment",
	Short: "Add, edit or delete your comments on a recipe",
}

var socialCommentAddCmd = &cobra.Command{
	Use:   "add <content>",
	Short: "Post a comment",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		panel, err := openPanel(cmd)
		if err != nil {
			return err
		}
		defer panel.Close()

		panel.SetInput(strings.Join(args, " "))
		if !panel.Submit(cmd.Context()) {
			return errors.New("comment is empty")
		}
		return nil
	},
}

var socialCommentEditCmd = &cobra.Command{
	Use:   "edit <comment-id> <content>",
	Short: "Edit one of your comments",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		panel, err := openPanel(cmd)
		if err != nil {
			return err
		}
		defer panel.Close()

		if !panel.BeginEdit(args[0]) {
			return domain.ErrCommentNotOwned
		}
		panel.SetEditBuffer(strings.Join(args[1:], " "))
		if !panel.SaveEdit(cmd.Context()) {
			return errors.New("comment is empty")
		}
		return nil
	},
}

var socialCommentDeleteCmd = &cobra.Command{
	Use:   "delete <comment-id>",
	Short: "Delete one of your comments",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		panel, err := openPanel(cmd)
		if err != nil {
			return err
		}
		defer panel.Close()

		if !panel.Delete(cmd.Context(), args[0]) {
			return domain.ErrCommentNotOwned
		}
		return nil
	},
}

type session struct {
	service social.SocialService
	userID  string
}

// openSession connects to the store and resolves the caller from --token.
func openSession(cmd *cobra.Command, requireUser bool) (*session, error) {
	if recipeFlag == "" {
		return nil, errors.New("--recipe is required")
	}

	var userID string
	if tokenFlag != "" {
		id, _, err := jwt.NewJWTService(utils.GetConfig("JWT_SECRET")).GetUserIDByToken(tokenFlag)
		if err != nil {
			return nil, err
		}
		userID = id
	}
	if requireUser && userID == "" {
		return nil, domain.ErrTokenNotFound
	}

	db, err := config.ConnectDB()
	if err != nil {
		return nil, err
	}
	return &session{
		service: social.NewSocialService(social.NewSocialRepository(db), nil),
		userID:  userID,
	}, nil
}

func (s *session) load(ctx context.Context) (*domain.RecipeWithSocial, error) {
	res := s.service.GetRecipeWithSocial(ctx, recipeFlag, s.userID)
	if !res.Success {
		return nil, errors.New(res.Error)
	}
	if res.Recipe == nil {
		return nil, domain.ErrRecipeNotFound
	}
	return res.Recipe, nil
}

func openPanel(cmd *cobra.Command) (*commentpanel.Panel, error) {
	s, err := openSession(cmd, true)
	if err != nil {
		return nil, err
	}
	view, err := s.load(cmd.Context())
	if err != nil {
		return nil, err
	}

	out := cmd.OutOrStdout()
	var panel *commentpanel.Panel
	panel = commentpanel.New(s.service, notify.NewConsole(out), commentpanel.Options{
		RecipeID: recipeFlag,
		UserID:   s.userID,
		OnRefresh: func() {
			fresh, err := s.load(cmd.Context())
			if err != nil {
				fmt.Fprintf(out, "refresh failed: %v\n", err)
				return
			}
			panel.SetComments(fresh.Comments)
			fmt.Fprintf(out, "%d comment(s)\n", len(fresh.Comments))
		},
	})
	panel.SetComments(view.Comments)
	return panel, nil
}

func printRecipe(out io.Writer, r *domain.RecipeWithSocial) {
	fmt.Fprintf(out, "%s by %s\n", r.Title, r.AuthorName)
	fmt.Fprintf(out, "likes=%d comments=%d liked=%t\n", r.LikesCount, r.CommentsCount, r.UserHasLiked)
	for _, c := range r.Comments {
		fmt.Fprintf(out, "  [%s] %s: %s\n", c.ID, c.User.FullName, c.Content)
	}
}

func init() {
	socialCmd.PersistentFlags().StringVar(&tokenFlag, "token", "", "bearer token identifying the acting user")
	socialCmd.PersistentFlags().StringVar(&recipeFlag, "recipe", "", "recipe id")

	socialCommentCmd.AddCommand(socialCommentAddCmd, socialCommentEditCmd, socialCommentDeleteCmd)
	socialCmd.AddCommand(socialShowCmd, socialLikeCmd, socialCommentCmd)
}
