package handlers

import (
	"Recipe-Share-Backend/domain"
	"Recipe-Share-Backend/internal/api/presenters"
	"Recipe-Share-Backend/pkg/social"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	SocialHandler interface {
		GetRecipeDetail(c *fiber.Ctx) error
		ToggleLike(c *fiber.Ctx) error
		AddComment(c *fiber.Ctx) error
		UpdateComment(c *fiber.Ctx) error
		DeleteComment(c *fiber.Ctx) error
	}

	socialHandler struct {
		socialService social.SocialService
		validator     *validator.Validate
	}
)

func NewSocialHandler(socialService social.SocialService, validator *validator.Validate) SocialHandler {
	return &socialHandler{
		socialService: socialService,
		validator:     validator,
	}
}

// respond maps a service Result onto the response envelope.
func respond(c *fiber.Ctx, res domain.Result, data any, success, failure string, notFound error) error {
	if !res.Success {
		status := fiber.StatusInternalServerError
		if res.Error == domain.ErrInvalidSocialIdentity.Error() {
			status = fiber.StatusBadRequest
		}
		return presenters.ErrorResponse(c, status, failure, errors.New(res.Error))
	}

	switch res.Outcome {
	case domain.OutcomeForbidden:
		return presenters.ErrorResponse(c, fiber.StatusForbidden, failure, domain.ErrCommentNotOwned)
	case domain.OutcomeNotFound, domain.OutcomeNoOp:
		return presenters.ErrorResponse(c, fiber.StatusNotFound, failure, notFound)
	}
	return presenters.SuccessResponse(c, data, fiber.StatusOK, success)
}

func (h *socialHandler) GetRecipeDetail(c *fiber.Ctx) error {
	res := h.socialService.GetRecipeWithSocial(c.Context(), c.Params("id"), userIDFrom(c))
	return respond(c, res.Result, res.Recipe, domain.MessageSuccessGetRecipeDetail, domain.MessageFailedGetRecipeDetail, domain.ErrRecipeNotFound)
}

func (h *socialHandler) ToggleLike(c *fiber.Ctx) error {
	res := h.socialService.ToggleLike(c.Context(), c.Params("id"), userIDFrom(c))
	return respond(c, res, res, domain.MessageSuccessToggleLike, domain.MessageFailedToggleLike, domain.ErrRecipeNotFound)
}

func (h *socialHandler) AddComment(c *fiber.Ctx) error {
	req := new(domain.CommentRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddComment, err)
	}

	res := h.socialService.AddComment(c.Context(), c.Params("id"), userIDFrom(c), strings.TrimSpace(req.Content))
	return respond(c, res, res, domain.MessageSuccessAddComment, domain.MessageFailedAddComment, domain.ErrRecipeNotFound)
}

func (h *socialHandler) UpdateComment(c *fiber.Ctx) error {
	req := new(domain.CommentRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateComment, err)
	}

	res := h.socialService.UpdateComment(c.Context(), c.Params("id"), userIDFrom(c), strings.TrimSpace(req.Content))
	return respond(c, res, res, domain.MessageSuccessUpdateComment, domain.MessageFailedUpdateComment, domain.ErrCommentNotFound)
}

func (h *socialHandler) DeleteComment(c *fiber.Ctx) error {
	res := h.socialService.DeleteComment(c.Context(), c.Params("id"), userIDFrom(c))
	return respond(c, res, res, domain.MessageSuccessDeleteComment, domain.MessageFailedDeleteComment, domain.ErrCommentNotFound)
}
