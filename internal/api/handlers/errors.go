package handlers

import (
	"Recipe-Share-Backend/domain"
	"Recipe-Share-Backend/internal/utils/storage"
	"errors"

	"github.com/gofiber/fiber/v2"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrRecipeNotFound),
		errors.Is(err, domain.ErrProfileNotFound),
		errors.Is(err, domain.ErrCommentNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrUnauthorizedRecipeAccess),
		errors.Is(err, domain.ErrCommentNotOwned):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrInvalidCredentials):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrEmailAlreadyUsed),
		errors.Is(err, domain.ErrUsernameTaken):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrParseUUID),
		errors.Is(err, domain.ErrInvalidSocialIdentity),
		errors.Is(err, storage.ErrFileTypeNotAllowed),
		errors.Is(err, storage.ErrFileTooLarge):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrStorageUnavailable):
		return fiber.StatusServiceUnavailable
	}
	return fiber.StatusInternalServerError
}

func userIDFrom(c *fiber.Ctx) string {
	userID, _ := c.Locals("user_id").(string)
	return userID
}
