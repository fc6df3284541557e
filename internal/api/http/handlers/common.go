package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/deadline-tracker/internal/api/dto"
	"github.com/spec-kit/deadline-tracker/internal/auth"
	"github.com/spec-kit/deadline-tracker/internal/domain"
	apperrors "github.com/spec-kit/deadline-tracker/pkg/util"
	"github.com/spec-kit/deadline-tracker/pkg/validation"
)

// bindJSON decodes the body into req and validates it.
func bindJSON(c *fiber.Ctx, req any) error {
	if err := c.BodyParser(req); err != nil {
		return apperrors.NewValidationError("invalid payload", validation.ToDetails(err))
	}
	return validation.Struct(req)
}

func requireSession(c *fiber.Ctx) (*domain.Session, error) {
	session, ok := auth.SessionFromContext(c)
	if !ok {
		return nil, apperrors.NewUnauthorized("login required")
	}
	return session, nil
}

func toUserResponse(u domain.User) dto.UserResponse {
	return dto.UserResponse{ID: u.ID, Name: u.Name, Email: u.Email}
}
