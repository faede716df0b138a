package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"hoopboard/dto"
	"hoopboard/internal/authctx"
	"hoopboard/internal/repository"
	"hoopboard/internal/utils"
)

type UserHandler struct {
	Users *repository.UserRepository
}

// GetByUsername godoc
// @Summary Get a public profile
// @Tags users
// @Produce json
// @Param username path string true "Username (case-insensitive)"
// @Success 200 {object} dto.PublicProfile
// @Failure 404 {object} dto.ErrorResponse
// @Router /users/{username} [get]
func (h *UserHandler) GetByUsername(c *fiber.Ctx) error {
	username := utils.NormalizeUsername(c.Params("username"))

	user, err := h.Users.FindByUsername(c.Context(), username)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Message: "user not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: err.Error()})
	}

	return c.JSON(dto.PublicProfileFrom(user))
}

// Me returns the authenticated user's own record (including email).
func (h *UserHandler) Me(c *fiber.Ctx) error {
	uid, ok := authctx.UserIDFrom(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Message: "unauthorized"})
	}

	user, err := h.Users.FindByID(c.Context(), uid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Message: "user not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: err.Error()})
	}

	return c.JSON(user)
}

// UpdateMe godoc
// @Summary Update own bio/avatar
// @Tags users
// @Accept json
// @Produce json
// @Param body body dto.UpdateProfileReq true "Fields to update"
// @Security BearerAuth
// @Success 200 {object} model.User
// @Failure 401 {object} dto.ErrorResponse
// @Router /users/me [put]
func (h *UserHandler) UpdateMe(c *fiber.Ctx) error {
	uid, ok := authctx.UserIDFrom(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Message: "unauthorized"})
	}

	var body dto.UpdateProfileReq
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid body"})
	}

	user, err := h.Users.UpdateProfile(c.Context(), uid, body.Bio, body.Avatar)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: err.Error()})
	}

	return c.JSON(user)
}
