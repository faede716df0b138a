package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"hoopboard/dto"
	"hoopboard/internal/utils"
	"hoopboard/services"
)

type AuthHandler struct {
	Auth *services.AuthService
}

// Register godoc
// @Summary Register a new account
// @Description Creates a user; username is lowercased and must be unique
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.RegisterReq true "Registration data"
// @Success 201 {object} dto.AuthResp
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var body dto.RegisterReq
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid body"})
	}

	user, token, err := h.Auth.Register(c.Context(), body)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmailTaken), errors.Is(err, services.ErrUsernameTaken):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Message: err.Error()})
		case errors.Is(err, utils.ErrInvalidUsername):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: err.Error()})
		default:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: err.Error()})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(dto.AuthResp{Token: token, User: user})
}

// Login godoc
// @Summary Log in with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.LoginReq true "Credentials"
// @Success 200 {object} dto.AuthResp
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var body dto.LoginReq
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid body"})
	}

	user, token, err := h.Auth.Login(c.Context(), body)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: err.Error()})
	}

	return c.JSON(dto.AuthResp{Token: token, User: user})
}

// CheckUsername godoc
// @Summary Check username availability
// @Description Case-insensitive: JDoe_99 and jdoe_99 are the same name
// @Tags auth
// @Produce json
// @Param username query string true "Username to check"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} dto.ErrorResponse
// @Router /auth/check-username [get]
func (h *AuthHandler) CheckUsername(c *fiber.Ctx) error {
	username := c.Query("username")

	available, err := h.Auth.UsernameAvailable(c.Context(), username)
	if err != nil {
		if errors.Is(err, utils.ErrInvalidUsername) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: err.Error()})
	}

	return c.JSON(fiber.Map{"available": available})
}

// WhoAmI shows the identity the middleware extracted from the token.
func WhoAmI() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id":  c.Locals("user_id"),
			"username": c.Locals("username"),
			"role":     c.Locals("role"),
		})
	}
}
