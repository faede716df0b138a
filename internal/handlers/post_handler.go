package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"

	"hoopboard/configs"
	"hoopboard/dto"
	"hoopboard/internal/authctx"
	"hoopboard/internal/repository"
	"hoopboard/services"
)

type PostHandler struct {
	Svc   *services.PostService
	Users *repository.UserRepository
}

// Create godoc
// @Summary Create a post
// @Tags posts
// @Accept json
// @Produce json
// @Param body body dto.CreatePostReq true "Post data"
// @Security BearerAuth
// @Success 201 {object} model.Post
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /posts [post]
func (h *PostHandler) Create(c *fiber.Ctx) error {
	uid, ok := authctx.UserIDFrom(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Message: "unauthorized"})
	}

	var body dto.CreatePostReq
	if err := c.BodyParser(&body); err != nil || body.Title == "" || body.Content == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "title and content required"})
	}

	author, err := h.Users.FindByID(c.Context(), uid)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Message: "unknown user"})
	}

	post, err := h.Svc.Create(c.Context(), author, body)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// List godoc
// @Summary List posts, newest first
// @Tags posts
// @Produce json
// @Param tag query string false "Filter by tag"
// @Param limit query int false "Page size"
// @Param cursor query string false "Opaque page cursor"
// @Success 200 {object} dto.ListPostsResp
// @Failure 400 {object} dto.ErrorResponse
// @Router /posts [get]
func (h *PostHandler) List(c *fiber.Ctx) error {
	limit := int64(c.QueryInt("limit", configs.DefaultLimitPosts))

	resp, err := h.Svc.List(c.Context(), c.Query("tag"), c.Query("cursor"), limit)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCursor) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: err.Error()})
	}
	return c.JSON(resp)
}

// Detail godoc
// @Summary Get a post with its full comment thread
// @Tags posts
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} dto.PostDetailResp
// @Failure 404 {object} dto.ErrorResponse
// @Router /posts/{id} [get]
func (h *PostHandler) Detail(c *fiber.Ctx) error {
	id, err := bson.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid post id"})
	}

	resp, err := h.Svc.Detail(c.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrPostNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: err.Error()})
	}
	return c.JSON(resp)
}

// Delete godoc
// @Summary Delete a post and all of its comments
// @Tags posts
// @Param id path string true "Post ID"
// @Security BearerAuth
// @Success 204
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /posts/{id} [delete]
func (h *PostHandler) Delete(c *fiber.Ctx) error {
	uid, ok := authctx.UserIDFrom(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Message: "unauthorized"})
	}

	id, err := bson.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid post id"})
	}

	post, err := h.Svc.Posts.FindByID(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Message: "post not found"})
	}
	if post.AuthorID != uid && !authctx.IsAdmin(c) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Message: "forbidden"})
	}

	if err := h.Svc.Delete(c.Context(), id); err != nil {
		if errors.Is(err, services.ErrPostNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Recount godoc
// @Summary Rebuild a post's comment counter from an actual count
// @Tags posts
// @Produce json
// @Param id path string true "Post ID"
// @Security BearerAuth
// @Success 200 {object} map[string]int64
// @Failure 403 {object} dto.ErrorResponse
// @Router /posts/{id}/recount [post]
func (h *PostHandler) Recount(c *fiber.Ctx) error {
	if !authctx.IsAdmin(c) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Message: "admin only"})
	}

	id, err := bson.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid post id"})
	}

	n, err := h.Svc.RecountComments(c.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrPostNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: err.Error()})
	}
	return c.JSON(fiber.Map{"comment_count": n})
}
