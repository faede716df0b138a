package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"

	"hoopboard/configs"
	"hoopboard/dto"
	"hoopboard/internal/authctx"
	"hoopboard/internal/cursor"
	"hoopboard/internal/repository"
	"hoopboard/internal/stream"
	"hoopboard/services"
)

type CommentHandler struct {
	Svc   *services.CommentService
	Repo  *repository.CommentRepository
	Users *repository.UserRepository
	Hub   *stream.Hub
}

// Create godoc
// @Summary Comment on a post, optionally as a reply
// @Tags comments
// @Accept json
// @Produce json
// @Param postId path string true "Post ID"
// @Param body body dto.CreateCommentReq true "Comment content and optional parentId"
// @Security BearerAuth
// @Success 201 {object} model.Comment
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /posts/{postId}/comments [post]
func (h *CommentHandler) Create(c *fiber.Ctx) error {
	uid, ok := authctx.UserIDFrom(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Message: "unauthorized"})
	}

	postID, err := bson.ObjectIDFromHex(c.Params("postId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid post id"})
	}

	var body dto.CreateCommentReq
	if err := c.BodyParser(&body); err != nil || len(body.Content) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "content required"})
	}

	author, err := h.Users.FindByID(c.Context(), uid)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Message: "unknown user"})
	}

	com, err := h.Svc.Create(c.Context(), postID, author, body.Content, body.ParentID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPostNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Message: err.Error()})
		case errors.Is(err, services.ErrParentNotFound), errors.Is(err, services.ErrParentMismatch):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: err.Error()})
		}
	}
	return c.Status(fiber.StatusCreated).JSON(com)
}

// List godoc
// @Summary List a post's comments, chronological
// @Tags comments
// @Produce json
// @Param postId path string true "Post ID"
// @Param limit query int false "Page size"
// @Param cursor query string false "Opaque page cursor"
// @Success 200 {object} dto.ListCommentsResp
// @Failure 400 {object} dto.ErrorResponse
// @Router /posts/{postId}/comments [get]
func (h *CommentHandler) List(c *fiber.Ctx) error {
	postID, err := bson.ObjectIDFromHex(c.Params("postId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid post id"})
	}

	limit := int64(c.QueryInt("limit", configs.DefaultLimitComments))
	if limit <= 0 {
		limit = configs.DefaultLimitComments
	}
	if limit > configs.MaxLimitComments {
		limit = configs.MaxLimitComments
	}

	var after time.Time
	var afterID bson.ObjectID
	if cur := c.Query("cursor"); cur != "" {
		after, afterID, err = cursor.Decode(cur)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid cursor"})
		}
	}

	// Reply counts need the whole thread, so fetch the full list once and
	// slice the requested page out of it.
	full, err := h.Repo.ListByPost(c.Context(), postID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: err.Error()})
	}
	views := services.BuildCommentViews(full)

	start := 0
	if !after.IsZero() {
		for i, v := range views {
			if v.CreatedAt.After(after) || (v.CreatedAt.Equal(after) && v.ID.Hex() > afterID.Hex()) {
				start = i
				break
			}
			start = i + 1
		}
	}

	resp := dto.ListCommentsResp{Comments: []dto.CommentView{}}
	end := start + int(limit)
	if end > len(views) {
		end = len(views)
	}
	if start < len(views) {
		resp.Comments = views[start:end]
	}
	if end < len(views) && len(resp.Comments) > 0 {
		last := resp.Comments[len(resp.Comments)-1]
		next := cursor.Encode(last.CreatedAt, last.ID)
		resp.NextCursor = &next
		resp.HasMore = true
	}
	return c.JSON(resp)
}

// Delete godoc
// @Summary Delete a comment and every reply below it
// @Description Only the author or an admin may delete; responds with the number of removed comments
// @Tags comments
// @Produce json
// @Param commentId path string true "Comment ID"
// @Security BearerAuth
// @Success 200 {object} dto.DeleteCommentResp
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /comments/{commentId} [delete]
func (h *CommentHandler) Delete(c *fiber.Ctx) error {
	uid, ok := authctx.UserIDFrom(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Message: "unauthorized"})
	}

	commentID, err := bson.ObjectIDFromHex(c.Params("commentId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid comment id"})
	}

	com, err := h.Svc.Get(c.Context(), commentID)
	if err != nil {
		if errors.Is(err, services.ErrCommentNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: err.Error()})
	}
	if com.AuthorID != uid && !authctx.IsAdmin(c) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Message: "forbidden"})
	}

	deleted, err := h.Svc.CascadeDelete(c.Context(), com.PostID, com.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: err.Error()})
	}

	// Change streams do not carry the post id on deletes, so the cascade
	// announces itself.
	h.Hub.Broadcast(com.PostID.Hex(), stream.Event{
		Type: stream.EventCommentsDeleted,
		Payload: fiber.Map{
			"commentId": com.ID.Hex(),
			"deleted":   deleted,
		},
	})

	return c.JSON(dto.DeleteCommentResp{Deleted: deleted})
}
