package handlers

import (
	"bufio"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
	"go.mongodb.org/mongo-driver/v2/bson"

	"hoopboard/dto"
	"hoopboard/internal/stream"
)

type StreamHandler struct {
	Hub *stream.Hub
}

// Comments godoc
// @Summary Subscribe to a post's comment events over SSE
// @Description Emits comment_created and comments_deleted events; pings every 30s
// @Tags comments
// @Produce text/event-stream
// @Param postId path string true "Post ID"
// @Success 200 {string} string "SSE stream"
// @Failure 400 {object} dto.ErrorResponse
// @Router /posts/{postId}/comments/stream [get]
func (h *StreamHandler) Comments(c *fiber.Ctx) error {
	postID, err := bson.ObjectIDFromHex(c.Params("postId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid post id"})
	}

	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")
	c.Set("Transfer-Encoding", "chunked")

	hub := h.Hub
	key := postID.Hex()

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		ch := hub.Subscribe(key)
		defer hub.Unsubscribe(key, ch)

		w.WriteString("event: connected\ndata: {\"status\":\"connected\"}\n\n")
		if err := w.Flush(); err != nil {
			return
		}

		ping := time.NewTicker(30 * time.Second)
		defer ping.Stop()

		// A failed flush is the only disconnect signal available inside
		// the stream writer.
		for {
			select {
			case frame, ok := <-ch:
				if !ok {
					return
				}
				w.Write(frame)
				if err := w.Flush(); err != nil {
					return
				}
			case <-ping.C:
				w.WriteString("event: ping\ndata: {}\n\n")
				if err := w.Flush(); err != nil {
					return
				}
			}
		}
	}))
	return nil
}
