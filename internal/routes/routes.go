package routes

import (
	"github.com/gofiber/fiber/v2"

	"hoopboard/internal/handlers"
	"hoopboard/internal/middleware"
)

// Deps holds shared dependencies to inject into handlers.
type Deps struct {
	Auth     *handlers.AuthHandler
	Users    *handlers.UserHandler
	Posts    *handlers.PostHandler
	Comments *handlers.CommentHandler
	Stream   *handlers.StreamHandler
}

// Register mounts all HTTP routes in one place.
// Keep paths lowercase, grouped by resource, and easy to discover.
func Register(app *fiber.App, d Deps) {
	api := app.Group("/api")

	// Auth
	auth := api.Group("/auth")
	auth.Post("/register", d.Auth.Register)
	auth.Post("/login", d.Auth.Login)
	auth.Get("/check-username", d.Auth.CheckUsername)

	api.Get("/whoami", middleware.RequireAuth(), handlers.WhoAmI())

	// Users
	users := api.Group("/users")
	users.Get("/me", middleware.RequireAuth(), d.Users.Me)
	users.Put("/me", middleware.RequireAuth(), d.Users.UpdateMe)
	users.Get("/:username", d.Users.GetByUsername)

	// Posts
	posts := api.Group("/posts")
	posts.Get("/", d.Posts.List)
	posts.Post("/", middleware.RequireAuth(), d.Posts.Create)
	posts.Get("/:id", d.Posts.Detail)
	posts.Delete("/:id", middleware.RequireAuth(), d.Posts.Delete)
	posts.Post("/:id/recount", middleware.RequireAuth(), d.Posts.Recount)

	// Comments
	posts.Get("/:postId/comments", d.Comments.List)
	posts.Post("/:postId/comments", middleware.RequireAuth(), d.Comments.Create)
	posts.Get("/:postId/comments/stream", d.Stream.Comments)
	api.Delete("/comments/:commentId", middleware.RequireAuth(), d.Comments.Delete)

	// Health check
	api.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
}
