package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"

	"hoopboard/bootstrap"
	"hoopboard/configs"
	"hoopboard/database"
	_ "hoopboard/docs"
	"hoopboard/internal/handlers"
	"hoopboard/internal/middleware"
	"hoopboard/internal/repository"
	"hoopboard/internal/routes"
	"hoopboard/internal/stream"
	"hoopboard/services"
)

// @title HoopBoard API
// @version 1.0
// @description Basketball discussion board: posts, threaded comments, mentions.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := configs.Load()

	client := database.ConnectMongo(cfg.MongoURI)
	defer database.DisconnectMongo(client)
	db := client.Database(cfg.DBName)

	if err := bootstrap.EnsureIndexes(db); err != nil {
		log.Fatalf("ensure indexes failed: %v", err)
	}

	users := repository.NewUserRepository(db)
	posts := repository.NewPostRepository(db)
	comments := repository.NewCommentRepository(db)

	authSvc := services.NewAuthService(users, cfg.JWTSecret)
	postSvc := services.NewPostService(posts, comments)
	commentSvc := services.NewCommentService(comments)

	hub := stream.NewHub()
	watchCtx, stopWatch := context.WithCancel(context.Background())
	defer stopWatch()
	go stream.WatchComments(watchCtx, db.Collection("comments"), hub)

	app := fiber.New()

	app.Get("/docs/*", swagger.HandlerDefault)

	app.Use(middleware.JWTAuth(cfg.JWTSecret))

	routes.Register(app, routes.Deps{
		Auth:     &handlers.AuthHandler{Auth: authSvc},
		Users:    &handlers.UserHandler{Users: users},
		Posts:    &handlers.PostHandler{Svc: postSvc, Users: users},
		Comments: &handlers.CommentHandler{Svc: commentSvc, Repo: comments, Users: users, Hub: hub},
		Stream:   &handlers.StreamHandler{Hub: hub},
	})

	log.Printf("listening at http://localhost:%s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
