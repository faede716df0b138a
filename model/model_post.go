package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Post struct {
	ID             bson.ObjectID `json:"id"             bson:"_id,omitempty"`
	Title          string        `json:"title"          bson:"title"`
	Content        string        `json:"content"        bson:"content"`
	Tags           []string      `json:"tags"           bson:"tags"`
	AuthorID       bson.ObjectID `json:"authorId"       bson:"author_id"`
	AuthorName     string        `json:"authorName"     bson:"author_name"`
	AuthorUsername string        `json:"authorUsername" bson:"author_username"`
	AuthorRole     string        `json:"authorRole"     bson:"author_role"`
	CommentCount   int           `json:"commentCount"   bson:"comment_count"`
	CreatedAt      time.Time     `json:"createdAt"      bson:"created_at"`
}
