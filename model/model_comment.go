package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Comment is immutable after creation: there is no edit operation, and
// the author fields are a snapshot taken at creation time (they are not
// back-filled when the author later changes profile data).
type Comment struct {
	ID             bson.ObjectID  `json:"id"                 bson:"_id,omitempty"`
	PostID         bson.ObjectID  `json:"postId"             bson:"post_id"`
	ParentID       *bson.ObjectID `json:"parentId,omitempty" bson:"parent_id,omitempty"`
	Content        string         `json:"content"            bson:"content"`
	AuthorID       bson.ObjectID  `json:"authorId"           bson:"author_id"`
	AuthorName     string         `json:"authorName"         bson:"author_name"`
	AuthorUsername string         `json:"authorUsername"     bson:"author_username"`
	AuthorRole     string         `json:"authorRole"         bson:"author_role"`
	CreatedAt      time.Time      `json:"createdAt"          bson:"created_at"`
}
