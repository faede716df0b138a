package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"hoopboard/model"
)

type PostRepository struct {
	db *mongo.Database
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) posts() *mongo.Collection { return r.db.Collection("posts") }

func (r *PostRepository) Create(ctx context.Context, post model.Post) (model.Post, error) {
	post.ID = bson.NewObjectID()
	post.CreatedAt = time.Now().UTC()
	post.CommentCount = 0
	if post.Tags == nil {
		post.Tags = []string{}
	}
	if _, err := r.posts().InsertOne(ctx, post); err != nil {
		return model.Post{}, err
	}
	return post, nil
}

func (r *PostRepository) FindByID(ctx context.Context, id bson.ObjectID) (model.Post, error) {
	var p model.Post
	err := r.posts().FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	return p, err
}

// List returns posts newest first. A zero `before` time means "from the
// top"; otherwise the page starts strictly after the (createdAt, _id)
// keyset boundary.
func (r *PostRepository) List(ctx context.Context, tag string, before time.Time, beforeID bson.ObjectID, limit int64) ([]model.Post, error) {
	filter := bson.M{}
	if tag != "" {
		filter["tags"] = tag
	}
	if !before.IsZero() {
		filter["$or"] = []bson.M{
			{"created_at": bson.M{"$lt": before}},
			{"created_at": before, "_id": bson.M{"$lt": beforeID}},
		}
	}

	cur, err := r.posts().Find(ctx, filter, options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(limit))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var posts []model.Post
	if err := cur.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *PostRepository) Delete(ctx context.Context, id bson.ObjectID) (int64, error) {
	res, err := r.posts().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// SetCommentCount overwrites the denormalized counter with a recomputed
// value (drift repair).
func (r *PostRepository) SetCommentCount(ctx context.Context, id bson.ObjectID, n int64) error {
	_, err := r.posts().UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"comment_count": n}})
	return err
}
