package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"hoopboard/model"
)

// CommentRepository owns the comments collection plus the post-side
// counter updates that belong to the same write paths.
type CommentRepository struct {
	db *mongo.Database
}

func NewCommentRepository(db *mongo.Database) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) comments() *mongo.Collection { return r.db.Collection("comments") }
func (r *CommentRepository) posts() *mongo.Collection    { return r.db.Collection("posts") }

func (r *CommentRepository) Insert(ctx context.Context, c model.Comment) (model.Comment, error) {
	c.ID = bson.NewObjectID()
	c.CreatedAt = time.Now().UTC()
	if _, err := r.comments().InsertOne(ctx, c); err != nil {
		return model.Comment{}, err
	}
	return c, nil
}

func (r *CommentRepository) FindByID(ctx context.Context, id bson.ObjectID) (model.Comment, error) {
	var c model.Comment
	err := r.comments().FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	return c, err
}

// ListByPost returns the complete comment list of a post in
// chronological order. Cascade delete and the thread index both work
// from this full, fresh read.
func (r *CommentRepository) ListByPost(ctx context.Context, postID bson.ObjectID) ([]model.Comment, error) {
	cur, err := r.comments().Find(ctx, bson.M{"post_id": postID}, options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var comments []model.Comment
	if err := cur.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// DeleteByIDs removes the given comments. Deleting ids that are already
// absent is a no-op on the store side; the returned count reflects only
// documents actually removed.
func (r *CommentRepository) DeleteByIDs(ctx context.Context, ids []bson.ObjectID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res, err := r.comments().DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteByPost removes every comment of a post (post deletion path).
func (r *CommentRepository) DeleteByPost(ctx context.Context, postID bson.ObjectID) (int64, error) {
	res, err := r.comments().DeleteMany(ctx, bson.M{"post_id": postID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *CommentRepository) CountByPost(ctx context.Context, postID bson.ObjectID) (int64, error) {
	return r.comments().CountDocuments(ctx, bson.M{"post_id": postID})
}

// IncPostCommentCount atomically adjusts the owning post's denormalized
// counter.
func (r *CommentRepository) IncPostCommentCount(ctx context.Context, postID bson.ObjectID, delta int) error {
	_, err := r.posts().UpdateOne(ctx, bson.M{"_id": postID}, bson.M{"$inc": bson.M{"comment_count": delta}})
	return err
}

func (r *CommentRepository) FindPost(ctx context.Context, postID bson.ObjectID) (model.Post, error) {
	var p model.Post
	err := r.posts().FindOne(ctx, bson.M{"_id": postID}).Decode(&p)
	return p, err
}

// WithTransaction runs fn inside a multi-document transaction, so a
// cascade's deletes and its counter update commit or abort together.
func (r *CommentRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	sess, err := r.db.Client().StartSession()
	if err != nil {
		return err
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(ctx context.Context) (any, error) {
		return nil, fn(ctx)
	})
	return err
}
