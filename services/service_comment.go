package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"hoopboard/internal/thread"
	"hoopboard/internal/utils"
	"hoopboard/model"
)

var (
	ErrPostNotFound    = errors.New("post not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrParentNotFound  = errors.New("parent comment not found")
	ErrParentMismatch  = errors.New("parent comment belongs to a different post")
)

// CommentStore is the slice of the store the comment flows need. The
// Mongo implementation is repository.CommentRepository; tests use an
// in-memory fake.
type CommentStore interface {
	Insert(ctx context.Context, c model.Comment) (model.Comment, error)
	FindByID(ctx context.Context, id bson.ObjectID) (model.Comment, error)
	ListByPost(ctx context.Context, postID bson.ObjectID) ([]model.Comment, error)
	DeleteByIDs(ctx context.Context, ids []bson.ObjectID) (int64, error)
	IncPostCommentCount(ctx context.Context, postID bson.ObjectID, delta int) error
	FindPost(ctx context.Context, postID bson.ObjectID) (model.Post, error)
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type CommentService struct {
	Store CommentStore
}

func NewCommentService(store CommentStore) *CommentService {
	return &CommentService{Store: store}
}

// Create validates and stores a new comment and bumps the post counter
// in the same transaction. A reply's parent must exist and belong to the
// same post; the author fields are snapshotted from the actor.
func (s *CommentService) Create(ctx context.Context, postID bson.ObjectID, author model.User, content, parentHex string) (model.Comment, error) {
	post, err := s.Store.FindPost(ctx, postID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return model.Comment{}, ErrPostNotFound
		}
		return model.Comment{}, err
	}

	var parentID *bson.ObjectID
	if parentHex != "" {
		pid, err := bson.ObjectIDFromHex(parentHex)
		if err != nil {
			return model.Comment{}, ErrParentNotFound
		}
		parentID = &pid
	}

	var created model.Comment
	err = s.Store.WithTransaction(ctx, func(ctx context.Context) error {
		// Parent checks run inside the transaction so a reply cannot slip
		// under a parent that a concurrent cascade is removing.
		if parentID != nil {
			parent, err := s.Store.FindByID(ctx, *parentID)
			if err != nil {
				if errors.Is(err, mongo.ErrNoDocuments) {
					return ErrParentNotFound
				}
				return err
			}
			if parent.PostID != post.ID {
				return ErrParentMismatch
			}
		}

		var err error
		created, err = s.Store.Insert(ctx, model.Comment{
			PostID:         post.ID,
			ParentID:       parentID,
			Content:        content,
			AuthorID:       author.ID,
			AuthorName:     author.FirstName + " " + author.LastName,
			AuthorUsername: author.Username,
			AuthorRole:     author.Role,
		})
		if err != nil {
			return err
		}
		return s.Store.IncPostCommentCount(ctx, post.ID, 1)
	})
	if err != nil {
		return model.Comment{}, err
	}

	utils.GetCache().Delete("post:detail:" + post.ID.Hex())
	return created, nil
}

// Get is the lookup the handler uses for its authorization check before
// asking for a cascade.
func (s *CommentService) Get(ctx context.Context, id bson.ObjectID) (model.Comment, error) {
	c, err := s.Store.FindByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Comment{}, ErrCommentNotFound
	}
	return c, err
}

// CascadeDelete removes a comment and its entire reply subtree and
// adjusts the post's comment counter by the number actually removed.
// All of it runs in one transaction over a fresh read of the post's
// comment list, so a failure anywhere aborts cleanly and the counter
// never drifts from the deletes. Deleting an id that is already gone is
// a no-op that returns 0.
//
// Descendants are deleted before the target: the target's own delete is
// the last write, so no committed state ever contains a comment whose
// parent is missing.
func (s *CommentService) CascadeDelete(ctx context.Context, postID, commentID bson.ObjectID) (int, error) {
	var total int64

	err := s.Store.WithTransaction(ctx, func(ctx context.Context) error {
		total = 0

		comments, err := s.Store.ListByPost(ctx, postID)
		if err != nil {
			return err
		}
		idx := thread.Build(comments)
		if _, ok := idx.Get(commentID); !ok {
			return nil // already deleted; do not touch the counter
		}

		descendants := idx.Descendants(commentID)
		descIDs := make([]bson.ObjectID, len(descendants))
		for i, d := range descendants {
			descIDs[i] = d.ID
		}

		n, err := s.Store.DeleteByIDs(ctx, descIDs)
		if err != nil {
			return err
		}
		total += n

		n, err = s.Store.DeleteByIDs(ctx, []bson.ObjectID{commentID})
		if err != nil {
			return err
		}
		total += n

		if total > 0 {
			if err := s.Store.IncPostCommentCount(ctx, postID, -int(total)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if total > 0 {
		utils.GetCache().Delete("post:detail:" + postID.Hex())
	}
	return int(total), nil
}
