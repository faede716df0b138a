package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"hoopboard/configs"
	"hoopboard/dto"
	"hoopboard/internal/cursor"
	"hoopboard/internal/repository"
	"hoopboard/internal/thread"
	"hoopboard/internal/utils"
	"hoopboard/model"
)

const postDetailTTL = time.Minute

var ErrInvalidCursor = errors.New("invalid cursor")

type PostService struct {
	Posts    *repository.PostRepository
	Comments *repository.CommentRepository
}

func NewPostService(posts *repository.PostRepository, comments *repository.CommentRepository) *PostService {
	return &PostService{Posts: posts, Comments: comments}
}

func (s *PostService) Create(ctx context.Context, author model.User, req dto.CreatePostReq) (model.Post, error) {
	return s.Posts.Create(ctx, model.Post{
		Title:          req.Title,
		Content:        req.Content,
		Tags:           utils.NormalizeTags(req.Tags),
		AuthorID:       author.ID,
		AuthorName:     author.FirstName + " " + author.LastName,
		AuthorUsername: author.Username,
		AuthorRole:     author.Role,
	})
}

// List returns one newest-first page plus the cursor for the next one.
func (s *PostService) List(ctx context.Context, tag, cursorStr string, limit int64) (dto.ListPostsResp, error) {
	if limit <= 0 {
		limit = configs.DefaultLimitPosts
	}
	if limit > configs.MaxLimitPosts {
		limit = configs.MaxLimitPosts
	}

	var before time.Time
	var beforeID bson.ObjectID
	if cursorStr != "" {
		var err error
		before, beforeID, err = cursor.Decode(cursorStr)
		if err != nil {
			return dto.ListPostsResp{}, ErrInvalidCursor
		}
	}

	// Fetch one extra row to learn whether another page exists.
	posts, err := s.Posts.List(ctx, tag, before, beforeID, limit+1)
	if err != nil {
		return dto.ListPostsResp{}, err
	}

	resp := dto.ListPostsResp{Posts: posts}
	if int64(len(posts)) > limit {
		resp.Posts = posts[:limit]
		last := resp.Posts[limit-1]
		next := cursor.Encode(last.CreatedAt, last.ID)
		resp.NextCursor = &next
		resp.HasMore = true
	}
	if resp.Posts == nil {
		resp.Posts = []model.Post{}
	}
	return resp, nil
}

// Detail assembles the post page: the post, its rendered body, and the
// full flat comment list in chronological order with rendered bodies and
// reply counts. The result is cached briefly; comment writes invalidate.
func (s *PostService) Detail(ctx context.Context, id bson.ObjectID) (dto.PostDetailResp, error) {
	cacheKey := "post:detail:" + id.Hex()
	if cached := utils.GetCache().Get(cacheKey); cached != nil {
		if resp, ok := cached.(dto.PostDetailResp); ok {
			return resp, nil
		}
	}

	post, err := s.Posts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return dto.PostDetailResp{}, ErrPostNotFound
		}
		return dto.PostDetailResp{}, err
	}

	comments, err := s.Comments.ListByPost(ctx, id)
	if err != nil {
		return dto.PostDetailResp{}, err
	}

	resp := dto.PostDetailResp{
		Post:        post,
		ContentHTML: utils.RenderMarkdown(post.Content),
		Comments:    BuildCommentViews(comments),
	}

	utils.GetCache().Set(cacheKey, resp, postDetailTTL)
	return resp, nil
}

// BuildCommentViews renders a flat comment list for display. Reply
// counts for the whole list are computed once up front rather than per
// comment.
func BuildCommentViews(comments []model.Comment) []dto.CommentView {
	idx := thread.Build(comments)
	counts := idx.DescendantCounts()

	views := make([]dto.CommentView, len(comments))
	for i, c := range comments {
		views[i] = dto.CommentView{
			Comment:     c,
			ContentHTML: utils.RenderMarkdown(c.Content),
			ReplyCount:  counts[c.ID.Hex()],
		}
	}
	return views
}

// Delete removes a post together with all of its comments.
func (s *PostService) Delete(ctx context.Context, id bson.ObjectID) error {
	err := s.Comments.WithTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.Comments.DeleteByPost(ctx, id); err != nil {
			return err
		}
		n, err := s.Posts.Delete(ctx, id)
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrPostNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	utils.GetCache().Delete("post:detail:" + id.Hex())
	return nil
}

// RecountComments rebuilds the denormalized counter from an actual
// count, for when drift is suspected.
func (s *PostService) RecountComments(ctx context.Context, id bson.ObjectID) (int64, error) {
	if _, err := s.Posts.FindByID(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, ErrPostNotFound
		}
		return 0, err
	}

	n, err := s.Comments.CountByPost(ctx, id)
	if err != nil {
		return 0, err
	}
	if err := s.Posts.SetCommentCount(ctx, id, n); err != nil {
		return 0, err
	}

	utils.GetCache().Delete("post:detail:" + id.Hex())
	return n, nil
}
