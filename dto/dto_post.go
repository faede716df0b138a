package dto

import "hoopboard/model"

type CreatePostReq struct {
	Title   string   `json:"title"   validate:"required,min=1,max=200"`
	Content string   `json:"content" validate:"required,min=1,max=20000"`
	Tags    []string `json:"tags"    validate:"omitempty,max=5"`
}

type ListPostsResp struct {
	Posts      []model.Post `json:"posts"`
	NextCursor *string      `json:"next_cursor"`
	HasMore    bool         `json:"has_more"`
}

// PostDetailResp bundles a post with its full rendered comment thread.
type PostDetailResp struct {
	Post        model.Post    `json:"post"`
	ContentHTML string        `json:"contentHtml"`
	Comments    []CommentView `json:"comments"`
}
