package dto

import "hoopboard/model"

type CreateCommentReq struct {
	Content  string `json:"content"            validate:"required,min=1,max=2000"`
	ParentID string `json:"parentId,omitempty"`
}

// CommentView is a comment as rendered for display: sanitized HTML body
// plus the number of replies anywhere below it.
type CommentView struct {
	model.Comment
	ContentHTML string `json:"contentHtml"`
	ReplyCount  int    `json:"replyCount"`
}

type ListCommentsResp struct {
	Comments   []CommentView `json:"comments"`
	NextCursor *string       `json:"next_cursor"`
	HasMore    bool          `json:"has_more"`
}

type DeleteCommentResp struct {
	Deleted int `json:"deleted"`
}
