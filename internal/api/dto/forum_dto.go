package dto

import (
	"github.com/glptrack/wellness-service/internal/service"
)

// CreateTopicRequest payload.
type CreateTopicRequest struct {
	Category string `json:"category"`
	Title    string `json:"title"`
	Text     string `json:"text"`
}

// CreateReplyRequest payload.
type CreateReplyRequest struct {
	Text string `json:"text"`
}

// ForumPostResponse represents a topic or reply.
type ForumPostResponse struct {
	ID         string  `json:"id"`
	UserID     string  `json:"userId"`
	AuthorName string  `json:"authorName"`
	Category   string  `json:"category"`
	Title      *string `json:"title,omitempty"`
	Text       string  `json:"text"`
	ParentID   *string `json:"parentId,omitempty"`
	IsPinned   bool    `json:"isPinned"`
	Views      int     `json:"views"`
	ReplyCount int     `json:"replyCount"`
	LikeCount  int     `json:"likeCount"`
	LikedByMe  bool    `json:"likedByMe"`
	IsMine     bool    `json:"isMine"`
	IsNew      bool    `json:"isNew"`
	CreatedAt  int64   `json:"createdAt"`
	UpdatedAt  int64   `json:"updatedAt"`
}

// NewForumPostResponse maps an annotated post view.
func NewForumPostResponse(item service.ForumPostItem) ForumPostResponse {
	return ForumPostResponse{
		ID:         item.ID,
		UserID:     item.UserID,
		AuthorName: item.AuthorName,
		Category:   item.Category,
		Title:      item.Title,
		Text:       item.Text,
		ParentID:   item.ParentID,
		IsPinned:   item.IsPinned,
		Views:      item.Views,
		ReplyCount: item.ReplyCount,
		LikeCount:  item.LikeCount,
		LikedByMe:  item.LikedByMe,
		IsMine:     item.IsMine,
		IsNew:      item.IsNew,
		CreatedAt:  item.CreatedAt,
		UpdatedAt:  item.UpdatedAt,
	}
}
