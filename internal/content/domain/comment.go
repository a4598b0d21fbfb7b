package domain

import (
	"time"

	userdomain "github.com/hackerclone/hackerclone/internal/user/domain"
)

type CommentID int64

// Comment's ParentCommentID is nil for root comments. When set it references
// another comment on the same post; the store enforces that on insert. Reply
// trees are reconstructed by the presentation layer, the store hands out the
// flat list.
type Comment struct {
	ID              CommentID
	Comment         string
	PostID          PostID
	UserID          userdomain.ID
	ParentCommentID *CommentID
	CreatedAt       time.Time
}

type CommentWithAuthor struct {
	Comment Comment
	Author  userdomain.User
}
