package domain

import (
	"time"

	userdomain "github.com/hackerclone/hackerclone/internal/user/domain"
)

type PostID int64

type Post struct {
	ID        PostID
	Title     string
	Link      string
	Author    userdomain.ID
	CreatedAt time.Time
}

// PostWithAuthor is one row of the front feed join.
type PostWithAuthor struct {
	Post   Post
	Author userdomain.User
}
