package content

import (
	"context"
	"time"

	contentdomain "github.com/hackerclone/hackerclone/internal/content/domain"
	contentrepo "github.com/hackerclone/hackerclone/internal/content/repository"
	userdomain "github.com/hackerclone/hackerclone/internal/user/domain"
	userrepo "github.com/hackerclone/hackerclone/internal/user/repository"
)

type mockPostRepo struct {
	createFunc          func(ctx context.Context, title, link string, author userdomain.ID, createdAt time.Time) (contentdomain.Post, error)
	findByIDFunc        func(ctx context.Context, id contentdomain.PostID) (contentdomain.Post, error)
	listWithAuthorsFunc func(ctx context.Context) ([]contentdomain.PostWithAuthor, error)
	listByAuthorFunc    func(ctx context.Context, author userdomain.ID) ([]contentdomain.Post, error)
}

func (m *mockPostRepo) Create(ctx context.Context, title, link string, author userdomain.ID, createdAt time.Time) (contentdomain.Post, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, title, link, author, createdAt)
	}
	return contentdomain.Post{ID: 1, Title: title, Link: link, Author: author, CreatedAt: createdAt}, nil
}

func (m *mockPostRepo) FindByID(ctx context.Context, id contentdomain.PostID) (contentdomain.Post, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return contentdomain.Post{}, contentrepo.ErrPostNotFound
}

func (m *mockPostRepo) ListWithAuthors(ctx context.Context) ([]contentdomain.PostWithAuthor, error) {
	if m.listWithAuthorsFunc != nil {
		return m.listWithAuthorsFunc(ctx)
	}
	return nil, nil
}

func (m *mockPostRepo) ListByAuthor(ctx context.Context, author userdomain.ID) ([]contentdomain.Post, error) {
	if m.listByAuthorFunc != nil {
		return m.listByAuthorFunc(ctx, author)
	}
	return nil, nil
}

type mockCommentRepo struct {
	createFunc       func(ctx context.Context, text string, postID contentdomain.PostID, author userdomain.ID, parentID *contentdomain.CommentID, createdAt time.Time) (contentdomain.Comment, error)
	listForPostFunc  func(ctx context.Context, postID contentdomain.PostID) ([]contentdomain.CommentWithAuthor, error)
	listByAuthorFunc func(ctx context.Context, author userdomain.ID) ([]contentdomain.Comment, error)
}

func (m *mockCommentRepo) Create(ctx context.Context, text string, postID contentdomain.PostID, author userdomain.ID, parentID *contentdomain.CommentID, createdAt time.Time) (contentdomain.Comment, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, text, postID, author, parentID, createdAt)
	}
	return contentdomain.Comment{ID: 1, Comment: text, PostID: postID, UserID: author, ParentCommentID: parentID, CreatedAt: createdAt}, nil
}

func (m *mockCommentRepo) ListForPost(ctx context.Context, postID contentdomain.PostID) ([]contentdomain.CommentWithAuthor, error) {
	if m.listForPostFunc != nil {
		return m.listForPostFunc(ctx, postID)
	}
	return nil, nil
}

func (m *mockCommentRepo) ListByAuthor(ctx context.Context, author userdomain.ID) ([]contentdomain.Comment, error) {
	if m.listByAuthorFunc != nil {
		return m.listByAuthorFunc(ctx, author)
	}
	return nil, nil
}

type mockUserRepo struct {
	createFunc         func(ctx context.Context, username, email, passwordHash string) (userdomain.User, error)
	findByUsernameFunc func(ctx context.Context, username string) (userdomain.User, error)
	findByIDFunc       func(ctx context.Context, id userdomain.ID) (userdomain.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, username, email, passwordHash string) (userdomain.User, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, username, email, passwordHash)
	}
	return userdomain.User{ID: 1, Username: username, Email: email, PasswordHash: passwordHash}, nil
}

func (m *mockUserRepo) FindByUsername(ctx context.Context, username string) (userdomain.User, error) {
	if m.findByUsernameFunc != nil {
		return m.findByUsernameFunc(ctx, username)
	}
	return userdomain.User{}, userrepo.ErrUserNotFound
}

func (m *mockUserRepo) FindByID(ctx context.Context, id userdomain.ID) (userdomain.User, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return userdomain.User{}, userrepo.ErrUserNotFound
}
