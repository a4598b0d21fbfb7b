package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"

	"github.com/hackerclone/hackerclone/internal/common/clock"
	"github.com/hackerclone/hackerclone/internal/common/logger"
	"github.com/hackerclone/hackerclone/internal/content/domain"
	"github.com/hackerclone/hackerclone/internal/content/repository"
	userdomain "github.com/hackerclone/hackerclone/internal/user/domain"
	userrepo "github.com/hackerclone/hackerclone/internal/user/repository"
)

// ContentService exposes the typed content operations over the repositories.
// Callers pass an already-authorized User for every mutation; authorization
// itself lives in the auth service.
type ContentService struct {
	posts    repository.PostRepository
	comments repository.CommentRepository
	users    userrepo.Repository
	clock    clock.Clock
	log      *logger.Logger
	validate *validator.Validate
}

type ContentServiceDeps struct {
	Posts    repository.PostRepository
	Comments repository.CommentRepository
	Users    userrepo.Repository
	Clock    clock.Clock
	Log      *logger.Logger
}

func NewContentService(deps ContentServiceDeps) *ContentService {
	return &ContentService{
		posts:    deps.Posts,
		comments: deps.Comments,
		users:    deps.Users,
		clock:    deps.Clock,
		log:      deps.Log,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

type SubmitPostInput struct {
	Title string `validate:"required,max=200"`
	Link  string `validate:"required,url,max=2048"`
}

type CommentInput struct {
	Text            string `validate:"required,max=4000"`
	ParentCommentID *domain.CommentID
}

// FeedItem is one front-page row: the post plus its author's name.
type FeedItem struct {
	Post   domain.Post
	Author string
}

type PostPage struct {
	Post     domain.Post
	Author   userdomain.User
	Comments []domain.CommentWithAuthor
}

type Profile struct {
	User     userdomain.User
	Posts    []domain.Post
	Comments []domain.Comment
}

func (s *ContentService) SubmitPost(ctx context.Context, author userdomain.User, input SubmitPostInput) (domain.Post, error) {
	if err := s.validate.Struct(input); err != nil {
		return domain.Post{}, ErrValidation.WithCause(err)
	}

	post, err := s.posts.Create(ctx, input.Title, input.Link, author.ID, s.clock.Now())
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": int64(author.ID),
			"action":  "submit_post_failed",
		}).Errorf("submit post failed: %v", err)
		return domain.Post{}, err
	}

	s.log.WithFields(ctx, logger.Fields{
		"user_id": int64(author.ID),
		"post_id": int64(post.ID),
		"action":  "post_created",
	}).Info("post created")
	incrementPostsCreated()

	return post, nil
}

// ListPostsWithAuthors returns the raw (Post, User) join in primary-key
// order.
func (s *ContentService) ListPostsWithAuthors(ctx context.Context) ([]domain.PostWithAuthor, error) {
	return s.posts.ListWithAuthors(ctx)
}

// Feed is the front page: ListPostsWithAuthors flattened to what the shell
// renders.
func (s *ContentService) Feed(ctx context.Context) ([]FeedItem, error) {
	rows, err := s.posts.ListWithAuthors(ctx)
	if err != nil {
		return nil, err
	}
	incrementFeedRequests()

	return lo.Map(rows, func(row domain.PostWithAuthor, _ int) FeedItem {
		return FeedItem{
			Post:   row.Post,
			Author: row.Author.Username,
		}
	}), nil
}

func (s *ContentService) FindPost(ctx context.Context, id domain.PostID) (domain.Post, error) {
	return s.posts.FindByID(ctx, id)
}

// GetPostPage assembles everything the post view needs: the post, its
// author and the flat comment list with comment authors.
func (s *ContentService) GetPostPage(ctx context.Context, id domain.PostID) (PostPage, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return PostPage{}, err
	}

	author, err := s.users.FindByID(ctx, post.Author)
	if err != nil {
		return PostPage{}, err
	}

	comments, err := s.comments.ListForPost(ctx, id)
	if err != nil {
		return PostPage{}, err
	}

	return PostPage{
		Post:     post,
		Author:   author,
		Comments: comments,
	}, nil
}

func (s *ContentService) ListCommentsForPost(ctx context.Context, id domain.PostID) ([]domain.CommentWithAuthor, error) {
	return s.comments.ListForPost(ctx, id)
}

func (s *ContentService) AddComment(ctx context.Context, author userdomain.User, postID domain.PostID, input CommentInput) (domain.Comment, error) {
	if err := s.validate.Struct(input); err != nil {
		return domain.Comment{}, ErrValidation.WithCause(err)
	}

	comment, err := s.comments.Create(ctx, input.Text, postID, author.ID, input.ParentCommentID, s.clock.Now())
	if err != nil {
		if errors.Is(err, repository.ErrParentMismatch) {
			s.log.WithFields(ctx, logger.Fields{
				"user_id": int64(author.ID),
				"post_id": int64(postID),
				"action":  "comment_parent_mismatch",
			}).Warnf("comment rejected: %v", err)
			return domain.Comment{}, err
		}
		s.log.WithFields(ctx, logger.Fields{
			"user_id": int64(author.ID),
			"post_id": int64(postID),
			"action":  "add_comment_failed",
		}).Errorf("add comment failed: %v", err)
		return domain.Comment{}, err
	}

	kind := "root"
	if comment.ParentCommentID != nil {
		kind = "reply"
	}
	s.log.WithFields(ctx, logger.Fields{
		"user_id":    int64(author.ID),
		"post_id":    int64(postID),
		"comment_id": int64(comment.ID),
		"action":     "comment_created",
	}).Info("comment created")
	incrementCommentsCreated(kind)

	return comment, nil
}

func (s *ContentService) ListPostsByUser(ctx context.Context, userID userdomain.ID) ([]domain.Post, error) {
	return s.posts.ListByAuthor(ctx, userID)
}

func (s *ContentService) ListCommentsByUser(ctx context.Context, userID userdomain.ID) ([]domain.Comment, error) {
	return s.comments.ListByAuthor(ctx, userID)
}

// GetProfile backs the profile view: the user plus everything they wrote.
func (s *ContentService) GetProfile(ctx context.Context, username string) (Profile, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return Profile{}, err
	}

	posts, err := s.posts.ListByAuthor(ctx, user.ID)
	if err != nil {
		return Profile{}, err
	}

	comments, err := s.comments.ListByAuthor(ctx, user.ID)
	if err != nil {
		return Profile{}, err
	}

	return Profile{
		User:     user,
		Posts:    posts,
		Comments: comments,
	}, nil
}
