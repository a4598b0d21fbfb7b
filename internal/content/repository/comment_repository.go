package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	pgx "github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/hackerclone/hackerclone/internal/common/db"
	commonerrors "github.com/hackerclone/hackerclone/internal/common/errors"
	"github.com/hackerclone/hackerclone/internal/content/domain"
	userdomain "github.com/hackerclone/hackerclone/internal/user/domain"
)

type CommentRepository interface {
	Create(ctx context.Context, text string, postID domain.PostID, author userdomain.ID, parentID *domain.CommentID, createdAt time.Time) (domain.Comment, error)
	ListForPost(ctx context.Context, postID domain.PostID) ([]domain.CommentWithAuthor, error)
	ListByAuthor(ctx context.Context, author userdomain.ID) ([]domain.Comment, error)
}

var (
	ErrCommentNotFound = commonerrors.ErrNotFound

	// ErrParentMismatch surfaces when a reply references a parent comment
	// that lives on a different post.
	ErrParentMismatch = commonerrors.ErrConstraintViolation
)

type PgCommentRepository struct {
	pool *pgxpool.Pool
	tx   *TxManager
}

func NewPgCommentRepository(pool *pgxpool.Pool) *PgCommentRepository {
	return &PgCommentRepository{pool: pool, tx: NewTxManager(pool)}
}

// Create inserts a comment inside one transaction that re-verifies its
// references: the post must still exist, and a parent comment must belong to
// the same post. The read-verify-write sequence is atomic from the caller's
// point of view.
func (r *PgCommentRepository) Create(ctx context.Context, text string, postID domain.PostID, author userdomain.ID, parentID *domain.CommentID, createdAt time.Time) (domain.Comment, error) {
	start := time.Now()

	var comment domain.Comment
	err := r.tx.WithTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var foundPost int64
		err := tx.QueryRow(
			ctx,
			`SELECT id FROM posts WHERE id = $1 FOR SHARE`,
			int64(postID),
		).Scan(&foundPost)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrPostNotFound
			}
			return err
		}

		var parentArg *int64
		if parentID != nil {
			var parentPost int64
			err := tx.QueryRow(
				ctx,
				`SELECT post_id FROM comments WHERE id = $1 FOR SHARE`,
				int64(*parentID),
			).Scan(&parentPost)
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return ErrCommentNotFound
				}
				return err
			}
			if parentPost != int64(postID) {
				return ErrParentMismatch.WithCause(
					fmt.Errorf("parent comment %d belongs to post %d, not %d", *parentID, parentPost, postID),
				)
			}
			v := int64(*parentID)
			parentArg = &v
		}

		var id int64
		err = tx.QueryRow(
			ctx,
			`INSERT INTO comments (comment, post_id, user_id, parent_comment_id, created_at)
			 VALUES ($1, $2, $3, $4, $5)
			 RETURNING id`,
			text,
			int64(postID),
			int64(author),
			parentArg,
			createdAt,
		).Scan(&id)
		if err != nil {
			return err
		}

		comment = domain.Comment{
			ID:              domain.CommentID(id),
			Comment:         text,
			PostID:          postID,
			UserID:          author,
			ParentCommentID: parentID,
			CreatedAt:       createdAt,
		}
		return nil
	})
	if err != nil {
		if commonerrors.IsDomainError(err) {
			db.MeasureQueryDuration("create_comment", "comments", start)
			return domain.Comment{}, err
		}
		return domain.Comment{}, db.HandleQueryError(err, "create_comment", "comments", start)
	}
	db.MeasureQueryDuration("create_comment", "comments", start)

	return comment, nil
}

// ListForPost returns the post's comments joined to their authors, flat and
// in insertion order. Thread reconstruction from ParentCommentID is the
// presentation layer's job.
func (r *PgCommentRepository) ListForPost(ctx context.Context, postID domain.PostID) ([]domain.CommentWithAuthor, error) {
	start := time.Now()

	rows, err := r.pool.Query(
		ctx,
		`SELECT c.id, c.comment, c.post_id, c.user_id, c.parent_comment_id, c.created_at,
		        u.id, u.username, u.email, u.password
		 FROM comments c
		 JOIN users u ON u.id = c.user_id
		 WHERE c.post_id = $1
		 ORDER BY c.id`,
		int64(postID),
	)
	if err != nil {
		return nil, db.HandleQueryError(err, "list_comments_for_post", "comments", start)
	}
	defer rows.Close()

	var comments []domain.CommentWithAuthor
	for rows.Next() {
		var (
			id, cPostID, cUserID, userID int64
			parent                       *int64
			item                         domain.CommentWithAuthor
		)
		err := rows.Scan(
			&id,
			&item.Comment.Comment,
			&cPostID,
			&cUserID,
			&parent,
			&item.Comment.CreatedAt,
			&userID,
			&item.Author.Username,
			&item.Author.Email,
			&item.Author.PasswordHash,
		)
		if err != nil {
			return nil, db.HandleQueryError(err, "list_comments_for_post", "comments", start)
		}
		item.Comment.ID = domain.CommentID(id)
		item.Comment.PostID = domain.PostID(cPostID)
		item.Comment.UserID = userdomain.ID(cUserID)
		if parent != nil {
			p := domain.CommentID(*parent)
			item.Comment.ParentCommentID = &p
		}
		item.Author.ID = userdomain.ID(userID)
		comments = append(comments, item)
	}
	if rows.Err() != nil {
		return nil, db.HandleQueryError(rows.Err(), "list_comments_for_post", "comments", start)
	}
	db.MeasureQueryDuration("list_comments_for_post", "comments", start)

	return comments, nil
}

func (r *PgCommentRepository) ListByAuthor(ctx context.Context, author userdomain.ID) ([]domain.Comment, error) {
	start := time.Now()

	rows, err := r.pool.Query(
		ctx,
		`SELECT id, comment, post_id, user_id, parent_comment_id, created_at
		 FROM comments
		 WHERE user_id = $1
		 ORDER BY id`,
		int64(author),
	)
	if err != nil {
		return nil, db.HandleQueryError(err, "list_comments_by_author", "comments", start)
	}
	defer rows.Close()

	var comments []domain.Comment
	for rows.Next() {
		var (
			id, postID, userID int64
			parent             *int64
			comment            domain.Comment
		)
		err := rows.Scan(&id, &comment.Comment, &postID, &userID, &parent, &comment.CreatedAt)
		if err != nil {
			return nil, db.HandleQueryError(err, "list_comments_by_author", "comments", start)
		}
		comment.ID = domain.CommentID(id)
		comment.PostID = domain.PostID(postID)
		comment.UserID = userdomain.ID(userID)
		if parent != nil {
			p := domain.CommentID(*parent)
			comment.ParentCommentID = &p
		}
		comments = append(comments, comment)
	}
	if rows.Err() != nil {
		return nil, db.HandleQueryError(rows.Err(), "list_comments_by_author", "comments", start)
	}
	db.MeasureQueryDuration("list_comments_by_author", "comments", start)

	return comments, nil
}
