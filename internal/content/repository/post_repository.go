package repository

import (
	"context"
	"errors"
	"time"

	pgx "github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/hackerclone/hackerclone/internal/common/db"
	commonerrors "github.com/hackerclone/hackerclone/internal/common/errors"
	"github.com/hackerclone/hackerclone/internal/content/domain"
	userdomain "github.com/hackerclone/hackerclone/internal/user/domain"
)

type PostRepository interface {
	Create(ctx context.Context, title, link string, author userdomain.ID, createdAt time.Time) (domain.Post, error)
	FindByID(ctx context.Context, id domain.PostID) (domain.Post, error)
	ListWithAuthors(ctx context.Context) ([]domain.PostWithAuthor, error)
	ListByAuthor(ctx context.Context, author userdomain.ID) ([]domain.Post, error)
}

var ErrPostNotFound = commonerrors.ErrNotFound

type PgPostRepository struct {
	pool *pgxpool.Pool
}

func NewPgPostRepository(pool *pgxpool.Pool) *PgPostRepository {
	return &PgPostRepository{pool: pool}
}

func (r *PgPostRepository) Create(ctx context.Context, title, link string, author userdomain.ID, createdAt time.Time) (domain.Post, error) {
	start := time.Now()

	row := r.pool.QueryRow(
		ctx,
		`INSERT INTO posts (title, link, author, created_at) VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		title,
		link,
		int64(author),
		createdAt,
	)

	var id int64
	if err := row.Scan(&id); err != nil {
		return domain.Post{}, db.HandleQueryError(err, "create_post", "posts", start)
	}
	db.MeasureQueryDuration("create_post", "posts", start)

	return domain.Post{
		ID:        domain.PostID(id),
		Title:     title,
		Link:      link,
		Author:    author,
		CreatedAt: createdAt,
	}, nil
}

func (r *PgPostRepository) FindByID(ctx context.Context, id domain.PostID) (domain.Post, error) {
	start := time.Now()

	row := r.pool.QueryRow(
		ctx,
		`SELECT id, title, link, author, created_at FROM posts WHERE id = $1`,
		int64(id),
	)

	post, err := scanPost(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			db.MeasureQueryDuration("find_post", "posts", start)
			return domain.Post{}, ErrPostNotFound
		}
		return domain.Post{}, db.HandleQueryError(err, "find_post", "posts", start)
	}
	db.MeasureQueryDuration("find_post", "posts", start)

	return post, nil
}

// ListWithAuthors returns the front feed: one row per post joined to its
// author, in primary-key order. Never re-sorted here.
func (r *PgPostRepository) ListWithAuthors(ctx context.Context) ([]domain.PostWithAuthor, error) {
	start := time.Now()

	rows, err := r.pool.Query(
		ctx,
		`SELECT p.id, p.title, p.link, p.author, p.created_at,
		        u.id, u.username, u.email, u.password
		 FROM posts p
		 JOIN users u ON u.id = p.author
		 ORDER BY p.id`,
	)
	if err != nil {
		return nil, db.HandleQueryError(err, "list_posts_with_authors", "posts", start)
	}
	defer rows.Close()

	var feed []domain.PostWithAuthor
	for rows.Next() {
		var (
			postID, authorID, userID int64
			item                     domain.PostWithAuthor
		)
		err := rows.Scan(
			&postID,
			&item.Post.Title,
			&item.Post.Link,
			&authorID,
			&item.Post.CreatedAt,
			&userID,
			&item.Author.Username,
			&item.Author.Email,
			&item.Author.PasswordHash,
		)
		if err != nil {
			return nil, db.HandleQueryError(err, "list_posts_with_authors", "posts", start)
		}
		item.Post.ID = domain.PostID(postID)
		item.Post.Author = userdomain.ID(authorID)
		item.Author.ID = userdomain.ID(userID)
		feed = append(feed, item)
	}
	if rows.Err() != nil {
		return nil, db.HandleQueryError(rows.Err(), "list_posts_with_authors", "posts", start)
	}
	db.MeasureQueryDuration("list_posts_with_authors", "posts", start)

	return feed, nil
}

func (r *PgPostRepository) ListByAuthor(ctx context.Context, author userdomain.ID) ([]domain.Post, error) {
	start := time.Now()

	rows, err := r.pool.Query(
		ctx,
		`SELECT id, title, link, author, created_at FROM posts WHERE author = $1 ORDER BY id`,
		int64(author),
	)
	if err != nil {
		return nil, db.HandleQueryError(err, "list_posts_by_author", "posts", start)
	}
	defer rows.Close()

	var posts []domain.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, db.HandleQueryError(err, "list_posts_by_author", "posts", start)
		}
		posts = append(posts, post)
	}
	if rows.Err() != nil {
		return nil, db.HandleQueryError(rows.Err(), "list_posts_by_author", "posts", start)
	}
	db.MeasureQueryDuration("list_posts_by_author", "posts", start)

	return posts, nil
}

func scanPost(row pgx.Row) (domain.Post, error) {
	var (
		id, author int64
		post       domain.Post
	)
	err := row.Scan(&id, &post.Title, &post.Link, &author, &post.CreatedAt)
	if err != nil {
		return domain.Post{}, err
	}
	post.ID = domain.PostID(id)
	post.Author = userdomain.ID(author)
	return post, nil
}
