package http

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	authhttp "github.com/hackerclone/hackerclone/internal/auth/http"
	authservice "github.com/hackerclone/hackerclone/internal/auth/service"
	commonhttp "github.com/hackerclone/hackerclone/internal/common/http"
	"github.com/hackerclone/hackerclone/internal/common/logger"
	"github.com/hackerclone/hackerclone/internal/content/domain"
	"github.com/hackerclone/hackerclone/internal/content/service"
)

type submitRequest struct {
	Title string `json:"title"`
	Link  string `json:"link"`
}

type commentRequest struct {
	Comment         string `json:"comment"`
	ParentCommentID *int64 `json:"parent_comment_id,omitempty"`
}

type postResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Link      string    `json:"link"`
	Author    int64     `json:"author"`
	CreatedAt time.Time `json:"created_at"`
}

type feedItemResponse struct {
	Post   postResponse `json:"post"`
	Author string       `json:"author"`
}

type commentResponse struct {
	ID              int64     `json:"id"`
	Comment         string    `json:"comment"`
	PostID          int64     `json:"post_id"`
	UserID          int64     `json:"user_id"`
	ParentCommentID *int64    `json:"parent_comment_id"`
	CreatedAt       time.Time `json:"created_at"`
}

type commentWithAuthorResponse struct {
	commentResponse
	Author string `json:"author"`
}

type postPageResponse struct {
	Post     postResponse                `json:"post"`
	Author   string                      `json:"author"`
	Comments []commentWithAuthorResponse `json:"comments"`
}

type profileResponse struct {
	Username string            `json:"username"`
	Posts    []postResponse    `json:"posts"`
	Comments []commentResponse `json:"comments"`
}

type Handler struct {
	content        *service.ContentService
	auth           *authservice.AuthService
	log            *logger.Logger
	requestTimeout time.Duration
}

func NewHandler(content *service.ContentService, auth *authservice.AuthService, requestTimeout time.Duration, log *logger.Logger) *Handler {
	return &Handler{content: content, auth: auth, log: log, requestTimeout: requestTimeout}
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/", h.feed)
	mux.HandleFunc("/submission", h.submit)
	mux.HandleFunc("/post/", h.post)
	mux.HandleFunc("/user/", h.profile)
}

func (h *Handler) feed(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		commonhttp.WriteErrorEnvelope(w, http.StatusNotFound, commonhttp.CodeInvalidPath, "not found")
		return
	}
	if r.Method != http.MethodGet {
		commonhttp.WriteErrorEnvelope(w, http.StatusMethodNotAllowed, commonhttp.CodeMethodNotAllowed, "method not allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	feed, err := h.content.Feed(ctx)
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	items := make([]feedItemResponse, 0, len(feed))
	for _, item := range feed {
		items = append(items, feedItemResponse{
			Post:   toPostResponse(item.Post),
			Author: item.Author,
		})
	}
	commonhttp.WriteJSON(w, http.StatusOK, items)
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		commonhttp.WriteErrorEnvelope(w, http.StatusMethodNotAllowed, commonhttp.CodeMethodNotAllowed, "method not allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	user, err := h.auth.Authorize(ctx, authhttp.SessionToken(r))
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	var req submitRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("submit failed: invalid json: %v", err)
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeInvalidJSON, "invalid json")
		return
	}

	post, err := h.content.SubmitPost(ctx, user, service.SubmitPostInput{
		Title: req.Title,
		Link:  req.Link,
	})
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusCreated, toPostResponse(post))
}

// post serves GET /post/{id} (the post page) and POST /post/{id} (add a
// comment), mirroring the submission/comment flow of the site.
func (h *Handler) post(w http.ResponseWriter, r *http.Request) {
	idStr := strings.TrimPrefix(r.URL.Path, "/post/")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeInvalidPath, "invalid post id")
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.postPage(w, r, domain.PostID(id))
	case http.MethodPost:
		h.comment(w, r, domain.PostID(id))
	default:
		commonhttp.WriteErrorEnvelope(w, http.StatusMethodNotAllowed, commonhttp.CodeMethodNotAllowed, "method not allowed")
	}
}

func (h *Handler) postPage(w http.ResponseWriter, r *http.Request, id domain.PostID) {
	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	page, err := h.content.GetPostPage(ctx, id)
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	comments := make([]commentWithAuthorResponse, 0, len(page.Comments))
	for _, c := range page.Comments {
		comments = append(comments, commentWithAuthorResponse{
			commentResponse: toCommentResponse(c.Comment),
			Author:          c.Author.Username,
		})
	}

	commonhttp.WriteJSON(w, http.StatusOK, postPageResponse{
		Post:     toPostResponse(page.Post),
		Author:   page.Author.Username,
		Comments: comments,
	})
}

func (h *Handler) comment(w http.ResponseWriter, r *http.Request, id domain.PostID) {
	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	user, err := h.auth.Authorize(ctx, authhttp.SessionToken(r))
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	var req commentRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("comment failed: invalid json: %v", err)
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeInvalidJSON, "invalid json")
		return
	}

	var parentID *domain.CommentID
	if req.ParentCommentID != nil {
		p := domain.CommentID(*req.ParentCommentID)
		parentID = &p
	}

	comment, err := h.content.AddComment(ctx, user, id, service.CommentInput{
		Text:            req.Comment,
		ParentCommentID: parentID,
	})
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusCreated, toCommentResponse(comment))
}

func (h *Handler) profile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		commonhttp.WriteErrorEnvelope(w, http.StatusMethodNotAllowed, commonhttp.CodeMethodNotAllowed, "method not allowed")
		return
	}

	username := strings.TrimPrefix(r.URL.Path, "/user/")
	if username == "" || strings.Contains(username, "/") {
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeInvalidPath, "invalid username")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	profile, err := h.content.GetProfile(ctx, username)
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	posts := make([]postResponse, 0, len(profile.Posts))
	for _, p := range profile.Posts {
		posts = append(posts, toPostResponse(p))
	}
	comments := make([]commentResponse, 0, len(profile.Comments))
	for _, c := range profile.Comments {
		comments = append(comments, toCommentResponse(c))
	}

	commonhttp.WriteJSON(w, http.StatusOK, profileResponse{
		Username: profile.User.Username,
		Posts:    posts,
		Comments: comments,
	})
}

func toPostResponse(post domain.Post) postResponse {
	return postResponse{
		ID:        int64(post.ID),
		Title:     post.Title,
		Link:      post.Link,
		Author:    int64(post.Author),
		CreatedAt: post.CreatedAt,
	}
}

func toCommentResponse(comment domain.Comment) commentResponse {
	var parent *int64
	if comment.ParentCommentID != nil {
		p := int64(*comment.ParentCommentID)
		parent = &p
	}
	return commentResponse{
		ID:              int64(comment.ID),
		Comment:         comment.Comment,
		PostID:          int64(comment.PostID),
		UserID:          int64(comment.UserID),
		ParentCommentID: parent,
		CreatedAt:       comment.CreatedAt,
	}
}
