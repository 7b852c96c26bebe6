package handlers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/FaranAlam/faran-portfolio/internal/logging"
	"github.com/FaranAlam/faran-portfolio/internal/metrics"
	"github.com/FaranAlam/faran-portfolio/internal/models"
	"github.com/FaranAlam/faran-portfolio/internal/respond"
	"github.com/FaranAlam/faran-portfolio/internal/validate"
)

var errCommentNotFound = fmt.Errorf("comment %w", models.ErrNotFound)

type CommentsHandler struct {
	blogs    BlogStore
	comments CommentStore
}

func NewCommentsHandler(blogs BlogStore, comments CommentStore) *CommentsHandler {
	return &CommentsHandler{blogs: blogs, comments: comments}
}

type commentsResponse struct {
	Comments   []models.Comment  `json:"comments"`
	Pagination models.Pagination `json:"pagination"`
}

// ListForBlog returns approved comments of one post. Commenter emails are
// not exposed publicly.
func (h *CommentsHandler) ListForBlog(w http.ResponseWriter, r *http.Request) {
	page := pageFromQuery(r, 20)
	comments, total, err := h.comments.ListCommentsBySlug(r.Context(), chi.URLParam(r, "slug"), true, page)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	for i := range comments {
		comments[i].Email = ""
	}
	respond.JSON(w, http.StatusOK, commentsResponse{Comments: comments, Pagination: page.Paginate(total)})
}

// Create adds a comment to a published post. Comments are approved on arrival.
func (h *CommentsHandler) Create(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	var in validate.CommentInput
	if err := decodeJSON(r, &in); err != nil {
		respond.Error(w, r, err)
		return
	}
	in.Sanitize()
	if err := in.Validate(); err != nil {
		metrics.CommentsTotal.WithLabelValues(metrics.ResultInvalid).Inc()
		respond.Error(w, r, err)
		return
	}

	blog, err := h.blogs.GetPublishedBlogBySlug(r.Context(), slug)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	if blog == nil {
		respond.Error(w, r, errBlogNotFound)
		return
	}

	comment, err := h.comments.CreateComment(r.Context(), models.Comment{
		BlogSlug: blog.Slug,
		Name:     in.Name,
		Email:    in.Email,
		Comment:  in.Comment,
	})
	if err != nil {
		metrics.CommentsTotal.WithLabelValues(metrics.ResultFailure).Inc()
		respond.Error(w, r, err)
		return
	}
	metrics.CommentsTotal.WithLabelValues(metrics.ResultSuccess).Inc()
	logging.Info().Str("comment_id", comment.ID).Str("slug", blog.Slug).Msg("comment added")

	comment.Email = ""
	respond.JSON(w, http.StatusCreated, map[string]any{
		"message": "Comment added successfully",
		"comment": comment,
	})
}

func (h *CommentsHandler) ListAdmin(w http.ResponseWriter, r *http.Request) {
	page := pageFromQuery(r, 20)
	comments, total, err := h.comments.ListComments(r.Context(), page)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, commentsResponse{Comments: comments, Pagination: page.Paginate(total)})
}

func (h *CommentsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ok, err := h.comments.DeleteComment(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	if !ok {
		respond.Error(w, r, errCommentNotFound)
		return
	}
	respond.Message(w, http.StatusOK, "Comment deleted successfully")
}
