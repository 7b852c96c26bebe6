package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/FaranAlam/faran-portfolio/internal/logging"
	"github.com/FaranAlam/faran-portfolio/internal/models"
	"github.com/FaranAlam/faran-portfolio/internal/respond"
	"github.com/FaranAlam/faran-portfolio/internal/uploads"
	"github.com/FaranAlam/faran-portfolio/internal/validate"
)

var errBlogNotFound = fmt.Errorf("blog %w", models.ErrNotFound)

type BlogsHandler struct {
	store         BlogStore
	images        ImageStore
	defaultAuthor string
	now           func() time.Time
}

func NewBlogsHandler(store BlogStore, images ImageStore, defaultAuthor string) *BlogsHandler {
	if defaultAuthor == "" {
		defaultAuthor = "Admin"
	}
	return &BlogsHandler{store: store, images: images, defaultAuthor: defaultAuthor, now: time.Now}
}

type blogsResponse struct {
	Blogs      []models.Blog     `json:"blogs"`
	Pagination models.Pagination `json:"pagination"`
}

type blogResponse struct {
	Message string       `json:"message,omitempty"`
	Blog    *models.Blog `json:"blog"`
}

// ListPublic lists published posts, optionally filtered by category, tag or
// featured flag.
func (h *BlogsHandler) ListPublic(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.BlogFilter{
		PublishedOnly: true,
		Category:      q.Get("category"),
		Tag:           q.Get("tag"),
	}
	if v := q.Get("featured"); v != "" {
		if featured, err := strconv.ParseBool(v); err == nil {
			filter.Featured = &featured
		}
	}
	h.list(w, r, filter)
}

// ListAdmin lists every post, drafts included.
func (h *BlogsHandler) ListAdmin(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, models.BlogFilter{})
}

func (h *BlogsHandler) list(w http.ResponseWriter, r *http.Request, filter models.BlogFilter) {
	page := pageFromQuery(r, 10)
	blogs, total, err := h.store.ListBlogs(r.Context(), filter, page)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, blogsResponse{Blogs: blogs, Pagination: page.Paginate(total)})
}

// GetBySlug returns a published post and counts the view.
func (h *BlogsHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	blog, err := h.store.IncrementBlogViews(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	if blog == nil {
		respond.Error(w, r, errBlogNotFound)
		return
	}
	respond.JSON(w, http.StatusOK, blogResponse{Blog: blog})
}

func (h *BlogsHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	blog, err := h.store.GetBlogByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	if blog == nil {
		respond.Error(w, r, errBlogNotFound)
		return
	}
	respond.JSON(w, http.StatusOK, blogResponse{Blog: blog})
}

func (h *BlogsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in validate.BlogInput
	if err := decodeJSON(r, &in); err != nil {
		respond.Error(w, r, err)
		return
	}
	in.Normalize()
	if err := in.ValidateCreate(); err != nil {
		respond.Error(w, r, err)
		return
	}
	uploaded, err := h.storeImage(&in)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	blog := models.Blog{
		Author:    h.defaultAuthor,
		ImageAlt:  models.DefaultBlogImageAlt,
		Category:  models.DefaultBlogCategory,
		Published: true,
		Tags:      []string{},
	}
	in.Patch().Apply(&blog)
	h.applyDefaults(&blog)
	blog.Slug = models.NewSlug(blog.Title, h.now())

	created, err := h.store.CreateBlog(r.Context(), blog)
	if err != nil {
		h.discardImage(uploaded)
		respond.Error(w, r, err)
		return
	}
	logging.Info().Str("blog_id", created.ID).Str("slug", created.Slug).Msg("blog created")
	respond.JSON(w, http.StatusCreated, blogResponse{Message: "Blog created successfully", Blog: created})
}

// Update applies a partial update. A replaced uploaded image is removed.
func (h *BlogsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var in validate.BlogInput
	if err := decodeJSON(r, &in); err != nil {
		respond.Error(w, r, err)
		return
	}
	in.Normalize()
	if err := in.ValidateUpdate(); err != nil {
		respond.Error(w, r, err)
		return
	}

	existing, err := h.store.GetBlogByID(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	if existing == nil {
		respond.Error(w, r, errBlogNotFound)
		return
	}
	uploaded, err := h.storeImage(&in)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	patch := in.Patch()
	for _, field := range []**string{&patch.Author, &patch.ImageAlt, &patch.Category} {
		if *field != nil && **field == "" {
			*field = nil
		}
	}

	updated, err := h.store.UpdateBlog(r.Context(), id, patch)
	if err != nil || updated == nil {
		h.discardImage(uploaded)
		if err == nil {
			err = errBlogNotFound
		}
		respond.Error(w, r, err)
		return
	}
	if existing.Image != updated.Image {
		h.discardImage(existing.Image)
	}
	logging.Info().Str("blog_id", updated.ID).Msg("blog updated")
	respond.JSON(w, http.StatusOK, blogResponse{Message: "Blog updated successfully", Blog: updated})
}

// Delete removes the post and, best effort, its uploaded image.
func (h *BlogsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.store.DeleteBlog(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	if deleted == nil {
		respond.Error(w, r, errBlogNotFound)
		return
	}
	h.discardImage(deleted.Image)
	logging.Info().Str("blog_id", deleted.ID).Msg("blog deleted")
	respond.Message(w, http.StatusOK, "Blog deleted successfully")
}

// storeImage swaps an inline data URL for the path of the written file and
// returns that path, or "" when nothing was written.
func (h *BlogsHandler) storeImage(in *validate.BlogInput) (string, error) {
	if in.Image == nil || !uploads.IsDataURL(*in.Image) {
		return "", nil
	}
	path, err := h.images.SaveDataURL(*in.Image)
	if err != nil {
		return "", err
	}
	in.Image = &path
	return path, nil
}

func (h *BlogsHandler) discardImage(publicPath string) {
	if publicPath == "" || !h.images.Owns(publicPath) {
		return
	}
	if err := h.images.Remove(publicPath); err != nil {
		logging.Warn().Err(err).Str("image", publicPath).Msg("failed to remove blog image")
	}
}

func (h *BlogsHandler) applyDefaults(b *models.Blog) {
	if b.Author == "" {
		b.Author = h.defaultAuthor
	}
	if b.ImageAlt == "" {
		b.ImageAlt = models.DefaultBlogImageAlt
	}
	if b.Category == "" {
		b.Category = models.DefaultBlogCategory
	}
}
