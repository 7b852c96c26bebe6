package handlers

import (
	"fmt"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/FaranAlam/faran-portfolio/internal/config"
	"github.com/FaranAlam/faran-portfolio/internal/middleware"
	"github.com/FaranAlam/faran-portfolio/internal/models"
	"github.com/FaranAlam/faran-portfolio/internal/respond"
)

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	Store    Store
	Auth     AuthService
	Notifier Notifier
	Mail     MailVerifier
	Images   ImageStore

	RateLimits         config.RateLimits
	CorsAllowedOrigins []string
	TrustedProxies     []string
	MaxBodyBytes       int64
	UploadDir          string
	DefaultAuthor      string
}

// route is one entry of the API table. limiter names a rate limiter from
// the limiter set; admin routes require a bearer token.
type route struct {
	method  string
	pattern string
	handler http.HandlerFunc
	limiter string
	admin   bool
}

const (
	limitLogin     = "login"
	limitSubscribe = "subscribe"
	limitContact   = "contact"
	limitComment   = "comment"
)

func apiRoutes(d Deps) []route {
	authH := NewAuthHandler(d.Auth)
	intake := NewIntakeHandler(d.Store, d.Store, d.Notifier)
	blogs := NewBlogsHandler(d.Store, d.Images, d.DefaultAuthor)
	comments := NewCommentsHandler(d.Store, d.Store)
	mod := NewModerationHandler(d.Store, d.Store, d.Store)
	health := NewHealthHandler(d.Store, d.Mail)

	return []route{
		{method: http.MethodGet, pattern: "/health", handler: health.Health},
		{method: http.MethodGet, pattern: "/db-check", handler: health.DBCheck},
		{method: http.MethodGet, pattern: "/smtp-check", handler: health.SMTPCheck},

		{method: http.MethodPost, pattern: "/subscribe", handler: intake.Subscribe, limiter: limitSubscribe},
		{method: http.MethodPost, pattern: "/contact", handler: intake.Contact, limiter: limitContact},

		{method: http.MethodGet, pattern: "/blogs", handler: blogs.ListPublic},
		{method: http.MethodGet, pattern: "/blogs/{slug}", handler: blogs.GetBySlug},
		{method: http.MethodGet, pattern: "/blogs/{slug}/comments", handler: comments.ListForBlog},
		{method: http.MethodPost, pattern: "/blogs/{slug}/comments", handler: comments.Create, limiter: limitComment},

		{method: http.MethodPost, pattern: "/admin/login", handler: authH.Login, limiter: limitLogin},
		{method: http.MethodGet, pattern: "/admin/me", handler: authH.Me, admin: true},
		{method: http.MethodPut, pattern: "/admin/password", handler: authH.ChangePassword, admin: true},
		{method: http.MethodGet, pattern: "/admin/stats", handler: mod.Stats, admin: true},

		{method: http.MethodGet, pattern: "/admin/contacts", handler: mod.ListContacts, admin: true},
		{method: http.MethodPatch, pattern: "/admin/contacts/{id}", handler: mod.UpdateContactStatus, admin: true},
		{method: http.MethodDelete, pattern: "/admin/contacts/{id}", handler: mod.DeleteContact, admin: true},

		{method: http.MethodGet, pattern: "/admin/subscribers", handler: mod.ListSubscribers, admin: true},
		{method: http.MethodDelete, pattern: "/admin/subscribers/{id}", handler: mod.DeleteSubscriber, admin: true},

		{method: http.MethodGet, pattern: "/admin/blogs", handler: blogs.ListAdmin, admin: true},
		{method: http.MethodGet, pattern: "/admin/blogs/{id}", handler: blogs.GetByID, admin: true},
		{method: http.MethodPost, pattern: "/admin/blogs", handler: blogs.Create, admin: true},
		{method: http.MethodPut, pattern: "/admin/blogs/{id}", handler: blogs.Update, admin: true},
		{method: http.MethodDelete, pattern: "/admin/blogs/{id}", handler: blogs.Delete, admin: true},

		{method: http.MethodGet, pattern: "/admin/comments", handler: comments.ListAdmin, admin: true},
		{method: http.MethodDelete, pattern: "/admin/comments/{id}", handler: comments.Delete, admin: true},
	}
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.RealIP(d.TrustedProxies))
	r.Use(middleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(middleware.Recover)
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   d.CorsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}).Handler)
	if d.MaxBodyBytes > 0 {
		r.Use(chimw.RequestSize(d.MaxBodyBytes))
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respond.Error(w, r, fmt.Errorf("route %w", models.ErrNotFound))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respond.ErrorCode(w, http.StatusMethodNotAllowed, respond.CodeMethodNotAllowed, "Method not allowed")
	})

	limiters := map[string]*middleware.RateLimiter{
		limitLogin:     middleware.NewRateLimiter(limitLogin, d.RateLimits.Login),
		limitSubscribe: middleware.NewRateLimiter(limitSubscribe, d.RateLimits.Subscribe),
		limitContact:   middleware.NewRateLimiter(limitContact, d.RateLimits.Contact),
		limitComment:   middleware.NewRateLimiter(limitComment, d.RateLimits.Comment),
	}
	requireAdmin := middleware.Auth(d.Auth)

	for _, rt := range apiRoutes(d) {
		var h http.Handler = rt.handler
		if rt.admin {
			h = requireAdmin(h)
		}
		if rl, ok := limiters[rt.limiter]; ok {
			h = rl.Limit(h)
		}
		r.Method(rt.method, rt.pattern, h)
	}

	if d.UploadDir != "" {
		r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(filesOnly{http.Dir(d.UploadDir)})))
	}
	r.Handle("/metrics", promhttp.Handler())

	return r
}

// filesOnly hides directories so the upload folder cannot be listed.
type filesOnly struct {
	fs http.FileSystem
}

func (f filesOnly) Open(name string) (http.File, error) {
	file, err := f.fs.Open(name)
	if err != nil {
		return nil, err
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}
	if info.IsDir() {
		file.Close()
		return nil, os.ErrNotExist
	}
	return file, nil
}
