package handlers

import (
	"context"

	"github.com/FaranAlam/faran-portfolio/internal/auth"
	"github.com/FaranAlam/faran-portfolio/internal/models"
)

// Storage the handlers depend on. *db.Store satisfies all of them.

type SubscriberStore interface {
	CreateSubscriber(ctx context.Context, email string) (*models.Subscriber, error)
	ListSubscribers(ctx context.Context, page models.Page) ([]models.Subscriber, int, error)
	DeleteSubscriber(ctx context.Context, id string) (bool, error)
}

type ContactStore interface {
	CreateContact(ctx context.Context, c models.Contact) (*models.Contact, error)
	ListContacts(ctx context.Context, status string, page models.Page) ([]models.Contact, int, error)
	UpdateContactStatus(ctx context.Context, id, status string) (*models.Contact, error)
	DeleteContact(ctx context.Context, id string) (bool, error)
}

type BlogStore interface {
	CreateBlog(ctx context.Context, b models.Blog) (*models.Blog, error)
	UpdateBlog(ctx context.Context, id string, patch models.BlogPatch) (*models.Blog, error)
	GetBlogByID(ctx context.Context, id string) (*models.Blog, error)
	GetPublishedBlogBySlug(ctx context.Context, slug string) (*models.Blog, error)
	IncrementBlogViews(ctx context.Context, slug string) (*models.Blog, error)
	ListBlogs(ctx context.Context, filter models.BlogFilter, page models.Page) ([]models.Blog, int, error)
	DeleteBlog(ctx context.Context, id string) (*models.Blog, error)
}

type CommentStore interface {
	CreateComment(ctx context.Context, c models.Comment) (*models.Comment, error)
	ListCommentsBySlug(ctx context.Context, slug string, approvedOnly bool, page models.Page) ([]models.Comment, int, error)
	ListComments(ctx context.Context, page models.Page) ([]models.Comment, int, error)
	DeleteComment(ctx context.Context, id string) (bool, error)
}

type StatsStore interface {
	Stats(ctx context.Context) (*models.Stats, error)
}

type Pinger interface {
	Ping(ctx context.Context) error
}

// Store is everything the router needs from persistence.
type Store interface {
	SubscriberStore
	ContactStore
	BlogStore
	CommentStore
	StatsStore
	Pinger
}

// Notifier sends best-effort emails in the background.
type Notifier interface {
	NotifyContact(c models.Contact)
	WelcomeSubscriber(email string)
}

type MailVerifier interface {
	Verify(ctx context.Context) error
}

// ImageStore persists inline blog images.
type ImageStore interface {
	SaveDataURL(dataURL string) (string, error)
	Remove(publicPath string) error
	Owns(publicPath string) bool
}

// AuthService is the admin authentication surface.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*auth.LoginResult, error)
	Authorize(header string) (*auth.Claims, error)
	Admin(ctx context.Context, id string) (*models.Admin, error)
	ChangePassword(ctx context.Context, adminID, current, next string) error
}
