package handlers_test

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/FaranAlam/faran-portfolio/internal/models"
)

// memStore is an in-memory handlers.Store. Slices keep insertion order;
// listings return newest first like the database does.
type memStore struct {
	mu          sync.Mutex
	subscribers []models.Subscriber
	contacts    []models.Contact
	blogs       []models.Blog
	comments    []models.Comment
	pingErr     error
	contactErr  error
}

func newMemStore() *memStore {
	return &memStore{}
}

func page[T any](items []T, p models.Page) []T {
	out := make([]T, len(items))
	copy(out, items)
	slices.Reverse(out)
	start := min(p.Offset(), len(out))
	end := min(start+p.Limit, len(out))
	return out[start:end]
}

func (m *memStore) CreateSubscriber(_ context.Context, email string) (*models.Subscriber, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.subscribers {
		if s.Email == email {
			return nil, models.ErrAlreadySubscribed
		}
	}
	sub := models.Subscriber{ID: uuid.NewString(), Email: email, SubscribedAt: time.Now()}
	m.subscribers = append(m.subscribers, sub)
	return &sub, nil
}

func (m *memStore) ListSubscribers(_ context.Context, p models.Page) ([]models.Subscriber, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return page(m.subscribers, p), len(m.subscribers), nil
}

func (m *memStore) DeleteSubscriber(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := len(m.subscribers)
	m.subscribers = slices.DeleteFunc(m.subscribers, func(s models.Subscriber) bool { return s.ID == id })
	return len(m.subscribers) < n, nil
}

func (m *memStore) CreateContact(_ context.Context, c models.Contact) (*models.Contact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.contactErr != nil {
		return nil, m.contactErr
	}
	c.ID = uuid.NewString()
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	m.contacts = append(m.contacts, c)
	return &c, nil
}

func (m *memStore) ListContacts(_ context.Context, status string, p models.Page) ([]models.Contact, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var matched []models.Contact
	for _, c := range m.contacts {
		if status == "" || c.Status == status {
			matched = append(matched, c)
		}
	}
	return page(matched, p), len(matched), nil
}

func (m *memStore) UpdateContactStatus(_ context.Context, id, status string) (*models.Contact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.contacts {
		if m.contacts[i].ID == id {
			m.contacts[i].Status = status
			c := m.contacts[i]
			return &c, nil
		}
	}
	return nil, nil
}

func (m *memStore) DeleteContact(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := len(m.contacts)
	m.contacts = slices.DeleteFunc(m.contacts, func(c models.Contact) bool { return c.ID == id })
	return len(m.contacts) < n, nil
}

func (m *memStore) CreateBlog(_ context.Context, b models.Blog) (*models.Blog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b.ID = uuid.NewString()
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	m.blogs = append(m.blogs, b)
	return &b, nil
}

func (m *memStore) UpdateBlog(_ context.Context, id string, patch models.BlogPatch) (*models.Blog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.blogs {
		if m.blogs[i].ID == id {
			patch.Apply(&m.blogs[i])
			b := m.blogs[i]
			return &b, nil
		}
	}
	return nil, nil
}

func (m *memStore) find(match func(models.Blog) bool) *models.Blog {
	for i := range m.blogs {
		if match(m.blogs[i]) {
			b := m.blogs[i]
			return &b
		}
	}
	return nil
}

func (m *memStore) GetBlogByID(_ context.Context, id string) (*models.Blog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.find(func(b models.Blog) bool { return b.ID == id }), nil
}

func (m *memStore) GetPublishedBlogBySlug(_ context.Context, slug string) (*models.Blog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.find(func(b models.Blog) bool { return b.Slug == slug && b.Published }), nil
}

func (m *memStore) IncrementBlogViews(_ context.Context, slug string) (*models.Blog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.blogs {
		if m.blogs[i].Slug == slug && m.blogs[i].Published {
			m.blogs[i].Views++
			b := m.blogs[i]
			return &b, nil
		}
	}
	return nil, nil
}

func (m *memStore) ListBlogs(_ context.Context, filter models.BlogFilter, p models.Page) ([]models.Blog, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var matched []models.Blog
	for _, b := range m.blogs {
		if filter.PublishedOnly && !b.Published {
			continue
		}
		if filter.Category != "" && b.Category != filter.Category {
			continue
		}
		if filter.Tag != "" && !slices.Contains(b.Tags, filter.Tag) {
			continue
		}
		if filter.Featured != nil && b.Featured != *filter.Featured {
			continue
		}
		matched = append(matched, b)
	}
	return page(matched, p), len(matched), nil
}

func (m *memStore) DeleteBlog(_ context.Context, id string) (*models.Blog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	deleted := m.find(func(b models.Blog) bool { return b.ID == id })
	if deleted == nil {
		return nil, nil
	}
	m.blogs = slices.DeleteFunc(m.blogs, func(b models.Blog) bool { return b.ID == id })
	return deleted, nil
}

func (m *memStore) CreateComment(_ context.Context, c models.Comment) (*models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c.ID = uuid.NewString()
	c.Approved = true
	c.CreatedAt = time.Now()
	m.comments = append(m.comments, c)
	return &c, nil
}

func (m *memStore) ListCommentsBySlug(_ context.Context, slug string, approvedOnly bool, p models.Page) ([]models.Comment, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var matched []models.Comment
	for _, c := range m.comments {
		if c.BlogSlug == slug && (c.Approved || !approvedOnly) {
			matched = append(matched, c)
		}
	}
	return page(matched, p), len(matched), nil
}

func (m *memStore) ListComments(_ context.Context, p models.Page) ([]models.Comment, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return page(m.comments, p), len(m.comments), nil
}

func (m *memStore) DeleteComment(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := len(m.comments)
	m.comments = slices.DeleteFunc(m.comments, func(c models.Comment) bool { return c.ID == id })
	return len(m.comments) < n, nil
}

func (m *memStore) Stats(context.Context) (*models.Stats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	unread := 0
	for _, c := range m.contacts {
		if c.Status == models.ContactUnread {
			unread++
		}
	}
	return &models.Stats{
		TotalContacts:    len(m.contacts),
		UnreadContacts:   unread,
		TotalSubscribers: len(m.subscribers),
		TotalBlogs:       len(m.blogs),
		TotalComments:    len(m.comments),
	}, nil
}

func (m *memStore) Ping(context.Context) error {
	return m.pingErr
}

// memAdmins backs the real auth.Service in router tests.
type memAdmins struct {
	mu     sync.Mutex
	admins map[string]*models.Admin
}

func newMemAdmins() *memAdmins {
	return &memAdmins{admins: make(map[string]*models.Admin)}
}

func (m *memAdmins) GetAdminByEmail(_ context.Context, email string) (*models.Admin, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.admins {
		if a.Email == email {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memAdmins) GetAdminByID(_ context.Context, id string) (*models.Admin, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.admins[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, nil
}

func (m *memAdmins) CountAdmins(context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.admins), nil
}

func (m *memAdmins) CreateAdmin(_ context.Context, admin models.Admin) (*models.Admin, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	admin.ID = uuid.NewString()
	admin.CreatedAt = time.Now()
	m.admins[admin.ID] = &admin
	cp := admin
	return &cp, nil
}

func (m *memAdmins) TouchLastLogin(_ context.Context, id string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.admins[id]; ok {
		a.LastLogin = &at
	}
	return nil
}

func (m *memAdmins) UpdateAdminPassword(_ context.Context, id, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.admins[id]
	if !ok {
		return models.ErrNotFound
	}
	a.PasswordHash = hash
	return nil
}

type notifierRecorder struct {
	mu       sync.Mutex
	contacts []models.Contact
	welcomes []string
}

func (n *notifierRecorder) NotifyContact(c models.Contact) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.contacts = append(n.contacts, c)
}

func (n *notifierRecorder) WelcomeSubscriber(email string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.welcomes = append(n.welcomes, email)
}

type stubVerifier struct {
	err error
}

func (s stubVerifier) Verify(context.Context) error {
	return s.err
}

// memImages pretends to write data URLs under /uploads/.
type memImages struct {
	mu          sync.Mutex
	saved       []string
	removed     []string
	panicOnSave bool
}

func (m *memImages) SaveDataURL(string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.panicOnSave {
		panic("image encoder crashed")
	}
	path := "/uploads/blog-" + uuid.NewString()[:8] + ".png"
	m.saved = append(m.saved, path)
	return path, nil
}

func (m *memImages) Remove(publicPath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.removed = append(m.removed, publicPath)
	return nil
}

func (m *memImages) Owns(publicPath string) bool {
	return strings.HasPrefix(publicPath, "/uploads/")
}
