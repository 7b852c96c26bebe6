package models

import "math"

const MaxPageLimit = 100

// Page is a 1-based page request.
type Page struct {
	Page  int
	Limit int
}

// NewPage clamps page and limit into a usable range. The offset of the
// returned page always fits in an int32.
func NewPage(page, limit, defaultLimit int) Page {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = max(defaultLimit, 1)
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	if maxPage := math.MaxInt32/limit + 1; page > maxPage {
		page = maxPage
	}
	return Page{Page: page, Limit: limit}
}

func (p Page) Offset() int {
	return (p.Page - 1) * p.Limit
}

type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

func (p Page) Paginate(total int) Pagination {
	pages := 0
	if p.Limit > 0 {
		pages = (total + p.Limit - 1) / p.Limit
	}
	return Pagination{Page: p.Page, Limit: p.Limit, Total: total, Pages: pages}
}

// Stats are the dashboard counters, computed live on each request.
type Stats struct {
	TotalContacts    int `json:"totalContacts"`
	UnreadContacts   int `json:"unreadContacts"`
	TotalSubscribers int `json:"totalSubscribers"`
	TotalBlogs       int `json:"totalBlogs"`
	TotalComments    int `json:"totalComments"`
}
