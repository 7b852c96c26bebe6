package models

import "time"

// Comment references its post by slug; deleting the post leaves comments in place.
type Comment struct {
	ID        string    `json:"id"`
	BlogSlug  string    `json:"blogSlug"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Comment   string    `json:"comment"`
	Approved  bool      `json:"approved"`
	CreatedAt time.Time `json:"createdAt"`
}
