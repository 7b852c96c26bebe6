package models

import "time"

const (
	ContactUnread   = "unread"
	ContactRead     = "read"
	ContactReplied  = "replied"
	ContactArchived = "archived"
)

// DefaultContactSubject is used when the sender leaves the subject empty.
const DefaultContactSubject = "New Contact Form Submission"

// ContactStatuses are the states a contact message can be moved between freely.
var ContactStatuses = []string{ContactUnread, ContactRead, ContactReplied, ContactArchived}

type Contact struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	IPAddress string    `json:"ipAddress,omitempty"`
	UserAgent string    `json:"userAgent,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func IsValidContactStatus(status string) bool {
	for _, s := range ContactStatuses {
		if s == status {
			return true
		}
	}
	return false
}
