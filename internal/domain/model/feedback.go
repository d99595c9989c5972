//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import "time"

// ReviewStatus is the moderation state of a product review.
type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "pending"
	ReviewApproved ReviewStatus = "approved"
	ReviewRejected ReviewStatus = "rejected"
)

// ReviewStatuses lists review statuses in display order.
var ReviewStatuses = []ReviewStatus{ReviewPending, ReviewApproved, ReviewRejected}

// Review is a customer product review awaiting or past moderation.
type Review struct {
	Ref
	Product NamedRef     `json:"productId"`
	Name    string       `json:"name"`
	Email   string       `json:"email"`
	Rating  Number       `json:"rating"`
	Comment string       `json:"comment"`
	Status  ReviewStatus `json:"status"`
}

// ContactStatus is the triage state of a contact-form message.
type ContactStatus string

const (
	ContactNew      ContactStatus = "new"
	ContactRead     ContactStatus = "read"
	ContactReplied  ContactStatus = "replied"
	ContactArchived ContactStatus = "archived"
)

// ContactStatuses lists contact statuses in display order.
var ContactStatuses = []ContactStatus{ContactNew, ContactRead, ContactReplied, ContactArchived}

// Valid reports whether s is a known contact status.
func (s ContactStatus) Valid() bool {
	for _, known := range ContactStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// ContactMessage is a message submitted through the storefront contact form.
type ContactMessage struct {
	Ref
	Name         string        `json:"name"`
	Email        string        `json:"email"`
	Phone        string        `json:"phone"`
	Subject      string        `json:"subject"`
	Message      string        `json:"message"`
	Status       ContactStatus `json:"status"`
	ReplyMessage string        `json:"replyMessage,omitempty"`
	RepliedAt    *time.Time    `json:"repliedAt,omitempty"`
	CreatedAt    time.Time     `json:"createdAt"`
}

// ContactStatusUpdate is the payload for PATCH /contact-messages/{id}/status.
type ContactStatusUpdate struct {
	Status       ContactStatus `json:"status"`
	ReplyMessage string        `json:"replyMessage,omitempty"`
}
