package forms

import (
	"net/mail"
	"slices"
	"strings"

	"github.com/target/shop-admin/internal/domain/model"
)

// UserDraft is the editable form of a user account. Password is never
// prefilled; on edit a blank password leaves it unchanged.
type UserDraft struct {
	noUploads
	Name     string
	Email    string
	Password string
	Phone    string
	Address  string
	Role     string

	editing bool
}

// UserPayload is the create/update body for /users.
type UserPayload struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Role     string `json:"role,omitempty"`
}

// NewUserDraft copies u, or returns the empty template when u is nil.
func NewUserDraft(u *model.User) *UserDraft {
	if u == nil {
		return &UserDraft{}
	}
	return &UserDraft{
		Name:    u.Name,
		Email:   u.Email,
		Phone:   u.Phone,
		Address: u.Address,
		Role:    u.Role,
		editing: true,
	}
}

// Editing reports whether the draft edits an existing account.
func (d *UserDraft) Editing() bool { return d.editing }

// PasswordHelp is the hint under the password input.
func (d *UserDraft) PasswordHelp() string {
	if d.editing {
		return "در صورت خالی گذاشتن، بدون تغییر می‌ماند"
	}
	return ""
}

// Validate implements Draft.
func (d *UserDraft) Validate() FieldErrors {
	errs := FieldErrors{}
	errs.required("email", d.Email)
	if email := strings.TrimSpace(d.Email); email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			errs["email"] = MsgEmail
		}
	}
	if !d.editing {
		errs.required("password", d.Password)
	}
	if role := strings.TrimSpace(d.Role); role != "" {
		errs.choice("role", slices.Contains(model.UserRoles, role))
	}
	return errs
}

// Normalize builds the request payload. An empty password is omitted.
func (d *UserDraft) Normalize() UserPayload {
	return UserPayload{
		Name:     strings.TrimSpace(d.Name),
		Email:    strings.TrimSpace(d.Email),
		Password: d.Password,
		Phone:    strings.TrimSpace(d.Phone),
		Address:  strings.TrimSpace(d.Address),
		Role:     strings.TrimSpace(d.Role),
	}
}

// NotificationDraft is the "send message to user" form.
type NotificationDraft struct {
	noUploads
	UserID     string
	Title      string
	Message    string
	Type       string
	ActionLink string
}

// NewNotificationDraft starts a message to u.
func NewNotificationDraft(u *model.User) *NotificationDraft {
	d := &NotificationDraft{Type: string(model.NotificationCustom)}
	if u != nil {
		d.UserID = u.Key()
	}
	return d
}

// Validate implements Draft.
func (d *NotificationDraft) Validate() FieldErrors {
	errs := FieldErrors{}
	errs.required("title", d.Title)
	errs.required("message", d.Message)
	_, ok := model.ParseNotificationType(d.Type)
	errs.choice("type", ok)
	return errs
}

// Normalize builds the request payload.
func (d *NotificationDraft) Normalize() model.Notification {
	t, _ := model.ParseNotificationType(d.Type)
	return model.Notification{
		Title:      strings.TrimSpace(d.Title),
		Message:    strings.TrimSpace(d.Message),
		Type:       t,
		ActionLink: strings.TrimSpace(d.ActionLink),
	}
}

// ContactReplyDraft changes a contact message's status, with an optional reply.
type ContactReplyDraft struct {
	noUploads
	Status       string
	ReplyMessage string
}

// NewContactReplyDraft starts from the message's current state.
func NewContactReplyDraft(m *model.ContactMessage) *ContactReplyDraft {
	if m == nil {
		return &ContactReplyDraft{Status: string(model.ContactRead)}
	}
	return &ContactReplyDraft{Status: string(m.Status), ReplyMessage: m.ReplyMessage}
}

// Validate implements Draft. Marking a message replied requires the reply text.
func (d *ContactReplyDraft) Validate() FieldErrors {
	errs := FieldErrors{}
	status := model.ContactStatus(strings.TrimSpace(d.Status))
	errs.choice("status", status.Valid())
	if status == model.ContactReplied {
		errs.required("replyMessage", d.ReplyMessage)
	}
	return errs
}

// Normalize builds the request payload.
func (d *ContactReplyDraft) Normalize() model.ContactStatusUpdate {
	return model.ContactStatusUpdate{
		Status:       model.ContactStatus(strings.TrimSpace(d.Status)),
		ReplyMessage: strings.TrimSpace(d.ReplyMessage),
	}
}

// ReviewModerationDraft sets a review's moderation status.
type ReviewModerationDraft struct {
	noUploads
	Status string
}

// ReviewModerationPayload is the update body for /reviews/{id}.
type ReviewModerationPayload struct {
	Status model.ReviewStatus `json:"status"`
}

// NewReviewModerationDraft starts from the review's current status.
func NewReviewModerationDraft(r *model.Review) *ReviewModerationDraft {
	if r == nil {
		return &ReviewModerationDraft{Status: string(model.ReviewPending)}
	}
	return &ReviewModerationDraft{Status: string(r.Status)}
}

// Validate implements Draft.
func (d *ReviewModerationDraft) Validate() FieldErrors {
	errs := FieldErrors{}
	errs.choice("status", slices.Contains(model.ReviewStatuses, model.ReviewStatus(strings.TrimSpace(d.Status))))
	return errs
}

// Normalize builds the request payload.
func (d *ReviewModerationDraft) Normalize() ReviewModerationPayload {
	return ReviewModerationPayload{Status: model.ReviewStatus(strings.TrimSpace(d.Status))}
}
