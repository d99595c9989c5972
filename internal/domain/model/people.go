//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import "strings"

// User is a customer or staff account managed from the users page.
type User struct {
	Ref
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Role    string `json:"role"`
}

// Account roles accepted by the shop API.
const (
	UserRoleCustomer = "customer"
	UserRoleEditor   = "editor"
	UserRoleAdmin    = "admin"
)

// UserRoles lists account roles in display order.
var UserRoles = []string{UserRoleCustomer, UserRoleEditor, UserRoleAdmin}

// NotificationType classifies a message pushed to a user's inbox.
type NotificationType string

const (
	NotificationCustom NotificationType = "custom"
	NotificationOrder  NotificationType = "order"
	NotificationPromo  NotificationType = "promo"
	NotificationSystem NotificationType = "system"
)

// NotificationTypes lists notification types in display order.
var NotificationTypes = []NotificationType{NotificationCustom, NotificationOrder, NotificationPromo, NotificationSystem}

// ParseNotificationType normalizes v, defaulting to custom when empty.
func ParseNotificationType(v string) (NotificationType, bool) {
	t := NotificationType(strings.ToLower(strings.TrimSpace(v)))
	if t == "" {
		return NotificationCustom, true
	}
	for _, known := range NotificationTypes {
		if t == known {
			return t, true
		}
	}
	return "", false
}

// Notification is the payload for POST /users/{id}/notifications.
type Notification struct {
	Title      string           `json:"title"`
	Message    string           `json:"message"`
	Type       NotificationType `json:"type"`
	ActionLink string           `json:"actionLink,omitempty"`
}
