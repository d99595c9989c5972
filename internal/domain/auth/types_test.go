package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSession_IsAuthenticated(t *testing.T) {
	assert.False(t, Session{}.IsAuthenticated())
	assert.True(t, Session{Token: "t"}.IsAuthenticated(), "token alone authenticates before hydration")
	assert.True(t, Session{Token: "t", User: &User{ID: "u1"}}.IsAuthenticated())
}

func TestSession_NeedsHydration(t *testing.T) {
	assert.False(t, Session{}.NeedsHydration())
	assert.True(t, Session{Token: "t"}.NeedsHydration())
	assert.False(t, Session{Token: "t", User: &User{ID: "u1"}}.NeedsHydration())
}

func TestSession_CloneDoesNotShareUser(t *testing.T) {
	orig := Session{Token: "t", User: &User{ID: "u1", Name: "Sara"}}
	cp := orig.Clone()
	cp.User.Name = "changed"

	assert.Equal(t, "Sara", orig.User.Name)
}

func TestUser_KeyPrefersID(t *testing.T) {
	assert.Equal(t, "a", User{ID: "a", LegacyID: "b"}.Key())
	assert.Equal(t, "b", User{LegacyID: "b"}.Key())
}

func TestRole_Valid(t *testing.T) {
	assert.True(t, RoleEditor.Valid())
	assert.False(t, Role("guest").Valid())
}

func TestSession_DisplayName(t *testing.T) {
	assert.Empty(t, Session{Token: "t"}.DisplayName())
	assert.Equal(t, "a@example.com", Session{User: &User{Email: "a@example.com"}}.DisplayName())
	assert.Equal(t, "Sara", Session{User: &User{Name: "Sara", Email: "a@example.com"}}.DisplayName())
}
