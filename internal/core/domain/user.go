package domain

import (
	"strings"
	"time"
)

// Role is the closed set of authorization levels.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// ParseRole validates a free-text role at the boundary. Matching is
// case-insensitive; anything outside the enum yields ErrInvalidRole.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleUser:
		return RoleUser, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", ErrInvalidRole
	}
}

func (r Role) String() string { return string(r) }

// Preferences holds per-user display settings.
type Preferences struct {
	Language      string `json:"language" bson:"language"`
	Currency      string `json:"currency" bson:"currency"`
	Notifications bool   `json:"notifications" bson:"notifications"`
}

// DefaultPreferences is applied when a user has none stored.
func DefaultPreferences() Preferences {
	return Preferences{Language: "en", Currency: "USD", Notifications: true}
}

// PreferencesPatch is a partial preferences update. Empty strings and a nil
// Notifications keep the current value.
type PreferencesPatch struct {
	Language      string
	Currency      string
	Notifications *bool
}

// Apply returns base with the patch's set fields overlaid.
func (p PreferencesPatch) Apply(base Preferences) Preferences {
	if p.Language != "" {
		base.Language = p.Language
	}
	if p.Currency != "" {
		base.Currency = p.Currency
	}
	if p.Notifications != nil {
		base.Notifications = *p.Notifications
	}
	return base
}

// User models an identity record in the credential store.
type User struct {
	ID           string       `json:"id"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"`
	Name         string       `json:"name"`
	Role         Role         `json:"role"`
	Phone        string       `json:"phone,omitempty"`
	Address      string       `json:"address,omitempty"`
	Preferences  *Preferences `json:"preferences,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// EffectivePreferences returns the stored preferences or the defaults.
func (u *User) EffectivePreferences() Preferences {
	if u.Preferences == nil {
		return DefaultPreferences()
	}
	return *u.Preferences
}
