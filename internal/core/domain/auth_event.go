package domain

import "time"

// AuthEventType classifies an entry in the auth audit trail.
type AuthEventType string

const (
	EventLoginSucceeded AuthEventType = "login_succeeded"
	EventLoginFailed    AuthEventType = "login_failed"
	EventLoginThrottled AuthEventType = "login_throttled"
	EventRegistered     AuthEventType = "registered"
	EventAccessDenied   AuthEventType = "access_denied"
)

// AuthEvent records an authentication or authorization outcome.
type AuthEvent struct {
	ID        string        `json:"id"`
	Type      AuthEventType `json:"type"`
	Email     string        `json:"email"`
	Role      Role          `json:"role,omitempty"`
	Path      string        `json:"path,omitempty"`
	RemoteIP  string        `json:"remote_ip,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}
