// Package session holds the server-side session payload and its stores. The
// browser only carries the session id cookie.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a session id is unknown or expired.
var ErrNotFound = errors.New("session not found")

// Flash is a one-shot message shown on the next page.
type Flash struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// Session is the per-browser state shared by the auth flow and the enterprise gate.
type Session struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	UserEmail      string    `json:"user_email"`
	AccessToken    string    `json:"access_token"`
	ActiveBusiness string    `json:"active_business,omitempty"`
	OrgID          string    `json:"curr_org_id,omitempty"`
	Flashes        []Flash   `json:"flashes,omitempty"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// New returns an empty session with a fresh id.
func New() *Session {
	return &Session{ID: uuid.NewString()}
}

// Authenticated reports whether a user is signed in.
func (s *Session) Authenticated() bool {
	return s != nil && s.UserID != ""
}

// AddFlash queues a message for the next page.
func (s *Session) AddFlash(category, message string) {
	s.Flashes = append(s.Flashes, Flash{Category: category, Message: message})
}

// PopFlashes returns and clears queued messages.
func (s *Session) PopFlashes() []Flash {
	f := s.Flashes
	s.Flashes = nil
	return f
}

// Pin records orgID as the active organization.
func (s *Session) Pin(orgID string) { s.OrgID = orgID }

// ClearPin forgets the active organization.
func (s *Session) ClearPin() { s.OrgID = "" }

// SignOut drops everything tied to the user but keeps the id.
func (s *Session) SignOut() {
	id := s.ID
	*s = Session{ID: id}
}

// Renew moves the session to a fresh id and returns the previous one. Call it
// whenever the signed-in identity changes so a pre-login id cannot be reused.
func (s *Session) Renew() string {
	old := s.ID
	s.ID = uuid.NewString()
	return old
}

// Store persists sessions by id.
type Store interface {
	Load(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
}
