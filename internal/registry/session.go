// Package registry implements the registration service: the only
// component that touches more than one of the in-memory structures per
// operation. It enforces every cross-entity invariant (seat accounting,
// enrollment uniqueness, prerequisite checks, undo reversibility) and
// persists full state after each successful mutation.
package registry

import (
	"time"

	"github.com/google/uuid"

	"github.com/zjrosen/registrar/internal/domain"
)

// Session is the explicit per-login context threaded through every
// service call. The zero value is the anonymous session. A fresh GUID is
// minted at each login, which scopes the undo log: entries recorded
// under a previous GUID are dropped rather than undone.
type Session struct {
	GUID     string
	Username string
	FullName string
	Role     domain.Role
	LoginAt  time.Time
}

// Anonymous is the unauthenticated session.
var Anonymous = Session{}

// newSession creates an authenticated session for the user.
func newSession(u domain.User) Session {
	return Session{
		GUID:     uuid.NewString(),
		Username: u.Username,
		FullName: u.FullName,
		Role:     u.Role(),
		LoginAt:  time.Now(),
	}
}

// Authenticated reports whether the session belongs to a logged-in user.
func (s Session) Authenticated() bool {
	return s.GUID != ""
}

// IsAdmin reports whether the session belongs to an administrator.
func (s Session) IsAdmin() bool {
	return s.Authenticated() && s.Role == domain.RoleAdmin
}
