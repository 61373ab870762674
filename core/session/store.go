package session

import "github.com/pkg/errors"

// ErrEmpty is returned by Store.Load when no session is persisted, or when
// whatever is persisted cannot be trusted. Callers treat both the same.
var ErrEmpty = errors.New("no stored session")

// Store is single-slot durable storage for the current Session: Save
// overwrites whatever was there, Load returns it (or ErrEmpty), Clear
// removes it. Only one session can be remembered at a time.
type Store interface {
	Load() (Session, error)
	Save(Session) error
	Clear() error
}
