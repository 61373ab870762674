package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/darasahq/darasa/core/directory"
)

// NowFunc returns the current time; swapped out in tests.
var NowFunc = time.Now

// Session is the durable proof-of-login binding this client to one
// directory Identity. It is minted and destroyed by the auth gate only;
// everything else just reads it.
type Session struct {
	ID        string             `json:"id"`
	Identity  directory.Identity `json:"identity"`
	CreatedAt time.Time          `json:"created_at"` // UTC
}

// New mints a Session bound to the given identity.
func New(ident directory.Identity) Session {
	return Session{
		ID:        uuid.New().String(),
		Identity:  ident,
		CreatedAt: NowFunc().UTC(),
	}
}

func (s Session) IsZero() bool { return s.ID == "" }
