package session

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/pkg/errors"

	"github.com/darasahq/darasa/core/directory"
)

// sessionClaims is the on-disk layout: standard JWT claims carrying the
// session ID and creation time, plus the full serialized Identity.
type sessionClaims struct {
	jwt.StandardClaims
	Identity directory.Identity `json:"identity"`
}

// FileStore persists the single session slot as an HS256-signed token in
// one file under a fixed path. Signing makes external tampering read as
// "absent" instead of producing a half-trusted session.
//
// There is no versioning or migration scheme: any stored value that does
// not verify and decode cleanly is treated as empty, never as an error
// worth surfacing.
type FileStore struct {
	path string
	key  []byte

	mu sync.Mutex
}

var _ Store = (*FileStore)(nil)

func NewFileStore(path string, key []byte) *FileStore {
	return &FileStore{path: path, key: key}
}

// Load deserializes the persisted session. It fails soft: a missing,
// unreadable, tampered or structurally incompatible file all yield
// ErrEmpty.
func (fs *FileStore) Load() (Session, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	raw, err := ioutil.ReadFile(fs.path)
	if err != nil {
		return Session{}, ErrEmpty
	}

	var claims sessionClaims
	token, err := jwt.ParseWithClaims(string(raw), &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method %q", t.Header["alg"])
		}
		return fs.key, nil
	})
	if err != nil || !token.Valid {
		return Session{}, ErrEmpty
	}
	if claims.Id == "" || !claims.Identity.Role.Valid() || claims.Identity.IsZero() {
		return Session{}, ErrEmpty
	}

	return Session{
		ID:        claims.Id,
		Identity:  claims.Identity,
		CreatedAt: time.Unix(claims.IssuedAt, 0).UTC(),
	}, nil
}

// Save persists the session, overwriting any prior value.
func (fs *FileStore) Save(s Session) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	claims := &sessionClaims{
		StandardClaims: jwt.StandardClaims{
			Id:       s.ID,
			Subject:  s.Identity.ID,
			IssuedAt: s.CreatedAt.Unix(),
		},
		Identity: s.Identity,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(fs.key)
	if err != nil {
		return errors.Wrap(err, "signing session")
	}

	if err := os.MkdirAll(filepath.Dir(fs.path), 0o700); err != nil {
		return errors.Wrap(err, "creating session dir")
	}
	// write-then-rename so a crash never leaves a truncated slot
	tmp := fs.path + ".tmp"
	if err := ioutil.WriteFile(tmp, []byte(signed), 0o600); err != nil {
		return errors.Wrap(err, "writing session")
	}
	return errors.Wrap(os.Rename(tmp, fs.path), "replacing session")
}

// Clear removes the persisted session. Clearing an empty slot is fine.
func (fs *FileStore) Clear() error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if err := os.Remove(fs.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "clearing session")
	}
	return nil
}
