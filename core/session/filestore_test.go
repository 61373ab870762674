package session

import (
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/darasahq/darasa/core/directory"
)

var testKey = []byte("secret")

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), "session"), testKey)
}

func alex(t *testing.T) directory.Identity {
	t.Helper()
	ident, err := directory.Seeded().FindByRoleAndID(directory.RoleStudent, "STU-001")
	if err != nil {
		t.Fatalf("seed lookup failed: %v", err)
	}
	return ident
}

func TestFileStore_roundTrip(t *testing.T) {
	store := newTestStore(t)
	sess := New(alex(t))

	if err := store.Save(sess); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	assert.Equal(t, sess.ID, got.ID)
	assert.Equal(t, sess.Identity.ID, got.Identity.ID)
	assert.Equal(t, sess.Identity.Role, got.Identity.Role)
	assert.Equal(t, sess.CreatedAt.Unix(), got.CreatedAt.Unix())
}

// a fresh FileStore on the same path stands in for a process restart
func TestFileStore_survivesRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session")
	sess := New(alex(t))

	if err := NewFileStore(path, testKey).Save(sess); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	got, err := NewFileStore(path, testKey).Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	assert.Equal(t, sess.Identity.ID, got.Identity.ID)
}

func TestFileStore_saveOverwrites(t *testing.T) {
	store := newTestStore(t)
	dir := directory.Seeded()
	teacher, _ := dir.FindByRoleAndID(directory.RoleTeacher, "TCH-001")

	if err := store.Save(New(alex(t))); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	second := New(teacher)
	if err := store.Save(second); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	assert.Equal(t, second.Identity.ID, got.Identity.ID)
}

func TestFileStore_loadFailsSoft(t *testing.T) {
	t.Run("absent file", func(t *testing.T) {
		_, err := newTestStore(t).Load()
		assert.Equal(t, ErrEmpty, err)
	})

	t.Run("garbage contents", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "session")
		if err := ioutil.WriteFile(path, []byte("not a token"), 0o600); err != nil {
			t.Fatalf("writing garbage failed: %v", err)
		}
		_, err := NewFileStore(path, testKey).Load()
		assert.Equal(t, ErrEmpty, err)
	})

	t.Run("tampered signature", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "session")
		if err := NewFileStore(path, []byte("some other key")).Save(New(alex(t))); err != nil {
			t.Fatalf("Save() failed: %v", err)
		}
		_, err := NewFileStore(path, testKey).Load()
		assert.Equal(t, ErrEmpty, err)
	})
}

func TestFileStore_clear(t *testing.T) {
	store := newTestStore(t)
	if err := store.Save(New(alex(t))); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear() failed: %v", err)
	}
	_, err := store.Load()
	assert.Equal(t, ErrEmpty, err)

	// clearing an already-empty slot is fine
	if err := store.Clear(); err != nil {
		t.Fatalf("second Clear() failed: %v", err)
	}
}
