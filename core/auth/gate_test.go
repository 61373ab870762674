package auth

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/darasahq/darasa/core"
	"github.com/darasahq/darasa/core/directory"
	"github.com/darasahq/darasa/core/session"
)

const testSecret = "password"

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}

type recordingNotifier struct {
	mu     sync.Mutex
	titles []string
}

func (n *recordingNotifier) Notify(note core.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.titles = append(n.titles, note.Title)
}

func (n *recordingNotifier) last() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.titles) == 0 {
		return ""
	}
	return n.titles[len(n.titles)-1]
}

func testConf(latency time.Duration) *core.Config {
	return &core.Config{
		AppName:      "Darasa",
		Env:          "TEST",
		SecretKey:    []byte("secret"),
		SharedSecret: testSecret,
		LoginLatency: latency,
	}
}

func setup(t *testing.T, latency time.Duration) (*Gate, session.Store, *recordingNotifier) {
	t.Helper()
	store := session.NewFileStore(filepath.Join(t.TempDir(), "session"), []byte("secret"))
	notifier := &recordingNotifier{}
	gate := NewGate(directory.Seeded(), store, nopLogger{}, notifier, testConf(latency))
	gate.Restore()
	return gate, store, notifier
}

func TestGate_Login_success(t *testing.T) {
	for _, seed := range directory.Seed() {
		t.Run(seed.ExternalID, func(t *testing.T) {
			gate, store, notifier := setup(t, 0)

			sess, err := gate.Login(Attempt{Role: string(seed.Role), ExternalID: seed.ExternalID, Secret: testSecret})
			if err != nil {
				t.Fatalf("Login() failed: %v", err)
			}
			assert.Equal(t, Authenticated, gate.State())
			assert.Equal(t, seed.ID, sess.Identity.ID)

			ident, ok := gate.Identity()
			if !ok {
				t.Fatal("Identity() not available after login")
			}
			assert.Equal(t, seed.Name, ident.Name)
			assert.Equal(t, "Login successful", notifier.last())

			// the session slot survives for the next process
			persisted, err := store.Load()
			if err != nil {
				t.Fatalf("store.Load() failed: %v", err)
			}
			assert.Equal(t, sess.ID, persisted.ID)
		})
	}
}

func TestGate_Login_failure(t *testing.T) {
	tests := []struct {
		name    string
		attempt Attempt
	}{
		{name: "wrong secret", attempt: Attempt{Role: "student", ExternalID: "STU-001", Secret: "letmein"}},
		{name: "unknown id", attempt: Attempt{Role: "student", ExternalID: "STU-999", Secret: testSecret}},
		{name: "wrong partition", attempt: Attempt{Role: "teacher", ExternalID: "STU-001", Secret: testSecret}},
		{name: "unknown role", attempt: Attempt{Role: "superuser", ExternalID: "STU-001", Secret: testSecret}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gate, store, notifier := setup(t, 0)

			_, err := gate.Login(tt.attempt)
			// every failure mode is observably identical
			assert.Equal(t, ErrAuthenticationFailed, err)
			assert.Equal(t, Unauthenticated, gate.State())
			assert.Equal(t, "Login failed", notifier.last())

			_, ok := gate.Session()
			assert.False(t, ok)
			_, loadErr := store.Load()
			assert.Equal(t, session.ErrEmpty, loadErr)
		})
	}
}

func TestGate_Login_secondCallIgnoredWhileInFlight(t *testing.T) {
	gate, _, _ := setup(t, 100*time.Millisecond)

	firstDone := make(chan error, 1)
	go func() {
		_, err := gate.Login(Attempt{Role: "student", ExternalID: "STU-001", Secret: testSecret})
		firstDone <- err
	}()

	// wait for the first call to enter Authenticating
	deadline := time.Now().Add(time.Second)
	for gate.State() != Authenticating {
		if time.Now().After(deadline) {
			t.Fatal("gate never entered Authenticating")
		}
		time.Sleep(time.Millisecond)
	}

	_, err := gate.Login(Attempt{Role: "teacher", ExternalID: "TCH-001", Secret: testSecret})
	assert.Equal(t, ErrLoginInFlight, err)

	if err := <-firstDone; err != nil {
		t.Fatalf("first Login() failed: %v", err)
	}
	// only the first call's resolution changed state
	ident, ok := gate.Identity()
	if !ok {
		t.Fatal("Identity() not available after login")
	}
	assert.Equal(t, "Alex Johnson", ident.Name)
}

func TestGate_Restore(t *testing.T) {
	t.Run("empty slot starts signed out", func(t *testing.T) {
		store := session.NewFileStore(filepath.Join(t.TempDir(), "session"), []byte("secret"))
		gate := NewGate(directory.Seeded(), store, nopLogger{}, &recordingNotifier{}, testConf(0))

		assert.True(t, gate.Loading())
		gate.Restore()
		assert.False(t, gate.Loading())
		assert.Equal(t, Unauthenticated, gate.State())
	})

	t.Run("saved slot restores the session", func(t *testing.T) {
		dir := directory.Seeded()
		store := session.NewFileStore(filepath.Join(t.TempDir(), "session"), []byte("secret"))
		ident, _ := dir.FindByRoleAndID(directory.RoleParent, "PAR-001")
		saved := session.New(ident)
		if err := store.Save(saved); err != nil {
			t.Fatalf("store.Save() failed: %v", err)
		}

		gate := NewGate(dir, store, nopLogger{}, &recordingNotifier{}, testConf(0))
		gate.Restore()

		assert.Equal(t, Authenticated, gate.State())
		got, ok := gate.Session()
		if !ok {
			t.Fatal("Session() not available after restore")
		}
		assert.Equal(t, saved.ID, got.ID)
		assert.Equal(t, "Mr. Robert Johnson", got.Identity.Name)
	})

	t.Run("restore is consulted once", func(t *testing.T) {
		gate, store, _ := setup(t, 0)
		if _, err := gate.Login(Attempt{Role: "student", ExternalID: "STU-001", Secret: testSecret}); err != nil {
			t.Fatalf("Login() failed: %v", err)
		}
		if err := store.Clear(); err != nil {
			t.Fatalf("store.Clear() failed: %v", err)
		}

		gate.Restore() // must not reload (and drop) the live state
		assert.Equal(t, Authenticated, gate.State())
	})
}

func TestGate_Logout_idempotent(t *testing.T) {
	gate, store, notifier := setup(t, 0)
	if _, err := gate.Login(Attempt{Role: "admin", ExternalID: "ADM-001", Secret: testSecret}); err != nil {
		t.Fatalf("Login() failed: %v", err)
	}

	gate.Logout()
	assert.Equal(t, Unauthenticated, gate.State())
	assert.Equal(t, "Logged out", notifier.last())
	_, err := store.Load()
	assert.Equal(t, session.ErrEmpty, err)

	gate.Logout() // second call is a no-op
	assert.Equal(t, Unauthenticated, gate.State())
}
