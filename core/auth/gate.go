package auth

import (
	"crypto/subtle"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/darasahq/darasa/core"
	"github.com/darasahq/darasa/core/directory"
	"github.com/darasahq/darasa/core/session"
)

var (
	// ErrAuthenticationFailed covers both an unknown ID and a wrong secret;
	// the two are indistinguishable on purpose so the login form cannot be
	// used to enumerate directory IDs.
	ErrAuthenticationFailed = errors.New("invalid credentials")

	// ErrLoginInFlight means a credential evaluation is already pending.
	// Callers ignore it silently; the pending evaluation alone decides the
	// next state.
	ErrLoginInFlight = errors.New("a sign-in is already in progress")
)

// State is the three-way auth state. Exactly one holds at any instant.
type State int

const (
	Unauthenticated State = iota
	Authenticating
	Authenticated
)

func (s State) String() string {
	switch s {
	case Unauthenticated:
		return "unauthenticated"
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Snapshot is a point-in-time read of the gate, safe to pass around.
type Snapshot struct {
	Loading bool
	State   State
	Session session.Session
}

// Attempt is one credential submission. It is never stored; it lives for
// the duration of a single Login call.
type Attempt struct {
	Role       string `json:"role" validate:"required,role"`
	ExternalID string `json:"user_id" validate:"required,extid"`
	Secret     string `json:"password" validate:"required"`
}

func (a *Attempt) Validate(validate *validator.Validate) error {
	a.Role = core.CleanLower(a.Role)
	a.ExternalID = core.CleanString(a.ExternalID)
	return validate.Struct(a)
}

// Gate owns the AuthState and is the only component allowed to mint or
// destroy a Session. Construct one in main and pass it down; the routing
// layer and views read it, nothing else writes it.
type Gate struct {
	dir      *directory.Directory
	store    session.Store
	log      core.Logger
	notifier core.Notifier

	sharedSecret []byte
	latency      time.Duration

	mu       sync.Mutex
	restored bool
	state    State
	sess     session.Session
}

func NewGate(
	dir *directory.Directory,
	store session.Store,
	logger core.Logger,
	notifier core.Notifier,
	conf *core.Config,
) *Gate {
	return &Gate{
		dir:          dir,
		store:        store,
		log:          logger,
		notifier:     notifier,
		sharedSecret: []byte(conf.SharedSecret),
		latency:      conf.LoginLatency,
	}
}

// Restore consults the session store exactly once, settling the initial
// state. Until it has run, Loading reports true and the route authorizer
// must not be evaluated (callers render a neutral loading state instead).
// Subsequent calls are no-ops.
func (g *Gate) Restore() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.restored {
		return
	}
	g.restored = true

	s, err := g.store.Load()
	if err != nil {
		// absent or untrusted slot: start signed out
		g.state = Unauthenticated
		return
	}
	g.sess = s
	g.state = Authenticated
	g.log.Info("session restored for " + s.Identity.Name)
}

// Loading reports whether the startup Restore has not yet settled the state.
func (g *Gate) Loading() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return !g.restored
}

func (g *Gate) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Session returns the current session; ok is false unless Authenticated.
func (g *Gate) Session() (session.Session, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.sess, g.state == Authenticated
}

// Identity returns the authenticated identity, if any.
func (g *Gate) Identity() (directory.Identity, bool) {
	s, ok := g.Session()
	return s.Identity, ok
}

func (g *Gate) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return Snapshot{Loading: !g.restored, State: g.state, Session: g.sess}
}

// Login evaluates one credential attempt: directory lookup by role and
// external ID, then a constant-time comparison of the submitted secret
// against the shared demo secret (the placeholder policy — see Config).
//
// At most one evaluation is in flight per gate; a concurrent call returns
// ErrLoginInFlight and changes nothing. A pending login always resolves,
// there is no cancellation or timeout. The artificial latency stands in
// for the network round-trip a real credential service would cost.
func (g *Gate) Login(attempt Attempt) (session.Session, error) {
	g.mu.Lock()
	if g.state == Authenticating {
		g.mu.Unlock()
		return session.Session{}, ErrLoginInFlight
	}
	g.state = Authenticating
	g.mu.Unlock()

	time.Sleep(g.latency)

	role, roleErr := directory.ParseRole(attempt.Role)
	var ident directory.Identity
	lookupErr := roleErr
	if lookupErr == nil {
		ident, lookupErr = g.dir.FindByRoleAndID(role, attempt.ExternalID)
	}
	// compare regardless of the lookup outcome so both failure modes
	// cost the same
	match := subtle.ConstantTimeCompare([]byte(attempt.Secret), g.sharedSecret) == 1

	if lookupErr != nil || !match {
		return session.Session{}, g.fail(lookupErr)
	}
	return g.succeed(ident)
}

func (g *Gate) succeed(ident directory.Identity) (session.Session, error) {
	sess := session.New(ident)
	if err := g.store.Save(sess); err != nil {
		// stay signed in for this run; only the restart restore is lost
		g.log.Error("persisting session", err)
	}

	g.mu.Lock()
	g.state = Authenticated
	g.sess = sess
	g.mu.Unlock()

	g.notifier.Notify(core.Notification{
		Title:  "Login successful",
		Detail: "Welcome back, " + ident.Name + "!",
	})
	return sess, nil
}

func (g *Gate) fail(cause error) error {
	g.mu.Lock()
	hadSession := !g.sess.IsZero()
	g.sess = session.Session{}
	g.state = Unauthenticated
	g.mu.Unlock()

	// a failed re-login abandons the previous session; the slot must not
	// resurrect it on restart
	if hadSession {
		if err := g.store.Clear(); err != nil {
			g.log.Error("clearing session", err)
		}
	}

	if cause != nil && errors.Cause(cause) != directory.ErrNotFound && errors.Cause(cause) != directory.ErrUnknownRole {
		g.log.Error("credential lookup", cause)
	}
	g.notifier.Notify(core.Notification{
		Title:  "Login failed",
		Detail: "Invalid credentials. Please try again.",
	})
	return ErrAuthenticationFailed
}

// Logout destroys the current session. Calling it while signed out is a
// safe no-op.
func (g *Gate) Logout() {
	g.mu.Lock()
	if g.state != Authenticated {
		g.mu.Unlock()
		return
	}
	g.sess = session.Session{}
	g.state = Unauthenticated
	g.mu.Unlock()

	if err := g.store.Clear(); err != nil {
		g.log.Error("clearing session", err)
	}
	g.notifier.Notify(core.Notification{
		Title:  "Logged out",
		Detail: "You have been successfully logged out.",
	})
}
