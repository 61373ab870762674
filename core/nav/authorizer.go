package nav

import (
	"github.com/pkg/errors"

	"github.com/darasahq/darasa/core/auth"
	"github.com/darasahq/darasa/core/directory"
)

// Well-known paths.
const (
	LandingPath = "/"
	LoginPath   = "/login"
)

// ErrLoading means the gate has not settled its initial state yet; the
// caller must show a neutral loading indicator instead of deciding
// anything. Evaluating Rule 1 before restore completes would flash a
// login redirect at users whose session is about to be restored.
var ErrLoading = errors.New("auth state not settled yet")

// View is one navigable surface. Public views need no session; the rest
// require the session identity to hold Role exactly.
type View struct {
	Name   string
	Path   string
	Public bool
	Role   directory.Role
}

var (
	Landing = View{Name: "landing", Path: LandingPath, Public: true}
	Login   = View{Name: "login", Path: LoginPath, Public: true}

	StudentDashboard = View{Name: "student-dashboard", Path: "/student-dashboard", Role: directory.RoleStudent}
	TeacherDashboard = View{Name: "teacher-dashboard", Path: "/teacher-dashboard", Role: directory.RoleTeacher}
	AdminDashboard   = View{Name: "admin-dashboard", Path: "/admin-dashboard", Role: directory.RoleAdmin}
	ParentDashboard  = View{Name: "parent-dashboard", Path: "/parent-dashboard", Role: directory.RoleParent}
)

// Views lists every registered view.
var Views = []View{Landing, Login, StudentDashboard, TeacherDashboard, AdminDashboard, ParentDashboard}

// DefaultView maps a role to its home dashboard.
func DefaultView(role directory.Role) (View, error) {
	switch role {
	case directory.RoleStudent:
		return StudentDashboard, nil
	case directory.RoleTeacher:
		return TeacherDashboard, nil
	case directory.RoleAdmin:
		return AdminDashboard, nil
	case directory.RoleParent:
		return ParentDashboard, nil
	default:
		return View{}, errors.Wrap(directory.ErrUnknownRole, string(role))
	}
}

// Decision is the outcome of an access check: either Allow, or a redirect
// to Path. A user is never shown "access denied" — they are rerouted.
type Decision struct {
	Allow bool
	Path  string
}

func allow() Decision { return Decision{Allow: true} }

func redirectTo(path string) Decision { return Decision{Path: path} }

// CanEnter gates access to a view given a gate snapshot.
//
// Rule 1 (authentication, always first): anyone not authenticated is sent
// to the login view. Rule 2 (role): an authenticated user requesting a
// view of another role is silently sent to their own default view. Rule 1
// runs first so an unauthenticated request never learns role-specific
// redirect targets.
func CanEnter(view View, snap auth.Snapshot) (Decision, error) {
	if snap.Loading {
		return Decision{}, ErrLoading
	}

	if view.Public {
		return allow(), nil
	}

	// Rule 1
	if snap.State != auth.Authenticated {
		return redirectTo(LoginPath), nil
	}

	// Rule 2
	role := snap.Session.Identity.Role
	if view.Role != role {
		home, err := DefaultView(role)
		if err != nil {
			// a session bound to an unknown role cannot be routed anywhere
			return Decision{}, err
		}
		return redirectTo(home.Path), nil
	}
	return allow(), nil
}
