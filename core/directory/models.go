package directory

import (
	"math"
	"time"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"
)

// Role tags an Identity with exactly one portal.
// Every place that branches on a Role must switch over all four values and
// treat anything else as ErrUnknownRole; adding a role means visiting each
// of those switches (grep for ErrUnknownRole).
type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
	RoleParent  Role = "parent"
)

var ErrUnknownRole = errors.New("unknown role")

// Roles lists all roles in login-form order.
var Roles = []Role{RoleStudent, RoleTeacher, RoleParent, RoleAdmin}

// ParseRole maps a raw string onto a Role.
func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleStudent, RoleTeacher, RoleAdmin, RoleParent:
		return r, nil
	default:
		return "", errors.Wrap(ErrUnknownRole, s)
	}
}

func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

// Title returns the role's display name.
func (r Role) Title() string {
	switch r {
	case RoleStudent:
		return "Student"
	case RoleTeacher:
		return "Teacher"
	case RoleAdmin:
		return "Admin"
	case RoleParent:
		return "Parent"
	default:
		return ""
	}
}

// ExternalIDPrefix returns the prefix of the role-scoped external IDs
// (STU-001, TCH-001, ADM-001, PAR-001).
func (r Role) ExternalIDPrefix() string {
	switch r {
	case RoleStudent:
		return "STU"
	case RoleTeacher:
		return "TCH"
	case RoleAdmin:
		return "ADM"
	case RoleParent:
		return "PAR"
	default:
		return ""
	}
}

// Attendance counts class attendance for the current term.
type Attendance struct {
	Present int `json:"present"`
	Absent  int `json:"absent"`
	Late    int `json:"late"`
}

// Rate returns the attendance percentage, rounded to the nearest integer.
// An empty record reads as 0, not NaN.
func (a Attendance) Rate() int {
	total := a.Present + a.Absent + a.Late
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(a.Present) / float64(total) * 100))
}

// Fee is one billable item.
type Fee struct {
	Amount int       `json:"amount"`
	Paid   bool      `json:"paid"`
	PaidAt null.Time `json:"paid_at,omitempty"`
}

type Fees struct {
	Tuition Fee `json:"tuition"`
	Other   Fee `json:"other"`
}

// Settled reports whether every fee item has been paid.
func (f Fees) Settled() bool { return f.Tuition.Paid && f.Other.Paid }

type StudentProfile struct {
	Grade      string      `json:"grade"`
	Department string      `json:"department"`
	ParentID   null.String `json:"parent_id,omitempty"`
	Attendance Attendance  `json:"attendance"`
	Fees       Fees        `json:"fees"`
}

type TeacherProfile struct {
	Subjects    []string `json:"subjects"`
	Departments []string `json:"departments"`
	Classes     []string `json:"classes"`
}

type AdminProfile struct {
	Position string `json:"position"`
}

type ParentProfile struct {
	Children []string `json:"children"` // internal Identity IDs
	Phone    string   `json:"phone"`
	Address  string   `json:"address"`
}

// Identity is a directory-registered user. Records are created once by the
// seed and never mutated at runtime; Role is immutable.
type Identity struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Email      string      `json:"email"`
	Role       Role        `json:"role"`
	ExternalID string      `json:"external_id"`
	Avatar     null.String `json:"avatar,omitempty"`
	CreatedAt  time.Time   `json:"created_at"` // UTC

	// exactly one of these matches Role
	Student *StudentProfile `json:"student,omitempty"`
	Teacher *TeacherProfile `json:"teacher,omitempty"`
	Admin   *AdminProfile   `json:"admin,omitempty"`
	Parent  *ParentProfile  `json:"parent,omitempty"`
}

func (i Identity) IsZero() bool { return i.ID == "" }

func (i Identity) IsStudent() bool { return i.Role == RoleStudent }
func (i Identity) IsTeacher() bool { return i.Role == RoleTeacher }
func (i Identity) IsAdmin() bool   { return i.Role == RoleAdmin }
func (i Identity) IsParent() bool  { return i.Role == RoleParent }
