package webapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/darasahq/darasa/core/auth"
	"github.com/darasahq/darasa/core/directory"
	"github.com/darasahq/darasa/core/nav"
	"github.com/darasahq/darasa/core/school"
)

type dashboardApi struct {
	gate     *auth.Gate
	dir      *directory.Directory
	school   *school.Service
	validate *validator.Validate
}

func registerDashboardAPI(app *echo.Echo, v1 *echo.Group, deps Deps) {
	api := dashboardApi{
		gate:     deps.Gate,
		dir:      deps.Directory,
		school:   deps.School,
		validate: deps.Validate,
	}

	app.GET(nav.LoginPath, api.loginForm)
	app.GET(nav.StudentDashboard.Path, api.guard(nav.StudentDashboard, api.student))
	app.GET(nav.TeacherDashboard.Path, api.guard(nav.TeacherDashboard, api.teacher))
	app.GET(nav.AdminDashboard.Path, api.guard(nav.AdminDashboard, api.admin))
	app.GET(nav.ParentDashboard.Path, api.guard(nav.ParentDashboard, api.parent))

	v1.POST("/teacher/grades", api.guard(nav.TeacherDashboard, api.saveGrades))
}

// guard translates the route authorizer's decision: allow falls through to
// the view handler, redirects become 303s, and an unsettled gate renders
// the neutral loading response instead of a flash-redirect to login.
func (api *dashboardApi) guard(view nav.View, next func(echo.Context, directory.Identity) error) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		dec, err := nav.CanEnter(view, api.gate.Snapshot())
		if err != nil {
			if errors.Cause(err) == nav.ErrLoading {
				ctx.Response().Header().Set("Retry-After", "1")
				return errStateLoading
			}
			return errors.Wrap(err, "evaluating route access")
		}
		if !dec.Allow {
			return ctx.Redirect(http.StatusSeeOther, dec.Path)
		}

		ident, ok := api.gate.Identity()
		if !ok { // cannot happen once CanEnter allowed a role-bound view
			return errUnauthorized
		}
		return next(ctx, ident)
	}
}

// loginForm describes the login surface: the role choices and the expected
// credential fields.
func (api *dashboardApi) loginForm(ctx echo.Context) error {
	roles := make([]echo.Map, 0, len(directory.Roles))
	for _, r := range directory.Roles {
		roles = append(roles, echo.Map{
			"value":     r,
			"title":     r.Title(),
			"id_prefix": r.ExternalIDPrefix(),
		})
	}
	return ctx.JSON(http.StatusOK, echo.Map{
		"roles":  roles,
		"fields": []string{"role", "user_id", "password"},
	})
}

// View payloads

type studentDashboard struct {
	Welcome            string                `json:"welcome"`
	AttendanceRate     int                   `json:"attendance_rate"`
	PendingAssignments int                   `json:"pending_assignments"`
	FeesSettled        bool                  `json:"fees_settled"`
	Fees               directory.Fees        `json:"fees"`
	Announcements      []school.Announcement `json:"announcements"`
	TodaySchedule      []school.ClassSession `json:"today_schedule"`
	Assignments        []school.Assignment   `json:"assignments"`
	Chats              []school.ChatGroup    `json:"chats"`
}

func (api *dashboardApi) student(ctx echo.Context, ident directory.Identity) error {
	profile := ident.Student
	assignments := api.school.Assignments()

	return ctx.JSON(http.StatusOK, studentDashboard{
		Welcome:            "Welcome back, " + ident.Name,
		AttendanceRate:     profile.Attendance.Rate(),
		PendingAssignments: len(assignments),
		FeesSettled:        profile.Fees.Settled(),
		Fees:               profile.Fees,
		Announcements:      api.school.Announcements(profile.Department),
		TodaySchedule:      api.school.TodaySchedule(),
		Assignments:        assignments,
		Chats:              api.school.ChatGroupsFor(ident.ID),
	})
}

type teacherDashboard struct {
	Welcome       string                `json:"welcome"`
	Classes       []string              `json:"classes"`
	Subjects      []string              `json:"subjects"`
	Students      []directory.Identity  `json:"students"`
	Assignments   []school.Assignment   `json:"assignments"`
	TodaySchedule []school.ClassSession `json:"today_schedule"`
	PendingGrades []school.GradeEntry   `json:"pending_grades"`
	Chats         []school.ChatGroup    `json:"chats"`
}

func (api *dashboardApi) teacher(ctx echo.Context, ident directory.Identity) error {
	profile := ident.Teacher

	return ctx.JSON(http.StatusOK, teacherDashboard{
		Welcome:       "Welcome back, " + ident.Name,
		Classes:       profile.Classes,
		Subjects:      profile.Subjects,
		Students:      api.school.StudentsInClasses(profile.Classes),
		Assignments:   api.school.AssignmentsByTeacher(ident.Name),
		TodaySchedule: api.school.TodayScheduleByTeacher(ident.Name),
		PendingGrades: api.school.Gradebook.Pending(),
		Chats:         api.school.ChatGroupsFor(ident.ID),
	})
}

type adminDashboard struct {
	Welcome       string                `json:"welcome"`
	TotalUsers    int                   `json:"total_users"`
	TotalStudents int                   `json:"total_students"`
	TotalTeachers int                   `json:"total_teachers"`
	TotalParents  int                   `json:"total_parents"`
	Students      []directory.Identity  `json:"students"`
	Teachers      []directory.Identity  `json:"teachers"`
	Parents       []directory.Identity  `json:"parents"`
	Announcements []school.Announcement `json:"announcements"`
	Events        []school.Event        `json:"events"`
}

func (api *dashboardApi) admin(ctx echo.Context, ident directory.Identity) error {
	students := api.dir.CountByRole(directory.RoleStudent)
	teachers := api.dir.CountByRole(directory.RoleTeacher)
	parents := api.dir.CountByRole(directory.RoleParent)
	admins := api.dir.CountByRole(directory.RoleAdmin)

	return ctx.JSON(http.StatusOK, adminDashboard{
		Welcome:       "Welcome back, " + ident.Name,
		TotalUsers:    students + teachers + parents + admins,
		TotalStudents: students,
		TotalTeachers: teachers,
		TotalParents:  parents,
		Students:      api.dir.QueryByRole(directory.RoleStudent),
		Teachers:      api.dir.QueryByRole(directory.RoleTeacher),
		Parents:       api.dir.QueryByRole(directory.RoleParent),
		Announcements: api.school.AllAnnouncements(),
		Events:        api.school.Events(),
	})
}

type childSummary struct {
	Identity       directory.Identity `json:"identity"`
	AttendanceRate int                `json:"attendance_rate"`
	FeesSettled    bool               `json:"fees_settled"`
}

type parentDashboard struct {
	Welcome       string                `json:"welcome"`
	Children      []childSummary        `json:"children"`
	PTAChats      []school.ChatGroup    `json:"pta_chats"`
	Announcements []school.Announcement `json:"announcements"`
	Events        []school.Event        `json:"events"`
}

func (api *dashboardApi) parent(ctx echo.Context, ident directory.Identity) error {
	children := api.school.ChildrenOf(ident)
	summaries := make([]childSummary, 0, len(children))
	for _, child := range children {
		summaries = append(summaries, childSummary{
			Identity:       child,
			AttendanceRate: child.Student.Attendance.Rate(),
			FeesSettled:    child.Student.Fees.Settled(),
		})
	}

	return ctx.JSON(http.StatusOK, parentDashboard{
		Welcome:       "Welcome back, " + ident.Name,
		Children:      summaries,
		PTAChats:      api.school.PTAChats(),
		Announcements: api.school.AllAnnouncements(),
		Events:        api.school.Events(),
	})
}

func (api *dashboardApi) saveGrades(ctx echo.Context, ident directory.Identity) error {
	var data GradesRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to GradesRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	entries := make([]school.GradeEntry, 0, len(data.Grades))
	for _, g := range data.Grades {
		entry, err := api.school.Gradebook.Record(g.StudentID, g.Score, g.MaxScore, ident.ID)
		if err != nil {
			return err
		}
		entries = append(entries, entry)
	}
	return ctx.JSON(http.StatusOK, GradesResponse{Saved: len(entries), Entries: entries})
}
