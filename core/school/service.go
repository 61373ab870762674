package school

import (
	"time"

	"github.com/darasahq/darasa/core/directory"
)

// NowFunc returns the current time; swapped out in tests.
var NowFunc = time.Now

// Service answers the read-only queries the dashboards render. Collections
// are static; the only mutable piece is the Gradebook.
type Service struct {
	dir  *directory.Directory
	data Collections

	Gradebook *Gradebook
}

func NewService(dir *directory.Directory, data Collections) *Service {
	return &Service{
		dir:       dir,
		data:      data,
		Gradebook: NewGradebook(),
	}
}

// Announcements returns school-wide announcements plus those scoped to the
// given department. An empty department yields school-wide only.
func (svc *Service) Announcements(department string) []Announcement {
	res := make([]Announcement, 0, len(svc.data.Announcements))
	for _, a := range svc.data.Announcements {
		if !a.Department.Valid || a.Department.String == department {
			res = append(res, a)
		}
	}
	return res
}

// AllAnnouncements returns every announcement regardless of department.
func (svc *Service) AllAnnouncements() []Announcement {
	res := make([]Announcement, len(svc.data.Announcements))
	copy(res, svc.data.Announcements)
	return res
}

// ScheduleFor returns the timetable slots on the given weekday.
func (svc *Service) ScheduleFor(dayName string) []ClassSession {
	res := make([]ClassSession, 0, len(svc.data.Sessions))
	for _, s := range svc.data.Sessions {
		if s.Day == dayName {
			res = append(res, s)
		}
	}
	return res
}

// TodaySchedule returns today's timetable slots.
func (svc *Service) TodaySchedule() []ClassSession {
	return svc.ScheduleFor(NowFunc().Weekday().String())
}

// TodayScheduleByTeacher narrows today's slots to one teacher.
func (svc *Service) TodayScheduleByTeacher(teacherName string) []ClassSession {
	res := make([]ClassSession, 0, 4)
	for _, s := range svc.TodaySchedule() {
		if s.Teacher == teacherName {
			res = append(res, s)
		}
	}
	return res
}

func (svc *Service) Assignments() []Assignment {
	res := make([]Assignment, len(svc.data.Assignments))
	copy(res, svc.data.Assignments)
	return res
}

// AssignmentsByTeacher returns the assignments set by one teacher.
func (svc *Service) AssignmentsByTeacher(teacherName string) []Assignment {
	res := make([]Assignment, 0, len(svc.data.Assignments))
	for _, a := range svc.data.Assignments {
		if a.Teacher == teacherName {
			res = append(res, a)
		}
	}
	return res
}

// ChatGroupsFor returns the chat groups an identity takes part in.
func (svc *Service) ChatGroupsFor(identityID string) []ChatGroup {
	res := make([]ChatGroup, 0, len(svc.data.ChatGroups))
	for _, g := range svc.data.ChatGroups {
		if g.Includes(identityID) {
			res = append(res, g)
		}
	}
	return res
}

// PTAChats returns the parent-teacher association groups.
func (svc *Service) PTAChats() []ChatGroup {
	res := make([]ChatGroup, 0, 1)
	for _, g := range svc.data.ChatGroups {
		if g.Type == ChatPTA {
			res = append(res, g)
		}
	}
	return res
}

func (svc *Service) Events() []Event {
	res := make([]Event, len(svc.data.Events))
	copy(res, svc.data.Events)
	return res
}

// StudentsInClasses returns students enrolled in any of the given classes
// (a teacher's roster).
func (svc *Service) StudentsInClasses(classes []string) []directory.Identity {
	inClasses := make(map[string]bool, len(classes))
	for _, c := range classes {
		inClasses[c] = true
	}
	res := make([]directory.Identity, 0, 8)
	for _, ident := range svc.dir.QueryByRole(directory.RoleStudent) {
		if ident.Student != nil && inClasses[ident.Student.Grade] {
			res = append(res, ident)
		}
	}
	return res
}

// ChildrenOf resolves a parent's children to their student identities.
// Dangling child references are skipped rather than failing the lookup.
func (svc *Service) ChildrenOf(parent directory.Identity) []directory.Identity {
	if parent.Parent == nil {
		return nil
	}
	res := make([]directory.Identity, 0, len(parent.Parent.Children))
	for _, id := range parent.Parent.Children {
		child, err := svc.dir.GetByID(id)
		if err != nil || !child.IsStudent() {
			continue
		}
		res = append(res, child)
	}
	return res
}
