package school

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// Announcement is a school- or department-wide notice. Department is null
// for school-wide announcements.
type Announcement struct {
	ID         string      `json:"id"`
	Title      string      `json:"title"`
	Content    string      `json:"content"`
	Department null.String `json:"department,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
	CreatedBy  string      `json:"created_by"` // Identity ID
}

// ClassSession is one recurring slot on the weekly timetable.
type ClassSession struct {
	ID        string `json:"id"`
	Subject   string `json:"subject"`
	Teacher   string `json:"teacher"` // display name
	Room      string `json:"room"`
	Day       string `json:"day"` // weekday name
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type Assignment struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"due_date"`
	Subject     string    `json:"subject"`
	Teacher     string    `json:"teacher"` // display name
}

// Overdue reports whether the due date has passed.
func (a Assignment) Overdue(now time.Time) bool { return a.DueDate.Before(now) }

type ChatType string

const (
	ChatClass      ChatType = "class"
	ChatDepartment ChatType = "department"
	ChatPTA        ChatType = "pta"
)

type ChatMessage struct {
	Content   string    `json:"content"`
	Sender    string    `json:"sender"` // display name
	Timestamp time.Time `json:"timestamp"`
}

type ChatGroup struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Type         ChatType     `json:"type"`
	Participants []string     `json:"participants"` // Identity IDs
	LastMessage  *ChatMessage `json:"last_message,omitempty"`
}

// Includes reports whether the identity takes part in this group.
func (g ChatGroup) Includes(identityID string) bool {
	for _, p := range g.Participants {
		if p == identityID {
			return true
		}
	}
	return false
}

type Event struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	StartDate   time.Time   `json:"start_date"`
	EndDate     time.Time   `json:"end_date"`
	Location    null.String `json:"location,omitempty"`
	Organizer   string      `json:"organizer"` // Identity ID
}

// LetterGrade maps a score onto the school's letter scale.
// A non-positive maximum cannot be graded better than F.
func LetterGrade(score, maxScore int) string {
	if maxScore <= 0 {
		return "F"
	}
	pct := float64(score) / float64(maxScore) * 100
	switch {
	case pct >= 90:
		return "A"
	case pct >= 80:
		return "B"
	case pct >= 70:
		return "C"
	case pct >= 60:
		return "D"
	default:
		return "F"
	}
}
