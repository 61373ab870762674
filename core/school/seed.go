package school

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// Collections holds the static dashboard data the views render.
type Collections struct {
	Announcements []Announcement
	Sessions      []ClassSession
	Assignments   []Assignment
	ChatGroups    []ChatGroup
	Events        []Event
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Seed returns the demo collections.
func Seed() Collections {
	return Collections{
		Announcements: []Announcement{
			{
				ID:        "1",
				Title:     "End of Term Examinations",
				Content:   "End of term examinations will begin on Monday, June 10th. Please prepare accordingly and check the detailed schedule on the notice board.",
				CreatedAt: time.Date(2024, time.May, 1, 10, 0, 0, 0, time.UTC),
				CreatedBy: "5",
			},
			{
				ID:         "2",
				Title:      "Science Fair Registration",
				Content:    "Registration for the Annual Science Fair is now open. Interested students should submit their project proposals by May 15th.",
				Department: null.StringFrom("Science"),
				CreatedAt:  time.Date(2024, time.May, 2, 14, 30, 0, 0, time.UTC),
				CreatedBy:  "3",
			},
			{
				ID:         "3",
				Title:      "Arts Exhibition",
				Content:    "The department is organizing an arts exhibition on May 20th. All students are encouraged to submit their artwork for display.",
				Department: null.StringFrom("Arts"),
				CreatedAt:  time.Date(2024, time.May, 3, 9, 15, 0, 0, time.UTC),
				CreatedBy:  "4",
			},
		},
		Sessions: []ClassSession{
			{ID: "1", Subject: "Mathematics", Teacher: "Dr. Michael Brown", Room: "Room 101", Day: "Monday", StartTime: "08:00", EndTime: "09:30"},
			{ID: "2", Subject: "Physics", Teacher: "Dr. Michael Brown", Room: "Lab 3", Day: "Monday", StartTime: "10:00", EndTime: "11:30"},
			{ID: "3", Subject: "Literature", Teacher: "Mrs. Emma Davis", Room: "Room 205", Day: "Tuesday", StartTime: "08:00", EndTime: "09:30"},
			{ID: "4", Subject: "History", Teacher: "Mrs. Emma Davis", Room: "Room 202", Day: "Tuesday", StartTime: "10:00", EndTime: "11:30"},
			{ID: "5", Subject: "Mathematics", Teacher: "Dr. Michael Brown", Room: "Room 101", Day: "Wednesday", StartTime: "08:00", EndTime: "09:30"},
			{ID: "6", Subject: "Literature", Teacher: "Mrs. Emma Davis", Room: "Room 205", Day: "Thursday", StartTime: "08:00", EndTime: "09:30"},
			{ID: "7", Subject: "Physics", Teacher: "Dr. Michael Brown", Room: "Lab 3", Day: "Friday", StartTime: "10:00", EndTime: "11:30"},
		},
		Assignments: []Assignment{
			{
				ID:          "1",
				Title:       "Calculus Problem Set",
				Description: "Complete problems 1-20 from Chapter 4",
				DueDate:     day(2024, time.May, 15),
				Subject:     "Mathematics",
				Teacher:     "Dr. Michael Brown",
			},
			{
				ID:          "2",
				Title:       "Physics Lab Report",
				Description: "Write a report on the pendulum experiment conducted in class",
				DueDate:     day(2024, time.May, 18),
				Subject:     "Physics",
				Teacher:     "Dr. Michael Brown",
			},
			{
				ID:          "3",
				Title:       "Book Review",
				Description: "Write a 1000-word review of 'To Kill a Mockingbird'",
				DueDate:     day(2024, time.May, 20),
				Subject:     "Literature",
				Teacher:     "Mrs. Emma Davis",
			},
			{
				ID:          "4",
				Title:       "Historical Essay",
				Description: "Research and write an essay on a significant event from World War II",
				DueDate:     day(2024, time.May, 25),
				Subject:     "History",
				Teacher:     "Mrs. Emma Davis",
			},
		},
		ChatGroups: []ChatGroup{
			{
				ID:           "1",
				Name:         "10A Class Group",
				Type:         ChatClass,
				Participants: []string{"1", "3"},
				LastMessage: &ChatMessage{
					Content:   "When is the math homework due?",
					Sender:    "Alex Johnson",
					Timestamp: time.Date(2024, time.May, 4, 15, 30, 0, 0, time.UTC),
				},
			},
			{
				ID:           "2",
				Name:         "10B Class Group",
				Type:         ChatClass,
				Participants: []string{"2", "4"},
				LastMessage: &ChatMessage{
					Content:   "Don't forget to bring your textbooks tomorrow",
					Sender:    "Mrs. Emma Davis",
					Timestamp: time.Date(2024, time.May, 4, 16, 45, 0, 0, time.UTC),
				},
			},
			{
				ID:           "3",
				Name:         "Science Department",
				Type:         ChatDepartment,
				Participants: []string{"1", "3"},
				LastMessage: &ChatMessage{
					Content:   "Science fair registration deadline is approaching",
					Sender:    "Dr. Michael Brown",
					Timestamp: time.Date(2024, time.May, 3, 14, 20, 0, 0, time.UTC),
				},
			},
			{
				ID:           "4",
				Name:         "PTA Group",
				Type:         ChatPTA,
				Participants: []string{"3", "4", "5", "6", "7", "8"},
				LastMessage: &ChatMessage{
					Content:   "Next PTA meeting is scheduled for May 15th",
					Sender:    "Principal Wilson",
					Timestamp: time.Date(2024, time.May, 2, 10, 15, 0, 0, time.UTC),
				},
			},
		},
		Events: []Event{
			{
				ID:          "1",
				Title:       "End of Term Examinations",
				Description: "Final exams for all subjects",
				StartDate:   day(2024, time.June, 10),
				EndDate:     day(2024, time.June, 20),
				Organizer:   "5",
			},
			{
				ID:          "2",
				Title:       "Science Fair",
				Description: "Annual school science fair",
				StartDate:   day(2024, time.May, 25),
				EndDate:     day(2024, time.May, 25),
				Location:    null.StringFrom("School Auditorium"),
				Organizer:   "3",
			},
			{
				ID:          "3",
				Title:       "Arts Exhibition",
				Description: "Display of student artwork",
				StartDate:   day(2024, time.May, 20),
				EndDate:     day(2024, time.May, 22),
				Location:    null.StringFrom("School Gallery"),
				Organizer:   "4",
			},
			{
				ID:          "4",
				Title:       "PTA Meeting",
				Description: "Monthly parent-teacher association meeting",
				StartDate:   time.Date(2024, time.May, 15, 18, 0, 0, 0, time.UTC),
				EndDate:     time.Date(2024, time.May, 15, 20, 0, 0, 0, time.UTC),
				Location:    null.StringFrom("Conference Room"),
				Organizer:   "5",
			},
		},
	}
}
