package directory

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// seedTime stands in for "enrollment date" on the demo records.
var seedTime = time.Date(2024, time.January, 8, 8, 0, 0, 0, time.UTC)

// Seed returns the demo identities. The data is fixed sample data; there
// is no backing store to load real records from.
func Seed() []Identity {
	return []Identity{
		{
			ID:         "1",
			Name:       "Alex Johnson",
			Email:      "alex@school.edu",
			Role:       RoleStudent,
			ExternalID: "STU-001",
			CreatedAt:  seedTime,
			Student: &StudentProfile{
				Grade:      "10A",
				Department: "Science",
				ParentID:   null.StringFrom("7"),
				Attendance: Attendance{Present: 42, Absent: 3, Late: 5},
				Fees: Fees{
					Tuition: Fee{Amount: 5000, Paid: true, PaidAt: null.TimeFrom(seedTime.AddDate(0, 1, 0))},
					Other:   Fee{Amount: 500, Paid: false},
				},
			},
		},
		{
			ID:         "2",
			Name:       "Sarah Williams",
			Email:      "sarah@school.edu",
			Role:       RoleStudent,
			ExternalID: "STU-002",
			CreatedAt:  seedTime,
			Student: &StudentProfile{
				Grade:      "10B",
				Department: "Arts",
				ParentID:   null.StringFrom("8"),
				Attendance: Attendance{Present: 39, Absent: 5, Late: 6},
				Fees: Fees{
					Tuition: Fee{Amount: 5000, Paid: false},
					Other:   Fee{Amount: 500, Paid: false},
				},
			},
		},
		{
			ID:         "3",
			Name:       "Dr. Michael Brown",
			Email:      "michael@school.edu",
			Role:       RoleTeacher,
			ExternalID: "TCH-001",
			CreatedAt:  seedTime,
			Teacher: &TeacherProfile{
				Subjects:    []string{"Mathematics", "Physics"},
				Departments: []string{"Science"},
				Classes:     []string{"10A", "10B", "11A"},
			},
		},
		{
			ID:         "4",
			Name:       "Mrs. Emma Davis",
			Email:      "emma@school.edu",
			Role:       RoleTeacher,
			ExternalID: "TCH-002",
			CreatedAt:  seedTime,
			Teacher: &TeacherProfile{
				Subjects:    []string{"Literature", "History"},
				Departments: []string{"Arts"},
				Classes:     []string{"10B", "11B", "12B"},
			},
		},
		{
			ID:         "5",
			Name:       "Principal Wilson",
			Email:      "principal@school.edu",
			Role:       RoleAdmin,
			ExternalID: "ADM-001",
			CreatedAt:  seedTime,
			Admin:      &AdminProfile{Position: "Principal"},
		},
		{
			ID:         "6",
			Name:       "Vice Principal Thomas",
			Email:      "vprincipal@school.edu",
			Role:       RoleAdmin,
			ExternalID: "ADM-002",
			CreatedAt:  seedTime,
			Admin:      &AdminProfile{Position: "Vice Principal"},
		},
		{
			ID:         "7",
			Name:       "Mr. Robert Johnson",
			Email:      "robert@example.com",
			Role:       RoleParent,
			ExternalID: "PAR-001",
			CreatedAt:  seedTime,
			Parent: &ParentProfile{
				Children: []string{"1"},
				Phone:    "123-456-7890",
				Address:  "123 Main St, City",
			},
		},
		{
			ID:         "8",
			Name:       "Mrs. Patricia Williams",
			Email:      "patricia@example.com",
			Role:       RoleParent,
			ExternalID: "PAR-002",
			CreatedAt:  seedTime,
			Parent: &ParentProfile{
				Children: []string{"2"},
				Phone:    "234-567-8901",
				Address:  "456 Oak St, City",
			},
		},
	}
}

// Seeded returns a Directory populated with the demo identities.
// The seed is known-good; a failure here is a programming error.
func Seeded() *Directory {
	d, err := New(Seed()...)
	if err != nil {
		panic(err)
	}
	return d
}
