package school

import (
	"sort"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/darasahq/darasa/core"
)

// GradeStatus tracks whether an entry has reached a backend. There is no
// backend here, so entries stay pending until something flushes them; the
// UI must show that honestly instead of pretending a server saved them.
type GradeStatus string

const (
	GradePending GradeStatus = "pending_sync"
	GradeSynced  GradeStatus = "synced"
)

type GradeEntry struct {
	StudentID  string      `json:"student_id"`
	Score      int         `json:"score"`
	MaxScore   int         `json:"max_score"`
	Letter     string      `json:"letter"`
	RecordedBy string      `json:"recorded_by"` // Identity ID
	RecordedAt time.Time   `json:"recorded_at"`
	Status     GradeStatus `json:"status"`
}

// Gradebook is the local cache of grade entries a teacher has recorded
// this run. One entry per student; re-recording overwrites.
type Gradebook struct {
	mu      sync.Mutex
	entries map[string]GradeEntry
}

func NewGradebook() *Gradebook {
	return &Gradebook{entries: make(map[string]GradeEntry)}
}

// Record stores a score for a student and derives the letter grade.
func (gb *Gradebook) Record(studentID string, score, maxScore int, recordedBy string) (GradeEntry, error) {
	if studentID == "" {
		return GradeEntry{}, core.NewValidationError(nil, core.FieldError{Field: "student_id", Error: "this field is required"})
	}
	if maxScore <= 0 {
		return GradeEntry{}, core.NewValidationError(nil, core.FieldError{Field: "max_score", Error: "must be a positive number"})
	}
	if score < 0 || score > maxScore {
		return GradeEntry{}, core.NewValidationError(nil, core.FieldError{Field: "score", Error: "must be between 0 and the maximum score"})
	}

	entry := GradeEntry{
		StudentID:  studentID,
		Score:      score,
		MaxScore:   maxScore,
		Letter:     LetterGrade(score, maxScore),
		RecordedBy: recordedBy,
		RecordedAt: NowFunc().UTC(),
		Status:     GradePending,
	}

	gb.mu.Lock()
	gb.entries[studentID] = entry
	gb.mu.Unlock()
	return entry, nil
}

// Pending returns the entries not yet synced, ordered by student ID.
func (gb *Gradebook) Pending() []GradeEntry {
	gb.mu.Lock()
	defer gb.mu.Unlock()

	res := make([]GradeEntry, 0, len(gb.entries))
	for _, e := range gb.entries {
		if e.Status == GradePending {
			res = append(res, e)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].StudentID < res[j].StudentID })
	return res
}

// Flush marks every pending entry synced and returns them; a future
// backend sync would consume this.
func (gb *Gradebook) Flush() []GradeEntry {
	gb.mu.Lock()
	defer gb.mu.Unlock()

	res := make([]GradeEntry, 0, len(gb.entries))
	for id, e := range gb.entries {
		if e.Status != GradePending {
			continue
		}
		e.Status = GradeSynced
		gb.entries[id] = e
		res = append(res, e)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].StudentID < res[j].StudentID })
	return res
}

var errNoSuchEntry = errors.New("no grade recorded for student")

// Get returns the entry recorded for a student, if any.
func (gb *Gradebook) Get(studentID string) (GradeEntry, error) {
	gb.mu.Lock()
	defer gb.mu.Unlock()

	e, ok := gb.entries[studentID]
	if !ok {
		return GradeEntry{}, errors.Wrap(errNoSuchEntry, studentID)
	}
	return e, nil
}
