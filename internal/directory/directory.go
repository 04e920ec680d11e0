// Package directory owns every known student. It mediates student
// creation and lookup and assembles schedules from catalog identities or
// roster records.
package directory

import (
	"fmt"
	"sync"

	"github.com/campusmeet/meetup-service/internal/catalog"
	"github.com/campusmeet/meetup-service/internal/meetuperr"
	"github.com/campusmeet/meetup-service/internal/models"
	"github.com/campusmeet/meetup-service/internal/roster"
)

// StudentDirectory is the registry of students, keyed by id.
type StudentDirectory struct {
	mu       sync.RWMutex
	students map[int]*models.Student
	courses  *catalog.CourseCatalog
	dayStart models.ClockTime
	dayEnd   models.ClockTime
}

// NewStudentDirectory creates a directory resolving sections against the
// given course catalog.
func NewStudentDirectory(courses *catalog.CourseCatalog) *StudentDirectory {
	return &StudentDirectory{
		students: make(map[int]*models.Student),
		courses:  courses,
		dayStart: models.DefaultDayStart,
		dayEnd:   models.DefaultDayEnd,
	}
}

// SetDayBounds changes the free-block day bounds applied to students
// registered from now on.
func (d *StudentDirectory) SetDayBounds(start, end models.ClockTime) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if start >= end {
		return models.ErrInvalidBounds
	}
	d.dayStart, d.dayEnd = start, end
	return nil
}

// AddStudent registers a student, or returns the existing one when the
// id is already known.
func (d *StudentDirectory) AddStudent(id int, firstName, lastName string) *models.Student {
	d.mu.Lock()
	defer d.mu.Unlock()

	if st, ok := d.students[id]; ok {
		return st
	}
	st := models.NewStudent(id, firstName, lastName)
	// Bounds are validated by SetDayBounds, so this cannot fail.
	_ = st.Schedule().SetDayBounds(d.dayStart, d.dayEnd)
	d.students[id] = st
	return st
}

// Get looks up a student by id.
func (d *StudentDirectory) Get(id int) (*models.Student, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	st, ok := d.students[id]
	return st, ok
}

// AddSectionToSchedule resolves the (course, section) identity against
// the catalog and inserts the section into the student's schedule.
// Unknown identities surface as ErrNotFound.
func (d *StudentDirectory) AddSectionToSchedule(studentID int, dept string, number int, sectionID string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	st, ok := d.students[studentID]
	if !ok {
		return fmt.Errorf("student %d: %w", studentID, meetuperr.ErrNotFound)
	}

	sec, err := d.courses.FindSection(dept, number, sectionID)
	if err != nil {
		return err
	}

	st.Schedule().Add(sec)
	return nil
}

// ImportRecord materializes a roster record as a student with a schedule.
// Every section identity in the record must be known to the catalog; the
// record is resolved in full before the directory is touched, so a bad
// record never leaves a half-imported student behind.
func (d *StudentDirectory) ImportRecord(rec *roster.StudentRecord) (*models.Student, error) {
	resolved := make([]*models.Section, 0, len(rec.Sections))
	for _, sr := range rec.Sections {
		sec, err := d.courses.FindSection(sr.CourseName, sr.CourseNumber, sr.SectionName)
		if err != nil {
			return nil, fmt.Errorf("import student %d: %w", rec.ID, err)
		}
		resolved = append(resolved, sec)
	}

	st := d.AddStudent(rec.ID, rec.FirstName, rec.LastName)
	for _, sec := range resolved {
		st.Schedule().Add(sec)
	}
	return st, nil
}
