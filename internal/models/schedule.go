package models

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// MinFreeBlockMinutes is the shortest gap that counts as a free block.
// Two people can only meet if each has at least this much time between
// classes.
const MinFreeBlockMinutes = 60

// Default day bounds for free-block computation.
const (
	DefaultDayStart ClockTime = 8 * 60  // 08:00
	DefaultDayEnd   ClockTime = 22 * 60 // 22:00
)

// Common errors for the schedule model.
var (
	ErrSectionTimes   = errors.New("section start time must precede end time")
	ErrCourseRebind   = errors.New("section is already bound to a course")
	ErrInvalidBounds  = errors.New("day start must precede day end")
	ErrEmptyBuilding  = errors.New("building name must be non-empty")
	ErrEmptySectionID = errors.New("section identifier must be non-empty")
)

// Building is a named campus location. Identity is by name.
type Building struct {
	Name     string
	Location LatLon
}

// CourseKey is the natural identity of a course (e.g. CPSC 210).
// Sections hold the key rather than a course pointer so ownership stays
// one-directional; the catalog resolves the key back to the course.
type CourseKey struct {
	Dept   string
	Number int
}

func (k CourseKey) String() string {
	return fmt.Sprintf("%s %d", k.Dept, k.Number)
}

// Section is one scheduled meeting time and location for a course.
// Immutable after creation, except for the course back-reference which is
// set exactly once when the section is added to its course.
type Section struct {
	ID       string
	Pattern  DayPattern
	Start    ClockTime
	End      ClockTime
	Building Building

	course CourseKey
	bound  bool
}

// NewSection validates and creates a section.
func NewSection(id string, pattern DayPattern, start, end ClockTime, building Building) (*Section, error) {
	if id == "" {
		return nil, ErrEmptySectionID
	}
	if building.Name == "" {
		return nil, ErrEmptyBuilding
	}
	if _, err := ParseDayPattern(string(pattern)); err != nil {
		return nil, err
	}
	if start >= end {
		return nil, fmt.Errorf("%w: %s >= %s", ErrSectionTimes, start, end)
	}
	return &Section{ID: id, Pattern: pattern, Start: start, End: end, Building: building}, nil
}

// Course returns the owning course key. The zero key means the section
// has not been added to a course yet.
func (s *Section) Course() CourseKey {
	return s.course
}

// MeetsOn reports whether the section occurs on the given weekday.
func (s *Section) MeetsOn(day Day) bool {
	return s.Pattern.Includes(day)
}

// Contains reports whether t falls inside the section's [Start, End)
// interval.
func (s *Section) Contains(t ClockTime) bool {
	return t >= s.Start && t < s.End
}

func (s *Section) String() string {
	return fmt.Sprintf("%s %s %s %s-%s @ %s", s.course, s.ID, s.Pattern, s.Start, s.End, s.Building.Name)
}

// Course groups the sections offered under one (department, number)
// identity. Courses are owned by the course catalog and created on first
// request.
type Course struct {
	Key      CourseKey
	sections []*Section
}

// NewCourse creates an empty course with the given identity.
func NewCourse(dept string, number int) *Course {
	return &Course{Key: CourseKey{Dept: dept, Number: number}}
}

// AddSection binds the section to this course and appends it. A section
// can belong to exactly one course; re-adding the same section ID is a
// no-op.
func (c *Course) AddSection(sec *Section) error {
	if sec.bound {
		if sec.course == c.Key {
			return nil
		}
		return fmt.Errorf("%w: %s belongs to %s", ErrCourseRebind, sec.ID, sec.course)
	}
	for _, existing := range c.sections {
		if existing.ID == sec.ID {
			return nil
		}
	}
	sec.course = c.Key
	sec.bound = true
	c.sections = append(c.sections, sec)
	return nil
}

// Section looks up a section of this course by identifier.
func (c *Course) Section(id string) (*Section, bool) {
	for _, sec := range c.sections {
		if sec.ID == id {
			return sec, true
		}
	}
	return nil, false
}

// Sections returns the course's sections in insertion order.
func (c *Course) Sections() []*Section {
	out := make([]*Section, len(c.sections))
	copy(out, c.sections)
	return out
}

func (c *Course) String() string {
	return c.Key.String()
}

// Schedule is one student's weekly commitments. The section set only ever
// grows; queries are pure reads guarded by the schedule's own lock, so a
// concurrent roster import never races a free-block check. Overlapping
// sections are accepted, unenforced input.
type Schedule struct {
	mu       sync.RWMutex
	ownerID  int
	sections []*Section
	dayStart ClockTime
	dayEnd   ClockTime
}

// NewSchedule creates an empty schedule with the default day bounds.
func NewSchedule(ownerID int) *Schedule {
	return &Schedule{ownerID: ownerID, dayStart: DefaultDayStart, dayEnd: DefaultDayEnd}
}

// SetDayBounds overrides the opening and closing bounds used for
// free-block computation.
func (s *Schedule) SetDayBounds(start, end ClockTime) error {
	if start >= end {
		return fmt.Errorf("%w: %s >= %s", ErrInvalidBounds, start, end)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.dayStart, s.dayEnd = start, end
	return nil
}

// Add inserts a section. A (course, section) pair already present is
// ignored, keeping the set unique.
func (s *Schedule) Add(sec *Section) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.sections {
		if existing.course == sec.course && existing.ID == sec.ID {
			return
		}
	}
	s.sections = append(s.sections, sec)
}

// Len returns the number of sections in the schedule.
func (s *Schedule) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sections)
}

// SectionsOn returns the sections meeting on the given weekday, ordered by
// start time ascending. Equal start times keep insertion order. The result
// is a snapshot; later inserts do not show up in it.
func (s *Schedule) SectionsOn(day Day) []*Section {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sectionsOn(day)
}

// sectionsOn is SectionsOn without the lock; callers hold s.mu.
func (s *Schedule) sectionsOn(day Day) []*Section {
	var out []*Section
	for _, sec := range s.sections {
		if sec.MeetsOn(day) {
			out = append(out, sec)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out
}

// HasFreeBlockAt reports whether t lies in a free block of at least
// MinFreeBlockMinutes on the given day. A time inside any section's
// [start, end) interval is never free. Gaps are bounded by the adjacent
// sections, or by the day bounds when there is no section on one side.
func (s *Schedule) HasFreeBlockAt(day Day, t ClockTime) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sections := s.sectionsOn(day)

	cursor := s.dayStart
	for _, sec := range sections {
		if sec.Contains(t) {
			return false
		}
		if sec.Start > cursor && t >= cursor && t < sec.Start {
			return int(sec.Start-cursor) >= MinFreeBlockMinutes
		}
		if sec.End > cursor {
			cursor = sec.End
		}
	}

	if t >= cursor && t < s.dayEnd {
		return int(s.dayEnd-cursor) >= MinFreeBlockMinutes
	}
	return false
}

// LocationAt returns the building of the section in progress at t, if the
// student is in class at that time.
func (s *Schedule) LocationAt(day Day, t ClockTime) (Building, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, sec := range s.sectionsOn(day) {
		if sec.Contains(t) {
			return sec.Building, true
		}
	}
	return Building{}, false
}

// AnchorAt resolves the student's anchor building for a free block at t:
// the building of the section immediately preceding t on that day, or of
// the section immediately following when nothing precedes it. Returns
// false when the day has no sections at all.
func (s *Schedule) AnchorAt(day Day, t ClockTime) (Building, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sections := s.sectionsOn(day)
	if len(sections) == 0 {
		return Building{}, false
	}

	anchor := sections[0]
	for _, sec := range sections {
		if sec.Start > t {
			break
		}
		anchor = sec
	}
	return anchor.Building, true
}

// Student is a person with an identity and exactly one schedule.
type Student struct {
	ID        int
	FirstName string
	LastName  string

	schedule *Schedule
}

// NewStudent creates a student with an empty schedule.
func NewStudent(id int, firstName, lastName string) *Student {
	return &Student{ID: id, FirstName: firstName, LastName: lastName, schedule: NewSchedule(id)}
}

// Schedule returns the student's schedule. Never nil.
func (st *Student) Schedule() *Schedule {
	return st.schedule
}

func (st *Student) String() string {
	return fmt.Sprintf("%s, %s (%d)", st.LastName, st.FirstName, st.ID)
}
