// Package catalog holds the process-wide lookup tables for courses and
// places. Catalogs are plain injected objects, populated once at startup
// and read concurrently afterwards; writes take the exclusive lock.
package catalog

import (
	"fmt"
	"sync"

	"github.com/campusmeet/meetup-service/internal/meetuperr"
	"github.com/campusmeet/meetup-service/internal/models"
)

// CourseCatalog is a get-or-create registry of courses keyed by their
// natural identity (department + number).
type CourseCatalog struct {
	mu      sync.RWMutex
	courses map[models.CourseKey]*models.Course
}

// NewCourseCatalog creates an empty catalog.
func NewCourseCatalog() *CourseCatalog {
	return &CourseCatalog{courses: make(map[models.CourseKey]*models.Course)}
}

// GetOrCreate returns the course with the given identity, creating it on
// first request.
func (c *CourseCatalog) GetOrCreate(dept string, number int) *models.Course {
	key := models.CourseKey{Dept: dept, Number: number}

	c.mu.Lock()
	defer c.mu.Unlock()

	if course, ok := c.courses[key]; ok {
		return course
	}
	course := models.NewCourse(dept, number)
	c.courses[key] = course
	return course
}

// Lookup returns the course with the given identity without creating it.
func (c *CourseCatalog) Lookup(dept string, number int) (*models.Course, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	course, ok := c.courses[models.CourseKey{Dept: dept, Number: number}]
	return course, ok
}

// FindSection resolves a (course, section) identity to its section.
// Unknown identities are reported as ErrNotFound.
func (c *CourseCatalog) FindSection(dept string, number int, sectionID string) (*models.Section, error) {
	course, ok := c.Lookup(dept, number)
	if !ok {
		return nil, fmt.Errorf("course %s %d: %w", dept, number, meetuperr.ErrNotFound)
	}
	sec, ok := course.Section(sectionID)
	if !ok {
		return nil, fmt.Errorf("section %s of %s %d: %w", sectionID, dept, number, meetuperr.ErrNotFound)
	}
	return sec, nil
}

// Len returns the number of registered courses.
func (c *CourseCatalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.courses)
}
