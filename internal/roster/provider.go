// Package roster talks to the enrollment web service that hands out
// student schedules.
package roster

import "context"

// StudentRecord is the wire shape returned by the roster service.
type StudentRecord struct {
	ID        int             `json:"Id"`
	FirstName string          `json:"FirstName"`
	LastName  string          `json:"LastName"`
	Sections  []SectionRecord `json:"Sections"`
}

// SectionRecord identifies one enrolled section by catalog identity.
type SectionRecord struct {
	CourseName   string `json:"CourseName"`
	CourseNumber int    `json:"CourseNumber"`
	SectionName  string `json:"SectionName"`
}

// Provider fetches student records from the roster service.
type Provider interface {
	FetchRandomStudent(ctx context.Context) (*StudentRecord, error)
}
