package models

// SchedulePlot carries everything needed to draw one person's day: the
// ordered sections, a display label and colour, and the walking route
// connecting the section buildings once the assembler has filled it in.
// FailedSegments lists the indexes of section pairs whose route segment
// could not be fetched.
type SchedulePlot struct {
	Owner          string
	Colour         string
	Sections       []*Section
	Route          []LatLon
	FailedSegments []int
}

// NewSchedulePlot creates a plot for the given ordered sections.
func NewSchedulePlot(owner, colour string, sections []*Section) *SchedulePlot {
	return &SchedulePlot{Owner: owner, Colour: colour, Sections: sections}
}
