package catalog

import (
	"fmt"

	"github.com/campusmeet/meetup-service/internal/models"
)

// Campus buildings used by the built-in dataset.
var (
	buildingDMP       = models.Building{Name: "DMP", Location: models.MustLatLon(49.261474, -123.248060)}
	buildingBuchanan  = models.Building{Name: "Buchanan", Location: models.MustLatLon(49.269258, -123.254784)}
	buildingSwing     = models.Building{Name: "Swing", Location: models.MustLatLon(49.262786, -123.255044)}
	buildingBarber    = models.Building{Name: "Barber", Location: models.MustLatLon(49.267442, -123.252471)}
	buildingWoodward  = models.Building{Name: "Woodward", Location: models.MustLatLon(49.264704, -123.247536)}
	buildingKlinck    = models.Building{Name: "Klinck", Location: models.MustLatLon(49.266112, -123.254776)}
	buildingHennings  = models.Building{Name: "Hennings", Location: models.MustLatLon(49.266400, -123.252047)}
	buildingGeography = models.Building{Name: "Geography", Location: models.MustLatLon(49.266039, -123.256129)}
	buildingMacMillan = models.Building{Name: "MacMillan", Location: models.MustLatLon(49.261167, -123.251157)}
	buildingLiu       = models.Building{Name: "Liu", Location: models.MustLatLon(49.267632, -123.259334)}
	buildingESB       = models.Building{Name: "ESB", Location: models.MustLatLon(49.262866, -123.253230)}
	buildingBioSci    = models.Building{Name: "BioSci", Location: models.MustLatLon(49.263920, -123.251552)}
)

type seedSection struct {
	dept     string
	number   int
	id       string
	pattern  models.DayPattern
	start    string
	end      string
	building models.Building
}

var seedSections = []seedSection{
	{"CPSC", 210, "202", models.PatternMWF, "12:00", "12:50", buildingDMP},
	{"CPSC", 210, "201", models.PatternMWF, "16:00", "16:50", buildingDMP},
	{"CPSC", 210, "BCS", models.PatternMWF, "12:00", "12:50", buildingDMP},
	{"ENGL", 222, "007", models.PatternMWF, "14:00", "14:50", buildingBuchanan},
	{"SCIE", 220, "200", models.PatternMWF, "18:00", "18:50", buildingSwing},
	{"PHIL", 100, "101", models.PatternMWF, "18:00", "18:50", buildingBarber},
	{"MATH", 200, "201", models.PatternMWF, "09:00", "09:50", buildingBuchanan},
	{"FREN", 102, "202", models.PatternMWF, "11:00", "11:50", buildingBarber},
	{"JAPN", 103, "002", models.PatternMWF, "10:00", "11:50", buildingBuchanan},
	{"SCIE", 113, "213", models.PatternMWF, "18:00", "18:50", buildingSwing},
	{"MICB", 308, "201", models.PatternMWF, "12:00", "12:50", buildingWoodward},
	{"MICB", 307, "201", models.PatternMWF, "18:00", "18:50", buildingWoodward},
	{"MATH", 221, "202", models.PatternTR, "11:00", "12:20", buildingKlinck},
	{"PHYS", 203, "201", models.PatternTR, "09:30", "10:50", buildingHennings},
	{"CRWR", 209, "002", models.PatternTR, "12:30", "13:50", buildingGeography},
	{"FNH", 330, "002", models.PatternTR, "15:00", "16:20", buildingMacMillan},
	{"CPSC", 430, "201", models.PatternTR, "16:20", "17:50", buildingLiu},
	{"CHEM", 250, "203", models.PatternTR, "10:00", "11:20", buildingKlinck},
	{"EOSC", 222, "200", models.PatternTR, "11:00", "12:20", buildingESB},
	{"BIOL", 201, "201", models.PatternTR, "14:00", "15:20", buildingBioSci},
	{"STAT", 241, "201", models.PatternMWF, "08:00", "08:50", buildingESB},
	{"PSYC", 207, "201", models.PatternMWF, "13:00", "13:50", buildingESB},
	{"FREN", 111, "202", models.PatternMWF, "10:00", "10:50", buildingBuchanan},
}

// SeedCourses loads the built-in campus dataset into the catalog, so the
// service is usable without a student-information feed.
func SeedCourses(courses *CourseCatalog) error {
	for _, s := range seedSections {
		sec, err := models.NewSection(s.id, s.pattern, models.MustClock(s.start), models.MustClock(s.end), s.building)
		if err != nil {
			return fmt.Errorf("seed %s %d %s: %w", s.dept, s.number, s.id, err)
		}
		if err := courses.GetOrCreate(s.dept, s.number).AddSection(sec); err != nil {
			return fmt.Errorf("seed %s %d %s: %w", s.dept, s.number, s.id, err)
		}
	}
	return nil
}
