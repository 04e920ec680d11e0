package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/campusmeet/meetup-service/internal/meetuperr"
	"github.com/campusmeet/meetup-service/internal/models"
)

type studentResponse struct {
	ID        int               `json:"id"`
	FirstName string            `json:"first_name"`
	LastName  string            `json:"last_name"`
	Sections  []sectionResponse `json:"sections"`
}

type sectionResponse struct {
	Course   string  `json:"course"`
	Section  string  `json:"section"`
	Pattern  string  `json:"pattern"`
	Start    string  `json:"start"`
	End      string  `json:"end"`
	Building string  `json:"building"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
}

type placeResponse struct {
	Name      string  `json:"name"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	Category  string  `json:"category,omitempty"`
	PriceTier int     `json:"price_tier"`
}

type pointResponse struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type plotResponse struct {
	Owner          string            `json:"owner"`
	Colour         string            `json:"colour"`
	Sections       []sectionResponse `json:"sections"`
	Route          []pointResponse   `json:"route"`
	FailedSegments []int             `json:"failed_segments,omitempty"`
	Partial        bool              `json:"partial"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleImportRandom pulls one random student record from the roster and
// registers them along with their known sections.
func (s *Server) handleImportRandom(w http.ResponseWriter, r *http.Request) {
	rec, err := s.roster.FetchRandomStudent(r.Context())
	if err != nil {
		s.log.Error("roster fetch failed", slog.String("error", err.Error()))
		s.writeError(w, http.StatusBadGateway, "roster service unavailable")
		return
	}

	student, err := s.students.ImportRecord(rec)
	if err != nil {
		s.log.Error("roster record import failed",
			slog.Int("student_id", rec.ID),
			slog.String("error", err.Error()),
		)
		s.writeError(w, http.StatusUnprocessableEntity, "roster record references unknown courses")
		return
	}

	s.writeJSON(w, http.StatusCreated, toStudentResponse(student))
}

func (s *Server) handleGetStudent(w http.ResponseWriter, r *http.Request) {
	student, ok := s.studentParam(w, r, "id")
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, toStudentResponse(student))
}

// handleFreeBlock answers whether the student has a free block of at
// least an hour containing the given moment.
func (s *Server) handleFreeBlock(w http.ResponseWriter, r *http.Request) {
	student, ok := s.studentParam(w, r, "id")
	if !ok {
		return
	}
	day, t, ok := s.dayTimeParams(w, r)
	if !ok {
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]bool{
		"free": student.Schedule().HasFreeBlockAt(day, t),
	})
}

func (s *Server) handlePlot(w http.ResponseWriter, r *http.Request) {
	student, ok := s.studentParam(w, r, "id")
	if !ok {
		return
	}
	day, err := models.ParseDay(r.URL.Query().Get("day"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid day")
		return
	}
	colour := r.URL.Query().Get("colour")
	if colour == "" {
		colour = "red"
	}

	plot, err := s.assembler.BuildPlot(r.Context(), student, day, colour)
	if err != nil {
		s.writePlotError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, toPlotResponse(plot))
}

func (s *Server) handleMeetup(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	me, ok := s.studentQuery(w, query.Get("me"))
	if !ok {
		return
	}

	// A missing partner is a domain verdict, not a request error, so it
	// flows through the resolver to produce the infeasible message.
	var partner *models.Student
	if raw := query.Get("partner"); raw != "" {
		if partner, ok = s.studentQuery(w, raw); !ok {
			return
		}
	}

	day, t, ok := s.dayTimeParams(w, r)
	if !ok {
		return
	}

	radius := s.campusRadius
	if raw := query.Get("radius"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed <= 0 {
			s.writeError(w, http.StatusBadRequest, "invalid radius")
			return
		}
		radius = parsed
	}

	found, err := s.resolver.Resolve(r.Context(), me, partner, day, t, radius, query.Get("category"))
	if err != nil {
		if inf, ok := meetuperr.AsInfeasible(err); ok {
			s.writeError(w, http.StatusConflict, inf.Error())
			return
		}
		s.log.Error("meetup resolution failed", slog.String("error", err.Error()))
		s.writeError(w, http.StatusInternalServerError, "meetup resolution failed")
		return
	}

	s.writeJSON(w, http.StatusOK, toPlaceResponses(found))
}

// handlePlaces lists cached places near a point, defaulting to the
// campus centre and radius.
func (s *Server) handlePlaces(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	center := s.campus
	if latRaw, lonRaw := query.Get("lat"), query.Get("lon"); latRaw != "" || lonRaw != "" {
		lat, latErr := strconv.ParseFloat(latRaw, 64)
		lon, lonErr := strconv.ParseFloat(lonRaw, 64)
		if latErr != nil || lonErr != nil {
			s.writeError(w, http.StatusBadRequest, "invalid coordinates")
			return
		}
		parsed, err := models.NewLatLon(lat, lon)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "invalid coordinates")
			return
		}
		center = parsed
	}

	radius := s.campusRadius
	if raw := query.Get("radius"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed <= 0 {
			s.writeError(w, http.StatusBadRequest, "invalid radius")
			return
		}
		radius = parsed
	}

	var found []models.Place
	if category := query.Get("category"); category != "" {
		found = s.places.PlacesNearWithCategory(center, radius, category)
	} else {
		found = s.places.PlacesNear(center, radius)
	}

	s.writeJSON(w, http.StatusOK, toPlaceResponses(found))
}

func (s *Server) writePlotError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, meetuperr.ErrNoSections):
		s.writeError(w, http.StatusConflict, "no classes scheduled on that day")
	case errors.Is(err, meetuperr.ErrNoRoute):
		s.writeError(w, http.StatusConflict, "not enough classes to route between")
	default:
		s.log.Error("plot assembly failed", slog.String("error", err.Error()))
		s.writeError(w, http.StatusInternalServerError, "plot assembly failed")
	}
}

func (s *Server) studentParam(w http.ResponseWriter, r *http.Request, name string) (*models.Student, bool) {
	return s.studentQuery(w, chi.URLParam(r, name))
}

func (s *Server) studentQuery(w http.ResponseWriter, raw string) (*models.Student, bool) {
	id, err := strconv.Atoi(raw)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid student id")
		return nil, false
	}
	student, ok := s.students.Get(id)
	if !ok {
		s.writeError(w, http.StatusNotFound, "student not found")
		return nil, false
	}
	return student, true
}

func (s *Server) dayTimeParams(w http.ResponseWriter, r *http.Request) (models.Day, models.ClockTime, bool) {
	query := r.URL.Query()

	day, err := models.ParseDay(query.Get("day"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid day")
		return 0, 0, false
	}
	t, err := models.ParseClock(query.Get("time"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid time, expected HH:MM")
		return 0, 0, false
	}
	return day, t, true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log.Error("response encoding failed", slog.String("error", err.Error()))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg})
}

func toStudentResponse(student *models.Student) studentResponse {
	resp := studentResponse{
		ID:        student.ID,
		FirstName: student.FirstName,
		LastName:  student.LastName,
		Sections:  []sectionResponse{},
	}
	for day := models.Monday; day <= models.Friday; day++ {
		for _, sec := range student.Schedule().SectionsOn(day) {
			if sec.Pattern.Days()[0] != day {
				continue // listed once, under the first day of its pattern
			}
			resp.Sections = append(resp.Sections, toSectionResponse(sec))
		}
	}
	return resp
}

func toSectionResponse(sec *models.Section) sectionResponse {
	return sectionResponse{
		Course:   sec.Course().String(),
		Section:  sec.ID,
		Pattern:  string(sec.Pattern),
		Start:    sec.Start.String(),
		End:      sec.End.String(),
		Building: sec.Building.Name,
		Lat:      sec.Building.Location.Latitude,
		Lon:      sec.Building.Location.Longitude,
	}
}

func toPlaceResponses(found []models.Place) []placeResponse {
	resp := make([]placeResponse, 0, len(found))
	for _, p := range found {
		resp = append(resp, placeResponse{
			Name:      p.Name,
			Lat:       p.Location.Latitude,
			Lon:       p.Location.Longitude,
			Category:  p.Category,
			PriceTier: p.PriceTier,
		})
	}
	return resp
}

func toPlotResponse(plot *models.SchedulePlot) plotResponse {
	resp := plotResponse{
		Owner:          plot.Owner,
		Colour:         plot.Colour,
		Sections:       make([]sectionResponse, 0, len(plot.Sections)),
		Route:          make([]pointResponse, 0, len(plot.Route)),
		FailedSegments: plot.FailedSegments,
		Partial:        len(plot.FailedSegments) > 0,
	}
	for _, sec := range plot.Sections {
		resp.Sections = append(resp.Sections, toSectionResponse(sec))
	}
	for _, pt := range plot.Route {
		resp.Route = append(resp.Route, pointResponse{Lat: pt.Latitude, Lon: pt.Longitude})
	}
	return resp
}
