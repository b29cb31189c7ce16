package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/jto5108/Community-Clinic-Load-Manager/appointment"
	"github.com/jto5108/Community-Clinic-Load-Manager/center"
	"github.com/jto5108/Community-Clinic-Load-Manager/routing"
	"github.com/jto5108/Community-Clinic-Load-Manager/util/metrics"
)

// Wire types. Field names are the snake_case names the dashboard and
// API consumers read.

type centerIn struct {
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
}

type centerOut struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Capacity    int     `json:"capacity"`
	CurrentLoad float64 `json:"current_load"`
	IsUp        bool    `json:"is_up"`
}

type centerStatusIn struct {
	IsUp bool `json:"is_up"`
}

type appointmentIn struct {
	Urgency          int     `json:"urgency"`
	ExpectedDuration float64 `json:"expected_duration"`
}

type appointmentOut struct {
	ID                int     `json:"id"`
	CenterID          int     `json:"center_id"`
	CenterName        string  `json:"center_name"`
	PredictedWaitTime float64 `json:"predicted_wait_time"`
	Urgency           int     `json:"urgency"`
	ExpectedDuration  float64 `json:"expected_duration"`
}

type eventOut struct {
	Timestamp float64 `json:"timestamp"` // unix seconds
	RequestID int     `json:"request_id"`
	CenterID  int     `json:"center_id"`
	Reason    string  `json:"reason"`
}

type errorOut struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func toCenterOut(snap center.Snapshot) centerOut {
	return centerOut{
		ID:          snap.ID,
		Name:        snap.Name,
		Capacity:    snap.Capacity,
		CurrentLoad: snap.CurrentLoad,
		IsUp:        snap.Up,
	}
}

// handleCenters serves GET /centers (list) and POST /centers (create).
func (s *Server) handleCenters(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		list := s.registry.List()
		out := make([]centerOut, 0, len(list))
		for _, c := range list {
			out = append(out, toCenterOut(c.Snapshot()))
		}
		s.writeJSON(w, http.StatusOK, out)

	case http.MethodPost:
		var in centerIn
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			s.writeError(w, http.StatusBadRequest, "INVALID_JSON", fmt.Sprintf("failed to parse request body: %v", err))
			return
		}
		if strings.TrimSpace(in.Name) == "" {
			s.writeError(w, http.StatusBadRequest, "INVALID_NAME", "center name must not be empty")
			return
		}

		c := s.registry.Add(in.Name, in.Capacity)
		metrics.SetCenterLoad(c.ID, 0)
		metrics.SetCenterUp(c.ID, true)
		s.log.Infof("created center %d %q (capacity %d)", c.ID, c.Name, c.Capacity)
		s.writeJSON(w, http.StatusOK, toCenterOut(c.Snapshot()))

	default:
		s.writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "only GET and POST are allowed")
	}
}

// handleCenterByID serves GET /centers/{id} and PATCH
// /centers/{id}/status.
func (s *Server) handleCenterByID(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/centers/")
	parts := strings.SplitN(path, "/", 2)

	id, err := strconv.Atoi(parts[0])
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "INVALID_ID", fmt.Sprintf("invalid center id %q", parts[0]))
		return
	}

	c, err := s.registry.Get(id)
	if err != nil {
		if errors.Is(err, center.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, "CENTER_NOT_FOUND", err.Error())
			return
		}
		s.writeError(w, http.StatusInternalServerError, "INTERNAL", err.Error())
		return
	}

	switch {
	case len(parts) == 1 && r.Method == http.MethodGet:
		s.writeJSON(w, http.StatusOK, toCenterOut(c.Snapshot()))

	case len(parts) == 2 && parts[1] == "status" && r.Method == http.MethodPatch:
		var in centerStatusIn
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			s.writeError(w, http.StatusBadRequest, "INVALID_JSON", fmt.Sprintf("failed to parse request body: %v", err))
			return
		}
		c.SetUp(in.IsUp)
		metrics.SetCenterUp(c.ID, in.IsUp)
		s.log.Infof("center %d marked is_up=%v", c.ID, in.IsUp)
		s.writeJSON(w, http.StatusOK, toCenterOut(c.Snapshot()))

	default:
		s.writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "unsupported method or path")
	}
}

// handleAppointments serves POST /appointments: validate, mint a
// request, route it, and report the assignment.
func (s *Server) handleAppointments(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "only POST is allowed")
		return
	}

	var in appointmentIn
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		s.writeError(w, http.StatusBadRequest, "INVALID_JSON", fmt.Sprintf("failed to parse request body: %v", err))
		return
	}

	// An omitted urgency means a routine visit.
	if in.Urgency == 0 {
		in.Urgency = 5
	}
	if in.Urgency < appointment.MinUrgency || in.Urgency > appointment.MaxUrgency {
		s.writeError(w, http.StatusBadRequest, "INVALID_URGENCY",
			fmt.Sprintf("urgency must be between %d and %d, got %d",
				appointment.MinUrgency, appointment.MaxUrgency, in.Urgency))
		return
	}
	if in.ExpectedDuration <= 0 {
		s.writeError(w, http.StatusBadRequest, "INVALID_DURATION",
			fmt.Sprintf("expected_duration must be positive, got %g", in.ExpectedDuration))
		return
	}

	req := s.factory.New(in.Urgency, in.ExpectedDuration)
	res, err := s.router.Route(r.Context(), req)
	if err != nil {
		if errors.Is(err, routing.ErrNoCandidates) {
			s.writeError(w, http.StatusServiceUnavailable, "NO_CENTERS_AVAILABLE", "no centers available")
			return
		}
		s.writeError(w, http.StatusInternalServerError, "INTERNAL", err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, appointmentOut{
		ID:                req.ID,
		CenterID:          res.Center.ID,
		CenterName:        res.Center.Name,
		PredictedWaitTime: res.PredictedWait,
		Urgency:           req.Urgency,
		ExpectedDuration:  req.ExpectedDuration,
	})
}

// handleHistory serves GET /history: all routing events, oldest first.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "only GET is allowed")
		return
	}

	events := s.history.Events()
	out := make([]eventOut, 0, len(events))
	for _, e := range events {
		out = append(out, eventOut{
			Timestamp: float64(e.Timestamp.UnixNano()) / 1e9,
			RequestID: e.RequestID,
			CenterID:  e.CenterID,
			Reason:    string(e.Reason),
		})
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		s.writeError(w, http.StatusNotFound, "NOT_FOUND", "unknown path")
		return
	}
	s.handleDashboard(w, r)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Errorf("failed to encode response: %v", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, code, message string) {
	s.writeJSON(w, status, errorOut{Error: message, Code: code})
}
