package server

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/medfleet/backoffice/internal/models"
	"github.com/medfleet/backoffice/internal/service"
)

type carRequest struct {
	RegNum     string    `json:"reg_num"`
	OrgID      uuid.UUID `json:"org_id"`
	GPSTracker *string   `json:"gps_tracker,omitempty"`
}

type carResponse struct {
	ID         uuid.UUID `json:"id"`
	RegNum     string    `json:"reg_num"`
	OrgID      uuid.UUID `json:"org_id"`
	GPSTracker *string   `json:"gps_tracker,omitempty"`
}

type bindTrackerRequest struct {
	Tracker string `json:"tracker"`
}

type createdResponse struct {
	ID uuid.UUID `json:"id"`
}

func carToResponse(car *models.Car) carResponse {
	return carResponse{
		ID:         car.ID,
		RegNum:     car.RegNum,
		OrgID:      car.OrgID,
		GPSTracker: car.GPSTracker,
	}
}

func carsToResponse(cars []*models.Car) []carResponse {
	out := make([]carResponse, 0, len(cars))
	for _, car := range cars {
		out = append(out, carToResponse(car))
	}
	return out
}

func (s *Server) handleCarList(w http.ResponseWriter, r *http.Request) {
	cars, err := s.cars.List(r.Context(), principalFrom(r), orgFilter(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, carsToResponse(cars))
}

func (s *Server) handleCarSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	cars, err := s.cars.Search(r.Context(), principalFrom(r), query, orgFilter(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, carsToResponse(cars))
}

func (s *Server) handleCarGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, r, service.ErrNotFound)
		return
	}

	car, err := s.cars.Get(r.Context(), principalFrom(r), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, carToResponse(car))
}

func (s *Server) handleCarCreate(w http.ResponseWriter, r *http.Request) {
	var req carRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	id, err := s.cars.Create(r.Context(), principalFrom(r), req.RegNum, req.OrgID, req.GPSTracker)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, createdResponse{ID: id})
}

func (s *Server) handleCarUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, r, service.ErrNotFound)
		return
	}

	var req carRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := s.cars.Update(r.Context(), principalFrom(r), id, req.RegNum, req.OrgID, req.GPSTracker); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleCarRemove(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, r, service.ErrNotFound)
		return
	}

	if err := s.cars.Remove(r.Context(), principalFrom(r), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleCarBindTracker(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, r, service.ErrNotFound)
		return
	}

	var req bindTrackerRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := s.cars.BindTracker(r.Context(), principalFrom(r), id, req.Tracker); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleCarUnbindTracker(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, r, service.ErrNotFound)
		return
	}

	if err := s.cars.UnbindTracker(r.Context(), principalFrom(r), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
