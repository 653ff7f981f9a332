package server

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/medfleet/backoffice/internal/models"
	"github.com/medfleet/backoffice/internal/service"
)

type orgRequest struct {
	Name string `json:"name"`
}

type orgResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

func orgToResponse(org *models.Organization) orgResponse {
	return orgResponse{ID: org.ID, Name: org.Name}
}

func (s *Server) handleOrgList(w http.ResponseWriter, r *http.Request) {
	orgs, err := s.orgs.List(r.Context(), principalFrom(r), r.URL.Query().Get("name"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]orgResponse, 0, len(orgs))
	for _, org := range orgs {
		out = append(out, orgToResponse(org))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleOrgGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, r, service.ErrNotFound)
		return
	}

	org, err := s.orgs.Get(r.Context(), principalFrom(r), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, orgToResponse(org))
}

func (s *Server) handleOrgCreate(w http.ResponseWriter, r *http.Request) {
	var req orgRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	id, err := s.orgs.Create(r.Context(), principalFrom(r), req.Name)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, createdResponse{ID: id})
}

func (s *Server) handleOrgUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, r, service.ErrNotFound)
		return
	}

	var req orgRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := s.orgs.Update(r.Context(), principalFrom(r), id, req.Name); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleOrgRemove(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, r, service.ErrNotFound)
		return
	}

	if err := s.orgs.Remove(r.Context(), principalFrom(r), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
