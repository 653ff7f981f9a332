package server

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/medfleet/backoffice/internal/models"
	"github.com/medfleet/backoffice/internal/service"
)

type userCreateRequest struct {
	Login    string    `json:"login"`
	Password string    `json:"password"`
	Role     string    `json:"role"`
	OrgID    uuid.UUID `json:"org_id"`
}

type userUpdateRequest struct {
	Login    string    `json:"login"`
	Password *string   `json:"password,omitempty"`
	Role     string    `json:"role"`
	OrgID    uuid.UUID `json:"org_id"`
}

// userResponse never carries the password hash.
type userResponse struct {
	ID    uuid.UUID `json:"id"`
	Login string    `json:"login"`
	Role  string    `json:"role"`
	OrgID uuid.UUID `json:"org_id"`
}

func userToResponse(user *models.User) userResponse {
	return userResponse{
		ID:    user.ID,
		Login: user.Login,
		Role:  user.Role.String(),
		OrgID: user.OrgID,
	}
}

func (s *Server) handleUserList(w http.ResponseWriter, r *http.Request) {
	users, err := s.users.List(r.Context(), principalFrom(r), orgFilter(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]userResponse, 0, len(users))
	for _, user := range users {
		out = append(out, userToResponse(user))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleUserGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, r, service.ErrNotFound)
		return
	}

	user, err := s.users.Get(r.Context(), principalFrom(r), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, userToResponse(user))
}

func (s *Server) handleUserCreate(w http.ResponseWriter, r *http.Request) {
	var req userCreateRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	id, err := s.users.Create(r.Context(), principalFrom(r), req.Login, req.Password, models.Role(req.Role), req.OrgID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, createdResponse{ID: id})
}

func (s *Server) handleUserUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, r, service.ErrNotFound)
		return
	}

	var req userUpdateRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := s.users.Update(r.Context(), principalFrom(r), id, req.Login, req.Password, models.Role(req.Role), req.OrgID); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleUserRemove(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, r, service.ErrNotFound)
		return
	}

	if err := s.users.Remove(r.Context(), principalFrom(r), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
