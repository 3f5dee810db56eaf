package httpapi

import (
	"net/http"

	"github.com/BrandonDHaskell/makerspace-crm/internal/makerspace/types"
)

func (s *Server) handleCreatePerson(w http.ResponseWriter, r *http.Request) {
	var req types.PersonRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	p, err := s.people.Create(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) handleListPeople(w http.ResponseWriter, r *http.Request) {
	list, err := s.people.List(r.Context())
	if err != nil {
		writeServiceError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleGetPerson(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "personID")
	if !ok {
		return
	}
	p, err := s.people.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleUpdatePerson(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "personID")
	if !ok {
		return
	}
	var req types.PersonRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	p, err := s.people.Update(r.Context(), id, req)
	if err != nil {
		writeServiceError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handlePersonLifecycle(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "personID")
	if !ok {
		return
	}
	var req types.LifecycleRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := s.people.Lifecycle(r.Context(), id, req.Action); err != nil {
		writeServiceError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, types.MessageResponse{Message: "Person " + req.Action + " applied"})
}

func (s *Server) handleDeletePerson(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "personID")
	if !ok {
		return
	}
	if err := s.people.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, types.MessageResponse{Message: "Person has been soft deleted"})
}

// ── Key cards ────────────────────────────────────────────────────────────────

func (s *Server) handleCreateKeyCard(w http.ResponseWriter, r *http.Request) {
	var req types.KeyCardRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	card, err := s.keyCards.Create(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, card)
}

func (s *Server) handleGetKeyCard(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "cardID")
	if !ok {
		return
	}
	card, err := s.keyCards.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, card)
}

func (s *Server) handleDeleteKeyCard(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "cardID")
	if !ok {
		return
	}
	if err := s.keyCards.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, types.MessageResponse{Message: "KeyCard has been deleted"})
}

func (s *Server) handleDeleteKeyCode(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "codeID")
	if !ok {
		return
	}
	if err := s.keyCards.DeleteCode(r.Context(), id); err != nil {
		writeServiceError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, types.MessageResponse{Message: "KeyCode has been deleted"})
}
