package http

import (
	"net/http"

	"parish/internal/dto"
)

func (h *Handler) handleGetChurchInfo(w http.ResponseWriter, r *http.Request) {
	info, err := h.content.ChurchInfo(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

func (h *Handler) handleSetChurchInfo(w http.ResponseWriter, r *http.Request) {
	var req dto.ChurchInfoRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.content.SetChurchInfo(r.Context(), req); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleListServices(w http.ResponseWriter, r *http.Request) {
	out, err := h.content.ListServices(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) handleCreateService(w http.ResponseWriter, r *http.Request) {
	var req dto.ServiceRequest
	if !decode(w, r, &req) {
		return
	}
	svc, err := h.content.CreateService(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, svc)
}

func (h *Handler) handleDeleteService(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.content.DeleteService(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleListMembers(w http.ResponseWriter, r *http.Request) {
	users, err := h.auth.ListMembers(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, userResponse(&users[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) handleCreateAdmin(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAdminRequest
	if !decode(w, r, &req) {
		return
	}
	user, err := h.auth.CreateAdmin(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, userResponse(user))
}

func (h *Handler) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.auth.DeleteUser(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
