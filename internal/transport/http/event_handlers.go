package http

import (
	"net/http"

	"parish/internal/dto"
)

func (h *Handler) handleListEvents(w http.ResponseWriter, r *http.Request) {
	sess, _ := sessionFrom(r.Context())
	out, err := h.events.List(r.Context(), sess.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) handleRSVP(w http.ResponseWriter, r *http.Request) {
	sess, _ := sessionFrom(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.events.RSVP(r.Context(), sess.UserID, id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleCancelRSVP(w http.ResponseWriter, r *http.Request) {
	sess, _ := sessionFrom(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.events.CancelRSVP(r.Context(), sess.UserID, id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	sess, _ := sessionFrom(r.Context())
	var req dto.CreateEventRequest
	if !decode(w, r, &req) {
		return
	}
	ev, err := h.events.Create(r.Context(), sess.UserID, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, ev)
}

func (h *Handler) handleUpdateEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req dto.CreateEventRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.events.Update(r.Context(), id, req); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.events.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
