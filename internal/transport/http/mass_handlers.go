package http

import (
	"net/http"

	"parish/internal/domain"
	"parish/internal/dto"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errBody{Error: "invalid id"})
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) handleListMasses(w http.ResponseWriter, r *http.Request) {
	masses, err := h.booking.ListMasses(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, masses)
}

func (h *Handler) handleGetMass(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	mass, err := h.booking.GetMass(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mass)
}

func (h *Handler) handleBookIntention(w http.ResponseWriter, r *http.Request) {
	sess, _ := sessionFrom(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req dto.BookIntentionRequest
	if !decode(w, r, &req) {
		return
	}
	mi, err := h.booking.BookIntention(r.Context(), sess.UserID, id, req.Name, req.Intention)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, mi)
}

func (h *Handler) handleBookThanksgiving(w http.ResponseWriter, r *http.Request) {
	sess, _ := sessionFrom(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req dto.BookThanksgivingRequest
	if !decode(w, r, &req) {
		return
	}
	t, err := h.booking.BookThanksgiving(r.Context(), sess.UserID, id, req.Description)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

func (h *Handler) handleMyIntentions(w http.ResponseWriter, r *http.Request) {
	sess, _ := sessionFrom(r.Context())
	out, err := h.booking.ListUserIntentions(r.Context(), sess.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) handleMyThanksgivings(w http.ResponseWriter, r *http.Request) {
	sess, _ := sessionFrom(r.Context())
	out, err := h.booking.ListUserThanksgivings(r.Context(), sess.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) handleCreateMass(w http.ResponseWriter, r *http.Request) {
	sess, _ := sessionFrom(r.Context())
	var req dto.CreateMassRequest
	if !decode(w, r, &req) {
		return
	}
	mass, err := h.booking.CreateMass(r.Context(), sess.UserID, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, mass)
}

func (h *Handler) handleMassIntentions(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	out, err := h.booking.ListMassIntentions(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) handleMassThanksgivings(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	out, err := h.booking.ListMassThanksgivings(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) handleReviewThanksgiving(w http.ResponseWriter, r *http.Request) {
	sess, _ := sessionFrom(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req dto.ReviewThanksgivingRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.booking.ReviewThanksgiving(r.Context(), sess.UserID, id, req.Approve); err != nil {
		writeError(w, r, err)
		return
	}
	status := domain.ApprovalApproved
	if !req.Approve {
		status = domain.ApprovalRejected
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": string(status)})
}
