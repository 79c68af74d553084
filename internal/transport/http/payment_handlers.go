package http

import (
	"encoding/json"
	"io"
	"net/http"

	"parish/internal/dto"
	obsmw "parish/internal/observability/middleware"
	"parish/internal/paystack"
)

func (h *Handler) handleCreatePayment(w http.ResponseWriter, r *http.Request) {
	sess, _ := sessionFrom(r.Context())
	var req dto.CreatePaymentRequest
	if !decode(w, r, &req) {
		return
	}
	pay, err := h.payments.Create(r.Context(), sess.UserID, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, pay)
}

func (h *Handler) handleMyPayments(w http.ResponseWriter, r *http.Request) {
	sess, _ := sessionFrom(r.Context())
	out, err := h.payments.ListMine(r.Context(), sess.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) handleGetPayment(w http.ResponseWriter, r *http.Request) {
	sess, _ := sessionFrom(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	pay, err := h.payments.Get(r.Context(), sess.UserID, sess.Role, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pay)
}

func (h *Handler) handleInitiatePayment(w http.ResponseWriter, r *http.Request) {
	sess, _ := sessionFrom(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	res, err := h.payments.Initiate(r.Context(), sess.UserID, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// handleVerifyPayment is the gateway redirect target; the reference
// arrives as a query parameter.
func (h *Handler) handleVerifyPayment(w http.ResponseWriter, r *http.Request) {
	reference := r.URL.Query().Get("reference")
	if reference == "" {
		writeJSON(w, http.StatusBadRequest, errBody{Error: "missing reference"})
		return
	}
	res, err := h.payments.Verify(r.Context(), reference)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) handlePaystackWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errBody{Error: "unreadable body"})
		return
	}

	var event paystack.WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		writeJSON(w, http.StatusBadRequest, errBody{Error: "malformed JSON body"})
		return
	}

	sig := r.Header.Get(paystack.SignatureHeader)
	if err := h.payments.HandleWebhook(r.Context(), body, sig, event); err != nil {
		h.log.Warn("webhook rejected",
			"error", err,
			"event", event.Event,
			"request_id", obsmw.RequestIDFromContext(r.Context()),
		)
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) handleAllPayments(w http.ResponseWriter, r *http.Request) {
	out, err := h.payments.ListAll(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) handleListGoals(w http.ResponseWriter, r *http.Request) {
	out, err := h.payments.ListGoals(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateGoalRequest
	if !decode(w, r, &req) {
		return
	}
	goal, err := h.payments.CreateGoal(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, goal)
}

func (h *Handler) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.payments.DeleteGoal(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
