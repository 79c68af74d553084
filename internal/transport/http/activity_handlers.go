package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"parish/internal/domain"
	"parish/internal/dto"
)

func (h *Handler) handleUnreadActivity(w http.ResponseWriter, r *http.Request) {
	sess, _ := sessionFrom(r.Context())
	out, err := h.activity.ListUnread(r.Context(), sess)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) handleMarkActivityRead(w http.ResponseWriter, r *http.Request) {
	sess, _ := sessionFrom(r.Context())
	if err := h.activity.MarkAllRead(r.Context(), sess); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleBanner is public: anonymous callers get the parishioner view.
func (h *Handler) handleBanner(w http.ResponseWriter, r *http.Request) {
	role := domain.RoleParishioner
	if sess, ok := sessionFrom(r.Context()); ok {
		role = sess.Role
	}
	out, err := h.activity.Banner(r.Context(), role)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) handleCreateNotification(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateNotificationRequest
	if !decode(w, r, &req) {
		return
	}
	sn, err := h.activity.CreateNotification(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, sn)
}

func (h *Handler) handleDeleteNotification(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.activity.DeleteNotification(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	sess, _ := sessionFrom(r.Context())
	out, err := h.activity.Dashboard(r.Context(), sess)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// handleStream drains the broadcast registry into an SSE stream.
func (h *Handler) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeJSON(w, http.StatusInternalServerError, errBody{Error: "streaming unsupported"})
		return
	}

	ch, cancel := h.registry.Subscribe()
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case msg, open := <-ch:
			if !open {
				return
			}
			payload, err := json.Marshal(msg)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "data: %s\n\n", payload)
			flusher.Flush()
		}
	}
}
