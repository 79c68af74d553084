package http

import (
	"net/http"

	"parish/internal/domain"
	"parish/internal/dto"
	"parish/internal/observability/metrics"
	obsmw "parish/internal/observability/middleware"
)

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if !decode(w, r, &req) {
		return
	}
	user, err := h.auth.Register(r.Context(), req)
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues("failure").Inc()
		writeError(w, r, err)
		return
	}
	metrics.RegistrationsTotal.WithLabelValues("success").Inc()

	if err := h.sessions.Issue(w, user); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, userResponse(user))
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if !decode(w, r, &req) {
		return
	}
	user, err := h.auth.Login(r.Context(), req)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		writeError(w, r, err)
		return
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()

	if err := h.sessions.Issue(w, user); err != nil {
		writeError(w, r, err)
		return
	}
	h.log.Info("login",
		"user_id", user.ID,
		"request_id", obsmw.RequestIDFromContext(r.Context()),
	)
	writeJSON(w, http.StatusOK, userResponse(user))
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Clear(w)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req dto.ForgotPasswordRequest
	if !decode(w, r, &req) {
		return
	}
	// Token delivery is a mailer concern; the endpoint never discloses
	// whether the address exists.
	if _, err := h.auth.RequestPasswordReset(r.Context(), req.Email); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "if the account exists, a reset link has been sent"})
}

func (h *Handler) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req dto.ResetPasswordRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.auth.ResetPassword(r.Context(), req.Token, req.NewPassword); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "password updated"})
}

func (h *Handler) handleSession(w http.ResponseWriter, r *http.Request) {
	sess, _ := sessionFrom(r.Context())
	writeJSON(w, http.StatusOK, dto.SessionResponse{
		UserID: sess.UserID.String(),
		Role:   string(sess.Role),
		Email:  sess.Email,
		Name:   sess.Name,
	})
}

func (h *Handler) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	sess, _ := sessionFrom(r.Context())
	var req dto.UpdateProfileRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.auth.UpdateProfile(r.Context(), sess.UserID, req); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func userResponse(u *domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:    u.ID.String(),
		Name:  u.Name,
		Email: u.Email,
		Phone: u.Phone,
		Role:  string(u.Role),
	}
}
