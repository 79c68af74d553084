package http

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"parish/internal/domain"
	"parish/internal/notify"
	"parish/internal/service"
	"parish/internal/session"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Handler struct {
	auth     *service.AuthService
	booking  *service.BookingService
	payments *service.PaymentService
	events   *service.EventService
	activity *service.ActivityService
	content  *service.ContentService
	sessions *session.Manager
	registry *notify.Registry
	log      *slog.Logger
}

func NewHandler(
	auth *service.AuthService,
	booking *service.BookingService,
	payments *service.PaymentService,
	events *service.EventService,
	activity *service.ActivityService,
	content *service.ContentService,
	sessions *session.Manager,
	registry *notify.Registry,
	log *slog.Logger,
) *Handler {
	return &Handler{
		auth:     auth,
		booking:  booking,
		payments: payments,
		events:   events,
		activity: activity,
		content:  content,
		sessions: sessions,
		registry: registry,
		log:      log,
	}
}

func (h *Handler) Router(corsOrigins string) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(httprate.LimitByIP(100, 1*time.Minute))
	r.Use(withMetrics)

	origins := strings.Split(corsOrigins, ",")
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   originsIfSet(origins),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Use(h.withSession)

	// The SSE stream must outlive any per-request deadline, so the
	// timeout wraps every route except it.
	r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(30 * time.Second))
		h.mountRoutes(r)
	})

	r.Group(func(r chi.Router) {
		r.Use(requireUser)
		r.Get("/stream", h.handleStream)
	})

	return r
}

func (h *Handler) mountRoutes(r chi.Router) {
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	// Public
	r.Post("/auth/register", h.handleRegister)
	r.Post("/auth/login", h.handleLogin)
	r.Post("/auth/logout", h.handleLogout)
	r.Post("/auth/forgot-password", h.handleForgotPassword)
	r.Post("/auth/reset-password", h.handleResetPassword)

	r.Post("/webhooks/paystack", h.handlePaystackWebhook)
	r.Get("/payments/verify", h.handleVerifyPayment)

	r.Get("/church-info", h.handleGetChurchInfo)
	r.Get("/services", h.handleListServices)
	r.Get("/notifications/banner", h.handleBanner)

	// Any signed-in member
	r.Group(func(r chi.Router) {
		r.Use(requireUser)

		r.Get("/session", h.handleSession)
		r.Get("/dashboard", h.handleDashboard)
		r.Put("/profile", h.handleUpdateProfile)

		r.Get("/masses", h.handleListMasses)
		r.Get("/masses/{id}", h.handleGetMass)
		r.Post("/masses/{id}/intentions", h.handleBookIntention)
		r.Post("/masses/{id}/thanksgivings", h.handleBookThanksgiving)
		r.Get("/me/intentions", h.handleMyIntentions)
		r.Get("/me/thanksgivings", h.handleMyThanksgivings)

		r.Post("/payments", h.handleCreatePayment)
		r.Get("/payments", h.handleMyPayments)
		r.Get("/payments/{id}", h.handleGetPayment)
		r.Post("/payments/{id}/initiate", h.handleInitiatePayment)
		r.Get("/goals", h.handleListGoals)

		r.Get("/events", h.handleListEvents)
		r.Post("/events/{id}/rsvp", h.handleRSVP)
		r.Delete("/events/{id}/rsvp", h.handleCancelRSVP)

		r.Get("/activity/unread", h.handleUnreadActivity)
		r.Post("/activity/read", h.handleMarkActivityRead)
	})

	// Admin back office
	r.Route("/admin", func(r chi.Router) {
		r.Use(requireRole(domain.RoleAdmin))

		r.Post("/masses", h.handleCreateMass)
		r.Get("/masses/{id}/intentions", h.handleMassIntentions)
		r.Get("/masses/{id}/thanksgivings", h.handleMassThanksgivings)
		r.Post("/thanksgivings/{id}/review", h.handleReviewThanksgiving)

		r.Post("/events", h.handleCreateEvent)
		r.Put("/events/{id}", h.handleUpdateEvent)
		r.Delete("/events/{id}", h.handleDeleteEvent)

		r.Get("/payments", h.handleAllPayments)
		r.Post("/goals", h.handleCreateGoal)
		r.Delete("/goals/{id}", h.handleDeleteGoal)

		r.Post("/notifications", h.handleCreateNotification)
		r.Delete("/notifications/{id}", h.handleDeleteNotification)

		r.Put("/church-info", h.handleSetChurchInfo)
		r.Post("/services", h.handleCreateService)
		r.Delete("/services/{id}", h.handleDeleteService)

		r.Get("/members", h.handleListMembers)

		// Superadmin only
		r.Group(func(r chi.Router) {
			r.Use(requireRole(domain.RoleSuperAdmin))
			r.Post("/admins", h.handleCreateAdmin)
			r.Delete("/users/{id}", h.handleDeleteUser)
		})
	})
}

func originsIfSet(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, o := range origins {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
