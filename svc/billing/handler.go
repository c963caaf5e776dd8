package billing

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tapcard/tapcard/pkg/jwt"
	"github.com/tapcard/tapcard/pkg/logger"
	"github.com/tapcard/tapcard/pkg/payfast"
)

// Handler exposes the billing flow over HTTP: checkout creation and
// subscription lookup for the SPA, and the gateway webhook.
type Handler struct {
	svc    *Service
	tokens *jwt.Service
	log    *slog.Logger
}

// NewHandler wires the billing HTTP surface. Panics on nil dependencies.
func NewHandler(svc *Service, tokens *jwt.Service, log *slog.Logger) *Handler {
	if svc == nil {
		panic("billing: Service is required")
	}
	if tokens == nil {
		panic("billing: jwt.Service is required")
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Handler{svc: svc, tokens: tokens, log: log}
}

// Routes mounts the billing endpoints. The webhook is unauthenticated by
// design: the gateway proves itself through the payload signature.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(corsMiddleware)

	r.Post("/checkout", h.createCheckout)
	r.Post("/notify", h.handleNotification)
	r.Get("/subscription", h.subscriptionStatus)

	return r
}

// corsMiddleware admits the SPA from any origin. The endpoints carry no
// cookie-based state, so a permissive policy is acceptable here.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type checkoutRequest struct {
	PlanName     string `json:"planName"`
	BillingCycle string `json:"billingCycle"`
}

type checkoutResponse struct {
	URL       string `json:"url"`
	PaymentID string `json:"paymentId"`
}

func (h *Handler) createCheckout(w http.ResponseWriter, r *http.Request) {
	claims, userID, ok := h.authenticate(w, r)
	if !ok {
		return
	}

	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	checkout, err := h.svc.CreateCheckout(r.Context(), CheckoutInput{
		UserID:       userID,
		Email:        claims.Email,
		PlanName:     req.PlanName,
		BillingCycle: req.BillingCycle,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrPlanNotFound),
			errors.Is(err, ErrInvalidInput),
			errors.Is(err, payfast.ErrInvalidBillingCycle),
			errors.Is(err, payfast.ErrInvalidCheckout):
			h.respondError(w, http.StatusBadRequest, err.Error())
		default:
			h.log.ErrorContext(r.Context(), "checkout failed",
				logger.Step("checkout"), logger.UserID(userID), logger.Error(err))
			h.respondError(w, http.StatusInternalServerError, "checkout failed")
		}
		return
	}

	h.respondJSON(w, http.StatusOK, checkoutResponse{
		URL:       checkout.URL,
		PaymentID: checkout.PaymentID,
	})
}

// handleNotification is the gateway webhook. Responses follow the
// gateway's contract: plain "OK" acknowledges delivery, 400 tells it the
// payload is unusable, 500 makes it redeliver later.
func (h *Handler) handleNotification(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid form payload")
		return
	}

	if err := h.svc.HandleNotification(r.Context(), r.PostForm); err != nil {
		switch {
		case errors.Is(err, payfast.ErrSignatureMismatch),
			errors.Is(err, payfast.ErrInvalidPaymentReference):
			h.respondError(w, http.StatusBadRequest, err.Error())
		default:
			h.respondError(w, http.StatusInternalServerError, "notification processing failed")
		}
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (h *Handler) subscriptionStatus(w http.ResponseWriter, r *http.Request) {
	claims, userID, ok := h.authenticate(w, r)
	if !ok {
		return
	}

	st, err := h.svc.Status(r.Context(), userID, claims.Email)
	if err != nil {
		h.log.ErrorContext(r.Context(), "status lookup failed",
			logger.Step("status"), logger.UserID(userID), logger.Error(err))
		h.respondError(w, http.StatusInternalServerError, "status lookup failed")
		return
	}

	h.respondJSON(w, http.StatusOK, st)
}

// authenticate verifies the bearer token and resolves the caller's
// identity. On failure it writes the 401 itself and returns ok=false.
func (h *Handler) authenticate(w http.ResponseWriter, r *http.Request) (jwt.Claims, uuid.UUID, bool) {
	claims, err := h.tokens.FromRequest(r)
	if err != nil {
		h.respondError(w, http.StatusUnauthorized, "authentication required")
		return jwt.Claims{}, uuid.Nil, false
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		h.respondError(w, http.StatusUnauthorized, "invalid token subject")
		return jwt.Claims{}, uuid.Nil, false
	}
	return claims, userID, true
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.log.Error("response encoding failed", logger.Error(err))
	}
}

func (h *Handler) respondError(w http.ResponseWriter, status int, msg string) {
	h.respondJSON(w, status, map[string]string{"error": msg})
}
