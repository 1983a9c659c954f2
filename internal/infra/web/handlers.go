package web

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"prompt-template-store/internal/domain"
	"prompt-template-store/internal/domain/model"
	"prompt-template-store/internal/infra/logging"
	"prompt-template-store/internal/infra/metrics"
	"prompt-template-store/internal/render"
)

const maxBodyBytes = 1 << 20 // request and webhook payload cap

type templateDTO struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Domain      string        `json:"domain"`
	Description string        `json:"description"`
	Free        bool          `json:"free"`
	Bundle      bool          `json:"bundle"`
	PriceCents  int64         `json:"price_cents"`
	Currency    string        `json:"currency"`
	Fields      []model.Field `json:"fields,omitempty"`
	Unlocked    bool          `json:"unlocked"`
}

// handleListTemplates returns the catalog with the caller's lock state
// folded in. Template content never leaves the server.
func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	locks := s.gate.RefreshLockState(ctx, userID(ctx))

	list := s.cat.List()
	out := make([]templateDTO, 0, len(list))
	for _, t := range list {
		out = append(out, templateDTO{
			ID:          t.ID,
			Name:        t.Name,
			Domain:      t.Domain,
			Description: t.Description,
			Free:        t.Free,
			Bundle:      t.Bundle,
			PriceCents:  t.PriceCents,
			Currency:    t.Currency,
			Fields:      t.Fields,
			Unlocked:    locks[t.ID],
		})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"templates": out})
}

type renderRequest struct {
	Values model.FieldValues `json:"values"`
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	t := s.cat.ByID(id)
	if t == nil || !s.cat.Renderable(id) {
		writeError(w, http.StatusNotFound, "template not found")
		return
	}

	if !s.gate.IsUnlocked(ctx, userID(ctx), id) {
		if userID(ctx) == "" {
			writeError(w, http.StatusUnauthorized, "sign in to use this template")
			return
		}
		writeError(w, http.StatusPaymentRequired, "template is locked")
		return
	}

	var req renderRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res := render.RenderWithTokens(t, req.Values, s.estimator)
	metrics.ObserveRender(id, res.Tokens)
	writeJSON(w, http.StatusOK, res)
}

type checkoutRequest struct {
	TemplateID string `json:"template_id"`
	SuccessURL string `json:"success_url"`
	CancelURL  string `json:"cancel_url"`
}

func (s *Server) handleCreateCheckout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if userID(ctx) == "" {
		writeError(w, http.StatusUnauthorized, "sign in to purchase")
		return
	}

	var req checkoutRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.SuccessURL == "" {
		req.SuccessURL = s.stripeCfg.SuccessURL
	}
	if req.CancelURL == "" {
		req.CancelURL = s.stripeCfg.CancelURL
	}

	rec, url, err := s.checkout.CreateSession(ctx, userID(ctx), userEmail(ctx), req.TemplateID, req.SuccessURL, req.CancelURL)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "template not found")
		case errors.Is(err, domain.ErrInvalidArgument):
			writeError(w, http.StatusBadRequest, "template is free")
		case errors.Is(err, domain.ErrAlreadyOwned):
			writeError(w, http.StatusConflict, "already owned")
		default:
			logging.With(ctx, s.log).Error().Err(err).Msg("checkout session failed")
			writeError(w, http.StatusInternalServerError, "checkout failed")
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"session_id": rec.SessionID,
		"url":        url,
		"amount":     rec.Amount,
		"currency":   rec.Currency,
	})
}

type paymentDTO struct {
	TemplateID string     `json:"template_id"`
	SessionID  string     `json:"session_id"`
	Amount     int64      `json:"amount"`
	Currency   string     `json:"currency"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	RefundedAt *time.Time `json:"refunded_at,omitempty"`
}

func (s *Server) handleListPayments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if userID(ctx) == "" {
		writeError(w, http.StatusUnauthorized, "sign in to view payments")
		return
	}

	recs, err := s.checkout.History(ctx, userID(ctx))
	if err != nil {
		logging.With(ctx, s.log).Error().Err(err).Msg("payment history failed")
		writeError(w, http.StatusInternalServerError, "could not load payments")
		return
	}

	out := make([]paymentDTO, 0, len(recs))
	for _, rec := range recs {
		out = append(out, paymentDTO{
			TemplateID: rec.TemplateID,
			SessionID:  rec.SessionID,
			Amount:     rec.Amount,
			Currency:   rec.Currency,
			Status:     string(rec.Status),
			CreatedAt:  rec.CreatedAt,
			RefundedAt: rec.RefundedAt,
		})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"payments": out})
}

// handleStripeWebhook verifies the signature at the boundary and hands
// the mapped event to the use case. A handler error returns 500 so the
// provider redelivers; everything else is acknowledged.
func (s *Server) handleStripeWebhook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "could not read payload")
		return
	}

	ev, err := s.verifier.Parse(payload, r.Header.Get("Stripe-Signature"))
	if err != nil {
		logging.With(ctx, s.log).Warn().Err(err).Msg("webhook rejected")
		writeError(w, http.StatusBadRequest, "invalid payload or signature")
		return
	}

	if err := s.webhook.Handle(ctx, ev); err != nil {
		logging.With(ctx, s.log).Error().Err(err).Str("event_id", ev.ID).Msg("webhook processing failed")
		writeError(w, http.StatusInternalServerError, "processing failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"received": true})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
