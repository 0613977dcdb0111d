package api

import (
	"errors"
	"io"
	"net/http"

	"imobhub/internal/service/billing"

	"go.uber.org/zap"
)

// Signature header the payment provider signs its webhook payloads with.
const signatureHeader = "Imob-Signature"

type checkoutRequest struct {
	PlanID                   string `json:"planId"`
	IncludeImplementationFee bool   `json:"includeImplementationFee"`
}

type checkoutResponse struct {
	URL string `json:"url"`
}

func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request) {
	tenant, ok := TenantFromContext(r.Context())
	if !ok {
		apiError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req checkoutRequest
	if err := decodeJSON(r, &req); err != nil {
		apiError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	url, err := s.checkout.CreateCheckout(r.Context(), tenant.UserID, req.PlanID, req.IncludeImplementationFee)
	if errors.Is(err, billing.ErrUnknownPlan) {
		apiError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		apiError(w, "checkout session failed", http.StatusBadGateway)
		return
	}

	apiJSON(w, checkoutResponse{URL: url}, http.StatusOK)
}

func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		apiError(w, "unreadable payload", http.StatusBadRequest)
		return
	}

	err = s.reconciler.HandleEvent(r.Context(), payload, r.Header.Get(signatureHeader))
	if errors.Is(err, billing.ErrBadSignature) || errors.Is(err, billing.ErrStaleTimestamp) {
		apiError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		s.logger.Error("webhook processing failed", zap.Error(err))
		apiError(w, "processing failed", http.StatusInternalServerError)
		return
	}

	apiJSON(w, map[string]bool{"received": true}, http.StatusOK)
}
