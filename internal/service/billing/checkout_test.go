package billing

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"imobhub/internal/config"

	"go.uber.org/zap/zaptest"
)

func testBillingConfig() config.BillingConfig {
	return config.BillingConfig{
		SecretKey:   "sk_test",
		PriceMensal: "price_mensal",
		PriceAnual:  "price_anual",
		PriceSetup:  "price_setup",
		TrialDays:   7,
		SuccessURL:  "https://app.example.com/sucesso",
		CancelURL:   "https://app.example.com/planos",
	}
}

func newCheckoutService(t *testing.T, handler http.HandlerFunc) (*CheckoutService, *httptest.Server) {
	t.Helper()
	provider := httptest.NewServer(handler)
	t.Cleanup(provider.Close)

	client, err := NewClient("sk_test", provider.URL)
	if err != nil {
		t.Fatalf("NewClient returned an error: %v", err)
	}
	return NewCheckoutService(client, testBillingConfig(), zaptest.NewLogger(t)), provider
}

func TestCreateCheckout_PlanOnly(t *testing.T) {
	var received SessionRequest
	svc, _ := newCheckoutService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/checkout/sessions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer sk_test" {
			t.Errorf("unexpected auth header %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Fatalf("decoding session request: %v", err)
		}
		json.NewEncoder(w).Encode(Session{ID: "cs_1", URL: "https://pay.example.com/cs_1"})
	})

	url, err := svc.CreateCheckout(context.Background(), "user-1", PlanMensal, false)
	if err != nil {
		t.Fatalf("CreateCheckout returned an error: %v", err)
	}
	if url != "https://pay.example.com/cs_1" {
		t.Errorf("unexpected url %q", url)
	}

	if len(received.LineItems) != 1 || received.LineItems[0].Price != "price_mensal" {
		t.Errorf("unexpected line items: %+v", received.LineItems)
	}
	if received.TrialPeriodDays != 0 {
		t.Errorf("expected no trial without the fee, got %d", received.TrialPeriodDays)
	}
	if received.ClientReferenceID != "user-1" {
		t.Errorf("unexpected client reference %q", received.ClientReferenceID)
	}
}

func TestCreateCheckout_WithImplementationFee(t *testing.T) {
	var received SessionRequest
	svc, _ := newCheckoutService(t, func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Fatalf("decoding session request: %v", err)
		}
		json.NewEncoder(w).Encode(Session{ID: "cs_2", URL: "https://pay.example.com/cs_2"})
	})

	_, err := svc.CreateCheckout(context.Background(), "user-1", PlanAnual, true)
	if err != nil {
		t.Fatalf("CreateCheckout returned an error: %v", err)
	}

	// Bundling the fee adds the one-time item and a trial on the plan,
	// so the first charge covers the fee alone.
	if len(received.LineItems) != 2 {
		t.Fatalf("expected 2 line items, got %d", len(received.LineItems))
	}
	if received.LineItems[0].Price != "price_anual" || received.LineItems[1].Price != "price_setup" {
		t.Errorf("unexpected line items: %+v", received.LineItems)
	}
	if received.TrialPeriodDays != 7 {
		t.Errorf("expected 7 trial days, got %d", received.TrialPeriodDays)
	}
}

func TestCreateCheckout_UnknownPlan(t *testing.T) {
	svc, _ := newCheckoutService(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("provider must not be called for an unknown plan")
	})

	_, err := svc.CreateCheckout(context.Background(), "user-1", "vitalicio", false)
	if !errors.Is(err, ErrUnknownPlan) {
		t.Errorf("expected ErrUnknownPlan, got %v", err)
	}
}

func TestCreateCheckout_ProviderFailure(t *testing.T) {
	svc, _ := newCheckoutService(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
	})

	_, err := svc.CreateCheckout(context.Background(), "user-1", PlanMensal, false)
	if err == nil {
		t.Fatal("expected an error for a failing provider")
	}
}
