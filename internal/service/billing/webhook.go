package billing

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"imobhub/internal/domain"
	"imobhub/internal/model"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// Accepted clock skew between the signed timestamp and now.
const signatureTolerance = 5 * time.Minute

// Event is the provider webhook payload shape.
type Event struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object EventObject `json:"object"`
	} `json:"data"`
}

// EventObject is the subscription the event is about.
type EventObject struct {
	Customer     string            `json:"customer"`
	Subscription string            `json:"subscription"`
	Status       string            `json:"status"`
	PlanID       string            `json:"plan_id"`
	Metadata     map[string]string `json:"metadata"`
}

// VerifySignature checks a "t=<unix>,v1=<hex>" header against the shared
// secret. The signed message is "<t>.<body>".
func VerifySignature(payload []byte, header, secret string, now time.Time) error {
	var tsPart, sigPart string
	for _, part := range strings.Split(header, ",") {
		switch {
		case strings.HasPrefix(part, "t="):
			tsPart = strings.TrimPrefix(part, "t=")
		case strings.HasPrefix(part, "v1="):
			sigPart = strings.TrimPrefix(part, "v1=")
		}
	}
	if tsPart == "" || sigPart == "" {
		return ErrBadSignature
	}

	ts, err := strconv.ParseInt(tsPart, 10, 64)
	if err != nil {
		return ErrBadSignature
	}
	skew := now.Sub(time.Unix(ts, 0))
	if skew > signatureTolerance || skew < -signatureTolerance {
		return ErrStaleTimestamp
	}

	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%s.", tsPart)
	mac.Write(payload)
	expected := mac.Sum(nil)

	received, err := hex.DecodeString(sigPart)
	if err != nil {
		return ErrBadSignature
	}
	if !hmac.Equal(expected, received) {
		return ErrBadSignature
	}
	return nil
}

// MapSubscriptionStatus folds provider subscription statuses into the
// internal enumeration.
func MapSubscriptionStatus(providerStatus string) string {
	switch providerStatus {
	case "active", "trialing":
		return model.SubscriptionActive
	case "past_due", "unpaid":
		return model.SubscriptionDelinquent
	case "canceled", "cancelled", "incomplete_expired":
		return model.SubscriptionCancelled
	}
	return model.SubscriptionDelinquent
}

// Reconciler verifies webhook events and applies their subscription state
// to the tenant record.
type Reconciler struct {
	logger  *zap.Logger
	Tenants domain.TenantRepo
	secret  string
	dedup   *gocache.Cache
}

func NewReconciler(tenants domain.TenantRepo, webhookSecret string, logger *zap.Logger) *Reconciler {
	return &Reconciler{
		logger:  logger,
		Tenants: tenants,
		secret:  webhookSecret,
		dedup:   gocache.New(24*time.Hour, 1*time.Hour),
	}
}

// HandleEvent verifies the signature and reconciles the event. Event ids
// already processed successfully are dropped; a failed event stays unseen
// so the provider's redelivery gets another attempt.
func (r *Reconciler) HandleEvent(ctx context.Context, payload []byte, sigHeader string) error {
	if err := VerifySignature(payload, sigHeader, r.secret, time.Now()); err != nil {
		return err
	}

	var event Event
	if err := json.Unmarshal(payload, &event); err != nil {
		return fmt.Errorf("decoding webhook event: %w", err)
	}

	if event.ID != "" {
		if _, seen := r.dedup.Get(event.ID); seen {
			r.logger.Info("duplicate webhook event dropped", zap.String("event_id", event.ID))
			return nil
		}
	}

	switch event.Type {
	case "customer.subscription.created",
		"customer.subscription.updated",
		"customer.subscription.deleted":
		if err := r.applySubscription(ctx, event); err != nil {
			// Not recorded as seen: the provider retries failed
			// deliveries and the retry must be processed.
			return err
		}
	default:
		r.logger.Info("webhook event ignored",
			zap.String("event_id", event.ID), zap.String("type", event.Type))
	}

	if event.ID != "" {
		r.dedup.SetDefault(event.ID, struct{}{})
	}
	return nil
}

func (r *Reconciler) applySubscription(ctx context.Context, event Event) error {
	obj := event.Data.Object
	userID := obj.Metadata["user_id"]
	if userID == "" {
		return fmt.Errorf("event %s carries no user_id metadata", event.ID)
	}

	status := MapSubscriptionStatus(obj.Status)
	if event.Type == "customer.subscription.deleted" {
		status = model.SubscriptionCancelled
	}

	err := r.Tenants.UpsertSubscription(ctx, domain.SubscriptionUpdate{
		UserID:          userID,
		Status:          status,
		PlanID:          obj.PlanID,
		CustomerRef:     obj.Customer,
		SubscriptionRef: obj.Subscription,
	})
	if err != nil {
		return fmt.Errorf("upserting subscription for %s: %w", userID, err)
	}

	r.logger.Info("subscription reconciled",
		zap.String("user_id", userID),
		zap.String("status", status),
		zap.String("event_id", event.ID))
	return nil
}
