package billing

import (
	"context"
	"fmt"

	"imobhub/internal/config"

	"go.uber.org/zap"
)

// Plan ids the checkout endpoint accepts.
const (
	PlanMensal = "mensal"
	PlanAnual  = "anual"
)

// CheckoutService creates hosted checkout sessions for subscription plans,
// optionally bundling the one-time implementation fee with a trial on the
// recurring plan.
type CheckoutService struct {
	logger *zap.Logger
	client *Client
	cfg    config.BillingConfig
}

func NewCheckoutService(client *Client, cfg config.BillingConfig, logger *zap.Logger) *CheckoutService {
	return &CheckoutService{
		logger: logger,
		client: client,
		cfg:    cfg,
	}
}

// CreateCheckout builds the session for the plan and returns the hosted
// page URL. When the implementation fee is bundled, the recurring plan
// starts with a trial so the first charge covers the fee alone.
func (s *CheckoutService) CreateCheckout(ctx context.Context, userID, planID string, includeFee bool) (string, error) {
	price, err := s.planPrice(planID)
	if err != nil {
		return "", err
	}

	req := SessionRequest{
		Mode:              "subscription",
		LineItems:         []LineItem{{Price: price, Quantity: 1}},
		SuccessURL:        s.cfg.SuccessURL,
		CancelURL:         s.cfg.CancelURL,
		ClientReferenceID: userID,
	}
	if includeFee {
		req.LineItems = append(req.LineItems, LineItem{Price: s.cfg.PriceSetup, Quantity: 1})
		req.TrialPeriodDays = s.cfg.TrialDays
	}

	session, err := s.client.CreateCheckoutSession(ctx, req)
	if err != nil {
		s.logger.Error("error creating checkout session",
			zap.Error(err), zap.String("plan_id", planID), zap.String("user_id", userID))
		return "", fmt.Errorf("creating checkout session: %w", err)
	}
	return session.URL, nil
}

func (s *CheckoutService) planPrice(planID string) (string, error) {
	switch planID {
	case PlanMensal:
		return s.cfg.PriceMensal, nil
	case PlanAnual:
		return s.cfg.PriceAnual, nil
	}
	return "", ErrUnknownPlan
}
