package billing

import "errors"

var (
	// ErrUnknownPlan means the checkout request named a plan the service
	// does not sell.
	ErrUnknownPlan = errors.New("plano desconhecido")

	// ErrBadSignature means the webhook signature did not match the
	// shared secret.
	ErrBadSignature = errors.New("assinatura do webhook invalida")

	// ErrStaleTimestamp means the signed timestamp is outside the
	// accepted clock skew.
	ErrStaleTimestamp = errors.New("timestamp do webhook expirado")
)
