package domain

import "imobhub/internal/model"

// LeadNotifier pushes a new-lead alert to the tenant's configured channel.
type LeadNotifier interface {
	NotifyNewLead(chatID int64, lead model.Lead) error
}
