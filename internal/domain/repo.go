package domain

import (
	"context"

	"imobhub/internal/model"
)

type PropertyRepo interface {
	// Upsert a batch of canonical properties keyed on (origin, ref id)
	UpsertBatch(ctx context.Context, properties []model.Property) error

	// All ref ids currently stored for an origin
	ListRefIDsByOrigin(ctx context.Context, origin string) ([]string, error)

	// Delete properties of an origin by ref id
	DeleteByRefIDs(ctx context.Context, origin string, refIDs []string) error

	// List properties, optionally filtered by origin and deal type
	List(ctx context.Context, filter PropertyFilter) ([]model.Property, error)

	// Lookup by primary key
	GetByID(ctx context.Context, id uint) (*model.Property, error)

	// Delete by primary key
	Delete(ctx context.Context, id uint) error

	// Total rows for an origin
	CountByOrigin(ctx context.Context, origin string) (int64, error)
}

// PropertyFilter narrows List results. Zero values mean no filtering.
type PropertyFilter struct {
	Origin   string
	DealType string
}

type LeadRepo interface {
	// Insert a new lead
	Insert(ctx context.Context, lead *model.Lead) error

	// Leads of a tenant, newest first
	ListByTenant(ctx context.Context, tenantID uint) ([]model.Lead, error)

	// Lookup by primary key
	GetByID(ctx context.Context, id uint) (*model.Lead, error)

	// Persist changed fields of an existing lead
	Update(ctx context.Context, lead *model.Lead) error

	// Delete by primary key
	Delete(ctx context.Context, id uint) error

	// All leads not yet exported to the sheet
	ListUnsynced(ctx context.Context) ([]model.Lead, error)

	// Flip the sheet_synced flag of a lead
	MarkSheetSynced(ctx context.Context, id uint, synced bool) error
}

type TenantRepo interface {
	// Insert a new tenant
	Insert(ctx context.Context, tenant *model.Tenant) error

	// Resolve an API bearer token to a tenant
	GetByAPIToken(ctx context.Context, token string) (*model.Tenant, error)

	// Lookup by the auth platform user id
	GetByUserID(ctx context.Context, userID string) (*model.Tenant, error)

	// Persist changed profile fields
	Update(ctx context.Context, tenant *model.Tenant) error

	// Create-or-update the subscription state keyed on user id
	UpsertSubscription(ctx context.Context, sub SubscriptionUpdate) error
}

// SubscriptionUpdate carries the reconciled subscription state for a tenant.
type SubscriptionUpdate struct {
	UserID          string
	Status          string
	PlanID          string
	CustomerRef     string
	SubscriptionRef string
}

type AppointmentRepo interface {
	Insert(ctx context.Context, appointment *model.Appointment) error
	ListByTenant(ctx context.Context, tenantID uint) ([]model.Appointment, error)
	GetByID(ctx context.Context, id uint) (*model.Appointment, error)
	Delete(ctx context.Context, id uint) error
}

type PartnerRepo interface {
	Insert(ctx context.Context, partner *model.Partner) error
	ListByTenant(ctx context.Context, tenantID uint) ([]model.Partner, error)
	GetByID(ctx context.Context, id uint) (*model.Partner, error)
	Delete(ctx context.Context, id uint) error
}
