package postgres

import (
	"context"

	"imobhub/internal/domain"
	"imobhub/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TenantRepository struct {
	DB *gorm.DB
}

func NewTenantRepository(db *gorm.DB) *TenantRepository {
	return &TenantRepository{DB: db}
}

func (r *TenantRepository) Insert(ctx context.Context, tenant *model.Tenant) error {
	return r.DB.WithContext(ctx).Create(tenant).Error
}

func (r *TenantRepository) GetByAPIToken(ctx context.Context, token string) (*model.Tenant, error) {
	var tenant model.Tenant
	if err := r.DB.WithContext(ctx).Where("api_token = ?", token).First(&tenant).Error; err != nil {
		return nil, err
	}
	return &tenant, nil
}

func (r *TenantRepository) GetByUserID(ctx context.Context, userID string) (*model.Tenant, error) {
	var tenant model.Tenant
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&tenant).Error; err != nil {
		return nil, err
	}
	return &tenant, nil
}

func (r *TenantRepository) Update(ctx context.Context, tenant *model.Tenant) error {
	return r.DB.WithContext(ctx).Save(tenant).Error
}

// UpsertSubscription creates or refreshes the subscription state of the
// tenant identified by user id. Webhook retries land on the update path,
// which keeps the operation idempotent per terminal state.
func (r *TenantRepository) UpsertSubscription(ctx context.Context, sub domain.SubscriptionUpdate) error {
	tenant := model.Tenant{
		UserID:             sub.UserID,
		SubscriptionStatus: sub.Status,
		PlanID:             sub.PlanID,
		CustomerRef:        sub.CustomerRef,
		SubscriptionRef:    sub.SubscriptionRef,
	}
	return r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"subscription_status", "plan_id", "customer_ref", "subscription_ref", "updated_at",
		}),
	}).Create(&tenant).Error
}
