package postgres

import (
	"context"

	"imobhub/internal/model"

	"gorm.io/gorm"
)

type LeadRepository struct {
	DB *gorm.DB
}

func NewLeadRepository(db *gorm.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

func (r *LeadRepository) Insert(ctx context.Context, lead *model.Lead) error {
	return r.DB.WithContext(ctx).Create(lead).Error
}

func (r *LeadRepository) ListByTenant(ctx context.Context, tenantID uint) ([]model.Lead, error) {
	var leads []model.Lead
	err := r.DB.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Find(&leads).Error
	return leads, err
}

func (r *LeadRepository) GetByID(ctx context.Context, id uint) (*model.Lead, error) {
	var lead model.Lead
	if err := r.DB.WithContext(ctx).First(&lead, id).Error; err != nil {
		return nil, err
	}
	return &lead, nil
}

func (r *LeadRepository) Update(ctx context.Context, lead *model.Lead) error {
	return r.DB.WithContext(ctx).Save(lead).Error
}

func (r *LeadRepository) Delete(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Delete(&model.Lead{}, id).Error
}

// ListUnsynced returns leads not yet exported to the sheet.
func (r *LeadRepository) ListUnsynced(ctx context.Context) ([]model.Lead, error) {
	var leads []model.Lead
	err := r.DB.WithContext(ctx).Where("sheet_synced = ?", false).Find(&leads).Error
	return leads, err
}

// MarkSheetSynced updates the sheet_synced flag by id.
func (r *LeadRepository) MarkSheetSynced(ctx context.Context, id uint, synced bool) error {
	return r.DB.WithContext(ctx).Model(&model.Lead{}).
		Where("id = ?", id).
		Update("sheet_synced", synced).Error
}
