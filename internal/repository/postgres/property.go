package postgres

import (
	"context"

	"imobhub/internal/domain"
	"imobhub/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Columns refreshed when an upsert hits an existing (origin, ref_id) row.
var propertyUpdateColumns = []string{
	"title", "description", "price", "deal_type", "property_type",
	"neighborhood", "city", "bedrooms", "bathrooms", "parking", "area",
	"image_url", "features", "condo_fee", "property_tax", "updated_at",
	// Clearing deleted_at lets a previously removed listing come back
	// when its feed carries the ref id again.
	"deleted_at",
}

type PropertyRepository struct {
	DB *gorm.DB
}

func NewPropertyRepository(db *gorm.DB) *PropertyRepository {
	return &PropertyRepository{DB: db}
}

// UpsertBatch inserts the batch, updating rows whose (origin, ref_id)
// already exists.
func (r *PropertyRepository) UpsertBatch(ctx context.Context, properties []model.Property) error {
	if len(properties) == 0 {
		return nil
	}
	return r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "origin"}, {Name: "ref_id"}},
		DoUpdates: clause.AssignmentColumns(propertyUpdateColumns),
	}).Create(&properties).Error
}

// ListRefIDsByOrigin returns every ref id stored for the origin.
func (r *PropertyRepository) ListRefIDsByOrigin(ctx context.Context, origin string) ([]string, error) {
	var refIDs []string
	err := r.DB.WithContext(ctx).Model(&model.Property{}).
		Where("origin = ?", origin).
		Pluck("ref_id", &refIDs).Error
	return refIDs, err
}

// DeleteByRefIDs removes the given ref ids of an origin. The delete is
// unscoped: pruned rows would otherwise keep occupying the (origin, ref_id)
// unique index as invisible tombstones.
func (r *PropertyRepository) DeleteByRefIDs(ctx context.Context, origin string, refIDs []string) error {
	if len(refIDs) == 0 {
		return nil
	}
	return r.DB.WithContext(ctx).Unscoped().
		Where("origin = ? AND ref_id IN ?", origin, refIDs).
		Delete(&model.Property{}).Error
}

// List returns properties matching the filter, newest first.
func (r *PropertyRepository) List(ctx context.Context, filter domain.PropertyFilter) ([]model.Property, error) {
	q := r.DB.WithContext(ctx).Model(&model.Property{})
	if filter.Origin != "" {
		q = q.Where("origin = ?", filter.Origin)
	}
	if filter.DealType != "" {
		q = q.Where("deal_type = ?", filter.DealType)
	}
	var properties []model.Property
	err := q.Order("created_at DESC").Find(&properties).Error
	return properties, err
}

func (r *PropertyRepository) GetByID(ctx context.Context, id uint) (*model.Property, error) {
	var property model.Property
	if err := r.DB.WithContext(ctx).First(&property, id).Error; err != nil {
		return nil, err
	}
	return &property, nil
}

func (r *PropertyRepository) Delete(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Delete(&model.Property{}, id).Error
}

func (r *PropertyRepository) CountByOrigin(ctx context.Context, origin string) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Property{}).
		Where("origin = ?", origin).
		Count(&count).Error
	return count, err
}
