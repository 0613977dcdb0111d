package postgres

import (
	"context"

	"imobhub/internal/model"

	"gorm.io/gorm"
)

type AppointmentRepository struct {
	DB *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{DB: db}
}

func (r *AppointmentRepository) Insert(ctx context.Context, appointment *model.Appointment) error {
	return r.DB.WithContext(ctx).Create(appointment).Error
}

func (r *AppointmentRepository) ListByTenant(ctx context.Context, tenantID uint) ([]model.Appointment, error) {
	var appointments []model.Appointment
	err := r.DB.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("scheduled_at ASC").
		Find(&appointments).Error
	return appointments, err
}

func (r *AppointmentRepository) GetByID(ctx context.Context, id uint) (*model.Appointment, error) {
	var appointment model.Appointment
	if err := r.DB.WithContext(ctx).First(&appointment, id).Error; err != nil {
		return nil, err
	}
	return &appointment, nil
}

func (r *AppointmentRepository) Delete(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Delete(&model.Appointment{}, id).Error
}

type PartnerRepository struct {
	DB *gorm.DB
}

func NewPartnerRepository(db *gorm.DB) *PartnerRepository {
	return &PartnerRepository{DB: db}
}

func (r *PartnerRepository) Insert(ctx context.Context, partner *model.Partner) error {
	return r.DB.WithContext(ctx).Create(partner).Error
}

func (r *PartnerRepository) ListByTenant(ctx context.Context, tenantID uint) ([]model.Partner, error) {
	var partners []model.Partner
	err := r.DB.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("name ASC").
		Find(&partners).Error
	return partners, err
}

func (r *PartnerRepository) GetByID(ctx context.Context, id uint) (*model.Partner, error) {
	var partner model.Partner
	if err := r.DB.WithContext(ctx).First(&partner, id).Error; err != nil {
		return nil, err
	}
	return &partner, nil
}

func (r *PartnerRepository) Delete(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Delete(&model.Partner{}, id).Error
}
