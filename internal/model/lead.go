package model

import "gorm.io/gorm"

// Lead statuses. Free enumeration, any screen may set any value.
const (
	LeadStatusNovo     = "novo"
	LeadStatusContato  = "contato"
	LeadStatusVisita   = "visita"
	LeadStatusProposta = "proposta"
	LeadStatusFechado  = "fechado"
	LeadStatusPerdido  = "perdido"
)

type Lead struct {
	gorm.Model
	TenantID    uint   `json:"tenant_id" gorm:"index"`
	Name        string `json:"name" gorm:"type:varchar(255)"`
	Phone       string `json:"phone" gorm:"type:varchar(32)"`
	Email       string `json:"email" gorm:"type:varchar(255)"`
	Source      string `json:"source" gorm:"type:varchar(128)"`
	Status      string `json:"status" gorm:"type:varchar(32);default:'novo'"`
	Notes       string `json:"notes" gorm:"type:text"`
	PropertyRef string `json:"property_ref" gorm:"type:varchar(64)"`
	SheetSynced bool   `json:"sheet_synced" gorm:"default:false"`
}
