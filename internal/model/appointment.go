package model

import (
	"time"

	"gorm.io/gorm"
)

type Appointment struct {
	gorm.Model
	TenantID    uint      `json:"tenant_id" gorm:"index"`
	LeadID      uint      `json:"lead_id" gorm:"index"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Note        string    `json:"note" gorm:"type:text"`
}
