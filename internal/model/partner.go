package model

import "gorm.io/gorm"

type Partner struct {
	gorm.Model
	TenantID  uint   `json:"tenant_id" gorm:"index"`
	Name      string `json:"name" gorm:"type:varchar(255)"`
	Specialty string `json:"specialty" gorm:"type:varchar(128)"`
	Phone     string `json:"phone" gorm:"type:varchar(32)"`
	Email     string `json:"email" gorm:"type:varchar(255)"`
}
