package model

import "gorm.io/gorm"

// Subscription statuses a tenant can be in. Provider statuses are mapped
// onto these three by the billing reconciler.
const (
	SubscriptionActive     = "active"
	SubscriptionDelinquent = "delinquent"
	SubscriptionCancelled  = "cancelled"
)

// Tenant is a broker/agency account. UserID is the identity the auth
// platform assigns; APIToken authenticates API calls.
type Tenant struct {
	gorm.Model
	UserID             string `json:"user_id" gorm:"type:varchar(64);uniqueIndex"`
	Name               string `json:"name" gorm:"type:varchar(255)"`
	Email              string `json:"email" gorm:"type:varchar(255)"`
	Phone              string `json:"phone" gorm:"type:varchar(32)"`
	Company            string `json:"company" gorm:"type:varchar(255)"`
	APIToken           string `json:"-" gorm:"type:varchar(128);uniqueIndex"`
	SubscriptionStatus string `json:"subscription_status" gorm:"type:varchar(32)"`
	PlanID             string `json:"plan_id" gorm:"type:varchar(64)"`
	CustomerRef        string `json:"-" gorm:"type:varchar(128)"`
	SubscriptionRef    string `json:"-" gorm:"type:varchar(128)"`
	TelegramChatID     int64  `json:"telegram_chat_id"`
}
