package model

import "gorm.io/gorm"

// Deal types for a property listing.
const (
	DealVenda   = "venda"
	DealAluguel = "aluguel"
)

// Property is the canonical listing shape stored regardless of the source
// feed schema. (Origin, RefID) is the natural key used for upsert and
// pruning.
type Property struct {
	gorm.Model
	RefID        string  `json:"ref_id" gorm:"type:varchar(64);uniqueIndex:property_origin_ref_unique"`
	Origin       string  `json:"origin" gorm:"type:varchar(128);uniqueIndex:property_origin_ref_unique;index"`
	Title        string  `json:"title" gorm:"type:varchar(255)"`
	Description  string  `json:"description" gorm:"type:text"`
	Price        float64 `json:"price"`
	DealType     string  `json:"deal_type" gorm:"type:varchar(16)"`
	PropertyType string  `json:"property_type" gorm:"type:varchar(64)"`
	Neighborhood string  `json:"neighborhood" gorm:"type:varchar(128)"`
	City         string  `json:"city" gorm:"type:varchar(128)"`
	Bedrooms     int     `json:"bedrooms"`
	Bathrooms    int     `json:"bathrooms"`
	Parking      int     `json:"parking"`
	Area         float64 `json:"area"`
	ImageURL     string  `json:"image_url" gorm:"type:varchar(512)"`
	Features     string  `json:"features" gorm:"type:text"`
	CondoFee     float64 `json:"condo_fee"`
	PropertyTax  float64 `json:"property_tax"`
}
