package db_models

import (
	"gorm.io/datatypes"
)

type BillingPeriod string

const (
	PeriodMonth BillingPeriod = "month"
	PeriodYear  BillingPeriod = "year"
)

// Plan is a purchasable subscription plan shown on the pricing page.
// Code doubles as the tier it grants ("basic", "pro").
type Plan struct {
	BaseModel
	Code        string `gorm:"uniqueIndex"`
	Name        string
	Description *string
	Period      BillingPeriod `gorm:"size:8"`
	PriceMinor  int64
	Currency    string `gorm:"size:3"`
	Tier        Tier   `gorm:"size:16"`
	IsActive    bool   `gorm:"default:true"`

	Features datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
}
