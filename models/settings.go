package models

import "time"

// Additional-fee strategies for the viewing fee. The product has shipped
// both at different times, so the active one is configuration, not code.
const (
	// ViewingFeePerProperty charges the additional fee once per extra
	// property beyond the threshold.
	ViewingFeePerProperty string = "per_property"
	// ViewingFeePerBlock charges the additional fee once per started block
	// of `threshold` extra properties.
	ViewingFeePerBlock string = "per_block"
)

// PricingSettings is the snapshot handed to the pricing policy. Callers load
// it (settings service, Redis-cached) and pass it down; nothing reads it
// from shared mutable state.
type PricingSettings struct {
	ViewingFeeBase       float64 `bson:"viewingFeeBase" json:"viewingFeeBase"`
	ViewingFeeAdditional float64 `bson:"viewingFeeAdditional" json:"viewingFeeAdditional"`
	ViewingFeeThreshold  int     `bson:"viewingFeeThreshold" json:"viewingFeeThreshold"`
	ViewingFeeStrategy   string  `bson:"viewingFeeStrategy" json:"viewingFeeStrategy"`

	// Fallback platform commission when a company profile has none.
	DefaultCommissionPercentage float64 `bson:"defaultCommissionPercentage" json:"defaultCommissionPercentage"`

	DownPaymentPercentage       float64 `bson:"downPaymentPercentage" json:"downPaymentPercentage"`
	ManagerCommissionEnabled    bool    `bson:"managerCommissionEnabled" json:"managerCommissionEnabled"`
	ManagerCommissionPercentage float64 `bson:"managerCommissionPercentage" json:"managerCommissionPercentage"`
}

// DefaultPricingSettings returns the shipped defaults.
func DefaultPricingSettings() PricingSettings {
	return PricingSettings{
		ViewingFeeBase:              1500,
		ViewingFeeAdditional:        500,
		ViewingFeeThreshold:         3,
		ViewingFeeStrategy:          ViewingFeePerBlock,
		DefaultCommissionPercentage: 20,
		DownPaymentPercentage:       20,
		ManagerCommissionEnabled:    false,
		ManagerCommissionPercentage: 5,
	}
}

// Settings is the single global settings document.
type Settings struct {
	ID          string          `bson:"id" json:"id"`
	SettingType string          `bson:"settingType" json:"settingType"` // always "global"
	Pricing     PricingSettings `bson:"pricing" json:"pricing"`
	UpdatedAt   time.Time       `bson:"updatedAt" json:"updatedAt"`
}

// SettingsUpdate is the admin patch body; nil fields are left unchanged.
type SettingsUpdate struct {
	ViewingFeeBase              *float64 `json:"viewingFeeBase,omitempty"`
	ViewingFeeAdditional        *float64 `json:"viewingFeeAdditional,omitempty"`
	ViewingFeeThreshold         *int     `json:"viewingFeeThreshold,omitempty"`
	ViewingFeeStrategy          *string  `json:"viewingFeeStrategy,omitempty"`
	DefaultCommissionPercentage *float64 `json:"defaultCommissionPercentage,omitempty"`
	DownPaymentPercentage       *float64 `json:"downPaymentPercentage,omitempty"`
	ManagerCommissionEnabled    *bool    `json:"managerCommissionEnabled,omitempty"`
	ManagerCommissionPercentage *float64 `json:"managerCommissionPercentage,omitempty"`
}
