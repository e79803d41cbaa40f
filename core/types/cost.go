// Package types - Cost estimate types
package types

import "github.com/shopspring/decimal"

// Money fields are JSON numbers on the wire. Decimal still decodes both
// numbers and quoted strings, so older saved analyses keep loading.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// Currency represents a currency code
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
)

// String returns the string representation
func (c Currency) String() string {
	return string(c)
}

// InfrastructureSpec is a concrete single-instance infrastructure request
type InfrastructureSpec struct {
	// VCPU is the number of virtual CPUs (>= 1)
	VCPU int `json:"vcpu" yaml:"vcpu"`

	// RAM in GB
	RAM float64 `json:"ram" yaml:"ram"`

	// Storage in GB
	Storage float64 `json:"storage" yaml:"storage"`

	OS       OS       `json:"os" yaml:"os"`
	DiskType DiskType `json:"diskType" yaml:"diskType"`
	UseCase  UseCase  `json:"useCase" yaml:"useCase"`
	Region   Region   `json:"region" yaml:"region"`
}

// CostBreakdown explains how a monthly figure was assembled.
// Components are rounded to cents for display only; MonthlyCost is
// computed from the unrounded components.
type CostBreakdown struct {
	ComputeCost       decimal.Decimal `json:"computeCost" yaml:"computeCost"`
	StorageCost       decimal.Decimal `json:"storageCost" yaml:"storageCost"`
	NetworkCost       decimal.Decimal `json:"networkCost" yaml:"networkCost"`
	RAMMultiplier     decimal.Decimal `json:"ramMultiplier" yaml:"ramMultiplier"`
	UseCaseMultiplier decimal.Decimal `json:"useCaseMultiplier" yaml:"useCaseMultiplier"`
	RegionMultiplier  decimal.Decimal `json:"regionMultiplier" yaml:"regionMultiplier"`
}

// ProviderEstimate is the priced result for one provider
type ProviderEstimate struct {
	Provider         Provider        `json:"provider" yaml:"provider"`
	InstanceType     string          `json:"instanceType" yaml:"instanceType"`
	MonthlyCost      decimal.Decimal `json:"monthlyCost" yaml:"monthlyCost"`
	YearlyCost       decimal.Decimal `json:"yearlyCost" yaml:"yearlyCost"`
	IsMostEconomical bool            `json:"isMostEconomical" yaml:"isMostEconomical"`
	Breakdown        *CostBreakdown  `json:"breakdown,omitempty" yaml:"breakdown,omitempty"`
}
