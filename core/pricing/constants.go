// Package pricing - Pricing model constants
// Every fixed number the calculator uses lives here so the full rate
// surface can be reviewed in one place.
package pricing

import (
	"github.com/shopspring/decimal"

	"cloudguide/core/types"
)

var (
	// HoursPerMonth approximates the average number of hours in a month
	HoursPerMonth = decimal.NewFromInt(730)

	// BaseRAMPerVCPU is the GB-per-vCPU ratio that carries no RAM premium
	BaseRAMPerVCPU = decimal.NewFromInt(4)

	// RAMWeight scales how strongly the RAM ratio moves compute cost
	RAMWeight = decimal.RequireFromString("0.25")

	// RAMMultiplierFloor and RAMMultiplierCeiling bound the RAM multiplier
	RAMMultiplierFloor   = decimal.RequireFromString("0.85")
	RAMMultiplierCeiling = decimal.RequireFromString("1.4")

	// MonthsPerYear and AnnualDiscount derive yearly cost from monthly
	MonthsPerYear  = decimal.NewFromInt(12)
	AnnualDiscount = decimal.RequireFromString("0.95")

	// LocalNetworkAdjustment discounts network cost where a provider peers locally
	LocalNetworkAdjustment = decimal.RequireFromString("0.7")

	// CentPlaces is the rounding precision of every published cost
	CentPlaces int32 = 2
)

// useCaseMultipliers shift compute cost by workload category
var useCaseMultipliers = map[types.UseCase]decimal.Decimal{
	types.UseCaseWebApp:        decimal.NewFromInt(1),
	types.UseCaseGeneralServer: decimal.NewFromInt(1),
	types.UseCaseDatabase:      decimal.RequireFromString("1.15"),
	types.UseCaseERP:           decimal.RequireFromString("1.2"),
	types.UseCaseHighTraffic:   decimal.RequireFromString("1.25"),
	types.UseCaseArchiveBackup: decimal.RequireFromString("0.9"),
}

// networkMultipliers express egress as a share of compute cost
var networkMultipliers = map[types.UseCase]decimal.Decimal{
	types.UseCaseWebApp:        decimal.RequireFromString("0.04"),
	types.UseCaseGeneralServer: decimal.RequireFromString("0.04"),
	types.UseCaseDatabase:      decimal.RequireFromString("0.04"),
	types.UseCaseERP:           decimal.RequireFromString("0.04"),
	types.UseCaseHighTraffic:   decimal.RequireFromString("0.08"),
	types.UseCaseArchiveBackup: decimal.RequireFromString("0.02"),
}

// localNetworkRegions lists provider/region pairs with in-country peering
var localNetworkRegions = map[types.Provider]types.Region{
	types.ProviderHuawei: types.RegionTurkeyLocal,
}

// recommendedDisks maps each workload to its default storage tier
var recommendedDisks = map[types.UseCase]types.DiskType{
	types.UseCaseDatabase:      types.DiskPremiumSSD,
	types.UseCaseERP:           types.DiskPremiumSSD,
	types.UseCaseHighTraffic:   types.DiskUltraSSD,
	types.UseCaseArchiveBackup: types.DiskStandardHDD,
	types.UseCaseWebApp:        types.DiskStandardSSD,
	types.UseCaseGeneralServer: types.DiskStandardSSD,
}

// DefaultDiskType is recommended for workloads without a specific mapping
const DefaultDiskType = types.DiskStandardSSD

// UseCaseMultiplier returns the compute multiplier for a workload
func UseCaseMultiplier(u types.UseCase) (decimal.Decimal, bool) {
	m, ok := useCaseMultipliers[u]
	return m, ok
}

// NetworkMultiplier returns the egress share for a workload
func NetworkMultiplier(u types.UseCase) (decimal.Decimal, bool) {
	m, ok := networkMultipliers[u]
	return m, ok
}

// networkAdjustment returns the local peering discount, or one
func networkAdjustment(p types.Provider, r types.Region) decimal.Decimal {
	if local, ok := localNetworkRegions[p]; ok && local == r {
		return LocalNetworkAdjustment
	}
	return decimal.NewFromInt(1)
}
