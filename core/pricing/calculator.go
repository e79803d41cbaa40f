package pricing

import (
	"github.com/shopspring/decimal"

	"cloudguide/core/types"
)

// CalculateProviderCosts prices the spec against every provider in the book.
//
// The spec and the book are both validated before any arithmetic runs, so the
// call either prices every provider or returns an INPUT or CONFIG error.
// Estimates come back in types.AllProviders order with exactly one marked
// as most economical; ties go to the earlier provider.
func CalculateProviderCosts(spec types.InfrastructureSpec, book RateBook) ([]types.ProviderEstimate, error) {
	if err := ValidateSpec(spec); err != nil {
		return nil, err
	}
	if err := book.Validate(spec); err != nil {
		return nil, err
	}

	providers := book.Providers()
	estimates := make([]types.ProviderEstimate, 0, len(providers))
	for _, p := range providers {
		est, err := estimate(p, spec, book[p])
		if err != nil {
			return nil, err
		}
		estimates = append(estimates, est)
	}

	cheapest := 0
	for i := 1; i < len(estimates); i++ {
		if estimates[i].MonthlyCost.LessThan(estimates[cheapest].MonthlyCost) {
			cheapest = i
		}
	}
	estimates[cheapest].IsMostEconomical = true

	return estimates, nil
}

func estimate(p types.Provider, spec types.InfrastructureSpec, table RateTable) (types.ProviderEstimate, error) {
	computeRate, storageRate, regionMult, err := table.rates(p, spec)
	if err != nil {
		return types.ProviderEstimate{}, err
	}

	useCaseMult, _ := UseCaseMultiplier(spec.UseCase)
	networkMult, _ := NetworkMultiplier(spec.UseCase)

	vcpu := decimal.NewFromInt(int64(spec.VCPU))
	ramMult := RAMMultiplier(spec.VCPU, spec.RAM)

	compute := vcpu.
		Mul(computeRate).
		Mul(HoursPerMonth).
		Mul(ramMult).
		Mul(useCaseMult).
		Mul(regionMult)
	storage := decimal.NewFromFloat(spec.Storage).Mul(storageRate).Mul(regionMult)
	network := compute.Mul(networkMult).Mul(networkAdjustment(p, spec.Region))

	monthly := compute.Add(storage).Add(network).Round(CentPlaces)
	yearly := monthly.Mul(MonthsPerYear).Mul(AnnualDiscount).Round(CentPlaces)

	return types.ProviderEstimate{
		Provider:     p,
		InstanceType: InstanceType(p, spec.VCPU, spec.RAM),
		MonthlyCost:  monthly,
		YearlyCost:   yearly,
		Breakdown: &types.CostBreakdown{
			ComputeCost:       compute.Round(CentPlaces),
			StorageCost:       storage.Round(CentPlaces),
			NetworkCost:       network.Round(CentPlaces),
			RAMMultiplier:     ramMult,
			UseCaseMultiplier: useCaseMult,
			RegionMultiplier:  regionMult,
		},
	}, nil
}

// RAMMultiplier scales compute by how far RAM per vCPU sits from the baseline,
// clamped to [RAMMultiplierFloor, RAMMultiplierCeiling].
func RAMMultiplier(vcpu int, ram float64) decimal.Decimal {
	ratio := decimal.NewFromFloat(ram).Div(decimal.NewFromInt(int64(vcpu)))
	m := decimal.NewFromInt(1).Add(ratio.Sub(BaseRAMPerVCPU).Div(BaseRAMPerVCPU).Mul(RAMWeight))
	if m.LessThan(RAMMultiplierFloor) {
		return RAMMultiplierFloor
	}
	if m.GreaterThan(RAMMultiplierCeiling) {
		return RAMMultiplierCeiling
	}
	return m
}
