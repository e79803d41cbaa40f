package pricing

import (
	"sort"

	"github.com/shopspring/decimal"

	"cloudguide/core/types"
	"cloudguide/internal/errors"
)

// Rate table kinds, used as context on configuration errors
const (
	TableCompute = "compute_rates"
	TableStorage = "storage_rates"
	TableRegion  = "region_multipliers"
)

// RateTable holds the admin-managed prices for a single provider
type RateTable struct {
	// Compute is USD per vCPU-hour by OS family
	Compute map[types.OSFamily]decimal.Decimal `json:"compute_rates" yaml:"compute_rates"`

	// Storage is USD per GB-month by disk type
	Storage map[types.DiskType]decimal.Decimal `json:"storage_rates" yaml:"storage_rates"`

	// RegionMultiplier scales compute and storage by region
	RegionMultiplier map[types.Region]decimal.Decimal `json:"region_multipliers" yaml:"region_multipliers"`
}

// Clone returns a deep copy of the table
func (t RateTable) Clone() RateTable {
	out := RateTable{
		Compute:          make(map[types.OSFamily]decimal.Decimal, len(t.Compute)),
		Storage:          make(map[types.DiskType]decimal.Decimal, len(t.Storage)),
		RegionMultiplier: make(map[types.Region]decimal.Decimal, len(t.RegionMultiplier)),
	}
	for k, v := range t.Compute {
		out.Compute[k] = v
	}
	for k, v := range t.Storage {
		out.Storage[k] = v
	}
	for k, v := range t.RegionMultiplier {
		out.RegionMultiplier[k] = v
	}
	return out
}

// rates resolves the three lookups a spec needs from this table
func (t RateTable) rates(p types.Provider, spec types.InfrastructureSpec) (compute, storage, region decimal.Decimal, err error) {
	family := spec.OS.Family()
	compute, ok := t.Compute[family]
	if !ok {
		return compute, storage, region, errors.MissingRate(p.String(), TableCompute, string(family))
	}
	storage, ok = t.Storage[spec.DiskType]
	if !ok {
		return compute, storage, region, errors.MissingRate(p.String(), TableStorage, string(spec.DiskType))
	}
	region, ok = t.RegionMultiplier[spec.Region]
	if !ok {
		return compute, storage, region, errors.MissingRate(p.String(), TableRegion, string(spec.Region))
	}

	// Rates may be zero but not negative. Region multipliers must be positive.
	if compute.IsNegative() {
		return compute, storage, region, errors.InvalidRate(p.String(), TableCompute, string(family), compute.String())
	}
	if storage.IsNegative() {
		return compute, storage, region, errors.InvalidRate(p.String(), TableStorage, string(spec.DiskType), storage.String())
	}
	if !region.IsPositive() {
		return compute, storage, region, errors.InvalidRate(p.String(), TableRegion, string(spec.Region), region.String())
	}
	return compute, storage, region, nil
}

// RateBook maps each provider to its rate table.
// A book is treated as an immutable snapshot once handed to the calculator.
type RateBook map[types.Provider]RateTable

// Providers returns the providers in the book in stable comparison order
func (b RateBook) Providers() []types.Provider {
	out := make([]types.Provider, 0, len(b))
	for _, p := range types.AllProviders {
		if _, ok := b[p]; ok {
			out = append(out, p)
		}
	}
	return out
}

// Only returns a book restricted to the named providers.
// Providers absent from the book are reported as NOT_FOUND.
func (b RateBook) Only(providers ...types.Provider) (RateBook, error) {
	if len(providers) == 0 {
		return b, nil
	}
	out := make(RateBook, len(providers))
	for _, p := range providers {
		t, ok := b[p]
		if !ok {
			return nil, errors.NotFound("provider", p.String())
		}
		out[p] = t
	}
	return out, nil
}

// Validate checks the book can price the given spec.
// It fails fast on the first missing or out-of-range entry in provider order.
func (b RateBook) Validate(spec types.InfrastructureSpec) error {
	if len(b) == 0 {
		return errors.New(errors.TypeConfig, "rate book contains no providers")
	}

	unknown := make([]string, 0)
	for p := range b {
		if !p.IsValid() {
			unknown = append(unknown, p.String())
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return errors.Newf(errors.TypeConfig, "rate book contains unknown providers: %v", unknown)
	}

	for _, p := range b.Providers() {
		if _, _, _, err := b[p].rates(p, spec); err != nil {
			return err
		}
	}
	return nil
}
