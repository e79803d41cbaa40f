// Package engine provides the primary API for comparisons and advice.
// CLI and HTTP are thin wrappers around this engine.
package engine

import (
	"context"
	"time"

	"cloudguide/core/advisory"
	"cloudguide/core/catalog"
	"cloudguide/core/determinism"
	"cloudguide/core/output"
	"cloudguide/core/pricing"
	"cloudguide/core/questionnaire"
	"cloudguide/core/types"
	"cloudguide/internal/errors"
)

// CatalogSource supplies the provider catalog prices are read from
type CatalogSource interface {
	Load(ctx context.Context) (*catalog.Catalog, error)
}

// Config configures the engine
type Config struct {
	// Currency labels every amount
	Currency types.Currency

	// Version is stamped into comparison metadata
	Version string
}

// Engine is the primary API for pricing and advisory.
// All other interfaces (CLI, HTTP) are thin wrappers.
type Engine struct {
	source CatalogSource
	config Config
	now    func() time.Time
}

// New creates an engine reading rates from source
func New(source CatalogSource, config Config) *Engine {
	if config.Currency == "" {
		config.Currency = types.CurrencyUSD
	}
	return &Engine{
		source: source,
		config: config,
		now:    time.Now,
	}
}

// CompareRequest is the input to a comparison
type CompareRequest struct {
	// Spec is the infrastructure to price
	Spec types.InfrastructureSpec `json:"spec" yaml:"spec"`

	// Providers restricts the comparison; empty compares every active provider
	Providers []types.Provider `json:"providers,omitempty" yaml:"providers,omitempty"`
}

// Compare prices the spec on every selected provider
func (e *Engine) Compare(ctx context.Context, req CompareRequest) (*output.Comparison, error) {
	c, err := e.source.Load(ctx)
	if err != nil {
		return nil, err
	}

	book := c.RateBook()
	if len(req.Providers) > 0 {
		if book, err = book.Only(req.Providers...); err != nil {
			return nil, err
		}
	}

	estimates, err := pricing.CalculateProviderCosts(req.Spec, book)
	if err != nil {
		return nil, err
	}

	// hash covers both the spec and the rates in effect
	hash, err := determinism.HashJSON(struct {
		Spec  types.InfrastructureSpec `json:"spec"`
		Rates pricing.RateBook         `json:"rates"`
	}{req.Spec, book})
	if err != nil {
		return nil, errors.Internal("failed to hash comparison input", err)
	}

	return &output.Comparison{
		Spec:      req.Spec,
		Estimates: estimates,
		Metadata: output.Metadata{
			Timestamp: e.now().UTC(),
			InputHash: hash.Hex(),
			Currency:  e.config.Currency,
			Version:   e.config.Version,
		},
	}, nil
}

// Advise evaluates a migration profile
func (e *Engine) Advise(p types.MigrationProfile) advisory.Result {
	return advisory.Evaluate(p)
}

// EstimateProject prices a migration project from questionnaire answers
func (e *Engine) EstimateProject(answers questionnaire.Answers) (*questionnaire.Result, error) {
	return questionnaire.Estimate(answers)
}

// EstimateProfile prices a migration project from a wizard profile
func (e *Engine) EstimateProfile(p types.MigrationProfile) (*questionnaire.Result, error) {
	return questionnaire.Estimate(questionnaire.FromProfile(p))
}

// RecommendDisk returns the disk type suggested for a workload
func (e *Engine) RecommendDisk(useCase types.UseCase) types.DiskType {
	return pricing.RecommendedDiskType(useCase)
}

// Providers lists the catalog entries
func (e *Engine) Providers(ctx context.Context) ([]*catalog.ProviderEntry, error) {
	c, err := e.source.Load(ctx)
	if err != nil {
		return nil, err
	}
	return c.List(), nil
}

// ProviderDetail is a catalog entry with its feature counts
type ProviderDetail struct {
	*catalog.ProviderEntry
	FeatureStats catalog.FeatureStats `json:"feature_stats" yaml:"feature_stats"`
}

// Provider returns one catalog entry
func (e *Engine) Provider(ctx context.Context, name string) (*ProviderDetail, error) {
	c, err := e.source.Load(ctx)
	if err != nil {
		return nil, err
	}
	p := types.Provider(name)
	if parsed, ok := types.ParseProvider(name); ok {
		p = parsed
	}
	entry, ok := c.Get(p)
	if !ok {
		return nil, errors.NotFound("provider", name)
	}
	return &ProviderDetail{
		ProviderEntry: entry,
		FeatureStats:  c.FeatureStats(p),
	}, nil
}
