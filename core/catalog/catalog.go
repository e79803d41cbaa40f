// Package catalog - Authoritative cloud provider catalog
// Holds the admin-managed rate tables, region availability and feature
// matrix for every provider the pricing engine can compare.
package catalog

import (
	"sort"

	"cloudguide/core/pricing"
	"cloudguide/core/types"
)

// Support grades how fully a provider offers a feature
type Support string

const (
	SupportYes     Support = "yes"
	SupportPartial Support = "partial"
	SupportNo      Support = "no"
)

// IsValid checks the support grade is known
func (s Support) IsValid() bool {
	return s == SupportYes || s == SupportPartial || s == SupportNo
}

// RegionInfo describes whether a provider operates in a pricing region.
// Availability is informational; an unavailable region is still priced.
type RegionInfo struct {
	Region    types.Region `json:"region" yaml:"region"`
	Label     string       `json:"label" yaml:"label"`
	Available bool         `json:"available" yaml:"available"`
}

// ProviderEntry is a catalog entry for a cloud provider
type ProviderEntry struct {
	Provider    types.Provider `json:"name" yaml:"name"`
	DisplayName string         `json:"display_name" yaml:"display_name"`
	ShortName   string         `json:"short_name" yaml:"short_name"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Color       string         `json:"color,omitempty" yaml:"color,omitempty"`
	SLA         string         `json:"sla,omitempty" yaml:"sla,omitempty"`
	IsActive    bool           `json:"is_active" yaml:"is_active"`

	pricing.RateTable `yaml:",inline"`

	Regions  []RegionInfo       `json:"available_regions" yaml:"available_regions"`
	Features map[string]Support `json:"features" yaml:"features"`
}

// AvailableRegions returns the regions the provider operates in
func (e *ProviderEntry) AvailableRegions() []types.Region {
	out := make([]types.Region, 0, len(e.Regions))
	for _, r := range e.Regions {
		if r.Available {
			out = append(out, r.Region)
		}
	}
	return out
}

// IsRegionAvailable reports whether the provider operates in the region
func (e *ProviderEntry) IsRegionAvailable(region types.Region) bool {
	for _, r := range e.Regions {
		if r.Region == region {
			return r.Available
		}
	}
	return false
}

// Catalog is the authoritative provider catalog
type Catalog struct {
	entries map[types.Provider]*ProviderEntry
}

// NewCatalog creates a new catalog
func NewCatalog() *Catalog {
	return &Catalog{
		entries: make(map[types.Provider]*ProviderEntry),
	}
}

// Default returns a catalog populated with the built-in providers
func Default() *Catalog {
	c := NewCatalog()
	RegisterDefaults(c)
	c.MustValidate()
	return c
}

// Register adds a provider to the catalog, replacing any existing entry
func (c *Catalog) Register(entry ProviderEntry) {
	c.entries[entry.Provider] = &entry
}

// Get returns a provider entry
func (c *Catalog) Get(p types.Provider) (*ProviderEntry, bool) {
	entry, ok := c.entries[p]
	return entry, ok
}

// List returns every entry in stable provider order
func (c *Catalog) List() []*ProviderEntry {
	out := make([]*ProviderEntry, 0, len(c.entries))
	for _, p := range c.providers() {
		out = append(out, c.entries[p])
	}
	return out
}

// providers orders known providers first, then anything else by name
func (c *Catalog) providers() []types.Provider {
	out := make([]types.Provider, 0, len(c.entries))
	for _, p := range types.AllProviders {
		if _, ok := c.entries[p]; ok {
			out = append(out, p)
		}
	}
	var extra []types.Provider
	for p := range c.entries {
		if !p.IsValid() {
			extra = append(extra, p)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	return append(out, extra...)
}

// RateBook snapshots the rate tables of every active provider
func (c *Catalog) RateBook() pricing.RateBook {
	book := make(pricing.RateBook, len(c.entries))
	for p, e := range c.entries {
		if e.IsActive {
			book[p] = e.RateTable.Clone()
		}
	}
	return book
}

// FeatureStats returns support counts for a provider
func (c *Catalog) FeatureStats(p types.Provider) FeatureStats {
	var stats FeatureStats
	entry, ok := c.entries[p]
	if !ok {
		return stats
	}
	for _, f := range Features {
		stats.Total++
		switch entry.Features[f.Name] {
		case SupportYes:
			stats.Yes++
		case SupportPartial:
			stats.Partial++
		default:
			stats.No++
		}
	}
	return stats
}

// FeatureStats holds per-provider feature counts
type FeatureStats struct {
	Total   int `json:"total"`
	Yes     int `json:"yes"`
	Partial int `json:"partial"`
	No      int `json:"no"`
}
