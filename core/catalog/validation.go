// Package catalog - Catalog validation
// Ensures every provider can price any valid specification.
package catalog

import (
	"fmt"
	"strings"

	"cloudguide/core/types"
)

// ValidationRule is a catalog validation rule
type ValidationRule func(*ProviderEntry) error

// DefaultValidationRules returns the standard validation rules
func DefaultValidationRules() []ValidationRule {
	return []ValidationRule{
		validateIdentity,
		validateComputeRates,
		validateStorageRates,
		validateRegionMultipliers,
		validateRegions,
		validateFeatures,
	}
}

// Validate checks a catalog against validation rules
func (c *Catalog) Validate(rules []ValidationRule) []error {
	var errors []error

	for _, p := range c.providers() {
		entry := c.entries[p]
		for _, rule := range rules {
			if err := rule(entry); err != nil {
				errors = append(errors, fmt.Errorf("%s: %w", entry.Provider, err))
			}
		}
	}

	return errors
}

// validateIdentity ensures the entry names a known provider
func validateIdentity(e *ProviderEntry) error {
	if !e.Provider.IsValid() {
		return fmt.Errorf("unknown provider")
	}
	if e.DisplayName == "" || e.ShortName == "" {
		return fmt.Errorf("display_name and short_name are required")
	}
	return nil
}

// validateComputeRates ensures both OS families are priced
func validateComputeRates(e *ProviderEntry) error {
	for _, f := range types.AllOSFamilies {
		rate, ok := e.Compute[f]
		if !ok {
			return fmt.Errorf("missing compute rate for %s", f)
		}
		if !rate.IsPositive() {
			return fmt.Errorf("compute rate for %s must be positive", f)
		}
	}
	return nil
}

// validateStorageRates ensures every disk type is priced
func validateStorageRates(e *ProviderEntry) error {
	for _, d := range types.AllDiskTypes {
		rate, ok := e.Storage[d]
		if !ok {
			return fmt.Errorf("missing storage rate for %s", d)
		}
		if !rate.IsPositive() {
			return fmt.Errorf("storage rate for %s must be positive", d)
		}
	}
	return nil
}

// validateRegionMultipliers ensures every region has a positive multiplier
func validateRegionMultipliers(e *ProviderEntry) error {
	for _, r := range types.AllRegions {
		m, ok := e.RegionMultiplier[r]
		if !ok {
			return fmt.Errorf("missing region multiplier for %s", r)
		}
		if !m.IsPositive() {
			return fmt.Errorf("region multiplier for %s must be positive", r)
		}
	}
	return nil
}

// validateRegions ensures availability only names known regions, once each
func validateRegions(e *ProviderEntry) error {
	seen := make(map[types.Region]bool, len(e.Regions))
	for _, r := range e.Regions {
		if !r.Region.IsValid() {
			return fmt.Errorf("unknown region %q", r.Region)
		}
		if seen[r.Region] {
			return fmt.Errorf("region %s listed twice", r.Region)
		}
		seen[r.Region] = true
	}
	return nil
}

// validateFeatures ensures the feature matrix uses known names and grades
func validateFeatures(e *ProviderEntry) error {
	for name, s := range e.Features {
		if !IsKnownFeature(name) {
			return fmt.Errorf("unknown feature %q", name)
		}
		if !s.IsValid() {
			return fmt.Errorf("feature %q has invalid support %q", name, s)
		}
	}
	return nil
}

// MustValidate panics if validation fails
func (c *Catalog) MustValidate() {
	errors := c.Validate(DefaultValidationRules())
	if len(errors) > 0 {
		msgs := make([]string, len(errors))
		for i, err := range errors {
			msgs[i] = err.Error()
		}
		panic(fmt.Sprintf("catalog has %d validation errors: %s", len(errors), strings.Join(msgs, "; ")))
	}
}
