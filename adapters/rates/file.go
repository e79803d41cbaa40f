package rates

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"cloudguide/core/catalog"
	"cloudguide/core/types"
	"cloudguide/internal/errors"
	"cloudguide/internal/logging"
)

// rateFile is the decoded shape of a rate file:
//
//	provider "aws" {
//	  display_name       = "Amazon Web Services"
//	  compute_rates      = { linux = 0.0415, windows = 0.083 }
//	  storage_rates      = { "standard-ssd" = 0.08, ... }
//	  region_multipliers = { europe = 1.0, ... }
//
//	  region "turkey-local" {
//	    available = false
//	  }
//	}
type rateFile struct {
	Providers []providerBlock `hcl:"provider,block"`
}

type providerBlock struct {
	Name        string             `hcl:"name,label"`
	DisplayName string             `hcl:"display_name,optional"`
	ShortName   string             `hcl:"short_name,optional"`
	Description string             `hcl:"description,optional"`
	Color       string             `hcl:"color,optional"`
	SLA         string             `hcl:"sla,optional"`
	Active      *bool              `hcl:"active,optional"`
	Compute     map[string]float64 `hcl:"compute_rates"`
	Storage     map[string]float64 `hcl:"storage_rates"`
	Multipliers map[string]float64 `hcl:"region_multipliers"`
	Features    map[string]string  `hcl:"features,optional"`
	Regions     []regionBlock      `hcl:"region,block"`
}

type regionBlock struct {
	Region    string `hcl:"name,label"`
	Label     string `hcl:"label,optional"`
	Available bool   `hcl:"available"`
}

// FileSource loads provider rate tables from an HCL or JSON file
type FileSource struct {
	path string
}

// NewFileSource creates a file source
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Name returns the source name
func (s *FileSource) Name() string {
	return "file"
}

// Path returns the configured file path
func (s *FileSource) Path() string {
	return s.path
}

// Load reads, decodes and validates the rate file
func (s *FileSource) Load(ctx context.Context) (*catalog.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	src, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFound("rate file", s.path)
		}
		return nil, errors.Wrap(errors.TypeConfig, "failed to read rate file", err)
	}

	c, err := Parse(src, s.path)
	if err != nil {
		return nil, err
	}

	logging.Info("loaded rate file",
		zap.String("path", s.path),
		zap.Int("providers", len(c.List())),
	)
	return c, nil
}

// Parse decodes rate file contents. The filename selects the syntax:
// a .json suffix is read as HCL's JSON form, anything else as native HCL.
func Parse(src []byte, filename string) (*catalog.Catalog, error) {
	parser := hclparse.NewParser()

	var (
		file  *hcl.File
		diags hcl.Diagnostics
	)
	if strings.EqualFold(filepath.Ext(filename), ".json") {
		file, diags = parser.ParseJSON(src, filename)
	} else {
		file, diags = parser.ParseHCL(src, filename)
	}
	if diags.HasErrors() {
		return nil, errors.Parsing("failed to parse rate file", diags).WithContext("path", filename)
	}

	var doc rateFile
	if diags := gohcl.DecodeBody(file.Body, nil, &doc); diags.HasErrors() {
		return nil, errors.Parsing("failed to decode rate file", diags).WithContext("path", filename)
	}

	return build(doc, filename)
}

// build merges decoded blocks over the builtin entries and validates the result
func build(doc rateFile, filename string) (*catalog.Catalog, error) {
	if len(doc.Providers) == 0 {
		return nil, errors.New(errors.TypeConfig, "rate file defines no providers").WithContext("path", filename)
	}

	builtin := catalog.Default()
	c := catalog.NewCatalog()
	seen := make(map[types.Provider]bool, len(doc.Providers))

	for _, block := range doc.Providers {
		p := types.Provider(strings.ToLower(strings.TrimSpace(block.Name)))
		if seen[p] {
			return nil, errors.Newf(errors.TypeConfig, "provider %q defined twice", p).WithContext("path", filename)
		}
		seen[p] = true

		entry, err := toEntry(block, p, builtin)
		if err != nil {
			return nil, err.WithContext("path", filename)
		}
		c.Register(entry)
	}

	if errs := c.Validate(catalog.DefaultValidationRules()); len(errs) > 0 {
		msgs := make([]string, len(errs))
		for i, e := range errs {
			msgs[i] = e.Error()
		}
		return nil, errors.Newf(errors.TypeConfig, "invalid rate file: %s", strings.Join(msgs, "; ")).
			WithContext("path", filename)
	}
	return c, nil
}

func toEntry(block providerBlock, p types.Provider, builtin *catalog.Catalog) (catalog.ProviderEntry, *errors.Error) {
	entry := catalog.ProviderEntry{Provider: p, IsActive: true}
	if base, ok := builtin.Get(p); ok {
		entry = *base
		entry.Regions = append([]catalog.RegionInfo(nil), base.Regions...)
		entry.Features = make(map[string]catalog.Support, len(base.Features))
		for k, v := range base.Features {
			entry.Features[k] = v
		}
	}

	setIfPresent(&entry.DisplayName, block.DisplayName)
	setIfPresent(&entry.ShortName, block.ShortName)
	setIfPresent(&entry.Description, block.Description)
	setIfPresent(&entry.Color, block.Color)
	setIfPresent(&entry.SLA, block.SLA)
	if block.Active != nil {
		entry.IsActive = *block.Active
	}

	compute, err := convert(block.Compute, p, "compute_rates", func(k string) (types.OSFamily, bool) {
		f := types.OSFamily(k)
		return f, f.IsValid()
	})
	if err != nil {
		return entry, err
	}
	storage, err := convert(block.Storage, p, "storage_rates", func(k string) (types.DiskType, bool) {
		d := types.DiskType(k)
		return d, d.IsValid()
	})
	if err != nil {
		return entry, err
	}
	multipliers, err := convert(block.Multipliers, p, "region_multipliers", func(k string) (types.Region, bool) {
		r := types.Region(k)
		return r, r.IsValid()
	})
	if err != nil {
		return entry, err
	}
	entry.Compute = compute
	entry.Storage = storage
	entry.RegionMultiplier = multipliers

	if len(block.Regions) > 0 {
		entry.Regions = make([]catalog.RegionInfo, 0, len(block.Regions))
		for _, r := range block.Regions {
			region := types.Region(r.Region)
			label := r.Label
			if label == "" {
				label = catalog.RegionLabel(region)
			}
			entry.Regions = append(entry.Regions, catalog.RegionInfo{
				Region:    region,
				Label:     label,
				Available: r.Available,
			})
		}
	}

	if entry.Features == nil {
		entry.Features = make(map[string]catalog.Support, len(block.Features))
	}
	for name, s := range block.Features {
		entry.Features[name] = catalog.Support(strings.ToLower(s))
	}

	return entry, nil
}

// convert turns a decoded float map into a typed decimal map, rejecting unknown keys
func convert[K ~string](in map[string]float64, p types.Provider, table string, parse func(string) (K, bool)) (map[K]decimal.Decimal, *errors.Error) {
	out := make(map[K]decimal.Decimal, len(in))
	for k, v := range in {
		key, ok := parse(strings.ToLower(k))
		if !ok {
			return nil, errors.Newf(errors.TypeConfig, "%s has unknown %s key %q", p, table, k).
				WithContext("provider", string(p)).
				WithContext("table", table).
				WithContext("key", k)
		}
		out[key] = decimal.NewFromFloat(v)
	}
	return out, nil
}

func setIfPresent(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
