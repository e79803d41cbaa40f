package rates

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cloudguide/core/catalog"
	"cloudguide/core/pricing"
	"cloudguide/core/types"
	"cloudguide/internal/errors"
	"cloudguide/internal/metrics"
)

const awsHCL = `
provider "aws" {
  sla                = "99.99%"
  compute_rates      = { linux = 0.05, windows = 0.1 }
  storage_rates      = { "standard-hdd" = 0.045, "standard-ssd" = 0.08, "premium-ssd" = 0.125, "ultra-ssd" = 0.16 }
  region_multipliers = { europe = 1.0, "middle-east" = 1.05, "asia-pacific" = 1.02, "north-america" = 0.95, "latin-america" = 1.08, "turkey-local" = 1.1 }

  region "europe" {
    available = true
  }

  region "turkey-local" {
    label     = "Istanbul"
    available = true
  }
}
`

const gcpJSON = `{
  "provider": {
    "gcp": {
      "active": true,
      "compute_rates": {"linux": 0.0495, "windows": 0.099},
      "storage_rates": {"standard-hdd": 0.04, "standard-ssd": 0.17, "premium-ssd": 0.24, "ultra-ssd": 0.30},
      "region_multipliers": {"europe": 1.0, "middle-east": 1.08, "asia-pacific": 0.98, "north-america": 0.95, "latin-america": 1.05, "turkey-local": 0.92},
      "features": {"Auto Scaling": "partial"}
    }
  }
}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestFileSourceHCL(t *testing.T) {
	c, err := NewFileSource(writeFile(t, "rates.hcl", awsHCL)).Load(context.Background())
	require.NoError(t, err)

	require.Len(t, c.List(), 1)
	aws, ok := c.Get(types.ProviderAWS)
	require.True(t, ok)

	assert.True(t, decimal.RequireFromString("0.05").Equal(aws.Compute[types.OSFamilyLinux]))
	assert.True(t, decimal.RequireFromString("0.16").Equal(aws.Storage[types.DiskUltraSSD]))
	assert.Equal(t, "99.99%", aws.SLA)
	assert.Equal(t, "Amazon Web Services", aws.DisplayName, "metadata falls back to the builtin entry")
	assert.True(t, aws.IsActive)

	assert.Len(t, aws.Regions, 2)
	assert.True(t, aws.IsRegionAvailable(types.RegionTurkeyLocal))
	assert.Equal(t, "Istanbul", aws.Regions[1].Label)
	assert.Equal(t, "Europe", aws.Regions[0].Label)
	assert.False(t, aws.IsRegionAvailable(types.RegionAsiaPacific))
}

func TestFileSourceJSON(t *testing.T) {
	c, err := NewFileSource(writeFile(t, "rates.json", gcpJSON)).Load(context.Background())
	require.NoError(t, err)

	gcp, ok := c.Get(types.ProviderGCP)
	require.True(t, ok)
	assert.Equal(t, catalog.SupportPartial, gcp.Features["Auto Scaling"])
	assert.Equal(t, catalog.SupportYes, gcp.Features["Load Balancing"])
	assert.True(t, decimal.RequireFromString("0.92").Equal(gcp.RegionMultiplier[types.RegionTurkeyLocal]))

	book := c.RateBook()
	assert.Equal(t, []types.Provider{types.ProviderGCP}, book.Providers())
}

func TestLoadedCatalogPrices(t *testing.T) {
	c, err := Parse([]byte(awsHCL), "rates.hcl")
	require.NoError(t, err)

	estimates, err := pricing.CalculateProviderCosts(types.InfrastructureSpec{
		VCPU:     2,
		RAM:      8,
		Storage:  100,
		OS:       types.OSUbuntuLTS,
		DiskType: types.DiskStandardSSD,
		UseCase:  types.UseCaseWebApp,
		Region:   types.RegionEurope,
	}, c.RateBook())
	require.NoError(t, err)
	require.Len(t, estimates, 1)
	assert.True(t, estimates[0].IsMostEconomical)
	// compute 2 * 0.05 * 730 = 73.00, storage 8.00, network 4% of compute
	assert.Equal(t, "83.92", estimates[0].MonthlyCost.StringFixed(2))
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		src      string
		want     errors.Type
	}{
		{"syntax", "bad.hcl", `provider "aws" {`, errors.TypeParsing},
		{"bad json", "bad.json", `{"provider": `, errors.TypeParsing},
		{"missing attribute", "bad.hcl", `provider "aws" { compute_rates = { linux = 1, windows = 2 } }`, errors.TypeParsing},
		{"unexpected attribute", "bad.hcl", `colour = "red"`, errors.TypeParsing},
		{"no providers", "empty.hcl", ``, errors.TypeConfig},
		{
			"unknown storage key",
			"bad.hcl",
			`provider "aws" {
  compute_rates      = { linux = 1, windows = 2 }
  storage_rates      = { floppy = 1 }
  region_multipliers = { europe = 1 }
}`,
			errors.TypeConfig,
		},
		{
			"incomplete table",
			"bad.hcl",
			`provider "aws" {
  compute_rates      = { linux = 1, windows = 2 }
  storage_rates      = { "standard-ssd" = 1 }
  region_multipliers = { europe = 1 }
}`,
			errors.TypeConfig,
		},
		{
			"unknown provider",
			"bad.hcl",
			`provider "oracle" {
  compute_rates      = { linux = 1, windows = 2 }
  storage_rates      = { "standard-hdd" = 1, "standard-ssd" = 1, "premium-ssd" = 1, "ultra-ssd" = 1 }
  region_multipliers = { europe = 1, "middle-east" = 1, "asia-pacific" = 1, "north-america" = 1, "latin-america" = 1, "turkey-local" = 1 }
}`,
			errors.TypeConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src), tt.filename)
			require.Error(t, err)
			assert.Equal(t, tt.want, errors.TypeOf(err))
		})
	}
}

func TestUnknownKeyContext(t *testing.T) {
	_, err := Parse([]byte(`provider "azure" {
  compute_rates      = { linux = 1, solaris = 2 }
  storage_rates      = {}
  region_multipliers = {}
}`), "rates.hcl")
	require.Error(t, err)

	var e *errors.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "azure", e.Context["provider"])
	assert.Equal(t, "compute_rates", e.Context["table"])
	assert.Equal(t, "solaris", e.Context["key"])
	assert.Equal(t, "rates.hcl", e.Context["path"])
}

func TestDuplicateProvider(t *testing.T) {
	src := awsHCL + awsHCL
	_, err := Parse([]byte(src), "rates.hcl")
	assert.True(t, errors.IsType(err, errors.TypeConfig))
}

func TestMissingFile(t *testing.T) {
	_, err := NewFileSource(filepath.Join(t.TempDir(), "nope.hcl")).Load(context.Background())
	assert.True(t, errors.IsType(err, errors.TypeNotFound))
}

func TestNewPicksSource(t *testing.T) {
	assert.Equal(t, "builtin", New("").Name())
	assert.Equal(t, "file", New("rates.hcl").Name())

	c, err := New("").Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, c.List(), len(types.AllProviders))
}

func TestBuiltinSourceHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewBuiltinSource().Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

type countingSource struct {
	loads int
	err   error
}

func (s *countingSource) Name() string { return "counting" }

func (s *countingSource) Load(ctx context.Context) (*catalog.Catalog, error) {
	s.loads++
	if s.err != nil {
		return nil, s.err
	}
	return catalog.Default(), nil
}

func TestCachingSource(t *testing.T) {
	inner := &countingSource{}
	cs := NewCachingSource(inner, time.Minute)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cs.now = func() time.Time { return now }

	first, err := cs.Load(context.Background())
	require.NoError(t, err)
	second, err := cs.Load(context.Background())
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 1, inner.loads)

	now = now.Add(2 * time.Minute)
	_, err = cs.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, inner.loads)

	cs.Invalidate()
	_, err = cs.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, inner.loads)
	assert.Equal(t, "counting", cs.Name())
}

func TestCachingSourceDoesNotCacheErrors(t *testing.T) {
	inner := &countingSource{err: errors.New(errors.TypeConfig, "broken")}
	cs := NewCachingSource(inner, 0)

	_, err := cs.Load(context.Background())
	require.Error(t, err)
	_, err = cs.Load(context.Background())
	require.Error(t, err)
	assert.Equal(t, 2, inner.loads)
}

func TestMetricsSource(t *testing.T) {
	m := metrics.New()

	ok := NewMetricsSource(NewBuiltinSource(), m)
	_, err := ok.Load(context.Background())
	require.NoError(t, err)

	bad := NewMetricsSource(NewFileSource(filepath.Join(t.TempDir(), "missing.hcl")), m)
	_, err = bad.Load(context.Background())
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RateLoads.WithLabelValues("builtin", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RateLoads.WithLabelValues("file", "error")))
}
