package pricing

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cloudguide/core/types"
	"cloudguide/internal/errors"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func table(linux, windows string, storage, region map[string]string) RateTable {
	t := RateTable{
		Compute: map[types.OSFamily]decimal.Decimal{
			types.OSFamilyLinux:   d(linux),
			types.OSFamilyWindows: d(windows),
		},
		Storage:          map[types.DiskType]decimal.Decimal{},
		RegionMultiplier: map[types.Region]decimal.Decimal{},
	}
	for k, v := range storage {
		t.Storage[types.DiskType(k)] = d(v)
	}
	for k, v := range region {
		t.RegionMultiplier[types.Region(k)] = d(v)
	}
	return t
}

func testBook() RateBook {
	return RateBook{
		types.ProviderAWS: table("0.0415", "0.083",
			map[string]string{"standard-hdd": "0.045", "standard-ssd": "0.08", "premium-ssd": "0.125", "ultra-ssd": "0.16"},
			map[string]string{"europe": "1", "middle-east": "1.05", "asia-pacific": "1.02", "north-america": "0.95", "latin-america": "1.08", "turkey-local": "1.1"}),
		types.ProviderAzure: table("0.0468", "0.0936",
			map[string]string{"standard-hdd": "0.04", "standard-ssd": "0.10", "premium-ssd": "0.15", "ultra-ssd": "0.18"},
			map[string]string{"europe": "1", "middle-east": "1.05", "asia-pacific": "1.03", "north-america": "0.97", "latin-america": "1.1", "turkey-local": "1.1"}),
		types.ProviderGCP: table("0.0495", "0.099",
			map[string]string{"standard-hdd": "0.04", "standard-ssd": "0.17", "premium-ssd": "0.24", "ultra-ssd": "0.30"},
			map[string]string{"europe": "1", "middle-east": "1.08", "asia-pacific": "0.98", "north-america": "0.95", "latin-america": "1.05", "turkey-local": "0.92"}),
		types.ProviderHuawei: table("0.042", "0.084",
			map[string]string{"standard-hdd": "0.038", "standard-ssd": "0.075", "premium-ssd": "0.12", "ultra-ssd": "0.15"},
			map[string]string{"europe": "1", "middle-east": "0.95", "asia-pacific": "0.92", "north-america": "1.1", "latin-america": "1.15", "turkey-local": "0.88"}),
	}
}

func webAppSpec() types.InfrastructureSpec {
	return types.InfrastructureSpec{
		VCPU:     4,
		RAM:      16,
		Storage:  256,
		OS:       types.OSUbuntuLTS,
		DiskType: types.DiskStandardSSD,
		UseCase:  types.UseCaseWebApp,
		Region:   types.RegionEurope,
	}
}

func TestCalculateProviderCosts_WebAppOnAWS(t *testing.T) {
	book, err := testBook().Only(types.ProviderAWS)
	require.NoError(t, err)

	estimates, err := CalculateProviderCosts(webAppSpec(), book)
	require.NoError(t, err)
	require.Len(t, estimates, 1)

	aws := estimates[0]
	assert.Equal(t, types.ProviderAWS, aws.Provider)
	assert.Equal(t, "t3.large", aws.InstanceType)
	assert.True(t, aws.MonthlyCost.Equal(d("146.51")), "monthly %s", aws.MonthlyCost)
	assert.True(t, aws.YearlyCost.Equal(d("1670.21")), "yearly %s", aws.YearlyCost)
	assert.True(t, aws.IsMostEconomical)

	require.NotNil(t, aws.Breakdown)
	assert.True(t, aws.Breakdown.ComputeCost.Equal(d("121.18")))
	assert.True(t, aws.Breakdown.StorageCost.Equal(d("20.48")))
	assert.True(t, aws.Breakdown.NetworkCost.Equal(d("4.85")))
	assert.True(t, aws.Breakdown.RAMMultiplier.Equal(d("1")))
	assert.True(t, aws.Breakdown.UseCaseMultiplier.Equal(d("1")))
}

func TestCalculateProviderCosts_OrderAndUniqueness(t *testing.T) {
	for _, region := range types.AllRegions {
		for _, useCase := range types.AllUseCases {
			for _, os := range types.AllOS {
				spec := webAppSpec()
				spec.Region = region
				spec.UseCase = useCase
				spec.OS = os
				spec.DiskType = RecommendedDiskType(useCase)

				estimates, err := CalculateProviderCosts(spec, testBook())
				require.NoError(t, err)
				require.Len(t, estimates, len(types.AllProviders))

				flagged := 0
				var cheapest types.ProviderEstimate
				for i, e := range estimates {
					assert.Equal(t, types.AllProviders[i], e.Provider)
					assert.False(t, e.MonthlyCost.IsNegative())
					assert.False(t, e.YearlyCost.IsNegative())
					if e.IsMostEconomical {
						flagged++
						cheapest = e
					}
				}
				require.Equal(t, 1, flagged, "%s/%s/%s", region, useCase, os)
				for _, e := range estimates {
					assert.True(t, cheapest.MonthlyCost.LessThanOrEqual(e.MonthlyCost))
				}
			}
		}
	}
}

func TestCalculateProviderCosts_TieGoesToEarlierProvider(t *testing.T) {
	base := testBook()
	book := RateBook{
		types.ProviderGCP: base[types.ProviderAWS].Clone(),
		types.ProviderAWS: base[types.ProviderAWS].Clone(),
	}

	estimates, err := CalculateProviderCosts(webAppSpec(), book)
	require.NoError(t, err)
	require.Len(t, estimates, 2)

	assert.Equal(t, types.ProviderAWS, estimates[0].Provider)
	assert.True(t, estimates[0].MonthlyCost.Equal(estimates[1].MonthlyCost))
	assert.True(t, estimates[0].IsMostEconomical)
	assert.False(t, estimates[1].IsMostEconomical)
}

func TestCalculateProviderCosts_Idempotent(t *testing.T) {
	book := testBook()
	first, err := CalculateProviderCosts(webAppSpec(), book)
	require.NoError(t, err)
	second, err := CalculateProviderCosts(webAppSpec(), book)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCalculateProviderCosts_InvalidSpec(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*types.InfrastructureSpec)
		field  string
	}{
		{"zero vcpu", func(s *types.InfrastructureSpec) { s.VCPU = 0 }, "vcpu"},
		{"negative vcpu", func(s *types.InfrastructureSpec) { s.VCPU = -2 }, "vcpu"},
		{"zero ram", func(s *types.InfrastructureSpec) { s.RAM = 0 }, "ram"},
		{"negative storage", func(s *types.InfrastructureSpec) { s.Storage = -1 }, "storage"},
		{"nan ram", func(s *types.InfrastructureSpec) { s.RAM = math.NaN() }, "ram"},
		{"infinite ram", func(s *types.InfrastructureSpec) { s.RAM = math.Inf(1) }, "ram"},
		{"nan storage", func(s *types.InfrastructureSpec) { s.Storage = math.NaN() }, "storage"},
		{"infinite storage", func(s *types.InfrastructureSpec) { s.Storage = math.Inf(1) }, "storage"},
		{"negative infinite storage", func(s *types.InfrastructureSpec) { s.Storage = math.Inf(-1) }, "storage"},
		{"unknown os", func(s *types.InfrastructureSpec) { s.OS = "plan9" }, "os"},
		{"unknown disk", func(s *types.InfrastructureSpec) { s.DiskType = "tape" }, "diskType"},
		{"unknown use case", func(s *types.InfrastructureSpec) { s.UseCase = "gaming" }, "useCase"},
		{"unknown region", func(s *types.InfrastructureSpec) { s.Region = "antarctica" }, "region"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := webAppSpec()
			tt.mutate(&spec)

			estimates, err := CalculateProviderCosts(spec, testBook())
			require.Error(t, err)
			assert.Nil(t, estimates)
			assert.True(t, errors.IsType(err, errors.TypeInput))

			var typed *errors.Error
			require.ErrorAs(t, err, &typed)
			assert.Equal(t, tt.field, typed.Context["field"])
		})
	}
}

func TestCalculateProviderCosts_MissingRate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(RateTable)
		table  string
		key    string
	}{
		{"compute family", func(r RateTable) { delete(r.Compute, types.OSFamilyLinux) }, TableCompute, "linux"},
		{"disk type", func(r RateTable) { delete(r.Storage, types.DiskStandardSSD) }, TableStorage, "standard-ssd"},
		{"region", func(r RateTable) { delete(r.RegionMultiplier, types.RegionEurope) }, TableRegion, "europe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			book := testBook()
			azure := book[types.ProviderAzure].Clone()
			tt.mutate(azure)
			book[types.ProviderAzure] = azure

			estimates, err := CalculateProviderCosts(webAppSpec(), book)
			require.Error(t, err)
			assert.Nil(t, estimates)
			assert.True(t, errors.IsType(err, errors.TypeConfig))

			var typed *errors.Error
			require.ErrorAs(t, err, &typed)
			assert.Equal(t, "azure", typed.Context["provider"])
			assert.Equal(t, tt.table, typed.Context["table"])
			assert.Equal(t, tt.key, typed.Context["key"])
		})
	}
}

func TestCalculateProviderCosts_OutOfRangeRate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(RateTable)
		table  string
		key    string
	}{
		{"negative compute", func(r RateTable) { r.Compute[types.OSFamilyLinux] = d("-0.5") }, TableCompute, "linux"},
		{"negative storage", func(r RateTable) { r.Storage[types.DiskStandardSSD] = d("-0.01") }, TableStorage, "standard-ssd"},
		{"zero region multiplier", func(r RateTable) { r.RegionMultiplier[types.RegionEurope] = decimal.Zero }, TableRegion, "europe"},
		{"negative region multiplier", func(r RateTable) { r.RegionMultiplier[types.RegionEurope] = d("-1.1") }, TableRegion, "europe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			book := testBook()
			aws := book[types.ProviderAWS].Clone()
			tt.mutate(aws)
			book[types.ProviderAWS] = aws

			estimates, err := CalculateProviderCosts(webAppSpec(), book)
			require.Error(t, err)
			assert.Nil(t, estimates)
			assert.True(t, errors.IsType(err, errors.TypeConfig))

			var typed *errors.Error
			require.ErrorAs(t, err, &typed)
			assert.Equal(t, "aws", typed.Context["provider"])
			assert.Equal(t, tt.table, typed.Context["table"])
			assert.Equal(t, tt.key, typed.Context["key"])
		})
	}
}

func TestCalculateProviderCosts_ZeroRatesPriceAtZero(t *testing.T) {
	book, err := testBook().Only(types.ProviderAWS)
	require.NoError(t, err)
	aws := book[types.ProviderAWS].Clone()
	aws.Compute[types.OSFamilyLinux] = decimal.Zero
	aws.Storage[types.DiskStandardSSD] = decimal.Zero
	book[types.ProviderAWS] = aws

	estimates, err := CalculateProviderCosts(webAppSpec(), book)
	require.NoError(t, err)
	require.Len(t, estimates, 1)
	assert.False(t, estimates[0].MonthlyCost.IsNegative())
}

func TestCalculateProviderCosts_UnusedGapsAreTolerated(t *testing.T) {
	book := testBook()
	aws := book[types.ProviderAWS].Clone()
	delete(aws.Storage, types.DiskUltraSSD)
	delete(aws.RegionMultiplier, types.RegionTurkeyLocal)
	book[types.ProviderAWS] = aws

	_, err := CalculateProviderCosts(webAppSpec(), book)
	assert.NoError(t, err)
}

func TestCalculateProviderCosts_BookErrors(t *testing.T) {
	_, err := CalculateProviderCosts(webAppSpec(), RateBook{})
	assert.True(t, errors.IsType(err, errors.TypeConfig))

	book := testBook()
	book["oracle"] = book[types.ProviderAWS]
	_, err = CalculateProviderCosts(webAppSpec(), book)
	assert.True(t, errors.IsType(err, errors.TypeConfig))
}

func TestCalculateProviderCosts_HuaweiLocalNetwork(t *testing.T) {
	spec := webAppSpec()
	spec.Region = types.RegionTurkeyLocal

	book, err := testBook().Only(types.ProviderHuawei, types.ProviderGCP)
	require.NoError(t, err)
	estimates, err := CalculateProviderCosts(spec, book)
	require.NoError(t, err)

	var huawei types.ProviderEstimate
	for _, e := range estimates {
		if e.Provider == types.ProviderHuawei {
			huawei = e
		}
	}
	// compute 4 * 0.042 * 730 * 0.88 = 107.9232; network 107.9232 * 0.04 * 0.7
	assert.True(t, huawei.Breakdown.ComputeCost.Equal(d("107.92")))
	assert.True(t, huawei.Breakdown.NetworkCost.Equal(d("3.02")))
}

func TestRAMMultiplier(t *testing.T) {
	tests := []struct {
		vcpu int
		ram  float64
		want string
	}{
		{4, 16, "1"},
		{2, 16, "1.25"},
		{1, 1, "0.85"},
		{2, 2, "0.85"},
		{1, 64, "1.4"},
		{4, 8, "0.875"},
	}

	for _, tt := range tests {
		got := RAMMultiplier(tt.vcpu, tt.ram)
		assert.True(t, got.Equal(d(tt.want)), "vcpu=%d ram=%v got %s", tt.vcpu, tt.ram, got)
	}
}

func TestRateBookOnly(t *testing.T) {
	book, err := testBook().Only(types.ProviderHuawei, types.ProviderAWS)
	require.NoError(t, err)
	assert.Equal(t, []types.Provider{types.ProviderAWS, types.ProviderHuawei}, book.Providers())

	_, err = RateBook{types.ProviderAWS: testBook()[types.ProviderAWS]}.Only(types.ProviderGCP)
	assert.True(t, errors.IsType(err, errors.TypeNotFound))
}
