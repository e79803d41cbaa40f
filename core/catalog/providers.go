package catalog

import (
	"github.com/shopspring/decimal"

	"cloudguide/core/pricing"
	"cloudguide/core/types"
)

// RegisterDefaults populates the catalog with the built-in providers.
// Rates are 2024 list-price estimates in USD.
func RegisterDefaults(c *Catalog) {
	RegisterAWS(c)
	RegisterAzure(c)
	RegisterGCP(c)
	RegisterHuawei(c)
}

// RegisterAWS adds Amazon Web Services
func RegisterAWS(c *Catalog) {
	c.Register(ProviderEntry{
		Provider:    types.ProviderAWS,
		DisplayName: "Amazon Web Services",
		ShortName:   "AWS",
		Description: "Market leader, competitive pay-as-you-go pricing",
		Color:       "orange",
		SLA:         "99.95%",
		IsActive:    true,
		RateTable: rateTable(
			"0.0415", "0.083",
			[4]string{"0.045", "0.08", "0.125", "0.16"},
			[6]string{"1.0", "1.05", "1.02", "0.95", "1.08", "1.1"},
		),
		Regions:  regions(false, "Turkey Local"),
		Features: fullSupport(nil),
	})
}

// RegisterAzure adds Microsoft Azure
func RegisterAzure(c *Catalog) {
	c.Register(ProviderEntry{
		Provider:    types.ProviderAzure,
		DisplayName: "Microsoft Azure",
		ShortName:   "Azure",
		Description: "Microsoft ecosystem, enterprise discounts available",
		Color:       "blue",
		SLA:         "99.95%",
		IsActive:    true,
		RateTable: rateTable(
			"0.0468", "0.0936",
			[4]string{"0.04", "0.10", "0.15", "0.18"},
			[6]string{"1.0", "1.05", "1.03", "0.97", "1.1", "1.1"},
		),
		Regions:  regions(false, "Turkey Local"),
		Features: fullSupport(nil),
	})
}

// RegisterGCP adds Google Cloud Platform
func RegisterGCP(c *Catalog) {
	c.Register(ProviderEntry{
		Provider:    types.ProviderGCP,
		DisplayName: "Google Cloud Platform",
		ShortName:   "GCP",
		Description: "AI/ML focus, sustained use discounts",
		Color:       "sky",
		SLA:         "99.95%",
		IsActive:    true,
		RateTable: rateTable(
			"0.0495", "0.099",
			[4]string{"0.04", "0.17", "0.24", "0.30"},
			[6]string{"1.0", "1.08", "0.98", "0.95", "1.05", "0.92"},
		),
		Regions:  regions(true, "Turkey Local"),
		Features: fullSupport(nil),
	})
}

// RegisterHuawei adds Huawei Cloud
func RegisterHuawei(c *Catalog) {
	c.Register(ProviderEntry{
		Provider:    types.ProviderHuawei,
		DisplayName: "Huawei Cloud",
		ShortName:   "Huawei",
		Description: "Cost-effective, especially in APAC, with a local Istanbul region",
		Color:       "red",
		SLA:         "99.9%",
		IsActive:    true,
		RateTable: rateTable(
			"0.042", "0.084",
			[4]string{"0.038", "0.075", "0.12", "0.15"},
			[6]string{"1.0", "0.95", "0.92", "1.1", "1.15", "0.88"},
		),
		Regions: regions(true, "Turkey Local (Istanbul)"),
		Features: fullSupport(map[string]Support{
			"Serverless Computing":       SupportPartial,
			"Spot/Preemptible Instances": SupportPartial,
			"Data Archiving":             SupportPartial,
			"Data Lake Solutions":        SupportPartial,
			"Compliance Certifications":  SupportPartial,
			"Web Application Firewall":   SupportPartial,
			"Content Delivery Network":   SupportPartial,
			"Enterprise Support":         SupportPartial,
			"Documentation":              SupportPartial,
			"Training & Certification":   SupportPartial,
		}),
	})
}

// rateTable builds a table from storage rates in types.AllDiskTypes order
// and region multipliers in types.AllRegions order
func rateTable(linux, windows string, storage [4]string, region [6]string) pricing.RateTable {
	t := pricing.RateTable{
		Compute: map[types.OSFamily]decimal.Decimal{
			types.OSFamilyLinux:   decimal.RequireFromString(linux),
			types.OSFamilyWindows: decimal.RequireFromString(windows),
		},
		Storage:          make(map[types.DiskType]decimal.Decimal, len(storage)),
		RegionMultiplier: make(map[types.Region]decimal.Decimal, len(region)),
	}
	for i, d := range types.AllDiskTypes {
		t.Storage[d] = decimal.RequireFromString(storage[i])
	}
	for i, r := range types.AllRegions {
		t.RegionMultiplier[r] = decimal.RequireFromString(region[i])
	}
	return t
}

var regionLabels = map[types.Region]string{
	types.RegionEurope:       "Europe",
	types.RegionMiddleEast:   "Middle East",
	types.RegionAsiaPacific:  "Asia Pacific",
	types.RegionNorthAmerica: "North America",
	types.RegionLatinAmerica: "Latin America",
	types.RegionTurkeyLocal:  "Turkey Local",
}

// RegionLabel returns the display label for a region
func RegionLabel(r types.Region) string {
	if label, ok := regionLabels[r]; ok {
		return label
	}
	return string(r)
}

// regions lists every region as available except turkey-local, which is set explicitly
func regions(turkeyLocal bool, turkeyLabel string) []RegionInfo {
	out := make([]RegionInfo, 0, len(types.AllRegions))
	for _, r := range types.AllRegions {
		info := RegionInfo{Region: r, Label: RegionLabel(r), Available: true}
		if r == types.RegionTurkeyLocal {
			info.Label = turkeyLabel
			info.Available = turkeyLocal
		}
		out = append(out, info)
	}
	return out
}
