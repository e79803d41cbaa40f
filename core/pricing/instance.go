package pricing

import (
	"fmt"

	"cloudguide/core/types"
)

type shape struct {
	vcpu int
	ram  float64
}

// instanceLabels holds the nominal SKU for well-known shapes per provider
var instanceLabels = map[types.Provider]map[shape]string{
	types.ProviderAWS: {
		{2, 8}:  "t3.medium",
		{4, 16}: "t3.large",
		{8, 32}: "t3.xlarge",
	},
	types.ProviderAzure: {
		{2, 4}:  "Standard_B2s",
		{4, 8}:  "Standard_B2s",
		{4, 16}: "Standard_B4ms",
	},
	types.ProviderGCP: {
		{2, 8}:  "e2-standard-2",
		{4, 16}: "e2-standard-2",
		{8, 32}: "e2-standard-4",
	},
	types.ProviderHuawei: {
		{2, 8}:  "s6.large.2",
		{4, 16}: "s6.xlarge.2",
		{8, 32}: "s6.2xlarge.2",
	},
}

// CustomInstanceType labels providers without a naming convention
const CustomInstanceType = "custom"

// InstanceType derives a display label for the shape. It carries no pricing weight.
func InstanceType(p types.Provider, vcpu int, ram float64) string {
	if label, ok := instanceLabels[p][shape{vcpu, ram}]; ok {
		return label
	}

	switch p {
	case types.ProviderAWS:
		return "t3." + sizeTier(vcpu, "xlarge", "large", "medium")
	case types.ProviderAzure:
		return fmt.Sprintf("Standard_B%ds", vcpu)
	case types.ProviderGCP:
		return fmt.Sprintf("e2-standard-%d", vcpu)
	case types.ProviderHuawei:
		return "s6." + sizeTier(vcpu, "2xlarge", "xlarge", "large") + ".2"
	default:
		return CustomInstanceType
	}
}

func sizeTier(vcpu int, big, mid, small string) string {
	switch {
	case vcpu >= 8:
		return big
	case vcpu >= 4:
		return mid
	default:
		return small
	}
}
