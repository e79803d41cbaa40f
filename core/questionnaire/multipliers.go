package questionnaire

import (
	"github.com/shopspring/decimal"

	"cloudguide/internal/errors"
)

func m(values map[string]string) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(values))
	for k, v := range values {
		out[k] = decimal.RequireFromString(v)
	}
	return out
}

// BaseCosts is the project starting point by company size, in USD
var BaseCosts = map[string]decimal.Decimal{
	"startup":    decimal.NewFromInt(10000),
	"small":      decimal.NewFromInt(50000),
	"medium":     decimal.NewFromInt(200000),
	"enterprise": decimal.NewFromInt(500000),
}

// Cost range deviations from the final estimate
var (
	MinCostFactor = decimal.RequireFromString("0.8")
	MaxCostFactor = decimal.RequireFromString("1.3")
)

// Multipliers scale the base cost per answer. Values above one increase cost.
var Multipliers = map[string]map[string]decimal.Decimal{
	"INFRASTRUCTURE_TYPE_MULTIPLIER": m(map[string]string{
		"on_premise": "1.2", "hybrid": "1.1", "cloud_partial": "0.95", "virtualized": "1.0",
	}),
	"DATA_SIZE_MULTIPLIER": m(map[string]string{
		"under_100gb": "0.9", "100gb_1tb": "1.0", "1tb_10tb": "1.15", "10tb_100tb": "1.3", "over_100tb": "1.5",
	}),
	"DATABASE_COMPLEXITY_MULTIPLIER": m(map[string]string{
		"simple": "0.95", "moderate": "1.0", "complex": "1.2", "enterprise": "1.4",
	}),
	"TRAFFIC_VOLUME_MULTIPLIER": m(map[string]string{
		"low": "0.9", "medium": "1.0", "high": "1.2", "very_high": "1.4",
	}),
	"ARCHITECTURE_TYPE_MULTIPLIER": m(map[string]string{
		"monolithic": "1.0", "microservices": "1.15", "serverless": "1.1", "mixed": "1.2",
	}),
	"APPLICATION_COUNT_MULTIPLIER": m(map[string]string{
		"1_5": "0.95", "6_20": "1.0", "21_50": "1.15", "51_100": "1.3", "over_100": "1.5",
	}),
	"OS_DIVERSITY_MULTIPLIER": m(map[string]string{
		"single": "0.95", "few": "1.0", "many": "1.15", "highly_diverse": "1.3",
	}),
	"SECURITY_REQUIREMENTS_MULTIPLIER": m(map[string]string{
		"encryption": "1.05", "vpn": "1.03", "mfa": "1.02", "audit_logging": "1.04",
		"compliance_certifications": "1.1", "none": "1.0",
	}),
	"COMPLIANCE_REQUIREMENTS_MULTIPLIER": m(map[string]string{
		"hipaa": "1.15", "gdpr": "1.12", "pci_dss": "1.18", "sox": "1.1", "iso27001": "1.08", "none": "1.0",
	}),
	"BACKUP_DR_MULTIPLIER": m(map[string]string{
		"basic": "0.95", "standard": "1.0", "advanced": "1.15", "enterprise": "1.3",
	}),
	"AVAILABILITY_MULTIPLIER": m(map[string]string{
		"99_0": "1.0", "99_5": "1.05", "99_9": "1.15", "99_99": "1.3", "99_999": "1.5",
	}),
	"PEAK_LOAD_MULTIPLIER": m(map[string]string{
		"stable": "0.95", "moderate": "1.0", "high": "1.15", "extreme": "1.3",
	}),
	"CICD_AUTOMATION_MULTIPLIER": m(map[string]string{
		"none": "1.1", "basic": "1.05", "moderate": "1.0", "advanced": "0.95",
	}),
	"MONITORING_LOGGING_MULTIPLIER": m(map[string]string{
		"basic": "0.98", "standard": "1.0", "advanced": "1.1", "enterprise": "1.25",
	}),
	"TEAM_EXPERIENCE_MULTIPLIER": m(map[string]string{
		"none": "1.2", "some": "1.1", "experienced": "1.0", "expert": "0.95",
	}),
	"TIMELINE_MULTIPLIER": m(map[string]string{
		"1_3_months": "1.3", "3_6_months": "1.15", "6_12_months": "1.0", "over_12_months": "0.95", "flexible": "0.9",
	}),
	"MIGRATION_STRATEGY_MULTIPLIER": m(map[string]string{
		"lift_shift": "1.0", "replatform": "1.15", "refactor": "1.4", "retire": "0.5", "hybrid": "1.2",
	}),
}

// BaseCost returns the starting cost for a company size
func BaseCost(companySize string) (decimal.Decimal, error) {
	cost, ok := BaseCosts[companySize]
	if !ok {
		return decimal.Zero, errors.Inputf("invalid company size: %s", companySize).
			WithContext("question", QCompanySize)
	}
	return cost, nil
}

// Multiplier returns the factor for an answer. Checkbox answers compound
// multiplicatively; values without a configured factor count as one.
func Multiplier(key string, answer Answer) decimal.Decimal {
	table, ok := Multipliers[key]
	one := decimal.NewFromInt(1)
	if !ok {
		return one
	}

	total := one
	for _, v := range answer.Values {
		if f, ok := table[v]; ok {
			total = total.Mul(f)
		}
	}
	return total
}
