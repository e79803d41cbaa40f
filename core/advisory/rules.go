// Package advisory - Ordered rule tables
// Precedence is expressed by position: first-match tables pick exactly one
// outcome, additive tables contribute every matching outcome in order.
package advisory

import "cloudguide/core/types"

// Predicate tests a migration profile
type Predicate func(p types.MigrationProfile) bool

// Rule binds a named predicate to an outcome
type Rule[T any] struct {
	Name    string
	When    Predicate
	Outcome T
}

// firstMatch returns the outcome of the first rule whose predicate holds
func firstMatch[T any](rules []Rule[T], p types.MigrationProfile) (T, string, bool) {
	for _, r := range rules {
		if r.When(p) {
			return r.Outcome, r.Name, true
		}
	}
	var zero T
	return zero, "", false
}

// allMatches returns the outcomes of every rule whose predicate holds, in table order
func allMatches[T any](rules []Rule[T], p types.MigrationProfile) ([]T, []string) {
	outcomes := make([]T, 0, len(rules))
	var names []string
	for _, r := range rules {
		if r.When(p) {
			outcomes = append(outcomes, r.Outcome)
			names = append(names, r.Name)
		}
	}
	return outcomes, names
}

// Strategy is a recommended migration approach
type Strategy struct {
	Name        string
	Description string
}

var (
	StrategyLiftAndShift = Strategy{
		Name:        "Lift and Shift",
		Description: "Move your existing applications to the cloud with minimal changes. This approach is fastest but may not fully leverage cloud-native benefits.",
	}
	StrategyReplatform = Strategy{
		Name:        "Replatform",
		Description: "Move to the cloud while making targeted optimizations to leverage cloud services without a full redesign.",
	}
	StrategyPhased = Strategy{
		Name:        "Phased Migration",
		Description: "A gradual approach that migrates systems in stages, allowing for modernization and risk mitigation throughout the process.",
	}
)

// DefaultStrategy applies when no strategy rule matches
var DefaultStrategy = StrategyLiftAndShift

var strategyRules = []Rule[Strategy]{
	{
		Name: "complex-or-legacy-heavy",
		When: func(p types.MigrationProfile) bool {
			return p.ApplicationComplexity == types.ComplexityComplex ||
				p.LegacyDependencies == types.LegacySignificant
		},
		Outcome: StrategyPhased,
	},
	{
		Name: "simple-and-experienced",
		When: func(p types.MigrationProfile) bool {
			return p.ApplicationComplexity == types.ComplexitySimple &&
				p.CloudExperience == types.ExperienceExperienced
		},
		Outcome: StrategyReplatform,
	},
}

// CostLevel is a coarse migration cost band
type CostLevel string

const (
	CostLow    CostLevel = "low"
	CostMedium CostLevel = "medium"
	CostHigh   CostLevel = "high"
)

// costRanges maps every level to its display range
var costRanges = map[CostLevel]string{
	CostLow:    "$10,000 - $50,000",
	CostMedium: "$50,000 - $200,000",
	CostHigh:   "$200,000 - $500,000+",
}

// DefaultCostLevel applies when no level rule matches
const DefaultCostLevel = CostMedium

type costBand struct {
	Level  CostLevel
	Factor string
}

var costLevelRules = []Rule[costBand]{
	{
		Name: "large-estate",
		When: func(p types.MigrationProfile) bool {
			return p.InfrastructureSize == types.SizeLarge || p.DataVolume == types.DataOver100TB
		},
		Outcome: costBand{CostHigh, "Large infrastructure scale increases migration complexity and costs"},
	},
	{
		Name: "small-estate",
		When: func(p types.MigrationProfile) bool {
			return p.InfrastructureSize == types.SizeSmall && p.DataVolume == types.DataUnder100GB
		},
		Outcome: costBand{CostLow, "Small infrastructure allows for streamlined migration"},
	},
}

var costFactorRules = []Rule[string]{
	{
		Name:    "legacy-modernization-cost",
		When:    legacySignificant,
		Outcome: "Legacy system modernization requires additional investment",
	},
	{
		Name: "zero-downtime-cost",
		When: func(p types.MigrationProfile) bool {
			return p.DownTimeTolerance == types.DowntimeZero
		},
		Outcome: "Zero-downtime requirement increases infrastructure costs",
	},
	{
		Name:    "training-cost",
		When:    noCloudExperience,
		Outcome: "Training and potential consulting needs add to costs",
	},
}

// DefaultTimelineRange applies when no timeline rule matches
const DefaultTimelineRange = "3-6 months"

type timelineBand struct {
	Range  string
	Factor string
}

var timelineRules = []Rule[timelineBand]{
	{
		Name: "large-estate-timeline",
		When: func(p types.MigrationProfile) bool {
			return p.InfrastructureSize == types.SizeLarge
		},
		Outcome: timelineBand{"9-18 months", "Large infrastructure requires extended migration phases"},
	},
	{
		Name: "complex-apps-timeline",
		When: func(p types.MigrationProfile) bool {
			return p.ApplicationComplexity == types.ComplexityComplex
		},
		Outcome: timelineBand{"6-12 months", "Complex applications need thorough testing and validation"},
	},
	{
		Name: "small-simple-timeline",
		When: func(p types.MigrationProfile) bool {
			return p.InfrastructureSize == types.SizeSmall && p.ApplicationComplexity == types.ComplexitySimple
		},
		Outcome: timelineBand{"1-3 months", "Simple infrastructure enables faster migration"},
	},
}

var timelineFactorRules = []Rule[string]{
	{
		Name: "no-dedicated-team",
		When: func(p types.MigrationProfile) bool {
			return p.DedicatedTeam == types.TeamNo
		},
		Outcome: "Without dedicated resources, timeline may extend",
	},
}

var riskRules = []Rule[Risk]{
	{
		Name: "zero-downtime-challenge",
		When: func(p types.MigrationProfile) bool {
			return p.DownTimeTolerance == types.DowntimeZero && p.ApplicationComplexity != types.ComplexitySimple
		},
		Outcome: Risk{
			Title:       "Zero-Downtime Challenge",
			Description: "Achieving zero downtime with complex applications requires advanced strategies like blue-green deployments and extensive testing.",
			Severity:    types.SeverityHigh,
		},
	},
	{
		Name: "legacy-compatibility",
		When: legacySignificant,
		Outcome: Risk{
			Title:       "Legacy System Compatibility",
			Description: "Significant legacy dependencies may create unexpected compatibility issues during migration.",
			Severity:    types.SeverityHigh,
		},
	},
	{
		Name: "skills-gap",
		When: noCloudExperience,
		Outcome: Risk{
			Title:       "Skills Gap",
			Description: "Limited cloud experience may lead to misconfigurations and longer troubleshooting periods.",
			Severity:    types.SeverityMedium,
		},
	},
	{
		Name: "compliance",
		When: func(p types.MigrationProfile) bool {
			return p.HasCompliance()
		},
		Outcome: Risk{
			Title:       "Compliance Requirements",
			Description: "Regulatory compliance adds complexity to cloud architecture and may limit available services or regions.",
			Severity:    types.SeverityMedium,
		},
	},
	{
		Name: "data-transfer",
		When: func(p types.MigrationProfile) bool {
			return p.DataVolume == types.Data10TBTo100TB || p.DataVolume == types.DataOver100TB
		},
		Outcome: Risk{
			Title:       "Data Transfer Challenges",
			Description: "Large data volumes require careful planning for transfer methods, bandwidth, and potential offline migration tools.",
			Severity:    types.SeverityMedium,
		},
	},
}

// baselineRecommendations are returned for every profile
var baselineRecommendations = []string{
	"Conduct a detailed application dependency mapping before starting migration",
	"Establish clear success metrics and monitoring from day one",
	"Plan for a parallel running period to validate the migration",
}

var recommendationRules = []Rule[string]{
	{
		Name: "cloud-training",
		When: func(p types.MigrationProfile) bool {
			return p.CloudExperience == types.ExperienceNone || p.CloudExperience == types.ExperienceSome
		},
		Outcome: "Invest in cloud training for your team or consider engaging cloud consultants",
	},
	{
		Name: "dedicated-resources",
		When: func(p types.MigrationProfile) bool {
			return p.DedicatedTeam != types.TeamYes
		},
		Outcome: "Consider allocating dedicated resources for the migration project",
	},
	{
		Name:    "legacy-evaluation",
		When:    legacySignificant,
		Outcome: "Evaluate which legacy systems can be modernized versus those requiring lift-and-shift",
	},
}

// considerations are identical for every profile
var considerations = []string{
	"This analysis provides guidance based on the information provided. Actual results may vary based on specific circumstances.",
	"Cloud costs are dynamic and should be monitored continuously after migration.",
	"Consider engaging cloud providers' professional services for complex migrations.",
}

func legacySignificant(p types.MigrationProfile) bool {
	return p.LegacyDependencies == types.LegacySignificant
}

func noCloudExperience(p types.MigrationProfile) bool {
	return p.CloudExperience == types.ExperienceNone
}
