// Package types - Migration profile collected by the assessment wizard
package types

import "encoding/json"

// InfrastructureSize is the coarse size of the estate being migrated
type InfrastructureSize string

const (
	SizeSmall  InfrastructureSize = "small"
	SizeMedium InfrastructureSize = "medium"
	SizeLarge  InfrastructureSize = "large"
)

// DataVolume buckets the amount of data to move
type DataVolume string

const (
	DataUnder100GB  DataVolume = "under-100gb"
	Data100GBTo1TB  DataVolume = "100gb-1tb"
	Data1TBTo10TB   DataVolume = "1tb-10tb"
	Data10TBTo100TB DataVolume = "10tb-100tb"
	DataOver100TB   DataVolume = "over-100tb"
)

// Complexity grades the application portfolio
type Complexity string

const (
	ComplexitySimple   Complexity = "simple"
	ComplexityModerate Complexity = "moderate"
	ComplexityComplex  Complexity = "complex"
)

// LegacyDependencies grades coupling to legacy systems
type LegacyDependencies string

const (
	LegacyNone        LegacyDependencies = "none"
	LegacySome        LegacyDependencies = "some"
	LegacySignificant LegacyDependencies = "significant"
)

// DowntimeTolerance is how much outage the business accepts during cutover
type DowntimeTolerance string

const (
	DowntimeZero     DowntimeTolerance = "zero"
	DowntimeMinimal  DowntimeTolerance = "minimal"
	DowntimeFlexible DowntimeTolerance = "flexible"
)

// CloudExperience is the team's prior cloud exposure
type CloudExperience string

const (
	ExperienceNone        CloudExperience = "none"
	ExperienceSome        CloudExperience = "some"
	ExperienceExperienced CloudExperience = "experienced"
)

// DedicatedTeam says whether staff are assigned to the migration
type DedicatedTeam string

const (
	TeamYes     DedicatedTeam = "yes"
	TeamPartial DedicatedTeam = "partial"
	TeamNo      DedicatedTeam = "no"
)

// ComplianceNone is the tag a user selects to state there are no regimes
const ComplianceNone = "none"

// MigrationProfile is the self-reported migration context.
// Every field may be empty; an empty field simply matches no rule.
// NumberOfServers, DatabaseType, BudgetRange and TimelineExpectation
// are descriptive and not consulted by the advisory rules.
type MigrationProfile struct {
	// Infrastructure
	InfrastructureSize InfrastructureSize `json:"infrastructureSize" yaml:"infrastructureSize"`
	NumberOfServers    string             `json:"numberOfServers" yaml:"numberOfServers"`
	DataVolume         DataVolume         `json:"dataVolume" yaml:"dataVolume"`

	// Applications
	ApplicationComplexity Complexity         `json:"applicationComplexity" yaml:"applicationComplexity"`
	LegacyDependencies    LegacyDependencies `json:"legacyDependencies" yaml:"legacyDependencies"`
	DatabaseType          string             `json:"databaseType" yaml:"databaseType"`

	// Requirements
	ComplianceRequirements []string          `json:"complianceRequirements" yaml:"complianceRequirements"`
	DownTimeTolerance      DowntimeTolerance `json:"downTimeTolerance" yaml:"downTimeTolerance"`
	BudgetRange            string            `json:"budgetRange" yaml:"budgetRange"`

	// Team
	CloudExperience     CloudExperience `json:"cloudExperience" yaml:"cloudExperience"`
	DedicatedTeam       DedicatedTeam   `json:"dedicatedTeam" yaml:"dedicatedTeam"`
	TimelineExpectation string          `json:"timelineExpectation" yaml:"timelineExpectation"`
}

// HasCompliance reports whether at least one regime other than "none" applies.
// A list containing "none" counts as no compliance.
func (p MigrationProfile) HasCompliance() bool {
	if len(p.ComplianceRequirements) == 0 {
		return false
	}
	for _, tag := range p.ComplianceRequirements {
		if tag == ComplianceNone {
			return false
		}
	}
	return true
}

// UnmarshalJSON accepts the wizard's historical "downTimeTolerrance" key
// alongside the corrected spelling.
func (p *MigrationProfile) UnmarshalJSON(data []byte) error {
	type plain MigrationProfile
	aux := struct {
		*plain
		Legacy DowntimeTolerance `json:"downTimeTolerrance"`
	}{plain: (*plain)(p)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if p.DownTimeTolerance == "" && aux.Legacy != "" {
		p.DownTimeTolerance = aux.Legacy
	}
	return nil
}
