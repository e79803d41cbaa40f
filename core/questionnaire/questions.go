// Package questionnaire estimates one-off migration project cost from the
// eighteen-question wizard. A base cost chosen by company size is scaled by
// one multiplier per answered question.
package questionnaire

// InputType is the wizard control a question is answered with
type InputType string

const (
	InputSlider   InputType = "slider"
	InputRadio    InputType = "radio"
	InputCheckbox InputType = "checkbox"
)

// Question describes how an answer is normalized and priced
type Question struct {
	ID              string            `json:"question_id"`
	InputType       InputType         `json:"input_type"`
	Required        bool              `json:"required"`
	ValueMapping    map[string]string `json:"value_mapping"`
	MultiplierKey   string            `json:"multiplier_key,omitempty"`
	Explanation     string            `json:"explanation"`
	AffectsBaseCost bool              `json:"affects_base_cost"`
}

// Question identifiers
const (
	QCompanySize             = "company_size"
	QInfrastructureType      = "current_infrastructure_type"
	QDataSize                = "data_size"
	QDatabaseComplexity      = "database_complexity"
	QMonthlyTraffic          = "monthly_traffic"
	QApplicationArchitecture = "application_architecture"
	QNumberOfApplications    = "number_of_applications"
	QOSDiversity             = "operating_system_diversity"
	QSecurityRequirements    = "security_requirements"
	QComplianceRequirements  = "compliance_requirements"
	QBackupDR                = "backup_disaster_recovery"
	QAvailability            = "availability_requirement"
	QPeakLoad                = "peak_load_variability"
	QCICDAutomation          = "cicd_automation_level"
	QMonitoringLogging       = "monitoring_logging_needs"
	QTeamExperience          = "team_cloud_experience"
	QMigrationTimeline       = "migration_timeline"
	QMigrationStrategy       = "migration_strategy"
)

// identity maps each value to itself
func identity(values ...string) map[string]string {
	m := make(map[string]string, len(values))
	for _, v := range values {
		m[v] = v
	}
	return m
}

// Questions is the ordered question set. Multipliers apply in this order.
var Questions = []Question{
	{
		ID: QCompanySize, InputType: InputSlider, Required: true, AffectsBaseCost: true,
		ValueMapping: map[string]string{"0": "startup", "1": "small", "2": "medium", "3": "enterprise"},
		Explanation:  "Larger companies have more infrastructure to migrate, requiring more resources and planning.",
	},
	{
		ID: QInfrastructureType, InputType: InputRadio, Required: true, MultiplierKey: "INFRASTRUCTURE_TYPE_MULTIPLIER",
		ValueMapping: map[string]string{"on-premise": "on_premise", "hybrid": "hybrid", "cloud-partial": "cloud_partial", "virtualized": "virtualized"},
		Explanation:  "Different infrastructure types require varying migration complexity and effort.",
	},
	{
		ID: QDataSize, InputType: InputSlider, Required: true, MultiplierKey: "DATA_SIZE_MULTIPLIER",
		ValueMapping: map[string]string{"0": "under_100gb", "1": "100gb_1tb", "2": "1tb_10tb", "3": "10tb_100tb", "4": "over_100tb"},
		Explanation:  "Larger data volumes increase transfer time, storage costs, and migration complexity.",
	},
	{
		ID: QDatabaseComplexity, InputType: InputRadio, Required: true, MultiplierKey: "DATABASE_COMPLEXITY_MULTIPLIER",
		ValueMapping: identity("simple", "moderate", "complex", "enterprise"),
		Explanation:  "Complex databases require specialized migration strategies and may need downtime planning.",
	},
	{
		ID: QMonthlyTraffic, InputType: InputSlider, Required: true, MultiplierKey: "TRAFFIC_VOLUME_MULTIPLIER",
		ValueMapping: map[string]string{"0": "low", "1": "medium", "2": "high", "3": "very_high"},
		Explanation:  "Higher traffic volumes require more robust infrastructure and scaling capabilities in the cloud.",
	},
	{
		ID: QApplicationArchitecture, InputType: InputRadio, Required: true, MultiplierKey: "ARCHITECTURE_TYPE_MULTIPLIER",
		ValueMapping: identity("monolithic", "microservices", "serverless", "mixed"),
		Explanation:  "Different architectures have varying migration complexity; microservices may require more refactoring.",
	},
	{
		ID: QNumberOfApplications, InputType: InputSlider, Required: true, MultiplierKey: "APPLICATION_COUNT_MULTIPLIER",
		ValueMapping: map[string]string{"0": "1_5", "1": "6_20", "2": "21_50", "3": "51_100", "4": "over_100"},
		Explanation:  "More applications increase coordination effort, testing requirements, and potential integration challenges.",
	},
	{
		ID: QOSDiversity, InputType: InputRadio, Required: true, MultiplierKey: "OS_DIVERSITY_MULTIPLIER",
		ValueMapping: identity("single", "few", "many", "highly_diverse"),
		Explanation:  "Multiple operating systems require different migration strategies and may limit cloud service options.",
	},
	{
		ID: QSecurityRequirements, InputType: InputCheckbox, Required: true, MultiplierKey: "SECURITY_REQUIREMENTS_MULTIPLIER",
		ValueMapping: identity("encryption", "vpn", "mfa", "audit_logging", "compliance_certifications", "none"),
		Explanation:  "Advanced security requirements add configuration complexity and may require specialized cloud services.",
	},
	{
		ID: QComplianceRequirements, InputType: InputCheckbox, Required: true, MultiplierKey: "COMPLIANCE_REQUIREMENTS_MULTIPLIER",
		ValueMapping: identity("hipaa", "gdpr", "pci_dss", "sox", "iso27001", "none"),
		Explanation:  "Compliance requirements restrict available cloud services and regions, increasing migration complexity.",
	},
	{
		ID: QBackupDR, InputType: InputRadio, Required: true, MultiplierKey: "BACKUP_DR_MULTIPLIER",
		ValueMapping: identity("basic", "standard", "advanced", "enterprise"),
		Explanation:  "Comprehensive backup and disaster recovery solutions require additional cloud infrastructure and services.",
	},
	{
		ID: QAvailability, InputType: InputRadio, Required: true, MultiplierKey: "AVAILABILITY_MULTIPLIER",
		ValueMapping: map[string]string{"99.0": "99_0", "99.5": "99_5", "99.9": "99_9", "99.99": "99_99", "99.999": "99_999"},
		Explanation:  "Higher availability requirements demand redundant infrastructure and specialized configurations.",
	},
	{
		ID: QPeakLoad, InputType: InputRadio, Required: true, MultiplierKey: "PEAK_LOAD_MULTIPLIER",
		ValueMapping: identity("stable", "moderate", "high", "extreme"),
		Explanation:  "Variable peak loads require auto-scaling capabilities and may increase cloud infrastructure costs.",
	},
	{
		ID: QCICDAutomation, InputType: InputRadio, Required: true, MultiplierKey: "CICD_AUTOMATION_MULTIPLIER",
		ValueMapping: identity("none", "basic", "moderate", "advanced"),
		Explanation:  "Advanced CI/CD automation reduces manual migration effort but requires initial setup investment.",
	},
	{
		ID: QMonitoringLogging, InputType: InputRadio, Required: true, MultiplierKey: "MONITORING_LOGGING_MULTIPLIER",
		ValueMapping: identity("basic", "standard", "advanced", "enterprise"),
		Explanation:  "Comprehensive monitoring and logging require additional cloud services and may increase ongoing costs.",
	},
	{
		ID: QTeamExperience, InputType: InputRadio, Required: true, MultiplierKey: "TEAM_EXPERIENCE_MULTIPLIER",
		ValueMapping: identity("none", "some", "experienced", "expert"),
		Explanation:  "Less experienced teams may require training or consulting, adding to migration costs.",
	},
	{
		ID: QMigrationTimeline, InputType: InputSlider, Required: true, MultiplierKey: "TIMELINE_MULTIPLIER",
		ValueMapping: map[string]string{"0": "1_3_months", "1": "3_6_months", "2": "6_12_months", "3": "over_12_months", "4": "flexible"},
		Explanation:  "Tighter timelines may require parallel workstreams and additional resources, increasing costs.",
	},
	{
		ID: QMigrationStrategy, InputType: InputRadio, Required: true, MultiplierKey: "MIGRATION_STRATEGY_MULTIPLIER",
		ValueMapping: identity("lift_shift", "replatform", "refactor", "retire", "hybrid"),
		Explanation:  "Different migration strategies have varying costs; refactoring is more expensive but offers better long-term value.",
	},
}

// QuestionByID returns the question with the given identifier
func QuestionByID(id string) (Question, bool) {
	for _, q := range Questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

// baseCostQuestion returns the single question that selects the base cost
func baseCostQuestion() Question {
	for _, q := range Questions {
		if q.AffectsBaseCost {
			return q
		}
	}
	return Questions[0]
}
