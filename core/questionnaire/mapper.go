package questionnaire

import "cloudguide/core/types"

// Wizard profiles only cover part of the questionnaire. Unmapped questions
// take these defaults.
var profileDefaults = map[string]string{
	QInfrastructureType: "on-premise",
	QMonthlyTraffic:     "medium",
	QOSDiversity:        "few",
	QBackupDR:           "standard",
	QPeakLoad:           "moderate",
	QCICDAutomation:     "basic",
	QMonitoringLogging:  "standard",
	QMigrationStrategy:  "lift_shift",
}

var (
	companySizes = map[types.InfrastructureSize]string{
		types.SizeSmall:  "startup",
		types.SizeMedium: "small",
		types.SizeLarge:  "medium",
	}
	dataSizes = map[types.DataVolume]string{
		types.DataUnder100GB:  "0",
		types.Data100GBTo1TB:  "1",
		types.Data1TBTo10TB:   "2",
		types.Data10TBTo100TB: "3",
		types.DataOver100TB:   "4",
	}
	databaseComplexities = map[string]string{
		"relational":     "moderate",
		"nosql":          "moderate",
		"mixed":          "complex",
		"data-warehouse": "enterprise",
		"none":           "simple",
	}
	architectures = map[types.Complexity]string{
		types.ComplexitySimple:   "monolithic",
		types.ComplexityModerate: "microservices",
		types.ComplexityComplex:  "microservices",
	}
	applicationCounts = map[string]string{
		"1-5":    "0",
		"6-20":   "1",
		"21-50":  "2",
		"51-100": "3",
		"100+":   "4",
	}
	complianceTags = map[string]string{
		"pci": "pci_dss",
	}
	availabilities = map[types.DowntimeTolerance]string{
		types.DowntimeZero:     "99_99",
		types.DowntimeMinimal:  "99_9",
		types.DowntimeFlexible: "99_5",
	}
	experiences = map[types.CloudExperience]string{
		types.ExperienceNone:        "none",
		types.ExperienceSome:        "some",
		types.ExperienceExperienced: "experienced",
	}
	timelines = map[string]string{
		"1-3months":     "0",
		"3-6months":     "1",
		"6-12months":    "2",
		"over-12months": "3",
		"flexible":      "4",
	}
)

func lookup[K comparable](m map[K]string, k K, fallback string) string {
	if v, ok := m[k]; ok {
		return v
	}
	return fallback
}

// FromProfile maps a wizard profile onto a complete set of answers
func FromProfile(p types.MigrationProfile) Answers {
	answers := Answers{
		QCompanySize:             One(lookup(companySizes, p.InfrastructureSize, "small")),
		QDataSize:                One(lookup(dataSizes, p.DataVolume, "1")),
		QDatabaseComplexity:      One(lookup(databaseComplexities, p.DatabaseType, "moderate")),
		QApplicationArchitecture: One(lookup(architectures, p.ApplicationComplexity, "monolithic")),
		QNumberOfApplications:    One(lookup(applicationCounts, p.NumberOfServers, "1")),
		QSecurityRequirements:    Many(),
		QComplianceRequirements:  Many(complianceAnswers(p.ComplianceRequirements)...),
		QAvailability:            One(lookup(availabilities, p.DownTimeTolerance, "99_9")),
		QTeamExperience:          One(lookup(experiences, p.CloudExperience, "some")),
		QMigrationTimeline:       One(lookup(timelines, p.TimelineExpectation, "2")),
	}
	for id, v := range profileDefaults {
		answers[id] = One(v)
	}
	return answers
}

func complianceAnswers(tags []string) []string {
	if len(tags) == 0 {
		return []string{types.ComplianceNone}
	}
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = lookup(complianceTags, t, t)
	}
	return out
}
