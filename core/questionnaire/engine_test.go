package questionnaire

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cloudguide/core/types"
	"cloudguide/internal/errors"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func smallProfile() types.MigrationProfile {
	return types.MigrationProfile{
		InfrastructureSize:     types.SizeSmall,
		DataVolume:             types.DataUnder100GB,
		ApplicationComplexity:  types.ComplexitySimple,
		LegacyDependencies:     types.LegacyNone,
		CloudExperience:        types.ExperienceExperienced,
		DedicatedTeam:          types.TeamYes,
		DownTimeTolerance:      types.DowntimeFlexible,
		ComplianceRequirements: []string{},
	}
}

func TestEstimateFromSmallProfile(t *testing.T) {
	result, err := Estimate(FromProfile(smallProfile()))
	require.NoError(t, err)

	est := result.CostEstimate
	assert.True(t, est.BaseCost.Equal(dec("10000")), "base %s", est.BaseCost)
	assert.True(t, est.FinalCost.Equal(dec("11907")), "final %s", est.FinalCost)
	assert.True(t, est.MinCost.Equal(dec("9525.6")), "min %s", est.MinCost)
	assert.True(t, est.MaxCost.Equal(dec("15479.1")), "max %s", est.MaxCost)
	assert.Equal(t, types.CurrencyUSD, est.Currency)

	assert.Equal(t, 18, result.Metadata.TotalQuestions)
	assert.Equal(t, 18, result.Metadata.QuestionsAnswered)
	require.Len(t, result.Breakdown, 17)

	infra := result.Breakdown[0]
	assert.Equal(t, QInfrastructureType, infra.QuestionID)
	assert.Equal(t, "Current Infrastructure Type", infra.QuestionTitle)
	assert.Equal(t, "On Premise", infra.UserAnswer)
	assert.True(t, infra.CostImpact.Equal(dec("2000")))
	assert.Equal(t, ImpactIncrease, infra.ImpactDirection)

	data := result.Breakdown[1]
	assert.Equal(t, QDataSize, data.QuestionID)
	assert.True(t, data.Multiplier.Equal(dec("0.9")))
	assert.True(t, data.CostImpact.Equal(dec("-1200")))
	assert.Equal(t, ImpactDecrease, data.ImpactDirection)

	for _, item := range result.Breakdown {
		if item.QuestionID == QComplianceRequirements {
			assert.Equal(t, "None", item.UserAnswer)
			assert.Equal(t, ImpactNeutral, item.ImpactDirection)
		}
		if item.QuestionID == QCICDAutomation {
			assert.True(t, item.CostImpact.Equal(dec("567")))
		}
	}
}

func TestEstimateCheckboxCompounds(t *testing.T) {
	answers := FromProfile(smallProfile())
	answers[QSecurityRequirements] = Many("encryption", "vpn", "unknown")

	result, err := Estimate(answers)
	require.NoError(t, err)

	var security BreakdownItem
	for _, item := range result.Breakdown {
		if item.QuestionID == QSecurityRequirements {
			security = item
		}
	}
	assert.True(t, security.Multiplier.Equal(dec("1.082")), "got %s", security.Multiplier)
	assert.Equal(t, "Encryption, Vpn, Unknown", security.UserAnswer)
	assert.True(t, result.CostEstimate.FinalCost.Equal(dec("11907").Mul(dec("1.0815")).Round(2)))
}

func TestEstimateFromJSON(t *testing.T) {
	body := `{
		"company_size": 3,
		"current_infrastructure_type": "hybrid",
		"data_size": "4",
		"database_complexity": "enterprise",
		"monthly_traffic": ["2"],
		"application_architecture": "mixed",
		"number_of_applications": 4,
		"operating_system_diversity": "highly_diverse",
		"security_requirements": ["none"],
		"compliance_requirements": ["hipaa", "gdpr"],
		"backup_disaster_recovery": "enterprise",
		"availability_requirement": "99.999",
		"peak_load_variability": "extreme",
		"cicd_automation_level": "advanced",
		"monitoring_logging_needs": "enterprise",
		"team_cloud_experience": "expert",
		"migration_timeline": 0,
		"migration_strategy": "refactor"
	}`

	var answers Answers
	require.NoError(t, json.Unmarshal([]byte(body), &answers))

	result, err := Estimate(answers)
	require.NoError(t, err)
	assert.True(t, result.CostEstimate.BaseCost.Equal(dec("500000")))

	want := dec("500000")
	for _, f := range []string{"1.1", "1.5", "1.4", "1.2", "1.2", "1.5", "1.3", "1.0", "1.288", "1.3", "1.5", "1.3", "0.95", "1.25", "0.95", "1.3", "1.4"} {
		want = want.Mul(dec(f))
	}
	assert.True(t, result.CostEstimate.FinalCost.Equal(want.Round(2)), "got %s want %s", result.CostEstimate.FinalCost, want.Round(2))
}

func TestValidate(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		_, err := Estimate(Answers{})
		assert.True(t, errors.IsType(err, errors.TypeInput))
	})

	t.Run("missing required", func(t *testing.T) {
		answers := FromProfile(smallProfile())
		delete(answers, QMigrationStrategy)

		_, err := Estimate(answers)
		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.TypeInput))
		assert.Contains(t, err.Error(), "missing required question: migration_strategy")
	})

	t.Run("checkbox needs list", func(t *testing.T) {
		answers := FromProfile(smallProfile())
		answers[QComplianceRequirements] = One("gdpr")

		_, err := Estimate(answers)
		assert.True(t, errors.IsType(err, errors.TypeInput))
	})

	t.Run("bad company size", func(t *testing.T) {
		answers := FromProfile(smallProfile())
		answers[QCompanySize] = One("galactic")

		_, err := Estimate(answers)
		assert.True(t, errors.IsType(err, errors.TypeInput))
	})

	t.Run("list collapses for radios", func(t *testing.T) {
		answers := FromProfile(smallProfile())
		answers[QMonthlyTraffic] = Many("3", "0")

		validated, err := Validate(answers)
		require.NoError(t, err)
		assert.Equal(t, One("very_high"), validated[QMonthlyTraffic])
	})
}

func TestFromProfileDefaults(t *testing.T) {
	answers := FromProfile(types.MigrationProfile{})

	assert.Equal(t, "small", answers[QCompanySize].Value())
	assert.Equal(t, "1", answers[QDataSize].Value())
	assert.Equal(t, "moderate", answers[QDatabaseComplexity].Value())
	assert.Equal(t, "monolithic", answers[QApplicationArchitecture].Value())
	assert.Equal(t, []string{"none"}, answers[QComplianceRequirements].Values)
	assert.Equal(t, "99_9", answers[QAvailability].Value())
	assert.Equal(t, "some", answers[QTeamExperience].Value())
	assert.Equal(t, "on-premise", answers[QInfrastructureType].Value())
	assert.Len(t, answers, len(Questions))
}

func TestFromProfileMapping(t *testing.T) {
	p := types.MigrationProfile{
		InfrastructureSize:     types.SizeLarge,
		NumberOfServers:        "100+",
		DatabaseType:           "data-warehouse",
		ApplicationComplexity:  types.ComplexityComplex,
		ComplianceRequirements: []string{"pci", "gdpr"},
		DownTimeTolerance:      types.DowntimeZero,
		TimelineExpectation:    "1-3months",
	}
	answers := FromProfile(p)

	assert.Equal(t, "medium", answers[QCompanySize].Value())
	assert.Equal(t, "4", answers[QNumberOfApplications].Value())
	assert.Equal(t, "enterprise", answers[QDatabaseComplexity].Value())
	assert.Equal(t, "microservices", answers[QApplicationArchitecture].Value())
	assert.Equal(t, []string{"pci_dss", "gdpr"}, answers[QComplianceRequirements].Values)
	assert.Equal(t, "99_99", answers[QAvailability].Value())
	assert.Equal(t, "0", answers[QMigrationTimeline].Value())
}

func TestAnswerJSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(Answers{"a": One("x"), "b": Many()})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":"x","b":[]}`, string(data))
}
