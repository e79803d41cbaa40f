package questionnaire

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	"cloudguide/core/types"
)

// Impact direction of a single multiplier
const (
	ImpactIncrease = "increase"
	ImpactDecrease = "decrease"
	ImpactNeutral  = "neutral"
)

// CostEstimate is the priced project range
type CostEstimate struct {
	BaseCost  decimal.Decimal `json:"base_cost" yaml:"base_cost"`
	FinalCost decimal.Decimal `json:"final_cost" yaml:"final_cost"`
	MinCost   decimal.Decimal `json:"min_cost" yaml:"min_cost"`
	MaxCost   decimal.Decimal `json:"max_cost" yaml:"max_cost"`
	Currency  types.Currency  `json:"currency" yaml:"currency"`
}

// BreakdownItem explains how one answer moved the estimate
type BreakdownItem struct {
	QuestionID      string          `json:"question_id" yaml:"question_id"`
	QuestionTitle   string          `json:"question_title" yaml:"question_title"`
	UserAnswer      string          `json:"user_answer" yaml:"user_answer"`
	Multiplier      decimal.Decimal `json:"multiplier" yaml:"multiplier"`
	CostImpact      decimal.Decimal `json:"cost_impact" yaml:"cost_impact"`
	ImpactDirection string          `json:"impact_direction" yaml:"impact_direction"`
	Explanation     string          `json:"explanation" yaml:"explanation"`
}

// Metadata counts the questions considered
type Metadata struct {
	TotalQuestions    int `json:"total_questions" yaml:"total_questions"`
	QuestionsAnswered int `json:"questions_answered" yaml:"questions_answered"`
}

// Result is a complete questionnaire estimate
type Result struct {
	CostEstimate CostEstimate    `json:"cost_estimate" yaml:"cost_estimate"`
	Breakdown    []BreakdownItem `json:"breakdown" yaml:"breakdown"`
	Metadata     Metadata        `json:"metadata" yaml:"metadata"`
}

// Estimate validates the answers and prices the migration project
func Estimate(raw Answers) (*Result, error) {
	answers, err := Validate(raw)
	if err != nil {
		return nil, err
	}

	base, err := BaseCost(answers[baseCostQuestion().ID].Value())
	if err != nil {
		return nil, err
	}

	one := decimal.NewFromInt(1)
	final := base
	breakdown := make([]BreakdownItem, 0, len(Questions))

	for _, q := range Questions {
		if q.AffectsBaseCost || q.MultiplierKey == "" {
			continue
		}
		a, ok := answers[q.ID]
		if !ok {
			continue
		}

		factor := Multiplier(q.MultiplierKey, a)
		before := final
		final = final.Mul(factor)

		direction := ImpactNeutral
		switch {
		case factor.GreaterThan(one):
			direction = ImpactIncrease
		case factor.LessThan(one):
			direction = ImpactDecrease
		}

		breakdown = append(breakdown, BreakdownItem{
			QuestionID:      q.ID,
			QuestionTitle:   titleCase(q.ID),
			UserAnswer:      displayAnswer(a),
			Multiplier:      factor.Round(3),
			CostImpact:      final.Sub(before).Round(2),
			ImpactDirection: direction,
			Explanation:     q.Explanation,
		})
	}

	return &Result{
		CostEstimate: CostEstimate{
			BaseCost:  base.Round(2),
			FinalCost: final.Round(2),
			MinCost:   final.Mul(MinCostFactor).Round(2),
			MaxCost:   final.Mul(MaxCostFactor).Round(2),
			Currency:  types.CurrencyUSD,
		},
		Breakdown: breakdown,
		Metadata: Metadata{
			TotalQuestions:    len(Questions),
			QuestionsAnswered: len(answers),
		},
	}, nil
}

// titleCase turns snake_case into space separated words with leading capitals
func titleCase(s string) string {
	words := strings.Fields(strings.ReplaceAll(s, "_", " "))
	for i, w := range words {
		r := []rune(strings.ToLower(w))
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

func displayAnswer(a Answer) string {
	parts := make([]string, len(a.Values))
	for i, v := range a.Values {
		parts[i] = titleCase(v)
	}
	return strings.Join(parts, ", ")
}
