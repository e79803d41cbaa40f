// Package advisory is the qualitative migration advisory engine.
// It turns a categorical migration profile into a strategy, a cost band,
// a timeline band, risks and recommendations. Evaluation is pure and total:
// every profile, including the empty one, yields a well-formed result.
package advisory

import "cloudguide/core/types"

// Result is the advisory produced for one profile
type Result struct {
	MigrationStrategy   string           `json:"migrationStrategy" yaml:"migrationStrategy"`
	StrategyDescription string           `json:"strategyDescription" yaml:"strategyDescription"`
	CostEstimate        CostEstimate     `json:"costEstimate" yaml:"costEstimate"`
	TimelineEstimate    TimelineEstimate `json:"timelineEstimate" yaml:"timelineEstimate"`
	Risks               []Risk           `json:"risks" yaml:"risks"`
	Recommendations     []string         `json:"recommendations" yaml:"recommendations"`
	Considerations      []string         `json:"considerations" yaml:"considerations"`

	// MatchedRules names every rule that fired, in evaluation order
	MatchedRules []string `json:"matchedRules,omitempty" yaml:"matchedRules,omitempty"`
}

// CostEstimate is the coarse migration cost band
type CostEstimate struct {
	Level   CostLevel `json:"level" yaml:"level"`
	Range   string    `json:"range" yaml:"range"`
	Factors []string  `json:"factors" yaml:"factors"`
}

// TimelineEstimate is the coarse migration duration band
type TimelineEstimate struct {
	Range   string   `json:"range" yaml:"range"`
	Factors []string `json:"factors" yaml:"factors"`
}

// Risk is a fixed risk statement raised by a rule
type Risk struct {
	Title       string         `json:"title" yaml:"title"`
	Description string         `json:"description" yaml:"description"`
	Severity    types.Severity `json:"severity" yaml:"severity"`
}

// Evaluate runs every rule table against the profile
func Evaluate(p types.MigrationProfile) Result {
	var matched []string
	record := func(names ...string) {
		for _, n := range names {
			if n != "" {
				matched = append(matched, n)
			}
		}
	}

	strategy, name, ok := firstMatch(strategyRules, p)
	if !ok {
		strategy = DefaultStrategy
	}
	record(name)

	cost := CostEstimate{Level: DefaultCostLevel, Factors: []string{}}
	if band, name, ok := firstMatch(costLevelRules, p); ok {
		cost.Level = band.Level
		cost.Factors = append(cost.Factors, band.Factor)
		record(name)
	}
	cost.Range = costRanges[cost.Level]
	factors, names := allMatches(costFactorRules, p)
	cost.Factors = append(cost.Factors, factors...)
	record(names...)

	timeline := TimelineEstimate{Range: DefaultTimelineRange, Factors: []string{}}
	if band, name, ok := firstMatch(timelineRules, p); ok {
		timeline.Range = band.Range
		timeline.Factors = append(timeline.Factors, band.Factor)
		record(name)
	}
	factors, names = allMatches(timelineFactorRules, p)
	timeline.Factors = append(timeline.Factors, factors...)
	record(names...)

	risks, names := allMatches(riskRules, p)
	record(names...)

	recommendations := append([]string{}, baselineRecommendations...)
	extra, names := allMatches(recommendationRules, p)
	recommendations = append(recommendations, extra...)
	record(names...)

	return Result{
		MigrationStrategy:   strategy.Name,
		StrategyDescription: strategy.Description,
		CostEstimate:        cost,
		TimelineEstimate:    timeline,
		Risks:               risks,
		Recommendations:     recommendations,
		Considerations:      Considerations(),
		MatchedRules:        matched,
	}
}

// Considerations returns the fixed disclaimer list
func Considerations() []string {
	return append([]string{}, considerations...)
}

// RuleKind says how a rule table combines its matches
type RuleKind string

const (
	KindFirstMatch RuleKind = "first-match"
	KindAdditive   RuleKind = "additive"
)

// RuleInfo describes one rule for auditing
type RuleInfo struct {
	Table    string   `json:"table" yaml:"table"`
	Kind     RuleKind `json:"kind" yaml:"kind"`
	Position int      `json:"position" yaml:"position"`
	Name     string   `json:"name" yaml:"name"`
}

// Rules lists every rule in evaluation order
func Rules() []RuleInfo {
	var out []RuleInfo
	out = appendInfo(out, "strategy", KindFirstMatch, nameList(strategyRules))
	out = appendInfo(out, "cost-level", KindFirstMatch, nameList(costLevelRules))
	out = appendInfo(out, "cost-factor", KindAdditive, nameList(costFactorRules))
	out = appendInfo(out, "timeline", KindFirstMatch, nameList(timelineRules))
	out = appendInfo(out, "timeline-factor", KindAdditive, nameList(timelineFactorRules))
	out = appendInfo(out, "risk", KindAdditive, nameList(riskRules))
	out = appendInfo(out, "recommendation", KindAdditive, nameList(recommendationRules))
	return out
}

func nameList[T any](rules []Rule[T]) []string {
	out := make([]string, len(rules))
	for i, r := range rules {
		out[i] = r.Name
	}
	return out
}

func appendInfo(out []RuleInfo, table string, kind RuleKind, ruleNames []string) []RuleInfo {
	for i, n := range ruleNames {
		out = append(out, RuleInfo{Table: table, Kind: kind, Position: i + 1, Name: n})
	}
	return out
}
