package welfare

// RiskCategory is one of four ordered risk bands derived from a numeric
// score.
type RiskCategory string

const (
	RiskLow      RiskCategory = "low"
	RiskMedium   RiskCategory = "medium"
	RiskHigh     RiskCategory = "high"
	RiskCritical RiskCategory = "critical"
)

// Category thresholds: score >= 8 critical, >= 6 high, >= 4 medium, else low.
const (
	criticalThreshold = 8.0
	highThreshold     = 6.0
	mediumThreshold   = 4.0
)

// riskRule is one entry in the ordered scoring cascade. Rules are not
// mutually exclusive; evaluation order is the priority order, first match
// wins.
type riskRule struct {
	name    string
	score   float64
	matches func(DerivedState) bool
}

// riskRules is the full cascade. An explicit ordered list rather than nested
// conditionals keeps the priority order auditable and testable in isolation.
// The scorer is a heuristic with fixed constants, not a statistical model.
var riskRules = []riskRule{
	{
		name:  "no_activity_recorded",
		score: 8.0,
		matches: func(s DerivedState) bool {
			return s.TotalActivities == 0
		},
	},
	{
		name:  "inactive_over_21_days",
		score: 9.0,
		matches: func(s DerivedState) bool {
			return s.DaysSinceLast != nil && *s.DaysSinceLast > 21
		},
	},
	{
		name:  "inactive_over_14_days",
		score: 7.0,
		matches: func(s DerivedState) bool {
			return s.DaysSinceLast != nil && *s.DaysSinceLast > 14
		},
	},
	{
		name:  "overdue_history",
		score: 6.0,
		matches: func(s DerivedState) bool {
			return s.OverdueActivities > 3
		},
	},
	{
		name:  "low_completion_ratio",
		score: 5.0,
		matches: func(s DerivedState) bool {
			return s.TotalActivities > 0 && s.CompletionRatio < 0.8
		},
	},
	{
		name:  "baseline",
		score: 2.0,
		matches: func(s DerivedState) bool {
			return true
		},
	},
}

// ScoreRisk evaluates the cascade in order and returns the first matching
// rule's score and name.
func ScoreRisk(state DerivedState) (float64, string) {
	for _, rule := range riskRules {
		if rule.matches(state) {
			return rule.score, rule.name
		}
	}
	// The baseline rule matches everything; this is unreachable.
	return 2.0, "baseline"
}

// CategoryForScore maps a score in [0,10] to its risk band.
func CategoryForScore(score float64) RiskCategory {
	switch {
	case score >= criticalThreshold:
		return RiskCritical
	case score >= highThreshold:
		return RiskHigh
	case score >= mediumThreshold:
		return RiskMedium
	default:
		return RiskLow
	}
}

// recommendations is the fixed text per category.
var recommendations = map[RiskCategory]string{
	RiskCritical: "immediate check required",
	RiskHigh:     "schedule within 48 hours",
	RiskMedium:   "monitor, verify due date",
	RiskLow:      "continue regular schedule",
}

// RecommendationFor returns the fixed recommendation text for a category.
func RecommendationFor(category RiskCategory) string {
	return recommendations[category]
}

// Assess scores one employee's derived state into a full risk assessment.
func Assess(emp Employee, state DerivedState) RiskAssessment {
	score, rule := ScoreRisk(state)
	category := CategoryForScore(score)
	return RiskAssessment{
		EmployeeID:     emp.ID,
		Name:           emp.Name,
		Score:          score,
		Category:       category,
		Rule:           rule,
		Recommendation: RecommendationFor(category),
	}
}
