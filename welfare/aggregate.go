package welfare

import (
	"fmt"
	"sort"
	"time"
)

// Aggregation is a pure fold over already-derived per-employee data. Nothing
// in this file touches the provider or the cache; the service feeds it.

// Trend tags for the overall-health block. Without a baseline the engine
// cannot compute a real trend and reports TrendStable as a documented
// placeholder, mirroring the system this engine replaces.
const (
	TrendStable    = "stable"
	TrendImproving = "improving"
	TrendDeclining = "declining"
)

// trendBand is the completion-rate delta (in ratio points) beyond which the
// trend leaves "stable".
const trendBand = 0.05

// DashboardStats is the dashboard-level aggregate payload.
type DashboardStats struct {
	TotalEmployees     int       `json:"total_employees"`
	OverdueEmployees   int       `json:"overdue_employees"`
	DueSoonEmployees   int       `json:"due_soon_employees"`
	CriticalEmployees  int       `json:"critical_employees"`
	ActivitiesInPeriod int       `json:"activities_in_period"`
	CompletionRate     float64   `json:"completion_rate"`
	GeneratedAt        time.Time `json:"generated_at"`
}

// dueSoonDays is the lookahead window for the dashboard's due-soon count.
const dueSoonDays = 3

// OverallHealth summarizes the whole population for the executive summary.
type OverallHealth struct {
	TotalEmployees int     `json:"total_employees"`
	AtRisk         int     `json:"at_risk"`
	CompletionRate float64 `json:"completion_rate"`
	Trend          string  `json:"trend"`
}

// KeyMetrics carries the executive summary's headline numbers.
type KeyMetrics struct {
	ActivitiesInPeriod   int     `json:"activities_in_period"`
	OverdueEmployees     int     `json:"overdue_employees"`
	MeanDaysToCompletion float64 `json:"mean_days_to_completion"`
	EngagementRate       float64 `json:"engagement_rate"`
}

// Alert is one executive-summary alert. EmployeeID is empty for aggregate
// alerts.
type Alert struct {
	EmployeeID string  `json:"employee_id,omitempty"`
	Name       string  `json:"name,omitempty"`
	Severity   string  `json:"severity"`
	Score      float64 `json:"score,omitempty"`
	Message    string  `json:"message"`
}

// ExecutiveSummary is the top-level analytics payload.
type ExecutiveSummary struct {
	Health             OverallHealth `json:"health"`
	Metrics            KeyMetrics    `json:"metrics"`
	Alerts             []Alert       `json:"alerts"`
	Recommendations    []string      `json:"recommendations"`
	DerivationFailures int           `json:"derivation_failures,omitempty"`
	GeneratedAt        time.Time     `json:"generated_at"`
}

// TrendPoint is one month's activity volume and completion.
type TrendPoint struct {
	Month          string  `json:"month"`
	Activities     int     `json:"activities"`
	Completed      int     `json:"completed"`
	CompletionRate float64 `json:"completion_rate"`
}

// AggregateInput is everything the aggregation folds consume. Employees carry
// state already derived and scored; RecentActivities are the activities
// inside the configured trailing window. Baseline, when set, is a historical
// completion rate the trend tag is computed against.
type AggregateInput struct {
	Employees          []EmployeeWelfare
	RecentActivities   []Activity
	Now                time.Time
	Baseline           *float64
	DerivationFailures int
}

// BuildDashboard folds per-employee state into the dashboard payload.
func BuildDashboard(in AggregateInput, cfg Config) DashboardStats {
	overdue, dueSoon, critical := 0, 0, 0
	dueSoonCutoff := in.Now.AddDate(0, 0, dueSoonDays)

	for _, ew := range in.Employees {
		if ew.State.Overdue {
			overdue++
		} else if !ew.State.NextDue.After(dueSoonCutoff) {
			dueSoon++
		}
		if ew.Risk.Category == RiskCritical {
			critical++
		}
	}

	return DashboardStats{
		TotalEmployees:     len(in.Employees),
		OverdueEmployees:   overdue,
		DueSoonEmployees:   dueSoon,
		CriticalEmployees:  critical,
		ActivitiesInPeriod: len(in.RecentActivities),
		CompletionRate:     completionRate(in.RecentActivities),
		GeneratedAt:        in.Now,
	}
}

// BuildSummary folds per-employee state and recent activity into the
// executive summary: overall health, key metrics, a bounded alert list and
// threshold-derived recommendations.
func BuildSummary(in AggregateInput, cfg Config) ExecutiveSummary {
	overdue, atRisk, withActivity := 0, 0, 0
	var criticals []EmployeeWelfare

	for _, ew := range in.Employees {
		if ew.State.Overdue {
			overdue++
		}
		if ew.State.TotalActivities > 0 {
			withActivity++
		}
		switch ew.Risk.Category {
		case RiskCritical:
			atRisk++
			criticals = append(criticals, ew)
		case RiskHigh:
			atRisk++
		}
	}

	rate := completionRate(in.RecentActivities)

	var engagement float64
	if len(in.Employees) > 0 {
		engagement = float64(withActivity) / float64(len(in.Employees))
	}

	return ExecutiveSummary{
		Health: OverallHealth{
			TotalEmployees: len(in.Employees),
			AtRisk:         atRisk,
			CompletionRate: rate,
			Trend:          trendFor(rate, in.Baseline),
		},
		Metrics: KeyMetrics{
			ActivitiesInPeriod:   len(in.RecentActivities),
			OverdueEmployees:     overdue,
			MeanDaysToCompletion: meanDaysBetween(in.RecentActivities),
			EngagementRate:       engagement,
		},
		Alerts:             buildAlerts(criticals, overdue, cfg),
		Recommendations:    buildRecommendations(criticals, overdue, rate, cfg),
		DerivationFailures: in.DerivationFailures,
		GeneratedAt:        in.Now,
	}
}

// BuildTrends buckets activities into the trailing months (oldest first,
// current month last) with per-month completion rates. Months with no
// activity still appear so callers can chart gaps.
func BuildTrends(activities []Activity, months int, now time.Time) []TrendPoint {
	counts := make(map[string]int, months)
	completed := make(map[string]int, months)
	for _, a := range activities {
		month := a.Date.UTC().Format("2006-01")
		counts[month]++
		if a.Status == StatusCompleted {
			completed[month]++
		}
	}

	points := make([]TrendPoint, 0, months)
	for i := months - 1; i >= 0; i-- {
		month := now.UTC().AddDate(0, -i, 0).Format("2006-01")
		point := TrendPoint{
			Month:      month,
			Activities: counts[month],
			Completed:  completed[month],
		}
		if point.Activities > 0 {
			point.CompletionRate = float64(point.Completed) / float64(point.Activities)
		}
		points = append(points, point)
	}
	return points
}

func completionRate(activities []Activity) float64 {
	if len(activities) == 0 {
		return 0
	}
	completed := 0
	for _, a := range activities {
		if a.Status == StatusCompleted {
			completed++
		}
	}
	return float64(completed) / float64(len(activities))
}

// meanDaysBetween averages the days-since-previous snapshots across
// activities that carry one.
func meanDaysBetween(activities []Activity) float64 {
	sum, n := 0, 0
	for _, a := range activities {
		if a.DaysSincePrevious != nil {
			sum += *a.DaysSincePrevious
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func trendFor(rate float64, baseline *float64) string {
	if baseline == nil {
		return TrendStable
	}
	switch {
	case rate > *baseline+trendBand:
		return TrendImproving
	case rate < *baseline-trendBand:
		return TrendDeclining
	default:
		return TrendStable
	}
}

func buildAlerts(criticals []EmployeeWelfare, overdue int, cfg Config) []Alert {
	sort.Slice(criticals, func(i, j int) bool {
		if criticals[i].Risk.Score != criticals[j].Risk.Score {
			return criticals[i].Risk.Score > criticals[j].Risk.Score
		}
		return criticals[i].Employee.ID < criticals[j].Employee.ID
	})

	limit := cfg.AlertLimit
	if limit > len(criticals) {
		limit = len(criticals)
	}

	alerts := make([]Alert, 0, limit+1)
	for _, ew := range criticals[:limit] {
		alerts = append(alerts, Alert{
			EmployeeID: ew.Employee.ID,
			Name:       ew.Employee.Name,
			Severity:   string(RiskCritical),
			Score:      ew.Risk.Score,
			Message:    ew.Risk.Recommendation,
		})
	}

	if overdue > cfg.OverdueAlertThreshold {
		alerts = append(alerts, Alert{
			Severity: "aggregate",
			Message:  fmt.Sprintf("%d employees are overdue for a welfare check", overdue),
		})
	}
	return alerts
}

func buildRecommendations(criticals []EmployeeWelfare, overdue int, rate float64, cfg Config) []string {
	var recs []string
	if len(criticals) > 0 {
		recs = append(recs, fmt.Sprintf("prioritize %d critical-risk employees for immediate checks", len(criticals)))
	}
	if overdue > cfg.OverdueAlertThreshold {
		recs = append(recs, fmt.Sprintf("overdue count %d exceeds threshold %d, schedule a catch-up round", overdue, cfg.OverdueAlertThreshold))
	}
	if rate > 0 && rate < 0.8 {
		recs = append(recs, "completion rate is below 80%, review missed checks with conductors")
	}
	if len(recs) == 0 {
		recs = append(recs, fmt.Sprintf("welfare checks on track, continue the %d-day schedule", cfg.CycleLengthDays))
	}
	return recs
}
