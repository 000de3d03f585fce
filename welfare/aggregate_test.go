package welfare

import (
	"fmt"
	"testing"
	"time"
)

func floatPtr(f float64) *float64 { return &f }

// welfareFor builds an EmployeeWelfare whose state/risk are internally
// consistent for the given shape.
func welfareFor(id string, overdue bool, category RiskCategory, score float64, nextDue time.Time, total int) EmployeeWelfare {
	return EmployeeWelfare{
		Employee: Employee{ID: id, Name: "emp " + id, Active: true, CreatedAt: day(0)},
		State: DerivedState{
			EmployeeID:      id,
			NextDue:         nextDue,
			Overdue:         overdue,
			TotalActivities: total,
		},
		Risk: RiskAssessment{
			EmployeeID:     id,
			Name:           "emp " + id,
			Score:          score,
			Category:       category,
			Recommendation: RecommendationFor(category),
		},
	}
}

func completedActivity(id string, date time.Time, daysSince int) Activity {
	return Activity{
		ID: id, EmployeeID: "e1", Type: ActivityCall, Status: StatusCompleted,
		Date: date, DaysSincePrevious: intPtr(daysSince),
	}
}

func TestBuildDashboard(t *testing.T) {
	now := day(20)
	in := AggregateInput{
		Employees: []EmployeeWelfare{
			welfareFor("a", true, RiskCritical, 9.0, day(15), 1),
			welfareFor("b", false, RiskLow, 2.0, day(22), 3),  // due in 2 days
			welfareFor("c", false, RiskLow, 2.0, day(30), 2),  // not due soon
			welfareFor("d", false, RiskHigh, 6.0, day(21), 4), // due tomorrow
		},
		RecentActivities: []Activity{
			{ID: "a1", Status: StatusCompleted, Date: day(18)},
			{ID: "a2", Status: StatusCompleted, Date: day(16)},
			{ID: "a3", Status: StatusOverdue, Date: day(14)},
			{ID: "a4", Status: StatusCompleted, Date: day(12)},
		},
		Now: now,
	}

	stats := BuildDashboard(in, DefaultConfig())

	if stats.TotalEmployees != 4 {
		t.Errorf("expected 4 employees, got %d", stats.TotalEmployees)
	}
	if stats.OverdueEmployees != 1 {
		t.Errorf("expected 1 overdue, got %d", stats.OverdueEmployees)
	}
	if stats.DueSoonEmployees != 2 {
		t.Errorf("expected 2 due soon, got %d", stats.DueSoonEmployees)
	}
	if stats.CriticalEmployees != 1 {
		t.Errorf("expected 1 critical, got %d", stats.CriticalEmployees)
	}
	if stats.ActivitiesInPeriod != 4 {
		t.Errorf("expected 4 activities in period, got %d", stats.ActivitiesInPeriod)
	}
	if stats.CompletionRate != 0.75 {
		t.Errorf("expected completion rate 0.75, got %v", stats.CompletionRate)
	}
	if !stats.GeneratedAt.Equal(now) {
		t.Errorf("expected generated-at %v, got %v", now, stats.GeneratedAt)
	}
}

func TestBuildSummary_HealthAndMetrics(t *testing.T) {
	in := AggregateInput{
		Employees: []EmployeeWelfare{
			welfareFor("a", true, RiskCritical, 8.0, day(10), 0),
			welfareFor("b", false, RiskHigh, 6.0, day(25), 2),
			welfareFor("c", false, RiskLow, 2.0, day(25), 3),
			welfareFor("d", false, RiskLow, 2.0, day(25), 1),
		},
		RecentActivities: []Activity{
			completedActivity("a1", day(18), 14),
			completedActivity("a2", day(16), 10),
			{ID: "a3", Status: StatusOverdue, Date: day(14), DaysSincePrevious: intPtr(21)},
		},
		Now:                day(20),
		DerivationFailures: 1,
	}

	summary := BuildSummary(in, DefaultConfig())

	if summary.Health.TotalEmployees != 4 {
		t.Errorf("expected 4 employees, got %d", summary.Health.TotalEmployees)
	}
	if summary.Health.AtRisk != 2 {
		t.Errorf("expected 2 at risk (critical+high), got %d", summary.Health.AtRisk)
	}
	if want := 2.0 / 3.0; summary.Health.CompletionRate != want {
		t.Errorf("expected completion rate %v, got %v", want, summary.Health.CompletionRate)
	}
	if summary.Health.Trend != TrendStable {
		t.Errorf("expected stable placeholder trend, got %q", summary.Health.Trend)
	}

	if summary.Metrics.OverdueEmployees != 1 {
		t.Errorf("expected 1 overdue, got %d", summary.Metrics.OverdueEmployees)
	}
	if summary.Metrics.ActivitiesInPeriod != 3 {
		t.Errorf("expected 3 activities, got %d", summary.Metrics.ActivitiesInPeriod)
	}
	if want := float64(14+10+21) / 3; summary.Metrics.MeanDaysToCompletion != want {
		t.Errorf("expected mean days %v, got %v", want, summary.Metrics.MeanDaysToCompletion)
	}
	if summary.Metrics.EngagementRate != 0.75 {
		t.Errorf("expected engagement 0.75 (3 of 4 with activity), got %v", summary.Metrics.EngagementRate)
	}
	if summary.DerivationFailures != 1 {
		t.Errorf("expected derivation failures carried through, got %d", summary.DerivationFailures)
	}
}

func TestBuildSummary_AlertsCappedAndSorted(t *testing.T) {
	var employees []EmployeeWelfare
	for i := 0; i < 5; i++ {
		score := 8.0
		if i == 2 {
			score = 9.0 // highest must appear first
		}
		employees = append(employees, welfareFor(fmt.Sprintf("c%d", i), false, RiskCritical, score, day(30), 0))
	}

	summary := BuildSummary(AggregateInput{Employees: employees, Now: day(20)}, DefaultConfig())

	if len(summary.Alerts) != 3 {
		t.Fatalf("expected alerts capped at 3, got %d", len(summary.Alerts))
	}
	if summary.Alerts[0].EmployeeID != "c2" || summary.Alerts[0].Score != 9.0 {
		t.Errorf("expected highest score first, got %+v", summary.Alerts[0])
	}
	for _, alert := range summary.Alerts {
		if alert.Severity != string(RiskCritical) {
			t.Errorf("expected critical severity, got %q", alert.Severity)
		}
	}
}

func TestBuildSummary_AggregateOverdueAlert(t *testing.T) {
	var employees []EmployeeWelfare
	for i := 0; i < 6; i++ {
		employees = append(employees, welfareFor(fmt.Sprintf("o%d", i), true, RiskHigh, 7.0, day(1), 2))
	}

	summary := BuildSummary(AggregateInput{Employees: employees, Now: day(20)}, DefaultConfig())

	var found bool
	for _, alert := range summary.Alerts {
		if alert.Severity == "aggregate" {
			found = true
			if alert.EmployeeID != "" {
				t.Errorf("aggregate alert must not target an employee, got %q", alert.EmployeeID)
			}
		}
	}
	if !found {
		t.Error("expected an aggregate alert with 6 overdue employees (threshold 5)")
	}
	if len(summary.Recommendations) == 0 {
		t.Error("expected an overdue-backlog recommendation")
	}
}

func TestBuildSummary_HealthyPopulationRecommendation(t *testing.T) {
	in := AggregateInput{
		Employees: []EmployeeWelfare{
			welfareFor("a", false, RiskLow, 2.0, day(30), 3),
		},
		RecentActivities: []Activity{completedActivity("a1", day(18), 12)},
		Now:              day(20),
	}

	summary := BuildSummary(in, DefaultConfig())
	if len(summary.Alerts) != 0 {
		t.Errorf("expected no alerts, got %d", len(summary.Alerts))
	}
	if len(summary.Recommendations) != 1 {
		t.Fatalf("expected the single on-track recommendation, got %v", summary.Recommendations)
	}
}

func TestTrendFor_Baseline(t *testing.T) {
	tests := []struct {
		name     string
		rate     float64
		baseline *float64
		want     string
	}{
		{"no baseline is the stable placeholder", 0.9, nil, TrendStable},
		{"improving beyond the band", 0.9, floatPtr(0.8), TrendImproving},
		{"declining beyond the band", 0.7, floatPtr(0.8), TrendDeclining},
		{"within the band", 0.82, floatPtr(0.8), TrendStable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := trendFor(tt.rate, tt.baseline); got != tt.want {
				t.Errorf("trendFor(%v) = %q, want %q", tt.rate, got, tt.want)
			}
		})
	}
}

func TestBuildTrends(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	activities := []Activity{
		{ID: "a1", Status: StatusCompleted, Date: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)},
		{ID: "a2", Status: StatusOverdue, Date: time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC)},
		{ID: "a3", Status: StatusCompleted, Date: time.Date(2025, 4, 20, 0, 0, 0, 0, time.UTC)},
	}

	points := BuildTrends(activities, 3, now)
	if len(points) != 3 {
		t.Fatalf("expected 3 monthly buckets, got %d", len(points))
	}

	if points[0].Month != "2025-04" || points[1].Month != "2025-05" || points[2].Month != "2025-06" {
		t.Fatalf("expected chronological months, got %+v", points)
	}

	if points[0].Activities != 1 || points[0].CompletionRate != 1.0 {
		t.Errorf("unexpected april bucket: %+v", points[0])
	}
	if points[1].Activities != 0 || points[1].CompletionRate != 0 {
		t.Errorf("expected empty may bucket, got %+v", points[1])
	}
	if points[2].Activities != 2 || points[2].Completed != 1 || points[2].CompletionRate != 0.5 {
		t.Errorf("unexpected june bucket: %+v", points[2])
	}
}
