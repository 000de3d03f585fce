package welfare

import (
	"testing"
	"time"
)

var baseDay = time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

// day returns baseDay plus n days.
func day(n int) time.Time {
	return baseDay.AddDate(0, 0, n)
}

func timePtr(t time.Time) *time.Time { return &t }

func intPtr(n int) *int { return &n }

func TestDeriveNextDue(t *testing.T) {
	tests := []struct {
		name         string
		createdAt    time.Time
		lastActivity *time.Time
		cycleDays    int
		want         time.Time
		wantErr      bool
	}{
		{"no activity uses creation date", day(0), nil, 14, day(14), false},
		{"last activity wins", day(0), timePtr(day(10)), 14, day(24), false},
		{"custom cycle length", day(0), nil, 7, day(7), false},
		{"zero cycle length rejected", day(0), nil, 0, time.Time{}, true},
		{"negative cycle length rejected", day(0), nil, -3, time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DeriveNextDue(tt.createdAt, tt.lastActivity, tt.cycleDays)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				if !IsInvalidInput(err) {
					t.Errorf("expected invalid-input error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestIsOverdue(t *testing.T) {
	tests := []struct {
		name    string
		nextDue time.Time
		now     time.Time
		active  bool
		want    bool
	}{
		{"past due and active", day(14), day(15), true, true},
		{"past due but inactive", day(14), day(15), false, false},
		{"due today is not overdue", day(14), day(14), true, false},
		{"not yet due", day(14), day(10), true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsOverdue(tt.nextDue, tt.now, tt.active); got != tt.want {
				t.Errorf("IsOverdue = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDaysSince(t *testing.T) {
	if got := DaysSince(nil, day(10)); got != nil {
		t.Errorf("expected nil for absent date, got %v", *got)
	}

	if got := DaysSince(timePtr(day(0)), day(10)); got == nil || *got != 10 {
		t.Errorf("expected 10 days, got %v", got)
	}

	// Partial days floor down.
	halfDay := day(0).Add(36 * time.Hour)
	if got := DaysSince(timePtr(day(0)), halfDay); got == nil || *got != 1 {
		t.Errorf("expected floor to 1 day, got %v", got)
	}

	if got := DaysSince(timePtr(day(3)), day(3)); got == nil || *got != 0 {
		t.Errorf("expected 0 days for same instant, got %v", got)
	}
}

func TestNextCycleNumber(t *testing.T) {
	if got := NextCycleNumber(nil); got != 1 {
		t.Errorf("expected first cycle to be 1, got %d", got)
	}
	if got := NextCycleNumber(intPtr(4)); got != 5 {
		t.Errorf("expected 5 after prior 4, got %d", got)
	}
	if got := NextCycleNumber(intPtr(0)); got != 1 {
		t.Errorf("expected nonsense prior to reset to 1, got %d", got)
	}
}

func TestDerive_NoActivityScenario(t *testing.T) {
	// Employee created on day 0, cycle 14, now day 15: overdue, no
	// days-since (no prior activity), critical risk.
	emp := Employee{ID: "e1", Name: "Alex", Active: true, CreatedAt: day(0)}

	state, err := Derive(emp, nil, day(15), 14)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !state.NextDue.Equal(day(14)) {
		t.Errorf("expected next due on day 14, got %v", state.NextDue)
	}
	if !state.Overdue {
		t.Error("expected overdue on day 15")
	}
	if state.DaysSinceLast != nil {
		t.Errorf("expected nil days-since with no activity, got %v", *state.DaysSinceLast)
	}

	risk := Assess(emp, state)
	if risk.Score != 8.0 {
		t.Errorf("expected score 8.0, got %v", risk.Score)
	}
	if risk.Category != RiskCritical {
		t.Errorf("expected critical category, got %s", risk.Category)
	}
}

func TestDerive_HealthyScenario(t *testing.T) {
	// One completed activity on day 0, cycle 14, now day 10: not overdue,
	// 10 days since, not critical.
	emp := Employee{ID: "e1", Name: "Alex", Active: true, CreatedAt: day(0)}
	history := []Activity{{
		ID: "a1", EmployeeID: "e1", Type: ActivityCall, Status: StatusCompleted,
		Date: day(0), ConductedBy: "supervisor", CycleNumber: 1,
	}}

	state, err := Derive(emp, history, day(10), 14)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if state.Overdue {
		t.Error("expected not overdue on day 10")
	}
	if state.DaysSinceLast == nil || *state.DaysSinceLast != 10 {
		t.Errorf("expected 10 days since last, got %v", state.DaysSinceLast)
	}
	if !state.NextDue.Equal(day(14)) {
		t.Errorf("expected next due on day 14, got %v", state.NextDue)
	}
	if state.CompletionRatio != 1.0 {
		t.Errorf("expected completion ratio 1.0, got %v", state.CompletionRatio)
	}

	if risk := Assess(emp, state); risk.Category == RiskCritical {
		t.Errorf("expected non-critical category, got %s with score %v", risk.Category, risk.Score)
	}
}

func TestDerive_InactiveEmployeeNeverOverdue(t *testing.T) {
	emp := Employee{ID: "e1", Name: "Alex", Active: false, CreatedAt: day(0)}

	state, err := Derive(emp, nil, day(30), 14)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state.Overdue {
		t.Error("inactive employee must not be overdue")
	}
}

func TestDerive_MostRecentActivityWins(t *testing.T) {
	emp := Employee{ID: "e1", Name: "Alex", Active: true, CreatedAt: day(0)}
	history := []Activity{
		{ID: "a2", EmployeeID: "e1", Type: ActivityVisit, Status: StatusCompleted, Date: day(8), CycleNumber: 2},
		{ID: "a1", EmployeeID: "e1", Type: ActivityCall, Status: StatusOverdue, Date: day(2), CycleNumber: 1},
	}

	state, err := Derive(emp, history, day(10), 14)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if state.LastActivity == nil || !state.LastActivity.Equal(day(8)) {
		t.Errorf("expected last activity on day 8, got %v", state.LastActivity)
	}
	if !state.NextDue.Equal(day(22)) {
		t.Errorf("expected next due on day 22, got %v", state.NextDue)
	}
	if state.CompletedActivities != 1 || state.OverdueActivities != 1 {
		t.Errorf("expected 1 completed and 1 overdue, got %d/%d",
			state.CompletedActivities, state.OverdueActivities)
	}
	if state.CompletionRatio != 0.5 {
		t.Errorf("expected completion ratio 0.5, got %v", state.CompletionRatio)
	}
}

func TestDerive_RejectsMalformedInput(t *testing.T) {
	now := day(10)
	emp := Employee{ID: "e1", Name: "Alex", Active: true, CreatedAt: day(0)}

	tests := []struct {
		name    string
		emp     Employee
		history []Activity
	}{
		{"missing employee id", Employee{Active: true, CreatedAt: day(0)}, nil},
		{"employee created in the future", Employee{ID: "e2", Active: true, CreatedAt: day(20)}, nil},
		{"future-dated activity", emp, []Activity{{ID: "a1", EmployeeID: "e1", Date: day(12)}}},
		{"activity predating employee", emp, []Activity{{ID: "a1", EmployeeID: "e1", Date: day(-2)}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Derive(tt.emp, tt.history, now, 14)
			if err == nil {
				t.Fatal("expected error")
			}
			if !IsInvalidInput(err) {
				t.Errorf("expected invalid-input error, got %v", err)
			}
		})
	}
}

func TestValidateActivityDate(t *testing.T) {
	if err := ValidateActivityDate(day(5), day(10)); err != nil {
		t.Errorf("past date must be accepted: %v", err)
	}
	if err := ValidateActivityDate(day(10), day(10)); err != nil {
		t.Errorf("today must be accepted: %v", err)
	}
	if err := ValidateActivityDate(day(11), day(10)); err == nil {
		t.Error("future date must be rejected")
	}
}
