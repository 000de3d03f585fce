package welfare

import (
	"fmt"
	"math"
	"time"
)

// Cycle calculator: pure derivations from an employee's activity history.
// None of these functions touch storage or the cache.

// DeriveNextDue computes when the next welfare check is due: the last
// activity date plus the cycle length, or the creation date plus the cycle
// length when no activity exists yet.
func DeriveNextDue(createdAt time.Time, lastActivity *time.Time, cycleLengthDays int) (time.Time, error) {
	if cycleLengthDays <= 0 {
		return time.Time{}, invalidInput(fmt.Sprintf("cycle length must be positive, got %d", cycleLengthDays))
	}

	base := createdAt
	if lastActivity != nil {
		base = *lastActivity
	}
	return base.AddDate(0, 0, cycleLengthDays), nil
}

// IsOverdue reports whether an active employee's next-due date has passed.
// The comparison is strict: due today is not overdue, and inactive employees
// are never overdue.
func IsOverdue(nextDue, now time.Time, active bool) bool {
	return active && nextDue.Before(now)
}

// DaysSince returns the floor of whole days between date and now, or nil when
// date is absent. The result is never negative as long as date <= now; future
// dates are rejected upstream before derivation.
func DaysSince(date *time.Time, now time.Time) *int {
	if date == nil {
		return nil
	}
	days := int(math.Floor(now.Sub(*date).Hours() / 24))
	return &days
}

// NextCycleNumber returns the cycle number for a new activity: 1 when no
// prior activity exists, otherwise the prior number plus one.
//
// Concurrent activity creation for the same employee can race on this
// sequence; the number is informational, at-least-once correct, and carries
// no gap or uniqueness guarantee. Callers needing strict ordering must
// serialize per employee externally.
func NextCycleNumber(prior *int) int {
	if prior == nil || *prior < 1 {
		return 1
	}
	return *prior + 1
}

// Derive computes an employee's full derived state from their activity
// history. History is expected most-recent-first, as the provider returns it.
//
// Inputs are validated before any arithmetic: a non-positive cycle length, a
// creation date in the future, or an activity dated in the future or before
// the employee existed all fail fast rather than produce a silently
// nonsensical due date.
func Derive(emp Employee, history []Activity, now time.Time, cycleLengthDays int) (DerivedState, error) {
	if emp.ID == "" {
		return DerivedState{}, invalidInput("employee id is required")
	}
	if emp.CreatedAt.After(now) {
		return DerivedState{}, invalidInput(fmt.Sprintf("employee %s created in the future", emp.ID))
	}

	var (
		lastActivity *time.Time
		completed    int
		overdue      int
	)
	for _, activity := range history {
		if activity.Date.After(now) {
			return DerivedState{}, invalidInput(fmt.Sprintf("activity %s dated in the future", activity.ID))
		}
		if activity.Date.Before(emp.CreatedAt) {
			return DerivedState{}, invalidInput(fmt.Sprintf("activity %s predates employee %s", activity.ID, emp.ID))
		}
		if lastActivity == nil || activity.Date.After(*lastActivity) {
			d := activity.Date
			lastActivity = &d
		}
		switch activity.Status {
		case StatusCompleted:
			completed++
		case StatusOverdue:
			overdue++
		}
	}

	nextDue, err := DeriveNextDue(emp.CreatedAt, lastActivity, cycleLengthDays)
	if err != nil {
		return DerivedState{}, err
	}

	var ratio float64
	if len(history) > 0 {
		ratio = float64(completed) / float64(len(history))
	}

	return DerivedState{
		EmployeeID:          emp.ID,
		NextDue:             nextDue,
		Overdue:             IsOverdue(nextDue, now, emp.Active),
		DaysSinceLast:       DaysSince(lastActivity, now),
		LastActivity:        lastActivity,
		TotalActivities:     len(history),
		CompletedActivities: completed,
		OverdueActivities:   overdue,
		CompletionRatio:     ratio,
	}, nil
}

// ValidateActivityDate rejects activity dates in the future relative to now.
// Write paths call this before stamping insert-time snapshots.
func ValidateActivityDate(date, now time.Time) error {
	if date.After(now) {
		return invalidInput("activity date must not be in the future")
	}
	return nil
}
