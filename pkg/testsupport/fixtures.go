package testsupport

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/goliatone/go-welfare-cycle/welfare"
)

// LoadFixture loads test data from a fixture file.
// The path is relative to the test package directory.
func LoadFixture(t *testing.T, path string) []byte {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to load fixture from %s: %v", path, err)
	}

	return data
}

// LoadFixtureJSON loads JSON test data from a fixture file and unmarshals it.
// The path is relative to the test package directory.
func LoadFixtureJSON(t *testing.T, path string, dest interface{}) {
	t.Helper()

	data := LoadFixture(t, path)
	if err := json.Unmarshal(data, dest); err != nil {
		t.Fatalf("failed to unmarshal JSON fixture from %s: %v", path, err)
	}
}

// FixturePath constructs a path to a fixture file relative to the testdata directory.
func FixturePath(filename string) string {
	return filepath.Join("testdata", filename)
}

// Clock is a fixed, manually advanced clock for tests that cross TTL or
// due-date boundaries without sleeping.
type Clock struct {
	Current time.Time
}

// NewClock creates a fixed clock at the given instant.
func NewClock(at time.Time) *Clock {
	return &Clock{Current: at}
}

// Now implements welfare.Clock.
func (c *Clock) Now() time.Time { return c.Current }

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) { c.Current = c.Current.Add(d) }

// AdvanceDays moves the clock forward by whole days.
func (c *Clock) AdvanceDays(days int) { c.Current = c.Current.AddDate(0, 0, days) }

// Employee builds an active employee created at the given instant.
func Employee(id, name string, createdAt time.Time) welfare.Employee {
	return welfare.Employee{
		ID:        id,
		Name:      name,
		Active:    true,
		CreatedAt: createdAt,
	}
}

// CompletedActivity builds a completed welfare check for an employee.
func CompletedActivity(id, employeeID string, date time.Time, cycle int) welfare.Activity {
	return welfare.Activity{
		ID:          id,
		EmployeeID:  employeeID,
		Type:        welfare.ActivityCall,
		Status:      welfare.StatusCompleted,
		Date:        date,
		ConductedBy: "test supervisor",
		CycleNumber: cycle,
	}
}

// History builds a completed activity history for one employee at the given
// day offsets from base, returned most-recent-first the way providers report
// it. Cycle numbers and days-since-previous snapshots are stamped the way the
// write path would.
func History(employeeID string, base time.Time, dayOffsets ...int) []welfare.Activity {
	history := make([]welfare.Activity, 0, len(dayOffsets))
	prevOffset := 0

	for i, offset := range dayOffsets {
		activity := CompletedActivity(
			employeeID+"-a"+strconv.Itoa(i+1),
			employeeID,
			base.AddDate(0, 0, offset),
			i+1,
		)
		if i > 0 {
			gap := offset - prevOffset
			activity.DaysSincePrevious = &gap
		}
		prevOffset = offset
		history = append(history, activity)
	}

	// Most-recent-first.
	for i, j := 0, len(history)-1; i < j; i, j = i+1, j-1 {
		history[i], history[j] = history[j], history[i]
	}
	return history
}
