package welfare

import (
	"fmt"
	"regexp"

	"github.com/goliatone/go-welfare-cycle/cache"
)

// Scope selects a cache-key family for explicit invalidation requests.
type Scope string

const (
	ScopeEmployee  Scope = "employee"
	ScopeActivity  Scope = "activity"
	ScopeAnalytics Scope = "analytics"
	ScopeAll       Scope = "all"
)

// Coordinator maps domain write events to the cache-key patterns that must
// be evicted. The mapping is fixed; callers invoke the matching event method
// synchronously after a successful write and before responding, which bounds
// staleness to at most one TTL for writes processed before invalidation ran.
// Invalidation must never be skipped on error paths that still modified data.
type Coordinator struct {
	store cache.Store
}

// NewCoordinator creates a Coordinator evicting from the given store.
func NewCoordinator(store cache.Store) *Coordinator {
	return &Coordinator{store: store}
}

// Event → pattern table. Patterns anchor on the key families documented in
// the cache package.
var (
	employeePatterns = []string{
		"^employees:",
		"^dashboard:",
		"^analytics:risk-scores",
		"^analytics:executive-summary",
	}
	activityPatterns = []string{
		"^activities:",
		"^dashboard:",
		"^analytics:",
	}
	analyticsPattern = "^analytics:"
	allPattern       = ".*"
)

// historyPattern matches one employee's cached history family, or every
// employee's when id is empty. The ID is normalized with cache.Segment so the
// pattern matches the key Key built from the same ID, separator characters
// included.
func historyPattern(employeeID string) string {
	if employeeID == "" {
		return "^employee:[^:]+:history"
	}
	return "^employee:" + regexp.QuoteMeta(cache.Segment(employeeID)) + ":history"
}

// EmployeeChanged evicts after an employee was created or updated.
func (c *Coordinator) EmployeeChanged() error {
	return c.apply(employeePatterns)
}

// EmployeeDeleted evicts everything. Deletion changes cardinality broadly
// enough that the staleness risk of partial invalidation outweighs the
// recompute cost. Counters are left intact; only a hard clear resets them.
func (c *Coordinator) EmployeeDeleted() error {
	return c.apply([]string{allPattern})
}

// ActivityRecorded evicts after an activity was recorded or updated for the
// given employee.
func (c *Coordinator) ActivityRecorded(employeeID string) error {
	return c.apply(append(append([]string{}, activityPatterns...), historyPattern(employeeID)))
}

// HardClear removes every entry and resets the hit/miss counters.
func (c *Coordinator) HardClear() {
	c.store.Clear()
}

// InvalidateScope serves explicit invalidation requests. Scope "all" is the
// hard clear; it is idempotent, so repeated calls succeed on an already-empty
// store.
func (c *Coordinator) InvalidateScope(scope Scope) error {
	switch scope {
	case ScopeEmployee:
		return c.EmployeeChanged()
	case ScopeActivity:
		return c.ActivityRecorded("")
	case ScopeAnalytics:
		return c.apply([]string{analyticsPattern})
	case ScopeAll:
		c.HardClear()
		return nil
	default:
		return invalidInput(fmt.Sprintf("unknown invalidation scope %q", scope))
	}
}

func (c *Coordinator) apply(patterns []string) error {
	for _, pattern := range patterns {
		if _, err := c.store.Invalidate(pattern); err != nil {
			return err
		}
	}
	return nil
}
