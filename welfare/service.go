package welfare

import (
	"context"
	"sort"
	"time"

	"github.com/goliatone/go-welfare-cycle/cache"
)

// Clock provides the current time. Injectable so tests can pin "now".
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

// DataProvider is the external data-access collaborator the engine reads
// from. It is the only component that performs real I/O; implementations own
// timeouts and cancellation through ctx.
type DataProvider interface {
	// ActiveEmployees returns all employees whose active flag is set.
	ActiveEmployees(ctx context.Context) ([]Employee, error)

	// EmployeeByID returns one employee, active or not.
	EmployeeByID(ctx context.Context, id string) (Employee, error)

	// ActivitiesFor returns up to limit activities for one employee,
	// most-recent-first.
	ActivitiesFor(ctx context.Context, employeeID string, limit int) ([]Activity, error)

	// AllActivities returns all activities dated at or after since,
	// most-recent-first.
	AllActivities(ctx context.Context, since time.Time) ([]Activity, error)

	// Counts reports aggregate row counts.
	Counts(ctx context.Context) (Counts, error)
}

// Cache key families. Fixed and enumerable so the coordinator's patterns stay
// auditable against them.
const (
	keyEmployeesWelfare = "employees:welfare"
	keyDashboardStats   = "dashboard:stats"
	keyRiskScores       = "analytics:risk-scores"
	keyExecutiveSummary = "analytics:executive-summary"
)

// Service is the welfare engine's caller-facing surface. Reads flow
// provider -> cycle calculator -> risk scorer -> aggregator -> cache; writes
// happen outside the engine and report back through the event hooks, which
// route to the invalidation coordinator.
type Service struct {
	provider    DataProvider
	store       cache.Store
	coordinator *Coordinator
	cfg         Config
	clock       Clock
}

// NewService creates the engine service. A nil clock selects the real clock.
func NewService(provider DataProvider, store cache.Store, cfg Config, clock Clock) (*Service, error) {
	if provider == nil {
		return nil, invalidInput("data provider is required")
	}
	if store == nil {
		return nil, invalidInput("cache store is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if clock == nil {
		clock = realClock{}
	}

	return &Service{
		provider:    provider,
		store:       store,
		coordinator: NewCoordinator(store),
		cfg:         cfg,
		clock:       clock,
	}, nil
}

// Config returns a copy of the engine configuration.
func (s *Service) Config() Config {
	return s.cfg
}

// CacheStats reports the underlying store's size and hit/miss counters.
func (s *Service) CacheStats() cache.Stats {
	return s.store.Stats()
}

// GetEmployeesWithWelfare returns every active employee with derived cycle
// state and risk assessment attached.
func (s *Service) GetEmployeesWithWelfare(ctx context.Context) ([]EmployeeWelfare, error) {
	return cache.GetOrFetch(ctx, s.store, keyEmployeesWelfare, s.cfg.EmployeeTTL,
		func(ctx context.Context) ([]EmployeeWelfare, error) {
			employees, _, err := s.collect(ctx)
			return employees, err
		})
}

// GetDashboardStats returns the dashboard aggregate.
func (s *Service) GetDashboardStats(ctx context.Context) (DashboardStats, error) {
	return cache.GetOrFetch(ctx, s.store, keyDashboardStats, s.cfg.DashboardTTL,
		func(ctx context.Context) (DashboardStats, error) {
			in, err := s.aggregateInput(ctx)
			if err != nil {
				return DashboardStats{}, err
			}
			return BuildDashboard(in, s.cfg), nil
		})
}

// GetEmployeeRiskScores returns every active employee's risk assessment,
// highest score first.
func (s *Service) GetEmployeeRiskScores(ctx context.Context) ([]RiskAssessment, error) {
	return cache.GetOrFetch(ctx, s.store, keyRiskScores, s.cfg.AnalyticsTTL,
		func(ctx context.Context) ([]RiskAssessment, error) {
			employees, _, err := s.collect(ctx)
			if err != nil {
				return nil, err
			}
			scores := make([]RiskAssessment, 0, len(employees))
			for _, ew := range employees {
				scores = append(scores, ew.Risk)
			}
			sortAssessments(scores)
			return scores, nil
		})
}

// GetExecutiveSummary returns the executive summary aggregate. Without a
// stored historical baseline the trend tag is the documented "stable"
// placeholder; BuildSummary accepts a baseline for callers that keep one.
func (s *Service) GetExecutiveSummary(ctx context.Context) (ExecutiveSummary, error) {
	return cache.GetOrFetch(ctx, s.store, keyExecutiveSummary, s.cfg.AnalyticsTTL,
		func(ctx context.Context) (ExecutiveSummary, error) {
			in, err := s.aggregateInput(ctx)
			if err != nil {
				return ExecutiveSummary{}, err
			}
			return BuildSummary(in, s.cfg), nil
		})
}

// GetWelfareTrends returns per-month activity volume and completion for the
// trailing months (1 to 24).
func (s *Service) GetWelfareTrends(ctx context.Context, months int) ([]TrendPoint, error) {
	if months < 1 || months > 24 {
		return nil, invalidInput("months must be between 1 and 24")
	}

	key := cache.Key("analytics", "trends", months)
	return cache.GetOrFetch(ctx, s.store, key, s.cfg.TrendsTTL,
		func(ctx context.Context) ([]TrendPoint, error) {
			now := s.clock.Now()
			since := now.AddDate(0, -months, 0)
			activities, err := s.provider.AllActivities(ctx, since)
			if err != nil {
				return nil, dataUnavailable(err, "list activities for trends")
			}
			return BuildTrends(activities, months, now), nil
		})
}

// GetEmployeeHistory returns one employee's activity history,
// most-recent-first. A non-positive limit selects the configured default.
func (s *Service) GetEmployeeHistory(ctx context.Context, employeeID string, limit int) ([]Activity, error) {
	if employeeID == "" {
		return nil, invalidInput("employee id is required")
	}
	if limit <= 0 {
		limit = s.cfg.HistoryLimit
	}

	key := cache.Key("employee", employeeID, "history", limit)
	return cache.GetOrFetch(ctx, s.store, key, s.cfg.EmployeeTTL,
		func(ctx context.Context) ([]Activity, error) {
			history, err := s.provider.ActivitiesFor(ctx, employeeID, limit)
			if err != nil {
				return nil, dataUnavailable(err, "list employee history")
			}
			return history, nil
		})
}

// InvalidateCaches serves explicit invalidation requests by scope.
func (s *Service) InvalidateCaches(scope Scope) error {
	return s.coordinator.InvalidateScope(scope)
}

// EmployeeChanged must be called synchronously after an employee row was
// created or updated, before the caller responds.
func (s *Service) EmployeeChanged() error {
	return s.coordinator.EmployeeChanged()
}

// EmployeeDeleted must be called synchronously after an employee was
// logically deleted.
func (s *Service) EmployeeDeleted() error {
	return s.coordinator.EmployeeDeleted()
}

// ActivityRecorded must be called synchronously after an activity was
// recorded or updated for the given employee.
func (s *Service) ActivityRecorded(employeeID string) error {
	return s.coordinator.ActivityRecorded(employeeID)
}

// collect derives state and risk for every active employee. A provider
// failure aborts; a per-employee derivation failure is skipped and counted
// unless StrictDerivation is set. The skip accounting keeps partial failure
// visible instead of silently shrinking the aggregate.
func (s *Service) collect(ctx context.Context) ([]EmployeeWelfare, int, error) {
	employees, err := s.provider.ActiveEmployees(ctx)
	if err != nil {
		return nil, 0, dataUnavailable(err, "list active employees")
	}

	now := s.clock.Now()
	result := make([]EmployeeWelfare, 0, len(employees))
	failures := 0

	for _, emp := range employees {
		history, err := s.provider.ActivitiesFor(ctx, emp.ID, s.cfg.HistoryLimit)
		if err != nil {
			return nil, 0, dataUnavailable(err, "list employee activities")
		}

		state, err := Derive(emp, history, now, s.cfg.CycleLengthDays)
		if err != nil {
			if s.cfg.StrictDerivation {
				return nil, 0, err
			}
			failures++
			continue
		}

		result = append(result, EmployeeWelfare{
			Employee: emp,
			State:    state,
			Risk:     Assess(emp, state),
		})
	}

	return result, failures, nil
}

func (s *Service) aggregateInput(ctx context.Context) (AggregateInput, error) {
	employees, failures, err := s.collect(ctx)
	if err != nil {
		return AggregateInput{}, err
	}

	now := s.clock.Now()
	since := now.AddDate(0, 0, -s.cfg.RecentWindowDays)
	recent, err := s.provider.AllActivities(ctx, since)
	if err != nil {
		return AggregateInput{}, dataUnavailable(err, "list recent activities")
	}

	return AggregateInput{
		Employees:          employees,
		RecentActivities:   recent,
		Now:                now,
		DerivationFailures: failures,
	}, nil
}

func sortAssessments(scores []RiskAssessment) {
	sort.Slice(scores, func(i, j int) bool {
		if scores[i].Score != scores[j].Score {
			return scores[i].Score > scores[j].Score
		}
		return scores[i].EmployeeID < scores[j].EmployeeID
	})
}
