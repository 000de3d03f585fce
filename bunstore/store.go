package bunstore

import (
	"context"
	"time"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-welfare-cycle/welfare"
)

var _ welfare.DataProvider = (*Store)(nil)

// Store implements the engine's data provider on top of go-repository-bun
// repositories. It owns the write path as well: employee lifecycle and
// activity recording, including the insert-time cycle stamps.
type Store struct {
	employees  repository.Repository[EmployeeRecord]
	activities repository.Repository[ActivityRecord]
	clock      func() time.Time
}

// Option configures optional Store collaborators.
type Option func(*Store)

// WithClock overrides the store's time source. Used by tests and by callers
// that already inject a clock elsewhere.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.clock = now
		}
	}
}

// New wires a Store over the two repositories. Pass the base bun-backed
// repositories, or cached decorators of them; the Store does not care which.
func New(employees repository.Repository[EmployeeRecord], activities repository.Repository[ActivityRecord], opts ...Option) (*Store, error) {
	if employees == nil {
		return nil, goerrors.New("bunstore: employees repository is required", goerrors.CategoryValidation)
	}
	if activities == nil {
		return nil, goerrors.New("bunstore: activities repository is required", goerrors.CategoryValidation)
	}

	s := &Store{
		employees:  employees,
		activities: activities,
		clock:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// --- select criteria ---

func activeOnly(q *bun.SelectQuery) *bun.SelectQuery {
	return q.Where("e.active = ?", true)
}

func forEmployee(employeeID string) repository.SelectCriteria {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("a.employee_id = ?", employeeID)
	}
}

func newestFirst(q *bun.SelectQuery) *bun.SelectQuery {
	return q.Order("date DESC")
}

func limitTo(limit int) repository.SelectCriteria {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Limit(limit)
	}
}

func datedSince(since time.Time) repository.SelectCriteria {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("a.date >= ?", since)
	}
}

// --- reads (welfare.DataProvider) ---

func (s *Store) ActiveEmployees(ctx context.Context) ([]welfare.Employee, error) {
	records, _, err := s.employees.List(ctx, activeOnly)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryExternal, "bunstore: list active employees")
	}
	return employeesToDomain(records), nil
}

func (s *Store) EmployeeByID(ctx context.Context, id string) (welfare.Employee, error) {
	if id == "" {
		return welfare.Employee{}, goerrors.New("bunstore: employee id is required", goerrors.CategoryValidation)
	}
	record, err := s.employees.GetByID(ctx, id)
	if err != nil {
		return welfare.Employee{}, goerrors.Wrap(err, goerrors.CategoryExternal, "bunstore: get employee "+id)
	}
	return record.ToDomain(), nil
}

func (s *Store) ActivitiesFor(ctx context.Context, employeeID string, limit int) ([]welfare.Activity, error) {
	if employeeID == "" {
		return nil, goerrors.New("bunstore: employee id is required", goerrors.CategoryValidation)
	}
	criteria := []repository.SelectCriteria{forEmployee(employeeID), newestFirst}
	if limit > 0 {
		criteria = append(criteria, limitTo(limit))
	}
	records, _, err := s.activities.List(ctx, criteria...)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryExternal, "bunstore: list activities for "+employeeID)
	}
	return activitiesToDomain(records), nil
}

func (s *Store) AllActivities(ctx context.Context, since time.Time) ([]welfare.Activity, error) {
	records, _, err := s.activities.List(ctx, datedSince(since), newestFirst)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryExternal, "bunstore: list activities")
	}
	return activitiesToDomain(records), nil
}

func (s *Store) Counts(ctx context.Context) (welfare.Counts, error) {
	employees, err := s.employees.Count(ctx)
	if err != nil {
		return welfare.Counts{}, goerrors.Wrap(err, goerrors.CategoryExternal, "bunstore: count employees")
	}
	activities, err := s.activities.Count(ctx)
	if err != nil {
		return welfare.Counts{}, goerrors.Wrap(err, goerrors.CategoryExternal, "bunstore: count activities")
	}
	return welfare.Counts{Employees: employees, Activities: activities}, nil
}

// --- writes ---

// CreateEmployee validates and persists a new active employee. CreatedAt is
// stamped from the store clock.
func (s *Store) CreateEmployee(ctx context.Context, in welfare.EmployeeInput) (welfare.Employee, error) {
	if err := in.Validate(); err != nil {
		return welfare.Employee{}, goerrors.Wrap(err, goerrors.CategoryValidation, "bunstore: invalid employee input")
	}

	record := newEmployeeRecord(in, s.clock())
	created, err := s.employees.Create(ctx, record)
	if err != nil {
		return welfare.Employee{}, goerrors.Wrap(err, goerrors.CategoryExternal, "bunstore: create employee")
	}
	return created.ToDomain(), nil
}

// UpdateEmployee applies name and phone changes to an existing employee.
// Active state and CreatedAt are not touched here.
func (s *Store) UpdateEmployee(ctx context.Context, id string, in welfare.EmployeeInput) (welfare.Employee, error) {
	if id == "" {
		return welfare.Employee{}, goerrors.New("bunstore: employee id is required", goerrors.CategoryValidation)
	}
	if err := in.Validate(); err != nil {
		return welfare.Employee{}, goerrors.Wrap(err, goerrors.CategoryValidation, "bunstore: invalid employee input")
	}

	record, err := s.employees.GetByID(ctx, id)
	if err != nil {
		return welfare.Employee{}, goerrors.Wrap(err, goerrors.CategoryExternal, "bunstore: get employee "+id)
	}

	record.Name = in.Name
	record.Phone = in.Phone
	updated, err := s.employees.Update(ctx, record)
	if err != nil {
		return welfare.Employee{}, goerrors.Wrap(err, goerrors.CategoryExternal, "bunstore: update employee "+id)
	}
	return updated.ToDomain(), nil
}

// DeactivateEmployee clears the active flag. The row and its activities stay;
// derivation simply stops flagging the employee as overdue.
func (s *Store) DeactivateEmployee(ctx context.Context, id string) (welfare.Employee, error) {
	if id == "" {
		return welfare.Employee{}, goerrors.New("bunstore: employee id is required", goerrors.CategoryValidation)
	}

	record, err := s.employees.GetByID(ctx, id)
	if err != nil {
		return welfare.Employee{}, goerrors.Wrap(err, goerrors.CategoryExternal, "bunstore: get employee "+id)
	}
	if !record.Active {
		return record.ToDomain(), nil
	}

	record.Active = false
	updated, err := s.employees.Update(ctx, record)
	if err != nil {
		return welfare.Employee{}, goerrors.Wrap(err, goerrors.CategoryExternal, "bunstore: deactivate employee "+id)
	}
	return updated.ToDomain(), nil
}

// RecordActivity validates and persists a welfare activity, stamping the
// cycle number and the days-since-previous snapshot from the employee's
// current latest activity. A date before that latest activity is rejected:
// accepting it would stamp a negative gap and a cycle number that misorders
// the sequence. The stamps are informational: two concurrent inserts may
// observe the same prior activity and record the same cycle number.
func (s *Store) RecordActivity(ctx context.Context, in welfare.ActivityInput) (welfare.Activity, error) {
	if err := in.Validate(); err != nil {
		return welfare.Activity{}, goerrors.Wrap(err, goerrors.CategoryValidation, "bunstore: invalid activity input")
	}
	if err := welfare.ValidateActivityDate(in.Date, s.clock()); err != nil {
		return welfare.Activity{}, err
	}

	if _, err := s.employees.GetByID(ctx, in.EmployeeID); err != nil {
		return welfare.Activity{}, goerrors.Wrap(err, goerrors.CategoryExternal, "bunstore: get employee "+in.EmployeeID)
	}

	latest, _, err := s.activities.List(ctx, forEmployee(in.EmployeeID), newestFirst, limitTo(1))
	if err != nil {
		return welfare.Activity{}, goerrors.Wrap(err, goerrors.CategoryExternal, "bunstore: get latest activity for "+in.EmployeeID)
	}

	record := newActivityRecord(in)
	if len(latest) > 0 {
		prior := latest[0]
		if in.Date.Before(prior.Date) {
			return welfare.Activity{}, goerrors.New("bunstore: activity date predates the employee's latest activity", goerrors.CategoryValidation)
		}
		record.CycleNumber = welfare.NextCycleNumber(&prior.CycleNumber)
		record.DaysSincePrevious = welfare.DaysSince(&prior.Date, in.Date)
	} else {
		record.CycleNumber = welfare.NextCycleNumber(nil)
	}

	created, err := s.activities.Create(ctx, record)
	if err != nil {
		return welfare.Activity{}, goerrors.Wrap(err, goerrors.CategoryExternal, "bunstore: create activity")
	}
	return created.ToDomain(), nil
}
