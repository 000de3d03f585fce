package welfare

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ActivityType classifies how a welfare check was conducted.
type ActivityType string

const (
	ActivityCall         ActivityType = "call"
	ActivityVisit        ActivityType = "visit"
	ActivityDogHandler   ActivityType = "dog_handler_check"
	ActivityMentalHealth ActivityType = "mental_health_check"
	ActivityGeneral      ActivityType = "general"
)

// Valid reports whether t is one of the known activity types.
func (t ActivityType) Valid() bool {
	switch t {
	case ActivityCall, ActivityVisit, ActivityDogHandler, ActivityMentalHealth, ActivityGeneral:
		return true
	default:
		return false
	}
}

// ActivityStatus records the outcome of a scheduled welfare check.
type ActivityStatus string

const (
	StatusCompleted ActivityStatus = "completed"
	StatusPending   ActivityStatus = "pending"
	StatusOverdue   ActivityStatus = "overdue"
)

// Valid reports whether s is one of the known activity statuses.
func (s ActivityStatus) Valid() bool {
	switch s {
	case StatusCompleted, StatusPending, StatusOverdue:
		return true
	default:
		return false
	}
}

// Employee is the subject of the welfare cycle. Deactivation is logical: the
// active flag is cleared and activities remain for history.
type Employee struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     *string   `json:"phone,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// Activity is one recorded welfare check. CycleNumber and DaysSincePrevious
// are snapshots stamped at insert time; CycleNumber is informational and
// carries no uniqueness or gap guarantee under concurrent writes.
type Activity struct {
	ID                string         `json:"id"`
	EmployeeID        string         `json:"employee_id"`
	Type              ActivityType   `json:"type"`
	Status            ActivityStatus `json:"status"`
	Date              time.Time      `json:"date"`
	Notes             string         `json:"notes,omitempty"`
	ConductedBy       string         `json:"conducted_by"`
	CycleNumber       int            `json:"cycle_number"`
	DaysSincePrevious *int           `json:"days_since_previous,omitempty"`
}

// EmployeeInput is the validated input for creating an employee.
type EmployeeInput struct {
	Name  string  `json:"name"`
	Phone *string `json:"phone,omitempty"`
}

// Validate rejects malformed employee input at the boundary.
func (in EmployeeInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required, validation.Length(1, 200)),
	)
}

// ActivityInput is the validated input for recording a welfare activity.
// Date-in-the-future is checked against the clock by the consumer, not here,
// so the struct validation stays pure.
type ActivityInput struct {
	EmployeeID  string         `json:"employee_id"`
	Type        ActivityType   `json:"type"`
	Status      ActivityStatus `json:"status"`
	Date        time.Time      `json:"date"`
	Notes       string         `json:"notes,omitempty"`
	ConductedBy string         `json:"conducted_by"`
}

// Validate rejects malformed activity input at the boundary.
func (in ActivityInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.EmployeeID, validation.Required),
		validation.Field(&in.Type, validation.Required, validation.By(activityTypeRule)),
		validation.Field(&in.Status, validation.Required, validation.By(activityStatusRule)),
		validation.Field(&in.Date, validation.Required),
		validation.Field(&in.ConductedBy, validation.Required),
		validation.Field(&in.Notes, validation.Length(0, 2000)),
	)
}

func activityTypeRule(value interface{}) error {
	t, _ := value.(ActivityType)
	if !t.Valid() {
		return validation.NewError("validation_activity_type", "must be a known activity type")
	}
	return nil
}

func activityStatusRule(value interface{}) error {
	s, _ := value.(ActivityStatus)
	if !s.Valid() {
		return validation.NewError("validation_activity_status", "must be a known activity status")
	}
	return nil
}

// DerivedState is the non-persisted per-employee derivation the scorer and
// aggregator consume. Computed on read, never stored.
type DerivedState struct {
	EmployeeID          string     `json:"employee_id"`
	NextDue             time.Time  `json:"next_due"`
	Overdue             bool       `json:"overdue"`
	DaysSinceLast       *int       `json:"days_since_last,omitempty"`
	LastActivity        *time.Time `json:"last_activity,omitempty"`
	TotalActivities     int        `json:"total_activities"`
	CompletedActivities int        `json:"completed_activities"`
	OverdueActivities   int        `json:"overdue_activities"`
	CompletionRatio     float64    `json:"completion_ratio"`
}

// RiskAssessment is the derived risk view of one employee. Rule names the
// scoring rule that fired, which keeps the cascade auditable from payloads.
type RiskAssessment struct {
	EmployeeID     string       `json:"employee_id"`
	Name           string       `json:"name"`
	Score          float64      `json:"score"`
	Category       RiskCategory `json:"category"`
	Rule           string       `json:"rule"`
	Recommendation string       `json:"recommendation"`
}

// EmployeeWelfare combines an employee with their derived state and risk.
// This is the engine's primary read payload.
type EmployeeWelfare struct {
	Employee Employee       `json:"employee"`
	State    DerivedState   `json:"state"`
	Risk     RiskAssessment `json:"risk"`
}

// Counts is the aggregate row counts the provider reports.
type Counts struct {
	Employees  int `json:"employees"`
	Activities int `json:"activities"`
}
