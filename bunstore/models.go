package bunstore

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-welfare-cycle/welfare"
)

// EmployeeRecord is the persistence shape of an employee row.
type EmployeeRecord struct {
	bun.BaseModel `bun:"table:employees,alias:e"`

	ID        string    `bun:"id,pk" json:"id"`
	Name      string    `bun:"name,notnull" json:"name"`
	Phone     *string   `bun:"phone" json:"phone,omitempty"`
	Active    bool      `bun:"active,notnull" json:"active"`
	CreatedAt time.Time `bun:"created_at,notnull" json:"created_at"`
}

// ActivityRecord is the persistence shape of a welfare activity row.
// CycleNumber and DaysSincePrevious are stamped once at insert and never
// recomputed afterwards.
type ActivityRecord struct {
	bun.BaseModel `bun:"table:activities,alias:a"`

	ID                string    `bun:"id,pk" json:"id"`
	EmployeeID        string    `bun:"employee_id,notnull" json:"employee_id"`
	Type              string    `bun:"type,notnull" json:"type"`
	Status            string    `bun:"status,notnull" json:"status"`
	Date              time.Time `bun:"date,notnull" json:"date"`
	Notes             string    `bun:"notes" json:"notes,omitempty"`
	ConductedBy       string    `bun:"conducted_by,notnull" json:"conducted_by"`
	CycleNumber       int       `bun:"cycle_number,notnull" json:"cycle_number"`
	DaysSincePrevious *int      `bun:"days_since_previous" json:"days_since_previous,omitempty"`
}

// ToDomain converts the persisted row into the engine's employee type.
func (r EmployeeRecord) ToDomain() welfare.Employee {
	return welfare.Employee{
		ID:        r.ID,
		Name:      r.Name,
		Phone:     r.Phone,
		Active:    r.Active,
		CreatedAt: r.CreatedAt,
	}
}

// ToDomain converts the persisted row into the engine's activity type.
func (r ActivityRecord) ToDomain() welfare.Activity {
	return welfare.Activity{
		ID:                r.ID,
		EmployeeID:        r.EmployeeID,
		Type:              welfare.ActivityType(r.Type),
		Status:            welfare.ActivityStatus(r.Status),
		Date:              r.Date,
		Notes:             r.Notes,
		ConductedBy:       r.ConductedBy,
		CycleNumber:       r.CycleNumber,
		DaysSincePrevious: r.DaysSincePrevious,
	}
}

func newEmployeeRecord(in welfare.EmployeeInput, createdAt time.Time) EmployeeRecord {
	return EmployeeRecord{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Phone:     in.Phone,
		Active:    true,
		CreatedAt: createdAt,
	}
}

func newActivityRecord(in welfare.ActivityInput) ActivityRecord {
	return ActivityRecord{
		ID:          uuid.New().String(),
		EmployeeID:  in.EmployeeID,
		Type:        string(in.Type),
		Status:      string(in.Status),
		Date:        in.Date,
		Notes:       in.Notes,
		ConductedBy: in.ConductedBy,
	}
}

func employeesToDomain(records []EmployeeRecord) []welfare.Employee {
	out := make([]welfare.Employee, 0, len(records))
	for _, r := range records {
		out = append(out, r.ToDomain())
	}
	return out
}

func activitiesToDomain(records []ActivityRecord) []welfare.Activity {
	out := make([]welfare.Activity, 0, len(records))
	for _, r := range records {
		out = append(out, r.ToDomain())
	}
	return out
}
