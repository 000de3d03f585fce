package welfare

import "time"

// Config holds the tunable constants of the welfare engine. Cycle length and
// the per-category cache TTLs are deliberately configuration, not inline
// constants, so tests and deployments can shrink or stretch them.
type Config struct {
	// CycleLengthDays is the fixed interval after which a new welfare check
	// becomes due. Must be greater than 0. Default: 14.
	CycleLengthDays int

	// HistoryLimit caps how many activities are fetched per employee when
	// deriving state. Must be greater than 0.
	HistoryLimit int

	// RecentWindowDays is the trailing window used for completion-rate and
	// activity-volume metrics. Must be greater than 0. Default: 30.
	RecentWindowDays int

	// AlertLimit caps how many per-employee critical alerts the executive
	// summary carries, keeping the payload bounded. Must be greater than 0.
	AlertLimit int

	// OverdueAlertThreshold triggers an aggregate alert when the count of
	// currently-overdue employees exceeds it. Must be non-negative.
	OverdueAlertThreshold int

	// StrictDerivation aborts an aggregate on the first per-employee
	// derivation failure instead of skipping and counting it.
	StrictDerivation bool

	// Per-category cache TTLs, ordered by volatility. All must be greater
	// than 0.
	EmployeeTTL  time.Duration
	DashboardTTL time.Duration
	AnalyticsTTL time.Duration
	TrendsTTL    time.Duration
}

// DefaultConfig returns a Config with the production defaults: a 14-day
// cycle and TTLs between 5 and 30 minutes depending on volatility.
func DefaultConfig() Config {
	return Config{
		CycleLengthDays:       14,
		HistoryLimit:          50,
		RecentWindowDays:      30,
		AlertLimit:            3,
		OverdueAlertThreshold: 5,
		EmployeeTTL:           5 * time.Minute,
		DashboardTTL:          5 * time.Minute,
		AnalyticsTTL:          15 * time.Minute,
		TrendsTTL:             30 * time.Minute,
	}
}

// Validate checks if the configuration values are valid.
func (c Config) Validate() error {
	if c.CycleLengthDays <= 0 {
		return &ConfigError{Field: "CycleLengthDays", Message: "must be greater than 0"}
	}
	if c.HistoryLimit <= 0 {
		return &ConfigError{Field: "HistoryLimit", Message: "must be greater than 0"}
	}
	if c.RecentWindowDays <= 0 {
		return &ConfigError{Field: "RecentWindowDays", Message: "must be greater than 0"}
	}
	if c.AlertLimit <= 0 {
		return &ConfigError{Field: "AlertLimit", Message: "must be greater than 0"}
	}
	if c.OverdueAlertThreshold < 0 {
		return &ConfigError{Field: "OverdueAlertThreshold", Message: "must be non-negative"}
	}
	if c.EmployeeTTL <= 0 {
		return &ConfigError{Field: "EmployeeTTL", Message: "must be greater than 0"}
	}
	if c.DashboardTTL <= 0 {
		return &ConfigError{Field: "DashboardTTL", Message: "must be greater than 0"}
	}
	if c.AnalyticsTTL <= 0 {
		return &ConfigError{Field: "AnalyticsTTL", Message: "must be greater than 0"}
	}
	if c.TrendsTTL <= 0 {
		return &ConfigError{Field: "TrendsTTL", Message: "must be greater than 0"}
	}
	return nil
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "config error in field " + e.Field + ": " + e.Message
}
