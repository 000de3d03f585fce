// Package welfare implements the welfare-cycle scheduling and analytics
// engine: deriving per-employee due dates and overdue status from activity
// history, scoring derived state into risk bands, aggregating the population
// into dashboard and executive payloads, and keeping the short-lived cache in
// front of it all coherent with domain writes.
//
// # Data Flow
//
// Reads flow one direction:
//
//	provider rows -> Derive -> Assess -> BuildDashboard/BuildSummary -> cache -> caller
//
// Writes flow the other way: a mutating operation (owned by the caller, not
// this package) reports back through Service.EmployeeChanged,
// Service.EmployeeDeleted or Service.ActivityRecorded, and the Coordinator
// evicts the affected key families so the next read recomputes.
//
// # Layers
//
//   - Cycle calculator (cycle.go): pure derivations (next-due date, overdue
//     flag, days since last activity, cycle numbering).
//   - Risk scorer (risk.go): an ordered rule cascade mapping derived state to
//     a score in [0,10] and one of four categories.
//   - Aggregator (aggregate.go): pure folds over already-derived data; it
//     performs no data access of its own.
//   - Service (service.go): read-through orchestration over a DataProvider
//     and a cache.Store.
//   - Coordinator (invalidation.go): the fixed event-to-pattern eviction
//     table.
//
// # Failure Semantics
//
// Provider failures surface as data-unavailable errors (IsDataUnavailable)
// so callers can distinguish an empty population from an unreachable source.
// Invalid derivation input, such as a future-dated activity or a non-positive
// cycle length, fails fast (IsInvalidInput). A cache miss is never an error. By
// default an individual employee's derivation failure is skipped and counted
// in the summary's DerivationFailures; Config.StrictDerivation turns it into
// an aborting failure.
//
// # Consistency
//
// The cache is a single-process, best-effort optimization layer, not a system
// of record. With invalidation invoked synchronously after successful writes,
// staleness is bounded by one TTL for writes that raced a concurrent read's
// recompute. Nothing here coordinates across processes.
package welfare
