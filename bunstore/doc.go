// Package bunstore implements the welfare engine's data provider on
// go-repository-bun repositories over uptrace/bun.
//
// The package stays at the repository.Repository[T] interface level: callers
// construct the employee and activity repositories over a bun.DB (OpenSQLite
// and OpenPostgres build one, CreateSchema provisions the tables) and hand
// them to New. Reads satisfy welfare.DataProvider; writes own the employee
// lifecycle and activity recording.
//
// RecordActivity stamps two insert-time snapshots on every row: the cycle
// number (prior latest activity's number plus one, 1 for the first) and the
// whole-day gap since that prior activity. Both are informational and are
// never recomputed after insert; concurrent inserts for the same employee may
// observe the same prior row and stamp duplicate cycle numbers.
//
// Deactivation is logical. DeactivateEmployee clears the active flag and
// leaves the row and its activities in place, so history queries keep
// working while derivation stops flagging the employee as overdue.
package bunstore
