package models

// TardinessEvent marks a clock-in strictly later than the shift start.
// Minute and second values derive from the same millisecond delta.
type TardinessEvent struct {
	Record      AttendanceRecord
	MinutesLate int
	SecondsLate int
}

// EarlyLeaveEvent marks a clock-out strictly earlier than the shift end.
type EarlyLeaveEvent struct {
	Record       AttendanceRecord
	MinutesEarly int
}

// OvertimeEvent is an approved overtime attributed to its overtime date.
type OvertimeEvent struct {
	Record          OvertimeRecord
	MinutesOvertime int
}

// AggregateRow is the per-employee reduction of a set of events.
// Rows are keyed by employee id; events without one never form a row.
type AggregateRow struct {
	Identity
	Name         string
	Count        int
	TotalMinutes int
}
