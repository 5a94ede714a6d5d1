package models

// Attendance code and day-type tags as emitted by GreatDay.
const (
	AttendCodeAbsent = "ABS"
	DayTypeOff       = "OFF"
)

// AttendanceRecord is one normalised attendance row. Timestamp fields
// keep the raw GreatDay values and are parsed with ParseWIBTime at the
// point of use; an absent timestamp is an empty string.
type AttendanceRecord struct {
	Identity
	FullName       string `json:"fullName"`
	ShiftStartTime string `json:"shiftstarttime"`
	ShiftEndTime   string `json:"shiftendtime"`
	StartTime      string `json:"starttime"`
	EndTime        string `json:"endtime"`
	AttendCode     string `json:"attendCode"`
	DayType        string `json:"daytype"`
}

// AttributedDay returns the WIB calendar day this record belongs to,
// derived from its shift start. A record without a shift start cannot
// be attributed to any day and returns "".
func (r AttendanceRecord) AttributedDay() string {
	return DayOf(r.ShiftStartTime)
}
