package models

// GreatDay approval status codes, shared by leave and overtime records.
const (
	StatusPending  = 2
	StatusApproved = 3
)

// TypeLeaveRequest is the only request type that counts toward leave
// metrics; permissions and other request kinds are ignored.
const TypeLeaveRequest = "Leave Request"

// LeaveRecord is one normalised leave request with an inclusive date
// span. Start and end dates are raw GreatDay values.
type LeaveRecord struct {
	Identity
	FullName       string `json:"fullName"`
	Status         int    `json:"status"`
	TypeRequest    string `json:"typeRequest"`
	LeaveStartDate string `json:"leaveStartdate"`
	LeaveEndDate   string `json:"leaveEnddate"`
}

// Approved reports whether the leave is an approved leave request.
func (l LeaveRecord) Approved() bool {
	return l.Status == StatusApproved && l.TypeRequest == TypeLeaveRequest
}

// Pending reports whether the leave is a pending leave request.
func (l LeaveRecord) Pending() bool {
	return l.Status == StatusPending && l.TypeRequest == TypeLeaveRequest
}

// Span returns the leave's inclusive day boundaries as canonical day
// strings. Either value may be "" when the raw date is unparseable.
func (l LeaveRecord) Span() (start, end string) {
	return DayOf(l.LeaveStartDate), DayOf(l.LeaveEndDate)
}
