package models

import "github.com/shopspring/decimal"

// OvertimeRecord is one normalised overtime request. The day an
// overtime belongs to comes from OvtDate, never from any shift field.
type OvertimeRecord struct {
	Identity
	FullName string `json:"fullName"`
	Status   int    `json:"status"`
	OvtDate  string `json:"ovtDate"`
	OvtHours string `json:"ovthours"`
}

// Minutes converts the decimal hours value to whole minutes with
// standard rounding. A corrupt or absent hours value yields zero:
// an approved overtime with unusable hours still counts as an event,
// it just contributes no duration.
func (o OvertimeRecord) Minutes() int {
	hours, err := decimal.NewFromString(o.OvtHours)
	if err != nil {
		return 0
	}
	return int(hours.Mul(decimal.NewFromInt(60)).Round(0).IntPart())
}
