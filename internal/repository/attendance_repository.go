package repository

import (
	"context"
	"net/http"
	"net/url"

	"github.com/noah-isme/greatday-recap-api/internal/models"
)

// AttendanceRepository fetches attendance rows for a period and
// normalises them into the canonical record shape. Alias resolution
// for GreatDay's inconsistent field naming happens here and nowhere
// else.
type AttendanceRepository struct {
	client *GreatDayClient
}

// NewAttendanceRepository constructs the repository.
func NewAttendanceRepository(client *GreatDayClient) *AttendanceRepository {
	return &AttendanceRepository{client: client}
}

// ByPeriod returns every attendance record between two inclusive
// canonical day strings.
func (r *AttendanceRepository) ByPeriod(ctx context.Context, startDate, endDate string) ([]models.AttendanceRecord, error) {
	query := url.Values{}
	query.Set("startDate", startDate)
	query.Set("endDate", endDate)

	payload, err := r.client.Request(ctx, http.MethodGet, "/attendances/byPeriod", query, nil)
	if err != nil {
		return nil, err
	}
	if payload == nil {
		return nil, nil
	}

	rows, err := extractItems(payload)
	if err != nil {
		return nil, err
	}

	records := make([]models.AttendanceRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, normalizeAttendance(row))
	}
	return records, nil
}

func normalizeAttendance(row map[string]interface{}) models.AttendanceRecord {
	return models.AttendanceRecord{
		Identity: models.Identity{
			EmpID: stringField(row, "empId", "empid", "emp_id", "EmpId"),
			EmpNo: stringField(row, "empNo", "empno", "emp_no", "EmpNo"),
		},
		FullName:       stringField(row, "fullName", "fullname", "empName", "empname", "emp_name"),
		ShiftStartTime: stringField(row, "shiftstarttime"),
		ShiftEndTime:   stringField(row, "shiftendtime"),
		StartTime:      stringField(row, "starttime"),
		EndTime:        stringField(row, "endtime"),
		AttendCode:     stringField(row, "attendCode"),
		DayType:        stringField(row, "daytype"),
	}
}
