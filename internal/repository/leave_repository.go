package repository

import (
	"context"

	"github.com/noah-isme/greatday-recap-api/internal/models"
)

// LeaveRepository fetches the full leave collection via the paged
// POST /leave endpoint.
type LeaveRepository struct {
	client    *GreatDayClient
	pageLimit int
}

// NewLeaveRepository constructs the repository.
func NewLeaveRepository(client *GreatDayClient, pageLimit int) *LeaveRepository {
	if pageLimit <= 0 {
		pageLimit = 100
	}
	return &LeaveRepository{client: client, pageLimit: pageLimit}
}

// All returns every leave request the API will page out.
func (r *LeaveRepository) All(ctx context.Context) ([]models.LeaveRecord, error) {
	rows, err := fetchAllPages(ctx, r.client, "/leave", map[string]interface{}{"limit": r.pageLimit})
	if err != nil {
		return nil, err
	}

	records := make([]models.LeaveRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, normalizeLeave(row))
	}
	return records, nil
}

func normalizeLeave(row map[string]interface{}) models.LeaveRecord {
	return models.LeaveRecord{
		Identity: models.Identity{
			EmpID: stringField(row, "empId", "empid", "emp_id", "EmpId"),
			EmpNo: stringField(row, "empNo", "empno", "emp_no", "EmpNo"),
		},
		FullName:       stringField(row, "fullName", "fullname"),
		Status:         intField(row, "status"),
		TypeRequest:    stringField(row, "typeRequest"),
		LeaveStartDate: stringField(row, "leaveStartdate"),
		LeaveEndDate:   stringField(row, "leaveEnddate"),
	}
}
