package repository

import (
	"context"

	"github.com/noah-isme/greatday-recap-api/internal/models"
)

// OvertimeRepository fetches the full overtime collection via the paged
// POST /overtime endpoint.
type OvertimeRepository struct {
	client    *GreatDayClient
	pageLimit int
}

// NewOvertimeRepository constructs the repository.
func NewOvertimeRepository(client *GreatDayClient, pageLimit int) *OvertimeRepository {
	if pageLimit <= 0 {
		pageLimit = 100
	}
	return &OvertimeRepository{client: client, pageLimit: pageLimit}
}

// All returns every overtime request the API will page out.
func (r *OvertimeRepository) All(ctx context.Context) ([]models.OvertimeRecord, error) {
	rows, err := fetchAllPages(ctx, r.client, "/overtime", map[string]interface{}{"limit": r.pageLimit})
	if err != nil {
		return nil, err
	}

	records := make([]models.OvertimeRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, normalizeOvertime(row))
	}
	return records, nil
}

func normalizeOvertime(row map[string]interface{}) models.OvertimeRecord {
	return models.OvertimeRecord{
		Identity: models.Identity{
			EmpID: stringField(row, "empId", "empid", "emp_id", "EmpId"),
			EmpNo: stringField(row, "empNo", "empno", "emp_no", "EmpNo"),
		},
		FullName: stringField(row, "fullName", "fullname"),
		Status:   intField(row, "status"),
		OvtDate:  stringField(row, "ovtDate", "ovtdate", "date"),
		OvtHours: stringField(row, "ovthours"),
	}
}
