package repository

import (
	"context"
	"net/http"

	"github.com/noah-isme/greatday-recap-api/internal/models"
)

// EmployeeRepository fetches the employee directory used for display
// name resolution and "not yet present" checks.
type EmployeeRepository struct {
	client    *GreatDayClient
	pageLimit int
}

// NewEmployeeRepository constructs the repository.
func NewEmployeeRepository(client *GreatDayClient, pageLimit int) *EmployeeRepository {
	if pageLimit <= 0 {
		pageLimit = 100
	}
	return &EmployeeRepository{client: client, pageLimit: pageLimit}
}

// AllActive returns every active employee.
func (r *EmployeeRepository) AllActive(ctx context.Context) ([]models.EmployeeRecord, error) {
	body := map[string]interface{}{
		"page":      1,
		"limit":     r.pageLimit,
		"empStatus": "active",
	}

	payload, err := r.client.Request(ctx, http.MethodPost, "/employees", nil, body)
	if err != nil {
		return nil, err
	}

	rows, err := extractItems(payload)
	if err != nil {
		return nil, err
	}

	records := make([]models.EmployeeRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, normalizeEmployee(row))
	}
	return records, nil
}

func normalizeEmployee(row map[string]interface{}) models.EmployeeRecord {
	return models.EmployeeRecord{
		Identity: models.Identity{
			EmpID: stringField(row, "empId", "empid", "emp_id", "EmpId"),
			EmpNo: stringField(row, "empNo", "empno", "emp_no", "EmpNo"),
		},
		FullName:   stringField(row, "fullName", "fullname"),
		FirstName:  stringField(row, "firstName"),
		MiddleName: stringField(row, "middleName"),
		LastName:   stringField(row, "lastName"),
		UserName:   stringField(row, "userName"),
		PosNameEn:  stringField(row, "posNameEn"),
	}
}
