package service

import (
	"fmt"

	"github.com/noah-isme/greatday-recap-api/internal/models"
)

// employeeInfo is the resolved display data for one directory entry.
type employeeInfo struct {
	FullName string
	EmpNo    string
	PosName  string
	Display  string
}

// EmployeeIndex resolves record identities to display names, by either
// identity key. Excluded employees are never indexed.
type EmployeeIndex struct {
	byEmpID map[string]employeeInfo
	byEmpNo map[string]employeeInfo
}

// BuildEmployeeIndex indexes the directory for display-name lookups.
// First entry wins for duplicated keys.
func BuildEmployeeIndex(employees []models.EmployeeRecord, filter *ExclusionFilter) *EmployeeIndex {
	idx := &EmployeeIndex{
		byEmpID: map[string]employeeInfo{},
		byEmpNo: map[string]employeeInfo{},
	}

	for _, e := range employees {
		if filter.IsExcluded(e.Identity) {
			continue
		}

		fullName := e.DisplayName()
		display := "(nama tidak tersedia)"
		if fullName != "" {
			display = fullName
			if e.PosNameEn != "" {
				display = fmt.Sprintf("%s (%s)", fullName, e.PosNameEn)
			}
		}

		info := employeeInfo{
			FullName: fullName,
			EmpNo:    e.EmpNo,
			PosName:  e.PosNameEn,
			Display:  display,
		}

		if e.EmpID != "" {
			if _, exists := idx.byEmpID[e.EmpID]; !exists {
				idx.byEmpID[e.EmpID] = info
			}
		}
		if e.EmpNo != "" {
			if _, exists := idx.byEmpNo[e.EmpNo]; !exists {
				idx.byEmpNo[e.EmpNo] = info
			}
		}
	}

	return idx
}

// fallbackName is rendered when neither the index nor the record
// itself offers a name.
const fallbackName = "Nama tidak diketahui"

// DisplayName resolves an identity through the index first and falls
// back to the name the record itself carried.
func (idx *EmployeeIndex) DisplayName(identity models.Identity, recordName string) string {
	if idx != nil {
		if identity.EmpID != "" {
			if info, ok := idx.byEmpID[identity.EmpID]; ok && info.Display != "" {
				return info.Display
			}
		}
		if identity.EmpNo != "" {
			if info, ok := idx.byEmpNo[identity.EmpNo]; ok && info.Display != "" {
				return info.Display
			}
		}
	}
	if recordName != "" {
		return recordName
	}
	return fallbackName
}
