package models

import "strings"

// Identity is the employee key pair carried by every GreatDay record.
// At least one of the two fields is expected to be set; records missing
// both never survive aggregation.
type Identity struct {
	EmpID string `json:"empId"`
	EmpNo string `json:"empNo"`
}

// Empty reports whether the identity carries neither key.
func (i Identity) Empty() bool {
	return strings.TrimSpace(i.EmpID) == "" && strings.TrimSpace(i.EmpNo) == ""
}

// EmployeeRecord is a row from the GreatDay employee directory, already
// normalised by the fetch layer. Used only to resolve identities to
// display names.
type EmployeeRecord struct {
	Identity
	FullName   string `json:"fullName"`
	FirstName  string `json:"firstName"`
	MiddleName string `json:"middleName"`
	LastName   string `json:"lastName"`
	UserName   string `json:"userName"`
	PosNameEn  string `json:"posNameEn"`
}

// DisplayName resolves the best available name for the employee: the
// explicit full name, then the joined name parts, then the username.
func (e EmployeeRecord) DisplayName() string {
	if e.FullName != "" {
		return e.FullName
	}
	parts := make([]string, 0, 3)
	for _, p := range []string{e.FirstName, e.MiddleName, e.LastName} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) > 0 {
		return strings.Join(parts, " ")
	}
	return e.UserName
}
