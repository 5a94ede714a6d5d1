package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOvertimeMinutes(t *testing.T) {
	tests := []struct {
		name  string
		hours string
		want  int
	}{
		{name: "whole hours", hours: "2", want: 120},
		{name: "fractional hours", hours: "1.5", want: 90},
		{name: "rounds half up", hours: "0.008", want: 0},
		{name: "sub minute rounds to nearest", hours: "0.025", want: 2},
		{name: "corrupt value counts zero", hours: "abc", want: 0},
		{name: "empty value counts zero", hours: "", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := OvertimeRecord{OvtHours: tt.hours}
			assert.Equal(t, tt.want, o.Minutes())
		})
	}
}

func TestLeaveApprovalPredicates(t *testing.T) {
	approved := LeaveRecord{Status: StatusApproved, TypeRequest: TypeLeaveRequest}
	pending := LeaveRecord{Status: StatusPending, TypeRequest: TypeLeaveRequest}
	permission := LeaveRecord{Status: StatusApproved, TypeRequest: "Permission Request"}

	assert.True(t, approved.Approved())
	assert.False(t, approved.Pending())
	assert.True(t, pending.Pending())
	assert.False(t, pending.Approved())
	assert.False(t, permission.Approved())
	assert.False(t, permission.Pending())
}

func TestEmployeeDisplayName(t *testing.T) {
	assert.Equal(t, "Sari Utami", EmployeeRecord{FullName: "Sari Utami"}.DisplayName())
	assert.Equal(t, "Budi Santoso", EmployeeRecord{FirstName: "Budi", LastName: "Santoso"}.DisplayName())
	assert.Equal(t, "budi.s", EmployeeRecord{UserName: "budi.s"}.DisplayName())
	assert.Equal(t, "", EmployeeRecord{}.DisplayName())
}
