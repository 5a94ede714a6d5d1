package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/greatday-recap-api/internal/models"
)

func TestExclusionFilter(t *testing.T) {
	filter := NewExclusionFilter([]string{"DO230167"}, []string{"2022 - 078"})

	tests := []struct {
		name     string
		identity models.Identity
		want     bool
	}{
		{name: "excluded by id", identity: models.Identity{EmpID: "DO230167"}, want: true},
		{name: "excluded by number", identity: models.Identity{EmpNo: "2022 - 078"}, want: true},
		{name: "either key suffices", identity: models.Identity{EmpID: "E1", EmpNo: "2022 - 078"}, want: true},
		{name: "plain employee", identity: models.Identity{EmpID: "E1", EmpNo: "001"}, want: false},
		{name: "no keys at all", identity: models.Identity{}, want: false},
		{name: "whitespace around id still matches", identity: models.Identity{EmpID: "  DO230167  "}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, filter.IsExcluded(tt.identity))
		})
	}
}

func TestExclusionFilterIgnoresBlankEntries(t *testing.T) {
	filter := NewExclusionFilter([]string{"", "  "}, []string{""})

	// Blank denylist entries must never match records with empty keys.
	assert.False(t, filter.IsExcluded(models.Identity{}))
	assert.False(t, filter.IsExcluded(models.Identity{EmpID: "E1"}))
}
