package service

import (
	"strings"

	"github.com/noah-isme/greatday-recap-api/internal/models"
)

// ExclusionFilter removes denylisted employees from every computation.
// It is applied before classification and aggregation, so an excluded
// identity never reaches an event, an aggregate row or rendered output.
type ExclusionFilter struct {
	empIDs map[string]struct{}
	empNos map[string]struct{}
}

// NewExclusionFilter builds a filter from fixed id and number lists.
func NewExclusionFilter(empIDs, empNos []string) *ExclusionFilter {
	f := &ExclusionFilter{
		empIDs: make(map[string]struct{}, len(empIDs)),
		empNos: make(map[string]struct{}, len(empNos)),
	}
	for _, id := range empIDs {
		if trimmed := strings.TrimSpace(id); trimmed != "" {
			f.empIDs[trimmed] = struct{}{}
		}
	}
	for _, no := range empNos {
		if trimmed := strings.TrimSpace(no); trimmed != "" {
			f.empNos[trimmed] = struct{}{}
		}
	}
	return f
}

// IsExcluded reports whether either identity key is denylisted.
// Absent keys never match.
func (f *ExclusionFilter) IsExcluded(identity models.Identity) bool {
	if id := strings.TrimSpace(identity.EmpID); id != "" {
		if _, ok := f.empIDs[id]; ok {
			return true
		}
	}
	if no := strings.TrimSpace(identity.EmpNo); no != "" {
		if _, ok := f.empNos[no]; ok {
			return true
		}
	}
	return false
}
