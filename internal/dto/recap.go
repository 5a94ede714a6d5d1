package dto

// RunRequest selects which recap to trigger. Bound from query or JSON
// body; validation rejects unknown modes before any work starts.
type RunRequest struct {
	Mode  string `form:"mode" json:"mode" binding:"required,oneof=daily weekly monthly"`
	Force bool   `form:"force" json:"force"`
}

// RunResponse reports a trigger outcome.
type RunResponse struct {
	Status  string `json:"status"`
	Mode    string `json:"mode"`
	Skipped bool   `json:"skipped"`
	Reason  string `json:"reason,omitempty"`
	Message string `json:"message,omitempty"`
}
