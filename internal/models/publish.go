package models

// PostRecord is the durable trace of one successful publish.
type PostRecord struct {
	PostedAt    string `json:"postedAtIso"`
	Fingerprint string `json:"messageHash"`
}

// PublishState maps window keys to their last successful publish. The
// document is owned exclusively by the idempotency gate and is replaced
// wholesale on every write.
type PublishState struct {
	LastPosts map[string]PostRecord `json:"lastPosts"`
}

// NewPublishState returns an empty, non-nil state document.
func NewPublishState() *PublishState {
	return &PublishState{LastPosts: map[string]PostRecord{}}
}

// Normalize guarantees the LastPosts map exists so lookups and writes
// never hit a nil map.
func (s *PublishState) Normalize() {
	if s.LastPosts == nil {
		s.LastPosts = map[string]PostRecord{}
	}
}
