package service

import (
	"context"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/noah-isme/greatday-recap-api/internal/models"
	"github.com/noah-isme/greatday-recap-api/internal/repository"
)

// Window key builders. Keys are stable across runs so a report window
// is published exactly once.

func DailyKey(day string) string {
	return "daily:" + day
}

func WeeklyKey(startDay, endDay string) string {
	return fmt.Sprintf("weekly:%s_to_%s", startDay, endDay)
}

func MonthlyKey(monthKey string) string {
	return "monthly:" + monthKey
}

// GateDecision is the outcome of a publish check. State carries the
// loaded document forward so MarkPosted writes against the same view
// it was decided on.
type GateDecision struct {
	ShouldPost bool
	Reason     string
	State      *models.PublishState
}

// IdempotencyGate owns the publish-state store. Nothing else reads or
// writes it.
type IdempotencyGate struct {
	store repository.StateStore
	now   func() time.Time
}

// NewIdempotencyGate constructs a gate over a state store.
func NewIdempotencyGate(store repository.StateStore) *IdempotencyGate {
	return &IdempotencyGate{store: store, now: time.Now}
}

// CheckAlreadyPosted loads the durable state and decides whether a
// publish for the key may proceed. force re-enters the publish path
// for an already posted key; the eventual MarkPosted overwrites the
// prior record.
func (g *IdempotencyGate) CheckAlreadyPosted(ctx context.Context, key string, force bool) (GateDecision, error) {
	state, err := g.store.Load(ctx)
	if err != nil {
		return GateDecision{}, err
	}

	if _, posted := state.LastPosts[key]; posted && !force {
		return GateDecision{
			ShouldPost: false,
			Reason:     fmt.Sprintf("Already posted for %s. Use force to override.", key),
			State:      state,
		}, nil
	}

	return GateDecision{ShouldPost: true, State: state}, nil
}

// MarkPosted records a successful publish: fingerprint of the rendered
// content plus the publish instant, merged into the loaded state and
// written back whole. Only ever call it after the sink accepted the
// message.
func (g *IdempotencyGate) MarkPosted(ctx context.Context, key, content string, state *models.PublishState) error {
	if state == nil {
		loaded, err := g.store.Load(ctx)
		if err != nil {
			return err
		}
		state = loaded
	}
	state.Normalize()

	state.LastPosts[key] = models.PostRecord{
		PostedAt:    g.now().UTC().Format(time.RFC3339),
		Fingerprint: fingerprint(content),
	}

	return g.store.Save(ctx, state)
}

// fingerprint hashes rendered content for change detection between
// republishes. FNV-1a: stable and fast; this is a debugging aid, not a
// security control.
func fingerprint(content string) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(content))
	return fmt.Sprintf("%x", h.Sum64())
}
