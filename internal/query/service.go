// internal/query/service.go
package query

import (
	"context"
	"errors"

	"github.com/user/prflow/internal/types"
)

// ErrNoEvents reports a semantically empty result: the store has never
// been written, or no event matches the query. It is an expected
// outcome, not a failure.
var ErrNoEvents = errors.New("no GitHub Actions events received yet")

// Service exposes the read side of the event log. It holds no state of
// its own; every call re-reads the store, so results are at most one
// store read stale.
type Service struct {
	store types.EventStore
}

// NewService creates a query service over the given store.
func NewService(store types.EventStore) *Service {
	return &Service{store: store}
}

// Recent returns the last min(limit, len) events in store order, oldest
// first. A limit <= 0 or an absent store yields an empty sequence.
func (s *Service) Recent(ctx context.Context, limit int) ([]*types.Event, error) {
	if limit <= 0 {
		return []*types.Event{}, nil
	}

	events, err := s.store.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(events) > limit {
		events = events[len(events)-limit:]
	}
	return events, nil
}

// WorkflowStatus returns the latest known state per distinct workflow
// name, optionally filtered to a single name. Per name, the event with
// the lexicographically greatest updated_at wins; on equal timestamps
// the entry later in store order wins, so callers must not read strict
// temporal ordering into ties. Returns ErrNoEvents when the store is
// absent, empty, or holds no matching workflow events.
func (s *Service) WorkflowStatus(ctx context.Context, name string) ([]*types.WorkflowSummary, error) {
	events, err := s.store.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, ErrNoEvents
	}

	latest := make(map[string]*types.WorkflowSummary)
	var order []string
	for _, e := range events {
		run := e.WorkflowRun
		if run == nil {
			continue
		}
		if name != "" && run.Name != name {
			continue
		}
		prev, seen := latest[run.Name]
		if !seen {
			order = append(order, run.Name)
		}
		// Raw string comparison, >= so the later store entry takes ties.
		if !seen || run.UpdatedAt >= prev.UpdatedAt {
			latest[run.Name] = &types.WorkflowSummary{
				Name:       run.Name,
				Status:     run.Status,
				Conclusion: run.Conclusion,
				RunNumber:  run.RunNumber,
				UpdatedAt:  run.UpdatedAt,
				HTMLURL:    run.HTMLURL,
			}
		}
	}
	if len(latest) == 0 {
		return nil, ErrNoEvents
	}

	summaries := make([]*types.WorkflowSummary, 0, len(latest))
	for _, n := range order {
		summaries = append(summaries, latest[n])
	}
	return summaries, nil
}
