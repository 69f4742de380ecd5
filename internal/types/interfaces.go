// internal/types/interfaces.go
package types

import "context"

// EventStore is the persisted, capacity-bounded event log shared by the
// ingestion and query processes. Append must be serialized internally;
// ReadAll must never observe a partially written sequence.
type EventStore interface {
	Append(ctx context.Context, event *Event) error
	ReadAll(ctx context.Context) ([]*Event, error)
}
