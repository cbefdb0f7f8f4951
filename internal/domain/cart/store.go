package cart

import (
	"context"
	"encoding/json"
	"time"
)

// SchemaVersion is the version tag written with every persisted snapshot.
// Line-item identity rules have changed across versions (product-id namespace
// changes, the addition of sample lines), so a stored snapshot from a
// different version is discarded rather than transformed: safe migration is
// not guaranteed.
const SchemaVersion = 3

// DefaultRetention is the time-to-live of a persisted cart, measured from the
// last write. Expiry is checked lazily on load, not by a background timer.
const DefaultRetention = 7 * 24 * time.Hour

// Store persists cart snapshots keyed by cart id. Implementations are
// swappable behind this contract: in-memory, Redis, relational row store.
// Save writes a full-state snapshot, never a diff, so a crash between the
// in-memory mutation and the persisted write can lose that single mutation
// but never leaves stored state in an inconsistent shape.
type Store interface {
	// Load returns the cart for the id, or nil if absent, expired, or
	// discarded due to a schema version mismatch.
	Load(ctx context.Context, cartID string) (*Cart, error)

	// Save persists a full snapshot of the cart tagged with the current time.
	Save(ctx context.Context, cartID string, c *Cart) error

	// Delete removes any persisted snapshot for the id.
	Delete(ctx context.Context, cartID string) error
}

// DiscardReason explains why a persisted snapshot was treated as absent
type DiscardReason string

const (
	DiscardNone    DiscardReason = ""
	DiscardExpired DiscardReason = "expired"
	DiscardVersion DiscardReason = "schema_version"
	DiscardCorrupt DiscardReason = "corrupt"
)

// Snapshot is the persisted envelope: schema version, full item state, and
// the write timestamp in unix milliseconds.
type Snapshot struct {
	Version   int           `json:"version"`
	State     SnapshotState `json:"state"`
	Timestamp int64         `json:"timestamp"`
}

// SnapshotState holds the persisted cart state. Only line items are
// persisted; totals are derived and never stored.
type SnapshotState struct {
	Items []LineItem `json:"items"`
}

// EncodeSnapshot serializes a full-state snapshot of the cart
func EncodeSnapshot(c *Cart, now time.Time) ([]byte, error) {
	return json.Marshal(Snapshot{
		Version:   SchemaVersion,
		State:     SnapshotState{Items: c.Items()},
		Timestamp: now.UnixMilli(),
	})
}

// DecodeSnapshot deserializes a persisted snapshot. Expired snapshots,
// snapshots from another schema version, and undecodable blobs are discarded:
// the returned cart is nil and the reason says why. Discard-and-reset on
// version mismatch is deliberate; partial recovery of old identity rules is
// not attempted.
func DecodeSnapshot(data []byte, now time.Time, retention time.Duration) (*Cart, DiscardReason) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, DiscardCorrupt
	}
	if snap.Version != SchemaVersion {
		return nil, DiscardVersion
	}
	writtenAt := time.UnixMilli(snap.Timestamp)
	if now.Sub(writtenAt) > retention {
		return nil, DiscardExpired
	}
	return FromItems(snap.State.Items), DiscardNone
}
