package cart

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRoundTrip(t *testing.T) {
	c := New()
	c.AddConfiguredItem("p1", "Blind", 100, 150, 4599)
	c.AddSample("p2", "Curtain", 250)

	now := time.Now()
	data, err := EncodeSnapshot(c, now)
	require.NoError(t, err)

	restored, reason := DecodeSnapshot(data, now.Add(time.Hour), DefaultRetention)
	require.Equal(t, DiscardNone, reason)
	require.NotNil(t, restored)
	assert.Equal(t, c.Items(), restored.Items())
	assert.Equal(t, c.TotalPriceMinorUnits(), restored.TotalPriceMinorUnits())
}

func TestSnapshotExpiry(t *testing.T) {
	c := New()
	c.AddConfiguredItem("p1", "Blind", 100, 150, 4599)

	writtenAt := time.Now()
	data, err := EncodeSnapshot(c, writtenAt)
	require.NoError(t, err)

	t.Run("older than retention window loads as absent", func(t *testing.T) {
		restored, reason := DecodeSnapshot(data, writtenAt.Add(DefaultRetention+time.Minute), DefaultRetention)
		assert.Nil(t, restored)
		assert.Equal(t, DiscardExpired, reason)
	})

	t.Run("just inside retention window survives", func(t *testing.T) {
		restored, reason := DecodeSnapshot(data, writtenAt.Add(DefaultRetention-time.Minute), DefaultRetention)
		assert.Equal(t, DiscardNone, reason)
		require.NotNil(t, restored)
		assert.Len(t, restored.Items(), 1)
	})
}

func TestSnapshotVersionMismatch(t *testing.T) {
	// Old snapshots are discarded outright: identity rules are not
	// backward-compatible, so no transformation is attempted.
	old := Snapshot{
		Version:   2,
		State:     SnapshotState{Items: []LineItem{{ID: "legacy", Quantity: 1}}},
		Timestamp: time.Now().UnixMilli(),
	}
	data, err := json.Marshal(old)
	require.NoError(t, err)

	restored, reason := DecodeSnapshot(data, time.Now(), DefaultRetention)
	assert.Nil(t, restored)
	assert.Equal(t, DiscardVersion, reason)
}

func TestSnapshotCorrupt(t *testing.T) {
	restored, reason := DecodeSnapshot([]byte("{not json"), time.Now(), DefaultRetention)
	assert.Nil(t, restored)
	assert.Equal(t, DiscardCorrupt, reason)
}
