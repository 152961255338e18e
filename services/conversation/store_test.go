package conversation

import (
	"context"
	"testing"

	"riverwood/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStateStoreDefaultsToMainMenu(t *testing.T) {
	store := NewMemoryStateStore()

	conv, err := store.Get(context.Background(), "unknown@chat")
	require.NoError(t, err)
	assert.Equal(t, models.StateMainMenu, conv.State)
	assert.Empty(t, conv.Payload)
}

func TestMemoryStateStoreRoundTrip(t *testing.T) {
	store := NewMemoryStateStore()
	ctx := context.Background()

	payload := models.Payload{keyGuestName: "Jane Roe"}
	require.NoError(t, store.Set(ctx, "subject-1", models.StateReservationPhone, payload))

	conv, err := store.Get(ctx, "subject-1")
	require.NoError(t, err)
	assert.Equal(t, models.StateReservationPhone, conv.State)
	assert.Equal(t, "Jane Roe", conv.Payload[keyGuestName])
	assert.False(t, conv.UpdatedAt.IsZero())
}

func TestMemoryStateStoreIsolatesPayloads(t *testing.T) {
	store := NewMemoryStateStore()
	ctx := context.Background()

	payload := models.Payload{keyGuestName: "original"}
	require.NoError(t, store.Set(ctx, "subject-1", models.StateReservationName, payload))

	// Mutating the caller's map or a fetched copy must not leak into the store.
	payload[keyGuestName] = "mutated"
	got, err := store.Get(ctx, "subject-1")
	require.NoError(t, err)
	got.Payload[keyGuestName] = "mutated again"

	again, err := store.Get(ctx, "subject-1")
	require.NoError(t, err)
	assert.Equal(t, "original", again.Payload[keyGuestName])
}
