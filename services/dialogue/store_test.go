package dialogue

import (
	"context"
	"testing"
	"time"

	"agendador/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryDraftStore_GetSetClear(t *testing.T) {
	store := NewMemoryDraftStore(time.Minute)
	ctx := context.Background()

	draft, err := store.Get(ctx, "user1")
	require.NoError(t, err)
	assert.Nil(t, draft, "no open draft yields nil without error")

	require.NoError(t, store.Set(ctx, "user1", &models.ConversationDraft{Title: "reunião"}))

	draft, err = store.Get(ctx, "user1")
	require.NoError(t, err)
	require.NotNil(t, draft)
	assert.Equal(t, "reunião", draft.Title)
	assert.False(t, draft.UpdatedAt.IsZero(), "Set stamps the draft")

	require.NoError(t, store.Clear(ctx, "user1"))
	draft, err = store.Get(ctx, "user1")
	require.NoError(t, err)
	assert.Nil(t, draft)
}

func TestMemoryDraftStore_ClearUnknownUserIsNoOp(t *testing.T) {
	store := NewMemoryDraftStore(time.Minute)
	assert.NoError(t, store.Clear(context.Background(), "nobody"))
}

func TestMemoryDraftStore_ExpiryOnAccess(t *testing.T) {
	store := NewMemoryDraftStore(10 * time.Millisecond)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "user1", &models.ConversationDraft{Title: "reunião"}))
	time.Sleep(30 * time.Millisecond)

	draft, err := store.Get(ctx, "user1")
	require.NoError(t, err)
	assert.Nil(t, draft, "expired draft reads as absent")
}

func TestMemoryDraftStore_Sweep(t *testing.T) {
	store := NewMemoryDraftStore(10 * time.Millisecond)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "old", &models.ConversationDraft{Title: "a"}))
	time.Sleep(30 * time.Millisecond)
	require.NoError(t, store.Set(ctx, "fresh", &models.ConversationDraft{Title: "b"}))

	assert.Equal(t, 1, store.Sweep())

	draft, err := store.Get(ctx, "fresh")
	require.NoError(t, err)
	require.NotNil(t, draft)
	assert.Equal(t, "b", draft.Title)
}

func TestMemoryDraftStore_ZeroTTLNeverExpires(t *testing.T) {
	store := NewMemoryDraftStore(0)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "user1", &models.ConversationDraft{Title: "reunião"}))
	time.Sleep(20 * time.Millisecond)

	draft, err := store.Get(ctx, "user1")
	require.NoError(t, err)
	require.NotNil(t, draft)
	assert.Equal(t, 0, store.Sweep())
}

func TestMemoryDraftStore_CallersCannotMutateStoredDraft(t *testing.T) {
	store := NewMemoryDraftStore(time.Minute)
	ctx := context.Background()

	original := &models.ConversationDraft{RawGuests: []string{"vini"}}
	require.NoError(t, store.Set(ctx, "user1", original))
	original.RawGuests[0] = "mutated"

	draft, err := store.Get(ctx, "user1")
	require.NoError(t, err)
	assert.Equal(t, []string{"vini"}, draft.RawGuests, "Set clones its input")

	draft.RawGuests[0] = "mutated again"
	again, err := store.Get(ctx, "user1")
	require.NoError(t, err)
	assert.Equal(t, []string{"vini"}, again.RawGuests, "Get hands out copies")
}
