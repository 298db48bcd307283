package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/docchat/docchat/internal/config"
	"github.com/docchat/docchat/internal/model"
)

func TestMemoryStoreNewSessionIsEmpty(t *testing.T) {
	store := NewMemoryStore()
	turns, err := store.Load(context.Background(), "fresh")
	require.NoError(t, err)
	require.Empty(t, turns)
}

func TestMemoryStoreAppendPreservesOrder(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, "s1",
		model.Turn{Role: model.RoleUser, Text: "first", Timestamp: 1},
		model.Turn{Role: model.RoleAssistant, Text: "second", Timestamp: 1},
	))
	require.NoError(t, store.Append(ctx, "s1",
		model.Turn{Role: model.RoleUser, Text: "third", Timestamp: 2},
	))

	turns, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, turns, 3)
	require.Equal(t, "first", turns[0].Text)
	require.Equal(t, "second", turns[1].Text)
	require.Equal(t, "third", turns[2].Text)
}

func TestMemoryStoreSessionsAreIsolated(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, "s1", model.Turn{Role: model.RoleUser, Text: "hello"}))
	turns, err := store.Load(ctx, "s2")
	require.NoError(t, err)
	require.Empty(t, turns)
}

func TestMemoryStoreLoadReturnsCopy(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Append(ctx, "s1", model.Turn{Role: model.RoleUser, Text: "hello"}))

	turns, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	turns[0].Text = "mutated"

	again, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	require.Equal(t, "hello", again[0].Text)
}

func TestNewUnknownType(t *testing.T) {
	_, err := New(config.SessionStoreConfig{Type: "dynamo"})
	require.Error(t, err)
}

func TestNewMemoryType(t *testing.T) {
	store, err := New(config.SessionStoreConfig{Type: "memory"})
	require.NoError(t, err)
	require.NotNil(t, store)
}
