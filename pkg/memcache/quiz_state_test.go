package mem

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuizStatesSaveAndRestore(t *testing.T) {
	store := NewQuizStates(time.Minute)
	ctx := context.Background()

	state := NewTraversalState()
	state.CurrentIndex = 3
	state.Answers["name"] = "Jonas"
	require.NoError(t, store.Save(ctx, "s1", state))

	got, found, err := store.Restore(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 3, got.CurrentIndex)
	assert.Equal(t, "Jonas", got.Answers["name"])
}

func TestQuizStatesRestoreMissing(t *testing.T) {
	store := NewQuizStates(time.Minute)

	got, found, err := store.Restore(context.Background(), "nope")
	require.NoError(t, err)
	assert.False(t, found)
	assert.NotNil(t, got.Answers)
	assert.Equal(t, 0, got.CurrentIndex)
}

func TestQuizStatesEntriesExpire(t *testing.T) {
	store := NewQuizStates(10 * time.Millisecond)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "s1", NewTraversalState()))
	time.Sleep(20 * time.Millisecond)

	_, found, err := store.Restore(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestQuizStatesClear(t *testing.T) {
	store := NewQuizStates(time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "s1", NewTraversalState()))
	require.NoError(t, store.Clear(ctx, "s1"))

	_, found, _ := store.Restore(ctx, "s1")
	assert.False(t, found)
}

// Stored state must be isolated from later mutations on either side.
func TestQuizStatesClonesOnBothEnds(t *testing.T) {
	store := NewQuizStates(time.Minute)
	ctx := context.Background()

	state := NewTraversalState()
	state.Answers["name"] = "Jonas"
	require.NoError(t, store.Save(ctx, "s1", state))

	state.Answers["name"] = "changed-after-save"
	got, _, err := store.Restore(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "Jonas", got.Answers["name"])

	got.Answers["name"] = "changed-after-restore"
	again, _, err := store.Restore(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "Jonas", again.Answers["name"])
}
