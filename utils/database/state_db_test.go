package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateSaveGetDelete(t *testing.T) {
	db, err := InitTestDB()
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, SaveState(db, "user1", "profile", `{"a":1}`, true))

	got, ok, err := GetState(db, "user1", "profile")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `{"a":1}`, got)

	// Same (id, type) pair overwrites, no history.
	require.NoError(t, SaveState(db, "user1", "profile", `{"a":2}`, true))
	got, ok, err = GetState(db, "user1", "profile")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `{"a":2}`, got)

	require.NoError(t, DeleteState(db, "user1", "profile"))
	_, ok, err = GetState(db, "user1", "profile")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGetStateMissing(t *testing.T) {
	db, err := InitTestDB()
	require.NoError(t, err)
	defer db.Close()

	got, ok, err := GetState(db, "nobody", "panel_state")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, got)
}

func TestCleanupEphemeralStates(t *testing.T) {
	db, err := InitTestDB()
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, SaveState(db, "old-token", "panel_state", "{}", false))
	require.NoError(t, SaveState(db, "old-perm", "profile", "{}", true))
	require.NoError(t, SaveState(db, "fresh-token", "panel_state", "{}", false))

	// Age two of the rows past the cutoff.
	stale := time.Now().Add(-48 * time.Hour).UnixMilli()
	_, err = db.Exec(`UPDATE bot_states SET updated_at = ? WHERE id IN ('old-token', 'old-perm')`, stale)
	require.NoError(t, err)

	n, err := CleanupEphemeralStates(db, 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	// Permanent rows survive no matter how old.
	_, ok, err := GetState(db, "old-perm", "profile")
	require.NoError(t, err)
	assert.True(t, ok)

	_, ok, err = GetState(db, "old-token", "panel_state")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = GetState(db, "fresh-token", "panel_state")
	require.NoError(t, err)
	assert.True(t, ok)
}
