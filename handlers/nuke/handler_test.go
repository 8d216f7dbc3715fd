package nuke

import (
	"testing"

	"gacha-helper/model"
	"gacha-helper/utils"
	"gacha-helper/utils/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveStateRejectsForeignUser(t *testing.T) {
	db, err := database.InitTestDB()
	require.NoError(t, err)
	defer db.Close()

	saved := model.NukeState{
		Version:   model.PanelStateVersion,
		Token:     "tok",
		UserID:    "owner",
		ChannelID: "c1",
	}
	require.NoError(t, utils.SavePanelState(db, saved.Token, saved))
	require.NoError(t, database.StartNukeSession(db, "c1", "g1", "owner"))

	_, status := resolveState(db, saved.Token, "intruder")
	assert.Equal(t, stateForeign, status)

	// The rejection must leave the session and the panel state untouched.
	var reloaded model.NukeState
	require.True(t, utils.LoadPanelState(db, saved.Token, &reloaded))
	assert.Equal(t, saved, reloaded)

	session, err := database.GetNukeSession(db, "c1")
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Zero(t, session.EndedAt)
	assert.Zero(t, session.ClaimCount)
}

func TestResolveStateAcceptsOwnerAndExpires(t *testing.T) {
	db, err := database.InitTestDB()
	require.NoError(t, err)
	defer db.Close()

	saved := model.NukeState{Version: model.PanelStateVersion, Token: "tok", UserID: "owner", ChannelID: "c1"}
	require.NoError(t, utils.SavePanelState(db, saved.Token, saved))

	state, status := resolveState(db, saved.Token, "owner")
	assert.Equal(t, stateOK, status)
	assert.Equal(t, saved, state)

	_, status = resolveState(db, "no-such-token", "owner")
	assert.Equal(t, stateExpired, status)
}
