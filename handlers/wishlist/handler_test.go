package wishlist

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

	saved := model.WishlistState{
		Version: model.PanelStateVersion,
		Token:   "tok",
		UserID:  "owner",
		Page:    0,
	}
	require.NoError(t, utils.SavePanelState(db, saved.Token, saved))
	require.NoError(t, database.AddWishlistEntry(db, "owner", "Bleach", "Rukia"))

	_, status := resolveState(db, saved.Token, "intruder")
	assert.Equal(t, stateForeign, status)

	// The rejection must leave every persisted row untouched.
	var reloaded model.WishlistState
	require.True(t, utils.LoadPanelState(db, saved.Token, &reloaded))
	assert.Equal(t, saved, reloaded)

	entries, err := database.ListWishlist(db, "owner")
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestResolveStateAcceptsOwnerAndExpires(t *testing.T) {
	db, err := database.InitTestDB()
	require.NoError(t, err)
	defer db.Close()

	saved := model.WishlistState{Version: model.PanelStateVersion, Token: "tok", UserID: "owner"}
	require.NoError(t, utils.SavePanelState(db, saved.Token, saved))

	state, status := resolveState(db, saved.Token, "owner")
	assert.Equal(t, stateOK, status)
	assert.Equal(t, saved, state)

	_, status = resolveState(db, "no-such-token", "owner")
	assert.Equal(t, stateExpired, status)
}
