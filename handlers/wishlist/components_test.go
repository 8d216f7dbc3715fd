package wishlist

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"gacha-helper/bot"
	"gacha-helper/model"
	"gacha-helper/utils"
	"gacha-helper/utils/database"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingTransport struct {
	requests []*http.Request
}

func (rt *recordingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	rt.requests = append(rt.requests, req)
	return &http.Response{
		StatusCode: http.StatusNoContent,
		Header:     make(http.Header),
		Body:       io.NopCloser(strings.NewReader("")),
	}, nil
}

func newRecordingSession() (*discordgo.Session, *recordingTransport) {
	rt := &recordingTransport{}
	s := &discordgo.Session{
		Client:      &http.Client{Transport: rt},
		Ratelimiter: discordgo.NewRatelimiter(),
	}
	return s, rt
}

func selectInteraction(userID, customID string, values []string) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			ID:    "i1",
			Token: "itoken",
			Type:  discordgo.InteractionMessageComponent,
			Data: discordgo.MessageComponentInteractionData{
				CustomID:      customID,
				ComponentType: discordgo.SelectMenuComponent,
				Values:        values,
			},
			Member: &discordgo.Member{User: &discordgo.User{ID: userID}},
		},
	}
}

func seedPanel(t *testing.T) (*bot.Bot, model.WishlistState) {
	t.Helper()
	db, err := database.InitTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	state := model.WishlistState{Version: model.PanelStateVersion, Token: "tok", UserID: "owner"}
	require.NoError(t, utils.SavePanelState(db, state.Token, state))
	require.NoError(t, database.AddWishlistEntry(db, "owner", "Bleach", "Rukia"))
	return &bot.Bot{DB: db}, state
}

func TestHandleSelectMalformedValueAcknowledges(t *testing.T) {
	b, state := seedPanel(t)
	s, rt := newRecordingSession()

	// A value without the series separator must not delete anything.
	id := utils.ComponentID{Route: RouteKey, Action: "remove", Token: state.Token}
	i := selectInteraction("owner", id.String(), []string{"Rukia"})
	HandleSelect(s, i, b, id)

	require.Len(t, rt.requests, 1)
	assert.Equal(t, http.MethodPost, rt.requests[0].Method)

	entries, err := database.ListWishlist(b.GetDB(), "owner")
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestHandleSelectEmptyValuesAcknowledges(t *testing.T) {
	b, state := seedPanel(t)
	s, rt := newRecordingSession()

	id := utils.ComponentID{Route: RouteKey, Action: "remove", Token: state.Token}
	i := selectInteraction("owner", id.String(), nil)
	HandleSelect(s, i, b, id)

	require.Len(t, rt.requests, 1)

	entries, err := database.ListWishlist(b.GetDB(), "owner")
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
