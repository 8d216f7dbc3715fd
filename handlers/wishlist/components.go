package wishlist

import (
	"log"
	"strings"

	"gacha-helper/bot"
	"gacha-helper/utils"
	"gacha-helper/utils/database"

	"github.com/bwmarrin/discordgo"
)

// HandleButton routes the panel's pagination buttons.
func HandleButton(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot, id utils.ComponentID) {
	state, ok := loadOwnedState(s, i, b, id.Token)
	if !ok {
		return
	}
	if id.Action != "page" {
		utils.AcknowledgeComponent(s, i)
		return
	}

	entries, err := database.ListWishlist(b.GetDB(), state.UserID)
	if err != nil {
		log.Printf("Failed to list wishlist for paging: %v", err)
		utils.SendEphemeralResponse(s, i, "Could not refresh the panel.")
		return
	}
	if id.Extra == "next" {
		state.Page++
	} else {
		state.Page--
	}
	state.Page = utils.ClampPage(state.Page, len(entries), pageSize)
	rerender(s, i, b, state)
}

// HandleSelect removes the chosen entry by its series+character natural
// key and re-renders with a clamped page, so deleting the last entry of
// the last page lands on a valid one.
func HandleSelect(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot, id utils.ComponentID) {
	state, ok := loadOwnedState(s, i, b, id.Token)
	if !ok {
		return
	}
	if id.Action != "remove" {
		utils.AcknowledgeComponent(s, i)
		return
	}

	values := i.MessageComponentData().Values
	if len(values) == 0 {
		utils.AcknowledgeComponent(s, i)
		return
	}
	series, character, found := strings.Cut(values[0], selectValueSep)
	if !found {
		utils.AcknowledgeComponent(s, i)
		return
	}
	if err := database.DeleteWishlistEntry(b.GetDB(), state.UserID, series, character); err != nil {
		log.Printf("Failed to delete wishlist entry %s/%s/%s: %v", state.UserID, series, character, err)
		utils.SendEphemeralResponse(s, i, "Could not remove that wish.")
		return
	}

	entries, err := database.ListWishlist(b.GetDB(), state.UserID)
	if err == nil {
		state.Page = utils.ClampPage(state.Page, len(entries), pageSize)
	}
	rerender(s, i, b, state)
}
