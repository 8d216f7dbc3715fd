package wishlist

import (
	"fmt"
	"log"
	"strings"
	"time"

	"gacha-helper/bot"
	"gacha-helper/model"
	"gacha-helper/utils"
	"gacha-helper/utils/database"

	"github.com/bwmarrin/discordgo"
	"github.com/jmoiron/sqlx"
)

// RouteKey is the custom-id route owned by the wishlist panel.
const RouteKey = "wish"

const pageSize = 10

// selectValueSep joins series and character inside a select value. Both
// halves form the natural key used for removal.
const selectValueSep = "|"

// HandleCommand is the entry point for /wishlist.
func HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		return
	}
	sub := options[0]
	switch sub.Name {
	case "add":
		handleAdd(s, i, b, sub.Options)
	case "remove":
		handleRemove(s, i, b, sub.Options)
	case "show":
		handleShow(s, i, b)
	}
}

func optionValues(options []*discordgo.ApplicationCommandInteractionDataOption) (string, string) {
	var series, character string
	for _, opt := range options {
		switch opt.Name {
		case "series":
			series = strings.TrimSpace(opt.StringValue())
		case "character":
			character = strings.TrimSpace(opt.StringValue())
		}
	}
	return series, character
}

func handleAdd(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot, options []*discordgo.ApplicationCommandInteractionDataOption) {
	series, character := optionValues(options)
	if series == "" || character == "" {
		utils.SendEphemeralResponse(s, i, "Both series and character are required.")
		return
	}

	user := utils.InteractionUser(i)
	if err := database.AddWishlistEntry(b.GetDB(), user.ID, series, character); err != nil {
		log.Printf("Failed to add wishlist entry for user %s: %v", user.ID, err)
		utils.SendEphemeralResponse(s, i, "Could not save that wish.")
		return
	}
	utils.SendEphemeralResponse(s, i, fmt.Sprintf("Added **%s** (%s) to your wishlist.", character, series))
}

func handleRemove(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot, options []*discordgo.ApplicationCommandInteractionDataOption) {
	series, character := optionValues(options)
	if series == "" || character == "" {
		utils.SendEphemeralResponse(s, i, "Both series and character are required.")
		return
	}

	user := utils.InteractionUser(i)
	if err := database.DeleteWishlistEntry(b.GetDB(), user.ID, series, character); err != nil {
		log.Printf("Failed to remove wishlist entry for user %s: %v", user.ID, err)
		utils.SendEphemeralResponse(s, i, "Could not remove that wish.")
		return
	}
	utils.SendEphemeralResponse(s, i, fmt.Sprintf("Removed **%s** (%s) from your wishlist.", character, series))
}

func handleShow(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	user := utils.InteractionUser(i)
	state := model.WishlistState{
		Version: model.PanelStateVersion,
		Token:   utils.NewStateToken(user.ID),
		UserID:  user.ID,
		Page:    0,
	}
	if err := utils.SavePanelState(b.GetDB(), state.Token, state); err != nil {
		log.Printf("Failed to save wishlist panel state: %v", err)
		utils.SendEphemeralResponse(s, i, "Could not open the panel right now.")
		return
	}

	data, err := renderPanel(b, state)
	if err != nil {
		log.Printf("Failed to render wishlist panel: %v", err)
		utils.SendEphemeralResponse(s, i, "Could not open the panel right now.")
		return
	}
	data.Flags = discordgo.MessageFlagsEphemeral
	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
	if err != nil {
		log.Printf("Failed to send wishlist panel: %v", err)
	}
}

// renderPanel rebuilds the whole panel from the wishlists table; the
// remove select shows exactly the rows of the rendered page, in the
// same order the query returned them.
func renderPanel(b *bot.Bot, state model.WishlistState) (*discordgo.InteractionResponseData, error) {
	entries, err := database.ListWishlist(b.GetDB(), state.UserID)
	if err != nil {
		return nil, err
	}

	page := utils.ClampPage(state.Page, len(entries), pageSize)
	start, end := utils.PageBounds(page, len(entries), pageSize)
	pages := utils.PageCount(len(entries), pageSize)

	var sb strings.Builder
	if len(entries) == 0 {
		sb.WriteString("Your wishlist is empty. Use `/wishlist add` to wish for a drop.")
	}
	for _, entry := range entries[start:end] {
		sb.WriteString(fmt.Sprintf("• **%s** · %s\n", entry.Character, entry.Series))
	}

	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("Karuta wishlist · %d wishes", len(entries)),
		Description: sb.String(),
		Color:       0xFEE75C,
		Timestamp:   time.Now().Format(time.RFC3339),
	}
	if pages > 1 {
		embed.Footer = &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Page %d/%d", page+1, pages),
		}
	}

	var components []discordgo.MessageComponent
	if options := removeOptions(entries[start:end]); len(options) > 0 {
		components = append(components, discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.SelectMenu{
					CustomID:    utils.ComponentID{Route: RouteKey, Action: "remove", Token: state.Token}.String(),
					Placeholder: "Remove a wish",
					Options:     options,
				},
			},
		})
	}
	components = append(components, utils.CreatePaginationComponents(page, pages, RouteKey, state.Token)...)

	return &discordgo.InteractionResponseData{
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: components,
	}, nil
}

func removeOptions(entries []model.WishlistEntry) []discordgo.SelectMenuOption {
	options := make([]discordgo.SelectMenuOption, 0, len(entries))
	for _, entry := range entries {
		options = append(options, discordgo.SelectMenuOption{
			Label:       fmt.Sprintf("%s · %s", entry.Character, entry.Series),
			Value:       entry.Series + selectValueSep + entry.Character,
			Description: "Remove this wish",
		})
	}
	return options
}

type stateStatus int

const (
	stateOK stateStatus = iota
	stateExpired
	stateForeign
)

// resolveState reloads the panel state stored under token and checks it
// against the acting user without touching anything else.
func resolveState(db *sqlx.DB, token, userID string) (model.WishlistState, stateStatus) {
	var state model.WishlistState
	if !utils.LoadPanelState(db, token, &state) || state.Version != model.PanelStateVersion {
		return model.WishlistState{}, stateExpired
	}
	if state.UserID != userID {
		return model.WishlistState{}, stateForeign
	}
	return state, stateOK
}

func loadOwnedState(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot, token string) (model.WishlistState, bool) {
	state, status := resolveState(b.GetDB(), token, utils.InteractionUser(i).ID)
	switch status {
	case stateExpired:
		utils.SendExpiredPanelResponse(s, i)
		return model.WishlistState{}, false
	case stateForeign:
		utils.SendEphemeralResponse(s, i, "This panel belongs to someone else. Run /wishlist show yourself.")
		return model.WishlistState{}, false
	}
	return state, true
}

func rerender(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot, state model.WishlistState) {
	if err := utils.SavePanelState(b.GetDB(), state.Token, state); err != nil {
		log.Printf("Failed to save wishlist panel state: %v", err)
	}
	data, err := renderPanel(b, state)
	if err != nil {
		log.Printf("Failed to re-render wishlist panel: %v", err)
		utils.SendEphemeralResponse(s, i, "Could not refresh the panel.")
		return
	}
	utils.UpdatePanelMessage(s, i, data)
}
