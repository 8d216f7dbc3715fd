package multiplier

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

// RouteKey is the custom-id route owned by the multiplier panel.
const RouteKey = "multi"

const pageSize = 10

// HandleCommand opens a fresh multiplier editor panel for /multi.
func HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	user := utils.InteractionUser(i)
	state := model.MultiplierState{
		Version: model.PanelStateVersion,
		Token:   utils.NewStateToken(user.ID),
		UserID:  user.ID,
		Page:    0,
	}
	if err := utils.SavePanelState(b.GetDB(), state.Token, state); err != nil {
		log.Printf("Failed to save multiplier panel state: %v", err)
		utils.SendEphemeralResponse(s, i, "Could not open the panel right now.")
		return
	}

	data, err := renderPanel(b, state)
	if err != nil {
		log.Printf("Failed to render multiplier panel: %v", err)
		utils.SendEphemeralResponse(s, i, "Could not open the panel right now.")
		return
	}
	data.Flags = discordgo.MessageFlagsEphemeral
	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
	if err != nil {
		log.Printf("Failed to send multiplier panel: %v", err)
	}
}

// renderPanel recomputes the full panel payload from the database plus
// the UI-only state. Nothing is diffed between renders.
func renderPanel(b *bot.Bot, state model.MultiplierState) (*discordgo.InteractionResponseData, error) {
	db := b.GetDB()
	multipliers, err := database.ListMultipliers(db, state.UserID)
	if err != nil {
		return nil, err
	}
	total, err := database.TotalMultiplier(db, state.UserID)
	if err != nil {
		return nil, err
	}

	page := utils.ClampPage(state.Page, len(multipliers), pageSize)
	start, end := utils.PageBounds(page, len(multipliers), pageSize)
	pages := utils.PageCount(len(multipliers), pageSize)

	var sb strings.Builder
	if len(multipliers) == 0 {
		sb.WriteString("No multipliers yet. Use **Add** to record one.")
	}
	for _, m := range multipliers[start:end] {
		sb.WriteString(fmt.Sprintf("• **%s** · +%d%%\n", m.Name, m.Percent))
	}

	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("Multiplier calculator · total +%d%%", total),
		Description: sb.String(),
		Color:       0x5865F2,
		Timestamp:   time.Now().Format(time.RFC3339),
	}
	if pages > 1 {
		embed.Footer = &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Page %d/%d", page+1, pages),
		}
	}

	components := []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Add",
					Style:    discordgo.SuccessButton,
					CustomID: utils.ComponentID{Route: RouteKey, Action: "add", Token: state.Token}.String(),
				},
			},
		},
	}
	if options := removeOptions(multipliers[start:end]); len(options) > 0 {
		components = append(components, discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.SelectMenu{
					CustomID:    utils.ComponentID{Route: RouteKey, Action: "remove", Token: state.Token}.String(),
					Placeholder: "Remove a multiplier",
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

// removeOptions builds select options keyed by multiplier name, the
// stable natural key shared with DeleteMultiplier.
func removeOptions(multipliers []model.Multiplier) []discordgo.SelectMenuOption {
	options := make([]discordgo.SelectMenuOption, 0, len(multipliers))
	for _, m := range multipliers {
		options = append(options, discordgo.SelectMenuOption{
			Label:       fmt.Sprintf("%s (+%d%%)", m.Name, m.Percent),
			Value:       m.Name,
			Description: "Remove this multiplier",
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
// against the acting user. It touches nothing but the state read, so a
// foreign or stale token can never mutate persisted data.
func resolveState(db *sqlx.DB, token, userID string) (model.MultiplierState, stateStatus) {
	var state model.MultiplierState
	if !utils.LoadPanelState(db, token, &state) || state.Version != model.PanelStateVersion {
		return model.MultiplierState{}, stateExpired
	}
	if state.UserID != userID {
		return model.MultiplierState{}, stateForeign
	}
	return state, stateOK
}

// loadOwnedState wraps resolveState for a component interaction. A
// stale, corrupt or foreign state sends the standard expiry/rejection
// reply and returns false; the caller must mutate nothing in that case.
func loadOwnedState(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot, token string) (model.MultiplierState, bool) {
	state, status := resolveState(b.GetDB(), token, utils.InteractionUser(i).ID)
	switch status {
	case stateExpired:
		utils.SendExpiredPanelResponse(s, i)
		return model.MultiplierState{}, false
	case stateForeign:
		utils.SendEphemeralResponse(s, i, "This panel belongs to someone else. Run /multi yourself.")
		return model.MultiplierState{}, false
	}
	return state, true
}

func rerender(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot, state model.MultiplierState) {
	if err := utils.SavePanelState(b.GetDB(), state.Token, state); err != nil {
		log.Printf("Failed to save multiplier panel state: %v", err)
	}
	data, err := renderPanel(b, state)
	if err != nil {
		log.Printf("Failed to re-render multiplier panel: %v", err)
		utils.SendEphemeralResponse(s, i, "Could not refresh the panel.")
		return
	}
	utils.UpdatePanelMessage(s, i, data)
}
