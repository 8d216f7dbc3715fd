package nuke

import (
	"fmt"
	"log"
	"time"

	"gacha-helper/bot"
	"gacha-helper/model"
	"gacha-helper/utils"
	"gacha-helper/utils/database"

	"github.com/bwmarrin/discordgo"
	"github.com/jmoiron/sqlx"
)

// RouteKey is the custom-id route owned by the nuke tracker panel.
const RouteKey = "nuke"

// HandleCommand opens the nuke tracker panel for the current channel.
func HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	user := utils.InteractionUser(i)
	state := model.NukeState{
		Version:   model.PanelStateVersion,
		Token:     utils.NewStateToken(user.ID),
		UserID:    user.ID,
		ChannelID: i.ChannelID,
	}
	if err := utils.SavePanelState(b.GetDB(), state.Token, state); err != nil {
		log.Printf("Failed to save nuke panel state: %v", err)
		utils.SendEphemeralResponse(s, i, "Could not open the panel right now.")
		return
	}

	data, err := renderPanel(b, state)
	if err != nil {
		log.Printf("Failed to render nuke panel: %v", err)
		utils.SendEphemeralResponse(s, i, "Could not open the panel right now.")
		return
	}
	data.Flags = discordgo.MessageFlagsEphemeral
	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
	if err != nil {
		log.Printf("Failed to send nuke panel: %v", err)
	}
}

// renderPanel reads the channel's session row fresh on every render so
// the claim counter always reflects what the scraper has recorded.
func renderPanel(b *bot.Bot, state model.NukeState) (*discordgo.InteractionResponseData, error) {
	session, err := database.GetNukeSession(b.GetDB(), state.ChannelID)
	if err != nil {
		return nil, err
	}

	embed := &discordgo.MessageEmbed{
		Title:     "7w7 nuke tracker",
		Color:     0xED4245,
		Timestamp: time.Now().Format(time.RFC3339),
	}
	active := session != nil && session.EndedAt == 0

	switch {
	case session == nil:
		embed.Description = "No nuke recorded in this channel yet. Press **Start** when one begins."
	case active:
		embed.Description = fmt.Sprintf(
			"Nuke in progress, started by <@%s> <t:%d:R>.\n**%d** claims so far.",
			session.StarterID, session.StartedAt/1000, session.ClaimCount)
	default:
		embed.Description = fmt.Sprintf(
			"Last nuke ended <t:%d:R> with **%d** claims (started by <@%s>).",
			session.EndedAt/1000, session.ClaimCount, session.StarterID)
	}

	buttons := []discordgo.MessageComponent{
		discordgo.Button{
			Label:    "Start",
			Style:    discordgo.DangerButton,
			Disabled: active,
			CustomID: utils.ComponentID{Route: RouteKey, Action: "start", Token: state.Token}.String(),
		},
		discordgo.Button{
			Label:    "Refresh",
			Style:    discordgo.SecondaryButton,
			CustomID: utils.ComponentID{Route: RouteKey, Action: "refresh", Token: state.Token}.String(),
		},
		discordgo.Button{
			Label:    "End",
			Style:    discordgo.PrimaryButton,
			Disabled: !active,
			CustomID: utils.ComponentID{Route: RouteKey, Action: "end", Token: state.Token}.String(),
		},
	}

	return &discordgo.InteractionResponseData{
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: []discordgo.MessageComponent{discordgo.ActionsRow{Components: buttons}},
	}, nil
}

type stateStatus int

const (
	stateOK stateStatus = iota
	stateExpired
	stateForeign
)

// resolveState reloads the panel state stored under token and checks it
// against the acting user without touching anything else.
func resolveState(db *sqlx.DB, token, userID string) (model.NukeState, stateStatus) {
	var state model.NukeState
	if !utils.LoadPanelState(db, token, &state) || state.Version != model.PanelStateVersion {
		return model.NukeState{}, stateExpired
	}
	if state.UserID != userID {
		return model.NukeState{}, stateForeign
	}
	return state, stateOK
}

func loadOwnedState(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot, token string) (model.NukeState, bool) {
	state, status := resolveState(b.GetDB(), token, utils.InteractionUser(i).ID)
	switch status {
	case stateExpired:
		utils.SendExpiredPanelResponse(s, i)
		return model.NukeState{}, false
	case stateForeign:
		utils.SendEphemeralResponse(s, i, "This panel belongs to someone else. Run /nuke yourself.")
		return model.NukeState{}, false
	}
	return state, true
}

// HandleButton routes the panel's start/refresh/end buttons. All three
// end in a full re-render from the nuke_sessions row.
func HandleButton(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot, id utils.ComponentID) {
	state, ok := loadOwnedState(s, i, b, id.Token)
	if !ok {
		return
	}

	switch id.Action {
	case "start":
		guildID := i.GuildID
		if err := database.StartNukeSession(b.GetDB(), state.ChannelID, guildID, state.UserID); err != nil {
			log.Printf("Failed to start nuke session in channel %s: %v", state.ChannelID, err)
			utils.SendEphemeralResponse(s, i, "Could not start the session.")
			return
		}
	case "end":
		if err := database.EndNukeSession(b.GetDB(), state.ChannelID); err != nil {
			log.Printf("Failed to end nuke session in channel %s: %v", state.ChannelID, err)
			utils.SendEphemeralResponse(s, i, "Could not end the session.")
			return
		}
	case "refresh":
		// Nothing to mutate; the render below re-reads the row.
	default:
		utils.AcknowledgeComponent(s, i)
		return
	}

	data, err := renderPanel(b, state)
	if err != nil {
		log.Printf("Failed to re-render nuke panel: %v", err)
		utils.SendEphemeralResponse(s, i, "Could not refresh the panel.")
		return
	}
	utils.UpdatePanelMessage(s, i, data)
}
