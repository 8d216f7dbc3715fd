package handlers

import (
	"log"

	"gacha-helper/bot"
	"gacha-helper/utils"

	"github.com/bwmarrin/discordgo"
)

// CommandHandler executes a slash command or autocomplete interaction.
type CommandHandler func(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot)

// ComponentHandler executes a button, select menu or modal interaction
// whose custom id decoded to the given ComponentID.
type ComponentHandler func(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot, id utils.ComponentID)

// Router dispatches interactions to feature handlers. It is built once
// in Register from explicit route tables; features never mutate shared
// maps at import time.
type Router struct {
	commands     map[string]CommandHandler
	autocomplete map[string]CommandHandler
	buttons      map[string]ComponentHandler
	selects      map[string]ComponentHandler
	modals       map[string]ComponentHandler
}

// HandleInteraction is the single entry point for all interaction kinds.
// Unknown command names and unmatched or stale custom ids are ignored
// without surfacing errors, so components on old messages stay inert.
func (r *Router) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("Recovered from panic dispatching interaction (type=%s, detail=%s): %v",
				i.Type, interactionDetail(i), rec)
			utils.SendErrorReply(s, i, "Something went wrong handling that. Try again.")
		}
	}()

	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		if h, ok := r.commands[i.ApplicationCommandData().Name]; ok {
			h(s, i, b)
		}
	case discordgo.InteractionApplicationCommandAutocomplete:
		if h, ok := r.autocomplete[i.ApplicationCommandData().Name]; ok {
			h(s, i, b)
		}
	case discordgo.InteractionMessageComponent:
		data := i.MessageComponentData()
		id, err := utils.ParseComponentID(data.CustomID)
		if err != nil {
			return
		}
		table := r.buttons
		if data.ComponentType == discordgo.SelectMenuComponent {
			table = r.selects
		}
		if h, ok := table[id.Route]; ok {
			h(s, i, b, id)
		}
	case discordgo.InteractionModalSubmit:
		id, err := utils.ParseComponentID(i.ModalSubmitData().CustomID)
		if err != nil {
			return
		}
		if h, ok := r.modals[id.Route]; ok {
			h(s, i, b, id)
		}
	}
}

func interactionDetail(i *discordgo.InteractionCreate) string {
	switch i.Type {
	case discordgo.InteractionApplicationCommand, discordgo.InteractionApplicationCommandAutocomplete:
		return i.ApplicationCommandData().Name
	case discordgo.InteractionMessageComponent:
		return i.MessageComponentData().CustomID
	case discordgo.InteractionModalSubmit:
		return i.ModalSubmitData().CustomID
	}
	return "unknown"
}
