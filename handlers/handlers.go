package handlers

import (
	"log"

	"gacha-helper/bot"
	"gacha-helper/handlers/multiplier"
	"gacha-helper/handlers/nuke"
	"gacha-helper/handlers/remind"
	"gacha-helper/handlers/wishlist"
	"gacha-helper/reminder"
	"gacha-helper/scraper"
	"gacha-helper/utils"

	"github.com/bwmarrin/discordgo"
)

// Register wires every feature into the session. Routing is one explicit
// table per interaction kind, assembled here and nowhere else.
func Register(b *bot.Bot) {
	router := &Router{
		commands: map[string]CommandHandler{
			"remind":    remind.HandleCommand,
			"multi":     multiplier.HandleCommand,
			"wishlist":  wishlist.HandleCommand,
			"nuke":      nuke.HandleCommand,
			"dankstats": HandleDankStatsCommand,
			"status":    SystemInfoHandler,
		},
		autocomplete: map[string]CommandHandler{
			"remind": remind.HandleAutocomplete,
		},
		buttons: map[string]ComponentHandler{
			reminder.RouteKey:   remind.HandleButton,
			multiplier.RouteKey: multiplier.HandleButton,
			wishlist.RouteKey:   wishlist.HandleButton,
			nuke.RouteKey:       nuke.HandleButton,
		},
		selects: map[string]ComponentHandler{
			multiplier.RouteKey: multiplier.HandleSelect,
			wishlist.RouteKey:   wishlist.HandleSelect,
		},
		modals: map[string]ComponentHandler{
			multiplier.RouteKey: multiplier.HandleModal,
		},
	}

	b.Session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		log.Printf("Logged in as: %v#%v", s.State.User.Username, s.State.User.Discriminator)
		cfg := b.GetConfig()
		if cfg.LogWebhookURL != "" {
			if err := utils.LogInfo(cfg.LogWebhookURL, "System", "Ready", "Gateway session established."); err != nil {
				log.Printf("Failed to send ready log: %v", err)
			}
		}
	})

	b.Session.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		router.HandleInteraction(s, i, b)
	})

	b.Session.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		scraper.HandleMessageCreate(s, m, b)
	})

	b.Session.AddHandler(func(s *discordgo.Session, m *discordgo.MessageUpdate) {
		scraper.HandleMessageUpdate(s, m, b)
	})
}
