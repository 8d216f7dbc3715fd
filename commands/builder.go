package commands

import (
	"gacha-helper/commands/defs"

	"github.com/bwmarrin/discordgo"
)

// GenerateCommands assembles the full slash command set registered at
// startup.
func GenerateCommands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		defs.Remind,
		defs.Multi,
		defs.Wishlist,
		defs.Nuke,
		defs.DankStats,
		defs.Status,
	}
}
