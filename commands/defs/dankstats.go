package defs

import "github.com/bwmarrin/discordgo"

var DankStats = &discordgo.ApplicationCommand{
	Name:        "dankstats",
	Description: "Show your scraped Dank Memer statistics",
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "user",
			Description: "Show another user's statistics",
			Required:    false,
		},
	},
}
