package defs

import "github.com/bwmarrin/discordgo"

var Multi = &discordgo.ApplicationCommand{
	Name:        "multi",
	Description: "Open your Dank Memer multiplier calculator",
}
