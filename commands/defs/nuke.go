package defs

import "github.com/bwmarrin/discordgo"

var Nuke = &discordgo.ApplicationCommand{
	Name:        "nuke",
	Description: "Track the 7w7 nuke session in this channel",
}
