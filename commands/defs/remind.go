package defs

import "github.com/bwmarrin/discordgo"

var Remind = &discordgo.ApplicationCommand{
	Name:        "remind",
	Description: "Manage personal reminders",
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "set",
			Description: "Set a new reminder",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "message",
					Description: "What to remind you about",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "when",
					Description: "When to remind (e.g. 'in 20 minutes', 'tomorrow at 9am', '2h', '1d')",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "sendto",
					Description: "Where to send the reminder",
					Required:    false,
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: "This channel (default)", Value: "channel"},
						{Name: "Direct message", Value: "dm"},
					},
				},
			},
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "list",
			Description: "List your pending reminders",
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "clear",
			Description: "Clear one of your pending reminders",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:         discordgo.ApplicationCommandOptionString,
					Name:         "type",
					Description:  "The reminder to clear",
					Required:     true,
					Autocomplete: true,
				},
			},
		},
	},
}
