package utils

import "github.com/bwmarrin/discordgo"

// InteractionUser returns the invoking user, whether the interaction
// came from a guild (Member set) or a DM (User set).
func InteractionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil {
		return i.Member.User
	}
	return i.User
}
