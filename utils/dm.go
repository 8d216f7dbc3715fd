package utils

import (
	"log"

	"github.com/bwmarrin/discordgo"
)

// openDM resolves the DM channel for a user. Failures are logged and
// reported through the boolean; callers treat them as best-effort.
func openDM(s *discordgo.Session, userID string) (string, bool) {
	channel, err := s.UserChannelCreate(userID)
	if err != nil {
		log.Printf("Failed to open DM channel with user %s: %v", userID, err)
		return "", false
	}
	return channel.ID, true
}

// SendDirectMessage delivers a plain text DM, best effort. Nuke wrap-up
// notes go through here; a closed inbox costs a log line, nothing more.
func SendDirectMessage(s *discordgo.Session, userID, content string) {
	channelID, ok := openDM(s, userID)
	if !ok {
		return
	}
	if _, err := s.ChannelMessageSend(channelID, content); err != nil {
		log.Printf("Failed to DM user %s: %v", userID, err)
	}
}

// SendDirectEmbed delivers an embed DM, best effort. Used for wishlist
// drop alerts that must reach the wisher even off-channel.
func SendDirectEmbed(s *discordgo.Session, userID string, embed *discordgo.MessageEmbed) {
	channelID, ok := openDM(s, userID)
	if !ok {
		return
	}
	if _, err := s.ChannelMessageSendEmbed(channelID, embed); err != nil {
		log.Printf("Failed to DM embed to user %s: %v", userID, err)
	}
}
