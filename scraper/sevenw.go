package scraper

import (
	"fmt"
	"log"
	"strings"

	"gacha-helper/bot"
	"gacha-helper/utils"
	"gacha-helper/utils/database"

	"github.com/bwmarrin/discordgo"
)

// NukeEvent classifies a 7w7 message with respect to a channel nuke.
type NukeEvent int

const (
	NukeNone NukeEvent = iota
	NukeStart
	NukeClaim
	NukeEnd
)

// ClassifyNukeEvent inspects the message text for the three templates
// 7w7 posts over a nuke's lifetime.
func ClassifyNukeEvent(text string) NukeEvent {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "started a nuke"):
		return NukeStart
	case strings.Contains(lower, "nuke has ended"), strings.Contains(lower, "nuke is over"):
		return NukeEnd
	case strings.Contains(lower, "claimed"):
		return NukeClaim
	default:
		return NukeNone
	}
}

func handleSevenMessage(s *discordgo.Session, m *discordgo.Message, b *bot.Bot) {
	switch ClassifyNukeEvent(messageText(m)) {
	case NukeStart:
		starterID := triggeringUserID(m)
		if err := database.StartNukeSession(b.GetDB(), m.ChannelID, m.GuildID, starterID); err != nil {
			log.Printf("Failed to open nuke session in channel %s: %v", m.ChannelID, err)
		}
	case NukeClaim:
		if err := database.IncrementNukeClaims(b.GetDB(), m.ChannelID); err != nil {
			log.Printf("Failed to count nuke claim in channel %s: %v", m.ChannelID, err)
		}
	case NukeEnd:
		if err := database.EndNukeSession(b.GetDB(), m.ChannelID); err != nil {
			log.Printf("Failed to close nuke session in channel %s: %v", m.ChannelID, err)
			return
		}
		session, err := database.GetNukeSession(b.GetDB(), m.ChannelID)
		if err != nil || session == nil || session.StarterID == "" {
			return
		}
		utils.SendDirectMessage(s, session.StarterID,
			fmt.Sprintf("Your nuke in <#%s> is over: **%d** claims.", m.ChannelID, session.ClaimCount))
	}
}
