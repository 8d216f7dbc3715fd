package scraper

import (
	"strings"

	"gacha-helper/bot"
	"gacha-helper/model"
	"gacha-helper/reminder"

	"github.com/bwmarrin/discordgo"
)

var anigameCooldowns = []struct {
	phrase  string
	rtype   string
	command string
	minutes int
}{
	{"successfully voted", "Anigame Vote", ".vote", 12 * 60},
	{"daily reward", "Anigame Daily", ".daily", 24 * 60},
	{"battled against", "Anigame Battle", ".battle", 5},
}

// DetectAnigameCooldown reports which anigame cooldown the text
// announces.
func DetectAnigameCooldown(text string) (string, string, int, bool) {
	lower := strings.ToLower(text)
	for _, cd := range anigameCooldowns {
		if strings.Contains(lower, cd.phrase) {
			return cd.rtype, cd.command, cd.minutes, true
		}
	}
	return "", "", 0, false
}

func handleAnigameMessage(s *discordgo.Session, m *discordgo.Message, b *bot.Bot) {
	userID := triggeringUserID(m)
	if userID == "" {
		return
	}
	rtype, command, minutes, ok := DetectAnigameCooldown(messageText(m))
	if !ok {
		return
	}
	reminder.CreateReminder(b.GetDB(), userID, m.GuildID, m.ChannelID, minutes, rtype,
		model.ReminderInfo{Command: command, Information: rtype + " is ready."}, false)
	b.GetScheduler().Wake()
}
