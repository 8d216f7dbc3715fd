package scraper

import (
	"strings"

	"gacha-helper/bot"
	"gacha-helper/model"
	"gacha-helper/reminder"

	"github.com/bwmarrin/discordgo"
)

// izziCooldowns maps success phrases to the reminders they start.
var izziCooldowns = []struct {
	phrase  string
	rtype   string
	command string
	minutes int
}{
	{"thank you for voting", "Izzi Vote", "iz vote", 12 * 60},
	{"raid energy", "Izzi Raid", "iz rd battle", 60},
	{"hourly reward", "Izzi Hourly", "iz hourly", 60},
}

// DetectIzziCooldown reports which izzi cooldown the text announces.
func DetectIzziCooldown(text string) (string, string, int, bool) {
	lower := strings.ToLower(text)
	for _, cd := range izziCooldowns {
		if strings.Contains(lower, cd.phrase) {
			return cd.rtype, cd.command, cd.minutes, true
		}
	}
	return "", "", 0, false
}

func handleIzziMessage(s *discordgo.Session, m *discordgo.Message, b *bot.Bot) {
	userID := triggeringUserID(m)
	if userID == "" {
		return
	}
	rtype, command, minutes, ok := DetectIzziCooldown(messageText(m))
	if !ok {
		return
	}
	reminder.CreateReminder(b.GetDB(), userID, m.GuildID, m.ChannelID, minutes, rtype,
		model.ReminderInfo{Command: command, Information: rtype + " is ready."}, false)
	b.GetScheduler().Wake()
}
