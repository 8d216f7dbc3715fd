package scraper

import (
	"log"
	"regexp"
	"strconv"
	"strings"

	"gacha-helper/bot"
	"gacha-helper/model"
	"gacha-helper/reminder"
	"gacha-helper/utils/database"

	"github.com/bwmarrin/discordgo"
)

// coinPattern matches Dank Memer's currency notation, e.g. "⏣ 1,234".
var coinPattern = regexp.MustCompile(`⏣\s?([\d,]+)`)

// dankCooldown binds a phrase from a command's success template to the
// reminder it should schedule.
type dankCooldown struct {
	phrase  string
	rtype   string
	command string
	minutes int
}

var dankCooldowns = []dankCooldown{
	{"daily coins", "Dank Daily", "/daily", 24 * 60},
	{"hours of work", "Dank Work", "/work shift", 60},
	{"went hunting", "Dank Hunt", "/hunt", 1},
	{"cast out your fishing", "Dank Fish", "/fish", 1},
	{"begging", "Dank Beg", "/beg", 1},
}

// ParseCoinGain extracts the total ⏣ amount mentioned in a message.
// Multiple amounts sum; absence returns ok=false.
func ParseCoinGain(text string) (int64, bool) {
	matches := coinPattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return 0, false
	}
	var total int64
	for _, match := range matches {
		raw := strings.ReplaceAll(match[1], ",", "")
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			continue
		}
		total += n
	}
	if total == 0 {
		return 0, false
	}
	return total, true
}

// DetectDankCooldown reports which command cooldown, if any, the given
// message text announces.
func DetectDankCooldown(text string) (dankCooldown, bool) {
	lower := strings.ToLower(text)
	for _, cd := range dankCooldowns {
		if strings.Contains(lower, cd.phrase) {
			return cd, true
		}
	}
	return dankCooldown{}, false
}

func handleDankMessage(s *discordgo.Session, m *discordgo.Message, b *bot.Bot) {
	userID := triggeringUserID(m)
	if userID == "" {
		return
	}
	text := messageText(m)

	if coins, ok := ParseCoinGain(text); ok {
		if err := database.IncrementDankStat(b.GetDB(), userID, "coins_earned", coins); err != nil {
			log.Printf("Failed to record coin gain for user %s: %v", userID, err)
		}
	}

	cd, ok := DetectDankCooldown(text)
	if !ok {
		return
	}
	if err := database.IncrementDankStat(b.GetDB(), userID, cd.rtype, 1); err != nil {
		log.Printf("Failed to record %s count for user %s: %v", cd.rtype, userID, err)
	}
	reminder.CreateReminder(b.GetDB(), userID, m.GuildID, m.ChannelID, cd.minutes, cd.rtype,
		model.ReminderInfo{Command: cd.command, Information: cd.rtype + " is off cooldown."}, false)
	b.GetScheduler().Wake()
}
