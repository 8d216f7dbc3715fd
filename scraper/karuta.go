package scraper

import (
	"fmt"
	"log"
	"regexp"
	"strings"

	"gacha-helper/bot"
	"gacha-helper/model"
	"gacha-helper/reminder"
	"gacha-helper/utils"
	"gacha-helper/utils/database"

	"github.com/bwmarrin/discordgo"
)

// karutaVisitType is the reminder type for Karuta's visit cooldown,
// which the bot announces as ten hours.
const karutaVisitType = "Karuta Visit"

const karutaVisitMinutes = 600

var karutaDropPattern = regexp.MustCompile(`is dropping (\d+) cards`)

// karutaCardPattern matches one card line of a drop reveal, e.g.
// "1 · Attack on Titan · Mikasa Ackerman".
var karutaCardPattern = regexp.MustCompile(`^\d+\s*·\s*(.+?)\s*·\s*(.+)$`)

// DropCard is one card offered in a Karuta drop.
type DropCard struct {
	Series    string
	Character string
}

// IsKarutaDrop reports whether the text announces a card drop.
func IsKarutaDrop(text string) bool {
	return karutaDropPattern.MatchString(text)
}

// ParseDropCards extracts the revealed cards from a drop message. Lines
// that don't follow the card template are skipped.
func ParseDropCards(text string) []DropCard {
	var cards []DropCard
	for _, line := range strings.Split(text, "\n") {
		match := karutaCardPattern.FindStringSubmatch(strings.TrimSpace(line))
		if match == nil {
			continue
		}
		cards = append(cards, DropCard{
			Series:    strings.TrimSpace(match[1]),
			Character: strings.TrimSpace(match[2]),
		})
	}
	return cards
}

// IsKarutaVisitCooldown reports whether the text is the visit
// confirmation that starts the ten-hour cooldown.
func IsKarutaVisitCooldown(text string) bool {
	return strings.Contains(strings.ToLower(text), "you can visit again")
}

func handleKarutaMessage(s *discordgo.Session, m *discordgo.Message, b *bot.Bot) {
	text := messageText(m)

	if IsKarutaDrop(text) {
		notifyWishers(s, m, b, ParseDropCards(text))
		return
	}

	if IsKarutaVisitCooldown(text) {
		userID := triggeringUserID(m)
		if userID == "" {
			return
		}
		reminder.CreateReminder(b.GetDB(), userID, m.GuildID, m.ChannelID, karutaVisitMinutes, karutaVisitType,
			model.ReminderInfo{Command: "kvi", Information: "You can visit your Karuta character again."}, false)
		b.GetScheduler().Wake()
	}
}

// notifyWishers pings everyone whose wishlist matches a dropped card.
// Each user is pinged at most once per drop, even when several of their
// wishes appear.
func notifyWishers(s *discordgo.Session, m *discordgo.Message, b *bot.Bot, cards []DropCard) {
	pinged := make(map[string]bool)
	var mentions []string
	var matched []string
	for _, card := range cards {
		wishers, err := database.FindWishers(b.GetDB(), card.Series, card.Character)
		if err != nil {
			log.Printf("Failed to look up wishers for %s/%s: %v", card.Series, card.Character, err)
			continue
		}
		if len(wishers) > 0 {
			matched = append(matched, fmt.Sprintf("**%s** (%s)", card.Character, card.Series))
		}
		for _, userID := range wishers {
			if pinged[userID] {
				continue
			}
			pinged[userID] = true
			mentions = append(mentions, "<@"+userID+">")
		}
	}
	if len(mentions) == 0 {
		return
	}

	content := fmt.Sprintf("%s a wished card is dropping: %s",
		strings.Join(mentions, " "), strings.Join(matched, ", "))
	if _, err := s.ChannelMessageSendReply(m.ChannelID, content, m.Reference()); err != nil {
		log.Printf("Failed to ping wishers in channel %s: %v", m.ChannelID, err)
	}

	// Also DM each wisher in case the channel ping scrolls past.
	embed := &discordgo.MessageEmbed{
		Title:       "Wishlist drop",
		Description: fmt.Sprintf("%s dropping in <#%s>.", strings.Join(matched, ", "), m.ChannelID),
		Color:       0xFEE75C,
	}
	for userID := range pinged {
		utils.SendDirectEmbed(s, userID, embed)
	}
}
