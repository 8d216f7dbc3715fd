// Package scraper turns the chat output of third-party game bots into
// rows and reminders. Every handler pattern-matches the literal
// templates of one bot's UI; anything unrecognized is ignored.
package scraper

import (
	"regexp"
	"strings"

	"gacha-helper/bot"

	"github.com/bwmarrin/discordgo"
)

// sourceHandler parses one bot's messages. m is the full message after
// create or update; handlers must tolerate partial content.
type sourceHandler func(s *discordgo.Session, m *discordgo.Message, b *bot.Bot)

// handlersByName maps the configured scraper name to its parser. Names
// line up with the scrapers section of data/config.yaml.
var handlersByName = map[string]sourceHandler{
	"dank":    handleDankMessage,
	"karuta":  handleKarutaMessage,
	"izzi":    handleIzziMessage,
	"anigame": handleAnigameMessage,
	"7w7":     handleSevenMessage,
}

// HandleMessageCreate dispatches a fresh message to the scraper
// configured for its author.
func HandleMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate, b *bot.Bot) {
	dispatch(s, m.Message, b)
}

// HandleMessageUpdate re-runs the scraper when a bot edits its message,
// which several of these bots do to reveal results.
func HandleMessageUpdate(s *discordgo.Session, m *discordgo.MessageUpdate, b *bot.Bot) {
	if m.Message == nil {
		return
	}
	dispatch(s, m.Message, b)
}

func dispatch(s *discordgo.Session, m *discordgo.Message, b *bot.Bot) {
	if m == nil || m.Author == nil || !m.Author.Bot {
		return
	}
	cfg := b.GetConfig()
	sc, ok := cfg.ScraperByBotID(m.Author.ID)
	if !ok {
		return
	}
	handler, ok := handlersByName[sc.Name]
	if !ok {
		return
	}
	handler(s, m, b)
}

// messageText flattens content plus embed titles and descriptions into
// one searchable string. The source bots spread their templates across
// all three.
func messageText(m *discordgo.Message) string {
	var sb strings.Builder
	sb.WriteString(m.Content)
	for _, embed := range m.Embeds {
		if embed.Title != "" {
			sb.WriteString("\n")
			sb.WriteString(embed.Title)
		}
		if embed.Description != "" {
			sb.WriteString("\n")
			sb.WriteString(embed.Description)
		}
		for _, field := range embed.Fields {
			if field == nil {
				continue
			}
			sb.WriteString("\n")
			sb.WriteString(field.Name)
			sb.WriteString("\n")
			sb.WriteString(field.Value)
		}
	}
	return sb.String()
}

var mentionPattern = regexp.MustCompile(`<@!?(\d+)>`)

// triggeringUserID resolves which human the bot message is about: the
// slash-command invoker when present, then the replied-to author, then
// the first user mention in the text.
func triggeringUserID(m *discordgo.Message) string {
	if m.Interaction != nil && m.Interaction.User != nil {
		return m.Interaction.User.ID
	}
	if m.ReferencedMessage != nil && m.ReferencedMessage.Author != nil {
		return m.ReferencedMessage.Author.ID
	}
	if match := mentionPattern.FindStringSubmatch(messageText(m)); match != nil {
		return match[1]
	}
	return ""
}
