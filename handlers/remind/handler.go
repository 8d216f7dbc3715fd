package remind

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"gacha-helper/bot"
	"gacha-helper/model"
	"gacha-helper/reminder"
	"gacha-helper/utils"
	"gacha-helper/utils/database"

	"github.com/bwmarrin/discordgo"
	"github.com/sho0pi/naturaltime"
)

// ManualReminderType is the reminder type used for /remind set. Scraper
// reminders use their own types ("Karuta Visit", "Dank Daily", ...).
const ManualReminderType = "Manual"

var (
	parserOnce sync.Once
	parser     *naturaltime.Parser
	parserErr  error
)

func timeParser() (*naturaltime.Parser, error) {
	parserOnce.Do(func() {
		parser, parserErr = naturaltime.New()
	})
	return parser, parserErr
}

// parseCompactDuration handles the short forms users type when natural
// language fails: "90m", "2h", "1d". Days are not a time.ParseDuration
// unit, so they are peeled off first.
func parseCompactDuration(input string) (time.Duration, error) {
	if days, ok := strings.CutSuffix(input, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil || n <= 0 {
			return 0, fmt.Errorf("bad day count %q", days)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}
	return time.ParseDuration(input)
}

// parseWhen resolves a user-supplied time expression, trying natural
// language first ("in 20 minutes", "tomorrow at 9am") and falling back
// to compact durations ("90m", "2h", "1d").
func parseWhen(input string, now time.Time) (time.Time, error) {
	if p, err := timeParser(); err == nil {
		if result, err := p.ParseDate(input, now); err == nil && result != nil {
			return *result, nil
		}
	}
	if d, err := parseCompactDuration(input); err == nil {
		return now.Add(d), nil
	}
	return time.Time{}, fmt.Errorf("could not parse time: %s", input)
}

// HandleCommand is the entry point for /remind.
func HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		return
	}
	sub := options[0]
	switch sub.Name {
	case "set":
		handleSet(s, i, b, sub.Options)
	case "list":
		handleList(s, i, b)
	case "clear":
		handleClear(s, i, b, sub.Options)
	}
}

func handleSet(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot, options []*discordgo.ApplicationCommandInteractionDataOption) {
	var message, when, sendTo string
	for _, opt := range options {
		switch opt.Name {
		case "message":
			message = opt.StringValue()
		case "when":
			when = opt.StringValue()
		case "sendto":
			sendTo = opt.StringValue()
		}
	}

	now := time.Now()
	due, err := parseWhen(when, now)
	if err != nil {
		utils.SendEphemeralResponse(s, i, fmt.Sprintf("I could not understand `%s`. Try `in 20 minutes` or `2h`.", when))
		return
	}
	minutes := int(due.Sub(now).Minutes())
	if minutes < 1 {
		utils.SendEphemeralResponse(s, i, "Reminders need to be at least a minute out.")
		return
	}

	user := utils.InteractionUser(i)
	reminder.CreateReminder(b.GetDB(), user.ID, i.GuildID, i.ChannelID, minutes, ManualReminderType,
		model.ReminderInfo{Information: message}, sendTo == "dm")
	b.GetScheduler().Wake()

	confirmation := fmt.Sprintf("Reminder set for <t:%d:R>.", due.Unix())
	if sendTo == "dm" {
		utils.SendEphemeralResponse(s, i, confirmation)
		return
	}
	utils.SendPublicResponse(s, i, confirmation)
}

func handleList(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	user := utils.InteractionUser(i)
	reminders, err := database.ListRemindersByUser(b.GetDB(), user.ID)
	if err != nil {
		log.Printf("Failed to list reminders for user %s: %v", user.ID, err)
		utils.SendEphemeralResponse(s, i, "Could not load your reminders right now.")
		return
	}
	if len(reminders) == 0 {
		utils.SendEphemeralResponse(s, i, "You have no pending reminders.")
		return
	}

	var sb strings.Builder
	for _, r := range reminders {
		line := fmt.Sprintf("**%s** · <t:%d:R>", r.Type, r.DueAt/1000)
		if info := r.Info(); info.Information != "" {
			line += " · " + info.Information
		}
		sb.WriteString(line + "\n")
	}
	utils.SendEphemeralResponse(s, i, sb.String())
}

func handleClear(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot, options []*discordgo.ApplicationCommandInteractionDataOption) {
	var rtype string
	for _, opt := range options {
		if opt.Name == "type" {
			rtype = opt.StringValue()
		}
	}
	if rtype == "" {
		utils.SendEphemeralResponse(s, i, "Pick a reminder to clear.")
		return
	}

	user := utils.InteractionUser(i)
	if err := database.DeleteReminder(b.GetDB(), rtype, user.ID); err != nil {
		log.Printf("Failed to clear reminder %s/%s: %v", rtype, user.ID, err)
		utils.SendEphemeralResponse(s, i, "Could not clear that reminder.")
		return
	}
	utils.SendEphemeralResponse(s, i, fmt.Sprintf("Cleared **%s**.", rtype))
}

// HandleAutocomplete suggests the user's pending reminder types for
// /remind clear.
func HandleAutocomplete(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	user := utils.InteractionUser(i)
	reminders, err := database.ListRemindersByUser(b.GetDB(), user.ID)
	if err != nil {
		log.Printf("Failed to autocomplete reminders for user %s: %v", user.ID, err)
		return
	}

	var focused string
	for _, opt := range i.ApplicationCommandData().Options[0].Options {
		if opt.Focused {
			focused = opt.StringValue()
		}
	}

	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(reminders))
	for _, r := range reminders {
		if !strings.Contains(strings.ToLower(r.Type), strings.ToLower(focused)) {
			continue
		}
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  r.Type,
			Value: r.Type,
		})
	}
	if len(choices) > 25 {
		choices = choices[:25]
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{
			Choices: choices,
		},
	})
	if err != nil {
		log.Printf("Failed to respond to reminder autocomplete: %v", err)
	}
}
