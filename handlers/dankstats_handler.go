package handlers

import (
	"fmt"
	"log"
	"strings"

	"gacha-helper/bot"
	"gacha-helper/utils"
	"gacha-helper/utils/database"

	"github.com/bwmarrin/discordgo"
)

// HandleDankStatsCommand renders the scraped Dank Memer counters for a
// user as an embed.
func HandleDankStatsCommand(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	target := utils.InteractionUser(i)
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "user" {
			target = opt.UserValue(s)
		}
	}

	stats, err := database.ListDankStats(b.GetDB(), target.ID)
	if err != nil {
		log.Printf("Failed to load dank stats for user %s: %v", target.ID, err)
		utils.SendEphemeralResponse(s, i, "Could not load statistics right now.")
		return
	}
	if len(stats) == 0 {
		utils.SendEphemeralResponse(s, i, "No Dank Memer activity recorded yet.")
		return
	}

	var sb strings.Builder
	for _, stat := range stats {
		sb.WriteString(fmt.Sprintf("**%s**: %d\n", stat.Metric, stat.Value))
	}

	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("Dank Memer stats · %s", target.Username),
		Description: sb.String(),
		Color:       0x5865F2,
	}
	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
		},
	})
	if err != nil {
		log.Printf("Failed to respond to dankstats command: %v", err)
	}
}
