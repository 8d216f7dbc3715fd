package remind

import (
	"log"
	"time"

	"gacha-helper/bot"
	"gacha-helper/reminder"
	"gacha-helper/utils"

	"github.com/bwmarrin/discordgo"
)

// reminderOwner reports whether the pressing user owns a delivered
// reminder; the owner's id rides in the custom id's extra segment.
// Notifications without the segment are treated as owned.
func reminderOwner(id utils.ComponentID, userID string) bool {
	return id.Extra == "" || id.Extra == userID
}

// HandleButton handles the dismiss and snooze buttons attached to a
// delivered reminder. Nobody but the owner may press them.
func HandleButton(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot, id utils.ComponentID) {
	user := utils.InteractionUser(i)
	if !reminderOwner(id, user.ID) {
		utils.SendEphemeralResponse(s, i, "That reminder belongs to someone else.")
		return
	}

	switch id.Action {
	case "dismiss":
		err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseDeferredMessageUpdate,
		})
		if err != nil {
			log.Printf("Failed to acknowledge dismiss button: %v", err)
			return
		}
		if err := s.ChannelMessageDelete(i.ChannelID, i.Message.ID); err != nil {
			log.Printf("Failed to delete reminder message: %v", err)
		}
	case "snooze":
		payload, err := reminder.ConsumeSnooze(b.GetDB(), id.Token, time.Now())
		if err != nil {
			log.Printf("Failed to snooze via token %s: %v", id.Token, err)
			utils.SendEphemeralResponse(s, i, "This snooze has expired. Set the reminder again.")
			return
		}
		// Pull the new due time forward without waiting a full poll.
		b.GetScheduler().Wake()
		utils.SendEphemeralResponse(s, i, "Snoozed **"+payload.Type+"** for 5 minutes.")
	default:
		utils.AcknowledgeComponent(s, i)
	}
}
