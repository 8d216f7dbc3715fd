package utils

import (
	"log"

	"github.com/bwmarrin/discordgo"
)

// SendEphemeralResponse sends an ephemeral message to an interaction.
func SendEphemeralResponse(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: message,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Printf("Error sending ephemeral response: %v", err)
	}
}

// SendPublicResponse sends a visible message to an interaction.
func SendPublicResponse(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: message,
		},
	})
	if err != nil {
		log.Printf("Error sending public response: %v", err)
	}
}

// SendExpiredPanelResponse is the uniform reply for a stale or foreign
// panel token.
func SendExpiredPanelResponse(s *discordgo.Session, i *discordgo.InteractionCreate) {
	SendEphemeralResponse(s, i, "This panel has expired. Run the command again.")
}

// UpdatePanelMessage edits the panel message that owns the interaction
// in place with a freshly rendered payload.
func UpdatePanelMessage(s *discordgo.Session, i *discordgo.InteractionCreate, data *discordgo.InteractionResponseData) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: data,
	})
	if err != nil {
		log.Printf("Error updating panel message: %v", err)
	}
}

// AcknowledgeComponent acknowledges a component or modal interaction
// without changing the panel message. Used for actions that end up as
// no-ops, so the user never sees an interaction failure.
func AcknowledgeComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	})
	if err != nil {
		log.Printf("Error acknowledging component interaction: %v", err)
	}
}

// SendErrorReply reports a dispatch failure to the user, choosing reply
// vs follow-up based on whether the interaction was already acknowledged.
func SendErrorReply(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: message,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err == nil {
		return
	}
	_, err = s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
		Content: message,
		Flags:   discordgo.MessageFlagsEphemeral,
	})
	if err != nil {
		log.Printf("Error sending error follow-up: %v", err)
	}
}
