package multiplier

import (
	"log"
	"strconv"
	"strings"

	"gacha-helper/bot"
	"gacha-helper/model"
	"gacha-helper/utils"
	"gacha-helper/utils/database"

	"github.com/bwmarrin/discordgo"
)

// HandleButton routes the panel's page and add buttons.
func HandleButton(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot, id utils.ComponentID) {
	state, ok := loadOwnedState(s, i, b, id.Token)
	if !ok {
		return
	}

	switch id.Action {
	case "page":
		multipliers, err := database.ListMultipliers(b.GetDB(), state.UserID)
		if err != nil {
			log.Printf("Failed to list multipliers for paging: %v", err)
			utils.SendEphemeralResponse(s, i, "Could not refresh the panel.")
			return
		}
		if id.Extra == "next" {
			state.Page++
		} else {
			state.Page--
		}
		state.Page = utils.ClampPage(state.Page, len(multipliers), pageSize)
		rerender(s, i, b, state)
	case "add":
		err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseModal,
			Data: &discordgo.InteractionResponseData{
				CustomID: utils.ComponentID{Route: RouteKey, Action: "add_submit", Token: state.Token}.String(),
				Title:    "Add multiplier",
				Components: []discordgo.MessageComponent{
					discordgo.ActionsRow{
						Components: []discordgo.MessageComponent{
							discordgo.TextInput{
								CustomID:    "name",
								Label:       "Multiplier name",
								Style:       discordgo.TextInputShort,
								Placeholder: "e.g. Premium, Bank upgrade",
								Required:    true,
								MaxLength:   60,
							},
						},
					},
					discordgo.ActionsRow{
						Components: []discordgo.MessageComponent{
							discordgo.TextInput{
								CustomID:    "percent",
								Label:       "Percent bonus",
								Style:       discordgo.TextInputShort,
								Placeholder: "e.g. 15",
								Required:    true,
								MaxLength:   4,
							},
						},
					},
				},
			},
		})
		if err != nil {
			log.Printf("Failed to open add-multiplier modal: %v", err)
		}
	default:
		utils.AcknowledgeComponent(s, i)
	}
}

// HandleSelect removes the chosen multiplier by its name, the same
// natural key the render used, then re-renders with a clamped page.
func HandleSelect(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot, id utils.ComponentID) {
	state, ok := loadOwnedState(s, i, b, id.Token)
	if !ok {
		return
	}
	if id.Action != "remove" {
		utils.AcknowledgeComponent(s, i)
		return
	}

	values := i.MessageComponentData().Values
	if len(values) == 0 {
		utils.AcknowledgeComponent(s, i)
		return
	}
	if err := database.DeleteMultiplier(b.GetDB(), state.UserID, values[0]); err != nil {
		log.Printf("Failed to delete multiplier %s/%s: %v", state.UserID, values[0], err)
		utils.SendEphemeralResponse(s, i, "Could not remove that multiplier.")
		return
	}

	multipliers, err := database.ListMultipliers(b.GetDB(), state.UserID)
	if err == nil {
		state.Page = utils.ClampPage(state.Page, len(multipliers), pageSize)
	}
	rerender(s, i, b, state)
}

// HandleModal stores the submitted multiplier and re-renders the panel.
func HandleModal(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot, id utils.ComponentID) {
	state, ok := loadOwnedState(s, i, b, id.Token)
	if !ok {
		return
	}
	if id.Action != "add_submit" {
		utils.AcknowledgeComponent(s, i)
		return
	}

	data := i.ModalSubmitData()
	name := strings.TrimSpace(modalValue(data, "name"))
	percentStr := strings.TrimSpace(modalValue(data, "percent"))
	percent, err := strconv.Atoi(percentStr)
	if err != nil || name == "" || percent < 0 {
		utils.SendEphemeralResponse(s, i, "Enter a name and a non-negative whole percent.")
		return
	}

	m := model.Multiplier{UserID: state.UserID, Name: name, Percent: percent}
	if err := database.UpsertMultiplier(b.GetDB(), m); err != nil {
		log.Printf("Failed to upsert multiplier %s/%s: %v", state.UserID, name, err)
		utils.SendEphemeralResponse(s, i, "Could not save that multiplier.")
		return
	}
	rerender(s, i, b, state)
}

func modalValue(data discordgo.ModalSubmitInteractionData, customID string) string {
	for _, row := range data.Components {
		actionsRow, ok := row.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, component := range actionsRow.Components {
			input, ok := component.(*discordgo.TextInput)
			if !ok {
				continue
			}
			if input.CustomID == customID {
				return input.Value
			}
		}
	}
	return ""
}
