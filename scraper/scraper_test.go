package scraper

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCoinGain(t *testing.T) {
	total, ok := ParseCoinGain("You found ⏣ 1,234 in the couch!")
	require.True(t, ok)
	assert.Equal(t, int64(1234), total)

	total, ok = ParseCoinGain("⏣ 500 from work and a bonus of ⏣ 250")
	require.True(t, ok)
	assert.Equal(t, int64(750), total)

	_, ok = ParseCoinGain("no coins here")
	assert.False(t, ok)
}

func TestDetectDankCooldown(t *testing.T) {
	cd, ok := DetectDankCooldown("Here are your DAILY COINS, come back tomorrow")
	require.True(t, ok)
	assert.Equal(t, "Dank Daily", cd.rtype)
	assert.Equal(t, 1440, cd.minutes)

	cd, ok = DetectDankCooldown("You went hunting and caught a skunk")
	require.True(t, ok)
	assert.Equal(t, "Dank Hunt", cd.rtype)

	_, ok = DetectDankCooldown("unrelated chatter")
	assert.False(t, ok)
}

func TestParseDropCards(t *testing.T) {
	text := "someone is dropping 3 cards!\n" +
		"1 · Attack on Titan · Mikasa Ackerman\n" +
		"2 · Bleach · Rukia Kuchiki\n" +
		"not a card line\n" +
		"3 · Naruto · Hinata Hyuga"

	require.True(t, IsKarutaDrop(text))
	cards := ParseDropCards(text)
	require.Len(t, cards, 3)
	assert.Equal(t, DropCard{Series: "Attack on Titan", Character: "Mikasa Ackerman"}, cards[0])
	assert.Equal(t, DropCard{Series: "Naruto", Character: "Hinata Hyuga"}, cards[2])
}

func TestIsKarutaVisitCooldown(t *testing.T) {
	assert.True(t, IsKarutaVisitCooldown("Visited! You can visit again in 10 hours."))
	assert.False(t, IsKarutaVisitCooldown("You grabbed a card"))
}

func TestClassifyNukeEvent(t *testing.T) {
	assert.Equal(t, NukeStart, ClassifyNukeEvent("Someone started a nuke! Get ready!"))
	assert.Equal(t, NukeClaim, ClassifyNukeEvent("You claimed Sakura!"))
	assert.Equal(t, NukeEnd, ClassifyNukeEvent("The nuke has ended. 42 cards claimed."))
	assert.Equal(t, NukeNone, ClassifyNukeEvent("hello world"))
}

func TestDetectIzziCooldown(t *testing.T) {
	rtype, _, minutes, ok := DetectIzziCooldown("Thank you for voting! Here is your reward.")
	require.True(t, ok)
	assert.Equal(t, "Izzi Vote", rtype)
	assert.Equal(t, 720, minutes)

	_, _, _, ok = DetectIzziCooldown("random message")
	assert.False(t, ok)
}

func TestDetectAnigameCooldown(t *testing.T) {
	rtype, _, _, ok := DetectAnigameCooldown("You have successfully voted for AniGame!")
	require.True(t, ok)
	assert.Equal(t, "Anigame Vote", rtype)

	_, _, _, ok = DetectAnigameCooldown("random message")
	assert.False(t, ok)
}

func TestMessageTextFlattensEmbeds(t *testing.T) {
	m := &discordgo.Message{
		Content: "outer",
		Embeds: []*discordgo.MessageEmbed{
			{
				Title:       "title",
				Description: "desc",
				Fields: []*discordgo.MessageEmbedField{
					{Name: "fname", Value: "fvalue"},
				},
			},
		},
	}
	text := messageText(m)
	for _, want := range []string{"outer", "title", "desc", "fname", "fvalue"} {
		assert.Contains(t, text, want)
	}
}

func TestTriggeringUserID(t *testing.T) {
	m := &discordgo.Message{
		Interaction: &discordgo.MessageInteraction{User: &discordgo.User{ID: "111"}},
	}
	assert.Equal(t, "111", triggeringUserID(m))

	m = &discordgo.Message{
		ReferencedMessage: &discordgo.Message{Author: &discordgo.User{ID: "222"}},
	}
	assert.Equal(t, "222", triggeringUserID(m))

	m = &discordgo.Message{Content: "hey <@333> your turn"}
	assert.Equal(t, "333", triggeringUserID(m))

	m = &discordgo.Message{Content: "nothing"}
	assert.Empty(t, triggeringUserID(m))
}
