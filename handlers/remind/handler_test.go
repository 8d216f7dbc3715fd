package remind

import (
	"testing"
	"time"

	"gacha-helper/reminder"
	"gacha-helper/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCompactDuration(t *testing.T) {
	cases := []struct {
		input string
		want  time.Duration
	}{
		{"90m", 90 * time.Minute},
		{"2h", 2 * time.Hour},
		{"1h30m", 90 * time.Minute},
		{"3d", 72 * time.Hour},
		{"1d", 24 * time.Hour},
	}
	for _, c := range cases {
		got, err := parseCompactDuration(c.input)
		require.NoError(t, err, c.input)
		assert.Equal(t, c.want, got, c.input)
	}
}

func TestParseCompactDurationRejectsGarbage(t *testing.T) {
	for _, input := range []string{"xd", "0d", "-2d", "soon", ""} {
		_, err := parseCompactDuration(input)
		assert.Error(t, err, input)
	}
}

func TestReminderOwner(t *testing.T) {
	owned := utils.ComponentID{Route: reminder.RouteKey, Action: "snooze", Token: "tok", Extra: "owner"}
	assert.True(t, reminderOwner(owned, "owner"))
	assert.False(t, reminderOwner(owned, "intruder"))

	// Legacy messages without an owner segment stay actionable.
	legacy := utils.ComponentID{Route: reminder.RouteKey, Action: "dismiss", Token: "tok"}
	assert.True(t, reminderOwner(legacy, "anyone"))
}
