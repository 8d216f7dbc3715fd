package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComponentIDRoundTrip(t *testing.T) {
	id := ComponentID{Route: "multi", Action: "page", Token: "abc123", Extra: "next"}
	parsed, err := ParseComponentID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)
}

func TestComponentIDWithoutExtra(t *testing.T) {
	id := ComponentID{Route: "wish", Action: "remove", Token: "tok"}
	assert.Equal(t, "wish:remove:tok", id.String())

	parsed, err := ParseComponentID("wish:remove:tok")
	require.NoError(t, err)
	assert.Equal(t, id, parsed)
	assert.Empty(t, parsed.Extra)
}

func TestParseComponentIDRejectsMalformed(t *testing.T) {
	for _, raw := range []string{
		"",
		"route",
		"route:action",
		"route:action:token:extra:more",
		":action:token",
		"route::token",
		"route:action:",
	} {
		_, err := ParseComponentID(raw)
		assert.Error(t, err, "raw=%q", raw)
	}
}

func TestParseComponentIDRejectsOverlong(t *testing.T) {
	raw := "r:a:" + strings.Repeat("x", MaxCustomIDLength)
	_, err := ParseComponentID(raw)
	assert.Error(t, err)
}
