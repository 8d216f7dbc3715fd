package utils

import (
	"fmt"
	"strings"
)

// MaxCustomIDLength is Discord's limit on component custom ids.
const MaxCustomIDLength = 100

// ComponentID is the decoded form of a component custom id. The wire
// format is "route:action:token[:extra]", colon-delimited ASCII.
type ComponentID struct {
	Route  string
	Action string
	Token  string
	Extra  string
}

// String encodes the id for the wire. The result must stay within
// Discord's length limit, which is why tokens are kept short.
func (c ComponentID) String() string {
	s := fmt.Sprintf("%s:%s:%s", c.Route, c.Action, c.Token)
	if c.Extra != "" {
		s += ":" + c.Extra
	}
	return s
}

// ParseComponentID decodes a custom id, validating it once so handlers
// never re-parse raw strings.
func ParseComponentID(raw string) (ComponentID, error) {
	if len(raw) > MaxCustomIDLength {
		return ComponentID{}, fmt.Errorf("custom id exceeds %d chars", MaxCustomIDLength)
	}
	parts := strings.Split(raw, ":")
	if len(parts) < 3 || len(parts) > 4 {
		return ComponentID{}, fmt.Errorf("malformed custom id %q", raw)
	}
	if parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return ComponentID{}, fmt.Errorf("custom id %q has an empty segment", raw)
	}
	id := ComponentID{Route: parts[0], Action: parts[1], Token: parts[2]}
	if len(parts) == 4 {
		id.Extra = parts[3]
	}
	return id, nil
}
