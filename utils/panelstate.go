package utils

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"log"
	"strconv"
	"time"

	"gacha-helper/model"
	"gacha-helper/utils/database"

	"github.com/jmoiron/sqlx"
)

// maxTokenLength keeps tokens short enough to share a custom id with the
// route, action and an extra segment.
const maxTokenLength = 40

// NewStateToken builds an opaque panel token from the owner id suffix,
// the current time and random bytes. It is a handle, not a credential:
// ownership is re-checked against the stored state on every access.
func NewStateToken(ownerID string) string {
	suffix := ownerID
	if len(suffix) > 4 {
		suffix = suffix[len(suffix)-4:]
	}
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		log.Printf("Failed to read random bytes for state token: %v", err)
	}
	token := suffix + strconv.FormatInt(time.Now().UnixMilli(), 36) + hex.EncodeToString(buf)
	if len(token) > maxTokenLength {
		token = token[:maxTokenLength]
	}
	return token
}

// SavePanelState serializes a panel's UI state under its token.
func SavePanelState(db *sqlx.DB, token string, state any) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return database.SaveState(db, token, model.StateTypePanel, string(data), false)
}

// LoadPanelState reloads a panel's UI state into out. It returns false
// for a missing row or corrupt JSON; callers treat both as an expired
// panel rather than an error.
func LoadPanelState(db *sqlx.DB, token string, out any) bool {
	jsonState, ok, err := database.GetState(db, token, model.StateTypePanel)
	if err != nil {
		log.Printf("Failed to load panel state %s: %v", token, err)
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(jsonState), out); err != nil {
		log.Printf("Discarding corrupt panel state %s: %v", token, err)
		return false
	}
	return true
}

// DeletePanelState drops a panel's stored state, expiring its components.
func DeletePanelState(db *sqlx.DB, token string) {
	if err := database.DeleteState(db, token, model.StateTypePanel); err != nil {
		log.Printf("Failed to delete panel state %s: %v", token, err)
	}
}
