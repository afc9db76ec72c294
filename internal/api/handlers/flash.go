package handlers

import (
	"encoding/base64"
	"encoding/json"

	"farmpanel/internal/models"
	"farmpanel/internal/services"

	"github.com/gin-gonic/gin"
)

// flashCookie carries pending flash messages across a redirect. It is
// read once and cleared on the next rendered page.
const flashCookie = "farm_flash"

// Flash is a one-shot inline message shown on the next rendered page.
// Category is one of success, info, warning, error.
type Flash struct {
	Message  string `json:"message"`
	Category string `json:"category"`
}

// setFlash queues a flash message for the next rendered page
func setFlash(c *gin.Context, message, category string) {
	flashes := append(readFlashes(c), Flash{Message: message, Category: category})

	data, err := json.Marshal(flashes)
	if err != nil {
		return
	}
	c.SetCookie(flashCookie, base64.RawURLEncoding.EncodeToString(data), 300, "/", "", false, true)
}

// takeFlashes returns queued flash messages and clears the cookie
func takeFlashes(c *gin.Context) []Flash {
	flashes := readFlashes(c)
	if len(flashes) > 0 {
		c.SetCookie(flashCookie, "", -1, "/", "", false, true)
	}
	return flashes
}

func readFlashes(c *gin.Context) []Flash {
	raw, err := c.Cookie(flashCookie)
	if err != nil || raw == "" {
		return nil
	}

	data, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return nil
	}

	var flashes []Flash
	if err := json.Unmarshal(data, &flashes); err != nil {
		return nil
	}
	return flashes
}

// currentUser loads the user behind the active session for display.
// Returns nil when the session references a user that no longer
// exists; pages render without a user block in that case.
func currentUser(c *gin.Context, auth *services.AuthService) *models.User {
	id := c.GetUint("user_id")
	if id == 0 {
		return nil
	}

	user, err := auth.GetUser(id)
	if err != nil {
		return nil
	}
	return user
}
