package handlers

import (
	"net/http"

	"farmpanel/internal/services"

	"github.com/gin-gonic/gin"
)

type StatusHandler struct {
	authService *services.AuthService
}

func NewStatusHandler(authService *services.AuthService) *StatusHandler {
	return &StatusHandler{authService: authService}
}

// Status renders the system status page. The error feed stays empty
// until a monitoring source is connected.
func (h *StatusHandler) Status(c *gin.Context) {
	c.HTML(http.StatusOK, "status.html", gin.H{
		"User":         currentUser(c, h.authService),
		"SystemErrors": []string{},
		"Flashes":      takeFlashes(c),
	})
}
