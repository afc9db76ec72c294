package handlers

import (
	"net/http"
	"time"

	"farmpanel/internal/services"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	authService      *services.AuthService
	equipmentService *services.EquipmentService
}

func NewDashboardHandler(authService *services.AuthService, equipmentService *services.EquipmentService) *DashboardHandler {
	return &DashboardHandler{
		authService:      authService,
		equipmentService: equipmentService,
	}
}

// Dashboard renders the fleet overview. Counts are recomputed on every
// request; nothing is cached.
func (h *DashboardHandler) Dashboard(c *gin.Context) {
	flashes := takeFlashes(c)

	stats, err := h.equipmentService.Stats()
	if err != nil {
		stats = &services.DashboardStats{}
		flashes = append(flashes, Flash{Message: "Failed to load equipment statistics", Category: "error"})
	}

	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"User":        currentUser(c, h.authService),
		"Stats":       stats,
		"CurrentTime": time.Now().Format("January 2, 2006 at 3:04 PM"),
		"Flashes":     flashes,
	})
}
