package handlers

import (
	"net/http"

	"farmpanel/internal/services"

	"github.com/gin-gonic/gin"
)

type EquipmentHandler struct {
	authService      *services.AuthService
	equipmentService *services.EquipmentService
}

func NewEquipmentHandler(authService *services.AuthService, equipmentService *services.EquipmentService) *EquipmentHandler {
	return &EquipmentHandler{
		authService:      authService,
		equipmentService: equipmentService,
	}
}

// List renders the full fleet ordered by name
func (h *EquipmentHandler) List(c *gin.Context) {
	flashes := takeFlashes(c)

	equipment, err := h.equipmentService.List()
	if err != nil {
		flashes = append(flashes, Flash{Message: "Failed to load equipment", Category: "error"})
	}

	c.HTML(http.StatusOK, "equipment.html", gin.H{
		"User":      currentUser(c, h.authService),
		"Equipment": equipment,
		"Flashes":   flashes,
	})
}

// SearchPage renders the empty search form
func (h *EquipmentHandler) SearchPage(c *gin.Context) {
	h.renderSearch(c, h.equipmentService.Search(""))
}

// Search handles a search submission. Filtering is not implemented; a
// non-empty term always yields an empty result set plus a notice.
func (h *EquipmentHandler) Search(c *gin.Context) {
	term := c.PostForm("search_term")
	h.renderSearch(c, h.equipmentService.Search(term))
}

func (h *EquipmentHandler) renderSearch(c *gin.Context, result *services.SearchResult) {
	flashes := takeFlashes(c)
	if result.Unavailable {
		flashes = append(flashes, Flash{Message: result.Notice, Category: "info"})
	}

	c.HTML(http.StatusOK, "equipment_search.html", gin.H{
		"User":       currentUser(c, h.authService),
		"Results":    result.Results,
		"SearchTerm": result.Term,
		"Flashes":    flashes,
	})
}
