package handlers

import (
	"html/template"
	"net/http"

	"farmpanel/internal/services"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	authService      *services.AuthService
	equipmentService *services.EquipmentService
	reportService    *services.ReportService
}

func NewReportHandler(authService *services.AuthService, equipmentService *services.EquipmentService, reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{
		authService:      authService,
		equipmentService: equipmentService,
		reportService:    reportService,
	}
}

// Page renders the reports form with the current fleet
func (h *ReportHandler) Page(c *gin.Context) {
	flashes := takeFlashes(c)

	equipment, err := h.equipmentService.List()
	if err != nil {
		flashes = append(flashes, Flash{Message: "Failed to load equipment", Category: "error"})
	}

	c.HTML(http.StatusOK, "reports.html", gin.H{
		"User":      currentUser(c, h.authService),
		"Equipment": equipment,
		"Flashes":   flashes,
	})
}

// Generate builds a report and renders the result page. A submitted
// custom template is not rendered and only triggers a warning.
func (h *ReportHandler) Generate(c *gin.Context) {
	reportType := c.DefaultPostForm("report_type", "summary")
	customTemplate := c.PostForm("custom_template")

	report, err := h.reportService.Generate(reportType, customTemplate)
	if err != nil {
		setFlash(c, "Failed to generate report", "error")
		c.Redirect(http.StatusFound, "/reports")
		return
	}

	flashes := takeFlashes(c)
	if report.Warning != "" {
		flashes = append(flashes, Flash{Message: report.Warning, Category: "warning"})
	}

	c.HTML(http.StatusOK, "report_result.html", gin.H{
		"User":    currentUser(c, h.authService),
		"Content": template.HTML(report.Content),
		"Flashes": flashes,
	})
}
