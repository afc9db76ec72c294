package handlers

import (
	"net/http"
	"net/url"

	"farmpanel/internal/services"

	"github.com/gin-gonic/gin"
)

type WebcamHandler struct {
	authService   *services.AuthService
	webcamService *services.WebcamService
}

func NewWebcamHandler(authService *services.AuthService, webcamService *services.WebcamService) *WebcamHandler {
	return &WebcamHandler{
		authService:   authService,
		webcamService: webcamService,
	}
}

// Viewer renders the webcam page
func (h *WebcamHandler) Viewer(c *gin.Context) {
	c.HTML(http.StatusOK, "webcam.html", gin.H{
		"User":    currentUser(c, h.authService),
		"Flashes": takeFlashes(c),
	})
}

// RequestImage proxies an image request to the camera backend and
// returns the normalized envelope. Always responds 200 with a JSON
// envelope; backend failures are reported inside it.
func (h *WebcamHandler) RequestImage(c *gin.Context) {
	cameraID := c.DefaultPostForm("camera_id", "main")
	requestType := c.DefaultPostForm("type", "image")

	// Every submitted field except the request type is forwarded to the
	// backend for non-image request types.
	extra := url.Values{}
	for key, values := range c.Request.PostForm {
		if key == "type" {
			continue
		}
		for _, value := range values {
			extra.Add(key, value)
		}
	}

	envelope := h.webcamService.RequestImage(cameraID, requestType, extra)
	c.JSON(http.StatusOK, envelope)
}
