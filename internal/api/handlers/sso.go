package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type SSOHandler struct{}

func NewSSOHandler() *SSOHandler {
	return &SSOHandler{}
}

type validateSessionRequest struct {
	SessionToken string `json:"session_token" form:"session_token"`
}

// ValidateSession is the SSO integration point. Corporate directory
// validation is not wired up yet, so any presented token is rejected
// with an explicit not-implemented response.
func (h *SSOHandler) ValidateSession(c *gin.Context) {
	var req validateSessionRequest
	if c.ContentType() == "application/json" {
		_ = c.ShouldBindJSON(&req)
	} else {
		_ = c.ShouldBind(&req)
	}

	if req.SessionToken == "" {
		c.JSON(http.StatusOK, gin.H{"valid": false, "error": "No session token provided"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"valid": false, "error": "SSO not yet implemented"})
}
