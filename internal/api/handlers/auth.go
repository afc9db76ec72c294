package handlers

import (
	"net/http"

	"farmpanel/internal/config"
	"farmpanel/internal/services"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService *services.AuthService
	sessions    *services.SessionService
	cfg         *config.Config
}

func NewAuthHandler(authService *services.AuthService, sessions *services.SessionService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		sessions:    sessions,
		cfg:         cfg,
	}
}

// Index redirects the root path to the dashboard. The session guard has
// already run, so unauthenticated visitors never reach this.
func (h *AuthHandler) Index(c *gin.Context) {
	c.Redirect(http.StatusFound, "/dashboard")
}

// LoginPage renders the login form
func (h *AuthHandler) LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{
		"Flashes": takeFlashes(c),
	})
}

// Login handles the login form submission. Failures re-render the form
// with a generic message that does not reveal which field was wrong.
func (h *AuthHandler) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	user, err := h.authService.Authenticate(username, password)
	if err != nil {
		c.HTML(http.StatusOK, "login.html", gin.H{
			"Flashes": append(takeFlashes(c), Flash{Message: "Invalid credentials", Category: "error"}),
		})
		return
	}

	token, err := h.sessions.Issue(user)
	if err != nil {
		c.HTML(http.StatusOK, "login.html", gin.H{
			"Flashes": append(takeFlashes(c), Flash{Message: "Login failed, please try again", Category: "error"}),
		})
		return
	}

	c.SetCookie(h.sessions.CookieName(), token, int(h.sessions.TTL().Seconds()), "/", "", false, true)
	setFlash(c, "Login successful", "success")
	c.Redirect(http.StatusFound, "/dashboard")
}

// Logout clears the session cookie and returns to the login page
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(h.sessions.CookieName(), "", -1, "/", "", false, true)
	setFlash(c, "Logged out successfully", "info")
	c.Redirect(http.StatusFound, "/login")
}

// Settings renders the account settings page
func (h *AuthHandler) Settings(c *gin.Context) {
	c.HTML(http.StatusOK, "settings.html", gin.H{
		"User":    currentUser(c, h.authService),
		"Flashes": takeFlashes(c),
	})
}
