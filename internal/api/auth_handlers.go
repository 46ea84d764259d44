package api

import (
	"errors"
	"net/http"

	"backoffice/internal/auth"
	"backoffice/internal/util"

	"github.com/gin-gonic/gin"
)

// loginForm renders the login page
func (h *Handler) loginForm(c *gin.Context) {
	h.renderHTML(c, http.StatusOK, "login.tmpl", nil)
}

// login verifies the submitted credentials. Failures flash the same
// generic message regardless of which field was wrong.
func (h *Handler) login(c *gin.Context) {
	util.LoginAttemptsTotal.Inc()

	username := c.PostForm("username")
	password := c.PostForm("password")

	principal, err := h.authenticator.Verify(c.Request.Context(), username, password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			util.LoginFailuresTotal.Inc()
			auth.Flash(c, auth.FlashError, "Incorrect username or password.")
			c.Redirect(http.StatusFound, "/login")
			return
		}
		h.renderServerError(c, err)
		return
	}

	if err := auth.Login(c, *principal); err != nil {
		h.renderServerError(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/dashboard")
}

// logout drops the session and returns to the landing page
func (h *Handler) logout(c *gin.Context) {
	if err := auth.Logout(c); err != nil {
		h.renderServerError(c, err)
		return
	}

	auth.Flash(c, auth.FlashSuccess, "You are logged out")
	c.Redirect(http.StatusFound, "/")
}
