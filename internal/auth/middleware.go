package auth

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

const (
	sessionName  = "backoffice_session"
	principalKey = "principal"
)

// Flash kinds
const (
	FlashError   = "error"
	FlashSuccess = "success"
)

// SessionMiddleware installs the cookie-backed session store
func SessionMiddleware(secret string, maxAge int, secure bool) gin.HandlerFunc {
	store := cookie.NewStore([]byte(secret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   secure,
	})
	return sessions.Sessions(sessionName, store)
}

// CurrentPrincipal returns the authenticated principal, if any
func CurrentPrincipal(c *gin.Context) (Principal, bool) {
	p, ok := sessions.Default(c).Get(principalKey).(Principal)
	return p, ok
}

// Login stores the principal in the session
func Login(c *gin.Context, p Principal) error {
	sess := sessions.Default(c)
	sess.Set(principalKey, p)
	return sess.Save()
}

// Logout drops the principal from the session
func Logout(c *gin.Context) error {
	sess := sessions.Default(c)
	sess.Delete(principalKey)
	return sess.Save()
}

// Flash queues a one-shot message for the next rendered page
func Flash(c *gin.Context, kind, message string) {
	sess := sessions.Default(c)
	sess.AddFlash(message, kind)
	_ = sess.Save()
}

// Flashes drains the queued messages of one kind
func Flashes(c *gin.Context, kind string) []string {
	sess := sessions.Default(c)
	raw := sess.Flashes(kind)
	if len(raw) > 0 {
		_ = sess.Save()
	}

	messages := make([]string, 0, len(raw))
	for _, v := range raw {
		if msg, ok := v.(string); ok {
			messages = append(messages, msg)
		}
	}
	return messages
}

// RequireAuth short-circuits requests without an authenticated
// session: flash + redirect to the login page.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentPrincipal(c); !ok {
			Flash(c, FlashError, "You are not logged in")
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RedirectIfAuthenticated sends already-logged-in sessions away from
// the login page to the dashboard root.
func RedirectIfAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentPrincipal(c); ok {
			c.Redirect(http.StatusFound, "/dashboard")
			c.Abort()
			return
		}
		c.Next()
	}
}
