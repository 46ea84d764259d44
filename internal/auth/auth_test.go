package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"backoffice/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserSource struct {
	users map[string]*models.User
}

func (f *fakeUserSource) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	return f.users[username], nil
}

func newFakeSource(t *testing.T) *fakeUserSource {
	t.Helper()

	hash, err := HashPassword("admin123")
	require.NoError(t, err)

	return &fakeUserSource{users: map[string]*models.User{
		"admin": {ID: 1, Username: "admin", PasswordHash: hash, Role: models.RoleOwner},
	}}
}

func TestVerifySuccess(t *testing.T) {
	a := NewAuthenticator(newFakeSource(t))

	p, err := a.Verify(context.Background(), "admin", "admin123")
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.ID)
	assert.Equal(t, "admin", p.Username)
	assert.Equal(t, models.RoleOwner, p.Role)
}

func TestVerifyWrongPassword(t *testing.T) {
	a := NewAuthenticator(newFakeSource(t))

	p, err := a.Verify(context.Background(), "admin", "wrong-password")
	assert.Nil(t, p)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerifyUnknownUser(t *testing.T) {
	a := NewAuthenticator(newFakeSource(t))

	p, err := a.Verify(context.Background(), "nobody", "admin123")
	assert.Nil(t, p)

	// Same generic error as a wrong password: the caller cannot tell
	// which field was wrong.
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRequireAuthRedirectsAnonymous(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(SessionMiddleware("test-secret", 3600, false))
	router.GET("/dashboard", RequireAuth(), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestRedirectIfAuthenticated(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(SessionMiddleware("test-secret", 3600, false))
	router.POST("/session", func(c *gin.Context) {
		require.NoError(t, Login(c, Principal{ID: 1, Username: "admin", Role: models.RoleOwner}))
		c.Status(http.StatusNoContent)
	})
	router.GET("/login", RedirectIfAuthenticated(), func(c *gin.Context) {
		c.String(http.StatusOK, "login form")
	})

	// Anonymous request sees the login form
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/login", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	// Log in, then hit /login with the session cookie
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/session", nil))
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))
}
