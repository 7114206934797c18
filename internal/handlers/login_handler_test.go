package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"go-travel-api/internal/auth"
	"go-travel-api/internal/database"
	"go-travel-api/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionRouter() *gin.Engine {
	r := gin.New()
	r.POST("/login", Login)
	r.GET("/me", Me)
	r.DELETE("/logout", Logout)
	return r
}

func performForm(t *testing.T, r *gin.Engine, path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func responseCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, ck := range w.Result().Cookies() {
		if ck.Name == name {
			return ck
		}
	}
	return nil
}

func TestLoginWrongPassword(t *testing.T) {
	setupTestDB(t)
	createUser(t, "budi", "user")
	r := sessionRouter()

	w := performForm(t, r, "/login", url.Values{"username": {"budi"}, "password": {"wrong"}})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Username atau password salah", decodeBody(t, w)["msg"])
	assert.Nil(t, responseCookie(w, "token"))
}

func TestLoginSetsSessionCookie(t *testing.T) {
	setupTestDB(t)
	createUser(t, "budi", "user")
	r := sessionRouter()

	w := performForm(t, r, "/login", url.Values{"username": {"budi"}, "password": {"secret123"}})
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "budi", body["username"])
	assert.Equal(t, "user", body["role"])

	token := responseCookie(w, "token")
	require.NotNil(t, token)
	assert.True(t, token.HttpOnly)

	claims, err := auth.ValidateToken(token.Value)
	require.NoError(t, err)
	assert.Equal(t, "user", claims.Role)
}

func TestMeWithoutSession(t *testing.T) {
	setupTestDB(t)
	r := sessionRouter()

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Mohon login ke akun Anda", decodeBody(t, w)["msg"])
}

// Opting in stores only a hash, never the credentials, and the cookie
// value alone brings the session back.
func TestRememberMeRoundTrip(t *testing.T) {
	setupTestDB(t)
	user := createUser(t, "budi", "user")
	r := sessionRouter()

	w := performForm(t, r, "/login", url.Values{
		"username":   {"budi"},
		"password":   {"secret123"},
		"rememberMe": {"true"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	remember := responseCookie(w, "remember_token")
	require.NotNil(t, remember)
	require.NotEmpty(t, remember.Value)
	assert.True(t, remember.HttpOnly)

	var stored models.User
	require.NoError(t, database.DB.First(&stored, user.ID).Error)
	assert.NotEmpty(t, stored.RememberToken)
	assert.NotEqual(t, remember.Value, stored.RememberToken, "only the hash may be stored")
	assert.Equal(t, auth.HashRememberToken(remember.Value), stored.RememberToken)
	assert.NotContains(t, stored.RememberToken, "secret123")

	// A fresh visit with only the remember cookie re-authenticates
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: "remember_token", Value: remember.Value})
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, req)
	require.Equal(t, http.StatusOK, w2.Code)
	assert.Equal(t, "budi", decodeBody(t, w2)["username"])

	// ...and rotates the token
	rotated := responseCookie(w2, "remember_token")
	require.NotNil(t, rotated)
	assert.NotEqual(t, remember.Value, rotated.Value)
	require.NoError(t, database.DB.First(&stored, user.ID).Error)
	assert.Equal(t, auth.HashRememberToken(rotated.Value), stored.RememberToken)

	// The old token is now dead
	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: "remember_token", Value: remember.Value})
	w3 := httptest.NewRecorder()
	r.ServeHTTP(w3, req)
	assert.Equal(t, http.StatusUnauthorized, w3.Code)
}

func TestLoginWithoutRememberMeClearsToken(t *testing.T) {
	setupTestDB(t)
	user := createUser(t, "budi", "user")
	r := sessionRouter()

	w := performForm(t, r, "/login", url.Values{
		"username":   {"budi"},
		"password":   {"secret123"},
		"rememberMe": {"true"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	// Second login, opted out: the stored token must be revoked
	w = performForm(t, r, "/login", url.Values{"username": {"budi"}, "password": {"secret123"}})
	require.Equal(t, http.StatusOK, w.Code)

	var stored models.User
	require.NoError(t, database.DB.First(&stored, user.ID).Error)
	assert.Empty(t, stored.RememberToken)

	cleared := responseCookie(w, "remember_token")
	require.NotNil(t, cleared)
	assert.True(t, cleared.MaxAge < 0 || cleared.Value == "")
}

func TestLogoutRevokesEverything(t *testing.T) {
	setupTestDB(t)
	user := createUser(t, "budi", "user")
	r := sessionRouter()

	w := performForm(t, r, "/login", url.Values{
		"username":   {"budi"},
		"password":   {"secret123"},
		"rememberMe": {"true"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	token := responseCookie(w, "token")
	require.NotNil(t, token)

	req := httptest.NewRequest(http.MethodDelete, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: token.Value})
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, req)
	require.Equal(t, http.StatusOK, w2.Code)

	var stored models.User
	require.NoError(t, database.DB.First(&stored, user.ID).Error)
	assert.Empty(t, stored.RememberToken)
}
