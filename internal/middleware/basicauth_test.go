package middleware

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func basicHeader(username, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(username+":"+password))
}

func newAuthRouter(creds AdminCredentials) *gin.Engine {
	r := gin.New()
	r.GET("/admin/ping", BasicAuth(creds), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": c.GetString(ContextAdminKey)})
	})
	return r
}

func TestBasicAuthAccepts(t *testing.T) {
	r := newAuthRouter(AdminCredentials{Username: "admin", Password: "hunter2"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set("Authorization", basicHeader("admin", "hunter2"))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user":"admin"`)
}

func TestBasicAuthRejectsWrongPassword(t *testing.T) {
	r := newAuthRouter(AdminCredentials{Username: "admin", Password: "hunter2"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set("Authorization", basicHeader("admin", "guess"))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, `Basic realm="admin"`, w.Header().Get("WWW-Authenticate"))
	assert.Contains(t, w.Body.String(), "UNAUTHORIZED")
}

func TestBasicAuthRejectsMissingHeader(t *testing.T) {
	r := newAuthRouter(AdminCredentials{Username: "admin", Password: "hunter2"})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/ping", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, `Basic realm="admin"`, w.Header().Get("WWW-Authenticate"))
}

func TestBasicAuthRejectsMalformedHeader(t *testing.T) {
	r := newAuthRouter(AdminCredentials{Username: "admin", Password: "hunter2"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set("Authorization", "Basic not-base64!!")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBasicAuthRejectsUnconfiguredCredentials(t *testing.T) {
	r := newAuthRouter(AdminCredentials{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set("Authorization", basicHeader("", ""))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBasicAuthBcryptHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	require.NoError(t, err)
	r := newAuthRouter(AdminCredentials{Username: "admin", PasswordHash: string(hash)})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set("Authorization", basicHeader("admin", "hunter2"))
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set("Authorization", basicHeader("admin", "wrong"))
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
