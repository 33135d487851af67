package middleware

import (
	"crypto/subtle"
	"encoding/base64"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	appErrors "github.com/scoperhq/scoper-api/pkg/errors"
	"github.com/scoperhq/scoper-api/pkg/response"
)

// ContextAdminKey is the gin context key storing the authenticated
// admin username.
const ContextAdminKey = "adminUser"

// AdminCredentials holds the configured admin login. PasswordHash takes
// precedence over the plaintext Password when both are set.
type AdminCredentials struct {
	Username     string
	Password     string
	PasswordHash string
}

// BasicAuth protects the moderation routes with HTTP Basic auth. Both
// comparisons are constant time so a failed username and a failed
// password are indistinguishable by timing.
func BasicAuth(creds AdminCredentials) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, password, ok := parseBasicAuth(c.GetHeader("Authorization"))
		if !ok || !creds.match(username, password) {
			c.Header("WWW-Authenticate", `Basic realm="admin"`)
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		c.Set(ContextAdminKey, username)
		c.Next()
	}
}

func (creds AdminCredentials) match(username, password string) bool {
	// unconfigured credentials never authenticate
	if creds.Username == "" && creds.Password == "" && creds.PasswordHash == "" {
		return false
	}

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(creds.Username)) == 1

	var passOK bool
	if creds.PasswordHash != "" {
		passOK = bcrypt.CompareHashAndPassword([]byte(creds.PasswordHash), []byte(password)) == nil
	} else {
		passOK = subtle.ConstantTimeCompare([]byte(password), []byte(creds.Password)) == 1
	}
	return userOK && passOK
}

func parseBasicAuth(header string) (username, password string, ok bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Basic") {
		return "", "", false
	}
	decoded, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return "", "", false
	}
	username, password, found := strings.Cut(string(decoded), ":")
	if !found {
		return "", "", false
	}
	return username, password, true
}
