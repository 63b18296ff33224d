package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swet3114/CampusAssets/config"
)

func init() {
	config.JWTKey = []byte("test-signing-key")
	config.JWTExpiration = time.Hour
}

func TestJWTRoundTrip(t *testing.T) {
	token, err := GenerateJWT("64f000000000000000000001", "EMP001", "Admin")
	require.NoError(t, err)

	claims, err := ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "64f000000000000000000001", claims.UserID)
	assert.Equal(t, "EMP001", claims.EmpID)
	assert.Equal(t, "Admin", claims.Role)
}

func TestValidateJWTRejectsExpired(t *testing.T) {
	orig := config.JWTExpiration
	config.JWTExpiration = -time.Minute
	defer func() { config.JWTExpiration = orig }()

	token, err := GenerateJWT("64f000000000000000000001", "EMP001", "Admin")
	require.NoError(t, err)

	_, err = ValidateJWT(token)
	assert.Error(t, err)
}

func TestValidateJWTRejectsWrongKey(t *testing.T) {
	token, err := GenerateJWT("64f000000000000000000001", "EMP001", "Admin")
	require.NoError(t, err)

	orig := config.JWTKey
	config.JWTKey = []byte("some-other-key")
	defer func() { config.JWTKey = orig }()

	_, err = ValidateJWT(token)
	assert.Error(t, err)
}

func TestTokenFromRequestPrefersCookie(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/assets", nil)
	r.AddCookie(&http.Cookie{Name: AuthCookieName, Value: "cookie-token"})
	r.Header.Set("Authorization", "Bearer header-token")

	assert.Equal(t, "cookie-token", TokenFromRequest(r))
}

func TestTokenFromRequestBearerFallback(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/assets", nil)
	r.Header.Set("Authorization", "Bearer header-token")
	assert.Equal(t, "header-token", TokenFromRequest(r))

	bare := httptest.NewRequest("GET", "/api/assets", nil)
	assert.Empty(t, TokenFromRequest(bare))
}

func TestAuthCookieLifecycle(t *testing.T) {
	w := httptest.NewRecorder()
	SetAuthCookie(w, "tok")

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	assert.Equal(t, AuthCookieName, c.Name)
	assert.Equal(t, "tok", c.Value)
	assert.True(t, c.HttpOnly)

	w = httptest.NewRecorder()
	ClearAuthCookie(w)
	cleared := w.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Empty(t, cleared[0].Value)
	assert.Equal(t, -1, cleared[0].MaxAge)
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)

	assert.True(t, CheckPasswordHash("s3cret", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}
