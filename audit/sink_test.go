package audit

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskIP(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"203.0.113.42", "203.0.0.0/16"},
		{"10.1.2.3", "10.1.0.0/16"},
		{"2001:db8:85a3::8a2e:370:7334", "2001:db8::/32"},
		{"not-an-ip", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MaskIP(tt.in), tt.in)
	}
}

func TestHashUserAgent(t *testing.T) {
	h := HashUserAgent("Mozilla/5.0")
	assert.True(t, strings.HasPrefix(h, "sha256:"))
	assert.Len(t, h, len("sha256:")+16)
	assert.Equal(t, h, HashUserAgent("Mozilla/5.0"))
	assert.NotEqual(t, h, HashUserAgent("curl/8.0"))
	assert.Empty(t, HashUserAgent(""))
}

func TestContextFromRequest(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/assets", nil)
	r.RemoteAddr = "203.0.113.42:51234"
	r.Header.Set("User-Agent", "Mozilla/5.0")

	ctx := ContextFromRequest(r, "req-1")
	assert.Equal(t, "203.0.0.0/16", ctx.IP)
	assert.True(t, strings.HasPrefix(ctx.UserAgent, "sha256:"))
	assert.Equal(t, "req-1", ctx.RequestID)
}

func TestContextFromRequestForwardedFor(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/assets", nil)
	r.RemoteAddr = "10.0.0.1:80"
	r.Header.Set("X-Forwarded-For", "198.51.100.7, 10.0.0.1")

	ctx := ContextFromRequest(r, "req-2")
	assert.Equal(t, "198.51.0.0/16", ctx.IP)
}
