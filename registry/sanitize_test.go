package registry

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeToken(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Laptop", "Laptop"},
		{"spaces become underscores", "Laptop Dell XPS", "Laptop_Dell_XPS"},
		{"specials stripped", "A/C Unit #3 (lobby)", "AC_Unit_3_lobby"},
		{"keeps dash and underscore", "rack_42-b", "rack_42-b"},
		{"trims outer whitespace", "  Projector  ", "Projector"},
		{"empty falls back", "", "ASSET"},
		{"only specials falls back", "@#$%!", "ASSET"},
		{"unicode stripped", "Büro-Stuhl", "Bro-Stuhl"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeToken(tt.in))
		})
	}
}

func TestSanitizeTokenTruncates(t *testing.T) {
	long := strings.Repeat("a", 100)
	got := SanitizeToken(long)
	assert.Len(t, got, 48)
	assert.Equal(t, strings.Repeat("a", 48), got)
}
