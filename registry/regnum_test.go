package registry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRegPrefix(t *testing.T) {
	at := time.Date(2024, 1, 15, 9, 30, 45, 0, time.UTC)

	assert.Equal(t, "Laptop_Dell/20240115093045", RegPrefix("Laptop Dell", at))
	assert.Equal(t, "ASSET/20240115093045", RegPrefix("!!!", at), "unusable name falls back to the default token")
}

func TestRegWithSeq(t *testing.T) {
	prefix := RegPrefix("Chair", time.Date(2024, 1, 15, 9, 30, 45, 0, time.UTC))

	assert.Equal(t, "Chair/20240115093045/00001", RegWithSeq(prefix, 1))
	assert.Equal(t, "Chair/20240115093045/01000", RegWithSeq(prefix, 1000))
}

func TestRegistrationRe(t *testing.T) {
	valid := []string{
		"Chair/20240115093045/00001",
		"Laptop_Dell-2/20240115093045/01000",
		"ASSET/20240115093045/99999",
	}
	for _, s := range valid {
		assert.True(t, RegistrationRe.MatchString(s), s)
	}

	invalid := []string{
		"",
		"Chair/20240115093045",            // missing seq
		"Chair/2024011509304/00001",       // 13-digit stamp
		"Chair/20240115093045/0001",       // 4-digit seq
		"Ch air/20240115093045/00001",     // unsanitized name
		"Chair/20240115093045/00001/more", // trailing segment
	}
	for _, s := range invalid {
		assert.False(t, RegistrationRe.MatchString(s), s)
	}
}

func TestQrID(t *testing.T) {
	stamp := QrTimestamp(time.Date(2024, 1, 15, 9, 30, 45, 0, time.UTC))

	assert.Equal(t, "15012024093045", stamp, "day-first stamp, unlike the registration layout")
	assert.Equal(t, "UVPCE/IT/15012024093045/0001", QrID("UVPCE", "IT", stamp, 1))
	assert.Equal(t, "UVPCE/IT/15012024093045/2000", QrID("UVPCE", "IT", stamp, 2000))
}
