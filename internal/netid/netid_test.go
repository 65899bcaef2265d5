package netid

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sha256hex(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

func TestResolve_Deterministic(t *testing.T) {
	a := Resolve("203.0.113.7:54321", "", "192.168.1.0/24")
	b := Resolve("203.0.113.7:54321", "", "192.168.1.0/24")
	require.Equal(t, a, b)
	require.Len(t, a, 64)
}

func TestResolve_NoHintHashesBareIP(t *testing.T) {
	got := Resolve("203.0.113.7:54321", "", "")
	assert.Equal(t, sha256hex("203.0.113.7"), got)
}

func TestResolve_HintChangesFingerprint(t *testing.T) {
	withHint := Resolve("203.0.113.7:54321", "", "192.168.1.0/24")
	without := Resolve("203.0.113.7:54321", "", "")
	assert.NotEqual(t, without, withHint)
	assert.Equal(t, sha256hex("203.0.113.7|192.168.1.0/24"), withHint)
}

func TestResolve_ForwardedForWins(t *testing.T) {
	got := Resolve("10.0.0.1:1234", "198.51.100.9", "")
	assert.Equal(t, sha256hex("198.51.100.9"), got)
}

func TestResolve_ForwardedForFirstEntryTrimmed(t *testing.T) {
	got := Resolve("10.0.0.1:1234", " 198.51.100.9 , 10.0.0.1, 172.16.0.1", "")
	assert.Equal(t, sha256hex("198.51.100.9"), got)
}

func TestResolve_RemoteAddrWithoutPort(t *testing.T) {
	got := Resolve("203.0.113.7", "", "")
	assert.Equal(t, sha256hex("203.0.113.7"), got)
}

func TestResolve_IPv6RemoteAddr(t *testing.T) {
	got := Resolve("[2001:db8::1]:443", "", "")
	assert.Equal(t, sha256hex("2001:db8::1"), got)
}

func TestResolve_UnknownSentinel(t *testing.T) {
	got := Resolve("", "", "")
	assert.Equal(t, sha256hex("unknown"), got)
}

func TestFromRequest_HeaderHint(t *testing.T) {
	r := httptest.NewRequest("GET", "/get", nil)
	r.RemoteAddr = "10.0.0.1:1234"
	r.Header.Set("X-Forwarded-For", "203.0.113.7")
	r.Header.Set("X-Local-Subnet", "192.168.1.0/24")

	assert.Equal(t, sha256hex("203.0.113.7|192.168.1.0/24"), FromRequest(r))
}

func TestFromRequest_QueryHintFallback(t *testing.T) {
	r := httptest.NewRequest("GET", "/get?local_subnet=192.168.1.0%2F24", nil)
	r.RemoteAddr = "203.0.113.7:9999"

	assert.Equal(t, sha256hex("203.0.113.7|192.168.1.0/24"), FromRequest(r))
}

func TestFromRequest_HeaderHintBeatsQuery(t *testing.T) {
	r := httptest.NewRequest("GET", "/get?local_subnet=10.9.0.0%2F16", nil)
	r.RemoteAddr = "203.0.113.7:9999"
	r.Header.Set("X-Local-Subnet", "192.168.1.0/24")

	assert.Equal(t, sha256hex("203.0.113.7|192.168.1.0/24"), FromRequest(r))
}
