// Package netid derives the network fingerprint that keys every
// shoutbox record: a SHA-256 digest over the client's public IP,
// optionally combined with a client-declared local subnet hint. Only
// the digest ever leaves this package, so the stored key is not
// reversible to an address.
package netid

import (
	"crypto/sha256"
	"encoding/hex"
	"net"
	"net/http"
	"strings"
)

// unknownAddr is hashed when no usable client address is available, so
// Resolve always yields a valid fingerprint.
const unknownAddr = "unknown"

// Resolve computes the fingerprint for a connection. The forwarded
// header wins over the raw connection address; a subnet hint is joined
// with "|" before hashing, a missing hint hashes the bare IP with no
// separator. Identical inputs always produce identical digests — the
// unique-key lookups depend on that.
func Resolve(remoteAddr, forwardedFor, subnetHint string) string {
	raw := effectiveIP(remoteAddr, forwardedFor)
	if subnetHint != "" {
		raw = raw + "|" + subnetHint
	}
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// FromRequest extracts the resolver inputs from an HTTP request:
// X-Forwarded-For, the X-Local-Subnet header (or local_subnet query
// parameter as fallback), and the connection address.
func FromRequest(r *http.Request) string {
	hint := r.Header.Get("X-Local-Subnet")
	if hint == "" {
		hint = r.URL.Query().Get("local_subnet")
	}
	return Resolve(r.RemoteAddr, r.Header.Get("X-Forwarded-For"), hint)
}

func effectiveIP(remoteAddr, forwardedFor string) string {
	if forwardedFor != "" {
		// First entry is the original client when passing proxies.
		if idx := strings.Index(forwardedFor, ","); idx != -1 {
			forwardedFor = forwardedFor[:idx]
		}
		if ip := strings.TrimSpace(forwardedFor); ip != "" {
			return ip
		}
	}

	if host, _, err := net.SplitHostPort(remoteAddr); err == nil && host != "" {
		return host
	}
	if remoteAddr != "" {
		return remoteAddr
	}
	return unknownAddr
}
