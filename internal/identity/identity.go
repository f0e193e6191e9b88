// Package identity derives anonymous storage keys and client addresses.
package identity

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net"
	"net/http"
	"strings"
)

const (
	// AnonymousUserID is used when a request carries no user id.
	AnonymousUserID = "anon"
	// ClientIDHeader may carry a device id when the body omits userId.
	ClientIDHeader = "X-Client-Id"
	hashLen        = 40
)

// HashUserID returns the first 40 hex characters of HMAC-SHA256(salt, raw).
// Raw ids never reach the memory store.
func HashUserID(salt, raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		raw = AnonymousUserID
	}
	mac := hmac.New(sha256.New, []byte(salt))
	mac.Write([]byte(raw))
	return hex.EncodeToString(mac.Sum(nil))[:hashLen]
}

// UserIDFromRequest picks the body id, then the client id header, then the
// anonymous id.
func UserIDFromRequest(r *http.Request, bodyID string) string {
	if id := strings.TrimSpace(bodyID); id != "" {
		return id
	}
	if id := strings.TrimSpace(r.Header.Get(ClientIDHeader)); id != "" {
		return id
	}
	return AnonymousUserID
}

// IPFromRequest returns the client IP. With trustProxy, the first
// X-Forwarded-For entry or X-Real-IP wins over RemoteAddr.
func IPFromRequest(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			first, _, _ := strings.Cut(xff, ",")
			if ip := strings.TrimSpace(first); ip != "" {
				return ip
			}
		}
		if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
