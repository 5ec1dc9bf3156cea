package cryptocore

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/honeylink/honeylink-core/pkg/honeyerr"
)

// PoPClaims binds a session to a device via a MAC over a fixed tuple.
type PoPClaims struct {
	SessionID string    `json:"session_id"`
	DeviceID  string    `json:"device_id"`
	Nonce     string    `json:"nonce"`
	ExpiresAt time.Time `json:"expires_at"`
}

// canonical renders the claims in a fixed field order so generate is
// deterministic in claims+key.
func (c PoPClaims) canonical() ([]byte, error) {
	ordered := struct {
		SessionID string `json:"session_id"`
		DeviceID  string `json:"device_id"`
		Nonce     string `json:"nonce"`
		ExpiresAt string `json:"expires_at"`
	}{
		SessionID: c.SessionID,
		DeviceID:  c.DeviceID,
		Nonce:     c.Nonce,
		ExpiresAt: c.ExpiresAt.UTC().Format(time.RFC3339Nano),
	}
	return json.Marshal(ordered)
}

// GeneratePoPToken produces the compact
// base64url(canonical_claims) || "." || base64url(mac) encoding of claims
// bound to key by HMAC-SHA256.
func GeneratePoPToken(key []byte, claims PoPClaims) (string, error) {
	canon, err := claims.canonical()
	if err != nil {
		return "", honeyerr.Wrap(honeyerr.KindInternal, err, "canonicalize PoP claims")
	}

	mac := hmac.New(sha256.New, key)
	mac.Write(canon)
	tag := mac.Sum(nil)

	return base64.RawURLEncoding.EncodeToString(canon) + "." + base64.RawURLEncoding.EncodeToString(tag), nil
}

// VerifyPoPToken parses and authenticates a compact PoP token against key.
// It rejects tokens whose MAC does not match or that have expired.
func VerifyPoPToken(key []byte, token string) (PoPClaims, error) {
	parts := strings.SplitN(token, ".", 2)
	if len(parts) != 2 {
		return PoPClaims{}, honeyerr.Validationf("malformed PoP token")
	}

	canon, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return PoPClaims{}, honeyerr.Validationf("malformed PoP token claims encoding")
	}
	tag, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return PoPClaims{}, honeyerr.Validationf("malformed PoP token mac encoding")
	}

	mac := hmac.New(sha256.New, key)
	mac.Write(canon)
	expected := mac.Sum(nil)
	if !hmac.Equal(expected, tag) {
		return PoPClaims{}, honeyerr.Authenticationf("PoP token mac mismatch")
	}

	var raw struct {
		SessionID string `json:"session_id"`
		DeviceID  string `json:"device_id"`
		Nonce     string `json:"nonce"`
		ExpiresAt string `json:"expires_at"`
	}
	if err := json.Unmarshal(canon, &raw); err != nil {
		return PoPClaims{}, honeyerr.Validationf("malformed PoP token claims payload")
	}
	expiresAt, err := time.Parse(time.RFC3339Nano, raw.ExpiresAt)
	if err != nil {
		return PoPClaims{}, honeyerr.Validationf("malformed PoP token expiry")
	}

	claims := PoPClaims{SessionID: raw.SessionID, DeviceID: raw.DeviceID, Nonce: raw.Nonce, ExpiresAt: expiresAt}
	if time.Now().After(claims.ExpiresAt) {
		return claims, honeyerr.Authenticationf("PoP token expired at %s", claims.ExpiresAt)
	}
	return claims, nil
}

// ReplayWindow rejects any (session_id, nonce) pair it has already
// accepted, bounded to the lifetime of the claims it tracks.
type ReplayWindow struct {
	mu   sync.Mutex
	seen map[string]time.Time
}

// NewReplayWindow constructs an empty replay window.
func NewReplayWindow() *ReplayWindow {
	return &ReplayWindow{seen: make(map[string]time.Time)}
}

// Check records claims as seen and reports an error if the (session_id,
// nonce) pair was already present and has not yet expired. It also
// garbage-collects entries whose expiry has passed.
func (w *ReplayWindow) Check(claims PoPClaims) error {
	key := fmt.Sprintf("%s:%s", claims.SessionID, claims.Nonce)

	w.mu.Lock()
	defer w.mu.Unlock()

	now := time.Now()
	for k, exp := range w.seen {
		if now.After(exp) {
			delete(w.seen, k)
		}
	}

	if exp, ok := w.seen[key]; ok && now.Before(exp) {
		return honeyerr.Authenticationf("PoP replay detected for session %s", claims.SessionID)
	}
	w.seen[key] = claims.ExpiresAt
	return nil
}
