package cryptocore

import (
	"encoding/hex"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"

	"github.com/honeylink/honeylink-core/pkg/honeyerr"
)

// KeyScope identifies a position in the HoneyLink key hierarchy.
//
//   - KeyScopeRoot: the trust anchor, a five-year lifetime secret never
//     used directly for traffic protection.
//   - KeyScopeDeviceMaster: device identity key, rotated every 90 days.
//   - KeyScopeSession: per-session traffic key, lives for the session TTL.
//   - KeyScopeStream: per-stream key, lives for the connection.
type KeyScope int

const (
	KeyScopeRoot KeyScope = iota
	KeyScopeDeviceMaster
	KeyScopeSession
	KeyScopeStream
)

func (s KeyScope) String() string {
	switch s {
	case KeyScopeRoot:
		return "root"
	case KeyScopeDeviceMaster:
		return "device-master"
	case KeyScopeSession:
		return "session"
	case KeyScopeStream:
		return "stream"
	default:
		return "unknown"
	}
}

// derivedKeyLength is the output size for every HKDF expansion in the
// hierarchy: 32 bytes, matching the ChaCha20-Poly1305 key size.
const derivedKeyLength = 32

// KeyHierarchy derives scoped subkeys from a single root key using
// HKDF-SHA512, following the chain root -> device-master -> session ->
// stream described by the key-management design.
type KeyHierarchy struct {
	rootKey *Zeroizing
}

// NewKeyHierarchy wraps rootKey. Ownership of rootKey transfers to the
// hierarchy; call Close when done to zero it.
func NewKeyHierarchy(rootKey []byte) *KeyHierarchy {
	return &KeyHierarchy{rootKey: NewZeroizing(rootKey)}
}

// Close zeroes the root key material.
func (h *KeyHierarchy) Close() {
	h.rootKey.Zero()
}

// Derive expands the root key into a scoped subkey bound to context via
// the HKDF info parameter, returning a caller-owned Zeroizing buffer.
func (h *KeyHierarchy) Derive(scope KeyScope, context []byte) (*Zeroizing, error) {
	info := fmt.Appendf(nil, "honeylink:%s:%s", scope, hex.EncodeToString(context))
	reader := hkdf.New(sha512New, h.rootKey.Bytes(), nil, info)

	out := make([]byte, derivedKeyLength)
	if _, err := io.ReadFull(reader, out); err != nil {
		return nil, honeyerr.Wrap(honeyerr.KindInternal, err, "derive key for scope %s", scope)
	}
	return NewZeroizing(out), nil
}

// DeriveSimple derives a scoped subkey with no additional context,
// returning a fixed-size 32-byte array for use as an AEAD key.
func (h *KeyHierarchy) DeriveSimple(scope KeyScope) ([32]byte, error) {
	derived, err := h.Derive(scope, nil)
	if err != nil {
		return [32]byte{}, err
	}
	defer derived.Zero()

	var out [32]byte
	copy(out[:], derived.Bytes())
	return out, nil
}
