package cryptocore

import (
	"crypto/rand"
	"io"

	"golang.org/x/crypto/curve25519"

	"github.com/honeylink/honeylink-core/pkg/honeyerr"
)

// GenerateX25519KeyPair mints a new X25519 key agreement key pair.
func GenerateX25519KeyPair() (private, public [32]byte, err error) {
	if _, err = io.ReadFull(rand.Reader, private[:]); err != nil {
		return private, public, honeyerr.Wrap(honeyerr.KindInternal, err, "generate x25519 private scalar")
	}
	pub, err := curve25519.X25519(private[:], curve25519.Basepoint)
	if err != nil {
		return private, public, honeyerr.Wrap(honeyerr.KindInternal, err, "derive x25519 public key")
	}
	copy(public[:], pub)
	return private, public, nil
}

// ECDH computes the shared secret for a local private key and a peer's
// public key.
func ECDH(private, peerPublic [32]byte) (*Zeroizing, error) {
	shared, err := curve25519.X25519(private[:], peerPublic[:])
	if err != nil {
		return nil, honeyerr.Wrap(honeyerr.KindInternal, err, "compute x25519 shared secret")
	}
	return NewZeroizing(shared), nil
}
