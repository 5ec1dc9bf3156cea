package cryptocore

import (
	"crypto/ed25519"
	"crypto/rand"

	"github.com/honeylink/honeylink-core/pkg/honeyerr"
)

// GenerateSigningKey mints a new Ed25519 key pair.
func GenerateSigningKey() (ed25519.PublicKey, ed25519.PrivateKey, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, nil, honeyerr.Wrap(honeyerr.KindInternal, err, "generate ed25519 key pair")
	}
	return pub, priv, nil
}

// Sign signs message with an Ed25519 private key.
func Sign(priv ed25519.PrivateKey, message []byte) []byte {
	return ed25519.Sign(priv, message)
}

// Verify checks an Ed25519 signature over message.
func Verify(pub ed25519.PublicKey, message, signature []byte) error {
	if !ed25519.Verify(pub, message, signature) {
		return honeyerr.Authenticationf("ed25519 signature verification failed")
	}
	return nil
}
