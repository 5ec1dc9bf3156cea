package cryptocore

import (
	"crypto/rand"
	"io"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/honeylink/honeylink-core/pkg/honeyerr"
)

// Seal encrypts plaintext with ChaCha20-Poly1305 under key, authenticating
// aad alongside it. The returned ciphertext is prefixed with a freshly
// generated 12-byte nonce.
func Seal(key [32]byte, aad, plaintext []byte) ([]byte, error) {
	aead, err := chacha20poly1305.New(key[:])
	if err != nil {
		return nil, honeyerr.Wrap(honeyerr.KindInternal, err, "construct AEAD cipher")
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, honeyerr.Wrap(honeyerr.KindInternal, err, "generate AEAD nonce")
	}

	sealed := aead.Seal(nil, nonce, plaintext, aad)
	return append(nonce, sealed...), nil
}

// Open decrypts a buffer produced by Seal, verifying aad. It returns a
// validation error if the buffer is shorter than a nonce, and an
// authentication error if authentication fails.
func Open(key [32]byte, aad, sealed []byte) ([]byte, error) {
	aead, err := chacha20poly1305.New(key[:])
	if err != nil {
		return nil, honeyerr.Wrap(honeyerr.KindInternal, err, "construct AEAD cipher")
	}

	if len(sealed) < aead.NonceSize() {
		return nil, honeyerr.Validationf("sealed buffer shorter than nonce size")
	}
	nonce, ciphertext := sealed[:aead.NonceSize()], sealed[aead.NonceSize():]

	plaintext, err := aead.Open(nil, nonce, ciphertext, aad)
	if err != nil {
		return nil, honeyerr.Wrap(honeyerr.KindAuthentication, err, "AEAD authentication failed")
	}
	return plaintext, nil
}
