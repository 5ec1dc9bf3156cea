// Package cryptocore implements the HoneyLink cryptographic trust anchor:
// a hierarchical key derivation tree (root -> device-master -> session ->
// stream), ChaCha20-Poly1305 AEAD sealing, Ed25519 signing, X25519 key
// agreement, HMAC proof-of-possession tokens, and versioned key rotation.
//
// All secret material is carried in Zeroizing buffers and wiped as soon as
// it is no longer needed.
package cryptocore
