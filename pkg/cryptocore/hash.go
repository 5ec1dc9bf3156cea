package cryptocore

import (
	"crypto/sha512"
	"hash"
)

// sha512New is the hash constructor used for every HKDF expansion in the
// key hierarchy.
func sha512New() hash.Hash {
	return sha512.New()
}
