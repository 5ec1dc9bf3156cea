package cryptocore

// Zeroizing wraps a byte slice that holds secret material. Callers must
// call Zero once the buffer is no longer needed; Zero overwrites every
// byte so the key does not linger in memory or in a later heap reuse.
type Zeroizing struct {
	b []byte
}

// NewZeroizing wraps b. Ownership of b transfers to the returned value;
// callers must not retain their own reference to it.
func NewZeroizing(b []byte) *Zeroizing {
	return &Zeroizing{b: b}
}

// Bytes returns the wrapped buffer. The returned slice aliases internal
// storage and becomes invalid after Zero is called.
func (z *Zeroizing) Bytes() []byte {
	if z == nil {
		return nil
	}
	return z.b
}

// Zero overwrites the wrapped buffer with zero bytes.
func (z *Zeroizing) Zero() {
	if z == nil {
		return
	}
	for i := range z.b {
		z.b[i] = 0
	}
}
