package discovery

import (
	"crypto/rand"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/honeylink/honeylink-core/pkg/honeyerr"
)

// PairingAlphabet excludes visually ambiguous symbols (0, O, I, l, 1).
const PairingAlphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"

// PairingCodeTTL is how long a generated pairing code remains valid
// before it is treated as expired (§3, default 10 minutes).
const PairingCodeTTL = 10 * time.Minute

// PairingCode is a one-shot, human-typeable code binding a pairing
// attempt to a device id. Format: "XXXX-XXXX-XXXX", 12 symbols plus two
// hyphens, 14 characters total.
type PairingCode struct {
	Code      string
	DeviceID  string
	CreatedAt time.Time
	ExpiresAt time.Time
	UsedAt    time.Time
}

// GeneratePairingCode mints a fresh, unused PairingCode for deviceID.
func GeneratePairingCode(deviceID string) (PairingCode, error) {
	now := time.Now()
	code, err := randomPairingCode()
	if err != nil {
		return PairingCode{}, honeyerr.Wrap(honeyerr.KindInternal, err, "discovery: generate pairing code")
	}
	return PairingCode{
		Code:      code,
		DeviceID:  deviceID,
		CreatedAt: now,
		ExpiresAt: now.Add(PairingCodeTTL),
	}, nil
}

func randomPairingCode() (string, error) {
	var groups [3]string
	for g := 0; g < 3; g++ {
		var b strings.Builder
		buf := make([]byte, 4)
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}
		for _, by := range buf {
			b.WriteByte(PairingAlphabet[int(by)%len(PairingAlphabet)])
		}
		groups[g] = b.String()
	}
	return fmt.Sprintf("%s-%s-%s", groups[0], groups[1], groups[2]), nil
}

// PairingWindow tracks the one-shot lifecycle of outstanding pairing
// codes: once a code is consumed, every further validation for it fails
// with a State error, never silently re-validated.
type PairingWindow struct {
	mu    sync.Mutex
	codes map[string]*PairingCode
}

// NewPairingWindow constructs an empty pairing window.
func NewPairingWindow() *PairingWindow {
	return &PairingWindow{codes: make(map[string]*PairingCode)}
}

// Register adds a freshly generated code to the window.
func (w *PairingWindow) Register(code PairingCode) {
	w.mu.Lock()
	defer w.mu.Unlock()
	c := code
	w.codes[code.Code] = &c
}

// Validate consumes a pairing code for a device: the first call within
// the expiry window succeeds and marks the code used; every subsequent
// call, and every call after expiry, fails.
func (w *PairingWindow) Validate(code, deviceID string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	entry, ok := w.codes[code]
	if !ok {
		return honeyerr.NotFoundf("discovery: unknown pairing code")
	}
	if entry.DeviceID != deviceID {
		return honeyerr.Validationf("discovery: pairing code does not match device")
	}
	if !entry.UsedAt.IsZero() {
		return honeyerr.Statef("discovery: pairing code already used")
	}
	if time.Now().After(entry.ExpiresAt) {
		return honeyerr.Statef("discovery: pairing code expired")
	}
	entry.UsedAt = time.Now()
	return nil
}

// ValidateAlphabet reports whether every symbol in code belongs to
// PairingAlphabet, ignoring hyphens (P13).
func ValidateAlphabet(code string) bool {
	for _, r := range code {
		if r == '-' {
			continue
		}
		if !strings.ContainsRune(PairingAlphabet, r) {
			return false
		}
	}
	return true
}
