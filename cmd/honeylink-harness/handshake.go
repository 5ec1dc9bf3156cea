package main

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/honeylink/honeylink-core/pkg/cryptocore"
	"github.com/honeylink/honeylink-core/pkg/honeyconfig"
	"github.com/honeylink/honeylink-core/pkg/honeyid"
	"github.com/honeylink/honeylink-core/pkg/policy"
	"github.com/honeylink/honeylink-core/pkg/session"
)

type handshakeResult struct {
	Session  session.HandshakeResponse `json:"session"`
	Policy   policy.Policy             `json:"policy"`
	PoPToken string                    `json:"pop_token"`
}

func newHandshakeCmd(configPath *string) *cobra.Command {
	var deviceA, deviceB, clientVersion, useCase string

	cmd := &cobra.Command{
		Use:   "handshake",
		Short: "Run a handshake, bind a policy, and mint a PoP token",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}

			devA, err := honeyid.NewDeviceId(deviceA)
			if err != nil {
				return fmt.Errorf("device-a: %w", err)
			}
			devB, err := honeyid.NewDeviceId(deviceB)
			if err != nil {
				return fmt.Errorf("device-b: %w", err)
			}

			negotiator, err := session.NewVersionNegotiator(cfg.Versioning.Min, cfg.Versioning.Max, cfg.Versioning.Max)
			if err != nil {
				return err
			}
			orch := session.NewOrchestrator(negotiator)

			ttl := cfg.SessionTTL()
			resp, err := orch.Handshake(session.HandshakeRequest{
				IdempotencyKey: "harness-" + devA.String() + "-" + devB.String(),
				DeviceA:        devA,
				DeviceB:        devB,
				ClientVersion:  clientVersion,
				TraceID:        "00-0000000000000000000000000000beef-00000000000000ef-01",
				TTL:            &ttl,
			}, requestFingerprint(deviceA, deviceB, clientVersion))
			if err != nil {
				return fmt.Errorf("handshake: %w", err)
			}

			rootKey := make([]byte, 32)
			if _, err := rand.Read(rootKey); err != nil {
				return err
			}
			hierarchy := cryptocore.NewKeyHierarchy(rootKey)
			defer hierarchy.Close()

			sessionKey, err := hierarchy.DeriveSimple(cryptocore.KeyScopeSession)
			if err != nil {
				return err
			}

			if err := orch.MarkPaired(resp.SessionID, resp.SessionID, "00-0000000000000000000000000000beef-00000000000000ef-01"); err != nil {
				return fmt.Errorf("mark paired: %w", err)
			}

			pub, priv, err := cryptocore.GenerateSigningKey()
			if err != nil {
				return err
			}
			profile, err := signedDemoProfile(priv, useCase)
			if err != nil {
				return err
			}
			store := policy.NewMemoryProfileStore(pub)
			if err := store.Create(profile); err != nil {
				return fmt.Errorf("create profile: %w", err)
			}

			boundPolicy, err := policy.CreatePolicyFromProfile(profile, 0, devA, nil)
			if err != nil {
				return fmt.Errorf("instantiate policy: %w", err)
			}

			nonce := make([]byte, 12)
			if _, err := rand.Read(nonce); err != nil {
				return err
			}
			popToken, err := cryptocore.GeneratePoPToken(sessionKey[:], cryptocore.PoPClaims{
				SessionID: resp.SessionID,
				DeviceID:  devA.String(),
				Nonce:     fmt.Sprintf("%x", nonce),
				ExpiresAt: resp.ExpiresAt,
			})
			if err != nil {
				return fmt.Errorf("mint pop token: %w", err)
			}

			out := handshakeResult{Session: resp, Policy: boundPolicy, PoPToken: popToken}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}

	cmd.Flags().StringVar(&deviceA, "device-a", "HL-A-0001", "initiating device id")
	cmd.Flags().StringVar(&deviceB, "device-b", "HL-B-0001", "responding device id")
	cmd.Flags().StringVar(&clientVersion, "client-version", "1.2.0", "client-offered SemVer")
	cmd.Flags().StringVar(&useCase, "use-case", "telemetry-stream", "profile use_case to instantiate a policy from")
	return cmd
}

func loadConfig(path string) (*honeyconfig.Config, error) {
	if path == "" {
		return honeyconfig.Default(), nil
	}
	return honeyconfig.Load(path)
}

// requestFingerprint is a 64-bit non-cryptographic hash of the canonical
// request body, per §3's IdempotencyRecord.request_fingerprint. FNV-1a is
// adequate: it need only detect a differing retry body, never resist a
// deliberate forgery.
func requestFingerprint(parts ...string) uint64 {
	const offset64 = 14695981039346656037
	const prime64 = 1099511628211
	h := uint64(offset64)
	for _, p := range parts {
		for i := 0; i < len(p); i++ {
			h ^= uint64(p[i])
			h *= prime64
		}
		h ^= 0xff
		h *= prime64
	}
	return h
}

