// Package honeyconfig loads the core's runtime configuration: session
// TTL/idle windows, transport QoS weights, FEC thresholds, rate-limit
// parameters, crypto rotation grace, discovery strategy, and the
// supported version range. Defaults mirror the values named in the
// configuration options table; a file (YAML, TOML, JSON - anything
// viper supports) and environment variables may override them.
package honeyconfig

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// SessionConfig holds session.* options.
type SessionConfig struct {
	TTLHours           int `mapstructure:"ttl_hours"`
	IdleSuspendMinutes int `mapstructure:"idle_suspend_minutes"`
}

// IdempotencyConfig holds idempotency.* options.
type IdempotencyConfig struct {
	RetentionHours int `mapstructure:"retention_hours"`
}

// WFQWeights holds transport.wfq_weights, one weight per priority band.
type WFQWeights struct {
	Control   int `mapstructure:"control"`
	Data      int `mapstructure:"data"`
	Telemetry int `mapstructure:"telemetry"`
}

// TransportConfig holds transport.* options.
type TransportConfig struct {
	WFQWeights          WFQWeights `mapstructure:"wfq_weights"`
	QueueCeiling        int        `mapstructure:"queue_ceiling"`
	HotswapStrategy     string     `mapstructure:"hotswap_strategy"`
	PollingIntervalSecs int        `mapstructure:"polling_interval_secs"`
}

// FECConfig holds fec.* options. LossThresholds is [light, heavy].
type FECConfig struct {
	LossThresholds [2]float64 `mapstructure:"loss_thresholds"`
}

// RateLimitConfig holds ratelimit.* options.
type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             float64 `mapstructure:"burst"`
}

// CryptoConfig holds crypto.* options.
type CryptoConfig struct {
	RotationGraceHours int `mapstructure:"rotation_grace_hours"`
}

// DiscoveryConfig holds discovery.* options.
type DiscoveryConfig struct {
	Strategy     string `mapstructure:"strategy"`
	AnnouncePort int    `mapstructure:"announce_port"`
}

// VersioningConfig holds versioning.min/max, the supported session SemVer range.
type VersioningConfig struct {
	Min string `mapstructure:"min"`
	Max string `mapstructure:"max"`
}

// Config is the full set of options the core recognises.
type Config struct {
	Session     SessionConfig     `mapstructure:"session"`
	Idempotency IdempotencyConfig `mapstructure:"idempotency"`
	Transport   TransportConfig   `mapstructure:"transport"`
	FEC         FECConfig         `mapstructure:"fec"`
	RateLimit   RateLimitConfig   `mapstructure:"ratelimit"`
	Crypto      CryptoConfig      `mapstructure:"crypto"`
	Discovery   DiscoveryConfig   `mapstructure:"discovery"`
	Versioning  VersioningConfig  `mapstructure:"versioning"`
}

// SessionTTL returns Session.TTLHours as a time.Duration.
func (c Config) SessionTTL() time.Duration {
	return time.Duration(c.Session.TTLHours) * time.Hour
}

// IdleSuspend returns Session.IdleSuspendMinutes as a time.Duration.
func (c Config) IdleSuspend() time.Duration {
	return time.Duration(c.Session.IdleSuspendMinutes) * time.Minute
}

// IdempotencyRetention returns Idempotency.RetentionHours as a time.Duration.
func (c Config) IdempotencyRetention() time.Duration {
	return time.Duration(c.Idempotency.RetentionHours) * time.Hour
}

// RotationGrace returns Crypto.RotationGraceHours as a time.Duration.
func (c Config) RotationGrace() time.Duration {
	return time.Duration(c.Crypto.RotationGraceHours) * time.Hour
}

// applyDefaults registers every default named in the configuration
// options table onto v, so Load succeeds even with no file and no
// environment overrides present.
func applyDefaults(v *viper.Viper) {
	v.SetDefault("session.ttl_hours", 12)
	v.SetDefault("session.idle_suspend_minutes", 30)
	v.SetDefault("idempotency.retention_hours", 24)
	v.SetDefault("transport.wfq_weights.control", 25)
	v.SetDefault("transport.wfq_weights.data", 60)
	v.SetDefault("transport.wfq_weights.telemetry", 15)
	v.SetDefault("transport.queue_ceiling", 10000)
	v.SetDefault("transport.hotswap_strategy", "manual")
	v.SetDefault("transport.polling_interval_secs", 5)
	v.SetDefault("fec.loss_thresholds", []float64{0.05, 0.10})
	v.SetDefault("ratelimit.requests_per_second", 100.0)
	v.SetDefault("ratelimit.burst", 200.0)
	v.SetDefault("crypto.rotation_grace_hours", 24)
	v.SetDefault("discovery.strategy", "prefer_mdns")
	v.SetDefault("discovery.announce_port", 7843)
	v.SetDefault("versioning.min", "1.0.0")
	v.SetDefault("versioning.max", "2.9.99")
}

// Load builds a Config from defaults, optionally overlaid by the file at
// path (any format viper recognises by extension; ignored if path is
// empty) and then by HONEYLINK_-prefixed environment variables, e.g.
// HONEYLINK_SESSION_TTL_HOURS=6.
func Load(path string) (*Config, error) {
	v := viper.New()
	applyDefaults(v)

	v.SetEnvPrefix("honeylink")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns a Config populated with every documented default and
// no file/environment overlay.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		// Defaults alone never fail to unmarshal; a failure here is a
		// programming error in applyDefaults, not a runtime condition.
		panic(err)
	}
	return cfg
}
