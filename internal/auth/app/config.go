package app

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is loaded from the environment. Key material arrives as
// base64-encoded DER; when absent or unusable, an ephemeral pair is
// generated at startup.
type Config struct {
	// Signing strategy: RS256 (asymmetric, default) or HS256.
	Algorithm string `env:"AUTH_JWT_ALGORITHM" envDefault:"RS256"`

	// HS256 shared secret. Also used as a verification fallback for
	// tokens minted before an HS256-to-RS256 migration.
	JWTSecret string `env:"AUTH_JWT_SECRET" envDefault:"dev-secret-change-me"`

	// RS256 key material (base64 DER: PKCS8 private, PKIX public).
	PrivateKeyBase64 string `env:"AUTH_JWT_PRIVATE_KEY"`
	PublicKeyBase64  string `env:"AUTH_JWT_PUBLIC_KEY"`
	KeyID            string `env:"AUTH_JWT_KEY_ID" envDefault:"systemrpg-backend-key-2025"`
	RSABits          int    `env:"AUTH_RSA_BITS" envDefault:"2048"`

	AccessTTL  time.Duration `env:"AUTH_ACCESS_TOKEN_TTL" envDefault:"15m"`
	RefreshTTL time.Duration `env:"AUTH_REFRESH_TOKEN_TTL" envDefault:"168h"`

	DatabaseFile string `env:"AUTH_DATABASE_FILE" envDefault:"auth.db"`

	// Revocation blacklist backend: sqlite (default) or redis.
	RevocationBackend string `env:"AUTH_REVOCATION_BACKEND" envDefault:"sqlite"`
	RedisAddr         string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword     string `env:"REDIS_PASSWORD"`
	RedisDB           int    `env:"REDIS_DB" envDefault:"0"`

	// Bootstrap admin, seeded on first start when the users table is empty.
	BootstrapAdminUsername string `env:"BOOTSTRAP_ADMIN_USERNAME" envDefault:"admin"`
	BootstrapAdminPassword string `env:"BOOTSTRAP_ADMIN_PASSWORD"`
	BootstrapAdminEmail    string `env:"BOOTSTRAP_ADMIN_EMAIL" envDefault:"admin@localhost"`

	Env                  string        `env:"ENV" envDefault:"dev"`
	LogLevel             string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat            string        `env:"LOG_FORMAT" envDefault:"json"`
	Port                 int           `env:"PORT" envDefault:"8080"`
	ShutdownGracePeriod  time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`
	HousekeepingInterval time.Duration `env:"HOUSEKEEPING_INTERVAL" envDefault:"24h"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	switch cfg.Algorithm {
	case "RS256", "HS256":
	default:
		return Config{}, fmt.Errorf("unsupported AUTH_JWT_ALGORITHM %q", cfg.Algorithm)
	}
	switch cfg.RevocationBackend {
	case "sqlite", "redis":
	default:
		return Config{}, fmt.Errorf("unsupported AUTH_REVOCATION_BACKEND %q", cfg.RevocationBackend)
	}

	return cfg, nil
}
