package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures process-level configuration. Built from environment
// variables so main stays lean.
type Config struct {
	Addr          string
	JWTSigningKey string

	// PostgresDSN selects the Postgres-backed stores when set; empty falls
	// back to the in-memory stores.
	PostgresDSN string

	Redis RedisConfig
	Kafka KafkaConfig
	SMTP  SMTPConfig

	// Collaborator base URLs. Empty values select the deterministic mock
	// clients, which keeps local development self-contained.
	AuthProvisionerURL   string
	AuthProvisionerToken string
	MonitorServiceURL    string
	ChainServiceURL      string
	ChainServiceToken    string

	// ChainPermissionAudience is the audience requested on client grants
	// scoped to on-chain permissions.
	ChainPermissionAudience string

	// DIDResolutionTimeout bounds live did:web document fetches.
	DIDResolutionTimeout time.Duration

	// DIDCacheTTL enforces retention for resolved DID documents.
	DIDCacheTTL time.Duration
}

// RedisConfig configures the optional DID-document resolution cache.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig configures the audit event publisher.
type KafkaConfig struct {
	Brokers    []string
	AuditTopic string
}

// SMTPConfig configures the activation email dispatcher.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// FromEnv builds a Config from environment variables.
func FromEnv() Config {
	cfg := Config{
		Addr:                    envOr("REGISTRAR_ADDR", ":8080"),
		JWTSigningKey:           envOr("JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		PostgresDSN:             os.Getenv("DATABASE_URL"),
		AuthProvisionerURL:      os.Getenv("AUTH_PROVISIONER_URL"),
		AuthProvisionerToken:    os.Getenv("AUTH_PROVISIONER_TOKEN"),
		MonitorServiceURL:       os.Getenv("MONITOR_SERVICE_URL"),
		ChainServiceURL:         os.Getenv("CHAIN_SERVICE_URL"),
		ChainServiceToken:       os.Getenv("CHAIN_SERVICE_TOKEN"),
		ChainPermissionAudience: envOr("CHAIN_PERMISSION_AUDIENCE", "https://chain.permissions"),
		DIDResolutionTimeout:    envDuration("DID_RESOLUTION_TIMEOUT", 10*time.Second),
		DIDCacheTTL:             envDuration("DID_CACHE_TTL", 5*time.Minute),
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     envInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Kafka: KafkaConfig{
			Brokers:    splitNonEmpty(os.Getenv("KAFKA_BROKERS")),
			AuditTopic: envOr("KAFKA_AUDIT_TOPIC", "registrar.audit"),
		},
		SMTP: SMTPConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     envInt("SMTP_PORT", 587),
			Username: os.Getenv("SMTP_USERNAME"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     envOr("SMTP_FROM", "no-reply@registrar.localhost"),
		},
	}
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func splitNonEmpty(v string) []string {
	if v == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
