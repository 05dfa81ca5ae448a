package config

import (
	"os"
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Config holds the runtime configuration, loaded once at startup.
type Config struct {
	Port   string
	DBPath string

	SessionCookieName    string
	SessionLifetime      time.Duration
	RegenerationInterval time.Duration

	MaxLoginAttempts int
	LoginBlockWindow time.Duration

	BcryptCost int

	TLSEnabled bool
	CertDir    string

	LogLevel string
	LogDev   bool
}

// Load reads configuration from the environment, applying defaults
// for anything unset.
func Load() Config {
	return Config{
		Port:   envString("ESTACIONA_PORT", "8080"),
		DBPath: envString("ESTACIONA_DB_PATH", "./estacionamento.db"),

		SessionCookieName:    envString("ESTACIONA_SESSION_NAME", "estacionafacil_session"),
		SessionLifetime:      envSeconds("ESTACIONA_SESSION_LIFETIME", 1800),
		RegenerationInterval: envSeconds("ESTACIONA_SESSION_REGEN_INTERVAL", 1800),

		MaxLoginAttempts: envInt("ESTACIONA_MAX_LOGIN_ATTEMPTS", 5),
		LoginBlockWindow: envSeconds("ESTACIONA_LOGIN_BLOCK_WINDOW", 900),

		BcryptCost: envInt("ESTACIONA_BCRYPT_COST", bcrypt.DefaultCost),

		TLSEnabled: os.Getenv("ESTACIONA_TLS") == "1",
		CertDir:    envString("ESTACIONA_CERT_DIR", "./certs"),

		LogLevel: envString("LOG_LEVEL", "info"),
		LogDev:   os.Getenv("LOG_DEV") == "1",
	}
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func envSeconds(key string, def int) time.Duration {
	return time.Duration(envInt(key, def)) * time.Second
}
