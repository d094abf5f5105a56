package config

import (
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"os"
	"strconv"
	"time"
)

type Config struct {
	AppEnv   string
	LogLevel string

	HTTPPort int

	MongoURI string
	MongoDB  string

	// JWTSecret signs session tokens. Loaded once at startup; in dev a
	// random secret is generated when unset, which invalidates tokens on
	// restart.
	JWTSecret []byte
	TokenTTL  time.Duration

	// OpTimeout bounds every store/catalog call so no request hangs.
	OpTimeout time.Duration

	UploadDir string
}

func Load() Config {
	return Config{
		AppEnv:    getEnv("APP_ENV", "dev"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		HTTPPort:  getEnvInt("HTTP_PORT", 5000),
		MongoURI:  getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:   getEnv("MONGO_DB", "quickshop"),
		JWTSecret: loadSecret(),
		TokenTTL:  getEnvDuration("TOKEN_TTL", time.Hour),
		OpTimeout: getEnvDuration("OP_TIMEOUT", 5*time.Second),
		UploadDir: getEnv("UPLOAD_DIR", "./images"),
	}
}

func loadSecret() []byte {
	if v := os.Getenv("JWT_SECRET"); v != "" {
		return []byte(v)
	}
	slog.Warn("JWT_SECRET not set, generating a random dev secret; tokens will not survive a restart")
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic("config: cannot generate dev JWT secret: " + err.Error())
	}
	return []byte(hex.EncodeToString(b))
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}

	return n
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}

	return d
}
