package config

import (
	"os"
	"strconv"
)

// AppConfig is the single process configuration. Values come from the
// environment with local-dev defaults, same knob per deployable node.
type AppConfig struct {
	NodeID   int64
	Port     int
	MongoURI string
	MongoDB  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// NatsURL empty disables the cross-node delivery relay.
	NatsURL string

	JwtSecret []byte
}

var Global = load()

func load() AppConfig {
	return AppConfig{
		NodeID:        envInt64("EM_NODE_ID", 1),
		Port:          envInt("EM_PORT", 8080),
		MongoURI:      envStr("EM_MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:       envStr("EM_MONGO_DB", "employee_management"),
		RedisAddr:     envStr("EM_REDIS_ADDR", "127.0.0.1:6379"),
		RedisPassword: envStr("EM_REDIS_PASSWORD", ""),
		RedisDB:       envInt("EM_REDIS_DB", 0),
		NatsURL:       envStr("EM_NATS_URL", ""),
		JwtSecret:     []byte(envStr("EM_JWT_SECRET", "dev-only-secret-change-me")),
	}
}

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envInt64(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}
