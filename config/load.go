package config

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

func Load() App {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := App{
		Port:                getenv("APP_PORT", "8080"),
		DatabaseURL:         must("DATABASE_URL"),
		JWTSecret:           getenv("JWT_SECRET", "local_dev_secret"),
		Env:                 getenv("APP_ENV", "dev"),
		GatewayURL:          os.Getenv("GATEWAY_URL"),
		GatewayAPIKey:       os.Getenv("GATEWAY_API_KEY"),
		GatewayMode:         getenv("GATEWAY_MODE", "live"),
		CancelLimitPerMonth: getint("CANCEL_LIMIT_PER_MONTH", 0),
		DemoSeed:            getbool("DEMO_SEED", false),
	}
	return cfg
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getint(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("bad int env, using default", "key", k, "value", v)
		return def
	}
	return n
}

func getbool(k string, def bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("bad bool env, using default", "key", k, "value", v)
		return def
	}
	return b
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		slog.Error("required env missing", "key", k)
		panic("missing env " + k)
	}
	return v
}
