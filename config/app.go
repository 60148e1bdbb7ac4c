package config

type App struct {
	Port        string `env:"APP_PORT" default:"8080"`
	DatabaseURL string `env:"DATABASE_URL,required"`
	JWTSecret   string `env:"JWT_SECRET,required"`
	Env         string `env:"APP_ENV" default:"dev"`

	// Payment gateway used for method=direct bookings. Mode "sandbox" swaps
	// in the always-approving stub; the selection happens once at boot.
	GatewayURL    string `env:"GATEWAY_URL"`
	GatewayAPIKey string `env:"GATEWAY_API_KEY"`
	GatewayMode   string `env:"GATEWAY_MODE" default:"live"`

	// CancelLimitPerMonth caps cancellations per user per calendar month.
	// 0 disables the policy. The reference product value is 2.
	CancelLimitPerMonth int `env:"CANCEL_LIMIT_PER_MONTH" default:"0"`

	// DemoSeed inserts demo accounts, tasks and blocked slots at startup.
	DemoSeed bool `env:"DEMO_SEED" default:"false"`
}
