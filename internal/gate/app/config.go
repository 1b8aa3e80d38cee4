package app

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/harborchat/gatehouse/internal/gate/domain"
)

type Config struct {
	Namespace      string // Optional: cookie namespace prefix (default: gatehouse)
	Issuer         string // Optional: issuer claim for session tokens (default: gatehouse)
	BootstrapToken string // Optional: token required to perform bootstrap; empty disables it

	ConsumptionMode      domain.ConsumptionMode // Required choice: single or counted (default: single)
	InviteDuration       time.Duration          // Required: invite validity window, no fallback
	InviteMaxUses        int                    // Optional: default per-invite cap in counted mode (default: 1)
	RoleWithoutInvite    string                 // Optional: role for uninvited signups (default: guest)
	RoleWithInvite       string                 // Optional: role granted on consumption (default: member)
	SignupRequiresInvite bool                   // Optional: hard-gate signup (default: true in single mode)
	SigninURL            string                 // Optional: redirect target for failed redeems (default: /sign-in)

	SessionTTL            time.Duration // Optional: session token lifetime (default: 12h)
	DatabaseFile          string        // Optional: path to SQLite database file (default: ./gate.db)
	PepperFile            string        // Optional: path to pepper file for password hashing (default: ./pepper)
	Env                   string        // Environment (dev, staging, prod) (default: dev)
	LogLevel              string        // Log level (debug, info, warn, error) (default: info)
	LogFormat             string        // Log format (json, text) (default: json)
	Port                  int           // HTTP server port (default: 8080)
	ShutdownGracePeriod   time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval  time.Duration // Expired-invite sweep interval (default: 1h)
	HousekeepingRetention time.Duration // How long expired invites are kept before sweeping (default: 24h)
}

// LoadConfig reads configuration from the environment, after loading a .env
// file when one is present. The invite duration is the one setting without a
// fallback: the operator must decide how long codes live.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Namespace:             getEnvOrDefault("GATE_NAMESPACE", "gatehouse"),
		Issuer:                getEnvOrDefault("GATE_ISSUER", "gatehouse"),
		BootstrapToken:        os.Getenv("BOOTSTRAP_TOKEN"),
		InviteMaxUses:         getEnvIntOrDefault("GATE_INVITE_MAX_USES", 1),
		RoleWithoutInvite:     getEnvOrDefault("GATE_ROLE_WITHOUT_INVITE", "guest"),
		RoleWithInvite:        getEnvOrDefault("GATE_ROLE_WITH_INVITE", "member"),
		SigninURL:             getEnvOrDefault("GATE_SIGNIN_URL", "/sign-in"),
		SessionTTL:            getEnvDurationOrDefault("GATE_SESSION_TTL", 12*time.Hour),
		DatabaseFile:          getEnvOrDefault("GATE_DATABASE_FILE", "gate.db"),
		PepperFile:            getEnvOrDefault("GATE_PEPPER_FILE", "pepper"),
		Env:                   getEnvOrDefault("ENV", "dev"),
		LogLevel:              getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:             getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                  getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:   getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval:  getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
		HousekeepingRetention: getEnvDurationOrDefault("HOUSEKEEPING_RETENTION", 24*time.Hour),
	}

	switch mode := getEnvOrDefault("GATE_CONSUMPTION_MODE", "single"); mode {
	case "single":
		cfg.ConsumptionMode = domain.ConsumptionSingle
	case "counted":
		cfg.ConsumptionMode = domain.ConsumptionCounted
	default:
		return Config{}, fmt.Errorf("GATE_CONSUMPTION_MODE must be single or counted, got %q", mode)
	}

	// Single mode gates signup by default; counted mode treats invites as an
	// optional upgrade.
	cfg.SignupRequiresInvite = getEnvBoolOrDefault("GATE_SIGNUP_REQUIRES_INVITE",
		cfg.ConsumptionMode == domain.ConsumptionSingle)

	raw := os.Getenv("GATE_INVITE_DURATION")
	if raw == "" {
		return Config{}, fmt.Errorf("GATE_INVITE_DURATION is required (e.g. 24h)")
	}
	duration, err := parseDuration(raw)
	if err != nil || duration <= 0 {
		return Config{}, fmt.Errorf("GATE_INVITE_DURATION is not a valid duration: %q", raw)
	}
	cfg.InviteDuration = duration

	return cfg, nil
}

// parseDuration accepts Go duration syntax and falls back to plain seconds.
func parseDuration(value string) (time.Duration, error) {
	if d, err := time.ParseDuration(value); err == nil {
		return d, nil
	}
	secs, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	return time.Duration(secs) * time.Second, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if boolValue, err := strconv.ParseBool(value); err == nil {
		return boolValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := parseDuration(value); err == nil {
		return duration
	}

	return defaultValue
}
