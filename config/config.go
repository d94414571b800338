package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Relay providers
const (
	RelayWeb3Forms = "web3forms"
	RelayResend    = "resend"
	RelayLog       = "log"
)

const (
	// DefaultRelayEndpoint is the Web3Forms submission endpoint
	DefaultRelayEndpoint = "https://api.web3forms.com/submit"
	// DefaultSuccessResetDelay is how long the success state stays visible before the modal closes
	DefaultSuccessResetDelay = 2000 * time.Millisecond
)

type Config struct {
	ServerPort  string
	Environment string
	AppURL      string
	// Form relay
	RelayProvider     string
	RelayFallback     bool // RelayProvider was switched to the log relay because credentials were missing
	RelayEndpoint     string
	RelayAccessKey    string
	RelayFromName     string
	RelayTimeout      time.Duration // Zero means no local timeout
	SuccessResetDelay time.Duration
	ContactEmail      string
	// Email relay (Resend)
	ResendAPIKey  string
	EmailFrom     string
	EmailFromName string
	NotifyEmail   string
	// Visitor sessions
	SessionTTL time.Duration
	// Other
	AllowedOrigins []string
	MetricsEnabled bool
}

func Load() *Config {
	// Load .env file (ignore error if not present - use system env vars)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := &Config{
		ServerPort:        getEnv("SERVER_PORT", "8080"),
		Environment:       getEnv("ENVIRONMENT", "development"),
		AppURL:            getEnv("APP_URL", "http://localhost:8080"),
		RelayProvider:     strings.ToLower(getEnv("RELAY_PROVIDER", RelayWeb3Forms)),
		RelayEndpoint:     getEnv("RELAY_ENDPOINT", DefaultRelayEndpoint),
		RelayAccessKey:    os.Getenv("WEB3FORMS_ACCESS_KEY"),
		RelayFromName:     getEnv("RELAY_FROM_NAME", "Markethunterz Audit Bot"),
		RelayTimeout:      getEnvDuration("RELAY_TIMEOUT", 0),
		SuccessResetDelay: getEnvDuration("SUCCESS_RESET_DELAY", DefaultSuccessResetDelay),
		ContactEmail:      getEnv("CONTACT_EMAIL", "jc@markethunterz.com"),
		ResendAPIKey:      os.Getenv("RESEND_API_KEY"),
		EmailFrom:         getEnv("EMAIL_FROM", "audit@markethunterz.com"),
		EmailFromName:     getEnv("EMAIL_FROM_NAME", "Markethunterz Audit Bot"),
		NotifyEmail:       getEnv("NOTIFY_EMAIL", "jc@markethunterz.com"),
		SessionTTL:        getEnvDuration("SESSION_TTL", 2*time.Hour),
		AllowedOrigins:    strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
		MetricsEnabled:    getEnvBool("METRICS_ENABLED", true),
	}

	// Missing credentials are fatal in production only
	if err := cfg.Validate(); err != nil {
		if cfg.IsProduction() {
			log.Fatalf("[CRITICAL] %v", err)
		}
		log.Printf("[WARNING] %v. Falling back to the log relay for development.", err)
		cfg.RelayProvider = RelayLog
		cfg.RelayFallback = true
	}

	return cfg
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Validate checks that the selected relay has the credentials it needs
func (c *Config) Validate() error {
	switch c.RelayProvider {
	case RelayWeb3Forms:
		if c.RelayAccessKey == "" {
			return fmt.Errorf("WEB3FORMS_ACCESS_KEY is required for the %s relay", RelayWeb3Forms)
		}
		if c.RelayEndpoint == "" {
			return fmt.Errorf("RELAY_ENDPOINT must not be empty")
		}
	case RelayResend:
		if c.ResendAPIKey == "" {
			return fmt.Errorf("RESEND_API_KEY is required for the %s relay", RelayResend)
		}
		if c.NotifyEmail == "" {
			return fmt.Errorf("NOTIFY_EMAIL is required for the %s relay", RelayResend)
		}
	case RelayLog:
		if c.IsProduction() {
			return fmt.Errorf("the %s relay cannot be used in production", RelayLog)
		}
	default:
		return fmt.Errorf("unknown RELAY_PROVIDER %q", c.RelayProvider)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Printf("Using default value for %s: %s", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	// Accept common boolean representations
	switch strings.ToLower(value) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	default:
		return defaultValue
	}
}

// getEnvDuration parses Go duration strings ("2s", "1500ms")
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil || d < 0 {
		log.Printf("[WARNING] Invalid duration for %s: %q, using %s", key, value, defaultValue)
		return defaultValue
	}
	return d
}
