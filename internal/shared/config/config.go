package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// AvailabilityFailMode selects the policy applied when the booking-overlap
// lookup fails while computing available rooms.
type AvailabilityFailMode string

const (
	// FailOpen returns the unfiltered inventory when the overlap lookup
	// errors. Availability becomes optimistic.
	FailOpen AvailabilityFailMode = "open"
	// FailClosed returns no rooms when the overlap lookup errors.
	FailClosed AvailabilityFailMode = "closed"
)

// Config holds all configuration for the gateway
type Config struct {
	// Server configuration
	Port           string
	GinMode        string
	APIVersion     string
	APIPrefix      string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxHeaderBytes int

	// Upstream services
	Upstream UpstreamConfig

	// Redis configuration
	Redis RedisConfig

	// JWT configuration
	JWT JWTConfig

	// Kafka configuration
	Kafka KafkaConfig

	// Rate limiting
	RateLimit RateLimitConfig

	// Availability policy
	AvailabilityFailMode AvailabilityFailMode

	// Logging
	LogLevel string
}

// UpstreamConfig holds the base URLs and call timeout for the five backend
// services the gateway composes.
type UpstreamConfig struct {
	UserServiceURL         string
	HotelServiceURL        string
	BookingServiceURL      string
	PaymentServiceURL      string
	NotificationServiceURL string
	Timeout                time.Duration
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Addr     string

	// TTL values for gateway-held ephemeral state
	DraftTTL        time.Duration
	IdempotencyTTL  time.Duration
	HotelCacheTTL   time.Duration
	NotificationTTL time.Duration
}

// JWTConfig holds session token configuration
type JWTConfig struct {
	Secret    string
	ExpiresIn time.Duration
}

// KafkaConfig holds gateway event pipeline configuration
type KafkaConfig struct {
	Enabled     bool
	Brokers     []string
	EventsTopic string
	GroupID     string
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Enabled         bool          `json:"enabled"`
	WindowDuration  time.Duration `json:"window_duration"`
	DefaultRequests int           `json:"default_requests"`
	PublicRequests  int           `json:"public_requests"`
	AuthRequests    int           `json:"auth_requests"`
	BookingRequests int           `json:"booking_requests"`
	PaymentRequests int           `json:"payment_requests"`
	AdminRequests   int           `json:"admin_requests"`
	HealthRequests  int           `json:"health_requests"`
	WhitelistedIPs  []string      `json:"whitelisted_ips"`
}

// Load loads configuration from environment variables
func Load() *Config {
	cfg := &Config{
		// Server configuration
		Port:           getEnv("PORT", "8080"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		APIVersion:     getEnv("API_VERSION", "v1"),
		APIPrefix:      getEnv("API_PREFIX", "/api"),
		ReadTimeout:    getDurationEnv("READ_TIMEOUT", 15*time.Second),
		WriteTimeout:   getDurationEnv("WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:    getDurationEnv("IDLE_TIMEOUT", 60*time.Second),
		MaxHeaderBytes: getIntEnv("MAX_HEADER_BYTES", 1<<20), // 1 MB

		// Upstream services
		Upstream: UpstreamConfig{
			UserServiceURL:         getEnv("USER_SERVICE_URL", "http://localhost:8081"),
			HotelServiceURL:        getEnv("HOTEL_SERVICE_URL", "http://localhost:8082"),
			BookingServiceURL:      getEnv("BOOKING_SERVICE_URL", "http://localhost:8083"),
			PaymentServiceURL:      getEnv("PAYMENT_SERVICE_URL", "http://localhost:8084"),
			NotificationServiceURL: getEnv("NOTIFICATION_SERVICE_URL", "http://localhost:8085"),
			Timeout:                getDurationEnv("UPSTREAM_TIMEOUT", 10*time.Second),
		},

		// Redis configuration
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),

			DraftTTL:        getDurationEnv("REDIS_DRAFT_TTL", 30*time.Minute),
			IdempotencyTTL:  getDurationEnv("REDIS_IDEMPOTENCY_TTL", 24*time.Hour),
			HotelCacheTTL:   getDurationEnv("REDIS_HOTEL_CACHE_TTL", 1*time.Hour),
			NotificationTTL: getDurationEnv("REDIS_NOTIFICATION_TTL", 5*time.Minute),
		},

		// JWT configuration
		JWT: JWTConfig{
			Secret:    getEnv("JWT_SECRET", "your-super-secret-jwt-key"),
			ExpiresIn: getDurationEnvSeconds("JWT_EXPIRES_IN", 24*time.Hour),
		},

		// Kafka configuration
		Kafka: KafkaConfig{
			Enabled:     getBoolEnv("KAFKA_ENABLED", true),
			Brokers:     getStringSliceEnv("KAFKA_BROKERS", []string{"localhost:9092"}),
			EventsTopic: getEnv("KAFKA_EVENTS_TOPIC", "staymate-gateway-events"),
			GroupID:     getEnv("KAFKA_GROUP_ID", "staymate-gateway"),
		},

		// Rate limiting
		RateLimit: RateLimitConfig{
			Enabled:         getBoolEnv("RATE_LIMIT_ENABLED", true),
			WindowDuration:  getDurationEnv("RATE_LIMIT_WINDOW_DURATION", 60*time.Second),
			DefaultRequests: getIntEnv("RATE_LIMIT_DEFAULT_REQUESTS", 60),
			PublicRequests:  getIntEnv("RATE_LIMIT_PUBLIC_REQUESTS", 100),
			AuthRequests:    getIntEnv("RATE_LIMIT_AUTH_REQUESTS", 10),
			BookingRequests: getIntEnv("RATE_LIMIT_BOOKING_REQUESTS", 20),
			PaymentRequests: getIntEnv("RATE_LIMIT_PAYMENT_REQUESTS", 20),
			AdminRequests:   getIntEnv("RATE_LIMIT_ADMIN_REQUESTS", 200),
			HealthRequests:  getIntEnv("RATE_LIMIT_HEALTH_REQUESTS", 300),
			WhitelistedIPs:  getStringSliceEnv("RATE_LIMIT_WHITELISTED_IPS", []string{}),
		},

		AvailabilityFailMode: loadFailMode(),

		// Logging
		LogLevel: getEnv("LOG_LEVEL", "debug"),
	}

	// Build composite values
	cfg.Redis.Addr = cfg.Redis.Host + ":" + cfg.Redis.Port

	return cfg
}

func loadFailMode() AvailabilityFailMode {
	if strings.EqualFold(os.Getenv("AVAILABILITY_FAIL_MODE"), string(FailClosed)) {
		return FailClosed
	}
	return FailOpen
}

// GetServerAddress returns the full server address
func (c *Config) GetServerAddress() string {
	return ":" + c.Port
}

// GetAPIBasePath returns the API base path
func (c *Config) GetAPIBasePath() string {
	return c.APIPrefix + "/" + c.APIVersion
}

// getEnv gets an environment variable with a fallback value
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getIntEnv gets an integer environment variable with a fallback value
func getIntEnv(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return fallback
}

// getDurationEnv gets a duration environment variable with a fallback value
func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return fallback
}

// getDurationEnvSeconds gets an environment variable as seconds (int) and converts to time.Duration
func getDurationEnvSeconds(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if seconds, err := strconv.Atoi(value); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return fallback
}

// getBoolEnv gets a boolean environment variable with a fallback value
func getBoolEnv(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return fallback
}

// getStringSliceEnv gets a comma-separated environment variable as a string slice
func getStringSliceEnv(key string, fallback []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		result := make([]string, 0, len(parts))
		for _, part := range parts {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}
