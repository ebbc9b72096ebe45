package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Port               string   // Port the web client listens on
	APIURL             string   // Backend API base URL (including /api/v1)
	AppURL             string   // Public URL of this client (short links, QR codes)
	RedisURL           string   // Redis for session token slots and preview cache (optional)
	SessionCookieName  string   // Cookie naming the session token slot
	SessionTTLHours    int      // Slot lifetime when the token carries no exp claim
	CookieSecure       bool     // Mark session cookies Secure
	HTTPTimeoutSeconds int      // Timeout for backend calls
	LogLevel           string   // logrus level
	RateLimitAuthRPS   float64  // Rate limit for login/register posts (requests per second)
	RateLimitAuthBurst int      // Burst size for login/register posts
	AdminTopURLsLimit  int      // Number of top URLs shown on the admin page
	TokenFile          string   // Token file used by the CLI
	TrustedProxies     []string // Proxies whose X-Forwarded-For is believed (none by default)
}

func Load() *Config {
	// Try to load .env file (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		logrus.Debug("No .env file found, using environment variables or defaults")
	}

	return &Config{
		Port:               getEnv("PORT", "3000"),
		APIURL:             strings.TrimRight(getEnv("API_URL", "http://localhost:8000/api/v1"), "/"),
		AppURL:             strings.TrimRight(getEnv("APP_URL", "http://localhost:3000"), "/"),
		RedisURL:           getEnv("REDIS_URL", ""),
		SessionCookieName:  getEnv("SESSION_COOKIE_NAME", "shortly_session"),
		SessionTTLHours:    getEnvInt("SESSION_TTL_HOURS", 24),
		CookieSecure:       getEnvBool("COOKIE_SECURE", false),
		HTTPTimeoutSeconds: getEnvInt("HTTP_TIMEOUT_SECONDS", 10),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		RateLimitAuthRPS:   getEnvFloat("RATE_LIMIT_AUTH_RPS", 1), // 1 request per second per IP
		RateLimitAuthBurst: getEnvInt("RATE_LIMIT_AUTH_BURST", 5), // Allow bursts of 5
		AdminTopURLsLimit:  getEnvInt("ADMIN_TOP_URLS_LIMIT", 20),
		TokenFile:          getEnv("TOKEN_FILE", defaultTokenFile()),
		TrustedProxies:     getEnvList("TRUSTED_PROXIES"),
	}
}

func defaultTokenFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".shortly-token"
	}
	return dir + string(os.PathSeparator) + "shortly" + string(os.PathSeparator) + "token"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvList splits a comma separated variable, nil when unset
func getEnvList(key string) []string {
	var list []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	return list
}
