package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	AppPort   string
	DBDriver  string
	DBDSN     string
	LogLevel  string
	JWTSecret string

	JWTExpiresMin int
	CookieSecure  bool
	CORSOrigins   string

	RedisEnabled  bool
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	GoogleClientID  string
	GoogleSecret    string
	GoogleRedirect  string
	FrontendBaseURL string

	HireMaxRetries int
	NotifyTimeout  time.Duration
}

func Load() Config {
	frontend := get("FRONTEND_BASE_URL", "http://localhost:5173")
	return Config{
		AppPort:   get("APP_PORT", "8080"),
		DBDriver:  strings.ToLower(get("DB_DRIVER", "postgres")),
		DBDSN:     must("DB_DSN"),
		LogLevel:  get("LOG_LEVEL", "info"),
		JWTSecret: must("JWT_SECRET"),

		JWTExpiresMin: getInt("JWT_EXPIRES_MIN", 10080),
		CookieSecure:  getBool("COOKIE_SECURE", false),
		CORSOrigins:   get("CORS_ORIGINS", frontend),

		RedisEnabled:  getBool("REDIS_ENABLED", true),
		RedisAddr:     get("REDIS_ADDR", "localhost:6379"),
		RedisPassword: get("REDIS_PASSWORD", ""),
		RedisDB:       getInt("REDIS_DB", 0),

		GoogleClientID:  get("GOOGLE_CLIENT_ID", ""),
		GoogleSecret:    get("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirect:  get("GOOGLE_REDIRECT_URL", ""),
		FrontendBaseURL: frontend,

		HireMaxRetries: getInt("HIRE_MAX_RETRIES", 2),
		NotifyTimeout:  time.Duration(getInt("NOTIFY_TIMEOUT_SEC", 5)) * time.Second,
	}
}

func get(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func getInt(k string, def int) int {
	n, err := strconv.Atoi(get(k, ""))
	if err != nil {
		return def
	}
	return n
}

func getBool(k string, def bool) bool {
	b, err := strconv.ParseBool(get(k, ""))
	if err != nil {
		return def
	}
	return b
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		panic("missing env: " + k)
	}
	return v
}
