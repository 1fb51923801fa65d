package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort string

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	MySQLMaxOpenConns int
	MySQLMaxIdleConns int

	RedisAddr string
	RedisPass string
	RedisDB   int

	IdempTTLSecs    int
	RefCacheTTLSecs int

	JWTSecret string
	JWTExpiry time.Duration

	UploadDir     string
	PublicBaseURL string
	CORSOrigins   []string

	SMTPHost   string
	SMTPPort   int
	SMTPUser   string
	SMTPPass   string
	SMTPFrom   string
	AdminEmail string

	LogLevel  string
	LogFormat string
	LogFile   string
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getint(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

// Load reads an optional .env file and then the process environment.
// Variables already present in the environment win over .env values.
func Load() *Config {
	_ = godotenv.Load()

	c := &Config{
		AppPort:   getenv("APP_PORT", "8080"),
		MySQLHost: getenv("MYSQL_HOST", "mysql"),
		MySQLPort: getenv("MYSQL_PORT", "3306"),
		MySQLDB:   getenv("MYSQL_DB", "sesi"),
		MySQLUser: getenv("MYSQL_USER", "sesi"),
		MySQLPass: getenv("MYSQL_PASS", "sesi"),

		MySQLMaxOpenConns: getint("MYSQL_MAX_OPEN_CONNS", 30),
		MySQLMaxIdleConns: getint("MYSQL_MAX_IDLE_CONNS", 10),

		RedisAddr:       getenv("REDIS_ADDR", "redis:6379"),
		RedisPass:       getenv("REDIS_PASSWORD", ""),
		RedisDB:         getint("REDIS_DB", 0),
		IdempTTLSecs:    getint("IDEMPOTENCY_TTL_SECONDS", 300),
		RefCacheTTLSecs: getint("REFERENCE_CACHE_TTL_SECONDS", 3600),

		JWTSecret: getenv("JWT_SECRET", ""),
		JWTExpiry: 24 * time.Hour,

		UploadDir:     getenv("UPLOAD_DIR", "uploads"),
		PublicBaseURL: getenv("PUBLIC_BASE_URL", "http://localhost:8080"),
		CORSOrigins:   splitList(getenv("CORS_ORIGINS", "*")),

		SMTPHost:   getenv("SMTP_HOST", ""),
		SMTPPort:   getint("SMTP_PORT", 587),
		SMTPUser:   getenv("SMTP_USER", ""),
		SMTPPass:   getenv("SMTP_PASS", ""),
		SMTPFrom:   getenv("SMTP_FROM", "noreply@sesi.co.in"),
		AdminEmail: getenv("ADMIN_EMAIL", "admin@sesi.co.in"),

		LogLevel:  getenv("LOG_LEVEL", "info"),
		LogFormat: getenv("LOG_FORMAT", "json"),
		LogFile:   getenv("LOG_FILE", ""),
	}
	if v := os.Getenv("JWT_EXPIRY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.JWTExpiry = d
		}
	}
	return c
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (c *Config) Validate() error {
	if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
		return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
	}
	if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
		return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
	}
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	if len(c.JWTSecret) < 16 {
		return errors.New("JWT_SECRET must be at least 16 characters")
	}
	if c.JWTExpiry <= 0 {
		return errors.New("JWT_EXPIRY must be positive")
	}
	if c.UploadDir == "" {
		return errors.New("missing UPLOAD_DIR")
	}
	return nil
}

// MailEnabled reports whether SMTP delivery is configured.
func (c *Config) MailEnabled() bool { return c.SMTPHost != "" }

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// parseTime needed for DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?multiStatements=true&parseTime=true&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}
