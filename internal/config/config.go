package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/Spok95/fitness-tracker/internal/db"
)

type Config struct {
	HTTPAddr     string
	DBDriver     db.Driver
	DatabaseURL  string
	LogLevel     string
	Env          string // dev|prod
	SentryDSN    string
	Release      string
	BotToken     string // пусто: бот не запускается
	AdminIDs     []int64
	Location     *time.Location
	CORSOrigins  []string
	StatsRefresh time.Duration
}

// LoadDotenv reads .env if present. A missing file is not an error.
func LoadDotenv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	var existing []string
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			existing = append(existing, p)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	return godotenv.Load(existing...)
}

func Load() (*Config, error) {
	tz := getenv("TZ", "Asia/Jakarta")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		loc = time.Local
	}

	driver, err := db.ParseDriver(getenv("DB_DRIVER", string(db.DriverSQLite)))
	if err != nil {
		return nil, fmt.Errorf("DB_DRIVER: %w", err)
	}

	adminIDs, err := parseIDs(os.Getenv("ADMIN_IDS"))
	if err != nil {
		return nil, fmt.Errorf("ADMIN_IDS: %w", err)
	}

	refresh, err := time.ParseDuration(getenv("STATS_REFRESH", "1m"))
	if err != nil {
		return nil, fmt.Errorf("STATS_REFRESH: %w", err)
	}
	if refresh <= 0 {
		return nil, fmt.Errorf("STATS_REFRESH: must be positive, got %s", refresh)
	}

	cfg := &Config{
		HTTPAddr:     getenv("HTTP_ADDR", ":8080"),
		DBDriver:     driver,
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		LogLevel:     getenv("LOG_LEVEL", "info"),
		Env:          getenv("ENV", "dev"),
		SentryDSN:    os.Getenv("SENTRY_DSN"),
		Release:      getenv("RELEASE", "dev"),
		BotToken:     os.Getenv("BOT_TOKEN"),
		AdminIDs:     adminIDs,
		Location:     loc,
		CORSOrigins:  splitList(getenv("CORS_ORIGINS", "http://localhost:5173")),
		StatsRefresh: refresh,
	}
	return cfg, nil
}

// IsAdmin reports whether chatID may run destructive bot commands.
func (c *Config) IsAdmin(chatID int64) bool {
	for _, id := range c.AdminIDs {
		if id == chatID {
			return true
		}
	}
	return false
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseIDs(s string) ([]int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' || r == ';' })
	out := make([]int64, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad id %q: %w", p, err)
		}
		out = append(out, n)
	}
	return out, nil
}
