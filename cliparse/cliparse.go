package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/danielhkuo/share-mixer/db"
	"github.com/danielhkuo/share-mixer/stats"
)

const (
	DefaultPort        = 3318
	DefaultDatabaseURL = "sharemix.db"
	DefaultEnvFile     = ".env"
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string
	AdminKeySalt string

	// Stats Proxy
	YTAPIKey  string
	ChannelID string
	YTAPIBase string

	EnvFile string
}

// ParseFlags reads flags, then the dotenv file, then environment variables.
// Flags win over env.
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("share-mixer", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL or sqlite path")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&cfg.EnvFile, "env", DefaultEnvFile, "dotenv file to load")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.AdminKeySalt, "admin-salt", "", "Admin key salt (prefer env)")
	fs.StringVar(&cfg.YTAPIKey, "yt-key", "", "YouTube Data API key (prefer env)")

	fs.StringVar(&cfg.ChannelID, "channel", "", "Default channel for the stats proxy")
	fs.StringVar(&cfg.YTAPIBase, "yt-base", "", "YouTube Data API base URL")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if err := loadEnvFile(cfg.EnvFile); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = DefaultPort
		}
	}

	cfg.DatabaseURL = envDefault(cfg.DatabaseURL, "DATABASE_URL", DefaultDatabaseURL)
	cfg.DatabaseType = envDefault(cfg.DatabaseType, "DATABASE_TYPE", db.TypeSQLite)
	if cfg.DatabaseType != db.TypeSQLite && cfg.DatabaseType != db.TypePostgres {
		return Config{}, fmt.Errorf("%w: %q", db.ErrUnsupportedType, cfg.DatabaseType)
	}

	// Secrets - salt MUST be provided, the API key is checked per request
	cfg.AdminKeySalt = envDefault(cfg.AdminKeySalt, "ADMIN_KEY_SALT", "")
	if cfg.AdminKeySalt == "" {
		return Config{}, errors.New("ADMIN_KEY_SALT required")
	}
	cfg.YTAPIKey = envDefault(cfg.YTAPIKey, "YT_API_KEY", "")

	cfg.ChannelID = envDefault(cfg.ChannelID, "YT_CHANNEL_ID", stats.DefaultChannelID)
	cfg.YTAPIBase = envDefault(cfg.YTAPIBase, "YT_API_BASE", stats.DefaultBaseURL)

	return cfg, nil
}

// loadEnvFile loads path without overriding variables already set.
// A missing file is fine.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

func envDefault(value, key, fallback string) string {
	if value != "" {
		return value
	}
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
