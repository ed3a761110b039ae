package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

const (
	BackendPostgres = "postgres"
	BackendSupabase = "supabase"
	BackendMemory   = "memory"
)

type Config struct {
	ServiceName string
	LoggerLevel string

	HTTPPort       int
	RequestTimeout time.Duration

	StorageBackend string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	MigrationsPath   string

	SupabaseURL string
	SupabaseKey string

	// TelegramBotToken enables the staff bot when set.
	TelegramBotToken string
	StaffIDs         []int64

	// EnrichConcurrency bounds the per-client count lookups issued when listing clients.
	EnrichConcurrency int
}

func Load() Config {
	_ = godotenv.Load(".env")

	cfg := Config{}

	cfg.ServiceName = cast.ToString(getOrReturnDefault("SERVICE_NAME", "taxidispatch"))
	cfg.LoggerLevel = cast.ToString(getOrReturnDefault("LOGGER_LEVEL", "debug"))

	cfg.HTTPPort = cast.ToInt(getOrReturnDefault("HTTP_PORT", 8080))
	cfg.RequestTimeout = cast.ToDuration(getOrReturnDefault("REQUEST_TIMEOUT", "15s"))

	cfg.StorageBackend = cast.ToString(getOrReturnDefault("STORAGE_BACKEND", BackendPostgres))

	cfg.PostgresHost = cast.ToString(getOrReturnDefault("POSTGRES_HOST", "localhost"))
	cfg.PostgresPort = cast.ToString(getOrReturnDefault("POSTGRES_PORT", "5432"))
	cfg.PostgresUser = cast.ToString(getOrReturnDefault("POSTGRES_USER", "postgres"))
	cfg.PostgresPassword = cast.ToString(getOrReturnDefault("POSTGRES_PASSWORD", "1234"))
	cfg.PostgresDB = cast.ToString(getOrReturnDefault("POSTGRES_DB", "taxidispatch"))
	cfg.MigrationsPath = cast.ToString(getOrReturnDefault("MIGRATIONS_PATH", ""))

	cfg.SupabaseURL = cast.ToString(getOrReturnDefault("SUPABASE_URL", ""))
	cfg.SupabaseKey = cast.ToString(getOrReturnDefault("SUPABASE_KEY", ""))

	cfg.TelegramBotToken = cast.ToString(getOrReturnDefault("TG_BOT_TOKEN", ""))
	cfg.StaffIDs = parseIDs(cast.ToString(getOrReturnDefault("STAFF_IDS", "")))

	cfg.EnrichConcurrency = cast.ToInt(getOrReturnDefault("ENRICH_CONCURRENCY", 8))
	if cfg.EnrichConcurrency < 1 {
		cfg.EnrichConcurrency = 1
	}

	return cfg
}

// PostgresURL is the connection string shared by pgx and golang-migrate.
func (c Config) PostgresURL() string {
	return "postgres://" + c.PostgresUser + ":" + c.PostgresPassword + "@" +
		c.PostgresHost + ":" + c.PostgresPort + "/" + c.PostgresDB + "?sslmode=disable"
}

// parseIDs reads a comma separated list of Telegram chat ids, skipping blanks
// and anything that is not a number.
func parseIDs(list string) []int64 {
	var ids []int64
	for _, part := range strings.Split(list, ",") {
		id, err := cast.ToInt64E(strings.TrimSpace(part))
		if err != nil || id == 0 {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

func getOrReturnDefault(key string, defaultValue interface{}) interface{} {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}
