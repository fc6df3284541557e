package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store drivers.
const (
	StoreDriverFile     = "file"
	StoreDriverPostgres = "postgres"
)

// Session drivers.
const (
	SessionDriverMemory = "memory"
	SessionDriverRedis  = "redis"
)

// Export engines.
const (
	ExportEngineFPDF        = "fpdf"
	ExportEngineWkhtmltopdf = "wkhtmltopdf"
)

// pageSizes lists the paper sizes both PDF engines understand, keyed by lower case name.
var pageSizes = map[string]string{
	"a1": "A1", "a2": "A2", "a3": "A3", "a4": "A4", "a5": "A5", "a6": "A6",
	"letter": "Letter", "legal": "Legal", "tabloid": "Tabloid",
}

// Config aggregates runtime configuration for the service.
type Config struct {
	App      AppConfig
	Store    StoreConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Logger   LoggerConfig
	Auth     AuthConfig
	Export   ExportConfig
	Archive  ArchiveConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
	Timezone              string
}

// StoreConfig selects where the application document lives.
type StoreConfig struct {
	Driver string
	Path   string
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	// KeyPrefix namespaces session keys so several deployments can share a server.
	KeyPrefix string
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines authentication parameters.
type AuthConfig struct {
	SessionSecret     string
	SessionTTLMinutes int
	SessionDriver     string
	// SessionSweepSeconds controls how often the in-memory store drops expired sessions.
	SessionSweepSeconds int
	CookieName          string
	CookieSecure        bool
	BcryptCost          int
}

// ExportConfig selects the PDF engine.
type ExportConfig struct {
	Engine          string
	WkhtmltopdfPath string
	PageSize        string
}

// ArchiveConfig points at an S3 compatible bucket that keeps copies of exported PDFs.
// Archiving is disabled when Bucket is empty.
type ArchiveConfig struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	maxConns := int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10))
	minConns := int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2))
	runMigrations := getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true)
	connMaxIdle := int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30))
	connMaxLife := int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300))

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "deadline-tracker"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
			Timezone:              getEnv("APP_TIMEZONE", "Local"),
		},
		Store: StoreConfig{
			Driver: strings.ToLower(getEnv("STORE_DRIVER", StoreDriverFile)),
			Path:   getEnv("STORE_PATH", "data.json"),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       maxConns,
			MinConns:       minConns,
			RunMigrations:  runMigrations,
			ConnMaxIdleSec: connMaxIdle,
			ConnMaxLifeSec: connMaxLife,
		},
		Redis: RedisConfig{
			Addr:      getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password:  os.Getenv("REDIS_PASSWORD"),
			DB:        redisDB,
			KeyPrefix: getEnv("REDIS_KEY_PREFIX", "deadline-tracker"),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			SessionSecret:       getEnv("AUTH_SESSION_SECRET", "dev-secret"),
			SessionTTLMinutes:   getEnvAsInt("AUTH_SESSION_TTL_MINUTES", 720),
			SessionDriver:       strings.ToLower(getEnv("AUTH_SESSION_DRIVER", SessionDriverMemory)),
			SessionSweepSeconds: getEnvAsInt("AUTH_SESSION_SWEEP_SECONDS", 300),
			CookieName:          getEnv("AUTH_COOKIE_NAME", "session_token"),
			CookieSecure:        getEnvAsBool("AUTH_COOKIE_SECURE", false),
			BcryptCost:          getEnvAsInt("AUTH_BCRYPT_COST", 12),
		},
		Export: ExportConfig{
			Engine:          strings.ToLower(getEnv("EXPORT_ENGINE", ExportEngineFPDF)),
			WkhtmltopdfPath: os.Getenv("EXPORT_WKHTMLTOPDF_PATH"),
			PageSize:        getEnv("EXPORT_PAGE_SIZE", "A4"),
		},
		Archive: ArchiveConfig{
			Bucket:    os.Getenv("ARCHIVE_S3_BUCKET"),
			Region:    getEnv("ARCHIVE_S3_REGION", "us-east-1"),
			Endpoint:  os.Getenv("ARCHIVE_S3_ENDPOINT"),
			AccessKey: os.Getenv("ARCHIVE_S3_ACCESS_KEY"),
			SecretKey: os.Getenv("ARCHIVE_S3_SECRET_KEY"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Store.Driver {
	case StoreDriverFile:
		if strings.TrimSpace(c.Store.Path) == "" {
			return fmt.Errorf("STORE_PATH is required for the %q store", StoreDriverFile)
		}
	case StoreDriverPostgres:
		if c.Postgres.DSN == "" {
			return fmt.Errorf("POSTGRES_DSN is required for the %q store", StoreDriverPostgres)
		}
	default:
		return fmt.Errorf("invalid STORE_DRIVER %q", c.Store.Driver)
	}

	switch c.Auth.SessionDriver {
	case SessionDriverMemory, SessionDriverRedis:
	default:
		return fmt.Errorf("invalid AUTH_SESSION_DRIVER %q", c.Auth.SessionDriver)
	}

	switch c.Export.Engine {
	case ExportEngineFPDF, ExportEngineWkhtmltopdf:
	default:
		return fmt.Errorf("invalid EXPORT_ENGINE %q", c.Export.Engine)
	}

	size, ok := pageSizes[strings.ToLower(strings.TrimSpace(c.Export.PageSize))]
	if !ok {
		return fmt.Errorf("invalid EXPORT_PAGE_SIZE %q", c.Export.PageSize)
	}
	c.Export.PageSize = size

	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		return fmt.Errorf("invalid APP_TIMEZONE: %w", err)
	}
	return nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// Location resolves the timezone used to decide what "today" is.
func (a AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(a.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// SessionTTL returns how long a login session stays valid.
func (a AuthConfig) SessionTTL() time.Duration {
	if a.SessionTTLMinutes <= 0 {
		return 12 * time.Hour
	}
	return time.Duration(a.SessionTTLMinutes) * time.Minute
}

// SessionSweepInterval returns how often expired in-memory sessions are dropped; zero disables it.
func (a AuthConfig) SessionSweepInterval() time.Duration {
	if a.SessionSweepSeconds <= 0 {
		return 0
	}
	return time.Duration(a.SessionSweepSeconds) * time.Second
}

// Enabled reports whether exported documents are archived.
func (a ArchiveConfig) Enabled() bool {
	return strings.TrimSpace(a.Bucket) != ""
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
