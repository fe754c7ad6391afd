package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Store     StoreConfig
	Database  DatabaseConfig
	SQLite    SQLiteConfig
	Mongo     MongoConfig
	Dynamo    DynamoConfig
	JWT       JWTConfig
	Timesheet TimesheetConfig
	Storage   StorageConfig
	Telegram  TelegramConfig
	SMTP      SMTPConfig
	Cron      CronConfig
	CORS      CORSConfig
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
	// Timezone is "Local", "UTC" or a fixed offset such as "+07:00"
	Timezone string
	SeedDemo bool
}

// Store backends
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
	StoreMongoDB  = "mongodb"
	StoreDynamoDB = "dynamodb"
)

type StoreConfig struct {
	Backend string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

type SQLiteConfig struct {
	Path string
}

type MongoConfig struct {
	URI      string
	Database string
}

type DynamoConfig struct {
	Region    string
	Endpoint  string
	Table     string
	AccessKey string
	SecretKey string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration time.Duration
}

type TimesheetConfig struct {
	StrictReview      bool
	RefreshOnResubmit bool
}

type StorageConfig struct {
	Backend   string // local | s3
	LocalPath string
	BaseURL   string
	S3Bucket  string
	S3Region  string
	S3Prefix  string
	Endpoint  string
	AccessKey string
	SecretKey string
}

type TelegramConfig struct {
	Token  string
	ChatID int64
}

func (t TelegramConfig) Enabled() bool {
	return t.Token != "" && t.ChatID != 0
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

func (s SMTPConfig) Enabled() bool {
	return s.Host != "" && s.From != ""
}

type CronConfig struct {
	Enabled         bool
	ArchiveInterval time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

func Load() (*Config, error) {
	// .env is optional; the environment wins
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file loaded", "error", err)
	}

	config := &Config{}

	// Application configuration
	appPort, err := getEnvInt("APP_PORT", 8080)
	if err != nil {
		return nil, err
	}
	seedDemo, err := getEnvBool("SEED_DEMO", false)
	if err != nil {
		return nil, err
	}
	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Timezone: getEnv("APP_TIMEZONE", "Local"),
		SeedDemo: seedDemo,
	}

	config.Store = StoreConfig{
		Backend: strings.ToLower(getEnv("STORE_BACKEND", StoreMemory)),
	}

	// Database configuration
	dbPort, err := getEnvInt("DB_PORT", 5432)
	if err != nil {
		return nil, err
	}
	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "hrkecil"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	config.SQLite = SQLiteConfig{
		Path: getEnv("SQLITE_PATH", "hrkecil.db"),
	}

	config.Mongo = MongoConfig{
		URI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		Database: getEnv("MONGO_DATABASE", "hrkecil"),
	}

	config.Dynamo = DynamoConfig{
		Region:    getEnv("DYNAMO_REGION", "ap-southeast-1"),
		Endpoint:  getEnv("DYNAMO_ENDPOINT", ""),
		Table:     getEnv("DYNAMO_TABLE", "hrkecil_kv"),
		AccessKey: getEnv("AWS_ACCESS_KEY_ID", ""),
		SecretKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
	}

	// JWT configuration
	accessExpiration, err := getEnvDuration("JWT_ACCESS_EXPIRATION_TIME", 12*time.Hour)
	if err != nil {
		return nil, err
	}
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: accessExpiration,
	}

	strict, err := getEnvBool("TIMESHEET_STRICT_REVIEW", true)
	if err != nil {
		return nil, err
	}
	refresh, err := getEnvBool("TIMESHEET_RESUBMIT_REFRESH", false)
	if err != nil {
		return nil, err
	}
	config.Timesheet = TimesheetConfig{
		StrictReview:      strict,
		RefreshOnResubmit: refresh,
	}

	config.Storage = StorageConfig{
		Backend:   strings.ToLower(getEnv("STORAGE_BACKEND", "local")),
		LocalPath: getEnv("STORAGE_LOCAL_PATH", "./data/files"),
		BaseURL:   getEnv("STORAGE_BASE_URL", fmt.Sprintf("http://localhost:%d/files", appPort)),
		S3Bucket:  getEnv("S3_BUCKET", ""),
		S3Region:  getEnv("S3_REGION", "ap-southeast-1"),
		S3Prefix:  getEnv("S3_PREFIX", ""),
		Endpoint:  getEnv("S3_ENDPOINT", ""),
		AccessKey: getEnv("AWS_ACCESS_KEY_ID", ""),
		SecretKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
	}

	chatID, err := getEnvInt64("TELEGRAM_CHAT_ID", 0)
	if err != nil {
		return nil, err
	}
	config.Telegram = TelegramConfig{
		Token:  getEnv("TELEGRAM_BOT_TOKEN", ""),
		ChatID: chatID,
	}

	smtpPort, err := getEnvInt("SMTP_PORT", 587)
	if err != nil {
		return nil, err
	}
	config.SMTP = SMTPConfig{
		Host:     getEnv("SMTP_HOST", ""),
		Port:     smtpPort,
		Username: getEnv("SMTP_USERNAME", ""),
		Password: getEnv("SMTP_PASSWORD", ""),
		From:     getEnv("SMTP_FROM", ""),
		FromName: getEnv("SMTP_FROM_NAME", "HR Kecil"),
	}

	cronEnabled, err := getEnvBool("CRON_ENABLED", true)
	if err != nil {
		return nil, err
	}
	archiveInterval, err := getEnvDuration("CRON_ARCHIVE_INTERVAL", time.Hour)
	if err != nil {
		return nil, err
	}
	config.Cron = CronConfig{
		Enabled:         cronEnabled,
		ArchiveInterval: archiveInterval,
	}

	config.CORS = CORSConfig{
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173"}),
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.JWT.AccessExpiration <= 0 {
		return fmt.Errorf("JWT_ACCESS_EXPIRATION_TIME must be positive")
	}

	switch c.Store.Backend {
	case StoreMemory, StoreSQLite:
	case StorePostgres:
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD is required for the postgres store")
		}
	case StoreMongoDB:
		if c.Mongo.URI == "" {
			return fmt.Errorf("MONGO_URI is required for the mongodb store")
		}
	case StoreDynamoDB:
		if c.Dynamo.Table == "" {
			return fmt.Errorf("DYNAMO_TABLE is required for the dynamodb store")
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.Store.Backend)
	}

	switch c.Storage.Backend {
	case "local":
	case "s3":
		if c.Storage.S3Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required for s3 storage")
		}
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.Storage.Backend)
	}

	if c.Cron.Enabled && c.Cron.ArchiveInterval <= 0 {
		return fmt.Errorf("CRON_ARCHIVE_INTERVAL must be positive")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvInt64(key string, fallback int64) (int64, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvBool(key string, fallback bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getEnvSlice(key string, fallback []string) []string {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
