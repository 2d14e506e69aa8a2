package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/emrgen/jobpost/internal/compress"
	_ "github.com/joho/godotenv/autoload"
	redis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverSqlite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config is the runtime configuration, read from the environment and an
// optional .env file.
type Config struct {
	DBDriver      string
	DBDSN         string
	RedisAddr     string
	HTTPPort      string
	Compression   string
	JWTSecret     string
	GeminiAPIKey  string
	GeminiModel   string
	SweepSchedule string
	PruneSchedule string
	KeepRevisions int
	LogLevel      string
}

func defaults(v *viper.Viper) {
	v.SetDefault("DB_DRIVER", DriverSqlite)
	v.SetDefault("DB_DSN", ".tmp/db/jobpost.db")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("HTTP_PORT", "8030")
	v.SetDefault("COMPRESSION", "gzip")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("GEMINI_API_KEY", "")
	v.SetDefault("GEMINI_MODEL", "gemini-2.0-flash")
	v.SetDefault("SWEEP_SCHEDULE", "@hourly")
	v.SetDefault("PRUNE_SCHEDULE", "@daily")
	v.SetDefault("KEEP_REVISIONS", 20)
	v.SetDefault("LOG_LEVEL", "info")
}

// LoadConfig reads the configuration from the environment.
func LoadConfig() *Config {
	v := viper.New()
	defaults(v)
	v.AutomaticEnv()

	return &Config{
		DBDriver:      strings.ToLower(v.GetString("DB_DRIVER")),
		DBDSN:         v.GetString("DB_DSN"),
		RedisAddr:     v.GetString("REDIS_ADDR"),
		HTTPPort:      v.GetString("HTTP_PORT"),
		Compression:   v.GetString("COMPRESSION"),
		JWTSecret:     v.GetString("JWT_SECRET"),
		GeminiAPIKey:  v.GetString("GEMINI_API_KEY"),
		GeminiModel:   v.GetString("GEMINI_MODEL"),
		SweepSchedule: v.GetString("SWEEP_SCHEDULE"),
		PruneSchedule: v.GetString("PRUNE_SCHEDULE"),
		KeepRevisions: v.GetInt("KEEP_REVISIONS"),
		LogLevel:      v.GetString("LOG_LEVEL"),
	}
}

// OpenDb connects to the configured database.
func OpenDb(cfg *Config) (*gorm.DB, error) {
	gormConfig := &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)}

	switch cfg.DBDriver {
	case DriverSqlite, "":
		if dir := filepath.Dir(cfg.DBDSN); dir != "." {
			if err := os.MkdirAll(dir, os.ModePerm); err != nil {
				return nil, err
			}
		}
		return gorm.Open(sqlite.Open(cfg.DBDSN), gormConfig)
	case DriverPostgres:
		return gorm.Open(postgres.Open(cfg.DBDSN), gormConfig)
	}

	return nil, fmt.Errorf("unknown database driver %q", cfg.DBDriver)
}

// GetDb connects to the configured database or exits.
func GetDb(cfg *Config) *gorm.DB {
	db, err := OpenDb(cfg)
	if err != nil {
		logrus.Fatalf("error connecting to database: %v", err)
	}
	return db
}

// GetRedis returns a client for the configured redis, or nil when none is set.
func GetRedis(cfg *Config) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}

	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
		Protocol: 2,
	})
}

// Compressor returns the codec used for newly written blocks.
func (c *Config) Compressor() (compress.Compress, error) {
	return compress.New(c.Compression)
}

// SetupLogging applies the configured log level.
func SetupLogging(cfg *Config) {
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logrus.Warnf("unknown log level %q, using info", cfg.LogLevel)
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
}
