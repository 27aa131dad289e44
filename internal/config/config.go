package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Logging  LoggingConfig
	Terrain  TerrainConfig
}

type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	RequestTimeout  time.Duration
}

type DatabaseConfig struct {
	Path            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type LoggingConfig struct {
	Level      string
	Format     string
	Structured bool
}

// TerrainConfig selects the preset file and the environment overrides
// applied on top of it. Zero values leave the preset untouched.
type TerrainConfig struct {
	PresetFile   string
	Seed         *int64
	NoiseBackend string
	QuadsX       int
	QuadsY       int
	Workers      int
	ScatterSeed  *int64
	// MaxQuads caps the grid size a single API request may ask for
	MaxQuads int
	// MaxScatterCount and MaxTriesPerInstance cap each request of an API
	// scatter run
	MaxScatterCount     int
	MaxTriesPerInstance int
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            getEnvStr("PORT", "8080"),
			ReadTimeout:     getEnvDuration("READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvDuration("WRITE_TIMEOUT", 60*time.Second),
			IdleTimeout:     getEnvDuration("IDLE_TIMEOUT", 120*time.Second),
			ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 30*time.Second),
			RequestTimeout:  getEnvDuration("REQUEST_TIMEOUT", 45*time.Second),
		},
		Database: DatabaseConfig{
			Path:            getEnvStr("DB_PATH", "./terrain.db"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 1),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 1),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		Logging: LoggingConfig{
			Level:      getEnvStr("LOG_LEVEL", "info"),
			Format:     getEnvStr("LOG_FORMAT", "json"),
			Structured: getEnvBool("LOG_STRUCTURED", true),
		},
		Terrain: TerrainConfig{
			PresetFile:   getEnvStr("TERRAIN_PRESET_FILE", ""),
			Seed:         getEnvInt64Ptr("TERRAIN_SEED"),
			NoiseBackend: getEnvStr("NOISE_BACKEND", ""),
			QuadsX:       getEnvInt("TERRAIN_QUADS_X", 0),
			QuadsY:       getEnvInt("TERRAIN_QUADS_Y", 0),
			Workers:      getEnvInt("TERRAIN_WORKERS", 0),
			ScatterSeed:  getEnvInt64Ptr("SCATTER_SEED"),
			MaxQuads:     getEnvInt("TERRAIN_MAX_QUADS", 1024),

			MaxScatterCount:     getEnvInt("SCATTER_MAX_COUNT", 10000),
			MaxTriesPerInstance: getEnvInt("SCATTER_MAX_TRIES", 1000),
		},
	}
}

// OutputFormat is the formatter name handed to logging.SetFormat. Without
// structured logging the human-readable text output is used whatever Format
// says.
func (c LoggingConfig) OutputFormat() string {
	if !c.Structured {
		return "text"
	}
	return c.Format
}

func getEnvStr(key, defaultValue string) string {
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

func getEnvInt64Ptr(key string) *int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return &intValue
		}
	}
	return nil
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
