package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Server  ServerConfig
	Proxy   ProxyConfig
	CORS    CORSConfig
	Logging LoggingConfig
}

type ServerConfig struct {
	Port string
}

// ProxyConfig holds the upstream coordinates for the three proxy endpoints.
// Values are read once at startup; a missing secret or URL is reported per
// request by the affected endpoint, never at boot.
type ProxyConfig struct {
	AdminSecret    string
	UploadURL      string
	ListAlbumsURL  string
	CreateAlbumURL string
}

type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

type LoggingConfig struct {
	Level      string
	Format     string
	Filename   string
	MaxSize    int
	MaxBackups int
	MaxAge     int
	Compress   bool
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
		},
		Proxy: ProxyConfig{
			AdminSecret:    getEnv("ADMIN_SECRET", ""),
			UploadURL:      getEnv("PROJECTFOTO_UPLOAD_URL", ""),
			ListAlbumsURL:  getEnv("LIST_ALBUMS_URL", ""),
			CreateAlbumURL: getEnv("PROJECTFOTO_UPLOAD_ALBUM_URL", ""),
		},
		CORS: CORSConfig{
			AllowedOrigins:   getEnvSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),
			AllowedMethods:   getEnvSlice("CORS_ALLOWED_METHODS", []string{"GET", "POST", "OPTIONS"}),
			AllowedHeaders:   getEnvSlice("CORS_ALLOWED_HEADERS", []string{"Authorization", "X-Client-Info", "Apikey", "Content-Type"}),
			ExposedHeaders:   getEnvSlice("CORS_EXPOSED_HEADERS", nil),
			AllowCredentials: getEnvBool("CORS_ALLOW_CREDENTIALS", false),
			MaxAge:           getEnvInt("CORS_MAX_AGE", 300),
		},
		Logging: LoggingConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			Format:     getEnv("LOG_FORMAT", "text"),
			Filename:   getEnv("LOG_FILE", ""),
			MaxSize:    getEnvInt("LOG_MAX_SIZE", 50),
			MaxBackups: getEnvInt("LOG_MAX_BACKUPS", 5),
			MaxAge:     getEnvInt("LOG_MAX_AGE", 30),
			Compress:   getEnvBool("LOG_COMPRESS", true),
		},
	}
}

// getEnv trims the value so that a variable set to whitespace counts as unset.
func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvSlice(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	if len(result) == 0 {
		return defaultValue
	}
	return result
}
