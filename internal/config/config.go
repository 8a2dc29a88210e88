package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Cache    CacheConfig
	Log      LogConfig
	Worker   WorkerConfig
	Chatbot  ChatbotConfig
	Google   GoogleConfig
	AI       AIConfig
	Auth     AuthConfig
	Upload   UploadConfig
	Socket   SocketConfig
	Metrics  MetricsConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

type DatabaseConfig struct {
	Host               string
	Port               int
	User               string
	Password           string
	DBName             string
	SSLMode            string
	MaxConns           int
	MaxIdleConns       int
	ConnMaxLifetime    time.Duration
	ConnMaxIdleTime    time.Duration
	ConnTimeout        time.Duration
	SlowQueryThreshold time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	FiltersTTL     time.Duration
	SuggestionsTTL time.Duration
	ListingsTTL    time.Duration
}

type LogConfig struct {
	Level string
}

type WorkerConfig struct {
	Enabled           bool
	ConsumerGroup     string
	Stream            string
	StreamReadTimeout time.Duration
}

type ChatbotConfig struct {
	PlaceBaseURL        string
	RadiusKm            float64
	ResultLimit         int
	WindowMinutes       int
	UpstreamTimeout     time.Duration
	StopAfterLocalReply bool
	Timezone            string
}

type GoogleConfig struct {
	PlacesBaseURL string
	APIKey        string
	Language      string
}

type AIConfig struct {
	Provider  string
	APIKey    string
	Model     string
	Endpoint  string
	MaxTokens int
}

type AuthConfig struct {
	JWTSecret string
}

type UploadConfig struct {
	Dir          string
	AssetBaseURL string
	MaxFiles     int
}

type SocketConfig struct {
	Port           int
	AllowedOrigins []string
}

type MetricsConfig struct {
	Enabled bool
}

// Load читает конфигурацию из окружения; файл .env опционален
func Load() (*Config, error) {
	// отсутствие .env не ошибка, переменные могут прийти из окружения
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		Server: ServerConfig{
			Host: v.GetString("API_HOST"),
			Port: v.GetInt("API_PORT"),
			Env:  v.GetString("API_ENV"),
		},
		Database: DatabaseConfig{
			Host:               v.GetString("DB_HOST"),
			Port:               v.GetInt("DB_PORT"),
			User:               v.GetString("DB_USER"),
			Password:           v.GetString("DB_PASSWORD"),
			DBName:             v.GetString("DB_NAME"),
			SSLMode:            v.GetString("DB_SSLMODE"),
			MaxConns:           v.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:       v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime:    time.Duration(v.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime:    time.Duration(v.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
			ConnTimeout:        time.Duration(v.GetInt("DB_CONN_TIMEOUT")) * time.Millisecond,
			SlowQueryThreshold: time.Duration(v.GetInt("DB_SLOW_QUERY_MS")) * time.Millisecond,
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetInt("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			FiltersTTL:     time.Duration(v.GetInt("FILTERS_CACHE_TTL")) * time.Second,
			SuggestionsTTL: time.Duration(v.GetInt("SUGGESTIONS_CACHE_TTL")) * time.Second,
			ListingsTTL:    time.Duration(v.GetInt("LISTINGS_CACHE_TTL")) * time.Second,
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Worker: WorkerConfig{
			Enabled:           v.GetBool("WORKER_ENABLED"),
			ConsumerGroup:     v.GetString("WORKER_CONSUMER_GROUP"),
			Stream:            v.GetString("WORKER_STREAM"),
			StreamReadTimeout: time.Duration(v.GetInt("WORKER_STREAM_READ_TIMEOUT")) * time.Millisecond,
		},
		Chatbot: ChatbotConfig{
			PlaceBaseURL:        strings.TrimRight(v.GetString("PLACE_BASE_URL"), "/"),
			RadiusKm:            v.GetFloat64("CHATBOT_RADIUS_KM"),
			ResultLimit:         v.GetInt("CHATBOT_RESULT_LIMIT"),
			WindowMinutes:       v.GetInt("CHATBOT_WINDOW_MINUTES"),
			UpstreamTimeout:     time.Duration(v.GetInt("CHATBOT_UPSTREAM_TIMEOUT")) * time.Millisecond,
			StopAfterLocalReply: v.GetBool("CHATBOT_STOP_AFTER_LOCAL_REPLY"),
			Timezone:            v.GetString("APP_TIMEZONE"),
		},
		Google: GoogleConfig{
			PlacesBaseURL: v.GetString("GOOGLE_PLACES_BASE_URL"),
			APIKey:        v.GetString("GOOGLE_PLACES_API_KEY"),
			Language:      v.GetString("GOOGLE_PLACES_LANGUAGE"),
		},
		AI: AIConfig{
			Provider:  strings.ToLower(v.GetString("AI_PROVIDER")),
			APIKey:    v.GetString("AI_API_KEY"),
			Model:     v.GetString("AI_MODEL"),
			Endpoint:  v.GetString("AI_ENDPOINT"),
			MaxTokens: v.GetInt("AI_MAX_TOKENS"),
		},
		Auth: AuthConfig{
			JWTSecret: v.GetString("JWT_SECRET"),
		},
		Upload: UploadConfig{
			Dir:          v.GetString("UPLOAD_DIR"),
			AssetBaseURL: strings.TrimRight(v.GetString("BASE_URL"), "/"),
			MaxFiles:     v.GetInt("UPLOAD_MAX_FILES"),
		},
		Socket: SocketConfig{
			Port:           v.GetInt("SOCKET_PORT"),
			AllowedOrigins: parseList(v.GetString("SOCKET_ALLOWED_ORIGINS")),
		},
		Metrics: MetricsConfig{
			Enabled: v.GetBool("METRICS_ENABLED"),
		},
	}

	if cfg.Auth.JWTSecret == "" && cfg.Server.Env == "production" {
		return nil, fmt.Errorf("JWT_SECRET is required in production")
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("API_HOST", "0.0.0.0")
	v.SetDefault("API_PORT", 3000)
	v.SetDefault("API_ENV", "development")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", 3600)
	v.SetDefault("DB_CONN_MAX_IDLE_TIME", 600)
	v.SetDefault("DB_CONN_TIMEOUT", 30000)
	v.SetDefault("DB_SLOW_QUERY_MS", 200)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)

	v.SetDefault("FILTERS_CACHE_TTL", 600)
	v.SetDefault("SUGGESTIONS_CACHE_TTL", 300)
	v.SetDefault("LISTINGS_CACHE_TTL", 300)

	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("WORKER_ENABLED", true)
	v.SetDefault("WORKER_CONSUMER_GROUP", "place-listing-cache")
	v.SetDefault("WORKER_STREAM", "stream:place:events")
	v.SetDefault("WORKER_STREAM_READ_TIMEOUT", 1000)

	v.SetDefault("PLACE_BASE_URL", "http://localhost:5173")
	v.SetDefault("CHATBOT_RADIUS_KM", 10)
	v.SetDefault("CHATBOT_RESULT_LIMIT", 10)
	v.SetDefault("CHATBOT_WINDOW_MINUTES", 30)
	v.SetDefault("CHATBOT_UPSTREAM_TIMEOUT", 10000)
	v.SetDefault("APP_TIMEZONE", "Asia/Bangkok")

	v.SetDefault("GOOGLE_PLACES_BASE_URL", "https://maps.googleapis.com/maps/api/place")
	v.SetDefault("GOOGLE_PLACES_LANGUAGE", "th")

	v.SetDefault("AI_PROVIDER", "openai")
	v.SetDefault("AI_MODEL", "gpt-4o-mini")
	v.SetDefault("AI_MAX_TOKENS", 512)

	v.SetDefault("UPLOAD_DIR", "./uploads")
	v.SetDefault("BASE_URL", "http://localhost:3000")
	v.SetDefault("UPLOAD_MAX_FILES", 10)

	v.SetDefault("SOCKET_PORT", 3001)
	v.SetDefault("SOCKET_ALLOWED_ORIGINS", "*")

	v.SetDefault("METRICS_ENABLED", true)
}

func parseList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetSocketAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Socket.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s connect_timeout=%d",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
		int(c.Database.ConnTimeout.Seconds()),
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
