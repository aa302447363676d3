package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Env      string
	Server   ServerConfig
	DB       DBConfig
	Redis    RedisConfig
	Provider ProviderConfig
	JWT      JWTConfig
	Logger   LoggerConfig
	Quiz     QuizConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

// ProviderConfig controls the generative content provider used for
// quiz and hint generation.
type ProviderConfig struct {
	Backend     string // "ollama" or "openai"
	APIKey      string
	ServerURL   string // ollama only
	Model       string
	Timeout     time.Duration
	MaxTokens   int
	Temperature float64
}

type JWTConfig struct {
	SecretKey string
	AccessTTL time.Duration
}

type LoggerConfig struct {
	Level string
}

// QuizConfig holds tunables for quiz generation and the leaderboard.
type QuizConfig struct {
	MinQuestions     int
	MaxQuestions     int
	HistoryWindow    int // recent submissions consulted by the planner
	LeaderboardTTL   time.Duration
	LeaderboardLimit int
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	if os.Getenv("ENV") == "test" {
		viper.AddConfigPath("../../config")
		viper.AddConfigPath("../../")
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
	}

	viper.AutomaticEnv()

	viper.SetDefault("env", "development")
	viper.SetDefault("server.port", 8090)
	viper.SetDefault("server.read_timeout", 20)
	viper.SetDefault("server.write_timeout", 20)
	viper.SetDefault("db.ssl_mode", "disable")
	viper.SetDefault("provider.backend", "ollama")
	viper.SetDefault("provider.model", "qwen3:0.6b")
	viper.SetDefault("provider.timeout", 30)
	viper.SetDefault("provider.max_tokens", 4000)
	viper.SetDefault("provider.temperature", 0.9)
	viper.SetDefault("jwt.access_ttl", 24)
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("quiz.min_questions", 5)
	viper.SetDefault("quiz.max_questions", 30)
	viper.SetDefault("quiz.history_window", 3)
	viper.SetDefault("quiz.leaderboard_ttl", 60)
	viper.SetDefault("quiz.leaderboard_limit", 10)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	config := &Config{
		Env: viper.GetString("env"),
		Server: ServerConfig{
			Port:         viper.GetInt("server.port"),
			ReadTimeout:  viper.GetDuration("server.read_timeout") * time.Second,
			WriteTimeout: viper.GetDuration("server.write_timeout") * time.Second,
		},
		DB: DBConfig{
			Host:     viper.GetString("db.host"),
			Port:     viper.GetInt("db.port"),
			User:     viper.GetString("db.user"),
			Password: viper.GetString("db.password"),
			DBName:   viper.GetString("db.name"),
			SSLMode:  viper.GetString("db.ssl_mode"),
		},
		Redis: RedisConfig{
			Address:  viper.GetString("redis.address"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
		},
		Provider: ProviderConfig{
			Backend:     viper.GetString("provider.backend"),
			APIKey:      viper.GetString("provider.api_key"),
			ServerURL:   viper.GetString("provider.server_url"),
			Model:       viper.GetString("provider.model"),
			Timeout:     viper.GetDuration("provider.timeout") * time.Second,
			MaxTokens:   viper.GetInt("provider.max_tokens"),
			Temperature: viper.GetFloat64("provider.temperature"),
		},
		JWT: JWTConfig{
			SecretKey: viper.GetString("jwt.secret_key"),
			AccessTTL: viper.GetDuration("jwt.access_ttl") * time.Hour,
		},
		Logger: LoggerConfig{
			Level: viper.GetString("logger.level"),
		},
		Quiz: QuizConfig{
			MinQuestions:     viper.GetInt("quiz.min_questions"),
			MaxQuestions:     viper.GetInt("quiz.max_questions"),
			HistoryWindow:    viper.GetInt("quiz.history_window"),
			LeaderboardTTL:   viper.GetDuration("quiz.leaderboard_ttl") * time.Second,
			LeaderboardLimit: viper.GetInt("quiz.leaderboard_limit"),
		},
	}

	// Environment variables win over file values.
	if host := os.Getenv("DB_HOST"); host != "" {
		config.DB.Host = host
	}
	if user := os.Getenv("DB_USER"); user != "" {
		config.DB.User = user
	}
	if password := os.Getenv("DB_PASSWORD"); password != "" {
		config.DB.Password = password
	}
	if dbname := os.Getenv("DB_NAME"); dbname != "" {
		config.DB.DBName = dbname
	}
	if redisAddress := os.Getenv("REDIS_ADDRESS"); redisAddress != "" {
		config.Redis.Address = redisAddress
	}
	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		config.Redis.Password = redisPassword
	}
	if apiKey := os.Getenv("PROVIDER_API_KEY"); apiKey != "" {
		config.Provider.APIKey = apiKey
	}
	if secret := os.Getenv("JWT_SECRET_KEY"); secret != "" {
		config.JWT.SecretKey = secret
	}

	return config, nil
}

// GetDSN builds the Postgres connection string.
func (c *Config) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.DB.Host,
		c.DB.Port,
		c.DB.User,
		c.DB.Password,
		c.DB.DBName,
		c.DB.SSLMode,
	)
}

// GetMigrateURL builds the database URL used by golang-migrate.
func (c *Config) GetMigrateURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DB.User,
		c.DB.Password,
		c.DB.Host,
		c.DB.Port,
		c.DB.DBName,
		c.DB.SSLMode,
	)
}
