package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"triptacticx/internal/utils"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"
)

const (
	AIClientOpenAI = "openai"
	AIClientOllama = "ollama"
	AIClientStub   = "stub"
)

// Config содержит конфигурацию сервиса планирования поездок.
type Config struct {
	Env         string `envconfig:"ENV" default:"development"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	LogEncoding string `envconfig:"LOG_ENCODING" default:"json"`
	ServerPort  string `envconfig:"SERVER_PORT" default:"5000"`
	StaticDir   string `envconfig:"STATIC_DIR" default:"./frontend"`
	SecretsDir  string `envconfig:"SECRETS_DIR" default:"/run/secrets"`

	CORSAllowedOrigins string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
	RateLimitPerMinute uint   `envconfig:"RATE_LIMIT_PER_MINUTE" default:"10"`

	// SMTP
	SMTPHost    string        `envconfig:"SMTP_HOST" default:"smtp.gmail.com"`
	SMTPPort    int           `envconfig:"SMTP_PORT" default:"465"`
	SMTPSSL     bool          `envconfig:"SMTP_SSL" default:"true"`
	SMTPTimeout time.Duration `envconfig:"SMTP_TIMEOUT" default:"30s"`
	// Секретные поля БЕЗ envconfig тега
	EmailAddress  string
	EmailPassword string

	// AI
	AIClientType      string        `envconfig:"AI_CLIENT_TYPE" default:"openai"`
	AIBaseURL         string        `envconfig:"AI_BASE_URL" default:"https://api.openai.com/v1"`
	AIModel           string        `envconfig:"AI_MODEL" default:"gpt-4o-mini"`
	AITimeout         time.Duration `envconfig:"AI_TIMEOUT" default:"120s"`
	AIMaxTokens       int           `envconfig:"AI_MAX_TOKENS" default:"1024"`
	AITemperature     float64       `envconfig:"AI_TEMPERATURE" default:"0.7"`
	AIPriceInputPerM  float64       `envconfig:"AI_PRICE_INPUT_PER_M" default:"0.15"`
	AIPriceOutputPerM float64       `envconfig:"AI_PRICE_OUTPUT_PER_M" default:"0.6"`
	AIAPIKey          string

	// PostgreSQL (архив планов). Пустой DB_HOST отключает архив.
	DBHost        string        `envconfig:"DB_HOST" default:""`
	DBPort        string        `envconfig:"DB_PORT" default:"5432"`
	DBUser        string        `envconfig:"DB_USER" default:"postgres"`
	DBName        string        `envconfig:"DB_NAME" default:"triptacticx"`
	DBSSLMode     string        `envconfig:"DB_SSL_MODE" default:"disable"`
	DBMaxConns    int           `envconfig:"DB_MAX_CONNECTIONS" default:"10"`
	DBIdleTimeout time.Duration `envconfig:"DB_IDLE_TIMEOUT" default:"5m"`
	DBPassword    string

	// Redis для rate limiter. Пустой адрес - in-memory хранилище.
	RedisAddr     string `envconfig:"REDIS_ADDR" default:""`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`
	RedisPassword string

	// RabbitMQ для событий о сгенерированных планах. Пустой URL отключает публикацию.
	RabbitMQURL     string `envconfig:"RABBITMQ_URL" default:""`
	PlanEventsQueue string `envconfig:"PLAN_EVENTS_QUEUE" default:"trip_plan_events"`
}

// SMTPConfig - параметры доставки письма с PDF.
type SMTPConfig struct {
	Host     string
	Port     int
	UseSSL   bool
	Timeout  time.Duration
	Username string
	Password string
}

// HasCredentials сообщает, заданы ли адрес отправителя и пароль.
func (s SMTPConfig) HasCredentials() bool {
	return s.Username != "" && s.Password != ""
}

// SMTP возвращает настройки почтового транспорта.
func (c *Config) SMTP() SMTPConfig {
	return SMTPConfig{
		Host:     c.SMTPHost,
		Port:     c.SMTPPort,
		UseSSL:   c.SMTPSSL,
		Timeout:  c.SMTPTimeout,
		Username: c.EmailAddress,
		Password: c.EmailPassword,
	}
}

// ArchiveEnabled - включен ли архив планов в PostgreSQL.
func (c *Config) ArchiveEnabled() bool {
	return c.DBHost != ""
}

// GetAllowedOrigins разбивает CORSAllowedOrigins по запятой.
func (c *Config) GetAllowedOrigins() []string {
	if strings.TrimSpace(c.CORSAllowedOrigins) == "" {
		return nil
	}
	return strings.Split(strings.ReplaceAll(c.CORSAllowedOrigins, " ", ""), ",")
}

// GetDSN возвращает строку подключения (DSN) для PostgreSQL
func (c *Config) GetDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

// MaskedDSN возвращает DSN с замаскированным паролем для логирования
func (c *Config) MaskedDSN() string {
	dsn := c.GetDSN()
	parts := strings.Split(dsn, "@")
	if len(parts) != 2 {
		return "[invalid dsn format]"
	}
	userInfo := strings.Split(parts[0], ":")
	if len(userInfo) >= 2 {
		userInfo[len(userInfo)-1] = "********"
	}
	return strings.Join(userInfo, ":") + "@" + parts[1]
}

// LoadConfig загружает конфигурацию из .env (если есть), переменных окружения и секретов.
func LoadConfig(envFilePath string) (*Config, error) {
	if envFilePath != "" {
		if _, err := os.Stat(envFilePath); err == nil {
			if err := godotenv.Load(envFilePath); err != nil {
				log.Printf("Warning: Could not load %s file: %v", envFilePath, err)
			}
		} else if !os.IsNotExist(err) {
			log.Printf("Warning: Error checking %s file: %v", envFilePath, err)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("error processing env vars: %w", err)
	}

	// Секреты: сначала /run/secrets/<name>, затем переменная окружения
	cfg.EmailAddress = utils.SecretOrEnv(cfg.SecretsDir, "email_address", "EMAIL_ADDRESS")
	cfg.EmailPassword = utils.SecretOrEnv(cfg.SecretsDir, "email_password", "EMAIL_PASSWORD")
	cfg.AIAPIKey = utils.SecretOrEnv(cfg.SecretsDir, "ai_api_key", "AI_API_KEY")
	cfg.DBPassword = utils.SecretOrEnv(cfg.SecretsDir, "db_password", "DB_PASSWORD")
	cfg.RedisPassword = utils.SecretOrEnv(cfg.SecretsDir, "redis_password", "REDIS_PASSWORD")

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	c.AIClientType = strings.ToLower(strings.TrimSpace(c.AIClientType))
	switch c.AIClientType {
	case AIClientOpenAI:
		if c.AIAPIKey == "" {
			return fmt.Errorf("AI_API_KEY (или секрет ai_api_key) обязателен для AI_CLIENT_TYPE=%s", c.AIClientType)
		}
	case AIClientOllama, AIClientStub:
	default:
		return fmt.Errorf("неизвестный AI_CLIENT_TYPE: '%s'", c.AIClientType)
	}
	if c.SMTPPort <= 0 {
		return fmt.Errorf("некорректный SMTP_PORT: %d", c.SMTPPort)
	}
	if c.RateLimitPerMinute == 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE должен быть больше нуля")
	}
	return nil
}

// LogSummary пишет загруженную конфигурацию в лог, скрывая секреты.
func (c *Config) LogSummary(logger *zap.Logger) {
	fields := []zap.Field{
		zap.String("env", c.Env),
		zap.String("port", c.ServerPort),
		zap.String("static_dir", c.StaticDir),
		zap.Strings("cors_origins", c.GetAllowedOrigins()),
		zap.Uint("rate_limit_per_minute", c.RateLimitPerMinute),
		zap.String("smtp", fmt.Sprintf("%s:%d", c.SMTPHost, c.SMTPPort)),
		zap.String("email_address", c.EmailAddress),
		zap.String("email_password", utils.MaskSecret(c.EmailPassword)),
		zap.String("ai_client", c.AIClientType),
		zap.String("ai_base_url", c.AIBaseURL),
		zap.String("ai_model", c.AIModel),
		zap.Duration("ai_timeout", c.AITimeout),
		zap.String("ai_api_key", utils.MaskSecret(c.AIAPIKey)),
		zap.String("redis_addr", c.RedisAddr),
		zap.String("plan_events_queue", c.PlanEventsQueue),
	}
	if c.ArchiveEnabled() {
		fields = append(fields, zap.String("db_dsn", c.MaskedDSN()))
	} else {
		fields = append(fields, zap.String("db_dsn", "[АРХИВ ОТКЛЮЧЕН]"))
	}
	logger.Info("Configuration loaded", fields...)
}
