package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v6"
)

const (
	StoragePostgres = "postgres"
	StorageRedis    = "redis"
	StorageMemory   = "memory"

	DeliveryResponse = "response"
	DeliveryEmail    = "email"
)

type Config struct {
	IsTestMode     bool     `env:"TEST_MODE"`
	Port           uint16   `env:"PORT" envDefault:"8080"`
	Secret         string   `env:"SECRET,required"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`

	PostgresqlURL string `env:"POSTGRESQL_URL,required"`
	RedisURL      string `env:"REDIS_URL,required"`

	RabbitmqURL                   string `env:"RABBITMQ_URL"`
	RabbitmqNotificationsExchange string `env:"RABBITMQ_NOTIFICATIONS_EXCHANGE" envDefault:"notifications"`

	BcryptHasherCost int `env:"BCRYPT_HASHER_COST" envDefault:"10"`

	PasswordResetTokenTTL       time.Duration `env:"PASSWORD_RESET_TOKEN_TTL" envDefault:"15m"`
	PasswordResetTokenStorage   string        `env:"PASSWORD_RESET_TOKEN_STORAGE" envDefault:"postgres"`
	PasswordResetRedisNamespace string        `env:"PASSWORD_RESET_REDIS_NAMESPACE" envDefault:"fintrack"`
	PasswordResetDelivery       string        `env:"PASSWORD_RESET_DELIVERY" envDefault:"response"`
	PasswordResetBaseUrl        url.URL       `env:"PASSWORD_RESET_BASE_URL" envDefault:"http://localhost:3000/reset-password"`
	PasswordResetPruningPeriod  time.Duration `env:"PASSWORD_RESET_PRUNING_PERIOD" envDefault:"10m"`

	AwsRegion                     string `env:"AWS_REGION"`
	AwsAccessKey                  string `env:"AWS_ACCESS_KEY"`
	AwsSecretKey                  string `env:"AWS_SECRET_KEY"`
	AwsEmailSender                string `env:"AWS_EMAIL_SENDER"`
	AwsEmailPasswordResetTemplate string `env:"AWS_EMAIL_PASSWORD_RESET_TEMPLATE"`
}

func Load() (*Config, error) {
	return parse(env.Options{})
}

// LoadFrom reads the configuration from the given variables
// instead of the process environment.
func LoadFrom(environment map[string]string) (*Config, error) {
	return parse(env.Options{Environment: environment})
}

func parse(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg, opts); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.PasswordResetTokenStorage {
	case StoragePostgres, StorageRedis, StorageMemory:
	default:
		return fmt.Errorf("invalid PASSWORD_RESET_TOKEN_STORAGE value: %q", c.PasswordResetTokenStorage)
	}

	switch c.PasswordResetDelivery {
	case DeliveryResponse:
	case DeliveryEmail:
		if c.AwsEmailSender == "" || c.AwsEmailPasswordResetTemplate == "" {
			return fmt.Errorf("AWS_EMAIL_SENDER and AWS_EMAIL_PASSWORD_RESET_TEMPLATE must be set for email delivery")
		}
	default:
		return fmt.Errorf("invalid PASSWORD_RESET_DELIVERY value: %q", c.PasswordResetDelivery)
	}

	if c.PasswordResetTokenTTL <= 0 {
		return fmt.Errorf("PASSWORD_RESET_TOKEN_TTL must be positive")
	}
	if c.PasswordResetPruningPeriod <= 0 {
		return fmt.Errorf("PASSWORD_RESET_PRUNING_PERIOD must be positive")
	}
	return nil
}
