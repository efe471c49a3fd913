package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/Stashly-Luggage/service-storage/pkg/database"
)

// JWTConfig holds token settings.
type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

// KafkaConfig holds broker settings.
type KafkaConfig struct {
	Brokers     []string
	GroupPrefix string
	Enabled     bool
}

// MailConfig holds SMTP settings. An empty Host selects the logging mailer.
type MailConfig struct {
	Host          string
	Port          int
	Username      string
	Password      string
	From          string
	OperatorEmail string
}

// PricingConfig holds the platform rate card.
type PricingConfig struct {
	DailyRate  int64
	BookingFee int64
}

// DistanceConfig selects and configures the pickup distance provider.
type DistanceConfig struct {
	Provider string // haversine, matrix or static
	URL      string
	APIKey   string
	Timeout  time.Duration
	StaticKm float64
}

// AdminConfig describes the account created at startup, if any.
type AdminConfig struct {
	Email    string
	Password string
}

// ServiceConfig holds all configuration for the storage service.
type ServiceConfig struct {
	Port          string
	AppEnv        string
	MigrationsDir string
	CORSOrigins   []string
	DBConfig      database.PostgresConfig
	JWTConfig     JWTConfig
	KafkaConfig   KafkaConfig
	MailConfig    MailConfig
	Pricing       PricingConfig
	Distance      DistanceConfig
	Admin         AdminConfig
}

// Load reads configuration from a .env file (if present) and STORAGE_* environment variables.
func Load() (*ServiceConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("STORAGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVICE_PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("MIGRATIONS_DIR", "migrations")
	v.SetDefault("CORS_ALLOW_ORIGINS", "")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "storage")
	v.SetDefault("DB_SSLMODE", "disable")

	v.SetDefault("JWT_TTL", "168h")

	v.SetDefault("KAFKA_BROKERS", "localhost:9092")
	v.SetDefault("KAFKA_GROUP_PREFIX", "")
	v.SetDefault("KAFKA_ENABLED", true)

	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("MAIL_FROM", "no-reply@stashly.in")

	v.SetDefault("DAILY_RATE", 100)
	v.SetDefault("BOOKING_FEE", 50)

	v.SetDefault("DISTANCE_PROVIDER", "haversine")
	v.SetDefault("DISTANCE_TIMEOUT", "5s")
	v.SetDefault("DISTANCE_STATIC_KM", 3.5)
}

func fromViper(v *viper.Viper) (*ServiceConfig, error) {
	cfg := &ServiceConfig{
		Port:          servicePort(v.GetString("SERVICE_PORT")),
		AppEnv:        v.GetString("APP_ENV"),
		MigrationsDir: v.GetString("MIGRATIONS_DIR"),
		CORSOrigins:   splitList(v.GetString("CORS_ALLOW_ORIGINS")),
		DBConfig: database.PostgresConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		JWTConfig: JWTConfig{
			Secret: v.GetString("JWT_SECRET"),
			TTL:    v.GetDuration("JWT_TTL"),
		},
		KafkaConfig: KafkaConfig{
			Brokers:     splitList(v.GetString("KAFKA_BROKERS")),
			GroupPrefix: v.GetString("KAFKA_GROUP_PREFIX"),
			Enabled:     v.GetBool("KAFKA_ENABLED"),
		},
		MailConfig: MailConfig{
			Host:          v.GetString("SMTP_HOST"),
			Port:          v.GetInt("SMTP_PORT"),
			Username:      v.GetString("SMTP_USERNAME"),
			Password:      v.GetString("SMTP_PASSWORD"),
			From:          v.GetString("MAIL_FROM"),
			OperatorEmail: v.GetString("OPERATOR_EMAIL"),
		},
		Pricing: PricingConfig{
			DailyRate:  v.GetInt64("DAILY_RATE"),
			BookingFee: v.GetInt64("BOOKING_FEE"),
		},
		Distance: DistanceConfig{
			Provider: strings.ToLower(v.GetString("DISTANCE_PROVIDER")),
			URL:      v.GetString("DISTANCE_MATRIX_URL"),
			APIKey:   v.GetString("DISTANCE_MATRIX_API_KEY"),
			Timeout:  v.GetDuration("DISTANCE_TIMEOUT"),
			StaticKm: v.GetFloat64("DISTANCE_STATIC_KM"),
		},
		Admin: AdminConfig{
			Email:    v.GetString("ADMIN_EMAIL"),
			Password: v.GetString("ADMIN_PASSWORD"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *ServiceConfig) validate() error {
	if c.JWTConfig.Secret == "" {
		return errors.New("STORAGE_JWT_SECRET is required")
	}
	if c.JWTConfig.TTL <= 0 {
		return errors.New("STORAGE_JWT_TTL must be positive")
	}
	if c.Pricing.DailyRate <= 0 {
		return errors.New("STORAGE_DAILY_RATE must be positive")
	}
	if c.Pricing.BookingFee < 0 {
		return errors.New("STORAGE_BOOKING_FEE cannot be negative")
	}
	switch c.Distance.Provider {
	case "haversine", "static":
	case "matrix":
		if c.Distance.URL == "" {
			return errors.New("STORAGE_DISTANCE_MATRIX_URL is required for the matrix provider")
		}
	default:
		return fmt.Errorf("unknown distance provider %q", c.Distance.Provider)
	}
	if (c.Admin.Email == "") != (c.Admin.Password == "") {
		return errors.New("STORAGE_ADMIN_EMAIL and STORAGE_ADMIN_PASSWORD must be set together")
	}
	return nil
}

// IsDevelopment reports whether the service runs in development mode.
func (c *ServiceConfig) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func servicePort(p string) string {
	if strings.HasPrefix(p, ":") {
		return p
	}
	return ":" + p
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
