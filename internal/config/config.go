package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port string `mapstructure:"PORT"`
	Env  string `mapstructure:"ENV"`

	// Vacío => repos in-memory.
	DBDSN string `mapstructure:"DB_DSN"`

	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`
	AppName   string `mapstructure:"APP_NAME"`

	// Zona horaria por defecto para horas de toma ("HH:MM" sin zona).
	Timezone string `mapstructure:"TIMEZONE"`

	JWTSecret  string        `mapstructure:"JWT_SECRET"`
	SessionTTL time.Duration `mapstructure:"SESSION_TTL"`

	// OTP_PROVIDER=local|gateway
	OTPProvider      string        `mapstructure:"OTP_PROVIDER"`
	OTPGatewayURL    string        `mapstructure:"OTP_GATEWAY_URL"`
	OTPGatewayAPIKey string        `mapstructure:"OTP_GATEWAY_API_KEY"`
	OTPTTL           time.Duration `mapstructure:"OTP_TTL"`

	// NOTIFIER=memory|push|local
	Notifier          string `mapstructure:"NOTIFIER"`
	PushGatewayURL    string `mapstructure:"PUSH_GATEWAY_URL"`
	PushGatewayAPIKey string `mapstructure:"PUSH_GATEWAY_API_KEY"`
	LocalNotifierPath string `mapstructure:"LOCAL_NOTIFIER_PATH"`

	PollInterval time.Duration `mapstructure:"POLL_INTERVAL"`
}

var keys = []string{
	"PORT", "ENV", "DB_DSN", "LOG_LEVEL", "LOG_FORMAT", "APP_NAME", "TIMEZONE",
	"JWT_SECRET", "SESSION_TTL",
	"OTP_PROVIDER", "OTP_GATEWAY_URL", "OTP_GATEWAY_API_KEY", "OTP_TTL",
	"NOTIFIER", "PUSH_GATEWAY_URL", "PUSH_GATEWAY_API_KEY", "LOCAL_NOTIFIER_PATH",
	"POLL_INTERVAL",
}

// Load lee env (y .env si existe) sobre los defaults.
func Load() (*Config, error) {
	return load(viper.New(), ".env")
}

func load(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
	}
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("APP_NAME", "doseup-parent")
	v.SetDefault("TIMEZONE", "Local")
	v.SetDefault("JWT_SECRET", "dev-secret")
	v.SetDefault("SESSION_TTL", "720h")
	v.SetDefault("OTP_PROVIDER", "local")
	v.SetDefault("OTP_TTL", "5m")
	v.SetDefault("NOTIFIER", "memory")
	v.SetDefault("LOCAL_NOTIFIER_PATH", "reminders.db")
	v.SetDefault("POLL_INTERVAL", "15s")

	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	// .env es opcional, pero si existe tiene que parsear
	if err := v.ReadInConfig(); err != nil && !configMissing(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// configMissing: sin archivo configurado viper da ConfigFileNotFoundError;
// con SetConfigFile y el archivo ausente da un error de fs.
func configMissing(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

func (c *Config) Addr() string {
	return ":" + strings.TrimPrefix(c.Port, ":")
}

// Location resuelve TIMEZONE; "Local" usa la zona del host.
func (c *Config) Location() (*time.Location, error) {
	tz := strings.TrimSpace(c.Timezone)
	if tz == "" || strings.EqualFold(tz, "local") {
		return time.Local, nil
	}
	return time.LoadLocation(tz)
}

func (c *Config) Validate() error {
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("TIMEZONE is invalid: %w", err)
	}

	if !c.IsDev() && (c.JWTSecret == "" || c.JWTSecret == "dev-secret") {
		return fmt.Errorf("JWT_SECRET must be set outside development (current ENV=%q)", c.Env)
	}

	switch c.OTPProvider {
	case "local":
	case "gateway":
		if c.OTPGatewayURL == "" {
			return fmt.Errorf("OTP_GATEWAY_URL is required when OTP_PROVIDER is \"gateway\"")
		}
	default:
		return fmt.Errorf("OTP_PROVIDER must be \"local\" or \"gateway\", got %q", c.OTPProvider)
	}

	switch c.Notifier {
	case "memory":
	case "push":
		if c.PushGatewayURL == "" {
			return fmt.Errorf("PUSH_GATEWAY_URL is required when NOTIFIER is \"push\"")
		}
	case "local":
		if c.LocalNotifierPath == "" {
			return fmt.Errorf("LOCAL_NOTIFIER_PATH is required when NOTIFIER is \"local\"")
		}
	default:
		return fmt.Errorf("NOTIFIER must be \"memory\", \"push\" or \"local\", got %q", c.Notifier)
	}

	if c.PollInterval <= 0 {
		return fmt.Errorf("POLL_INTERVAL must be positive")
	}
	return nil
}
