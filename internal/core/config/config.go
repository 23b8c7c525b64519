package config

import (
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/spf13/viper"
)

// Snooze backends accepted by SNOOZE_BACKEND.
const (
	SnoozeBackendMgr   = "mgr"
	SnoozeBackendRedis = "redis"
)

// AppConfig holds the configuration for the application.
// Tags used:
// - mapstructure: used by viper to unmarshal
// - default: default value to set if missing
// - required: if "true", error if missing
type AppConfig struct {
	// Environment specifies the runtime environment (e.g., development, production).
	Environment string `mapstructure:"APP_ENV" default:"development"`
	// LogLevel defines the logging verbosity (e.g., debug, info, error).
	LogLevel string `mapstructure:"LOG_LEVEL" default:"info"`
	// ServerPort is the port where the server will listen.
	ServerPort int `mapstructure:"SERVER_PORT" default:"8080"`
	// BuildFlavor selects which reminders are active (e.g., ceph, ibm).
	BuildFlavor string `mapstructure:"BUILD_FLAVOR" default:"ceph"`

	// Mgr holds the Ceph manager API connection details.
	Mgr MgrConfig `mapstructure:",squash"`

	// Reminders holds the reminder behaviour settings.
	Reminders RemindersConfig `mapstructure:",squash"`

	// Redis holds the cache connection used for Redis-backed storage.
	Redis RedisConfig `mapstructure:",squash"`
}

// MgrConfig holds the credentials for the Ceph manager REST API.
type MgrConfig struct {
	// URL is the base URL of the dashboard API (e.g., https://mgr:8443).
	URL string `mapstructure:"MGR_URL" required:"true"`
	// Username is the dashboard user used to obtain an API token.
	Username string `mapstructure:"MGR_USERNAME" required:"true"`
	// Password is the dashboard user's password.
	Password string `mapstructure:"MGR_PASSWORD" required:"true"`
	// TimeoutSeconds bounds every manager API call.
	TimeoutSeconds int `mapstructure:"MGR_TIMEOUT_SECONDS" default:"10"`
	// InsecureSkipVerify disables TLS verification for self-signed dashboard certificates.
	InsecureSkipVerify bool `mapstructure:"MGR_INSECURE_SKIP_VERIFY" default:"false"`
}

// RemindersConfig holds the reminder and notification settings.
type RemindersConfig struct {
	// SnoozeBackend selects where snooze deadlines live: "mgr" or "redis".
	SnoozeBackend string `mapstructure:"SNOOZE_BACKEND" default:"mgr"`
	// RemindAfterDays is how long a dismissed reminder stays muted.
	RemindAfterDays int `mapstructure:"REMIND_AFTER_DAYS" default:"90"`
	// RefreshSchedule is a cron spec for re-checking reminders. "off" disables it.
	RefreshSchedule string `mapstructure:"REFRESH_SCHEDULE" default:"@every 10m"`
	// NotificationHistory caps the number of stored user notifications.
	NotificationHistory int `mapstructure:"NOTIFICATION_HISTORY" default:"50"`
	// ReconnectPollSeconds is the delay between manager reachability checks after a module toggle.
	ReconnectPollSeconds int `mapstructure:"RECONNECT_POLL_SECONDS" default:"2"`
	// ReconnectTimeoutSeconds bounds the wait for the manager to come back.
	ReconnectTimeoutSeconds int `mapstructure:"RECONNECT_TIMEOUT_SECONDS" default:"120"`
}

// RedisConfig holds the Redis connection details.
type RedisConfig struct {
	// URL is in the format redis://[:password@]host[:port][/database].
	URL string `mapstructure:"REDIS_URL" default:"redis://localhost:6379/0"`
}

// MgrTimeout returns the manager call timeout as a duration.
func (c *AppConfig) MgrTimeout() time.Duration {
	return time.Duration(c.Mgr.TimeoutSeconds) * time.Second
}

// Load loads configuration from .env files and environment variables.
func Load(path string) (*AppConfig, error) {
	v := viper.New()

	v.AutomaticEnv()

	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config AppConfig

	if err := processTags(v, &config); err != nil {
		return nil, err
	}

	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := validateRequired(&config); err != nil {
		return nil, err
	}

	if err := validate(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// validate checks cross-field constraints that tags cannot express.
func validate(config *AppConfig) error {
	switch config.Reminders.SnoozeBackend {
	case SnoozeBackendMgr:
	case SnoozeBackendRedis:
		if config.Redis.URL == "" {
			return errors.New("REDIS_URL is required when SNOOZE_BACKEND is redis")
		}
	default:
		return fmt.Errorf("invalid SNOOZE_BACKEND %q: must be %s or %s",
			config.Reminders.SnoozeBackend, SnoozeBackendMgr, SnoozeBackendRedis)
	}

	if config.Reminders.RemindAfterDays <= 0 {
		return fmt.Errorf("REMIND_AFTER_DAYS must be positive, got %d", config.Reminders.RemindAfterDays)
	}

	return nil
}

// processTags iterates over the struct fields and sets default values in Viper.
func processTags(v *viper.Viper, config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := processTags(v, val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		key := field.Tag.Get("mapstructure")
		defaultValue := field.Tag.Get("default")

		if key != "" {
			if err := v.BindEnv(key); err != nil {
				return fmt.Errorf("bind env %s: %w", key, err)
			}
		}

		if key != "" && defaultValue != "" {
			v.SetDefault(key, defaultValue)
		}
	}
	return nil
}

// validateRequired checks if fields marked as required have non-zero values.
func validateRequired(config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := validateRequired(val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		if field.Tag.Get("required") == "true" && val.Field(i).IsZero() {
			key := field.Tag.Get("mapstructure")
			return fmt.Errorf("missing required configuration: %s", key)
		}
	}
	return nil
}
