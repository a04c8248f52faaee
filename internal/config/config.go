package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Inventory InventoryConfig `mapstructure:"inventory"`
	Logger    LoggerConfig    `mapstructure:"logger"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
}

type AppConfig struct {
	Name string `mapstructure:"name" validate:"required"`
	Env  string `mapstructure:"env" validate:"required"`
}

// InventoryConfig locates the inventory file and the low-stock cutoff.
type InventoryConfig struct {
	File              string `mapstructure:"file" validate:"required"`
	LowStockThreshold int    `mapstructure:"low_stock_threshold" validate:"gte=0"`
}

type LoggerConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Output string `mapstructure:"output" validate:"required"`
	File   string `mapstructure:"file"`
}

// MetricsConfig holds the optional Prometheus textfile destination.
type MetricsConfig struct {
	File string `mapstructure:"file"`
}

var envBindings = map[string]string{
	"app.name":                      "SERVICE_NAME",
	"app.env":                       "ENV",
	"inventory.file":                "INVENTORY_FILE",
	"inventory.low_stock_threshold": "LOW_STOCK_THRESHOLD",
	"logger.level":                  "LOG_LEVEL",
	"logger.output":                 "LOG_OUTPUT",
	"logger.file":                   "LOG_FILE",
	"metrics.file":                  "METRICS_FILE",
}

// flagBindings maps config keys to the CLI flags that override them.
var flagBindings = map[string]string{
	"inventory.file":                "file",
	"inventory.low_stock_threshold": "threshold",
	"logger.level":                  "log-level",
	"metrics.file":                  "metrics-file",
}

// Load reads configuration from defaults, an optional .env file, the
// environment and, when flags is non-nil, any explicitly set CLI flags.
func Load(flags *pflag.FlagSet) (*Config, error) {
	// Load .env file if it exists (ignore errors)
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("config: bind env %s: %w", env, err)
		}
	}
	if flags != nil {
		for key, name := range flagBindings {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("config: bind flag --%s: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	cfg.Logger.Level = strings.ToLower(cfg.Logger.Level)

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config: invalid configuration: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "stockledger")
	v.SetDefault("app.env", "dev")

	v.SetDefault("inventory.file", "inventory.json")
	v.SetDefault("inventory.low_stock_threshold", 5)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.output", "stderr")
	v.SetDefault("logger.file", "")

	v.SetDefault("metrics.file", "")
}
