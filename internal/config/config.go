package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Report   ReportConfig   `mapstructure:"report"`
	Segment  SegmentConfig  `mapstructure:"segment"`
	Logger   LoggerConfig   `mapstructure:"logger"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Path            string        `mapstructure:"path"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// ReportConfig holds report generation configuration
type ReportConfig struct {
	InputFile    string `mapstructure:"input_file"`
	OutputDir    string `mapstructure:"output_dir"`
	OutputPrefix string `mapstructure:"output_prefix"`
	UseTimestamp bool   `mapstructure:"use_timestamp"`
}

// SegmentConfig holds description segmentation configuration
type SegmentConfig struct {
	RulesPath string `mapstructure:"rules_path"`
}

// LoggerConfig holds logger configuration
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	OutputPath string `mapstructure:"output_path"`
	Format     string `mapstructure:"format"`
}

// Load loads configuration from file and environment variables. A
// missing config file is fine; defaults and environment cover every
// setting.
func Load(configPath string) (*Config, error) {
	gotenv.Load()

	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")
	viper.AutomaticEnv()

	// Set defaults
	setDefaults()

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Override with environment variables
	bindEnvVars()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults() {
	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 30*time.Second)
	viper.SetDefault("server.write_timeout", 30*time.Second)

	// Database defaults
	viper.SetDefault("database.path", "data/stocklist.db")
	viper.SetDefault("database.max_open_conns", 25)
	viper.SetDefault("database.max_idle_conns", 5)
	viper.SetDefault("database.conn_max_lifetime", 5*time.Minute)

	// Report defaults
	viper.SetDefault("report.input_file", "备货单.xlsx")
	viper.SetDefault("report.output_dir", "output")
	viper.SetDefault("report.output_prefix", "简洁备货单")
	viper.SetDefault("report.use_timestamp", true)

	// Segment defaults
	viper.SetDefault("segment.rules_path", "configs/segment_rules.json")

	// Logger defaults
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.output_path", "stdout")
	viper.SetDefault("logger.format", "json")
}

// bindEnvVars binds environment variables to configuration
func bindEnvVars() {
	viper.BindEnv("server.host", "STOCKLIST_SERVER_HOST")
	viper.BindEnv("server.port", "STOCKLIST_SERVER_PORT")
	viper.BindEnv("database.path", "STOCKLIST_DATABASE_PATH")
	viper.BindEnv("report.input_file", "STOCKLIST_INPUT_FILE")
	viper.BindEnv("report.output_dir", "STOCKLIST_OUTPUT_DIR")
	viper.BindEnv("segment.rules_path", "STOCKLIST_RULES_PATH")
	viper.BindEnv("logger.level", "STOCKLIST_LOG_LEVEL")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535")
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if c.Report.OutputDir == "" {
		return fmt.Errorf("report.output_dir is required")
	}
	if c.Report.OutputPrefix == "" {
		return fmt.Errorf("report.output_prefix is required")
	}
	if c.Segment.RulesPath == "" {
		return fmt.Errorf("segment.rules_path is required")
	}
	return nil
}
