package config

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	GPU    GPUConfig    `yaml:"gpu" mapstructure:"gpu"`
	Output OutputConfig `yaml:"output" mapstructure:"output"`
	Server ServerConfig `yaml:"server" mapstructure:"server"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// GPUConfig configures the upstream Géoportail de l'Urbanisme API client.
type GPUConfig struct {
	BaseURL     string `yaml:"base_url" mapstructure:"base_url"`
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// Timeout returns the request timeout as a duration.
func (c GPUConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSecs) * time.Second
}

// OutputConfig bounds rendered tool output.
type OutputConfig struct {
	MaxChars int `yaml:"max_chars" mapstructure:"max_chars"`
}

// ServerConfig configures the MCP transport.
type ServerConfig struct {
	Port      int    `yaml:"port" mapstructure:"port"`
	Transport string `yaml:"transport" mapstructure:"transport"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("GPU")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("gpu.base_url", "https://www.geoportail-urbanisme.gouv.fr/api")
	v.SetDefault("gpu.timeout_secs", 30)
	v.SetDefault("output.max_chars", 25000)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.transport", "stdio")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks configuration invariants before the server starts.
func (c *Config) Validate() error {
	var problems []string

	if c.GPU.BaseURL == "" {
		problems = append(problems, "gpu.base_url is required")
	}
	if c.GPU.TimeoutSecs <= 0 {
		problems = append(problems, "gpu.timeout_secs must be > 0")
	}
	if c.Output.MaxChars <= 0 {
		problems = append(problems, "output.max_chars must be > 0")
	}
	switch c.Server.Transport {
	case "stdio":
	case "http":
		if c.Server.Port <= 0 || c.Server.Port > 65535 {
			problems = append(problems, "server.port must be between 1 and 65535")
		}
	default:
		problems = append(problems, "server.transport must be \"stdio\" or \"http\"")
	}

	if len(problems) > 0 {
		return eris.New("config: " + strings.Join(problems, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	// Stdout carries the stdio MCP transport; logs go to stderr.
	zapCfg.OutputPaths = []string{"stderr"}

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
