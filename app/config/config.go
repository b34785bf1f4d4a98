package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Log     Log     `yaml:"log"`
	Server  Server  `yaml:"server"`
	DB      DB      `yaml:"db"`
	Chatbot Chatbot `yaml:"chatbot"`
	MCP     MCP     `yaml:"mcp"`
}

type Log struct {
	// Telegram logging config
	Telegram TelegramLog `yaml:"telegram"`
}

type TelegramLog struct {
	// Chat bot token, obtain it via BotFather
	Token string `yaml:"token" example:"1234567890:ABCdefGHIjklMNopQRstUVwxyZ-123456789"`
	// Chat ID to send messages to
	ChatID string `yaml:"chat_id" example:"1001234567890"`
}

type Server struct {
	// Listen address of the HTTP API
	Addr string `yaml:"addr" example:":8080" validate:"required"`
}

type DB struct {
	// Path to the sqlite database with books and users
	Path string `yaml:"path" example:"data/bookswap.db" validate:"required"`
}

type Chatbot struct {
	// Path to the training corpus JSON, the embedded corpus is used if missing
	TrainingData string `yaml:"training_data" example:"data/comprehensive_dataset.json"`
	// Assistant display name used in replies
	BotName string `yaml:"bot_name" example:"Elina" validate:"required"`
}

type MCP struct {
	// Serve MCP tools over stdio instead of starting the HTTP API
	Enabled bool `yaml:"enabled" example:"false"`
}

func Load() (*Config, error) {
	var result Config

	data, err := os.ReadFile("config.yaml")
	if err != nil {
		return nil, oops.Errorf("failed to read config file: %w", err)
	}

	if err = yaml.Unmarshal(data, &result); err != nil {
		return nil, oops.Errorf("failed to parse YAML config: %w", err)
	}

	applyDefaults(&result)

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(result); err != nil {
		return nil, oops.Errorf("failed to validate config: %w", err)
	}

	return &result, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.DB.Path == "" {
		cfg.DB.Path = "data/bookswap.db"
	}
	if cfg.Chatbot.BotName == "" {
		cfg.Chatbot.BotName = "Elina"
	}
}

// Default returns a config with all defaults applied, used by tests and as a
// fallback when no config.yaml is present.
func Default() *Config {
	var cfg Config
	applyDefaults(&cfg)
	return &cfg
}
