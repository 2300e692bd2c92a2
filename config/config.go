package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig
	Tavily     TavilyConfig
	OpenAI     OpenAIConfig
	Search     SearchConfig
	Enrichment EnrichmentConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// TavilyConfig holds search provider configuration
type TavilyConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
}

// OpenAIConfig holds chat demo configuration. The chat endpoint is
// disabled when no key is set; the dupe pipeline does not need it.
type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
}

// SearchConfig holds result sizing configuration
type SearchConfig struct {
	MaxResults         int `mapstructure:"max_results"`
	ProviderMultiplier int `mapstructure:"provider_multiplier"`
}

// EnrichmentConfig holds image enrichment configuration
type EnrichmentConfig struct {
	Concurrency  int           `mapstructure:"concurrency"`
	TaskTimeout  time.Duration `mapstructure:"task_timeout"`
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/dupefinder/")

	// Environment variable settings
	v.SetEnvPrefix("DUPEFINDER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// loadEnvFile loads a local .env file when present. Existing environment
// variables win over file values.
func loadEnvFile() error {
	if _, err := os.Stat(".env"); os.IsNotExist(err) {
		return nil
	}
	return godotenv.Load()
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"*"})

	// Provider defaults. The empty api_key defaults register the keys
	// with viper so env-only values survive Unmarshal.
	v.SetDefault("tavily.api_key", "")
	v.SetDefault("tavily.base_url", "https://api.tavily.com")
	v.SetDefault("openai.api_key", "")
	v.SetDefault("openai.base_url", "https://api.openai.com/v1")
	v.SetDefault("openai.model", "gpt-4o-mini")

	// Search defaults
	v.SetDefault("search.max_results", 8)
	v.SetDefault("search.provider_multiplier", 3)

	// Enrichment defaults
	v.SetDefault("enrichment.concurrency", 5)
	v.SetDefault("enrichment.task_timeout", "5s")
	v.SetDefault("enrichment.fetch_timeout", "6s")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Tavily.APIKey == "" {
		return fmt.Errorf("Tavily API key is required (set DUPEFINDER_TAVILY_API_KEY)")
	}

	if config.Search.MaxResults < 1 || config.Search.MaxResults > 20 {
		return fmt.Errorf("search max_results must be between 1 and 20, got: %d", config.Search.MaxResults)
	}

	if config.Enrichment.Concurrency < 1 {
		return fmt.Errorf("enrichment concurrency must be positive, got: %d", config.Enrichment.Concurrency)
	}

	return nil
}
