package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration settings
type Config struct {
	// Git configuration (local diff inspection)
	Git GitConfig `yaml:"git" mapstructure:"git"`

	// GitHub configuration (remote diff inspection for shallow CI checkouts)
	GitHub GitHubConfig `yaml:"github" mapstructure:"github"`

	// API configuration for the advisory service
	API APIConfig `yaml:"api" mapstructure:"api"`

	// Advisor behavior
	Advisor AdvisorConfig `yaml:"advisor" mapstructure:"advisor"`

	// Deployment history persistence
	History HistoryConfig `yaml:"history" mapstructure:"history"`

	// Output artifact settings
	Output OutputConfig `yaml:"output" mapstructure:"output"`
}

type GitConfig struct {
	RepoPath string `yaml:"repo_path" mapstructure:"repo_path"`
	BaseRev  string `yaml:"base_rev" mapstructure:"base_rev"`
	HeadRev  string `yaml:"head_rev" mapstructure:"head_rev"`
}

type GitHubConfig struct {
	Token      string `yaml:"token" mapstructure:"token"`
	Repository string `yaml:"repository" mapstructure:"repository"` // "owner/name"
	RateLimit  int    `yaml:"rate_limit" mapstructure:"rate_limit"` // Requests per second
}

type APIConfig struct {
	Provider    string `yaml:"provider" mapstructure:"provider"` // "openai", "gemini"
	OpenAIKey   string `yaml:"openai_key" mapstructure:"openai_key"`
	OpenAIModel string `yaml:"openai_model" mapstructure:"openai_model"`
	GeminiKey   string `yaml:"gemini_key" mapstructure:"gemini_key"`
	GeminiModel string `yaml:"gemini_model" mapstructure:"gemini_model"`
	UseKeychain bool   `yaml:"use_keychain" mapstructure:"use_keychain"`
}

type AdvisorConfig struct {
	Timeout  time.Duration `yaml:"timeout" mapstructure:"timeout"`
	Disabled bool          `yaml:"disabled" mapstructure:"disabled"` // force the deterministic fallback
}

type HistoryConfig struct {
	Backend string `yaml:"backend" mapstructure:"backend"` // "file", "sqlite"
	Path    string `yaml:"path" mapstructure:"path"`
}

type OutputConfig struct {
	Dir string `yaml:"dir" mapstructure:"dir"`
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Git: GitConfig{
			RepoPath: ".",
			BaseRev:  "HEAD~1",
			HeadRev:  "HEAD",
		},
		GitHub: GitHubConfig{
			RateLimit: 10,
		},
		API: APIConfig{
			Provider:    "openai",
			OpenAIModel: "gpt-4",
			GeminiModel: "gemini-2.0-flash",
		},
		Advisor: AdvisorConfig{
			Timeout: 30 * time.Second,
		},
		History: HistoryConfig{
			Backend: "file",
			Path:    "deployment-history.json",
		},
		Output: OutputConfig{
			Dir: ".",
		},
	}
}

// Load loads configuration from file
func Load(path string) (*Config, error) {
	// Load .env files first (in order of precedence)
	loadEnvFiles()

	v := viper.New()
	v.SetConfigType("yaml")

	// Set defaults
	cfg := Default()
	v.SetDefault("git", cfg.Git)
	v.SetDefault("github", cfg.GitHub)
	v.SetDefault("api", cfg.API)
	v.SetDefault("advisor", cfg.Advisor)
	v.SetDefault("history", cfg.History)
	v.SetDefault("output", cfg.Output)

	// Load from environment variables
	v.SetEnvPrefix("SHIPGATE")
	v.AutomaticEnv()

	// Try to find config file
	if path != "" {
		v.SetConfigFile(path)
	} else {
		// Search for config in standard locations
		v.SetConfigName("config")
		v.AddConfigPath(".shipgate")
		v.AddConfigPath(".")
		homeDir, _ := os.UserHomeDir()
		v.AddConfigPath(filepath.Join(homeDir, ".shipgate"))
	}

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	// Unmarshal into struct
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Apply environment variable overrides
	applyEnvOverrides(cfg)

	return cfg, nil
}

// loadEnvFiles loads .env files in order of precedence
func loadEnvFiles() {
	envFiles := []string{
		".env.local", // Local overrides (highest precedence)
		".env",       // Main environment file
	}

	for _, file := range envFiles {
		if _, err := os.Stat(file); err == nil {
			godotenv.Load(file)
		}
	}

	// Also try loading from home directory
	homeDir, _ := os.UserHomeDir()
	homeEnvFile := filepath.Join(homeDir, ".shipgate", ".env")
	if _, err := os.Stat(homeEnvFile); err == nil {
		godotenv.Load(homeEnvFile)
	}
}

// applyEnvOverrides applies environment variable overrides to config
// Precedence: 1. Env var (highest) 2. Keychain 3. Config file (lowest)
func applyEnvOverrides(cfg *Config) {
	// GitHub configuration
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		cfg.GitHub.Token = token
	} else if cfg.GitHub.Token == "" {
		km := NewKeyringManager()
		if km.IsAvailable() {
			if keychainToken, err := km.GetGitHubToken(); err == nil && keychainToken != "" {
				cfg.GitHub.Token = keychainToken
			}
		}
	}
	if repo := os.Getenv("GITHUB_REPOSITORY"); repo != "" && cfg.GitHub.Repository == "" {
		cfg.GitHub.Repository = repo
	}
	if rateLimit := os.Getenv("GITHUB_RATE_LIMIT"); rateLimit != "" {
		if rate, err := strconv.Atoi(rateLimit); err == nil {
			cfg.GitHub.RateLimit = rate
		}
	}

	// Advisory service keys
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		cfg.API.OpenAIKey = key
	} else if cfg.API.OpenAIKey == "" {
		// Try keychain if no env var and no config file value
		km := NewKeyringManager()
		if km.IsAvailable() {
			if keychainKey, err := km.GetAPIKey(); err == nil && keychainKey != "" {
				cfg.API.OpenAIKey = keychainKey
			}
		}
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		cfg.API.GeminiKey = key
	}
	if provider := os.Getenv("LLM_PROVIDER"); provider != "" {
		cfg.API.Provider = provider
	}
}
