package config

import (
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/chatprobe/backend/internal/chat"
	"github.com/chatprobe/backend/internal/schedule"
)

type Config struct {
	Env             string
	ServerAddress   string
	ShutdownTimeout time.Duration
	LogLevel        string

	// Chat proxy
	LLMProvider     string // openai, compat, anthropic or gemini
	OpenAIAPIKey    string
	AnthropicAPIKey string
	GeminiAPIKey    string
	LLMURL          string // base URL override; required for compat
	LLMModel        string // empty means the provider's default, see Model
	LLMTemperature  float32
	LLMMaxTokens    int
	LLMTimeout      time.Duration
	SystemPrompt    string
	AssistantID     string

	DBPath       string
	TestDataPath string
	RunSchedule  string // cron expression, empty disables scheduled runs

	// Login
	JWTSecret     string
	TokenTTL      time.Duration
	AdminEmail    string
	AdminPassword string
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Env:             getenvDefault("APP_ENV", "development"),
		ServerAddress:   getenvDefault("SERVER_ADDRESS", ":8080"),
		ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		LogLevel:        getenvDefault("LOG_LEVEL", "info"),

		LLMProvider:     strings.ToLower(getenvDefault("LLM_PROVIDER", chat.ProviderOpenAI)),
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		LLMURL:          os.Getenv("LLM_URL"),
		LLMModel:        os.Getenv("LLM_MODEL"),
		LLMTemperature:  getFloat32("LLM_TEMPERATURE", 0),
		LLMMaxTokens:    getInt("LLM_MAX_TOKENS", 200),
		LLMTimeout:      getDuration("LLM_TIMEOUT", 60*time.Second),
		SystemPrompt:    getenvDefault("SYSTEM_PROMPT", chat.DefaultSystemPrompt),
		AssistantID:     os.Getenv("ASSISTANT_ID"),

		DBPath:       getenvDefault("DB_PATH", "chatprobe.db"),
		TestDataPath: getenvDefault("TEST_DATA_PATH", "test_data.json"),
		RunSchedule:  os.Getenv("RUN_SCHEDULE"),

		TokenTTL:      getDuration("TOKEN_TTL", 24*time.Hour),
		AdminEmail:    getenvDefault("ADMIN_EMAIL", "admin@example.com"),
		AdminPassword: getenvDefault("ADMIN_PASSWORD", "test123"),
	}

	if cfg.Env == "production" {
		cfg.JWTSecret = mustGetenv("JWT_SECRET")
	} else {
		cfg.JWTSecret = getenvDefault("JWT_SECRET", "dev-secret-change-me")
	}
	return cfg
}

// Validate reports settings that load fine but cannot work together.
func (c *Config) Validate() error {
	var errs []error

	switch c.LLMProvider {
	case chat.ProviderOpenAI, chat.ProviderAnthropic, chat.ProviderGemini:
		if c.APIKey() == "" {
			errs = append(errs, fmt.Errorf("provider %s requires an api key", c.LLMProvider))
		}
	case chat.ProviderCompat:
		if c.LLMURL == "" {
			errs = append(errs, errors.New("provider compat requires LLM_URL"))
		}
		if c.LLMModel == "" {
			errs = append(errs, errors.New("provider compat requires LLM_MODEL"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown LLM_PROVIDER %q", c.LLMProvider))
	}

	if c.LLMTemperature < 0 || c.LLMTemperature > 2 {
		errs = append(errs, fmt.Errorf("LLM_TEMPERATURE must be between 0 and 2, got %v", c.LLMTemperature))
	}
	if c.LLMMaxTokens <= 0 {
		errs = append(errs, fmt.Errorf("LLM_MAX_TOKENS must be positive, got %d", c.LLMMaxTokens))
	}
	if c.RunSchedule != "" {
		if err := schedule.Validate(c.RunSchedule); err != nil {
			errs = append(errs, fmt.Errorf("RUN_SCHEDULE: %w", err))
		}
	}
	if len(c.AdminPassword) < 6 {
		errs = append(errs, errors.New("ADMIN_PASSWORD must be at least 6 characters"))
	}

	return errors.Join(errs...)
}

// defaultModels holds the model used when LLM_MODEL is unset. Compat servers
// host arbitrary models, so that provider has none.
var defaultModels = map[string]string{
	chat.ProviderOpenAI:    "gpt-4.1",
	chat.ProviderAnthropic: "claude-sonnet-4-5",
	chat.ProviderGemini:    "gemini-2.5-flash",
}

// Model returns LLM_MODEL, or the selected provider's default when unset.
func (c *Config) Model() string {
	if c.LLMModel != "" {
		return c.LLMModel
	}
	return defaultModels[c.LLMProvider]
}

// APIKey returns the key of the selected provider.
func (c *Config) APIKey() string {
	switch c.LLMProvider {
	case chat.ProviderAnthropic:
		return c.AnthropicAPIKey
	case chat.ProviderGemini:
		return c.GeminiAPIKey
	default:
		return c.OpenAIAPIKey
	}
}

func (c *Config) Chat() chat.Config {
	return chat.Config{
		Provider: c.LLMProvider,
		APIKey:   c.APIKey(),
		BaseURL:  c.LLMURL,
		Options: chat.Options{
			Model:        c.Model(),
			SystemPrompt: c.SystemPrompt,
			Temperature:  c.LLMTemperature,
			MaxTokens:    c.LLMMaxTokens,
			Timeout:      c.LLMTimeout,
		},
	}
}

func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func mustGetenv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("config: required environment variable %s is not set", k)
	}
	return v
}

func getDuration(k string, fallback time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("config: %s=%q is not a valid duration: %v", k, v, err)
	}
	return d
}

func getInt(k string, fallback int) int {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("config: %s=%q is not a valid integer: %v", k, v, err)
	}
	return n
}

func getFloat32(k string, fallback float32) float32 {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 32)
	if err != nil {
		log.Fatalf("config: %s=%q is not a valid number: %v", k, v, err)
	}
	return float32(f)
}

func getenvDefault(k, fallback string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return fallback
}
