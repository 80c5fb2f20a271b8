package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Gemini model names
// https://ai.google.dev/gemini-api/docs/models
const (
	FLASH      = "gemini-2.5-flash"
	PRO        = "gemini-2.5-pro"
	FLASH_LITE = "gemini-2.5-flash-lite"
)

const (
	// APIKeyEnv holds the one credential both utilities need.
	APIKeyEnv = "GOOGLE_API_KEY"

	// The value shipped in example .env files.
	placeholderAPIKey = "your-api-key-here"

	APIKeyURL = "https://aistudio.google.com/apikey"

	// DotEnvFile is read by Load and written by SaveAPIKey.
	DotEnvFile = ".env"
)

var (
	ErrMissingCredential = errors.New(APIKeyEnv + " environment variable not set")
	ErrInvalidModel      = errors.New("invalid model")
)

type Config struct {
	APIKey  string `env:"GOOGLE_API_KEY"`
	Model   string `env:"GEMINI_MODEL" envDefault:"gemini-2.5-flash"`
	BaseURL string `env:"GEMINI_BASE_URL"`
	Debug   bool   `env:"GEMINI_DEBUG"`
}

// Load reads an optional .env file from the working directory and then the
// process environment. Variables already set take precedence over the file.
// The model name is left as given until UseModel resolves it.
func Load() (*Config, error) {
	if err := godotenv.Load(DotEnvFile); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading .env file: %w", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	return cfg, cfg.validate()
}

// LoadFrom parses the given environment instead of the process one.
func LoadFrom(environ map[string]string) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Environment: environ}); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	return cfg, cfg.validate()
}

func (c *Config) validate() error {
	c.APIKey = strings.TrimSpace(c.APIKey)
	if c.APIKey == "" || c.APIKey == placeholderAPIKey {
		return ErrMissingCredential
	}
	return nil
}

// SetAPIKey replaces the credential, e.g. with one given on the command line.
func (c *Config) SetAPIKey(apiKey string) error {
	c.APIKey = apiKey
	return c.validate()
}

// SaveAPIKey stores apiKey in the .env file at path, keeping any other
// variables already there.
func SaveAPIKey(path, apiKey string) error {
	vars, err := godotenv.Read(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		vars = map[string]string{}
	}
	vars[APIKeyEnv] = strings.TrimSpace(apiKey)

	if err := godotenv.Write(vars, path); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// UseModel settles the model: override wins when set, otherwise the value
// from the environment is used. Either way it must resolve.
func (c *Config) UseModel(override string) error {
	name := c.Model
	if override != "" {
		name = override
	}

	model, err := ResolveModel(name)
	if err != nil {
		return err
	}
	c.Model = model

	return nil
}

var modelMap = map[string]string{
	"flash": FLASH,
	"pro":   PRO,
	"lite":  FLASH_LITE,
}

// ResolveModel maps a short alias to its full model name. Full "gemini-"
// names are passed through untouched.
func ResolveModel(name string) (string, error) {
	name = strings.TrimSpace(name)
	if model, ok := modelMap[strings.ToLower(name)]; ok {
		return model, nil
	}
	if strings.HasPrefix(name, "gemini-") {
		return name, nil
	}

	return "", fmt.Errorf("%w %q: must be one of [flash, pro, lite] or a full gemini-* name", ErrInvalidModel, name)
}
