package generator

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
)

// Defaults for the content pipeline.
const (
	DefaultModel     = "gpt-5.1"
	DefaultFixModel  = "gpt-4.1-mini"
	DefaultMaxRounds = 3
)

// Config drives the content-generation and fix pipelines.
type Config struct {
	Model      string     `json:"model,omitempty"`
	FixModel   string     `json:"fix_model,omitempty"`
	MaxRounds  int        `json:"max_rounds,omitempty"`
	ServerAddr string     `json:"server_addr,omitempty"`
	LLM        *LLMConfig `json:"llm,omitempty"`
}

// LLMConfig holds the API credentials. The api_key may instead come from
// the OPENAI_API_KEY environment variable.
type LLMConfig struct {
	APIKey  string `json:"api_key,omitempty"`
	BaseURL string `json:"base_url,omitempty"`
}

// LoadConfig reads JSON config from disk. A missing file is not an error:
// the tool is fully usable from environment variables alone, so absence
// just means defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Config{}.withDefaults(), nil
	}
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg.withDefaults(), nil
}

func (c Config) withDefaults() Config {
	if c.Model == "" {
		c.Model = os.Getenv("METHODS_BOOK_MODEL")
	}
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.FixModel == "" {
		c.FixModel = DefaultFixModel
	}
	if c.MaxRounds <= 0 {
		c.MaxRounds = DefaultMaxRounds
	}
	return c
}

func (c Config) apiKey() string {
	if c.LLM != nil && c.LLM.APIKey != "" {
		return c.LLM.APIKey
	}
	return os.Getenv("OPENAI_API_KEY")
}
