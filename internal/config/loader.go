package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/hquocmanh0502/cmp-travel-ai-web/internal/generation"
)

// envPattern matches ${VAR} and ${VAR:-default} expressions.
var envPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?::-((?:[^}\\]|\\.)*))?\}`)

// Load returns the profile defaults overlaid with the file at path. An empty
// path skips the file. The result has API keys resolved and is validated.
func Load(path string, profile Profile) (*Config, error) {
	cfg := Default(profile)

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: reading %s: %w", path, err)
		}

		expanded, err := expandEnv(raw)
		if err != nil {
			return nil, fmt.Errorf("config: expanding variables in %s: %w", path, err)
		}

		if err := decode(path, expanded, cfg); err != nil {
			return nil, err
		}
	}

	cfg.ResolveAPIKey()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("config: parsing %s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("config: parsing %s: %w", path, err)
		}
	default:
		return fmt.Errorf("%w: unsupported file extension %q", ErrInvalidConfig, ext)
	}
	return nil
}

// ResolveAPIKey fills an empty API key from the provider's environment variable.
func (c *Config) ResolveAPIKey() {
	if c.Generation.APIKey != "" {
		return
	}
	switch c.Generation.Provider {
	case generation.ProviderOpenAI:
		c.Generation.APIKey = os.Getenv("OPENAI_API_KEY")
	case generation.ProviderAnthropic:
		c.Generation.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	}
}

var validate = validator.New()

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
		}
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// expandEnv replaces ${VAR} and ${VAR:-default} patterns in raw bytes.
// Returns an error listing all unresolved variables (no default, no env value).
func expandEnv(raw []byte) ([]byte, error) {
	var errs []error

	result := envPattern.ReplaceAllFunc(raw, func(match []byte) []byte {
		subs := envPattern.FindSubmatch(match)
		name := string(subs[1])
		hasDefault := len(subs) > 2 && subs[2] != nil

		if value, ok := os.LookupEnv(name); ok {
			return []byte(value)
		}
		if hasDefault {
			return subs[2]
		}

		errs = append(errs, fmt.Errorf("unresolved variable: %s", name))
		return match
	})

	return result, errors.Join(errs...)
}
