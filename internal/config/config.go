// Package config resolves banter's runtime settings from the environment,
// optionally seeded from a .env file.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/zhubert/banter/internal/completion"
	berrors "github.com/zhubert/banter/internal/errors"
)

// Environment variable names.
const (
	EnvProvider     = "BANTER_PROVIDER"
	EnvAPIBase      = "BANTER_API_BASE"
	EnvAPIKey       = "BANTER_API_KEY"
	EnvModel        = "BANTER_MODEL"
	EnvSystemPrompt = "BANTER_SYSTEM_PROMPT"
	EnvTemperature  = "BANTER_TEMPERATURE"
	EnvTimeout      = "BANTER_REQUEST_TIMEOUT"
	EnvGreeting     = "BANTER_GREETING"
	EnvDataDir      = "BANTER_DATA_DIR"
	EnvNotify       = "BANTER_NOTIFY"
)

const (
	DefaultProvider = "groq"
	DefaultTimeout  = 2 * time.Minute
	DefaultGreeting = "How can I Help you today?"
	DefaultEnvFile  = ".env"

	// disabled turns off an optional text setting.
	disabled = "-"

	prefsFile = "prefs.db"
)

// providerKeyVars maps a preset to the vendor variable its key may come from.
var providerKeyVars = map[string]string{
	"openai": "OPENAI_API_KEY",
	"groq":   "GROQ_API_KEY",
}

// Config holds the resolved settings.
type Config struct {
	Provider completion.Provider
	APIKey   string
	Timeout  time.Duration
	Greeting string // empty when disabled
	DataDir  string
	Notify   bool

	// EnvFile is the .env file that was loaded, or "" if none was found.
	EnvFile string
}

// LookupFunc reads one variable; os.LookupEnv satisfies it.
type LookupFunc func(key string) (string, bool)

// Load reads envFile (if it exists) into the process environment without
// overriding variables that are already set, then resolves the settings.
// An empty envFile means DefaultEnvFile.
func Load(envFile string) (*Config, error) {
	if envFile == "" {
		envFile = DefaultEnvFile
	}

	loaded := ""
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			return nil, berrors.ConfigLoadFailed(envFile, err)
		}
		loaded = envFile
	}

	cfg, err := FromLookup(os.LookupEnv)
	if err != nil {
		return nil, err
	}
	cfg.EnvFile = loaded
	return cfg, nil
}

// FromLookup resolves the settings using lookup. It does not require an API
// key; call RequireAPIKey before talking to a provider.
func FromLookup(lookup LookupFunc) (*Config, error) {
	get := func(key string) string {
		v, _ := lookup(key)
		return strings.TrimSpace(v)
	}

	name := strings.ToLower(get(EnvProvider))
	if name == "" {
		name = DefaultProvider
	}
	p, ok := completion.Lookup(name)
	if !ok {
		return nil, berrors.ConfigInvalid("unknown provider " + strconv.Quote(name) +
			" (want one of " + strings.Join(completion.Names(), ", ") + ")")
	}

	if v := get(EnvAPIBase); v != "" {
		p.Endpoint = v
	}
	if v := get(EnvModel); v != "" {
		p.Model = v
	}
	if v, ok := lookup(EnvSystemPrompt); ok && strings.TrimSpace(v) != "" {
		if strings.TrimSpace(v) == disabled {
			p.SystemPrompt = ""
		} else {
			p.SystemPrompt = v
		}
	}
	if v := get(EnvTemperature); v != "" {
		f, err := strconv.ParseFloat(v, 32)
		if err != nil || f < 0 || f > 2 {
			return nil, berrors.ConfigInvalid(EnvTemperature + " must be a number between 0 and 2, got " + strconv.Quote(v))
		}
		p.Temperature = float32(f)
	}

	cfg := &Config{
		Provider: p,
		APIKey:   get(EnvAPIKey),
		Timeout:  DefaultTimeout,
		Greeting: DefaultGreeting,
	}
	if cfg.APIKey == "" {
		if alt, ok := providerKeyVars[p.Name]; ok {
			cfg.APIKey = get(alt)
		}
	}

	if v := get(EnvTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			return nil, berrors.ConfigInvalid(EnvTimeout + " must be a non-negative duration, got " + strconv.Quote(v))
		}
		cfg.Timeout = d
	}

	if v, ok := lookup(EnvGreeting); ok && strings.TrimSpace(v) != "" {
		if strings.TrimSpace(v) == disabled {
			cfg.Greeting = ""
		} else {
			cfg.Greeting = v
		}
	}

	if v := get(EnvNotify); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, berrors.ConfigInvalid(EnvNotify + " must be a boolean, got " + strconv.Quote(v))
		}
		cfg.Notify = b
	}

	cfg.DataDir = get(EnvDataDir)
	if cfg.DataDir == "" {
		dir, err := defaultDataDir()
		if err != nil {
			return nil, berrors.E(berrors.Op("config.Load"), berrors.KindConfig, "cannot locate home directory", err)
		}
		cfg.DataDir = dir
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaultDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".banter"), nil
}

// Validate checks the settings that every command depends on.
func (c *Config) Validate() error {
	if c.Provider.Endpoint == "" {
		return berrors.ConfigInvalid("provider endpoint is empty")
	}
	if !strings.HasPrefix(c.Provider.Endpoint, "http://") && !strings.HasPrefix(c.Provider.Endpoint, "https://") {
		return berrors.ConfigInvalid(EnvAPIBase + " must be an http(s) URL, got " + strconv.Quote(c.Provider.Endpoint))
	}
	if c.Provider.Model == "" {
		return berrors.ConfigInvalid("model is empty")
	}
	if c.DataDir == "" {
		return berrors.ConfigInvalid("data directory is empty")
	}
	return nil
}

// RequireAPIKey fails when no key was found for the selected provider.
func (c *Config) RequireAPIKey() error {
	if c.APIKey != "" {
		return nil
	}
	hint := EnvAPIKey
	if alt, ok := providerKeyVars[c.Provider.Name]; ok {
		hint += " or " + alt
	}
	return berrors.ConfigInvalid("no API key for " + c.Provider.Name + ": set " + hint + " or run `banter setup`")
}

// PrefsPath is the bbolt file holding UI preferences.
func (c *Config) PrefsPath() string {
	return filepath.Join(c.DataDir, prefsFile)
}
