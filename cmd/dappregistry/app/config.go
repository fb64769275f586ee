package app

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/dappregistry/pkg/constants"
	"github.com/agentstation/dappregistry/pkg/errors"
)

// EnvPrefix prefixes every environment variable the CLI reads.
const EnvPrefix = "DAPPREGISTRY"

// Config holds the application configuration loaded from flags, environment
// variables, .env files and the config file.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	ConfigFile string

	// Registry client
	Strategy    string
	RegistryURL string
	StoresURL   string
	Token       string
	HTTPTimeout time.Duration
	HTTPRetries int
	TTL         time.Duration

	// API server
	Host        string
	Port        int
	CacheTTL    time.Duration
	CORSOrigins []string

	// Logging
	LogLevel  string
	LogFormat string
	LogOutput string

	// levelFromFlag is set when LogLevel came from --log-level.
	levelFromFlag bool
}

// LoadConfig loads configuration in order of precedence:
//  1. Command-line flags (applied later by UpdateFromFlags)
//  2. DAPPREGISTRY_* environment variables
//  3. .env and .env.local
//  4. Config file (--config, or .dappregistry.yaml in $HOME or the working directory)
//  5. Defaults
func LoadConfig(configFile string) (*Config, error) {
	loadEnvFiles()
	return loadConfig(viper.New(), configFile)
}

func loadConfig(v *viper.Viper, configFile string) (*Config, error) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	// The registry lives on GitHub, so a plain GITHUB_TOKEN is honoured too.
	if err := v.BindEnv("token", EnvPrefix+"_TOKEN", "GITHUB_TOKEN"); err != nil {
		return nil, errors.NewConfigError("config", "binding token", err)
	}
	for key, env := range map[string]string{"log_level": "LOG_LEVEL", "log_format": "LOG_FORMAT", "log_output": "LOG_OUTPUT"} {
		if err := v.BindEnv(key, EnvPrefix+"_"+env, env); err != nil {
			return nil, errors.NewConfigError("config", "binding "+key, err)
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".dappregistry")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, errors.NewConfigError("config", "reading config file", err)
		}
	}

	return &Config{
		Verbose:     v.GetBool("verbose"),
		Quiet:       v.GetBool("quiet"),
		NoColor:     v.GetBool("no_color"),
		Format:      v.GetString("format"),
		ConfigFile:  v.ConfigFileUsed(),
		Strategy:    v.GetString("strategy"),
		RegistryURL: v.GetString("registry_url"),
		StoresURL:   v.GetString("stores_url"),
		Token:       v.GetString("token"),
		HTTPTimeout: v.GetDuration("http_timeout"),
		HTTPRetries: v.GetInt("http_retries"),
		TTL:         v.GetDuration("ttl"),
		Host:        v.GetString("host"),
		Port:        v.GetInt("port"),
		CacheTTL:    v.GetDuration("cache_ttl"),
		CORSOrigins: v.GetStringSlice("cors_origins"),
		LogLevel:    v.GetString("log_level"),
		LogFormat:   v.GetString("log_format"),
		LogOutput:   v.GetString("log_output"),
	}, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("strategy", "github")
	v.SetDefault("registry_url", constants.RegistryURL)
	v.SetDefault("stores_url", constants.StoresURL)
	v.SetDefault("http_timeout", constants.DefaultHTTPTimeout)
	v.SetDefault("http_retries", constants.DefaultRetries)
	v.SetDefault("ttl", constants.RegistryTTL)
	v.SetDefault("host", "localhost")
	v.SetDefault("port", 8080)
	v.SetDefault("cache_ttl", constants.ResponseCacheTTL)
	v.SetDefault("log_format", "auto")
	v.SetDefault("log_output", "stderr")
}

// UpdateFromFlags applies parsed flag values so they take precedence over
// the config file and environment.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel, strategy string) {
	c.Verbose = c.Verbose || verbose
	c.Quiet = c.Quiet || quiet
	c.NoColor = c.NoColor || noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
		c.levelFromFlag = true
	}
	if strategy != "" {
		c.Strategy = strategy
	}
}

// loadEnvFiles loads .env then .env.local. Variables already set win.
func loadEnvFiles() {
	for _, envFile := range []string{".env", ".env.local"} {
		_ = godotenv.Load(envFile)
	}
}
