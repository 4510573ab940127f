package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"runtime"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config holds the movies API configuration.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Dataset   DatasetConfig   `yaml:"dataset"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	Recommend RecommendConfig `yaml:"recommend"`
	Cache     CacheConfig     `yaml:"cache"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Auth      AuthConfig      `yaml:"auth"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level" validate:"omitempty,oneof=debug info warn error"` // default: determined by env
}

// AuthConfig holds API authentication settings. No keys disables auth.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys" validate:"dive,required"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port              int `yaml:"port" validate:"min=1,max=65535"`
	ReadTimeoutSec    int `yaml:"read_timeout_sec" validate:"gt=0"`
	WriteTimeoutSec   int `yaml:"write_timeout_sec" validate:"gt=0"`
	RequestTimeoutSec int `yaml:"request_timeout_sec" validate:"gt=0"`
	ShutdownSec       int `yaml:"shutdown_timeout_sec" validate:"gt=0"`
}

// DatasetConfig locates the parquet sources.
type DatasetConfig struct {
	CatalogPath     string `yaml:"catalog_path" validate:"required"`
	CorpusPath      string `yaml:"corpus_path"` // empty: use the catalog overview column
	CreditDelimiter string `yaml:"credit_delimiter"`
}

// CatalogConfig holds catalog query settings.
type CatalogConfig struct {
	MinVotes int `yaml:"min_votes" validate:"gt=0"`
}

// RecommendConfig holds similarity index and query settings.
type RecommendConfig struct {
	TopK                  int    `yaml:"top_k" validate:"gt=0,lte=100"`
	NgramMin              int    `yaml:"ngram_min" validate:"gte=1"`
	NgramMax              int    `yaml:"ngram_max" validate:"gte=1,lte=3"`
	StopWords             string `yaml:"stop_words" validate:"oneof=english none"`
	CaseInsensitiveTitles bool   `yaml:"case_insensitive_titles"`
}

// CacheConfig holds recommendation cache settings.
type CacheConfig struct {
	Driver           string   `yaml:"driver" validate:"oneof=none valkey"` // default: none
	Addrs            []string `yaml:"addrs" validate:"dive,hostname_port"`
	Username         string   `yaml:"username"`
	Password         string   `yaml:"password"`
	DB               int      `yaml:"db" validate:"gte=0"`
	TTLSec           int      `yaml:"ttl_sec" validate:"gte=0"` // 0 = no expiry
	ReadinessTimeout int      `yaml:"readiness_timeout_sec" validate:"gt=0"`
	BreakerFailures  uint32   `yaml:"breaker_failures" validate:"gt=0"`
	BreakerOpenSec   int      `yaml:"breaker_open_sec" validate:"gt=0"`
}

// CORSConfig holds cross-origin settings. No origins disables CORS headers.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
	MaxAgeSec      int      `yaml:"max_age_sec" validate:"gte=0"`
}

// RateLimitConfig holds per-IP rate limiting. 0 disables the limiter.
type RateLimitConfig struct {
	RequestsPerMinute int `yaml:"requests_per_minute" validate:"gte=0"`
}

// CacheEnabled reports whether a recommendation cache is configured.
func (c *Config) CacheEnabled() bool { return c.Cache.Driver == "valkey" }

// CacheTTL returns the cache entry lifetime.
func (c *Config) CacheTTL() time.Duration { return time.Duration(c.Cache.TTLSec) * time.Second }

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	return LoadFile(findConfigPath(env))
}

// LoadFile reads, expands, defaults and validates a YAML config file.
func LoadFile(configPath string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}
	return Parse(data)
}

// Parse decodes YAML config bytes, substituting ${VAR} references first.
func Parse(data []byte) (Config, error) {
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.RequestTimeoutSec <= 0 {
		c.HTTP.RequestTimeoutSec = 5
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Dataset.CreditDelimiter == "" {
		c.Dataset.CreditDelimiter = ","
	}
	if c.Catalog.MinVotes <= 0 {
		c.Catalog.MinVotes = 2000
	}
	if c.Recommend.TopK <= 0 {
		c.Recommend.TopK = 5
	}
	if c.Recommend.NgramMin <= 0 {
		c.Recommend.NgramMin = 1
	}
	if c.Recommend.NgramMax <= 0 {
		c.Recommend.NgramMax = 2
	}
	if c.Recommend.StopWords == "" {
		c.Recommend.StopWords = "english"
	}
	if c.Cache.Driver == "" {
		c.Cache.Driver = "none"
	}
	if c.Cache.ReadinessTimeout <= 0 {
		c.Cache.ReadinessTimeout = 10
	}
	if c.Cache.BreakerFailures == 0 {
		c.Cache.BreakerFailures = 5
	}
	if c.Cache.BreakerOpenSec <= 0 {
		c.Cache.BreakerOpenSec = 30
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their YAML path (http.port) rather than Go names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return fmt.Errorf("validate config: %w", err)
		}
		msgs := make([]string, len(fieldErrs))
		for i, fe := range fieldErrs {
			msgs[i] = describe(fe)
		}
		return errors.New(strings.Join(msgs, "; "))
	}

	if c.Recommend.NgramMax < c.Recommend.NgramMin {
		return fmt.Errorf("recommend.ngram_max (%d) must be >= recommend.ngram_min (%d)",
			c.Recommend.NgramMax, c.Recommend.NgramMin)
	}
	if c.CacheEnabled() && len(c.Cache.Addrs) == 0 {
		return fmt.Errorf("cache.addrs is required when cache.driver is valkey")
	}
	return nil
}

// describe renders a field error as "<yaml.path> <rule>".
func describe(fe validator.FieldError) string {
	_, path, _ := strings.Cut(fe.Namespace(), ".") // drop the root type name
	switch fe.Tag() {
	case "required":
		return path + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s, got %q", path, fe.Param(), fmt.Sprint(fe.Value()))
	case "min", "gte":
		return fmt.Sprintf("%s must be >= %s, got %v", path, fe.Param(), fe.Value())
	case "max", "lte":
		return fmt.Sprintf("%s must be <= %s, got %v", path, fe.Param(), fe.Value())
	case "gt":
		return fmt.Sprintf("%s must be > %s, got %v", path, fe.Param(), fe.Value())
	case "hostname_port":
		return fmt.Sprintf("%s must be host:port, got %q", path, fmt.Sprint(fe.Value()))
	default:
		return fmt.Sprintf("%s failed %q validation", path, fe.Tag())
	}
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
