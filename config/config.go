package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const (
	defaultPath               = "."
	defaultMaxRequestBodySize = "10MB"
	defaultGenAIModel         = "gemini-2.5-flash"
	defaultSnapshotTTL        = 10 * time.Minute
	defaultMetricsPath        = "/metrics"
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port               int    `json:"port" yaml:"port"`
		MaxRequestBodySize string `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
		Timeouts           struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	// Store selects the document store backing every repository
	Store *StoreConfig `json:"store" yaml:"store"`

	// Firebase configuration for the Realtime Database and ID token verification
	Firebase *FirebaseConfig `json:"firebase" yaml:"firebase"`

	// Redis caches session-scoped roots and keeps admin settings
	Redis *RedisConfig `json:"redis" yaml:"redis"`

	// PubSub configuration for change event fan-out
	PubSub *PubSubConfig `json:"pubsub" yaml:"pubsub"`

	// Worker receives pushed change events from other instances
	Worker *WorkerConfig `json:"worker" yaml:"worker"`

	Auth *AuthConfig `json:"auth" yaml:"auth"`

	// GenAI configuration for the chat agent
	GenAI *GenAIConfig `json:"genai" yaml:"genai"`

	Metrics *MetricsConfig `json:"metrics" yaml:"metrics"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// StoreConfig defines the document store
type StoreConfig struct {
	// Provider type: "firebase" or "memory"
	Provider string `json:"provider" yaml:"provider"`

	// PathPrefix is prepended to every path, e.g. "dev/" or "stage/"
	PathPrefix string `json:"pathPrefix" yaml:"pathPrefix"`
}

// FirebaseConfig defines Firebase configuration
type FirebaseConfig struct {
	ProjectID       string `json:"projectId" yaml:"projectId"`
	CredentialsPath string `json:"credentialsPath" yaml:"credentialsPath"`
	DatabaseURL     string `json:"databaseUrl" yaml:"databaseUrl"`
}

// RedisConfig defines the Redis connection. An empty Addr disables Redis.
type RedisConfig struct {
	Addr        string        `json:"addr" yaml:"addr"`
	Password    string        `json:"password" yaml:"password"`
	DB          int           `json:"db" yaml:"db"`
	SnapshotTTL time.Duration `json:"snapshotTTL" yaml:"snapshotTTL"`
}

// PubSubConfig defines Pub/Sub configuration for event publishing
type PubSubConfig struct {
	// Provider type: "local" for local HTTP or "google" for Google Pub/Sub
	Provider string `json:"provider" yaml:"provider"`

	// Google Cloud project ID (for google provider)
	ProjectID string `json:"projectId" yaml:"projectId"`

	// Pub/Sub topic ID (for google provider)
	TopicID string `json:"topicId" yaml:"topicId"`

	// Local HTTP endpoint for development (for local provider)
	LocalEndpoint string `json:"localEndpoint" yaml:"localEndpoint"`

	// Audience expected in push OIDC tokens (for google provider)
	PushAudience string `json:"pushAudience" yaml:"pushAudience"`
}

// WorkerConfig defines the push worker server
type WorkerConfig struct {
	Enabled bool `json:"enabled" yaml:"enabled"`
	Port    int  `json:"port" yaml:"port"`
}

// AuthConfig defines how bearer tokens are verified
type AuthConfig struct {
	// Provider type: "firebase" or "jwt"
	Provider string `json:"provider" yaml:"provider"`

	// JWTSecret signs HS256 tokens (for jwt provider)
	JWTSecret string `json:"jwtSecret" yaml:"jwtSecret"`
}

// GenAIConfig defines the chat model
type GenAIConfig struct {
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Backend: "gemini" (API key) or "vertex" (project and location)
	Backend  string `json:"backend" yaml:"backend"`
	Project  string `json:"project" yaml:"project"`
	Location string `json:"location" yaml:"location"`
	APIKey   string `json:"apiKey" yaml:"apiKey"`
	Model    string `json:"model" yaml:"model"`
}

// MetricsConfig defines the Prometheus endpoint
type MetricsConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Path    string `json:"path" yaml:"path"`
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			abs := filepath.Join(pwd, path)
			searchPaths = append(searchPaths, abs)
		}
	}

	// Try to find and load the config file
	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	// Load YAML config file
	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Load environment variables
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// Convert ENV_VAR_NAME to path and align each segment with existing YAML keys.
			// Example: POSTGRES_SSLMODE -> postgres.sslMode (not postgres.sslmode)
			key := canonicalizeEnvKey(k, existingConfigMap)

			return key, v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	// Unmarshal into the config struct (case-insensitive to match env vars)
	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				// Case-insensitive matching for env var overrides
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	applyDefaults(cfg)

	return cfg, nil
}

// applyDefaults fills optional sections so that callers never see nil.
func applyDefaults(cfg *Config) {
	if strings.TrimSpace(cfg.HTTP.MaxRequestBodySize) == "" {
		cfg.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}
	if cfg.Store == nil {
		cfg.Store = &StoreConfig{Provider: "memory"}
	}
	if cfg.Firebase == nil {
		cfg.Firebase = &FirebaseConfig{}
	}
	if cfg.Redis == nil {
		cfg.Redis = &RedisConfig{}
	}
	if cfg.Redis.SnapshotTTL <= 0 {
		cfg.Redis.SnapshotTTL = defaultSnapshotTTL
	}
	if cfg.PubSub == nil {
		cfg.PubSub = &PubSubConfig{}
	}
	if cfg.Worker == nil {
		cfg.Worker = &WorkerConfig{}
	}
	if cfg.Auth == nil {
		cfg.Auth = &AuthConfig{Provider: "firebase"}
	}
	if cfg.GenAI == nil {
		cfg.GenAI = &GenAIConfig{}
	}
	if cfg.GenAI.Model == "" {
		cfg.GenAI.Model = defaultGenAIModel
	}
	if cfg.Metrics == nil {
		cfg.Metrics = &MetricsConfig{}
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = defaultMetricsPath
	}
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}
