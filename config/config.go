package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/slighter12/go-lib/database/postgres"
)

const (
	defaultPath               = "."
	defaultMaxRequestBodySize = "100KB"
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		AutoMigrate bool   `json:"autoMigrate" yaml:"autoMigrate"`
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

	Postgres *postgres.DBConn `json:"postgres" yaml:"postgres" mapstructure:"postgres"`

	// Redis backs the distributed rate limiter. Nil selects the in-process limiter.
	Redis *RedisConfig `json:"redis" yaml:"redis"`

	SecretKey struct {
		Access     string `json:"access" yaml:"access"`
		Refresh    string `json:"refresh" yaml:"refresh"`
		Onboarding string `json:"onboarding" yaml:"onboarding"`
	} `json:"secretKey" yaml:"secretKey"`

	Token *TokenConfig `json:"token" yaml:"token"`

	OTP *OTPConfig `json:"otp" yaml:"otp"`

	RateLimit *RateLimitConfig `json:"rateLimit" yaml:"rateLimit"`

	Reaper *ReaperConfig `json:"reaper" yaml:"reaper"`

	// PubSub configuration for OTP dispatch events
	PubSub *PubSubConfig `json:"pubsub" yaml:"pubsub"`

	// SMS gateway used by the dispatcher
	SMS *SMSConfig `json:"sms" yaml:"sms"`

	// SMTP relay used by the dispatcher
	SMTP *SMTPConfig `json:"smtp" yaml:"smtp"`

	Dispatcher *DispatcherConfig `json:"dispatcher" yaml:"dispatcher"`

	Admin *AdminConfig `json:"admin" yaml:"admin"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// RedisConfig defines the Redis connection.
type RedisConfig struct {
	Addr        string        `json:"addr" yaml:"addr"`
	Password    string        `json:"password" yaml:"password"`
	DB          int           `json:"db" yaml:"db"`
	DialTimeout time.Duration `json:"dialTimeout" yaml:"dialTimeout"`
	KeyPrefix   string        `json:"keyPrefix" yaml:"keyPrefix"`
}

// TokenConfig defines JWT issuance.
type TokenConfig struct {
	Issuer        string        `json:"issuer" yaml:"issuer"`
	AccessTTL     time.Duration `json:"accessTTL" yaml:"accessTTL"`
	RefreshTTL    time.Duration `json:"refreshTTL" yaml:"refreshTTL"`
	OnboardingTTL time.Duration `json:"onboardingTTL" yaml:"onboardingTTL"`
}

// OTPConfig defines one-time code issuance and verification.
type OTPConfig struct {
	CodeLength  int           `json:"codeLength" yaml:"codeLength"`
	TTL         time.Duration `json:"ttl" yaml:"ttl"`
	MaxAttempts int           `json:"maxAttempts" yaml:"maxAttempts"`
	MaxResends  int           `json:"maxResends" yaml:"maxResends"`
	BcryptCost  int           `json:"bcryptCost" yaml:"bcryptCost"`

	// DefaultRegion is the ISO 3166 region used for numbers without a country code.
	DefaultRegion string `json:"defaultRegion" yaml:"defaultRegion"`

	// ChannelPolicy applies when both a phone and an email are known: natural, sms, email or both.
	ChannelPolicy string `json:"channelPolicy" yaml:"channelPolicy"`

	// NotifyTimeout bounds the notifier call made while starting a session.
	NotifyTimeout time.Duration `json:"notifyTimeout" yaml:"notifyTimeout"`
}

// RateLimitConfig defines the OTP start limits.
type RateLimitConfig struct {
	Window        time.Duration `json:"window" yaml:"window"`
	PerIdentifier int           `json:"perIdentifier" yaml:"perIdentifier"`
	PerSource     int           `json:"perSource" yaml:"perSource"`
}

// ReaperConfig defines the periodic storage cleanup.
type ReaperConfig struct {
	Enabled   bool          `json:"enabled" yaml:"enabled"`
	Interval  time.Duration `json:"interval" yaml:"interval"`
	Retention time.Duration `json:"retention" yaml:"retention"`
}

// PubSubConfig defines Pub/Sub configuration for event publishing
type PubSubConfig struct {
	// Provider type: "noop", "local" for local HTTP or "google" for Google Pub/Sub
	Provider string `json:"provider" yaml:"provider"`

	// Google Cloud project ID (for google provider)
	ProjectID string `json:"projectId" yaml:"projectId"`

	// Pub/Sub topic ID (for google provider)
	TopicID string `json:"topicId" yaml:"topicId"`

	// Local HTTP endpoint for development (for local provider)
	LocalEndpoint string `json:"localEndpoint" yaml:"localEndpoint"`
}

// SMSConfig defines the HTTP SMS gateway.
type SMSConfig struct {
	BaseURL string        `json:"baseUrl" yaml:"baseUrl"`
	APIKey  string        `json:"apiKey" yaml:"apiKey"`
	Sender  string        `json:"sender" yaml:"sender"`
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// DispatcherConfig defines the push endpoint server of the dispatcher worker.
type DispatcherConfig struct {
	Port int `json:"port" yaml:"port"`
}

// AdminConfig lists the identifiers granted the admin role at startup.
// Admin cannot be chosen through role selection.
type AdminConfig struct {
	Identifiers []string `json:"identifiers" yaml:"identifiers"`
}

// SMTPConfig defines the mail relay.
type SMTPConfig struct {
	Host     string        `json:"host" yaml:"host"`
	Port     int           `json:"port" yaml:"port"`
	Username string        `json:"username" yaml:"username"`
	Password string        `json:"password" yaml:"password"`
	From     string        `json:"from" yaml:"from"`
	Timeout  time.Duration `json:"timeout" yaml:"timeout"`

	// TLSPolicy is mandatory, opportunistic or none. Empty means mandatory.
	TLSPolicy string `json:"tlsPolicy" yaml:"tlsPolicy"`
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

	if strings.TrimSpace(cfg.HTTP.MaxRequestBodySize) == "" {
		cfg.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}

	// Build replicas from environment variables (POSTGRES_REPLICAS_0_HOST, POSTGRES_REPLICAS_0_PORT, etc.)
	if cfg.Postgres != nil {
		cfg.Postgres.Replicas = buildReplicasFromEnv()
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
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

// buildReplicasFromEnv builds the replicas slice from environment variables.
// Environment variable format: POSTGRES_REPLICAS_{index}_{field}
// Example: POSTGRES_REPLICAS_0_HOST, POSTGRES_REPLICAS_0_PORT, POSTGRES_REPLICAS_0_USERNAME, POSTGRES_REPLICAS_0_PASSWORD
func buildReplicasFromEnv() []postgres.ConnectionConfig {
	var replicas []postgres.ConnectionConfig

	for i := 0; ; i++ {
		prefix := "POSTGRES_REPLICAS_" + strconv.Itoa(i) + "_"

		host := os.Getenv(prefix + "HOST")
		port := os.Getenv(prefix + "PORT")
		if host == "" || port == "" {
			// No more replicas or incomplete configuration.
			break
		}

		replica := postgres.ConnectionConfig{
			Host:     host,
			Port:     port,
			UserName: os.Getenv(prefix + "USERNAME"),
			Password: os.Getenv(prefix + "PASSWORD"),
		}

		replicas = append(replicas, replica)
	}

	return replicas
}
