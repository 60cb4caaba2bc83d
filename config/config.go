// Package config holds the configuration of the compliance hub.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/mcuadros/go-defaults"
)

const (
	// EnvPrefix is the prefix of environment overrides, e.g. HUB_SERVER_LISTEN
	EnvPrefix = "HUB_"
	// delimiter separates nested keys
	delimiter = "."
)

// Config holds service configuration
type Config struct {
	// Server holds the HTTP server settings
	Server Server `json:"server" koanf:"server"`
	// Database holds the Postgres settings; an empty URL uses the in-memory store
	Database Database `json:"database" koanf:"database"`
	// Redis holds the cache settings; an empty address disables the cache
	Redis Redis `json:"redis" koanf:"redis"`
	// CountryData holds the national implementation data settings
	CountryData CountryData `json:"countryData" koanf:"countryData"`
	// Mail holds the transactional email settings
	Mail Mail `json:"mail" koanf:"mail"`
	// Slack holds the team notification settings
	Slack Slack `json:"slack" koanf:"slack"`
	// Leads holds the lead capture settings
	Leads Leads `json:"leads" koanf:"leads"`
	// Report holds the report delivery settings
	Report Report `json:"report" koanf:"report"`
}

// Server holds the HTTP server settings
type Server struct {
	// Debug enables debug logging
	Debug bool `json:"debug" koanf:"debug" default:"false"`
	// Pretty enables human readable logging
	Pretty bool `json:"pretty" koanf:"pretty" default:"false"`
	// Listen is the address the server binds to
	Listen string `json:"listen" koanf:"listen" default:":8080"`
	// ReadTimeout is the maximum duration for reading a request
	ReadTimeout time.Duration `json:"readTimeout" koanf:"readTimeout" default:"15s"`
	// WriteTimeout is the maximum duration before timing out writes of the response
	WriteTimeout time.Duration `json:"writeTimeout" koanf:"writeTimeout" default:"30s"`
	// RequestTimeout bounds the handling of a single API request
	RequestTimeout time.Duration `json:"requestTimeout" koanf:"requestTimeout" default:"25s"`
	// ShutdownGracePeriod is how long in-flight requests may finish on shutdown
	ShutdownGracePeriod time.Duration `json:"shutdownGracePeriod" koanf:"shutdownGracePeriod" default:"10s"`
	// MaxBodySize caps request bodies in bytes
	MaxBodySize int64 `json:"maxBodySize" koanf:"maxBodySize" default:"65536"`
	// AllowedOrigins are the CORS origins; empty allows all
	AllowedOrigins []string `json:"allowedOrigins" koanf:"allowedOrigins"`
}

// Database holds the Postgres settings
type Database struct {
	// URL is the Postgres connection string
	URL string `json:"url" koanf:"url" sensitive:"true"`
	// MaxConns is the maximum size of the connection pool
	MaxConns int32 `json:"maxConns" koanf:"maxConns" default:"10"`
	// HealthCheckPeriod is how often idle connections are checked
	HealthCheckPeriod time.Duration `json:"healthCheckPeriod" koanf:"healthCheckPeriod" default:"1m"`
	// AutoMigrate applies pending migrations on startup
	AutoMigrate bool `json:"autoMigrate" koanf:"autoMigrate" default:"true"`
}

// Redis holds the cache settings
type Redis struct {
	// Addr is the host:port of the Redis server
	Addr string `json:"addr" koanf:"addr"`
	// Password authenticates against Redis
	Password string `json:"password" koanf:"password" sensitive:"true"`
	// DB is the Redis database index
	DB int `json:"db" koanf:"db" default:"0"`
	// CacheTTL is how long country data stays cached
	CacheTTL time.Duration `json:"cacheTTL" koanf:"cacheTTL" default:"6h"`
}

// CountryData holds the national implementation data settings
type CountryData struct {
	// BaseURL is the content API serving country data; empty uses the embedded table only
	BaseURL string `json:"baseURL" koanf:"baseURL"`
	// APIToken authenticates against the content API
	APIToken string `json:"apiToken" koanf:"apiToken" sensitive:"true"`
	// RequestTimeout is the HTTP timeout of content API requests
	RequestTimeout time.Duration `json:"requestTimeout" koanf:"requestTimeout" default:"5s"`
	// LookupTimeout bounds the country lookup of a single report
	LookupTimeout time.Duration `json:"lookupTimeout" koanf:"lookupTimeout" default:"2s"`
}

// Mail holds the transactional email settings
type Mail struct {
	// APIKey authenticates against the email API; empty disables email
	APIKey string `json:"apiKey" koanf:"apiKey" sensitive:"true"`
	// BaseURL is the email API endpoint
	BaseURL string `json:"baseURL" koanf:"baseURL" default:"https://api.resend.com"`
	// From is the sender address
	From string `json:"from" koanf:"from" default:"EU Compliance Hub <report@eu-compliance-hub.eu>"`
	// ReplyTo is the reply-to address
	ReplyTo string `json:"replyTo" koanf:"replyTo"`
	// RequestTimeout is the HTTP timeout of email API requests
	RequestTimeout time.Duration `json:"requestTimeout" koanf:"requestTimeout" default:"10s"`
}

// Slack holds the team notification settings
type Slack struct {
	// WebhookURL is the incoming webhook; empty disables notifications
	WebhookURL string `json:"webhookURL" koanf:"webhookURL" sensitive:"true"`
	// Locale is the language notifications are written in
	Locale string `json:"locale" koanf:"locale" default:"de"`
	// RequestTimeout is the HTTP timeout of webhook requests
	RequestTimeout time.Duration `json:"requestTimeout" koanf:"requestTimeout" default:"10s"`
}

// Leads holds the lead capture settings
type Leads struct {
	// VerifyMX rejects lead emails whose domain cannot receive mail
	VerifyMX bool `json:"verifyMX" koanf:"verifyMX" default:"false"`
	// DNSServer is the resolver used for MX lookups
	DNSServer string `json:"dnsServer" koanf:"dnsServer" default:"1.1.1.1:53"`
	// DNSTimeout is the per-query DNS timeout
	DNSTimeout time.Duration `json:"dnsTimeout" koanf:"dnsTimeout" default:"3s"`
	// LookupRegistration adds the RDAP registrar and registration date of company domains
	LookupRegistration bool `json:"lookupRegistration" koanf:"lookupRegistration" default:"false"`
	// RDAPTimeout is the timeout of registration lookups
	RDAPTimeout time.Duration `json:"rdapTimeout" koanf:"rdapTimeout" default:"5s"`
}

// Report holds the report delivery settings
type Report struct {
	// LinkBaseURL is the public URL stored reports are linked from
	LinkBaseURL string `json:"linkBaseURL" koanf:"linkBaseURL"`
	// DeliveryTimeout bounds each delivery channel
	DeliveryTimeout time.Duration `json:"deliveryTimeout" koanf:"deliveryTimeout" default:"10s"`
}

// New returns a config populated with defaults
func New() *Config {
	cfg := &Config{}
	defaults.SetDefaults(cfg)

	return cfg
}

// Load builds the config from defaults, the optional YAML file at cfgFile and
// HUB_ prefixed environment variables, in increasing precedence. A missing
// file is not an error.
func Load(cfgFile *string) (*Config, error) {
	k := koanf.New(delimiter)

	if cfgFile != nil && *cfgFile != "" {
		if _, err := os.Stat(*cfgFile); err == nil {
			if err := k.Load(file.Provider(*cfgFile), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("loading config file %s: %w", *cfgFile, err)
			}
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading config file %s: %w", *cfgFile, err)
		}
	}

	if err := k.Load(env.ProviderWithValue(EnvPrefix, delimiter, envValue), nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	cfg := New()

	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigUnmarshal, err)
	}

	return cfg, nil
}

// envKeys maps lowercased config paths to their koanf keys, e.g. server.readtimeout to server.readTimeout
var envKeys = koanfKeys(reflect.TypeOf(Config{}), "")

// koanfKeys collects the koanf key of every field of t, keyed by its lowercase form
func koanfKeys(t reflect.Type, prefix string) map[string]string {
	keys := map[string]string{}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		name := field.Tag.Get("koanf")
		if name == "" || name == "-" {
			continue
		}

		key := prefix + name
		keys[strings.ToLower(key)] = key

		if field.Type.Kind() == reflect.Struct && field.Type != reflect.TypeOf(time.Duration(0)) {
			for lower, canonical := range koanfKeys(field.Type, key+delimiter) {
				keys[lower] = canonical
			}
		}
	}

	return keys
}

// envValue maps HUB_SERVER_READTIMEOUT to server.readTimeout and splits list values on commas
func envValue(key, value string) (string, any) {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	key = strings.ReplaceAll(key, "_", delimiter)

	if canonical, ok := envKeys[key]; ok {
		key = canonical
	}

	if strings.Contains(value, ",") {
		parts := strings.Split(value, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}

		return key, parts
	}

	return key, value
}
