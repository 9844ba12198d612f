package config

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"
)

// Shortening backends.
const (
	BackendMock = "mock"
	BackendHTTP = "http"
	BackendGRPC = "grpc"
)

var (
	ErrUnknownBackend          = errors.New("unknown shortener backend")
	ErrMissingShortenerAddress = errors.New("shortener address is required for this backend")
)

type Config struct {
	ServerAddress     string
	ShortenerBackend  string
	ShortenerAddress  string
	MockBaseURL       string
	MockDelay         time.Duration
	GRPCServerAddress string
	SessionSecret     string
	SessionIdleTTL    time.Duration
	LogLevel          string
}

// fileConfig is the JSON layout of the -c config file.
type fileConfig struct {
	ServerAddress     string `json:"server_address"`
	ShortenerBackend  string `json:"shortener_backend"`
	ShortenerAddress  string `json:"shortener_address"`
	MockBaseURL       string `json:"mock_base_url"`
	MockDelay         string `json:"mock_delay"`
	GRPCServerAddress string `json:"grpc_server_address"`
	SessionSecret     string `json:"session_secret"`
	SessionIdleTTL    string `json:"session_idle_ttl"`
	LogLevel          string `json:"log_level"`
}

func defaultConfig() *Config {
	return &Config{
		ServerAddress:    ":8080",
		ShortenerBackend: BackendMock,
		MockBaseURL:      "https://short.est",
		MockDelay:        time.Second,
		SessionIdleTTL:   24 * time.Hour,
		LogLevel:         "info",
	}
}

// NewConfig builds the configuration. Later sources win:
// defaults, JSON file (-c or CONFIG), command line flags, environment.
func NewConfig() (*Config, error) {
	cfg := defaultConfig()

	configPath := getConfigFileName(os.Args[1:])
	if envConfig := os.Getenv("CONFIG"); envConfig != "" {
		configPath = envConfig
	}
	if configPath != "" {
		if err := cfg.loadFile(configPath); err != nil {
			return nil, err
		}
	}

	flag.String("c", configPath, "Path to JSON config file")
	flag.StringVar(&cfg.ServerAddress, "a", cfg.ServerAddress, "HTTP server address (e.g. localhost:8888)")
	flag.StringVar(&cfg.ShortenerBackend, "s", cfg.ShortenerBackend, "Shortening backend: mock, http or grpc")
	flag.StringVar(&cfg.ShortenerAddress, "u", cfg.ShortenerAddress, "Shortening backend address (base URL for http, host:port for grpc)")
	flag.StringVar(&cfg.MockBaseURL, "m", cfg.MockBaseURL, "Base URL of short links produced by the mock backend")
	flag.DurationVar(&cfg.MockDelay, "delay", cfg.MockDelay, "Artificial latency of the mock backend")
	flag.StringVar(&cfg.GRPCServerAddress, "g", cfg.GRPCServerAddress, "Serve the shortening backend over gRPC on this address (disabled when empty)")
	flag.StringVar(&cfg.SessionSecret, "k", cfg.SessionSecret, "Secret used to sign session cookies (random when empty)")
	flag.DurationVar(&cfg.SessionIdleTTL, "ttl", cfg.SessionIdleTTL, "Drop sessions idle for longer than this")
	flag.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "Log level (debug, info, warn, error)")

	flag.Parse()

	if err := cfg.loadEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the selected backend can be built.
func (c *Config) Validate() error {
	switch c.ShortenerBackend {
	case BackendMock:
		return nil
	case BackendHTTP, BackendGRPC:
		if c.ShortenerAddress == "" {
			return fmt.Errorf("%w: %s", ErrMissingShortenerAddress, c.ShortenerBackend)
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBackend, c.ShortenerBackend)
	}
}

func getConfigFileName(args []string) string {
	for i := 0; i < len(args); i++ {
		if args[i] == "-c" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}

	var fc fileConfig
	if err := json.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("error parsing config file: %w", err)
	}

	setString(&c.ServerAddress, fc.ServerAddress)
	setString(&c.ShortenerBackend, fc.ShortenerBackend)
	setString(&c.ShortenerAddress, fc.ShortenerAddress)
	setString(&c.MockBaseURL, fc.MockBaseURL)
	setString(&c.GRPCServerAddress, fc.GRPCServerAddress)
	setString(&c.SessionSecret, fc.SessionSecret)
	setString(&c.LogLevel, fc.LogLevel)

	if err := setDuration(&c.MockDelay, fc.MockDelay); err != nil {
		return fmt.Errorf("invalid mock_delay: %w", err)
	}
	if err := setDuration(&c.SessionIdleTTL, fc.SessionIdleTTL); err != nil {
		return fmt.Errorf("invalid session_idle_ttl: %w", err)
	}

	return nil
}

func (c *Config) loadEnv() error {
	setString(&c.ServerAddress, os.Getenv("SERVER_ADDRESS"))
	setString(&c.ShortenerBackend, os.Getenv("SHORTENER_BACKEND"))
	setString(&c.ShortenerAddress, os.Getenv("SHORTENER_ADDRESS"))
	setString(&c.MockBaseURL, os.Getenv("MOCK_BASE_URL"))
	setString(&c.GRPCServerAddress, os.Getenv("GRPC_SERVER_ADDRESS"))
	setString(&c.SessionSecret, os.Getenv("SESSION_SECRET"))
	setString(&c.LogLevel, os.Getenv("LOG_LEVEL"))

	if err := setDuration(&c.MockDelay, os.Getenv("MOCK_DELAY")); err != nil {
		return fmt.Errorf("invalid MOCK_DELAY: %w", err)
	}
	if err := setDuration(&c.SessionIdleTTL, os.Getenv("SESSION_IDLE_TTL")); err != nil {
		return fmt.Errorf("invalid SESSION_IDLE_TTL: %w", err)
	}

	return nil
}

func setString(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

func setDuration(dst *time.Duration, value string) error {
	if value == "" {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return err
	}
	*dst = d
	return nil
}
