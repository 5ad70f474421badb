// Package config loads service configuration from an optional YAML file and
// LOANENGINE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"loanengine/internal/decision"
	pstrings "loanengine/pkg/platform/strings"
)

// EnvPrefix prefixes every environment override, e.g. LOANENGINE_SERVER_ADDR.
const EnvPrefix = "LOANENGINE"

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	Engine    EngineConfig    `mapstructure:"engine"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Kafka     KafkaConfig     `mapstructure:"kafka"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
}

// ServerConfig captures HTTP server level configuration.
type ServerConfig struct {
	Addr              string        `mapstructure:"addr"`
	MetricsPath       string        `mapstructure:"metrics_path"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // text or json
}

// EngineConfig mirrors decision.EngineConfig in file form. Country keys are
// case-insensitive.
type EngineConfig struct {
	MinLoanAmount    int                           `mapstructure:"min_loan_amount"`
	MaxLoanAmount    int                           `mapstructure:"max_loan_amount"`
	MinLoanPeriod    int                           `mapstructure:"min_loan_period"`
	MaxLoanPeriod    int                           `mapstructure:"max_loan_period"`
	LoanPeriodStep   int                           `mapstructure:"loan_period_step"`
	Segment1Modifier int                           `mapstructure:"segment1_modifier"`
	Segment2Modifier int                           `mapstructure:"segment2_modifier"`
	Segment3Modifier int                           `mapstructure:"segment3_modifier"`
	AgePolicy        map[string]decision.AgeBounds `mapstructure:"age_policy"`
	SearchFloor      string                        `mapstructure:"search_floor"`
}

// RedisConfig configures the shared Redis client. An empty URL disables Redis.
type RedisConfig struct {
	URL          string        `mapstructure:"url"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// KafkaConfig configures the audit publisher. No brokers means audit events
// go to the log.
type KafkaConfig struct {
	Brokers           []string `mapstructure:"brokers"`
	Topic             string   `mapstructure:"topic"`
	Partitions        int32    `mapstructure:"partitions"`
	ReplicationFactor int16    `mapstructure:"replication_factor"`
	BufferSize        int      `mapstructure:"buffer_size"`
}

type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// Load reads path (if non-empty), applies environment overrides and
// validates the result.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Kafka.Brokers = pstrings.DedupeAndTrim(cfg.Kafka.Brokers)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Default returns the configuration Load produces with no file and no
// environment overrides.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("default config is invalid: %v", err))
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	d := decision.DefaultConfig()

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.metrics_path", "/metrics")
	v.SetDefault("server.read_header_timeout", 5*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("engine.min_loan_amount", d.MinLoanAmount)
	v.SetDefault("engine.max_loan_amount", d.MaxLoanAmount)
	v.SetDefault("engine.min_loan_period", d.MinLoanPeriod)
	v.SetDefault("engine.max_loan_period", d.MaxLoanPeriod)
	v.SetDefault("engine.loan_period_step", d.LoanPeriodStep)
	v.SetDefault("engine.segment1_modifier", d.Segment1Modifier)
	v.SetDefault("engine.segment2_modifier", d.Segment2Modifier)
	v.SetDefault("engine.segment3_modifier", d.Segment3Modifier)
	policy := make(map[string]any, len(d.AgePolicy))
	for country, b := range d.AgePolicy {
		policy[string(country)] = map[string]any{"min_age": b.MinAge, "max_age": b.MaxAge}
	}
	v.SetDefault("engine.age_policy", policy)
	v.SetDefault("engine.search_floor", string(d.SearchFloor))

	v.SetDefault("redis.url", "")
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.min_idle_conns", 2)
	v.SetDefault("redis.dial_timeout", 5*time.Second)
	v.SetDefault("redis.read_timeout", 3*time.Second)
	v.SetDefault("redis.write_timeout", 3*time.Second)

	v.SetDefault("kafka.brokers", []string{})
	v.SetDefault("kafka.topic", "loanengine.decisions")
	v.SetDefault("kafka.partitions", 3)
	v.SetDefault("kafka.replication_factor", 1)
	v.SetDefault("kafka.buffer_size", 1024)

	v.SetDefault("ratelimit.enabled", true)
	v.SetDefault("ratelimit.requests", 60)
	v.SetDefault("ratelimit.window", time.Minute)
}

// Decision converts the file form into the engine's configuration.
func (e EngineConfig) Decision() decision.EngineConfig {
	policy := make(decision.AgePolicy, len(e.AgePolicy))
	for country, bounds := range e.AgePolicy {
		policy[decision.ParseCountry(country)] = bounds
	}
	return decision.EngineConfig{
		MinLoanAmount:    e.MinLoanAmount,
		MaxLoanAmount:    e.MaxLoanAmount,
		MinLoanPeriod:    e.MinLoanPeriod,
		MaxLoanPeriod:    e.MaxLoanPeriod,
		LoanPeriodStep:   e.LoanPeriodStep,
		Segment1Modifier: e.Segment1Modifier,
		Segment2Modifier: e.Segment2Modifier,
		Segment3Modifier: e.Segment3Modifier,
		AgePolicy:        policy,
		SearchFloor:      decision.SearchFloor(strings.ToLower(strings.TrimSpace(e.SearchFloor))),
	}
}

// Validate checks that the configuration values are within acceptable ranges.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Server.Addr) == "" {
		errs = append(errs, errors.New("server.addr must not be empty"))
	}
	if !strings.HasPrefix(c.Server.MetricsPath, "/") {
		errs = append(errs, fmt.Errorf("server.metrics_path must start with /, got %q", c.Server.MetricsPath))
	}
	if c.Server.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Errorf("server.shutdown_timeout must be positive, got %s", c.Server.ShutdownTimeout))
	}

	if _, err := ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format must be text or json, got %q", c.Log.Format))
	}

	if err := c.Engine.Decision().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("engine: %w", err))
	}

	if len(c.Kafka.Brokers) > 0 {
		if strings.TrimSpace(c.Kafka.Topic) == "" {
			errs = append(errs, errors.New("kafka.topic is required when brokers are set"))
		}
		if c.Kafka.Partitions <= 0 || c.Kafka.ReplicationFactor <= 0 {
			errs = append(errs, errors.New("kafka.partitions and kafka.replication_factor must be positive"))
		}
		if c.Kafka.BufferSize <= 0 {
			errs = append(errs, fmt.Errorf("kafka.buffer_size must be positive, got %d", c.Kafka.BufferSize))
		}
	}

	if c.RateLimit.Enabled && (c.RateLimit.Requests <= 0 || c.RateLimit.Window <= 0) {
		errs = append(errs, fmt.Errorf("ratelimit requests/window must be positive, got %d per %s", c.RateLimit.Requests, c.RateLimit.Window))
	}

	return errors.Join(errs...)
}
