// Package config loads skypulse configuration from a YAML file with
// environment variable overrides.
package config

import (
	"time"
)

// Default configuration values.
const (
	defaultServiceName      = "skypulse"
	defaultServiceVersion   = "1.0.0"
	defaultHTTPPort         = 8090
	defaultJetstreamURL     = "wss://jetstream2.us-east.bsky.network/subscribe?wantedCollections=app.bsky.feed.post"
	defaultCollection       = "app.bsky.feed.post"
	defaultLanguage         = "en"
	defaultSourceTag        = "bluesky"
	defaultRedisAddr        = "localhost:6379"
	defaultStream           = "skypulse:posts"
	defaultGroup            = "skypulse-processors"
	defaultBlockTimeout     = 5 * time.Second
	defaultClaimMinIdle     = time.Minute
	defaultDBHost           = "localhost"
	defaultDBPort           = 5432
	defaultDBUser           = "postgres"
	defaultDBName           = "skypulse"
	defaultDBSSLMode        = "disable"
	defaultDBMaxConns       = 25
	defaultDBMaxIdleConns   = 5
	defaultPositiveCutoff   = 0.4
	defaultNegativeCutoff   = -0.4
	defaultDedupWindowHours = 24
)

// Config holds all configuration for the skypulse services.
type Config struct {
	Service   ServiceConfig   `yaml:"service"`
	Jetstream JetstreamConfig `yaml:"jetstream"`
	Queue     QueueConfig     `yaml:"queue"`
	Database  DatabaseConfig  `yaml:"database"`
	Pipeline  PipelineConfig  `yaml:"pipeline"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ServiceConfig holds service-level configuration.
type ServiceConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
	Port    int    `env:"SKYPULSE_PORT" yaml:"port"`
	Debug   bool   `env:"APP_DEBUG"     yaml:"debug"`
}

// JetstreamConfig holds the Bluesky Jetstream subscription configuration.
type JetstreamConfig struct {
	URL        string   `env:"JETSTREAM_URL"        yaml:"url"`
	Collection string   `env:"JETSTREAM_COLLECTION" yaml:"collection"`
	Language   string   `env:"TARGET_LANGUAGE"      yaml:"language"`
	Keywords   []string `env:"TARGET_KEYWORDS"      yaml:"keywords"`
	SourceTag  string   `env:"SOURCE_TAG"           yaml:"source_tag"`
	// Cursor is an optional unix-microseconds replay position appended to
	// the subscription URL. It is not persisted; an empty cursor means
	// "now".
	Cursor string `env:"JETSTREAM_CURSOR" yaml:"cursor"`
}

// QueueConfig holds the Redis Streams queue configuration.
type QueueConfig struct {
	Address      string        `env:"REDIS_ADDRESS"  yaml:"address"`
	Password     string        `env:"REDIS_PASSWORD" yaml:"password"`
	DB           int           `env:"REDIS_DB"       yaml:"db"`
	Stream       string        `env:"QUEUE_STREAM"   yaml:"stream"`
	Group        string        `env:"QUEUE_GROUP"    yaml:"group"`
	BlockTimeout time.Duration `yaml:"block_timeout"`
	ClaimMinIdle time.Duration `yaml:"claim_min_idle"`
}

// DatabaseConfig holds PostgreSQL configuration.
type DatabaseConfig struct {
	Host            string        `env:"POSTGRES_HOST"     yaml:"host"`
	Port            int           `env:"POSTGRES_PORT"     yaml:"port"`
	User            string        `env:"POSTGRES_USER"     yaml:"user"`
	Password        string        `env:"POSTGRES_PASSWORD" yaml:"password"`
	Database        string        `env:"POSTGRES_DB"       yaml:"database"`
	SSLMode         string        `env:"POSTGRES_SSLMODE"  yaml:"sslmode"`
	MaxConnections  int           `yaml:"max_connections"`
	MaxIdleConns    int           `yaml:"max_idle_connections"`
	ConnMaxLifetime time.Duration `yaml:"connection_max_lifetime"`
}

// PipelineConfig holds content processing configuration.
type PipelineConfig struct {
	WordlistPath   string        `env:"MODERATION_WORDLIST" yaml:"wordlist_path"`
	PositiveCutoff float64       `yaml:"positive_cutoff"`
	NegativeCutoff float64       `yaml:"negative_cutoff"`
	DedupWindow    time.Duration `env:"DEDUP_WINDOW" yaml:"dedup_window"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL"  yaml:"level"`
	Format string `env:"LOG_FORMAT" yaml:"format"`
}

// Load loads configuration from the specified path, applying defaults and
// environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := load(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	setServiceDefaults(&cfg.Service)
	setJetstreamDefaults(&cfg.Jetstream)
	setQueueDefaults(&cfg.Queue)
	setDatabaseDefaults(&cfg.Database)
	setPipelineDefaults(&cfg.Pipeline)
	setLoggingDefaults(&cfg.Logging)
}

func setServiceDefaults(s *ServiceConfig) {
	if s.Name == "" {
		s.Name = defaultServiceName
	}
	if s.Version == "" {
		s.Version = defaultServiceVersion
	}
	if s.Port == 0 {
		s.Port = defaultHTTPPort
	}
}

func setJetstreamDefaults(j *JetstreamConfig) {
	if j.URL == "" {
		j.URL = defaultJetstreamURL
	}
	if j.Collection == "" {
		j.Collection = defaultCollection
	}
	if j.Language == "" {
		j.Language = defaultLanguage
	}
	if j.SourceTag == "" {
		j.SourceTag = defaultSourceTag
	}
}

func setQueueDefaults(q *QueueConfig) {
	if q.Address == "" {
		q.Address = defaultRedisAddr
	}
	if q.Stream == "" {
		q.Stream = defaultStream
	}
	if q.Group == "" {
		q.Group = defaultGroup
	}
	if q.BlockTimeout == 0 {
		q.BlockTimeout = defaultBlockTimeout
	}
	if q.ClaimMinIdle == 0 {
		q.ClaimMinIdle = defaultClaimMinIdle
	}
}

func setDatabaseDefaults(d *DatabaseConfig) {
	if d.Host == "" {
		d.Host = defaultDBHost
	}
	if d.Port == 0 {
		d.Port = defaultDBPort
	}
	if d.User == "" {
		d.User = defaultDBUser
	}
	if d.Database == "" {
		d.Database = defaultDBName
	}
	if d.SSLMode == "" {
		d.SSLMode = defaultDBSSLMode
	}
	if d.MaxConnections == 0 {
		d.MaxConnections = defaultDBMaxConns
	}
	if d.MaxIdleConns == 0 {
		d.MaxIdleConns = defaultDBMaxIdleConns
	}
	if d.ConnMaxLifetime == 0 {
		d.ConnMaxLifetime = time.Hour
	}
}

func setPipelineDefaults(p *PipelineConfig) {
	if p.PositiveCutoff == 0 {
		p.PositiveCutoff = defaultPositiveCutoff
	}
	if p.NegativeCutoff == 0 {
		p.NegativeCutoff = defaultNegativeCutoff
	}
	if p.DedupWindow == 0 {
		p.DedupWindow = defaultDedupWindowHours * time.Hour
	}
}

func setLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "json"
	}
}
