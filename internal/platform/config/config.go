package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const envPrefix = "APP_"

// Config はアプリケーション全体の設定を表現します。
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	GRPC     GRPCConfig     `yaml:"grpc"`
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	Broker   BrokerConfig   `yaml:"broker"`
}

// ServerConfig は HTTP サーバーに関する設定です。
type ServerConfig struct {
	ListenAddr           string        `yaml:"listen_addr"`
	ReadHeaderTimeout    time.Duration `yaml:"-"`
	ShutdownTimeout      time.Duration `yaml:"-"`
	ReadHeaderTimeoutRaw string        `yaml:"read_header_timeout"`
	ShutdownTimeoutRaw   string        `yaml:"shutdown_timeout"`
	BodyLimit            string        `yaml:"body_limit"`
}

// GRPCConfig はヘルスチェック用 gRPC サーバーの設定です。ListenAddr が空の場合は起動しません。
type GRPCConfig struct {
	ListenAddr string `yaml:"listen_addr"`
}

// DatabaseConfig は PostgreSQL 接続に関する設定です。
type DatabaseConfig struct {
	Host               string        `yaml:"host"`
	Port               int           `yaml:"port"`
	User               string        `yaml:"user"`
	Password           string        `yaml:"password"`
	Name               string        `yaml:"name"`
	SSLMode            string        `yaml:"ssl_mode"`
	MaxOpenConns       int           `yaml:"max_open_conns"`
	MaxIdleConns       int           `yaml:"max_idle_conns"`
	ConnMaxLifetime    time.Duration `yaml:"-"`
	ConnMaxIdleTime    time.Duration `yaml:"-"`
	ConnMaxLifetimeRaw string        `yaml:"conn_max_lifetime"`
	ConnMaxIdleTimeRaw string        `yaml:"conn_max_idle_time"`
}

// LogConfig はロガーの設定です。
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	level  slog.Level
}

// BrokerConfig はドメインイベント配信先 (RabbitMQ) の設定です。URL が空の場合は配信しません。
type BrokerConfig struct {
	URL   string `yaml:"url"`
	Queue string `yaml:"queue"`
}

// Load は指定されたパスから設定ファイルを読み込み、APP_ 接頭辞の環境変数で上書きします。
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	if err := cfg.validateAndNormalize(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

type lookupFunc func(key string) (string, bool)

func (c *Config) applyEnv(lookup lookupFunc) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(envPrefix + key); ok {
			*dst = v
		}
	}

	str("SERVER_LISTEN_ADDR", &c.Server.ListenAddr)
	str("GRPC_LISTEN_ADDR", &c.GRPC.ListenAddr)
	str("DATABASE_HOST", &c.Database.Host)
	str("DATABASE_USER", &c.Database.User)
	str("DATABASE_PASSWORD", &c.Database.Password)
	str("DATABASE_NAME", &c.Database.Name)
	str("DATABASE_SSL_MODE", &c.Database.SSLMode)
	str("LOG_LEVEL", &c.Log.Level)
	str("LOG_FORMAT", &c.Log.Format)
	str("BROKER_URL", &c.Broker.URL)
	str("BROKER_QUEUE", &c.Broker.Queue)

	if v, ok := lookup(envPrefix + "DATABASE_PORT"); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: %sDATABASE_PORT: %w", envPrefix, err)
		}
		c.Database.Port = port
	}

	return nil
}

func (c *Config) validateAndNormalize() error {
	if err := c.Server.validateAndNormalize(); err != nil {
		return err
	}

	if err := c.Database.validateAndNormalize(); err != nil {
		return err
	}

	if err := c.Log.validateAndNormalize(); err != nil {
		return err
	}

	if c.Broker.URL != "" && c.Broker.Queue == "" {
		c.Broker.Queue = "empresas.eventos"
	}

	return nil
}

func (s *ServerConfig) validateAndNormalize() error {
	if s.ListenAddr == "" {
		return fmt.Errorf("config: server.listen_addr must be set")
	}

	readHeader, err := parseDurationAllowEmpty(s.ReadHeaderTimeoutRaw)
	if err != nil {
		return fmt.Errorf("config: server.read_header_timeout: %w", err)
	}
	if readHeader == 0 {
		readHeader = 5 * time.Second
	}
	s.ReadHeaderTimeout = readHeader

	shutdown, err := parseDurationAllowEmpty(s.ShutdownTimeoutRaw)
	if err != nil {
		return fmt.Errorf("config: server.shutdown_timeout: %w", err)
	}
	if shutdown == 0 {
		shutdown = 10 * time.Second
	}
	s.ShutdownTimeout = shutdown

	if s.BodyLimit == "" {
		s.BodyLimit = "1M"
	}

	return nil
}

func (d *DatabaseConfig) validateAndNormalize() error {
	if d.Host == "" {
		return fmt.Errorf("config: database.host must be set")
	}
	if d.Port == 0 {
		return fmt.Errorf("config: database.port must be set")
	}
	if d.User == "" {
		return fmt.Errorf("config: database.user must be set")
	}
	if d.Password == "" {
		return fmt.Errorf("config: database.password must be set")
	}
	if d.Name == "" {
		return fmt.Errorf("config: database.name must be set")
	}
	if d.SSLMode == "" {
		d.SSLMode = "disable"
	}

	lifetime, err := parseDurationAllowEmpty(d.ConnMaxLifetimeRaw)
	if err != nil {
		return fmt.Errorf("config: database.conn_max_lifetime: %w", err)
	}
	d.ConnMaxLifetime = lifetime

	idleTime, err := parseDurationAllowEmpty(d.ConnMaxIdleTimeRaw)
	if err != nil {
		return fmt.Errorf("config: database.conn_max_idle_time: %w", err)
	}
	d.ConnMaxIdleTime = idleTime

	return nil
}

func (l *LogConfig) validateAndNormalize() error {
	switch strings.ToLower(strings.TrimSpace(l.Format)) {
	case "", "json":
		l.Format = "json"
	case "text":
		l.Format = "text"
	default:
		return fmt.Errorf("config: log.format must be json or text, got %q", l.Format)
	}

	if strings.TrimSpace(l.Level) == "" {
		l.Level = "info"
	}
	if err := l.level.UnmarshalText([]byte(l.Level)); err != nil {
		return fmt.Errorf("config: log.level: %w", err)
	}

	return nil
}

// SlogLevel は正規化済みのログレベルを返します。
func (l LogConfig) SlogLevel() slog.Level {
	return l.level
}

func parseDurationAllowEmpty(raw string) (time.Duration, error) {
	if raw == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	return d, nil
}

// DSN は pgx / golang-migrate 用の接続文字列を返します。認証情報はエスケープされます。
func (d DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:     "/" + d.Name,
		RawQuery: "sslmode=" + url.QueryEscape(d.SSLMode),
	}
	return u.String()
}
