package configs

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const EnvPrefix = "STOREAPI_"

type Config struct {
	App struct {
		Name     string `koanf:"name"`
		HTTPAddr string `koanf:"http_addr"`
		GRPCAddr string `koanf:"grpc_addr"`
		LogLevel string `koanf:"log_level"`
		LogFile  string `koanf:"log_file"`
	} `koanf:"app"`

	HTTP struct {
		ReadTimeout     time.Duration `koanf:"read_timeout"`
		WriteTimeout    time.Duration `koanf:"write_timeout"`
		IdleTimeout     time.Duration `koanf:"idle_timeout"`
		ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	} `koanf:"http"`

	Store struct {
		// reject | verbatim
		QuantityPolicy string `koanf:"quantity_policy"`
	} `koanf:"store"`

	Pricing struct {
		Shipping float64 `koanf:"shipping"`
	} `koanf:"pricing"`

	Checkout struct {
		PaymentDelay time.Duration `koanf:"payment_delay"`
		Timeout      time.Duration `koanf:"timeout"`
	} `koanf:"checkout"`

	Storage struct {
		// memory | sqlite | redis
		Driver     string `koanf:"driver"`
		SQLitePath string `koanf:"sqlite_path"`
		KeyPrefix  string `koanf:"key_prefix"`
	} `koanf:"storage"`

	Redis struct {
		Addr     string `koanf:"addr"`
		Password string `koanf:"password"`
	} `koanf:"redis"`

	Idempotency struct {
		TTL time.Duration `koanf:"ttl"`
	} `koanf:"idempotency"`

	Events struct {
		// none | rabbitmq | kafka
		Driver string `koanf:"driver"`
	} `koanf:"events"`

	Rabbit struct {
		URL         string `koanf:"url"`
		Exchange    string `koanf:"exchange"`
		RoutingKey  string `koanf:"routing_key"`
		CatalogSync string `koanf:"catalog_queue"`
	} `koanf:"rabbitmq"`

	Kafka struct {
		Brokers       []string `koanf:"brokers"`
		TopicReceipts string   `koanf:"topic_receipts"`
	} `koanf:"kafka"`

	Security struct {
		JWTSecret string        `koanf:"jwt_secret"`
		Issuer    string        `koanf:"issuer"`
		Audience  string        `koanf:"audience"`
		TTL       time.Duration `koanf:"ttl"`
	} `koanf:"security"`
}

func Load(pathDir, envName string) (Config, error) {
	k := koanf.New(".")
	// 1) base
	if err := k.Load(file.Provider(fmt.Sprintf("%s/base.yaml", pathDir)), yaml.Parser()); err != nil {
		return Config{}, fmt.Errorf("load base: %w", err)
	}

	// 2) env override (dev/staging/prod). Optional: allow missing for local runs.
	_ = k.Load(file.Provider(fmt.Sprintf("%s/%s.yaml", pathDir, envName)), yaml.Parser())

	// 3) environment variables override (prefix STOREAPI_, nested with __)
	// e.g. STOREAPI_STORAGE__DRIVER, STOREAPI_REDIS__PASSWORD
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(s, EnvPrefix)
		s = strings.ReplaceAll(s, "__", ".")
		return strings.ToLower(s)
	}), nil); err != nil {
		return Config{}, fmt.Errorf("env overlay: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.App.HTTPAddr == "" {
		return fmt.Errorf("app.http_addr required")
	}
	if c.Pricing.Shipping < 0 {
		return fmt.Errorf("pricing.shipping must not be negative")
	}
	switch c.Store.QuantityPolicy {
	case "", "reject", "verbatim":
	default:
		return fmt.Errorf("store.quantity_policy %q: want reject or verbatim", c.Store.QuantityPolicy)
	}
	switch c.Storage.Driver {
	case "", "memory":
	case "sqlite":
		if c.Storage.SQLitePath == "" {
			return fmt.Errorf("storage.sqlite_path required for sqlite driver")
		}
	case "redis":
		if c.Redis.Addr == "" {
			return fmt.Errorf("redis.addr required for redis driver")
		}
	default:
		return fmt.Errorf("storage.driver %q: want memory, sqlite or redis", c.Storage.Driver)
	}
	switch c.Events.Driver {
	case "", "none":
	case "rabbitmq":
		if c.Rabbit.URL == "" {
			return fmt.Errorf("rabbitmq.url required for rabbitmq events")
		}
	case "kafka":
		if len(c.Kafka.Brokers) == 0 || c.Kafka.TopicReceipts == "" {
			return fmt.Errorf("kafka.brokers and kafka.topic_receipts required for kafka events")
		}
	default:
		return fmt.Errorf("events.driver %q: want none, rabbitmq or kafka", c.Events.Driver)
	}
	if c.Security.JWTSecret == "" {
		return fmt.Errorf("security.jwt_secret required")
	}
	return nil
}
