package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App      AppConfig
	HTTP     HTTPConfig
	Log      LogConfig
	Redis    RedisConfig
	Database DatabaseConfig
	Shopify  ShopifyConfig
	Cart     CartConfig
	Checkout CheckoutConfig
	Catalog  CatalogConfig
	Pricing  PricingConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	IdleTimeout      time.Duration
	MaxHeaderBytes   int
	CORSAllowOrigins []string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// Addr returns the host:port address for the Redis client
func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DatabaseConfig holds relational database settings for the cart snapshot
// store. Driver selects the dialector: "sqlite" or "postgres".
type DatabaseConfig struct {
	Driver          string
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	Path            string // sqlite file path
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int // in minutes
}

// DSN returns the postgres connection string
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// ShopifyConfig holds the external order platform settings
type ShopifyConfig struct {
	StoreDomain    string
	AccessToken    string
	APIVersion     string
	TimeoutSeconds int
}

// CartConfig holds cart persistence settings
type CartConfig struct {
	// Store selects the snapshot store backend: memory, redis, or database
	Store string
	// Retention is how long a persisted cart survives after its last write
	Retention time.Duration
}

// CheckoutConfig holds checkout orchestration settings
type CheckoutConfig struct {
	// MaxRetries bounds automatic retries of transport-class failures
	MaxRetries int
	// TokenTTL is how long an in-flight checkout token blocks resubmission
	TokenTTL time.Duration
}

// CatalogConfig holds product catalog settings
type CatalogConfig struct {
	// Path to the products.json catalog file
	Path string
}

// PricingConfig holds pricing matrix settings
type PricingConfig struct {
	// Dir is the directory containing per-product matrix JSON files
	Dir string
}

// Load reads configuration from config.toml and STOREFRONT_* environment
// variables, applies defaults, and validates the result
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	v.SetEnvPrefix("STOREFRONT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:      v.GetDuration("http.read_timeout"),
			WriteTimeout:     v.GetDuration("http.write_timeout"),
			IdleTimeout:      v.GetDuration("http.idle_timeout"),
			MaxHeaderBytes:   v.GetInt("http.max_header_bytes"),
			CORSAllowOrigins: v.GetStringSlice("http.cors_allow_origins"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("redis.host"),
			Port:     v.GetInt("redis.port"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Database: DatabaseConfig{
			Driver:          v.GetString("database.driver"),
			Host:            v.GetString("database.host"),
			Port:            v.GetInt("database.port"),
			User:            v.GetString("database.user"),
			Password:        v.GetString("database.password"),
			DBName:          v.GetString("database.dbname"),
			SSLMode:         v.GetString("database.sslmode"),
			Path:            v.GetString("database.path"),
			MaxOpenConns:    v.GetInt("database.max_open_conns"),
			MaxIdleConns:    v.GetInt("database.max_idle_conns"),
			ConnMaxLifetime: v.GetInt("database.conn_max_lifetime"),
		},
		Shopify: ShopifyConfig{
			StoreDomain:    v.GetString("shopify.store_domain"),
			AccessToken:    v.GetString("shopify.access_token"),
			APIVersion:     v.GetString("shopify.api_version"),
			TimeoutSeconds: v.GetInt("shopify.timeout_seconds"),
		},
		Cart: CartConfig{
			Store:     v.GetString("cart.store"),
			Retention: v.GetDuration("cart.retention"),
		},
		Checkout: CheckoutConfig{
			MaxRetries: v.GetInt("checkout.max_retries"),
			TokenTTL:   v.GetDuration("checkout.token_ttl"),
		},
		Catalog: CatalogConfig{
			Path: v.GetString("catalog.path"),
		},
		Pricing: PricingConfig{
			Dir: v.GetString("pricing.dir"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "storefront")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")

	v.SetDefault("http.read_timeout", "15s")
	v.SetDefault("http.write_timeout", "15s")
	v.SetDefault("http.idle_timeout", "60s")
	v.SetDefault("http.max_header_bytes", 1<<20)
	v.SetDefault("http.cors_allow_origins", []string{})

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stdout")

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.db", 0)

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "storefront.db")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", 30)

	v.SetDefault("shopify.api_version", "2024-10")
	v.SetDefault("shopify.timeout_seconds", 10)

	v.SetDefault("cart.store", "memory")
	v.SetDefault("cart.retention", "168h") // 7 days

	v.SetDefault("checkout.max_retries", 2)
	v.SetDefault("checkout.token_ttl", "10m")

	v.SetDefault("catalog.path", "data/products.json")
	v.SetDefault("pricing.dir", "data/pricing")
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	switch c.Cart.Store {
	case "memory", "redis", "database":
	default:
		return fmt.Errorf("invalid cart.store %q: must be memory, redis, or database", c.Cart.Store)
	}
	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("invalid database.driver %q: must be sqlite or postgres", c.Database.Driver)
	}
	if c.Cart.Retention <= 0 {
		return fmt.Errorf("cart.retention must be positive, got %v", c.Cart.Retention)
	}
	if c.Checkout.MaxRetries < 0 {
		return fmt.Errorf("checkout.max_retries cannot be negative, got %d", c.Checkout.MaxRetries)
	}
	if c.Catalog.Path == "" {
		return fmt.Errorf("catalog.path cannot be empty")
	}
	if c.Pricing.Dir == "" {
		return fmt.Errorf("pricing.dir cannot be empty")
	}
	return nil
}

// IsProduction returns true when running in the production environment
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
