package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	RunAddress    string `env:"RUN_ADDRESS"`
	DatabaseDSN   string `env:"DATABASE_URI"`
	MigrationsDir string `env:"MIGRATIONS_DIR"`
	JWTSecret     string `env:"JWT_SECRET"`

	GameAPIURL      string        `env:"GAME_API_URL"`
	GameAPIKey      string        `env:"GAME_API_KEY"`
	PurchaseTimeout time.Duration `env:"GAME_API_PURCHASE_TIMEOUT" envDefault:"30s"`
	BatchTimeout    time.Duration `env:"GAME_API_BATCH_TIMEOUT"    envDefault:"60s"`
	AdminTimeout    time.Duration `env:"GAME_API_ADMIN_TIMEOUT"    envDefault:"15s"`

	RedisAddr string `env:"REDIS_ADDR"`
	RedisDB   int    `env:"REDIS_DB"`

	KafkaBrokers []string `env:"KAFKA_BROKERS" envSeparator:","`
	KafkaTopic   string   `env:"KAFKA_TOPIC"   envDefault:"dzstore.orders"`

	S3Bucket           string `env:"S3_BUCKET"`
	S3Endpoint         string `env:"S3_ENDPOINT"`
	S3PublicURL        string `env:"S3_PUBLIC_URL"`
	AWSRegion          string `env:"AWS_REGION"            envDefault:"us-east-1"`
	AWSAccessKeyID     string `env:"AWS_ACCESS_KEY_ID"`
	AWSSecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY"`

	// SweepInterval zero disables the background redelivery.
	SweepInterval    time.Duration `env:"SWEEP_INTERVAL"`
	SweepMaxAttempts int           `env:"SWEEP_MAX_ATTEMPTS" envDefault:"5"`
	SweepWorkers     uint          `env:"SWEEP_WORKERS"      envDefault:"4"`

	PurchaseRateLimit  int           `env:"PURCHASE_RATE_LIMIT"  envDefault:"5"`
	PurchaseRateWindow time.Duration `env:"PURCHASE_RATE_WINDOW" envDefault:"10s"`

	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:","`
}

// LoadConfig reads an optional .env file, the environment and the command line flags in args.
// Environment values win over flags.
func LoadConfig(args []string) (*Config, error) {
	_ = godotenv.Load()

	var flagsConfig, envConfig Config
	if envParseErr := env.Parse(&envConfig); envParseErr != nil {
		return nil, fmt.Errorf("parse env config: %s", envParseErr.Error())
	}

	if flagsErr := loadFlags(&flagsConfig, args); flagsErr != nil {
		return nil, fmt.Errorf("parse flags: %s", flagsErr.Error())
	}

	conf := mergeConfig(&envConfig, &flagsConfig)
	if err := conf.validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

func MustLoadConfig() *Config {
	config, err := LoadConfig(os.Args[1:])
	if err != nil {
		panic(err)
	}
	return config
}

func (c *Config) validate() error {
	switch {
	case c.DatabaseDSN == "":
		return errors.New("database DSN is not set")
	case c.JWTSecret == "":
		return errors.New("jwt secret is not set")
	case c.GameAPIURL == "":
		return errors.New("game api url is not set")
	case c.SweepInterval < 0:
		return errors.New("sweep interval must not be negative")
	case c.PurchaseRateLimit < 0:
		return errors.New("purchase rate limit must not be negative")
	}
	return nil
}

func loadFlags(flagConfig *Config, args []string) error {
	fs := flag.NewFlagSet("dzstore", flag.ContinueOnError)
	fs.StringVar(&flagConfig.RunAddress, "a", "localhost:8080", "Run address in format host:port")
	fs.StringVar(&flagConfig.DatabaseDSN, "d", "", "Database DSN")
	fs.StringVar(&flagConfig.MigrationsDir, "m", "internal/db/migrations", "Database migrations directory")
	fs.StringVar(&flagConfig.JWTSecret, "j", "", "JWT signing secret")
	fs.StringVar(&flagConfig.GameAPIURL, "g", "", "Game server item giver api base url")
	fs.StringVar(&flagConfig.RedisAddr, "r", "", "Redis address in format host:port")

	return fs.Parse(args) //nolint:wrapcheck
}

// mergeConfig takes the flag based strings as defaults for the environment. Everything else only
// comes from the environment.
func mergeConfig(envConfig, flagsConfig *Config) *Config {
	conf := *envConfig
	conf.RunAddress = defaultIfBlank(envConfig.RunAddress, flagsConfig.RunAddress)
	conf.DatabaseDSN = defaultIfBlank(envConfig.DatabaseDSN, flagsConfig.DatabaseDSN)
	conf.MigrationsDir = defaultIfBlank(envConfig.MigrationsDir, flagsConfig.MigrationsDir)
	conf.JWTSecret = defaultIfBlank(envConfig.JWTSecret, flagsConfig.JWTSecret)
	conf.GameAPIURL = defaultIfBlank(envConfig.GameAPIURL, flagsConfig.GameAPIURL)
	conf.RedisAddr = defaultIfBlank(envConfig.RedisAddr, flagsConfig.RedisAddr)
	return &conf
}

func defaultIfBlank(value string, defaultValue string) string {
	if value == "" {
		return defaultValue
	}
	return value
}

// String hides secrets so the config can be logged.
func (c Config) String() string {
	c.DatabaseDSN = mask(c.DatabaseDSN)
	c.JWTSecret = mask(c.JWTSecret)
	c.GameAPIKey = mask(c.GameAPIKey)
	c.AWSSecretAccessKey = mask(c.AWSSecretAccessKey)
	type plain Config
	return fmt.Sprintf("%+v", plain(c))
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	return "***"
}
