package config

import (
	"flag"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the full server configuration, read from a YAML file with
// environment variable overrides.
type Config struct {
	Env      string `yaml:"env" env:"ENV" env-default:"local" env-description:"Environment" env-choices:"local,dev,prod"`
	HTTP     HTTP   `yaml:"http"`
	DBPath   string `yaml:"db_path" env:"DB_PATH" env-default:"./data/splitq.db"`
	Auth     Auth   `yaml:"auth"`
	Reminder Reminder `yaml:"reminder"`
}

type HTTP struct {
	Host string `yaml:"host" env:"HTTP_HOST" env-default:""`
	Port int    `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
}

type Auth struct {
	JWTSecret string        `yaml:"jwt_secret" env:"JWT_SECRET" env-required:"true"`
	TokenTTL  time.Duration `yaml:"token_ttl" env:"TOKEN_TTL" env-default:"24h"`
}

type Reminder struct {
	Enabled  bool          `yaml:"enabled" env:"REMINDER_ENABLED" env-default:"false"`
	Interval time.Duration `yaml:"interval" env:"REMINDER_INTERVAL" env-default:"24h"`
	From     string        `yaml:"from" env:"REMINDER_FROM" env-default:"no-reply@splitq.app"`
	SMTPAddr string        `yaml:"smtp_addr" env:"SMTP_ADDR" env-default:"localhost:25"`
}

// MustLoad reads the configuration or panics. The config path comes from the
// -config flag, then the CONFIG_PATH env var; with neither set, the config is
// read from environment variables alone.
func MustLoad() *Config {
	path := fetchConfigPath()

	var cfg Config
	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			panic("failed to read config from env: " + err.Error())
		}
		return &cfg
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		panic("config file does not exist: " + path)
	}
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		panic("failed to read config: " + err.Error())
	}
	return &cfg
}

func fetchConfigPath() string {
	var res string

	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}
	return res
}
