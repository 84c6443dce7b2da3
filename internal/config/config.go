package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is shared by cashewctl and the sandbox; each reads the keys it needs
type Config struct {
	APIBaseURL  string        `mapstructure:"API_BASE_URL"`
	HTTPTimeout time.Duration `mapstructure:"HTTP_TIMEOUT"`
	SessionFile string        `mapstructure:"SESSION_FILE"`

	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`

	// Activity events go to Kafka only when brokers are set
	KafkaBrokers []string `mapstructure:"KAFKA_BROKERS"`
	KafkaTopic   string   `mapstructure:"KAFKA_TOPIC"`

	SandboxAddr    string        `mapstructure:"SANDBOX_ADDR"`
	JWTSecret      string        `mapstructure:"JWT_SECRET"`
	AccessTokenTTL time.Duration `mapstructure:"ACCESS_TOKEN_TTL"`
}

// Load reads <name>.env from path when present, then the environment, on top of defaults
func Load(path, name string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName(name)
	v.SetConfigType("env")

	v.AutomaticEnv()

	v.SetDefault("API_BASE_URL", "http://localhost:8080/api")
	v.SetDefault("HTTP_TIMEOUT", "15s")
	v.SetDefault("SESSION_FILE", defaultSessionFile())

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")

	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("KAFKA_TOPIC", "cashew-activity")

	v.SetDefault("SANDBOX_ADDR", ":8080")
	v.SetDefault("JWT_SECRET", "sandbox-secret-change-me")
	v.SetDefault("ACCESS_TOKEN_TTL", "1h")

	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return
		}
		err = nil
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	err = v.Unmarshal(&config)
	if err != nil {
		return
	}
	config.KafkaBrokers = compact(config.KafkaBrokers)
	config.APIBaseURL = strings.TrimRight(config.APIBaseURL, "/")
	return
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".cashewctl-session.json"
	}
	return filepath.Join(home, ".cashewctl", "session.json")
}

func compact(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
