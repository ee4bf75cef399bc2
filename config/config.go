package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MacarenaGarciaM/Tingeso1/httpclient"
	"github.com/spf13/viper"
)

// Config holds the client settings.
type Config struct {
	API struct {
		URL     string        `mapstructure:"url"`
		Timeout time.Duration `mapstructure:"timeout"`
	} `mapstructure:"api"`
	TLS struct {
		CAFile             string `mapstructure:"ca_file"`
		CertFile           string `mapstructure:"cert_file"`
		KeyFile            string `mapstructure:"key_file"`
		InsecureSkipVerify bool   `mapstructure:"insecure_skip_verify"`
	} `mapstructure:"tls"`
	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
	RequestID struct {
		Header string `mapstructure:"header"`
	} `mapstructure:"request_id"`
}

// Load reads configuration from defaults, an optional YAML file and the environment,
// in increasing order of precedence. An empty path looks for config.yaml in the
// working directory; a missing file is not an error.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("api.url", httpclient.DefaultBaseURL)
	v.SetDefault("api.timeout", "30s")
	v.SetDefault("tls.insecure_skip_verify", false)
	v.SetDefault("log.level", "info")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("config: read %q: %w", path, err)
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// explicit bindings
	_ = v.BindEnv("api.url", httpclient.EnvBaseURL)
	_ = v.BindEnv("api.timeout", "API_TIMEOUT")
	_ = v.BindEnv("tls.ca_file", "TLS_CA_FILE")
	_ = v.BindEnv("tls.cert_file", "TLS_CERT_FILE")
	_ = v.BindEnv("tls.key_file", "TLS_KEY_FILE")
	_ = v.BindEnv("tls.insecure_skip_verify", "TLS_INSECURE_SKIP_VERIFY")
	_ = v.BindEnv("log.level", "LOG_LEVEL")
	_ = v.BindEnv("request_id.header", "REQUEST_ID_HEADER")

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}

	// A blank URL, e.g. API_URL="", falls back like an unset one.
	if strings.TrimSpace(c.API.URL) == "" {
		c.API.URL = httpclient.DefaultBaseURL
	}
	c.API.URL = strings.TrimSpace(c.API.URL)

	if c.API.Timeout < 0 {
		return Config{}, fmt.Errorf("config: api.timeout must not be negative, got %s", c.API.Timeout)
	}

	return c, nil
}

// Builder returns an httpclient.Builder preconfigured from c.
func (c Config) Builder() *httpclient.Builder {
	b := httpclient.NewBuilder().
		WithBaseURL(c.API.URL).
		WithTimeout(c.API.Timeout)

	if c.TLS.CAFile != "" || c.TLS.CertFile != "" || c.TLS.KeyFile != "" {
		b = b.WithTLS(c.TLS.CAFile, c.TLS.CertFile, c.TLS.KeyFile)
	}
	if c.TLS.InsecureSkipVerify {
		b = b.WithInsecureSkipVerify()
	}
	// Request ids are opt-in; without a header name requests go out untouched.
	if c.RequestID.Header != "" {
		b = b.WithRequestID(c.RequestID.Header)
	}

	return b
}
