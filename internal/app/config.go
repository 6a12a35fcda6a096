package app

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

const defaultStoreTimeout = 5 * time.Second

type Config struct {
	Gateway struct {
		Listen string `yaml:"Listen"`
	} `yaml:"Gateway"`
	Storage struct {
		Endpoint     string `yaml:"Endpoint"`
		AccessKey    string `yaml:"AccessKey"`
		AccessSecret string `yaml:"AccessSecret"`
		Region       string `yaml:"Region"`
		Bucket       string `yaml:"Bucket"`
		Table        string `yaml:"Table"`
		// Timeout bounds each call to a backing store, as a Go
		// duration string, e.g. "5s".
		Timeout string `yaml:"Timeout"`
	} `yaml:"Storage"`
}

// StoreTimeout parses the configured store timeout.
func (c *Config) StoreTimeout() (time.Duration, error) {
	if c.Storage.Timeout == "" {
		return defaultStoreTimeout, nil
	}

	d, err := time.ParseDuration(c.Storage.Timeout)
	if err != nil {
		return 0, fmt.Errorf("parse timeout: %w", err)
	}

	return d, nil
}

// LoadConfig reads the yaml file at the CONFIG path when set, then
// applies environment overrides. Bucket, table and region have no
// usable default and must come from one of the two.
func LoadConfig() (*Config, error) {
	var c Config
	c.Gateway.Listen = ":8000"

	if path := os.Getenv("CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("unmarshal config: %w", err)
		}
	}

	env(&c.Gateway.Listen, "LISTEN")
	env(&c.Storage.Endpoint, "ENDPOINT")
	env(&c.Storage.AccessKey, "ACCESS_KEY")
	env(&c.Storage.AccessSecret, "ACCESS_SECRET")
	env(&c.Storage.Region, "REGION")
	env(&c.Storage.Bucket, "BUCKET")
	env(&c.Storage.Table, "TABLE")
	env(&c.Storage.Timeout, "STORE_TIMEOUT")

	for _, req := range []struct {
		name  string
		value string
	}{
		{"Storage.Region (REGION)", c.Storage.Region},
		{"Storage.Bucket (BUCKET)", c.Storage.Bucket},
		{"Storage.Table (TABLE)", c.Storage.Table},
	} {
		if req.value == "" {
			return nil, fmt.Errorf("empty config `%s`", req.name)
		}
	}

	return &c, nil
}

func env(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
