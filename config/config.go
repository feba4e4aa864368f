package config

import (
	"bytes"
	"errors"
	"os"

	"github.com/adrianliechti/wenku/pkg/batch"
	"github.com/adrianliechti/wenku/pkg/otel"
	"github.com/adrianliechti/wenku/pkg/transport"
	"github.com/adrianliechti/wenku/pkg/wenku"

	"gopkg.in/yaml.v3"
)

type Config struct {
	URL      string
	ImageURL string

	Concurrency int

	Encoding  string
	UserAgent string

	proxy  *proxyConfig
	output outputConfig
}

func Default() *Config {
	return &Config{
		URL:      wenku.DefaultURL,
		ImageURL: wenku.DefaultImageURL,

		Concurrency: batch.DefaultLimit,

		UserAgent: transport.DefaultUserAgent,

		output: outputConfig{
			Type: "dir",
			Path: ".",
		},
	}
}

func Parse(path string) (*Config, error) {
	file, err := parseFile(path)

	if err != nil {
		return nil, err
	}

	c := Default()

	if file.URL != "" {
		c.URL = file.URL
	}

	if file.ImageURL != "" {
		c.ImageURL = file.ImageURL
	}

	if file.Concurrency != nil {
		if *file.Concurrency < 1 {
			return nil, errors.New("invalid concurrency")
		}

		c.Concurrency = *file.Concurrency
	}

	if file.UserAgent != "" {
		c.UserAgent = file.UserAgent
	}

	c.Encoding = file.Encoding
	c.proxy = file.Proxy

	if file.Output != nil {
		c.output = *file.Output
	}

	return c, nil
}

type configFile struct {
	URL      string `yaml:"url"`
	ImageURL string `yaml:"image_url"`

	Concurrency *int `yaml:"concurrency"`

	Encoding  string `yaml:"encoding"`
	UserAgent string `yaml:"user_agent"`

	Proxy  *proxyConfig  `yaml:"proxy"`
	Output *outputConfig `yaml:"output"`
}

func parseFile(path string) (*configFile, error) {
	data, err := os.ReadFile(path)

	if err != nil {
		return nil, err
	}

	data = []byte(os.ExpandEnv(string(data)))

	var config configFile

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	if err := decoder.Decode(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func (cfg *Config) Transport() (transport.Transport, error) {
	client, err := cfg.proxy.proxyClient()

	if err != nil {
		return nil, err
	}

	t, err := transport.New(
		transport.WithClient(client),
		transport.WithUserAgent(cfg.UserAgent),
		transport.WithHeader("Referer", cfg.URL+"/"),
	)

	if err != nil {
		return nil, err
	}

	return otel.NewTransport("wenku", t), nil
}

func (cfg *Config) Client() (*wenku.Client, error) {
	t, err := cfg.Transport()

	if err != nil {
		return nil, err
	}

	return wenku.New(
		wenku.WithTransport(t),
		wenku.WithURL(cfg.URL),
		wenku.WithImageURL(cfg.ImageURL),
		wenku.WithConcurrency(cfg.Concurrency),
		wenku.WithEncoding(cfg.Encoding),
	)
}
