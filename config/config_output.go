package config

import (
	"errors"
	"strings"

	"github.com/adrianliechti/wenku/pkg/otel"
	"github.com/adrianliechti/wenku/pkg/output"
	"github.com/adrianliechti/wenku/pkg/output/dir"
	"github.com/adrianliechti/wenku/pkg/output/minio"
)

type outputConfig struct {
	Type string `yaml:"type"`

	// local directory
	Path string `yaml:"path"`

	// object storage
	URL    string `yaml:"url"`
	Bucket string `yaml:"bucket"`

	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`

	Secure bool `yaml:"secure"`
}

func (cfg *Config) Output() (output.Provider, error) {
	p, err := createOutput(cfg.output)

	if err != nil {
		return nil, err
	}

	name := strings.ToLower(cfg.output.Type)

	if name == "" {
		name = "dir"
	}

	return otel.NewOutput(name, p), nil
}

func createOutput(cfg outputConfig) (output.Provider, error) {
	switch strings.ToLower(cfg.Type) {
	case "", "dir", "local":
		return dir.New(cfg.Path)

	case "minio", "s3":
		return minioOutput(cfg)

	default:
		return nil, errors.New("invalid output type: " + cfg.Type)
	}
}

func minioOutput(cfg outputConfig) (output.Provider, error) {
	var options []minio.Option

	if cfg.AccessKey != "" || cfg.SecretKey != "" {
		options = append(options, minio.WithCredentials(cfg.AccessKey, cfg.SecretKey))
	}

	if cfg.Secure {
		options = append(options, minio.WithSecure(true))
	}

	return minio.New(cfg.URL, cfg.Bucket, options...)
}
