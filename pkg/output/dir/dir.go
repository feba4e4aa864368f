package dir

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrianliechti/wenku/pkg/output"
)

var _ output.Provider = &Provider{}

type Provider struct {
	path string
}

func New(path string) (*Provider, error) {
	if path == "" {
		path = "."
	}

	return &Provider{
		path: path,
	}, nil
}

func (p *Provider) Mkdir(ctx context.Context, name string) (string, error) {
	if !isValid(name) {
		return "", output.ErrInvalidName
	}

	dir := filepath.Join(p.path, name)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	return filepath.Abs(dir)
}

func (p *Provider) Write(ctx context.Context, dir, name string, data []byte) error {
	if !isValid(dir) || !isValid(name) {
		return output.ErrInvalidName
	}

	return os.WriteFile(filepath.Join(p.path, dir, name), data, 0644)
}

func isValid(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}

	return !strings.ContainsAny(name, `/\`)
}
