package downloader

import (
	"log/slog"
)

type Option func(*Downloader)

func WithLogger(logger *slog.Logger) Option {
	return func(d *Downloader) {
		if logger != nil {
			d.logger = logger
		}
	}
}
