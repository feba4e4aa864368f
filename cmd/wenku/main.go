package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/adrianliechti/wenku/config"
	"github.com/adrianliechti/wenku/pkg/downloader"
	"github.com/adrianliechti/wenku/pkg/otel"
	"github.com/adrianliechti/wenku/pkg/wenku"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), "usage: wenku <document url or id>")
	}

	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	os.Exit(run(flag.Arg(0)))
}

func run(input string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	level := slog.LevelInfo

	if otel.EnableDebug {
		level = slog.LevelDebug
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	shutdown, err := otel.Setup(ctx, "wenku")

	if err != nil {
		slog.Error("failed to setup telemetry", "error", err)
		return 1
	}

	defer shutdown(context.Background())

	cfg, err := loadConfig()

	if err != nil {
		slog.Error("failed to load config", "error", err)
		return 1
	}

	client, err := cfg.Client()

	if err != nil {
		slog.Error("failed to create client", "error", err)
		return 1
	}

	output, err := cfg.Output()

	if err != nil {
		slog.Error("failed to create output", "error", err)
		return 1
	}

	d, err := downloader.New(client, output)

	if err != nil {
		slog.Error("failed to create downloader", "error", err)
		return 1
	}

	return download(ctx, d.Download, input, os.Stdout)
}

type downloadFunc func(ctx context.Context, input string) (*downloader.Result, error)

// download runs fn for input and maps the outcome to the exit code. A run
// interrupted through ctx fails even when fn reports success.
func download(ctx context.Context, fn downloadFunc, input string, w io.Writer) int {
	result, err := fn(ctx, input)

	if errors.Is(err, wenku.ErrNoID) {
		slog.Warn("can not get document id", "input", input)
		return 0
	}

	if err == nil {
		err = ctx.Err()
	}

	if err != nil {
		slog.Error("download failed", "error", err)
		return 1
	}

	if result.TextErr != nil {
		slog.Warn("document has no text", "error", result.TextErr)
	}

	fmt.Fprintln(w, "document saved to", result.Path)

	return 0
}

func loadConfig() (*config.Config, error) {
	if path := os.Getenv("WENKU_CONFIG"); path != "" {
		return config.Parse(path)
	}

	return config.Default(), nil
}
