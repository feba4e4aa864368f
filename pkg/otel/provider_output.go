package otel

import (
	"context"

	"github.com/adrianliechti/wenku/pkg/output"

	"go.opentelemetry.io/otel"
)

type Output interface {
	Observable
	output.Provider
}

type observableOutput struct {
	name string

	provider output.Provider
}

func NewOutput(name string, p output.Provider) Output {
	return &observableOutput{
		name: name,

		provider: p,
	}
}

func (p *observableOutput) otelSetup() {
}

func (p *observableOutput) Mkdir(ctx context.Context, name string) (string, error) {
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, "mkdir "+p.name)
	defer span.End()

	span.SetAttributes(String("output.dir", name))

	location, err := p.provider.Mkdir(ctx, name)

	recordError(span, err)

	return location, err
}

func (p *observableOutput) Write(ctx context.Context, dir, name string, data []byte) error {
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, "write "+p.name)
	defer span.End()

	span.SetAttributes(
		String("output.dir", dir),
		String("output.file", name),
		Int("output.size", len(data)),
	)

	err := p.provider.Write(ctx, dir, name, data)

	recordError(span, err)

	return err
}
