package otel

import (
	"context"
	"net/url"

	"github.com/adrianliechti/wenku/pkg/transport"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type Transport interface {
	Observable
	transport.Transport
}

type observableTransport struct {
	name string

	requests metric.Int64Counter
	bytes    metric.Int64Counter

	transport transport.Transport
}

func NewTransport(name string, t transport.Transport) Transport {
	meter := otel.Meter(instrumentationName)

	requests, _ := meter.Int64Counter("wenku.fetch.requests",
		metric.WithDescription("Number of fetched resources"),
	)

	bytes, _ := meter.Int64Counter("wenku.fetch.bytes",
		metric.WithDescription("Number of fetched bytes"),
		metric.WithUnit("By"),
	)

	return &observableTransport{
		name: name,

		requests: requests,
		bytes:    bytes,

		transport: t,
	}
}

func (p *observableTransport) otelSetup() {
}

func (p *observableTransport) Fetch(ctx context.Context, u string, params url.Values) (*transport.Response, error) {
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, "fetch "+p.name)
	defer span.End()

	span.SetAttributes(String("url.full", u))

	resp, err := p.transport.Fetch(ctx, u, params)

	recordError(span, err)

	attrs := metric.WithAttributes(
		attribute.String("transport", p.name),
		attribute.Bool("error", err != nil),
	)

	if p.requests != nil {
		p.requests.Add(ctx, 1, attrs)
	}

	if resp != nil {
		span.SetAttributes(Int("http.response.body.size", len(resp.Body)))

		if p.bytes != nil {
			p.bytes.Add(ctx, int64(len(resp.Body)), attrs)
		}
	}

	return resp, err
}
