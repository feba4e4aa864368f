package progress

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/adrianliechti/wenku/pkg/progress"

// Stage measures one step of a download. It logs when the step starts and
// how long it took when it is done.
type Stage struct {
	name   string
	start  time.Time
	logger *slog.Logger

	span trace.Span
}

func Start(ctx context.Context, logger *slog.Logger, name string) (context.Context, *Stage) {
	if logger == nil {
		logger = slog.Default()
	}

	ctx, span := otel.Tracer(instrumentationName).Start(ctx, name)

	logger.InfoContext(ctx, name+"...")

	return ctx, &Stage{
		name:   name,
		start:  time.Now(),
		logger: logger,

		span: span,
	}
}

// Done finishes the stage and returns the elapsed time.
func (s *Stage) Done(err error) time.Duration {
	defer s.span.End()

	elapsed := time.Since(s.start)

	if err != nil {
		s.span.RecordError(err)
		s.span.SetStatus(codes.Error, err.Error())

		s.logger.Warn(s.name+" failed", "elapsed", elapsed, "error", err)
		return elapsed
	}

	s.logger.Info(s.name+" finished", "elapsed", elapsed)
	return elapsed
}
