package progress_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/adrianliechti/wenku/pkg/progress"

	"github.com/stretchr/testify/require"
)

func TestStage(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	_, stage := progress.Start(context.Background(), logger, "fetching document info")

	time.Sleep(2 * time.Millisecond)

	elapsed := stage.Done(nil)
	require.GreaterOrEqual(t, elapsed, 2*time.Millisecond)

	out := buf.String()
	require.Contains(t, out, "fetching document info...")
	require.Contains(t, out, "fetching document info finished")
	require.Contains(t, out, "elapsed=")
}

func TestStageError(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	_, stage := progress.Start(context.Background(), logger, "fetching text")
	stage.Done(errors.New("no text"))

	out := buf.String()
	require.Contains(t, out, "level=WARN")
	require.Contains(t, out, "fetching text failed")
	require.Contains(t, out, "no text")
}
