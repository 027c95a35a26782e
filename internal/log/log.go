package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/chainguard-dev/clog"
	charmlog "github.com/charmbracelet/log"
	slogmulti "github.com/samber/slog-multi"
)

// Setup installs the process logger into ctx. Terminal logs go to w; when
// logFile is set every record is also written there as JSON at debug level.
// The returned func closes the log file.
func Setup(ctx context.Context, w io.Writer, debug bool, logFile string) (context.Context, func(), error) {
	level := charmlog.WarnLevel
	if debug {
		level = charmlog.DebugLevel
	}
	var handler slog.Handler = charmlog.NewWithOptions(w, charmlog.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          "cloud-cli",
	})

	closer := func() {}
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return ctx, closer, fmt.Errorf("opening log file: %w", err)
		}
		handler = slogmulti.Fanout(handler, slog.NewJSONHandler(f, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		closer = func() { _ = f.Close() }
	}

	logger := clog.New(handler)
	slog.SetDefault(&logger.Logger)
	return clog.WithLogger(ctx, logger), closer, nil
}

// With returns a context whose logger carries args on every record.
func With(ctx context.Context, args ...any) context.Context {
	logger := clog.FromContext(ctx).With(args...)
	return clog.WithLogger(ctx, logger)
}
