package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pathplay/pkg/observability"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info level", log.InfoLevel, func(l *log.Logger) { l.Info("computed") }, true},
		{"debug at info level", log.InfoLevel, func(l *log.Logger) { l.Debug("tick") }, false},
		{"debug at debug level", log.DebugLevel, func(l *log.Logger) { l.Debug("tick") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.wantLog {
				t.Errorf("got log output = %v, want %v", got, tt.wantLog)
			}
		})
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))
	prog.done("Computed 4 steps")

	out := buf.String()
	if !strings.Contains(out, "Computed 4 steps (") {
		t.Errorf("progress output = %q", out)
	}
}

func TestLoggerContext(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("empty context should yield the default logger")
	}

	custom := newLogger(&bytes.Buffer{}, log.InfoLevel)
	ctx := withLogger(context.Background(), custom)
	if loggerFromContext(ctx) != custom {
		t.Error("loggerFromContext should return the attached logger")
	}
}

func TestLoggingHooks(t *testing.T) {
	t.Cleanup(observability.Reset)

	var buf bytes.Buffer
	installLoggingHooks(newLogger(&buf, log.DebugLevel))

	ctx := context.Background()
	observability.Engine().OnComputeStart(ctx, 4, 3, 0)
	observability.Engine().OnComputeComplete(ctx, 0, 0, time.Millisecond, errors.New("boom"))
	observability.Playback().OnStateChange("idle", "running", 0)
	observability.Playback().OnTick(2, 4)
	observability.Cache().OnCacheMiss(ctx, "frame")
	observability.Cache().OnCacheSet(ctx, "frame", 512)

	for _, want := range []string{"compute start", "compute failed", "running", "tick", "cache miss", "bytes=512"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("hook output lacks %q:\n%s", want, buf.String())
		}
	}
}

func TestSetLogLevelInstallsHooks(t *testing.T) {
	t.Cleanup(observability.Reset)

	var buf bytes.Buffer
	c := New(&buf, log.InfoLevel)
	observability.Engine().OnComputeStart(context.Background(), 2, 1, 0)
	if buf.Len() != 0 {
		t.Fatalf("hooks logged at info level: %s", buf.String())
	}

	c.SetLogLevel(log.DebugLevel)
	observability.Engine().OnComputeStart(context.Background(), 2, 1, 0)
	if !strings.Contains(buf.String(), "compute start") {
		t.Errorf("hooks not installed at debug level: %q", buf.String())
	}
}
