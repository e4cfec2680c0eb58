package svgps

import (
	"bytes"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

func TestLogger_DefaultSilent(t *testing.T) {
	SetLogger(nil)
	l := Logger()
	if l == nil {
		t.Fatal("Logger() = nil, want a logger")
	}
	// Must not panic and must not emit anywhere.
	l.Warn("discarded", "key", "value")
}

func TestSetLogger(t *testing.T) {
	defer SetLogger(nil)

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	Logger().Debug("flattened", "commands", 7)
	if !strings.Contains(buf.String(), "flattened") {
		t.Errorf("log output = %q, want it to contain %q", buf.String(), "flattened")
	}
}

func TestSetLogger_NilRestoresSilence(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	SetLogger(nil)

	Logger().Warn("should be dropped")
	if buf.Len() != 0 {
		t.Errorf("log output after SetLogger(nil) = %q, want none", buf.String())
	}
}

func TestSetLogger_Concurrent(t *testing.T) {
	defer SetLogger(nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			SetLogger(newNopLogger())
		}()
		go func() {
			defer wg.Done()
			Logger().Debug("concurrent access")
		}()
	}
	wg.Wait()
}

func TestPipelineLogsDegradations(t *testing.T) {
	defer SetLogger(nil)

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn})))

	o := NewOutline()
	o.MoveTo(0, 0)
	o.ArcTo(0, 0, 0, false, true, 10, 10)
	Flatten(o, 0)

	if !strings.Contains(buf.String(), "arc") {
		t.Errorf("degraded arc produced no warning, log = %q", buf.String())
	}
}
