package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/user/yuvsnap/pkg/ports"
)

func TestConsoleLogger_LevelsAndStreams(t *testing.T) {
	var out, errOut bytes.Buffer
	log := NewWriter(ports.LevelInfo, &out, &errOut, false)

	log.Debug("hidden %d", 1)
	log.Info("shown %d", 2)
	log.Warn("warned %d", 3)
	log.Error("failed %d", 4)

	if strings.Contains(out.String(), "hidden") {
		t.Error("debug message should be filtered at info level")
	}
	if out.String() != "shown 2\n" {
		t.Errorf("stdout = %q", out.String())
	}
	if errOut.String() != "warned 3\nfailed 4\n" {
		t.Errorf("stderr = %q", errOut.String())
	}
}

func TestConsoleLogger_WithComponent(t *testing.T) {
	var out bytes.Buffer
	log := NewWriter(ports.LevelDebug, &out, &out, false)

	log.WithComponent("batch").Debug("frame %d", 7)
	if got := out.String(); got != "[batch] frame 7\n" {
		t.Errorf("got %q", got)
	}
}

func TestConsoleLogger_Color(t *testing.T) {
	var out, errOut bytes.Buffer
	log := NewWriter(ports.LevelDebug, &out, &errOut, true)

	log.WithComponent("gif").Warn("slow")
	got := errOut.String()
	if !strings.HasPrefix(got, colorYellow) || !strings.Contains(got, colorCyan+"[gif]") {
		t.Errorf("expected colored output, got %q", got)
	}
}

func TestNew_Quiet(t *testing.T) {
	if _, ok := New(ports.LevelDebug, true).(*NoopLogger); !ok {
		t.Error("expected NoopLogger when quiet")
	}
	if _, ok := New(ports.LevelQuiet, false).(*NoopLogger); !ok {
		t.Error("expected NoopLogger at quiet level")
	}
	if _, ok := New(ports.LevelWarn, false).(*ConsoleLogger); !ok {
		t.Error("expected ConsoleLogger")
	}
}
