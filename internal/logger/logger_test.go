package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestLogger_Levels(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		wantDebug bool
	}{
		{name: "debug level emits debug", level: "debug", wantDebug: true},
		{name: "info level hides debug", level: "info", wantDebug: false},
		{name: "unknown level falls back to info", level: "loud", wantDebug: false},
		{name: "empty level falls back to info", level: "", wantDebug: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := NewWithWriter(&buf, tt.level, "json")
			log.Debugf("debug %d", 1)
			log.Info("info line")

			out := buf.String()
			if got := strings.Contains(out, "debug 1"); got != tt.wantDebug {
				t.Errorf("debug emitted = %v, want %v (output %q)", got, tt.wantDebug, out)
			}
			if !strings.Contains(out, "info line") {
				t.Errorf("info line missing from %q", out)
			}
		})
	}
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "info", "json").With("pr", 42)
	log.Infof("labelled %s", "size/XS")

	out := buf.String()
	if !strings.Contains(out, `"pr":42`) {
		t.Errorf("expected field in output, got %q", out)
	}
	if !strings.Contains(out, "labelled size/XS") {
		t.Errorf("expected message in output, got %q", out)
	}
}
