package log

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func fixedLogger(buf *bytes.Buffer, level Level) *Logger {
	l := New(buf, level)
	l.now = func() time.Time {
		return time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)
	}
	return l
}

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{Level(99), "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("Level(%d).String() = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"", LevelInfo, false},
		{"Warning", LevelWarn, false},
		{"error", LevelError, false},
		{"loud", LevelInfo, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLogger_Format(t *testing.T) {
	var buf bytes.Buffer
	l := fixedLogger(&buf, LevelDebug).With("session", "abc")

	l.Info(CatEdit, "applied", "offset", 12, "delta", -3)

	want := "2026-01-02T15:04:05.000 [INFO] [edit] applied session=abc offset=12 delta=-3\n"
	if got := buf.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestLogger_OddFields(t *testing.T) {
	var buf bytes.Buffer
	l := fixedLogger(&buf, LevelDebug)

	l.Warn(CatConfig, "odd", "path")

	if !strings.HasSuffix(buf.String(), " path=<missing>\n") {
		t.Errorf("unexpected line %q", buf.String())
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := fixedLogger(&buf, LevelWarn)

	l.Debug(CatLexer, "relex")
	l.Info(CatLexer, "relex")
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}

	l.ErrorErr(CatDialect, "reload failed", os.ErrNotExist)
	if !strings.Contains(buf.String(), "[ERROR] [dialect] reload failed error=file does not exist") {
		t.Errorf("unexpected line %q", buf.String())
	}
}

func TestLogger_WithDoesNotLeak(t *testing.T) {
	var buf bytes.Buffer
	base := fixedLogger(&buf, LevelDebug)
	_ = base.With("a", 1)

	base.Debug(CatInput, "plain")
	if strings.Contains(buf.String(), "a=1") {
		t.Errorf("parent logger picked up child field: %q", buf.String())
	}
}

func TestDiscardAndNil(t *testing.T) {
	Discard().Error(CatEdit, "dropped")

	var l *Logger
	if l.Enabled(LevelError) {
		t.Error("nil logger should not be enabled")
	}
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sqledit.log")
	l, closeFn, err := Open(path, LevelInfo)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	l.Info(CatConfig, "loaded")
	if err := closeFn(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "[INFO] [config] loaded") {
		t.Errorf("log file = %q", data)
	}
}
