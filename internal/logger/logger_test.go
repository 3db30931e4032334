package logger

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

// Must stay first: later tests replace the global logger.
func TestLogDiscardsBeforeInit(t *testing.T) {
	if Log.Core().Enabled(zapcore.ErrorLevel) {
		t.Fatal("expected the default logger to discard every level")
	}
	if Sugar == nil {
		t.Fatal("expected a sugared logger before Init")
	}

	// helpers must be safe before Init
	Debug("dropped")
	Warn("dropped")
	Error("dropped")
	Named("asc").Info("dropped")
	Sync()
}

// captureStd swaps os.Stdout and os.Stderr for pipes while fn runs and
// returns what was written to each.
func captureStd(t *testing.T, fn func()) (stdout, stderr string) {
	t.Helper()

	outR, outW, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	errR, errW, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}

	origOut, origErr := os.Stdout, os.Stderr
	os.Stdout, os.Stderr = outW, errW
	defer func() { os.Stdout, os.Stderr = origOut, origErr }()

	fn()

	outW.Close()
	errW.Close()
	o, _ := io.ReadAll(outR)
	e, _ := io.ReadAll(errR)
	return string(o), string(e)
}

func TestConsoleWritesToStderr(t *testing.T) {
	stdout, stderr := captureStd(t, func() {
		if err := Init("info", ""); err != nil {
			t.Fatalf("failed to init logger: %v", err)
		}
		Named("asc").Warn("quantization sign flip")
		Info("converted grid")
		Debug("hidden at info")
		Sync()
	})

	if stdout != "" {
		t.Errorf("stdout is reserved for points, got %q", stdout)
	}
	for _, want := range []string{"asc", "quantization sign flip", "converted grid"} {
		if !strings.Contains(stderr, want) {
			t.Errorf("expected %q on stderr, got %q", want, stderr)
		}
	}
	if strings.Contains(stderr, "hidden at info") {
		t.Error("debug entry should be filtered at info level")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    zapcore.Level
		wantErr bool
	}{
		{"", zapcore.InfoLevel, false},
		{"debug", zapcore.DebugLevel, false},
		{"info", zapcore.InfoLevel, false},
		{"warn", zapcore.WarnLevel, false},
		{"ERROR", zapcore.ErrorLevel, false},
		{"loud", 0, true},
		{"verbose", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseLevel(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error for level %q", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestInitRejectsUnknownLevel(t *testing.T) {
	before := Log
	if err := Init("loud", ""); err == nil {
		t.Fatal("expected error for unknown level")
	}
	if Log != before {
		t.Error("a failed Init must keep the previous logger")
	}
}

func TestFileLevelFiltering(t *testing.T) {
	tests := []struct {
		level    string
		expected []string
		excluded []string
	}{
		{"error", []string{"overflow total"}, []string{"sign flip", "converted", "header parsed"}},
		{"warn", []string{"overflow total", "sign flip"}, []string{"converted", "header parsed"}},
		{"debug", []string{"overflow total", "sign flip", "converted", "header parsed"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logFile := filepath.Join(t.TempDir(), "asctool.log")
			cfg := FileConfig{Path: logFile, MaxSizeMB: 1}

			if err := InitWithFileConfig(tt.level, cfg, false); err != nil {
				t.Fatalf("failed to init logger: %v", err)
			}

			log := Named("asc")
			log.Debug("header parsed")
			log.Info("converted")
			log.Warn("sign flip")
			log.Error("overflow total")
			Sync()

			content, err := os.ReadFile(logFile)
			if err != nil {
				t.Fatalf("failed to read log file: %v", err)
			}
			out := string(content)

			if !strings.Contains(out, "asc") {
				t.Errorf("expected logger name in file output, got %q", out)
			}
			for _, exp := range tt.expected {
				if !strings.Contains(out, exp) {
					t.Errorf("expected %q in log output", exp)
				}
			}
			for _, exc := range tt.excluded {
				if strings.Contains(out, exc) {
					t.Errorf("unexpected %q in log output for level %s", exc, tt.level)
				}
			}
		})
	}
}

func TestFileRotation(t *testing.T) {
	dir := t.TempDir()
	logFile := filepath.Join(dir, "asctool.log")

	cfg := FileConfig{Path: logFile, MaxSizeMB: 1, MaxBackups: 2, MaxAgeDays: 1}
	if err := InitWithFileConfig("info", cfg, false); err != nil {
		t.Fatalf("failed to init logger: %v", err)
	}

	row := strings.Repeat("9999.99 ", 25)
	for i := 0; i < 6000; i++ {
		Sugar.Infof("row %d: %s", i, row)
	}
	Sync()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("failed to read log dir: %v", err)
	}
	if len(entries) < 2 {
		t.Errorf("expected a rotated backup next to %s, got %d files", logFile, len(entries))
	}
}

func TestDefaultFileConfig(t *testing.T) {
	cfg := DefaultFileConfig("/tmp/asctool.log")

	if cfg.Path != "/tmp/asctool.log" {
		t.Errorf("expected path /tmp/asctool.log, got %s", cfg.Path)
	}
	if cfg.MaxSizeMB != 50 || cfg.MaxBackups != 3 || cfg.MaxAgeDays != 7 || !cfg.Compress {
		t.Errorf("unexpected rotation defaults %+v", cfg)
	}
}
