package log

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{in: "", want: InfoLevel},
		{in: "debug", want: DebugLevel},
		{in: "WARN", want: WarnLevel},
		{in: "error", want: ErrorLevel},
		{in: "loud", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseFormatter(t *testing.T) {
	tests := []struct {
		in      string
		want    Formatter
		wantErr bool
	}{
		{in: "", want: TextFormatter},
		{in: "text", want: TextFormatter},
		{in: "JSON", want: JSONFormatter},
		{in: "logfmt", want: LogfmtFormatter},
		{in: "xml", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormatter(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormatter(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseFormatter(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewWritesRunID(t *testing.T) {
	var buf bytes.Buffer
	logger := New(UseOutput(&buf), UseLevel(DebugLevel), UseFormatter(LogfmtFormatter), WithRunID())
	logger.Debug("recycled", "original", "/tmp/a")

	out := buf.String()
	if !strings.Contains(out, "run_id="+runID) {
		t.Errorf("output %q lacks run_id", out)
	}
	if !strings.Contains(out, "original=/tmp/a") {
		t.Errorf("output %q lacks attribute", out)
	}
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(UseOutput(&buf), UseLevel(WarnLevel))
	logger.Info("hidden")
	if buf.Len() != 0 {
		t.Errorf("info record written at warn level: %q", buf.String())
	}
}

func TestImportantBypassesWarnLevel(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var buf bytes.Buffer
	New(UseOutput(&buf), UseLevel(WarnLevel), UseFormatter(LogfmtFormatter), AsDefault())
	Default().Info("hidden")
	Important("bin emptied", "bin", "/tmp/bin")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info record written at warn level: %q", out)
	}
	if !strings.Contains(out, "bin emptied") || !strings.Contains(out, "bin=/tmp/bin") {
		t.Errorf("output %q lacks important record", out)
	}
}

func TestRotateWriter(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logs", "debug.log")

	w, err := NewRotateWriter(path, "100B", 2)
	if err != nil {
		t.Fatalf("NewRotateWriter() error = %v", err)
	}
	defer w.Close()

	secs := 0
	w.now = func() time.Time {
		secs++
		return time.Unix(int64(secs), 0)
	}

	line := []byte(strings.Repeat("x", 59) + "\n")
	for i := range 6 {
		if _, err := w.Write(line); err != nil {
			t.Fatalf("Write #%d error = %v", i, err)
		}
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	var rotated int
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "debug.log.") {
			rotated++
		}
	}
	if rotated != 2 {
		t.Errorf("kept %d rotated files, want 2", rotated)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() != int64(len(line)) {
		t.Errorf("current log size = %d, want %d", info.Size(), len(line))
	}
}

func TestRotateWriterInvalidSize(t *testing.T) {
	_, err := NewRotateWriter(filepath.Join(t.TempDir(), "x.log"), "lots", 1)
	if err == nil {
		t.Fatal("expected error for invalid size")
	}
	if !strings.Contains(err.Error(), "invalid max size") {
		t.Errorf("unexpected error: %v", fmt.Sprint(err))
	}
}
