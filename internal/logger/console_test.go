package logger

import (
	"bytes"
	"regexp"
	"strings"
	"testing"
)

func TestConsoleLoggerLevelFiltering(t *testing.T) {
	tests := []struct {
		name       string
		logLevel   string
		logCalls   func(cl *ConsoleLogger)
		wantLines  []string
		skipsLines []string
	}{
		{
			name:     "info level drops debug",
			logLevel: "info",
			logCalls: func(cl *ConsoleLogger) {
				cl.Debugf("skipped variant %d", 2)
				cl.Infof("scanning")
			},
			wantLines:  []string{"scanning"},
			skipsLines: []string{"skipped variant"},
		},
		{
			name:     "debug level passes everything",
			logLevel: "debug",
			logCalls: func(cl *ConsoleLogger) {
				cl.Debugf("low detail")
				cl.Warnf("read failed")
			},
			wantLines: []string{"low detail", "read failed"},
		},
		{
			name:     "error level drops warn",
			logLevel: "error",
			logCalls: func(cl *ConsoleLogger) {
				cl.Warnf("read failed")
				cl.Errorf("fatal-ish")
			},
			wantLines:  []string{"fatal-ish"},
			skipsLines: []string{"read failed"},
		},
		{
			name:     "invalid level defaults to info",
			logLevel: "loud",
			logCalls: func(cl *ConsoleLogger) {
				cl.Debugf("hidden")
				cl.Infof("shown")
			},
			wantLines:  []string{"shown"},
			skipsLines: []string{"hidden"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			cl := NewConsoleLogger(&buf, tt.logLevel)
			tt.logCalls(cl)

			out := buf.String()
			for _, want := range tt.wantLines {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
			for _, skip := range tt.skipsLines {
				if strings.Contains(out, skip) {
					t.Errorf("output should not contain %q:\n%s", skip, out)
				}
			}
		})
	}
}

func TestConsoleLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	cl := NewConsoleLogger(&buf, "info")
	cl.Warnf("error reading %s: %v", "a.bin", "permission denied")

	// [HH:MM:SS] [WARN] message
	re := regexp.MustCompile(`^\[\d{2}:\d{2}:\d{2}\] \[WARN\] error reading a\.bin: permission denied\n$`)
	if !re.MatchString(buf.String()) {
		t.Errorf("unexpected log format: %q", buf.String())
	}
}

func TestConsoleLoggerNilWriter(t *testing.T) {
	cl := NewConsoleLogger(nil, "debug")
	// Must not panic.
	cl.Infof("dropped")
	cl.Errorf("dropped")
}
