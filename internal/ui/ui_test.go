package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pterm/pterm"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    pterm.LogLevel
		wantErr bool
	}{
		{in: "", want: pterm.LogLevelInfo},
		{in: "DEBUG", want: pterm.LogLevelDebug},
		{in: "trace", want: pterm.LogLevelTrace},
		{in: "warning", want: pterm.LogLevelWarn},
		{in: "off", want: pterm.LogLevelDisabled},
		{in: "loud", want: pterm.LogLevelInfo, wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseLogLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseLogLevel(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Fatalf("ParseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, pterm.LogLevelInfo)

	logger.Debug("hidden")
	logger.Info("fetched page", logger.Args("source", "HeadHunter"))

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug line written at info level: %q", out)
	}
	if !strings.Contains(out, "fetched page") || !strings.Contains(out, "HeadHunter") {
		t.Fatalf("info line missing: %q", out)
	}
}

func TestOrDiscard(t *testing.T) {
	if OrDiscard(nil) == nil {
		t.Fatalf("OrDiscard(nil) returned nil")
	}
	l := DiscardLogger()
	if OrDiscard(l) != l {
		t.Fatalf("OrDiscard should return the given logger")
	}
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf, true)
	if buf.Len() != 0 {
		t.Fatalf("silenced banner wrote %q", buf.String())
	}

	PrintBanner(&buf, false)
	if buf.Len() < len(bannerText) {
		t.Fatalf("banner too short: %d bytes", buf.Len())
	}
}

func TestColorizeSalaryKeepsText(t *testing.T) {
	pterm.DisableColor()
	defer pterm.EnableColor()

	for _, v := range []int64{50000, 150000, 250000, 350000} {
		if got := ColorizeSalary("123,456", v); !strings.Contains(got, "123,456") {
			t.Fatalf("ColorizeSalary(%d) = %q", v, got)
		}
	}
}
