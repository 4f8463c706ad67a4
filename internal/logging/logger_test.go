package logging

import (
	"bytes"
	"errors"
	"math/big"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// TestFieldHelpers verifies the Field constructors.
func TestFieldHelpers(t *testing.T) {
	testErr := errors.New("boom")
	tests := []struct {
		name      string
		field     Field
		wantKey   string
		wantValue any
	}{
		{"String", String("algo", "trial"), "algo", "trial"},
		{"Int", Int("index", 3), "index", 3},
		{"Uint64", Uint64("checks", 18446744073709551615), "checks", uint64(18446744073709551615)},
		{"Float64", Float64("ratio", 4.5), "ratio", 4.5},
		{"Bool", Bool("prime", true), "prime", true},
		{"Duration", Duration("elapsed", time.Second), "elapsed", time.Second},
		{"BigInt", BigInt("n", big.NewInt(899)), "n", "899"},
		{"BigInt nil", BigInt("n", nil), "n", ""},
		{"Err", Err(testErr), "error", testErr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.field.Key != tt.wantKey {
				t.Errorf("Key = %q, want %q", tt.field.Key, tt.wantKey)
			}
			if tt.field.Value != tt.wantValue {
				t.Errorf("Value = %v, want %v", tt.field.Value, tt.wantValue)
			}
		})
	}
}

// TestZerologAdapter_Levels verifies each level method writes message and fields.
func TestZerologAdapter_Levels(t *testing.T) {
	tests := []struct {
		name     string
		log      func(Logger)
		contains []string
	}{
		{
			name:     "info with fields",
			log:      func(l Logger) { l.Info("check done", String("algo", "wheel"), Bool("prime", true)) },
			contains: []string{"check done", "wheel", `"prime":true`, `"level":"info"`},
		},
		{
			name:     "error with cause",
			log:      func(l Logger) { l.Error("check failed", errors.New("deadline"), Int("index", 1)) },
			contains: []string{"check failed", "deadline", `"index":1`, `"level":"error"`},
		},
		{
			name:     "debug",
			log:      func(l Logger) { l.Debug("scan", BigInt("bound", big.NewInt(29))) },
			contains: []string{"scan", `"bound":"29"`, `"level":"debug"`},
		},
		{
			name:     "printf",
			log:      func(l Logger) { l.Printf("checked %d candidates", 42) },
			contains: []string{"checked 42 candidates"},
		},
		{
			name:     "println",
			log:      func(l Logger) { l.Println("hello", "world") },
			contains: []string{"hello world"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			zl := zerolog.New(&buf).Level(zerolog.DebugLevel)
			tt.log(NewZerologAdapter(zl))

			out := buf.String()
			for _, want := range tt.contains {
				if !strings.Contains(out, want) {
					t.Errorf("output %q should contain %q", out, want)
				}
			}
		})
	}
}

// TestNewLogger_Component verifies the component tag.
func TestNewLogger_Component(t *testing.T) {
	var buf bytes.Buffer
	NewLogger(&buf, "orchestration").Info("started")
	if !strings.Contains(buf.String(), `"component":"orchestration"`) {
		t.Errorf("missing component field: %s", buf.String())
	}
}

// TestNewLevelLogger_Filters verifies entries below the level are dropped.
func TestNewLevelLogger_Filters(t *testing.T) {
	var buf bytes.Buffer
	l := NewLevelLogger(&buf, "test", zerolog.WarnLevel)
	l.Info("hidden")
	l.Error("shown", errors.New("x"))

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info entry should be filtered: %s", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("error entry missing: %s", out)
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"":       zerolog.WarnLevel,
		"debug":  zerolog.DebugLevel,
		"INFO":   zerolog.InfoLevel,
		" warn ": zerolog.WarnLevel,
		"bogus":  zerolog.WarnLevel,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

// TestLoggerInterface verifies every implementation satisfies Logger.
func TestLoggerInterface(t *testing.T) {
	var _ Logger = NewLogger(&bytes.Buffer{}, "test")
	var _ Logger = Nop{}
}
