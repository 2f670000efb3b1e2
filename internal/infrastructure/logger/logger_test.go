package logger

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, "console", cfg.Format)
	assert.Equal(t, "stdout", cfg.Output)
	assert.Equal(t, DefaultLogFile, cfg.File)
	assert.NotEmpty(t, cfg.TimeFormat)
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *Config
		wantErr bool
	}{
		{
			name: "console without file",
			cfg:  &Config{Level: "info", Format: "console", Output: "stdout"},
		},
		{
			name: "json to stderr",
			cfg:  &Config{Level: "debug", Format: "json", Output: "stderr"},
		},
		{
			name:    "unknown output",
			cfg:     &Config{Level: "info", Format: "console", Output: "syslog"},
			wantErr: true,
		},
		{
			name:    "unwritable file",
			cfg:     &Config{Level: "info", Format: "console", Output: "stdout", File: filepath.Join(t.TempDir(), "missing", "wunder.log")},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, logger)
		})
	}
}

func TestNew_WritesFileWithoutColor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wunder.log")
	logger, err := New(&Config{Level: "debug", Format: "console", Output: "stderr", File: path})
	require.NoError(t, err)

	logger.Warn("pulled orders", zap.Int("count", 3))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "pulled orders")
	assert.Contains(t, out, `"count": 3`)
	assert.False(t, strings.Contains(out, "\x1b["), "file output must not contain color codes")
}

func TestNew_AppendsToExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wunder.log")
	require.NoError(t, os.WriteFile(path, []byte("previous run\n"), 0o644))

	logger, err := New(&Config{Level: "info", Format: "json", Output: "stderr", File: path})
	require.NoError(t, err)
	logger.Info("second run")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "previous run\n"))
	assert.Contains(t, string(data), `"msg":"second run"`)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"DEBUG", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"unknown", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLevel(tt.input))
		})
	}
}

func TestCreateWriter(t *testing.T) {
	for _, output := range []string{"", "stdout", "STDOUT", "stderr"} {
		w, err := createWriter(output)
		require.NoError(t, err)
		assert.NotNil(t, w)
	}

	_, err := createWriter("/var/log/wunder.log")
	assert.Error(t, err)
}

func TestContextLogger(t *testing.T) {
	t.Run("missing run id", func(t *testing.T) {
		assert.Empty(t, GetRunID(context.Background()))
	})

	t.Run("run id", func(t *testing.T) {
		core, logs := observer.New(zap.InfoLevel)
		ctx, l := WithRunID(context.Background(), zap.New(core))
		require.NotNil(t, l)
		assert.Len(t, GetRunID(ctx), 36)

		l.Info("hello")
		require.Equal(t, 1, logs.Len())
		assert.Equal(t, GetRunID(ctx), logs.All()[0].ContextMap()["run_id"])

		ctx2, _ := WithRunID(context.Background(), zap.NewNop())
		assert.NotEqual(t, GetRunID(ctx), GetRunID(ctx2))
	})

	t.Run("trace correlation", func(t *testing.T) {
		traceID, _ := trace.TraceIDFromHex("0102030405060708090a0b0c0d0e0f10")
		spanID, _ := trace.SpanIDFromHex("0102030405060708")
		sc := trace.NewSpanContext(trace.SpanContextConfig{TraceID: traceID, SpanID: spanID, TraceFlags: trace.FlagsSampled})
		ctx := trace.ContextWithSpanContext(context.Background(), sc)

		base := zap.NewNop()
		assert.Same(t, base, WithTraceContext(context.Background(), base))
		assert.NotSame(t, base, WithTraceContext(ctx, base))
	})
}
