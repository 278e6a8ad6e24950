package log

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	scierrors "github.com/YuminosukeSato/covidrank/pkg/errors"
)

func TestTestLogger(t *testing.T) {
	testLogger, buffer := NewTestLogger(LevelDebug)

	testLogger.Debug("debug message", "key1", "value1", "number", 42)
	testLogger.Info("info message", OperationKey, OperationScore)
	testLogger.Warn("warning message")
	testLogger.Error("error message", fmt.Errorf("boom"), ErrorCodeKey, ErrorShapeMismatch)

	require.NotEmpty(t, buffer.String())
	assert.True(t, testLogger.ContainsMessage("debug message"))
	assert.True(t, testLogger.ContainsMessage("error message"))
	assert.True(t, testLogger.ContainsField("key1", "value1"))
	assert.True(t, testLogger.ContainsField("number", 42.0)) // JSON numbers decode as float64
	assert.True(t, testLogger.ContainsField(ErrAttrKey, "boom"))
	assert.True(t, testLogger.ContainsField(ErrorCodeKey, ErrorShapeMismatch))
}

func TestTestLoggerLevels(t *testing.T) {
	testLogger, _ := NewTestLogger(LevelInfo)
	ctx := context.Background()

	assert.True(t, testLogger.Enabled(ctx, LevelInfo))
	assert.True(t, testLogger.Enabled(ctx, LevelError))
	assert.False(t, testLogger.Enabled(ctx, LevelDebug))

	testLogger.Debug("this should not appear")
	testLogger.Info("this should appear")

	assert.False(t, testLogger.ContainsMessage("this should not appear"))
	assert.True(t, testLogger.ContainsMessage("this should appear"))
}

func TestTestLoggerWith(t *testing.T) {
	testLogger, _ := NewTestLogger(LevelDebug)

	child := testLogger.With(ModelNameKey, "LinearRegression", ComponentKey, "linear")
	child.Info("fitted", SamplesKey, 50, FeaturesKey, 3)

	entries, err := testLogger.GetLogEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)

	entry := entries[0]
	assert.Equal(t, "LinearRegression", entry[ModelNameKey])
	assert.Equal(t, "linear", entry[ComponentKey])
	assert.Equal(t, 50.0, entry[SamplesKey])
	assert.Equal(t, "INFO", entry["level"])
}

func TestZerologLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologLogger(&buf, LevelInfo)

	logger.Debug("hidden")
	logger.With(ComponentKey, "model_selection").Info("step accepted",
		IterationKey, 2,
		LossKey, 0.5,
		"dangling",
	)
	logger.Error("failed", scierrors.New("bad input"), OperationKey, OperationScore)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var first map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "info", first["level"])
	assert.Equal(t, "step accepted", first["message"])
	assert.Equal(t, "model_selection", first[ComponentKey])
	assert.Equal(t, 2.0, first[IterationKey])
	assert.NotContains(t, first, "dangling")

	var second map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
	assert.Equal(t, "error", second["level"])
	assert.Equal(t, "bad input", second["error"])
	assert.Equal(t, OperationScore, second[OperationKey])

	ctx := context.Background()
	assert.False(t, logger.Enabled(ctx, LevelDebug))
	assert.True(t, logger.Enabled(ctx, LevelWarn))
}

func TestProviderRoutesWarnings(t *testing.T) {
	var buf bytes.Buffer
	SetProvider(NewZerologProvider(&buf, LevelDebug))
	defer SetProvider(NewZerologProvider(&bytes.Buffer{}, LevelWarn))

	scierrors.Warn(scierrors.NewUndefinedMetricWarning("R2Score", "zero variance in yTrue", math.NaN()))

	out := buf.String()
	assert.Contains(t, out, `"type":"UndefinedMetricWarning"`)
	assert.Contains(t, out, `"ml.component":"warnings"`)

	buf.Reset()
	GetLoggerWithName("linear").Debug("named")
	assert.Contains(t, buf.String(), `"ml.component":"linear"`)

	buf.Reset()
	SetLevel(LevelError)
	GetLogger().Info("suppressed")
	assert.Empty(t, buf.String())
}

func TestErrFmtHandler(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(WrapByErrFmtHandler(slog.NewJSONHandler(&buf, nil)))

	err := scierrors.NewShapeMismatchError("NewDataset", 3, 2, 0)
	logger.Error("dataset rejected", ErrAttr(err))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "*errors.ShapeMismatchError", entry[ErrorTypeKey])
	assert.Contains(t, entry, StacktraceAttrKey)
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
		{"warning", LevelWarn, false},
		{"error", LevelError, false},
		{"verbose", LevelInfo, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
