//go:build unit

package zap

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	logpkg "github.com/nevware21/tripwire-go/tripwire/log"
)

func newObserved(level zapcore.Level) (*Logger, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return New(zap.New(core)), logs
}

func TestLog_DispatchesLevels(t *testing.T) {
	t.Parallel()

	logger, logs := newObserved(zapcore.DebugLevel)

	logger.Log(context.Background(), logpkg.LevelError, "e")
	logger.Log(context.Background(), logpkg.LevelWarn, "w")
	logger.Log(context.Background(), logpkg.LevelInfo, "i")
	logger.Log(context.Background(), logpkg.LevelDebug, "d")

	entries := logs.All()
	require.Len(t, entries, 4)
	require.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	require.Equal(t, zapcore.WarnLevel, entries[1].Level)
	require.Equal(t, zapcore.InfoLevel, entries[2].Level)
	require.Equal(t, zapcore.DebugLevel, entries[3].Level)
}

func TestLog_FieldsAreConverted(t *testing.T) {
	t.Parallel()

	logger, logs := newObserved(zapcore.DebugLevel)
	logger.Log(context.Background(), logpkg.LevelError, "failed",
		logpkg.String("assertion", "equal"),
		logpkg.Int("expected", 3),
	)

	entries := logs.All()
	require.Len(t, entries, 1)

	fields := entries[0].ContextMap()
	require.Equal(t, "equal", fields["assertion"])
	require.EqualValues(t, 3, fields["expected"])
}

func TestWith_AddsPersistentFields(t *testing.T) {
	t.Parallel()

	logger, logs := newObserved(zapcore.DebugLevel)
	child := logger.With(logpkg.String("component", "scope"))
	child.Log(context.Background(), logpkg.LevelInfo, "m")

	entries := logs.All()
	require.Len(t, entries, 1)
	require.Equal(t, "scope", entries[0].ContextMap()["component"])
}

func TestEnabled_RespectsCoreLevel(t *testing.T) {
	t.Parallel()

	logger, _ := newObserved(zapcore.WarnLevel)
	require.True(t, logger.Enabled(logpkg.LevelError))
	require.True(t, logger.Enabled(logpkg.LevelWarn))
	require.False(t, logger.Enabled(logpkg.LevelInfo))
}

func TestNilLogger_IsSafe(t *testing.T) {
	t.Parallel()

	var logger *Logger
	logger.Log(context.Background(), logpkg.LevelError, "dropped")
	require.False(t, logger.Enabled(logpkg.LevelDebug))
	require.NotNil(t, logger.Raw())
}
