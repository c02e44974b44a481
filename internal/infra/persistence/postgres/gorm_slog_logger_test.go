package postgres

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"farmweather/config"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newCapturedGormLogger(cfg *config.Config) (logger.Interface, *bytes.Buffer) {
	var buf bytes.Buffer
	baseLogger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	return newGormSlogLogger(baseLogger, cfg), &buf
}

func sqlAndRows(sql string, rows int64) func() (string, int64) {
	return func() (string, int64) { return sql, rows }
}

func TestGormSlogLogger_QueryErrorGoesThroughSlog(t *testing.T) {
	gormLogger, buf := newCapturedGormLogger(&config.Config{})

	gormLogger.Trace(context.Background(), time.Now(),
		sqlAndRows("INSERT INTO accounts", 0), errors.New("duplicate key"))

	out := buf.String()
	assert.Contains(t, out, "GORM query failed")
	assert.Contains(t, out, "duplicate key")
	assert.Contains(t, out, "INSERT INTO accounts")
}

func TestGormSlogLogger_RecordNotFoundIsSuppressed(t *testing.T) {
	gormLogger, buf := newCapturedGormLogger(&config.Config{})

	gormLogger.Trace(context.Background(), time.Now(),
		sqlAndRows("SELECT * FROM accounts", 0), gorm.ErrRecordNotFound)

	assert.Empty(t, buf.String())
}

func TestGormSlogLogger_SlowQueryWarns(t *testing.T) {
	gormLogger, buf := newCapturedGormLogger(&config.Config{})

	begin := time.Now().Add(-2 * defaultGormSlowThreshold)
	gormLogger.Trace(context.Background(), begin,
		sqlAndRows("SELECT * FROM sessions", 1), nil)

	out := buf.String()
	assert.Contains(t, out, "GORM slow query")
	assert.Contains(t, out, "slowThreshold")
}

func TestGormSlogLogger_FastQuerySilentUnlessDebug(t *testing.T) {
	gormLogger, buf := newCapturedGormLogger(&config.Config{})

	gormLogger.Trace(context.Background(), time.Now(),
		sqlAndRows("SELECT 1", 1), nil)

	assert.Empty(t, buf.String())

	debugCfg := &config.Config{}
	debugCfg.Env.Debug = true
	gormLogger, buf = newCapturedGormLogger(debugCfg)

	gormLogger.Trace(context.Background(), time.Now(),
		sqlAndRows("SELECT 1", 1), nil)

	assert.Contains(t, buf.String(), "GORM query")
}

func TestGormSlogLogger_LogModeReturnsClone(t *testing.T) {
	gormLogger, buf := newCapturedGormLogger(&config.Config{})

	silenced := gormLogger.LogMode(logger.Silent)
	silenced.Trace(context.Background(), time.Now(),
		sqlAndRows("SELECT 1", 1), errors.New("boom"))
	assert.Empty(t, buf.String())

	// The original keeps its level.
	gormLogger.Trace(context.Background(), time.Now(),
		sqlAndRows("SELECT 1", 1), errors.New("boom"))
	require.Contains(t, buf.String(), "GORM query failed")
}
