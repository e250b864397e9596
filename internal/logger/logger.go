// internal/logger/logger.go
//
// Structured JSON logging for the lab site (Zap + Lumberjack).
//
// One JSON log file per day under `<root>/logs/YYYY-MM-DD.log`, rotated
// and compressed by Lumberjack so no external logrotate job is needed.
// Interactive runs (`labsite serve` from a terminal) additionally tee a
// console-encoded copy to stdout.
//
// The returned sugared logger is also installed as the process-wide
// default, so packages without an injected logger can fall back to
// zap.L() / zap.S().
package logger

import (
	"os"
	"path/filepath"
	"time"

	"github.com/natefinch/lumberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	maxSizeMB  = 50
	maxBackups = 7
	maxAgeDays = 14
)

// New opens today's log file under <rootDir>/logs and returns a sugared
// logger writing JSON to it.  With tee set, events also go to stdout in
// console form.
func New(rootDir string, tee bool) (*zap.SugaredLogger, error) {
	sink, err := dailySink(filepath.Join(rootDir, "logs"))
	if err != nil {
		return nil, err
	}

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig()), sink, zap.InfoLevel),
	}
	if tee {
		cores = append(cores,
			zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig()), zapcore.AddSync(os.Stdout), zap.InfoLevel))
	}

	z := zap.New(zapcore.NewTee(cores...), zap.ErrorOutput(sink)).Sugar()
	zap.ReplaceGlobals(z.Desugar())

	z.Infow("logger online", "tee", tee)
	return z, nil
}

// dailySink creates the log directory and wraps today's file in a
// rotating writer.
func dailySink(dir string) (zapcore.WriteSyncer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	name := time.Now().Format("2006-01-02") + ".log"
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   filepath.Join(dir, name),
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
		Compress:   true,
	}), nil
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:      "ts",
		LevelKey:     "level",
		MessageKey:   "msg",
		CallerKey:    "caller",
		EncodeTime:   zapcore.ISO8601TimeEncoder,
		EncodeLevel:  zapcore.LowercaseLevelEncoder,
		EncodeCaller: zapcore.ShortCallerEncoder,
	}
}
