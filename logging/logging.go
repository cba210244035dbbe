// Package logging provides the process-wide structured logger every
// package that can fail softly (evaluator, scene controller, navmesh
// builder) logs through rather than panicking, modeled on the osm2pgsql
// importer's zap + lumberjack setup.
package logging

import (
	"os"
	"sync"

	"github.com/natefinch/lumberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logger *zap.Logger
	once   sync.Once
)

// Init sets up console-only logging. debug selects DebugLevel over
// InfoLevel.
func Init(debug bool) {
	once.Do(func() { logger = initLogger(debug, "") })
}

// InitWithFile sets up console plus rotated file logging at logFile.
func InitWithFile(debug bool, logFile string) {
	once.Do(func() { logger = initLogger(debug, logFile) })
}

func initLogger(debug bool, logFile string) *zap.Logger {
	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	consoleCore := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.Lock(zapcore.AddSync(os.Stdout)),
		level,
	)

	cores := []zapcore.Core{consoleCore}
	if logFile != "" {
		rotator := &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    50,
			MaxBackups: 5,
			MaxAge:     30,
		}
		fileCore := zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), zapcore.AddSync(rotator), level)
		cores = append(cores, fileCore)
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller())
}

// Get returns the process logger, initializing a default console-only one
// at Info level if Init/InitWithFile was never called.
func Get() *zap.Logger {
	once.Do(func() { logger = initLogger(false, "") })
	return logger
}

// Sync flushes any buffered log entries.
func Sync() error {
	if logger == nil {
		return nil
	}
	return logger.Sync()
}
