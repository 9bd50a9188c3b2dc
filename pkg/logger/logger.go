package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the process-wide logger. Nil until Init is called, so callers in
// middleware guard against it during early startup.
var Log *zap.Logger

// Init builds the global logger. Debug mode uses the human-readable console
// encoder, everything else logs JSON at info level.
func Init(debug bool) {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "ts"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	l, err := cfg.Build(zap.AddCallerSkip(0))
	if err != nil {
		panic(err)
	}
	Log = l
}

// Sync flushes buffered entries. Safe to call with a nil logger.
func Sync() {
	if Log != nil {
		_ = Log.Sync()
	}
}
