package logging

import (
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type LogConfig struct {
	Level        zapcore.Level `json:"level" yaml:"level"`               // minimum level to collect, DEBUG<INFO<WARN<ERROR<FATAL
	FileName     string        `json:"fileName" yaml:"fileName"`         // log file location
	MaxSize      int           `json:"maxSize" yaml:"maxSize"`           // max size in MB before the file is rotated
	MaxAge       int           `json:"maxAge" yaml:"maxAge"`             // max days to retain rotated files
	MaxBackups   int           `json:"maxBackups" yaml:"maxBackups"`     // max number of rotated files to keep
	IsStdout     bool          `json:"isStdout" yaml:"isStdout"`         // tee log output to stdout
	IsStackTrace bool          `json:"isStackTrace" yaml:"isStackTrace"` // attach stacktraces to error logs
}

// InitLogger builds the process-wide logger and installs it via
// zap.ReplaceGlobals; everything else obtains it with zap.L().
func InitLogger(lCfg *LogConfig) error {
	writeSyncer := getLogWriter(lCfg.FileName, lCfg.MaxSize, lCfg.MaxBackups, lCfg.MaxAge, lCfg.IsStdout)
	encoder := getEncoder()

	core := zapcore.NewCore(encoder, writeSyncer, lCfg.Level)
	var logger *zap.Logger
	if lCfg.IsStackTrace {
		logger = zap.New(core, zap.AddCaller(), zap.AddStacktrace(zap.ErrorLevel))
	} else {
		logger = zap.New(core, zap.AddCaller())
	}
	zap.ReplaceGlobals(logger)
	return nil
}

func getEncoder() zapcore.Encoder {
	encodeConfig := zap.NewProductionEncoderConfig()
	encodeConfig.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(t.Format("2006-01-02 15:04:05.000"))
	}
	encodeConfig.TimeKey = "time"
	encodeConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	encodeConfig.EncodeCaller = zapcore.ShortCallerEncoder
	return zapcore.NewJSONEncoder(encodeConfig)
}

func getLogWriter(filename string, maxsize, maxBackup, maxAge int, isStdout bool) zapcore.WriteSyncer {
	lumberJackLogger := &lumberjack.Logger{
		Filename:   filename,
		MaxSize:    maxsize,
		MaxAge:     maxAge,
		MaxBackups: maxBackup,
		Compress:   true,
	}
	if isStdout {
		return zapcore.NewMultiWriteSyncer(zapcore.AddSync(lumberJackLogger), zapcore.AddSync(os.Stdout))
	}
	return zapcore.AddSync(lumberJackLogger)
}
