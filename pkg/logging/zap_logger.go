package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ZapLogger struct {
	sugarLogger *zap.SugaredLogger
}

var _ Logger = (*ZapLogger)(nil)

// NewZapLogger builds a logger that writes to stdout and to a daily file under
// <data>/logs/<process>/.
func NewZapLogger(config LoggerConfig) (*ZapLogger, error) {
	logDir := filepath.Join(getBaseDataDir(), LogsDir, string(config.ProcessName))
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	logPath := filepath.Join(logDir, time.Now().Format(LogFileFormat)+".log")
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	level := zap.NewAtomicLevelAt(getLogLevel(config.IsDevelopment))

	fileEncoderConfig := zap.NewProductionEncoderConfig()
	fileEncoderConfig.TimeKey = "timestamp"
	fileEncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout(TimeFormat)

	consoleEncoderConfig := fileEncoderConfig
	consoleEncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
	if config.IsDevelopment {
		consoleEncoderConfig.EncodeLevel = customColorLevelEncoder
	}

	var consoleEncoder zapcore.Encoder
	if config.IsDevelopment {
		consoleEncoder = zapcore.NewConsoleEncoder(consoleEncoderConfig)
	} else {
		consoleEncoder = zapcore.NewJSONEncoder(consoleEncoderConfig)
	}

	core := zapcore.NewTee(
		zapcore.NewCore(consoleEncoder, zapcore.Lock(os.Stdout), level),
		zapcore.NewCore(zapcore.NewJSONEncoder(fileEncoderConfig), zapcore.AddSync(file), level),
	)

	logger := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)).
		With(zap.String("process", string(config.ProcessName)))

	return &ZapLogger{sugarLogger: logger.Sugar()}, nil
}

func getLogLevel(isDevelopment bool) zapcore.Level {
	if isDevelopment {
		return zapcore.DebugLevel
	}
	return zapcore.InfoLevel
}

func customColorLevelEncoder(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	var color, label string
	switch level {
	case zapcore.DebugLevel:
		color, label = colorBlue, "DBG"
	case zapcore.InfoLevel:
		color, label = colorGreen, "INF"
	case zapcore.WarnLevel:
		color, label = colorYellow, "WRN"
	case zapcore.ErrorLevel:
		color, label = colorRed, "ERR"
	case zapcore.FatalLevel:
		color, label = colorMagenta, "FTL"
	default:
		color, label = colorWhite, "???"
	}
	enc.AppendString(color + label + colorReset)
}

func (z *ZapLogger) Debug(msg string, tags ...any) {
	z.sugarLogger.Debugw(msg, tags...)
}

func (z *ZapLogger) Info(msg string, tags ...any) {
	z.sugarLogger.Infow(msg, tags...)
}

func (z *ZapLogger) Warn(msg string, tags ...any) {
	z.sugarLogger.Warnw(msg, tags...)
}

func (z *ZapLogger) Error(msg string, tags ...any) {
	z.sugarLogger.Errorw(msg, tags...)
}

func (z *ZapLogger) Fatal(msg string, tags ...any) {
	z.sugarLogger.Fatalw(msg, tags...)
}

func (z *ZapLogger) Debugf(template string, args ...interface{}) {
	z.sugarLogger.Debugf(template, args...)
}

func (z *ZapLogger) Infof(template string, args ...interface{}) {
	z.sugarLogger.Infof(template, args...)
}

func (z *ZapLogger) Warnf(template string, args ...interface{}) {
	z.sugarLogger.Warnf(template, args...)
}

func (z *ZapLogger) Errorf(template string, args ...interface{}) {
	z.sugarLogger.Errorf(template, args...)
}

func (z *ZapLogger) Fatalf(template string, args ...interface{}) {
	z.sugarLogger.Fatalf(template, args...)
}

func (z *ZapLogger) With(tags ...any) Logger {
	return &ZapLogger{sugarLogger: z.sugarLogger.With(tags...)}
}

// Sync flushes buffered entries. Errors from syncing stdout are ignored.
func (z *ZapLogger) Sync() {
	_ = z.sugarLogger.Sync()
}
