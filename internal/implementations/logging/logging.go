package logging

import (
	"context"
	"fintrack/internal/core/domain/logging"

	"go.uber.org/zap"
)

type ZapLogger struct {
	logger *zap.Logger
	sugar  *zap.SugaredLogger
}

func NewZapLogger(isDebug bool) *ZapLogger {
	config := zap.NewProductionConfig()
	if isDebug {
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	logger, err := config.Build(zap.AddCallerSkip(1))
	if err != nil {
		panic("Could not create Zap logger.")
	}
	return &ZapLogger{logger: logger, sugar: logger.Sugar()}
}

func (l *ZapLogger) Sync() {
	l.logger.Sync()
}

func (l *ZapLogger) Debug(ctx context.Context, msg string, entries ...logging.LogEntry) {
	l.sugar.Debugw(msg, prepareArgs(entries...)...)
}

func (l *ZapLogger) Info(ctx context.Context, msg string, entries ...logging.LogEntry) {
	l.sugar.Infow(msg, prepareArgs(entries...)...)
}

func (l *ZapLogger) Warning(ctx context.Context, msg string, entries ...logging.LogEntry) {
	l.sugar.Warnw(msg, prepareArgs(entries...)...)
}

func (l *ZapLogger) Error(ctx context.Context, msg string, entries ...logging.LogEntry) {
	l.sugar.Errorw(msg, prepareArgs(entries...)...)
}

func prepareArgs(entries ...logging.LogEntry) []interface{} {
	args := make([]interface{}, 0, len(entries)*2)
	for _, e := range entries {
		args = append(args, e.Key, e.Value)
	}
	return args
}
