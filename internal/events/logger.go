package events

import (
	"github.com/ThreeDotsLabs/watermill"
	"go.uber.org/zap"
)

// ZapLogger adapts a zap logger to watermill.
type ZapLogger struct {
	l *zap.Logger
}

func NewZapLogger(l *zap.Logger) *ZapLogger {
	return &ZapLogger{l: l}
}

func (z *ZapLogger) Error(msg string, err error, fields watermill.LogFields) {
	z.l.Error(msg, append(zapFields(fields), zap.Error(err))...)
}

func (z *ZapLogger) Info(msg string, fields watermill.LogFields) {
	z.l.Info(msg, zapFields(fields)...)
}

func (z *ZapLogger) Debug(msg string, fields watermill.LogFields) {
	z.l.Debug(msg, zapFields(fields)...)
}

// Trace maps to debug; zap has no finer level.
func (z *ZapLogger) Trace(msg string, fields watermill.LogFields) {
	z.l.Debug(msg, zapFields(fields)...)
}

func (z *ZapLogger) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return &ZapLogger{l: z.l.With(zapFields(fields)...)}
}

func zapFields(fields watermill.LogFields) []zap.Field {
	out := make([]zap.Field, 0, len(fields))
	for k, v := range fields {
		out = append(out, zap.Any(k, v))
	}

	return out
}
