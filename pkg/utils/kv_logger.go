package utils

import "go.uber.org/zap"

// KVLogger exposes the key/value Info and Error methods the application and
// HTTP layers log through, backed by a sugared zap logger
type KVLogger struct {
	sugar *zap.SugaredLogger
}

// NewKVLogger wraps logger. A nil logger logs nothing.
func NewKVLogger(logger *zap.Logger) *KVLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &KVLogger{sugar: logger.Sugar()}
}

// Info logs msg with alternating key/value pairs
func (l *KVLogger) Info(msg string, keysAndValues ...interface{}) {
	l.sugar.Infow(msg, keysAndValues...)
}

// Error logs msg with alternating key/value pairs
func (l *KVLogger) Error(msg string, keysAndValues ...interface{}) {
	l.sugar.Errorw(msg, keysAndValues...)
}
