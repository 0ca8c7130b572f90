package logging

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
)

type LoggerFactory interface {
	CreateLogger(ctx context.Context) Logger
}

// NewLogrusFactory builds loggers backed by a shared logrus instance so the
// process-wide level and output configuration apply everywhere.
func NewLogrusFactory(logger *logrus.Logger) LoggerFactory {
	return &logrusFactory{logger: logger}
}

type logrusFactory struct {
	logger *logrus.Logger
}

func (f *logrusFactory) CreateLogger(ctx context.Context) Logger {
	return &logrusLogger{entry: f.logger.WithContext(ctx)}
}

var (
	loggerFactoryMu sync.RWMutex
	loggerFactory   LoggerFactory
)

func SetLoggerFactory(factory LoggerFactory) {
	loggerFactoryMu.Lock()
	defer loggerFactoryMu.Unlock()

	loggerFactory = factory
}

func GetLoggerFactory() LoggerFactory {
	loggerFactoryMu.RLock()
	defer loggerFactoryMu.RUnlock()

	return loggerFactory
}
