package api

import (
	"fmt"

	"github.com/julianstephens/habitflow/internal/logger"
)

// restyLogger routes resty's internal messages to the application log
type restyLogger struct{}

func (restyLogger) Errorf(format string, v ...interface{}) {
	logger.Error(fmt.Sprintf(format, v...), "component", "http")
}

func (restyLogger) Warnf(format string, v ...interface{}) {
	logger.Warn(fmt.Sprintf(format, v...), "component", "http")
}

func (restyLogger) Debugf(format string, v ...interface{}) {
	logger.Debug(fmt.Sprintf(format, v...), "component", "http")
}
