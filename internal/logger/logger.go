package logger

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/habitflow/internal/constants"
)

var (
	// Logger is the global logger instance
	Logger *log.Logger
)

// values logged under these keys are replaced before they reach any writer
var sensitiveKeys = map[string]bool{
	"token":         true,
	"password":      true,
	"authorization": true,
}

const redacted = "[redacted]"

type Config struct {
	Debug     bool
	ConfigDir string
	// Quiet keeps debug output off stderr, which the TUI owns while running.
	Quiet bool
}

// Init points the global logger at <ConfigDir>/logs/habitflow.log
func Init(cfg Config) error {
	logDir := filepath.Join(cfg.ConfigDir, "logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return err
	}

	var writer io.Writer = &lumberjack.Logger{
		Filename:   filepath.Join(logDir, constants.LogFileName),
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}
	if cfg.Debug && !cfg.Quiet {
		writer = io.MultiWriter(os.Stderr, writer)
	}

	level := log.WarnLevel
	if cfg.Debug {
		level = log.DebugLevel
	}

	Logger = log.NewWithOptions(writer, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          constants.AppName,
		// skip the helper frame
		CallerOffset: 1,
	})
	return nil
}

// redact copies keyvals, masking the value of every sensitive key
func redact(keyvals []interface{}) []interface{} {
	out := make([]interface{}, len(keyvals))
	copy(out, keyvals)
	for i := 0; i+1 < len(out); i += 2 {
		if k, ok := out[i].(string); ok && sensitiveKeys[strings.ToLower(k)] {
			out[i+1] = redacted
		}
	}
	return out
}

func Debug(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Debug(msg, redact(keyvals)...)
	}
}

func Info(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Info(msg, redact(keyvals)...)
	}
}

func Warn(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Warn(msg, redact(keyvals)...)
	}
}

func Error(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Error(msg, redact(keyvals)...)
	}
}

// Fatal logs and exits with status 1, with or without a logger
func Fatal(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Fatal(msg, redact(keyvals)...)
	}
	os.Exit(1)
}
