package logger

import (
	"log"
	"os"
)

// Logger is a thin wrapper over the standard log package with levels.
type Logger struct {
	info  *log.Logger
	warn  *log.Logger
	error *log.Logger
}

func New() *Logger {
	return &Logger{
		info:  log.New(os.Stdout, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile),
		warn:  log.New(os.Stdout, "WARN: ", log.Ldate|log.Ltime|log.Lshortfile),
		error: log.New(os.Stderr, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile),
	}
}

func (l *Logger) Info(format string, args ...interface{}) {
	l.info.Printf(format, args...)
}

func (l *Logger) Warn(format string, args ...interface{}) {
	l.warn.Printf(format, args...)
}

func (l *Logger) Error(format string, args ...interface{}) {
	l.error.Printf(format, args...)
}
