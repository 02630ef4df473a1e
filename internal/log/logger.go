package log

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

var diag = newDiagnostics()

func newDiagnostics() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	l.SetLevel(logrus.WarnLevel)
	return l
}

// Logger returns the shared diagnostic logger.
func Logger() *logrus.Logger {
	return diag
}

// LoggerConfig configures the diagnostic logger.
type LoggerConfig struct {
	Level       string // panic, fatal, error, warn, info, debug or trace
	File        string // optional rotating log file, written in addition to stderr
	FileSizeMB  int
	FileBackups int
	Compress    bool
}

// SetupLogger applies cfg to the shared diagnostic logger.
func SetupLogger(cfg LoggerConfig) error {
	return configure(diag, os.Stderr, cfg)
}

func configure(l *logrus.Logger, console io.Writer, cfg LoggerConfig) error {
	level := logrus.InfoLevel
	if cfg.Level != "" {
		parsed, err := logrus.ParseLevel(strings.ToLower(cfg.Level))
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
		level = parsed
	}
	l.SetLevel(level)

	if cfg.File == "" {
		l.SetOutput(console)
		return nil
	}

	size := cfg.FileSizeMB
	if size <= 0 {
		size = 10
	}
	backups := cfg.FileBackups
	if backups <= 0 {
		backups = 3
	}
	l.SetOutput(io.MultiWriter(console, &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    size, // megabytes
		MaxBackups: backups,
		MaxAge:     28, //days
		Compress:   cfg.Compress,
	}))
	return nil
}
