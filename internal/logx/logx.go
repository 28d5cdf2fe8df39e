// Package logx is the diagnostic log. Lines go to a size-rotated file once
// Setup has been called and are discarded before that.
package logx

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/hance08/teller/internal/config"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	mu     sync.Mutex
	sink   io.WriteCloser
	logger = log.New(io.Discard, "", log.Ldate|log.Ltime|log.Lmicroseconds)
	debug  bool
)

// Setup points the logger at cfg.File, creating its directory. An empty
// file name keeps logging disabled.
func Setup(cfg config.LogConfig) error {
	mu.Lock()
	defer mu.Unlock()

	closeLocked()
	debug = cfg.Debug

	if cfg.File == "" {
		logger.SetOutput(io.Discard)
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
		return fmt.Errorf("can not create log directory: %w", err)
	}

	sink = &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB, // megabytes
		MaxAge:     cfg.MaxAgeDays,
		MaxBackups: cfg.MaxBackups,
	}
	logger.SetOutput(sink)
	return nil
}

// SetOutput redirects the log to w. Used by tests.
func SetOutput(w io.Writer, withDebug bool) {
	mu.Lock()
	defer mu.Unlock()
	closeLocked()
	debug = withDebug
	logger.SetOutput(w)
}

// Close flushes and closes the rotating file, if any.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	err := closeLocked()
	logger.SetOutput(io.Discard)
	return err
}

func closeLocked() error {
	if sink == nil {
		return nil
	}
	err := sink.Close()
	sink = nil
	return err
}

func Info(category string, content ...interface{}) {
	logger.Printf("[INFO][%s]: %s", category, fmt.Sprint(content...))
}

func Warn(category string, content ...interface{}) {
	logger.Printf("[WARN][%s]: %s", category, fmt.Sprint(content...))
}

func Error(category string, content ...interface{}) {
	logger.Printf("[ERROR][%s]: %s", category, fmt.Sprint(content...))
}

func Debug(category string, content ...interface{}) {
	mu.Lock()
	enabled := debug
	mu.Unlock()
	if !enabled {
		return
	}
	logger.Printf("[DEBUG][%s]: %s", category, fmt.Sprint(content...))
}

// Errorf logs an error message and returns a formatted error
func Errorf(format string, args ...interface{}) error {
	err := fmt.Errorf(format, args...)
	Error("ERROR", err.Error())
	return err
}
