package logger

import (
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

// Log is the process-wide logger. Init reconfigures it in place, so
// sessions holding it keep logging after a re-init.
var Log = logrus.New()

var (
	mu      sync.Mutex
	logFile *os.File
	stderr  io.Writer = os.Stderr
)

// Init configures Log. Output goes to stderr and, when filePath is set, is
// appended to that file as well; a file opened by an earlier Init is closed.
// An unknown level falls back to info with a warning.
func Init(levelStr string, filePath string) error {
	mu.Lock()
	defer mu.Unlock()

	Log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	writers := []io.Writer{stderr}
	var file *os.File
	if filePath != "" {
		f, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		file = f
		writers = append(writers, f)
	}
	Log.SetOutput(io.MultiWriter(writers...))

	if logFile != nil {
		logFile.Close()
	}
	logFile = file

	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		level = logrus.InfoLevel
		Log.SetLevel(level)
		Log.WithField("log_level", levelStr).Warn("Unknown log level, using info")
		return nil
	}
	Log.SetLevel(level)
	return nil
}

// Close releases the log file opened by Init, if any.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	Log.SetOutput(stderr)
	return err
}
