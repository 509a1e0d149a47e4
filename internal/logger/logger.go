package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/sirupsen/logrus"
)

// New builds a logrus-backed kratos logger. Output always goes to stdout;
// when filePath is set it is duplicated into that file as well.
func New(levelStr, filePath string) (log.Logger, error) {
	l := logrus.New()

	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	writers := []io.Writer{os.Stdout}
	if filePath != "" {
		logDir := filepath.Dir(filePath)
		if logDir != "." {
			if err := os.MkdirAll(logDir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create log directory: %w", err)
			}
		}
		file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
		if err != nil {
			return nil, err
		}
		writers = append(writers, file)
	}
	l.SetOutput(io.MultiWriter(writers...))

	return &logrusLogger{log: l}, nil
}

// logrusLogger adapts a *logrus.Logger to the kratos log.Logger interface.
type logrusLogger struct {
	log *logrus.Logger
}

func (l *logrusLogger) Log(level log.Level, keyvals ...interface{}) error {
	var (
		msg    string
		fields = make(logrus.Fields, len(keyvals)/2)
	)
	if len(keyvals)%2 != 0 {
		keyvals = append(keyvals, "")
	}
	for i := 0; i < len(keyvals); i += 2 {
		key := fmt.Sprint(keyvals[i])
		if key == log.DefaultMessageKey {
			msg = fmt.Sprint(keyvals[i+1])
			continue
		}
		fields[key] = keyvals[i+1]
	}

	entry := l.log.WithFields(fields)
	switch level {
	case log.LevelDebug:
		entry.Debug(msg)
	case log.LevelInfo:
		entry.Info(msg)
	case log.LevelWarn:
		entry.Warn(msg)
	case log.LevelError:
		entry.Error(msg)
	case log.LevelFatal:
		entry.Fatal(msg)
	default:
		entry.Info(msg)
	}
	return nil
}
