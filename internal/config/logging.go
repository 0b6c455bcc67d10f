package config

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"
)

// NewLogger builds the process logger. Development mode logs colored text
// at debug level; otherwise JSON at info level. LOG_FILE adds a rotating
// JSON log file next to stderr.
func NewLogger() (*logrus.Logger, error) {
	log := logrus.New()
	log.SetOutput(os.Stderr)

	if Development() {
		log.SetLevel(logrus.DebugLevel)
		log.SetFormatter(&logrus.TextFormatter{ForceColors: true})
	} else {
		log.SetLevel(logrus.InfoLevel)
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	if level, ok := lookupEnv("LOG_LEVEL"); ok {
		lvl, err := logrus.ParseLevel(level)
		if err != nil {
			return nil, err
		}
		log.SetLevel(lvl)
	}

	filename, ok := lookupEnv("LOG_FILE")
	if !ok {
		return log, nil
	}

	maxSize, err := lookupInt("LOG_FILE_MAX_SIZE", 50)
	if err != nil {
		return nil, err
	}
	maxBackups, err := lookupInt("LOG_FILE_MAX_BACKUPS", 3)
	if err != nil {
		return nil, err
	}
	maxAge, err := lookupInt("LOG_FILE_MAX_AGE", 28)
	if err != nil {
		return nil, err
	}

	hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
		Filename:   filename,
		MaxSize:    maxSize,
		MaxBackups: maxBackups,
		MaxAge:     maxAge,
		Level:      log.GetLevel(),
		Formatter: &logrus.JSONFormatter{
			TimestampFormat: time.RFC3339,
		},
	})
	if err != nil {
		return nil, err
	}
	log.AddHook(hook)

	return log, nil
}
