package logging

import (
	"os"
	"path/filepath"

	"fleet-console/internal/config"

	"github.com/rifflock/lfshook"
	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Configure настраивает глобальный логгер logrus по конфигурации:
// уровень, формат вывода в консоль и ротацию файла логов.
func Configure(cfg config.Config) error {
	log.SetLevel(cfg.GetLogLevel())
	log.SetFormatter(consoleFormatter(cfg))
	log.SetOutput(os.Stdout)

	if cfg.LogFile == "" {
		return nil
	}

	logDir := filepath.Dir(cfg.LogFile)
	if _, err := os.Stat(logDir); os.IsNotExist(err) {
		if err := os.MkdirAll(logDir, os.ModePerm); err != nil {
			return err
		}
	}

	lumberjackLogger := &lumberjack.Logger{
		Filename:   cfg.LogFile,
		MaxSize:    100,
		MaxBackups: 30,
		MaxAge:     cfg.LogMaxAgeDays,
		Compress:   true,
	}

	hook := lfshook.NewHook(lfshook.WriterMap{
		log.PanicLevel: lumberjackLogger,
		log.FatalLevel: lumberjackLogger,
		log.ErrorLevel: lumberjackLogger,
		log.WarnLevel:  lumberjackLogger,
		log.InfoLevel:  lumberjackLogger,
		log.DebugLevel: lumberjackLogger,
	}, fileFormatter(cfg))
	log.AddHook(hook)

	return nil
}

func consoleFormatter(cfg config.Config) log.Formatter {
	if cfg.LogFormat == "json" {
		return &log.JSONFormatter{}
	}
	return &log.TextFormatter{ForceColors: true, FullTimestamp: true}
}

func fileFormatter(cfg config.Config) log.Formatter {
	if cfg.LogFormat == "json" {
		return &log.JSONFormatter{}
	}
	return &log.TextFormatter{DisableColors: true, FullTimestamp: true}
}
