package logger

import (
	"github.com/sirupsen/logrus"
)

// Log глобальный логгер приложения. До вызова Init пишет в stderr с уровнем info,
// поэтому пакеты могут логировать и в тестах.
var Log = logrus.New()

// Init инициализирует структурированный логгер.
// В development используется текстовый формат, иначе JSON.
func Init(env string) {
	Log = logrus.New()

	level := logrus.InfoLevel
	if env == "development" {
		level = logrus.DebugLevel
	}
	Log.SetLevel(level)

	if env == "development" {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
		return
	}
	Log.SetFormatter(&logrus.JSONFormatter{})
}

// Component возвращает запись логгера с полем component.
func Component(name string) *logrus.Entry {
	return Log.WithField("component", name)
}
