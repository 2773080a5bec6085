package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log является глобальным экземпляром логгера для всего сервера.
var Log *logrus.Logger

// Init инициализирует глобальный логгер.
// Вызывается один раз при старте (main.go) и в TestMain каждого пакета с тестами.
func Init() {
	Log = logrus.New()

	// 1. Уровень логирования из LOG_LEVEL. По умолчанию "info".
	// Решения ИИ (поиск цели, обход препятствий) пишутся на уровне "debug".
	logLevel, ok := os.LookupEnv("LOG_LEVEL")
	if !ok {
		logLevel = "info"
	}
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	// 2. Форматтер: "json" для сбора логов, иначе цветной текст.
	logFormat := strings.ToLower(os.Getenv("LOG_FORMAT"))
	if logFormat == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
	}

	Log.SetOutput(os.Stdout)
}

// Component возвращает логгер подсистемы с полем "component".
// Если Init ещё не вызывался, инициализирует логгер по умолчанию.
func Component(name string) *logrus.Entry {
	if Log == nil {
		Init()
	}
	return Log.WithFields(logrus.Fields{"component": name})
}
