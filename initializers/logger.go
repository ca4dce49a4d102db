package initializers

import (
	log "github.com/sirupsen/logrus"
	"timesheet-backend/config"
	"timesheet-backend/fiberlog"
)

func jsonFormatter() *log.JSONFormatter {
	return &log.JSONFormatter{
		FieldMap: log.FieldMap{
			log.FieldKeyTime: "@timestamp",
			log.FieldKeyMsg:  "message",
		},
	}
}

// InitLogger настраивает общий логгер и возвращает настройки журнала запросов api.
// Выгрузки отчетов в журнал не попадают: тела ответов у них двоичные
func InitLogger() *fiberlog.Config {
	log.SetFormatter(jsonFormatter())
	log.SetLevel(parseLevel(config.Conf.App.LogLevel))

	requestLogger := log.New()
	requestLogger.SetFormatter(jsonFormatter())
	requestLogger.SetLevel(log.DebugLevel)
	return &fiberlog.Config{
		Logger: requestLogger,
		Tags: []string{
			fiberlog.TagBody,
			fiberlog.TagResBody,
			fiberlog.TagMethod,
			fiberlog.TagPath,
			fiberlog.TagStatus,
			fiberlog.TagLatency,
			fiberlog.RequestID,
		},
		BodyLimit: config.Conf.App.LogBodyLimit,
		SkipPaths: []string{"/api/v1/analytics/timesheet/"},
	}
}

func parseLevel(value string) log.Level {
	level, err := log.ParseLevel(value)
	if err != nil {
		log.WithField("level", value).Warn("неизвестный уровень логирования, используется info")
		return log.InfoLevel
	}
	return level
}
