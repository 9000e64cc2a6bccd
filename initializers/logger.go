package initializers

import (
	log "github.com/sirupsen/logrus"

	"hr-recruitment-backend/fiberlog"
)

func jsonFormatter() *log.JSONFormatter {
	return &log.JSONFormatter{
		FieldMap: log.FieldMap{
			log.FieldKeyTime: "@timestamp",
			log.FieldKeyMsg:  "message",
		},
	}
}

func InitLogger() *fiberlog.Config {
	log.SetFormatter(jsonFormatter())
	log.SetLevel(log.InfoLevel)

	// отдельный логгер запросов api с debug уровнем
	apiLogger := log.New()
	apiLogger.SetFormatter(jsonFormatter())
	apiLogger.SetLevel(log.DebugLevel)
	return &fiberlog.Config{
		Logger: apiLogger,
		Tags: []string{
			fiberlog.TagBody,
			fiberlog.TagResBody,
			fiberlog.TagMethod,
			fiberlog.TagPath,
			fiberlog.TagStatus,
			fiberlog.RequestID,
		},
	}
}
