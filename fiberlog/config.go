package fiberlog

import "github.com/sirupsen/logrus"

// Config - логгер и набор тегов запроса, попадающих в запись
type Config struct {
	Logger *logrus.Logger
	Tags   []string
}

var ConfigDefault = Config{
	Tags: []string{
		TagStatus,
		TagLatency,
		TagMethod,
		TagPath,
		RequestID,
	},
}
