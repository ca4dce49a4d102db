package fiberlog

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// Config - настройки журнала запросов
type Config struct {
	Logger *logrus.Logger
	Tags   []string
	// BodyLimit - сколько байт тела запроса/ответа писать в лог, 0 - defaultBodyLimit
	BodyLimit int
	// SkipPaths - префиксы путей, запросы к которым не журналируются
	SkipPaths []string
}

const defaultBodyLimit = 2048

var ConfigDefault = Config{
	Tags: []string{
		TagStatus,
		TagLatency,
		TagMethod,
		TagPath,
		RequestID,
	},
	BodyLimit: defaultBodyLimit,
}

func (c Config) bodyLimit() int {
	if c.BodyLimit <= 0 {
		return defaultBodyLimit
	}
	return c.BodyLimit
}

func (c Config) skip(path string) bool {
	for _, prefix := range c.SkipPaths {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
