package envutil

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/yungbote/restkit-backend/internal/platform/logger"
)

// Each lookup logs the variable name and whether the default was used when
// log is non-nil. Values are never logged.

func String(name, def string, log *logger.Logger) string {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		logDefault(log, name)
		return def
	}
	logSet(log, name)
	return v
}

func Int(name string, def int, log *logger.Logger) int {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		logDefault(log, name)
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		logInvalid(log, name, err)
		return def
	}
	logSet(log, name)
	return i
}

func Bool(name string, def bool, log *logger.Logger) bool {
	v := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	switch v {
	case "":
		logDefault(log, name)
		return def
	case "1", "true", "yes", "on":
		logSet(log, name)
		return true
	case "0", "false", "no", "off":
		logSet(log, name)
		return false
	default:
		logInvalid(log, name, nil)
		return def
	}
}

func Duration(name string, def time.Duration, log *logger.Logger) time.Duration {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		logDefault(log, name)
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		logInvalid(log, name, err)
		return def
	}
	logSet(log, name)
	return d
}

// List splits a comma-separated variable, dropping blanks.
func List(name string, def []string, log *logger.Logger) []string {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		logDefault(log, name)
		return def
	}
	out := []string{}
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	logSet(log, name)
	return out
}

func logDefault(log *logger.Logger, name string) {
	if log != nil {
		log.Debug("Env var not set, using default", "name", name)
	}
}

func logSet(log *logger.Logger, name string) {
	if log != nil {
		log.Debug("Env var loaded", "name", name)
	}
}

func logInvalid(log *logger.Logger, name string, err error) {
	if log != nil {
		log.Warn("Env var invalid, using default", "name", name, "error", err)
	}
}
