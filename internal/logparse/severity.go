// Package logparse normalizes producer severity spellings onto the fixed
// level set used by the window store.
package logparse

import (
	"regexp"
	"strings"

	"github.com/tinytelemetry/lens/internal/model"
)

var severityPattern = regexp.MustCompile(`(?i)\b(TRACE|DEBUG|INFO|WARN|WARNING|ERROR|FATAL|CRITICAL)\b`)

// Normalize maps assorted severity spellings (short forms, long forms,
// mixed case) onto the canonical level set. Unknown input defaults to INFO.
func Normalize(severity string) string {
	s := strings.ToUpper(strings.TrimSpace(severity))
	switch s {
	case "TRACE", "TRAC", "TRC":
		return model.LevelTrace
	case "DEBUG", "DEBU", "DBG", "DEB":
		return model.LevelDebug
	case "INFO", "INFORMATION", "INF":
		return model.LevelInfo
	case "WARN", "WARNING", "WRNG", "WRN":
		return model.LevelWarn
	case "ERROR", "ERRO", "ERR":
		return model.LevelError
	case "FATAL", "FATL", "FTL", "CRITICAL", "CRIT", "CRT", "PANIC", "PNC":
		return model.LevelFatal
	}
	if len(s) >= 4 {
		switch s[:4] {
		case "TRAC":
			return model.LevelTrace
		case "DEBU":
			return model.LevelDebug
		case "INFO":
			return model.LevelInfo
		case "WARN":
			return model.LevelWarn
		case "ERRO":
			return model.LevelError
		case "FATA", "CRIT":
			return model.LevelFatal
		}
	}
	return model.LevelInfo
}

// FromText extracts a severity token from free-form log text. Lines without
// a recognizable token default to INFO.
func FromText(message string) string {
	m := severityPattern.FindStringSubmatch(message)
	if len(m) < 2 {
		return model.LevelInfo
	}
	return Normalize(m[1])
}

// FromNumeric converts pino/bunyan numeric levels (10..60) to level names.
func FromNumeric(level int) string {
	switch {
	case level < 20:
		return model.LevelTrace
	case level < 30:
		return model.LevelDebug
	case level < 40:
		return model.LevelInfo
	case level < 50:
		return model.LevelWarn
	case level < 60:
		return model.LevelError
	default:
		return model.LevelFatal
	}
}
