package logger

import "strings"

// Level is the level at which a logger is configured. Messages below the
// logger's level are dropped.
type Level uint32

// Level constants.
const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelCritical
	LevelOff
)

// levelNames holds the full name and the three letter tag of every level,
// indexed by level.
var levelNames = [...]struct{ name, tag string }{
	{"trace", "TRC"},
	{"debug", "DBG"},
	{"info", "INF"},
	{"warn", "WRN"},
	{"error", "ERR"},
	{"critical", "CRT"},
	{"off", "OFF"},
}

// LevelFromString returns the level named s, by full name or by tag, case
// insensitively. Unknown names return LevelInfo and false.
func LevelFromString(s string) (l Level, ok bool) {
	for level, names := range levelNames {
		if strings.EqualFold(s, names.name) || strings.EqualFold(s, names.tag) {
			return Level(level), true
		}
	}
	return LevelInfo, false
}

// SupportedLevels returns the full names of all levels, from the most to the
// least verbose.
func SupportedLevels() []string {
	names := make([]string, len(levelNames))
	for i, level := range levelNames {
		names[i] = level.name
	}
	return names
}

// String returns the tag used for l in log messages.
func (l Level) String() string {
	if l >= LevelOff {
		return levelNames[LevelOff].tag
	}
	return levelNames[l].tag
}
