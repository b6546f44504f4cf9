package logplugin

import (
	"fmt"
	"strings"
)

// Level is the severity of a record. Levels are ordered by declaration and
// the zero value is LevelInfo.
type Level int

const (
	LevelDebug Level = iota - 1
	LevelInfo
	LevelWarn
	LevelError
)

// ParseError reports level text outside of debug, info, warn and error.
type ParseError struct {
	Value string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid log level %q", e.Value)
}

// ParseLevel parses text case-insensitively. Unknown text is an error, there
// is no fallback level.
func ParseLevel(text string) (Level, error) {
	switch strings.ToLower(text) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return LevelInfo, &ParseError{Value: text}
}

// Valid reports whether l is one of the four declared levels.
func (l Level) Valid() bool {
	return l >= LevelDebug && l <= LevelError
}

// String returns the uppercase display name.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	}
	return fmt.Sprintf("LEVEL(%d)", int(l))
}

func (l Level) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, &ParseError{Value: l.String()}
	}
	return []byte(l.String()), nil
}

func (l *Level) UnmarshalText(text []byte) error {
	parsed, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// ValidLevels returns the display names in ascending severity.
func ValidLevels() []string {
	return []string{LevelDebug.String(), LevelInfo.String(), LevelWarn.String(), LevelError.String()}
}
