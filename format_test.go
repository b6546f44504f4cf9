package logplugin

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var ansiPattern = regexp.MustCompile("\x1b\\[[0-9;]*m")

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

// linePattern matches "[<ts>] [<LEVEL>] <app>: <msg>" in plain form.
var linePattern = regexp.MustCompile(`^\[(\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d+)?Z)\] \[(DEBUG|INFO|WARN|ERROR)\] (.+?): (.*)$`)

func testLine() Line {
	return Line{
		Time:    time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC),
		Level:   LevelWarn,
		App:     "svc -> db",
		Message: "slow query",
	}
}

func TestLine_Plain(t *testing.T) {
	assert.Equal(t, "[2026-10-16T09:30:00Z] [WARN] svc -> db: slow query", testLine().Plain())

	l := testLine()
	l.Time = time.Date(2026, 10, 16, 11, 30, 0, 5000, time.FixedZone("CEST", 2*60*60))
	assert.Equal(t, "[2026-10-16T09:30:00.000005Z] [WARN] svc -> db: slow query", l.Plain())
	assert.Regexp(t, linePattern, l.Plain())
}

func TestLine_Decorated(t *testing.T) {
	l := testLine()
	decorated := l.Decorated()

	assert.NotEqual(t, l.Plain(), decorated)
	assert.Contains(t, decorated, "\x1b[")
	assert.Equal(t, l.Plain(), stripANSI(decorated))
}

func TestLine_LevelColors(t *testing.T) {
	seqs := map[Level]string{
		LevelDebug: "34m",
		LevelInfo:  "32m",
		LevelWarn:  "33m",
		LevelError: "31m",
	}
	for level, seq := range seqs {
		t.Run(level.String(), func(t *testing.T) {
			l := testLine()
			l.Level = level
			assert.Contains(t, l.Decorated(), seq+level.String())
		})
	}
}

func TestLine_DecoratedPreservesMessage(t *testing.T) {
	l := testLine()
	l.Message = "first\tcol\nsecond line\n\nlast"

	assert.Equal(t, l.Plain(), stripANSI(l.Decorated()))
	assert.Equal(t, 3, strings.Count(l.Decorated(), "\n"))
}

func TestLine_EmptyMessage(t *testing.T) {
	l := testLine()
	l.Message = ""

	assert.Equal(t, "[2026-10-16T09:30:00Z] [WARN] svc -> db: ", l.Plain())
	assert.Equal(t, l.Plain(), stripANSI(l.Decorated()))
}
