package logplugin

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// payloadFor builds a configuration payload logging plainly to logFile
// with the console off; overrides replace or add keys.
func payloadFor(t testing.TB, logFile string, overrides map[string]any) []byte {
	t.Helper()
	fields := map[string]any{
		"app_name":            "svc",
		"log_file":            logFile,
		"log_to_console":      false,
		"file_output_colored": false,
	}
	for k, v := range overrides {
		fields[k] = v
	}
	payload, err := json.Marshal(fields)
	require.NoError(t, err)
	return payload
}

func TestService_ConfigureJSON(t *testing.T) {
	t.Run("valid payload", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		logFile := filepath.Join(t.TempDir(), "app.log")

		assert.Equal(t, StatusOK, svc.ConfigureJSON(payloadFor(t, logFile, nil)))
		assert.Equal(t, logFile, svc.Config().LogFile)
	})

	t.Run("invalid payload leaves config untouched", func(t *testing.T) {
		svc, _, diag := newTestService(t)
		logFile := filepath.Join(t.TempDir(), "app.log")
		require.Equal(t, StatusOK, svc.ConfigureJSON(payloadFor(t, logFile, nil)))
		before := svc.Config()

		for _, payload := range []string{`{`, `{"log_file":"x.log"}`, `{"app_name":"svc","minimum_level":"loud"}`} {
			status := svc.ConfigureJSON([]byte(payload))
			assert.Equal(t, StatusInvalidPayload, status, payload)
			assert.NotEqual(t, StatusOK, status)
		}
		assert.Equal(t, before, svc.Config())
		assert.Contains(t, diag.String(), "configuration rejected")
	})

	t.Run("nil service", func(t *testing.T) {
		var svc *Service
		assert.Equal(t, StatusInternal, svc.ConfigureJSON([]byte(`{"app_name":"svc"}`)))
	})
}

func TestService_EmitJSON(t *testing.T) {
	t.Run("writes record", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		logFile := filepath.Join(t.TempDir(), "app.log")
		require.Equal(t, StatusOK, svc.ConfigureJSON(payloadFor(t, logFile, nil)))

		status := svc.EmitJSON([]byte(`{"message":"hello","level":"warn","sub_app_name":"db"}`))
		assert.Equal(t, StatusOK, status)

		lines := readLines(t, logFile)
		require.Len(t, lines, 1)
		assert.Equal(t, "[2026-10-16T09:30:15Z] [WARN] svc -> db: hello", lines[0])
	})

	t.Run("suppressed record is success", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		logFile := filepath.Join(t.TempDir(), "app.log")
		require.Equal(t, StatusOK, svc.ConfigureJSON(payloadFor(t, logFile, map[string]any{"minimum_level": "error"})))

		assert.Equal(t, StatusOK, svc.EmitJSON([]byte(`{"message":"hidden","level":"debug"}`)))
		assert.NoFileExists(t, logFile)
	})

	t.Run("malformed record", func(t *testing.T) {
		svc, console, diag := newTestService(t)
		logFile := filepath.Join(t.TempDir(), "app.log")
		require.Equal(t, StatusOK, svc.ConfigureJSON(payloadFor(t, logFile, map[string]any{"log_to_console": true})))

		for _, payload := range []string{
			`not json`,
			`{"level":"info"}`,
			`{"message":"m","level":"verbose"}`,
			`{"message":"m","level":7}`,
		} {
			status := svc.EmitJSON([]byte(payload))
			assert.Equal(t, StatusInvalidPayload, status, payload)
		}
		assert.Empty(t, console.String())
		assert.NoFileExists(t, logFile)
		assert.Contains(t, diag.String(), "record rejected")
	})

	t.Run("write failure", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		logFile := filepath.Join(t.TempDir(), "app.log")
		require.NoError(t, os.Mkdir(logFile, 0o755))
		require.Equal(t, StatusOK, svc.ConfigureJSON(payloadFor(t, logFile, nil)))

		assert.Equal(t, StatusWriteFailed, svc.EmitJSON([]byte(`{"message":"lost"}`)))
	})

	t.Run("before configure", func(t *testing.T) {
		svc, console, _ := newTestService(t)
		assert.Equal(t, StatusOK, svc.EmitJSON([]byte(`{"message":"early"}`)))
		assert.Empty(t, console.String())
	})

	t.Run("nil service", func(t *testing.T) {
		var svc *Service
		assert.Equal(t, StatusInternal, svc.EmitJSON([]byte(`{"message":"m"}`)))
		assert.Equal(t, StatusOK, svc.ShutdownStatus())
	})
}

func TestService_ShutdownStatus(t *testing.T) {
	svc, _, _ := newTestService(t)
	require.Equal(t, StatusOK, svc.ConfigureJSON(payloadFor(t, filepath.Join(t.TempDir(), "a.log"), nil)))

	assert.Equal(t, StatusOK, svc.ShutdownStatus())
	assert.Equal(t, StatusOK, svc.ShutdownStatus())
	assert.False(t, svc.Configured())
}

// panickyWriter simulates a host-supplied console that panics.
type panickyWriter struct{}

func (panickyWriter) Write([]byte) (int, error) { panic("console exploded") }

func TestService_RecoversPanics(t *testing.T) {
	svc, _, diag := newTestService(t)
	svc.Console = panickyWriter{}
	logFile := filepath.Join(t.TempDir(), "app.log")
	require.Equal(t, StatusOK, svc.ConfigureJSON(payloadFor(t, logFile, map[string]any{"log_to_console": true})))

	var status int32
	require.NotPanics(t, func() {
		status = svc.EmitJSON([]byte(`{"message":"m"}`))
	})
	assert.Equal(t, StatusInternal, status)
	assert.Contains(t, diag.String(), "recovered panic")
	assert.Contains(t, diag.String(), "entry_point=emit")
}

func TestDefaultEntryPoints(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "app.log")
	t.Cleanup(func() { Shutdown() })

	require.Equal(t, StatusOK, Configure(string(payloadFor(t, logFile, nil))))
	assert.True(t, Default().Configured())

	assert.Equal(t, StatusOK, Emit(`{"message":"one"}`))
	assert.Equal(t, StatusOK, Emit(`{"message":"two","level":"debug"}`))
	assert.Equal(t, StatusInvalidPayload, Emit(`{}`))

	lines := readLines(t, logFile)
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "[INFO] svc: one")

	assert.Equal(t, StatusOK, Shutdown())
	assert.Equal(t, StatusOK, Shutdown())
	assert.Equal(t, StatusOK, Emit(`{"message":"after"}`))
	assert.Len(t, readLines(t, logFile), 1)
}
