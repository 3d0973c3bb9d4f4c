package log

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// syncBuffer guards a bytes.Buffer for the listener tests.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}

func TestLevel_String(t *testing.T) {
	require.Equal(t, "DEBUG", LevelDebug.String())
	require.Equal(t, "INFO", LevelInfo.String())
	require.Equal(t, "WARN", LevelWarn.String())
	require.Equal(t, "ERROR", LevelError.String())
	require.Equal(t, "UNKNOWN", Level(42).String())
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in       string
		expected Level
		wantErr  bool
	}{
		{in: "debug", expected: LevelDebug},
		{in: "INFO", expected: LevelInfo},
		{in: "", expected: LevelInfo},
		{in: " warn ", expected: LevelWarn},
		{in: "warning", expected: LevelWarn},
		{in: "error", expected: LevelError},
		{in: "loud", expected: LevelInfo, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			level, err := ParseLevel(tt.in)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			require.Equal(t, tt.expected, level)
		})
	}
}

func TestLog_Format(t *testing.T) {
	var buf syncBuffer
	cleanup := InitWriter(&buf)
	defer cleanup()

	Info(CatRegistry, "employee added", "id", 3, "manager", 1)

	line := buf.String()
	require.Contains(t, line, "[INFO] [registry] employee added id=3 manager=1\n")
	_, err := time.Parse("2006-01-02T15:04:05", strings.SplitN(line, " ", 2)[0])
	require.NoError(t, err)
}

func TestLog_OddFieldCount(t *testing.T) {
	var buf syncBuffer
	cleanup := InitWriter(&buf)
	defer cleanup()

	Warn(CatShell, "dangling", "id")

	require.Contains(t, buf.String(), "dangling id=<missing>")
}

func TestLog_ErrorErr(t *testing.T) {
	var buf syncBuffer
	cleanup := InitWriter(&buf)
	defer cleanup()

	ErrorErr(CatService, "move failed", errors.New("employee not found: 9"), "id", 9)
	ErrorErr(CatService, "nil error", nil)

	out := buf.String()
	require.Contains(t, out, "[ERROR] [service] move failed id=9 error=employee not found: 9")
	require.Contains(t, out, "nil error error=<nil>")
}

func TestLog_MinLevel(t *testing.T) {
	var buf syncBuffer
	cleanup := InitWriter(&buf)
	defer cleanup()

	SetMinLevel(LevelWarn)
	Debug(CatCache, "hidden")
	Info(CatCache, "hidden too")
	Error(CatCache, "shown")

	out := buf.String()
	require.NotContains(t, out, "hidden")
	require.Contains(t, out, "shown")
}

func TestLog_SetEnabled(t *testing.T) {
	var buf syncBuffer
	cleanup := InitWriter(&buf)
	defer cleanup()

	SetEnabled(false)
	Error(CatConfig, "muted")
	SetEnabled(true)
	Error(CatConfig, "audible")

	out := buf.String()
	require.NotContains(t, out, "muted")
	require.Contains(t, out, "audible")
}

func TestLog_NoopWithoutInit(t *testing.T) {
	require.NotPanics(t, func() {
		Info(CatRegistry, "nobody listening")
		SetEnabled(true)
		SetMinLevel(LevelDebug)
	})
	require.Nil(t, NewListener(context.Background()))
}

func TestInit_AppendsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orgchart.log")
	require.NoError(t, os.WriteFile(path, []byte("existing\n"), 0644))

	cleanup, err := Init(path)
	require.NoError(t, err)
	Info(CatConfig, "config loaded", "path", "config.yaml")
	cleanup()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(data), "existing\n"))
	require.Contains(t, string(data), "[config] config loaded path=config.yaml")
}

func TestInit_BadPath(t *testing.T) {
	_, err := Init(filepath.Join(t.TempDir(), "missing", "dir", "orgchart.log"))
	require.Error(t, err)
}

func TestNewListener_ReceivesEntries(t *testing.T) {
	var buf syncBuffer
	cleanup := InitWriter(&buf)
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	listener := NewListener(ctx)
	require.NotNil(t, listener)

	Info(CatShell, "session started", "session", "abc")

	event, ok := listener.Next()
	require.True(t, ok)
	require.Contains(t, event.Payload, "[shell] session started session=abc")
}

func TestCleanup_EndsListeners(t *testing.T) {
	var buf syncBuffer
	cleanup := InitWriter(&buf)

	listener := NewListener(context.Background())
	require.NotNil(t, listener)
	cleanup()

	_, ok := listener.Next()
	require.False(t, ok)
}

func TestDebugFromEnv(t *testing.T) {
	t.Setenv(EnvDebug, "")
	require.False(t, DebugFromEnv())

	t.Setenv(EnvDebug, "1")
	require.True(t, DebugFromEnv())
}
