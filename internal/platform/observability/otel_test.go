package observability

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_WritesJSONLogsToFileAndStdout(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	var stdout bytes.Buffer
	logPath := filepath.Join(t.TempDir(), "adopt.log")
	instruments, shutdown, err := Init(context.Background(), Options{
		ServiceName: "adopt-test",
		LogLevel:    "debug",
		LogFile:     logPath,
		Exporter:    ExporterNone,
		Stdout:      &stdout,
	})
	require.NoError(t, err)

	instruments.Logger.Debug("hello", slog.String("k", "v"))
	require.NoError(t, shutdown(context.Background()))

	assert.Contains(t, stdout.String(), `"msg":"hello"`)
	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"k":"v"`)

	_, span := instruments.Tracer("test").Start(context.Background(), "op")
	span.End()
	assert.NotNil(t, instruments.Meter("test"))
}

func TestInit_RejectsUnknownExporter(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	_, _, err := Init(context.Background(), Options{ServiceName: "adopt-test", Exporter: "zipkin", Stdout: &bytes.Buffer{}})
	require.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warn"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("whatever"))
}

type recordingLogFile struct {
	bytes.Buffer
	closed bool
}

func (f *recordingLogFile) Close() error {
	f.closed = true
	return nil
}

func TestInit_ClosesLogFileWhenExporterFails(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	file := &recordingLogFile{}
	previousOpen := openLogFile
	openLogFile = func(string) io.WriteCloser { return file }
	t.Cleanup(func() { openLogFile = previousOpen })

	_, _, err := Init(context.Background(), Options{
		ServiceName: "adopt-test",
		LogFile:     "adopt.log",
		Exporter:    "carrier-pigeon",
		Stdout:      &bytes.Buffer{},
	})
	require.Error(t, err)
	assert.True(t, file.closed)
}
