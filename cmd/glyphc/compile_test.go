package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reglet-dev/glyphc/internal/infrastructure/system"
)

const clockYAML = `
controller:
  time_id: sntp
binary_sensors:
  - id: door
    device_class: door
times:
  - id: sntp
groups:
  - id: main
    glyph: mdi:bell
    widgets:
      - type: binary_sensor
        binary_sensor_id: door
        on_glyph: door-open
        off_glyph: door-closed
      - type: digital-time
        time_id: sntp
`

func writeTempConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func newCompileOptions(format string) *compileOptions {
	opts := &compileOptions{CommonOptions: DefaultCommonOptions()}
	opts.Format = format
	opts.Parallelism = 2
	return opts
}

func Test_RunCompile_JSON(t *testing.T) {
	t.Parallel()

	path := writeTempConfig(t, "clock.yaml", clockYAML)
	opts := newCompileOptions("json")
	opts.Compact = true

	var out bytes.Buffer
	require.NoError(t, runCompile(context.Background(), &out, opts, system.DefaultConfig(), []string{path}))

	var doc struct {
		Source    string   `json:"source"`
		Selection []string `json:"selection"`
		Manifest  []struct {
			ID string `json:"id"`
		} `json:"manifest"`
	}
	require.NoError(t, json.NewDecoder(&out).Decode(&doc))
	assert.Equal(t, path, doc.Source)
	assert.Equal(t, []string{"bell", "door-closed", "door-open"}, doc.Selection)
	assert.NotEmpty(t, doc.Manifest)
}

func Test_RunCompile_TextToFileWithDiagnostics(t *testing.T) {
	t.Parallel()

	first := writeTempConfig(t, "first.yaml", clockYAML)
	second := writeTempConfig(t, "second.yaml", clockYAML)
	dir := t.TempDir()

	opts := newCompileOptions("text")
	opts.OutFile = filepath.Join(dir, "stream.txt")
	opts.DiagnosticsPath = filepath.Join(dir, "glyphc.sarif")

	var stdout bytes.Buffer
	require.NoError(t, runCompile(context.Background(), &stdout, opts, system.DefaultConfig(), []string{first, second}))
	assert.Empty(t, stdout.String())

	stream, err := os.ReadFile(opts.OutFile)
	require.NoError(t, err)
	headers := 0
	for _, line := range strings.Split(string(stream), "\n") {
		if strings.HasPrefix(line, "# compilation ") {
			headers++
		}
	}
	assert.Equal(t, 2, headers)
	assert.Less(t, strings.Index(string(stream), first), strings.Index(string(stream), second))

	sarifData, err := os.ReadFile(opts.DiagnosticsPath)
	require.NoError(t, err)
	assert.Contains(t, string(sarifData), `"glyphc"`)
}

func Test_RunCompile_Errors(t *testing.T) {
	t.Parallel()

	t.Run("invalid format", func(t *testing.T) {
		t.Parallel()
		path := writeTempConfig(t, "clock.yaml", clockYAML)
		err := runCompile(context.Background(), &bytes.Buffer{}, newCompileOptions("table"), system.DefaultConfig(), []string{path})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid format")
	})

	t.Run("unknown icon", func(t *testing.T) {
		t.Parallel()
		bad := strings.Replace(clockYAML, "mdi:bell", "mdi:not-an-icon", 1)
		path := writeTempConfig(t, "clock.yaml", bad)
		var out bytes.Buffer
		err := runCompile(context.Background(), &out, newCompileOptions("text"), system.DefaultConfig(), []string{path})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not-an-icon")
		assert.Empty(t, out.String())
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		missing := filepath.Join(t.TempDir(), "missing.yaml")
		err := runCompile(context.Background(), &bytes.Buffer{}, newCompileOptions("text"), system.DefaultConfig(), []string{missing})
		require.Error(t, err)
	})
}
