package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reglet-dev/glyphc/internal/domain/entities"
	"github.com/reglet-dev/glyphc/internal/domain/values"
)

const clockYAML = `
version: 1
min_compiler_version: "0.1.0"
controller:
  id: clock
  time_id: sntp
font:
  size: 24
sensors:
  - id: temp
    name: Living room
    device_class: Temperature
binary_sensors:
  - id: door
    device_class: door
times:
  - id: sntp
images:
  - id: logo
groups:
  - id: main
    glyph: mdi:bell
    widgets:
      - type: sensor
        sensor_id: temp
      - type: binary_sensor
        binary_sensor_id: door
        on_glyph: [door-open, alarm]
        off_glyph: door-closed
        sticky: true
      - type: digital-time
        time_id: sntp
  - id: side
    visible: false
    glyph: "*"
    widgets:
      - id: face
        type: analog-time
        time_id: sntp
  - id: brand
    glyph:
      image: logo
`

func newLoader(t *testing.T) *ConfigurationLoader {
	t.Helper()
	l, err := NewConfigurationLoader()
	require.NoError(t, err)
	return l
}

func requireConfigError(t *testing.T, err error) *entities.ConfigError {
	t.Helper()
	var cfgErr *entities.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	return cfgErr
}

func Test_ConfigurationLoader_LoadConfigurationFromBytes_Full(t *testing.T) {
	cfg, err := newLoader(t).LoadConfigurationFromBytes([]byte(clockYAML))
	require.NoError(t, err)

	assert.Equal(t, "1", cfg.Version)
	assert.Equal(t, "0.1.0", cfg.MinCompilerVersion)
	assert.Equal(t, entities.Controller{ID: "clock", TimeID: "sntp", ResetSwitch: true}, cfg.Controller)
	assert.Equal(t, entities.FontSpec{ID: entities.DefaultFontID, Size: 24}, cfg.Font)
	assert.Equal(t, values.DeviceClass("temperature"), cfg.Sensors[0].DeviceClass)
	assert.Equal(t, "Living room", cfg.Sensors[0].Name)
	assert.Equal(t, []byte(clockYAML), cfg.Raw)

	require.Len(t, cfg.Groups, 3)
	main := cfg.Groups[0]
	assert.True(t, main.Visible)
	assert.Equal(t, entities.IconGlyph{Name: "mdi:bell"}, main.Glyph)
	require.Len(t, main.Widgets, 3)
	assert.Equal(t, entities.SensorSource{Sensor: "temp"}, main.Widgets[0].Source)

	binary, ok := main.Widgets[1].Source.(entities.BinarySensorSource)
	require.True(t, ok)
	assert.Equal(t, values.Identifier("door"), binary.BinarySensor)
	assert.Equal(t, entities.IconListGlyph{Names: []string{"door-open", "alarm"}}, binary.OnGlyph)
	assert.Equal(t, entities.IconGlyph{Name: "door-closed"}, binary.OffGlyph)
	require.NotNil(t, binary.Sticky)
	assert.True(t, *binary.Sticky)

	assert.Equal(t, entities.DigitalTimeSource{Time: "sntp", Format: entities.DefaultTimeFormat}, main.Widgets[2].Source)

	side := cfg.Groups[1]
	assert.False(t, side.Visible)
	assert.Equal(t, entities.WildcardGlyph{}, side.Glyph)
	assert.Equal(t, values.Identifier("face"), side.Widgets[0].ID)
	assert.Equal(t, entities.AnalogTimeSource{Time: "sntp"}, side.Widgets[0].Source)

	assert.Equal(t, entities.ImageGlyph{Handle: "logo"}, cfg.Groups[2].Glyph)
}

func Test_ConfigurationLoader_LoadConfigurationFromBytes_Defaults(t *testing.T) {
	cfg, err := newLoader(t).LoadConfigurationFromBytes([]byte("groups:\n  - id: main\n"))
	require.NoError(t, err)

	assert.Equal(t, entities.Controller{ID: entities.DefaultControllerID, ResetSwitch: true}, cfg.Controller)
	assert.Equal(t, entities.FontSpec{ID: entities.DefaultFontID, Size: entities.DefaultFontSize}, cfg.Font)
	require.Len(t, cfg.Groups, 1)
	assert.Equal(t, entities.EmptyGlyph{}, cfg.Groups[0].Glyph)
	assert.Empty(t, cfg.Groups[0].Widgets)
}

func Test_ConfigurationLoader_LoadConfigurationFromBytes_ResetSwitchDisabled(t *testing.T) {
	cfg, err := newLoader(t).LoadConfigurationFromBytes([]byte("controller:\n  reset_switch: false\ngroups: []\n"))
	require.NoError(t, err)
	assert.False(t, cfg.Controller.ResetSwitch)
}

func Test_ConfigurationLoader_LoadConfigurationFromBytes_BaudRate(t *testing.T) {
	l := newLoader(t)

	_, err := l.LoadConfigurationFromBytes([]byte("logger:\n  baud_rate: 115200\ngroups: []\n"))
	cfgErr := requireConfigError(t, err)
	assert.Equal(t, "logger.baud_rate", cfgErr.Path)
	assert.Contains(t, cfgErr.Message, "baud_rate = 0")

	_, err = l.LoadConfigurationFromBytes([]byte("logger:\n  baud_rate: 0\ngroups: []\n"))
	assert.NoError(t, err)
}

func Test_ConfigurationLoader_LoadConfigurationFromBytes_HandleResolution(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		path string
	}{
		{
			name: "unknown sensor",
			yaml: "groups:\n  - id: main\n    widgets:\n      - type: sensor\n        sensor_id: temp\n",
			path: "groups[0] (main).widgets[0].sensor_id",
		},
		{
			name: "sensor used as binary sensor",
			yaml: "sensors:\n  - id: temp\ngroups:\n  - id: main\n    widgets:\n      - type: binary_sensor\n        binary_sensor_id: temp\n",
			path: "groups[0] (main).widgets[0].binary_sensor_id",
		},
		{
			name: "unknown time",
			yaml: "groups:\n  - id: main\n    widgets:\n      - type: analog-time\n        time_id: sntp\n",
			path: "groups[0] (main).widgets[0].time_id",
		},
		{
			name: "unknown controller time",
			yaml: "controller:\n  time_id: sntp\ngroups: []\n",
			path: "controller.time_id",
		},
		{
			name: "unknown image",
			yaml: "groups:\n  - id: main\n    glyph:\n      image: logo\n",
			path: "groups[0].glyph.image",
		},
		{
			name: "duplicate group",
			yaml: "groups:\n  - id: main\n  - id: main\n",
			path: "groups[1].id",
		},
		{
			name: "duplicate handle",
			yaml: "sensors:\n  - id: temp\ntimes:\n  - id: temp\ngroups: []\n",
			path: "times[0].id",
		},
	}

	l := newLoader(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := l.LoadConfigurationFromBytes([]byte(tt.yaml))
			cfgErr := requireConfigError(t, err)
			assert.Equal(t, tt.path, cfgErr.Path)
		})
	}
}

func Test_ConfigurationLoader_LoadConfigurationFromBytes_SchemaViolations(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		path    string
		message string
	}{
		{
			name:    "missing handle for widget type",
			yaml:    "groups:\n  - id: main\n    widgets:\n      - type: sensor\n",
			path:    "groups[0].widgets[0]",
			message: "sensor_id",
		},
		{
			name:    "bad identifier",
			yaml:    "groups:\n  - id: 9lives\n",
			path:    "groups[0].id",
			message: "groups[0].id",
		},
		{
			name:    "unknown widget type",
			yaml:    "groups:\n  - id: main\n    widgets:\n      - type: gauge\n",
			path:    "groups[0].widgets[0].type",
			message: "groups[0].widgets[0].type",
		},
		{
			name:    "unknown top-level key",
			yaml:    "colour: red\ngroups: []\n",
			path:    "",
			message: "colour",
		},
		{
			name:    "groups required",
			yaml:    "sensors: []\n",
			path:    "",
			message: "groups",
		},
	}

	l := newLoader(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := l.LoadConfigurationFromBytes([]byte(tt.yaml))
			cfgErr := requireConfigError(t, err)
			assert.Equal(t, tt.path, cfgErr.Path)
			assert.Contains(t, cfgErr.Message, tt.message)
		})
	}
}

func Test_ConfigurationLoader_LoadConfigurationFromBytes_Empty(t *testing.T) {
	_, err := newLoader(t).LoadConfigurationFromBytes([]byte("  \n"))
	cfgErr := requireConfigError(t, err)
	assert.Contains(t, cfgErr.Message, "empty")
}

func Test_ConfigurationLoader_LoadConfiguration_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clock.yaml")
	require.NoError(t, os.WriteFile(path, []byte(clockYAML), 0o600))

	cfg, err := newLoader(t).LoadConfiguration(path)
	require.NoError(t, err)
	assert.Len(t, cfg.Groups, 3)

	_, err = newLoader(t).LoadConfiguration(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func Test_pointerToPath(t *testing.T) {
	assert.Equal(t, "", pointerToPath(""))
	assert.Equal(t, "groups[0].widgets[12].type", pointerToPath("/groups/0/widgets/12/type"))
	assert.Equal(t, "a/b", pointerToPath("/a~1b"))
}
