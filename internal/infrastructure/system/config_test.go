package system

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Load_Defaults(t *testing.T) {
	cfg, err := Load(viper.New())

	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func Test_Load_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "glyphc.yaml")
	content := `
catalog_path: /opt/mdi/meta.yaml
font_size: 28
output_format: json
strict_identifiers: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "/opt/mdi/meta.yaml", cfg.CatalogPath)
	assert.Equal(t, 28, cfg.FontSize)
	assert.Equal(t, "json", cfg.OutputFormat)
	assert.True(t, cfg.StrictIdentifiers)
	assert.Equal(t, 4, cfg.Parallelism)
}

func Test_Load_EnvOverride(t *testing.T) {
	t.Setenv("GLYPHC_OUTPUT_FORMAT", "yaml")
	t.Setenv("GLYPHC_PARALLELISM", "1")

	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "yaml", cfg.OutputFormat)
	assert.Equal(t, 1, cfg.Parallelism)
}

func Test_Config_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "bad format", mutate: func(c *Config) { c.OutputFormat = "xml" }, wantErr: "invalid output_format"},
		{name: "negative font size", mutate: func(c *Config) { c.FontSize = -1 }, wantErr: "font_size"},
		{name: "negative parallelism", mutate: func(c *Config) { c.Parallelism = -2 }, wantErr: "parallelism"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
