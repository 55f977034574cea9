package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reglet-dev/glyphc/internal/application/dto"
	apperrors "github.com/reglet-dev/glyphc/internal/application/errors"
	"github.com/reglet-dev/glyphc/internal/application/ports"
	"github.com/reglet-dev/glyphc/internal/domain/entities"
	"github.com/reglet-dev/glyphc/internal/domain/services"
	"github.com/reglet-dev/glyphc/internal/domain/values"
)

type fakeConfigLoader struct {
	configs map[string]func() *entities.Configuration
	err     error
}

func (f *fakeConfigLoader) LoadConfiguration(path string) (*entities.Configuration, error) {
	if f.err != nil {
		return nil, f.err
	}
	build, ok := f.configs[path]
	if !ok {
		return nil, entities.NewConfigError("", "no such file: "+path)
	}
	return build(), nil
}

type fakeCatalogs struct {
	mu      sync.Mutex
	catalog *entities.Catalog
	err     error
	calls   int
}

func (f *fakeCatalogs) Catalog() (*entities.Catalog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.catalog, f.err
}

type fakeFonts struct {
	catalog *entities.Catalog
}

func (f *fakeFonts) Build(_ context.Context, req services.FontRequest) (*entities.FontHandle, error) {
	handle := &entities.FontHandle{ID: req.ID, Size: req.Size, Source: req.File}
	for _, name := range req.Icons {
		cp, ok := f.catalog.Codepoint(name)
		if !ok {
			return nil, &entities.FontBuildError{Unmapped: []string{name}}
		}
		handle.Glyphs = append(handle.Glyphs, entities.Glyph{Name: name, Codepoint: cp})
	}
	return handle, nil
}

type recordingHost struct {
	mu      sync.Mutex
	entries []*entities.EntityConfig
	failOn  values.Identifier
}

func (h *recordingHost) NewRegistrar(values.CompilationID) ports.HostRegistrar {
	return h
}

func (h *recordingHost) Register(_ context.Context, cfg *entities.EntityConfig) (entities.RegisteredHandle, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if cfg.ID == h.failOn {
		return entities.RegisteredHandle{}, errors.New("host unavailable")
	}
	h.entries = append(h.entries, cfg)
	return entities.RegisteredHandle{ID: cfg.ID, Kind: cfg.Kind, Order: len(h.entries)}, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func clockConfig() *entities.Configuration {
	return &entities.Configuration{
		Controller: entities.Controller{ID: "oclock", TimeID: "sntp", ResetSwitch: true},
		Font:       entities.FontSpec{ID: "glyph_font", Size: 20},
		Sensors:    []entities.SensorDecl{{ID: "temp", DeviceClass: "temperature"}},
		Times:      []entities.HandleDecl{{ID: "sntp"}},
		Groups: []entities.Group{{
			ID:      "main",
			Visible: true,
			Glyph:   entities.IconGlyph{Name: "bell"},
			Widgets: []entities.Widget{
				{Source: entities.SensorSource{Sensor: "temp"}},
				{Source: entities.DigitalTimeSource{Time: "sntp"}},
			},
		}},
		Raw: []byte("clock"),
	}
}

func newUseCase(loader ports.ConfigLoader, host *recordingHost) (*CompileConfigurationUseCase, *fakeCatalogs) {
	catalog := entities.NewCatalog("test", map[string]rune{
		"bell":        0xF0A0,
		"thermometer": 0xF0A4,
	})
	catalogs := &fakeCatalogs{catalog: catalog}
	var hosts ports.HostRegistrarFactory
	if host != nil {
		hosts = host
	}
	return NewCompileConfigurationUseCase(loader, catalogs, &fakeFonts{catalog: catalog}, hosts, testLogger()), catalogs
}

func Test_CompileConfigurationUseCase_Execute_RegistersInEmissionOrder(t *testing.T) {
	host := &recordingHost{}
	loader := &fakeConfigLoader{configs: map[string]func() *entities.Configuration{"clock.yaml": clockConfig}}
	uc, _ := newUseCase(loader, host)

	resp, err := uc.Execute(context.Background(), dto.CompileRequest{ConfigPath: "clock.yaml"})
	require.NoError(t, err)

	assert.Equal(t, values.NewCompilationID([]byte("clock")), resp.CompilationID)
	assert.Equal(t, []string{"bell", "thermometer"}, resp.Selection)
	require.Len(t, resp.Registered, 4)

	var ids []values.Identifier
	for _, h := range resp.Registered {
		ids = append(ids, h.ID)
	}
	assert.Equal(t, []values.Identifier{"oclock", "main_sensor_0", "main_digital_time_1", "oclock_reset"}, ids)
	assert.Equal(t, values.EntityKindResetSwitch, resp.Registered[3].Kind)

	var registerCount int
	for _, in := range resp.Instructions {
		if in.Op == entities.OpRegister {
			registerCount++
		}
	}
	assert.Equal(t, 4, registerCount)
}

func Test_CompileConfigurationUseCase_Execute_FontOverrides(t *testing.T) {
	loader := &fakeConfigLoader{configs: map[string]func() *entities.Configuration{"clock.yaml": clockConfig}}
	uc, _ := newUseCase(loader, nil)

	resp, err := uc.Execute(context.Background(), dto.CompileRequest{
		ConfigPath: "clock.yaml",
		Options:    dto.CompileOptions{FontSizeOverride: 32, FontFileOverride: "icons.ttf"},
	})
	require.NoError(t, err)
	assert.Equal(t, 32, resp.Font.Size)
	assert.Equal(t, "icons.ttf", resp.Font.Source)
	assert.Empty(t, resp.Registered)
}

func Test_CompileConfigurationUseCase_Execute_InvalidFilter(t *testing.T) {
	uc, _ := newUseCase(&fakeConfigLoader{}, nil)

	_, err := uc.Execute(context.Background(), dto.CompileRequest{
		ConfigPath: "clock.yaml",
		Options:    dto.CompileOptions{FilterExpression: "id +"},
	})

	var vErr *apperrors.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "filter", vErr.Field)
}

func Test_CompileConfigurationUseCase_Execute_ConfigError(t *testing.T) {
	uc, _ := newUseCase(&fakeConfigLoader{err: entities.NewConfigError("logger.baud_rate", "must be 0")}, nil)

	_, err := uc.Execute(context.Background(), dto.CompileRequest{ConfigPath: "clock.yaml"})

	var cfgErr *entities.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "logger.baud_rate", cfgErr.Path)
}

func Test_CompileConfigurationUseCase_Execute_NoRegistrationOnFailure(t *testing.T) {
	broken := func() *entities.Configuration {
		cfg := clockConfig()
		cfg.Groups[0].Glyph = entities.IconGlyph{Name: "nonexistent"}
		return cfg
	}
	host := &recordingHost{}
	uc, _ := newUseCase(&fakeConfigLoader{configs: map[string]func() *entities.Configuration{"broken.yaml": broken}}, host)

	_, err := uc.Execute(context.Background(), dto.CompileRequest{ConfigPath: "broken.yaml"})

	var iconErr *entities.UnknownIconError
	require.ErrorAs(t, err, &iconErr)
	assert.Equal(t, "nonexistent", iconErr.Name)

	var compErr *apperrors.CompilationError
	require.ErrorAs(t, err, &compErr)
	assert.Equal(t, "broken.yaml", compErr.ConfigPath)
	assert.Empty(t, host.entries)
}

func Test_CompileConfigurationUseCase_Execute_HostFailure(t *testing.T) {
	host := &recordingHost{failOn: "main_sensor_0"}
	uc, _ := newUseCase(&fakeConfigLoader{configs: map[string]func() *entities.Configuration{"clock.yaml": clockConfig}}, host)

	_, err := uc.Execute(context.Background(), dto.CompileRequest{ConfigPath: "clock.yaml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to register main_sensor_0")
}

func Test_CompileConfigurationUseCase_ExecuteMany(t *testing.T) {
	other := func() *entities.Configuration {
		cfg := clockConfig()
		cfg.Groups[0].ID = "side"
		cfg.Raw = []byte("other")
		return cfg
	}
	loader := &fakeConfigLoader{configs: map[string]func() *entities.Configuration{
		"clock.yaml": clockConfig,
		"other.yaml": other,
	}}
	uc, catalogs := newUseCase(loader, nil)

	results, err := uc.ExecuteMany(context.Background(), []dto.CompileRequest{
		{ConfigPath: "clock.yaml"},
		{ConfigPath: "other.yaml"},
	}, 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "clock.yaml", results[0].ConfigPath)
	assert.Equal(t, "other.yaml", results[1].ConfigPath)
	assert.NotEqual(t, results[0].CompilationID, results[1].CompilationID)
	assert.Equal(t, 3, catalogs.calls)
}

func Test_CompileConfigurationUseCase_ExecuteMany_CatalogFailure(t *testing.T) {
	uc, catalogs := newUseCase(&fakeConfigLoader{}, nil)
	catalogs.err = &entities.CatalogLoadError{Source: "icons.yaml", Cause: errors.New("truncated")}

	_, err := uc.ExecuteMany(context.Background(), []dto.CompileRequest{{ConfigPath: "a.yaml"}}, 1)

	var loadErr *entities.CatalogLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, 1, catalogs.calls)
}
