// Package services contains application use cases.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/reglet-dev/glyphc/internal/application/dto"
	apperrors "github.com/reglet-dev/glyphc/internal/application/errors"
	"github.com/reglet-dev/glyphc/internal/application/ports"
	"github.com/reglet-dev/glyphc/internal/domain/entities"
	"github.com/reglet-dev/glyphc/internal/domain/services"
	"github.com/reglet-dev/glyphc/internal/version"
)

// CompileConfigurationUseCase orchestrates one configuration compilation:
// load, assemble, sequence, then register entities with the host in
// emission order.
type CompileConfigurationUseCase struct {
	configLoader ports.ConfigLoader
	catalogs     ports.CatalogProvider
	fonts        ports.FontBuilder
	hosts        ports.HostRegistrarFactory
	sequencer    *services.InstructionSequencer
	logger       *slog.Logger
}

// NewCompileConfigurationUseCase creates a new compile use case.
func NewCompileConfigurationUseCase(
	configLoader ports.ConfigLoader,
	catalogs ports.CatalogProvider,
	fonts ports.FontBuilder,
	hosts ports.HostRegistrarFactory,
	logger *slog.Logger,
) *CompileConfigurationUseCase {
	if logger == nil {
		logger = slog.Default()
	}

	return &CompileConfigurationUseCase{
		configLoader: configLoader,
		catalogs:     catalogs,
		fonts:        fonts,
		hosts:        hosts,
		sequencer:    services.NewInstructionSequencer(),
		logger:       logger,
	}
}

// Execute compiles a single configuration. No registration happens unless
// assembly and sequencing both succeed.
func (uc *CompileConfigurationUseCase) Execute(ctx context.Context, req dto.CompileRequest) (*dto.CompileResponse, error) {
	startTime := time.Now()

	filter, err := services.CompileGroupFilter(req.Options.FilterExpression)
	if err != nil {
		return nil, apperrors.NewValidationError("filter", err.Error())
	}

	catalog, err := uc.catalogs.Catalog()
	if err != nil {
		return nil, err
	}

	uc.logger.Info("loading configuration", "path", req.ConfigPath)
	cfg, err := uc.configLoader.LoadConfiguration(req.ConfigPath)
	if err != nil {
		return nil, err
	}
	if err := version.CheckMinimum(cfg.MinCompilerVersion); err != nil {
		return nil, entities.NewConfigError("min_compiler_version", err.Error())
	}
	applyFontOverrides(cfg, req.Options)

	cc := services.NewCompilationContext(catalog, uc.logger, req.Options.StrictIdentifiers)
	assembler := services.NewObjectGraphAssembler(uc.fonts, filter)

	assembly, err := assembler.Assemble(ctx, cc, cfg)
	if err != nil {
		return nil, apperrors.NewCompilationError(req.ConfigPath, err)
	}

	ordered, err := uc.sequencer.Sequence(assembly.Instructions)
	if err != nil {
		return nil, apperrors.NewCompilationError(req.ConfigPath, err)
	}

	registered, err := uc.register(ctx, assembly, ordered)
	if err != nil {
		return nil, apperrors.NewCompilationError(req.ConfigPath, err)
	}

	uc.logger.Info("compilation complete",
		"path", req.ConfigPath,
		"compilation_id", assembly.CompilationID.String(),
		"instructions", len(ordered),
		"glyphs", len(assembly.Selection),
		"duration", time.Since(startTime))

	return &dto.CompileResponse{
		CompilationID: assembly.CompilationID,
		ConfigPath:    req.ConfigPath,
		Instructions:  ordered,
		Font:          assembly.Font,
		Selection:     assembly.Selection,
		Pruned:        assembly.Pruned,
		Registered:    registered,
		Diagnostics:   assembly.Diagnostics,
	}, nil
}

// ExecuteMany compiles several configurations concurrently. Each compilation
// gets its own context; only the catalog is shared. Results keep the order
// of reqs. The first failure cancels the remaining compilations.
func (uc *CompileConfigurationUseCase) ExecuteMany(ctx context.Context, reqs []dto.CompileRequest, parallelism int) ([]*dto.CompileResponse, error) {
	// Load the catalog up front so a broken catalog fails once.
	if _, err := uc.catalogs.Catalog(); err != nil {
		return nil, err
	}

	results := make([]*dto.CompileResponse, len(reqs))
	g, gctx := errgroup.WithContext(ctx)
	if parallelism > 0 {
		g.SetLimit(parallelism)
	}

	for i, req := range reqs {
		g.Go(func() error {
			resp, err := uc.Execute(gctx, req)
			if err != nil {
				return err
			}
			results[i] = resp
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (uc *CompileConfigurationUseCase) register(ctx context.Context, assembly *services.Assembly, ordered []entities.Instruction) ([]entities.RegisteredHandle, error) {
	if uc.hosts == nil {
		return nil, nil
	}

	host := uc.hosts.NewRegistrar(assembly.CompilationID)
	var handles []entities.RegisteredHandle
	for _, in := range ordered {
		if in.Op != entities.OpRegister {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		handle, err := host.Register(ctx, in.Entity)
		if err != nil {
			return nil, fmt.Errorf("failed to register %s: %w", in.Target, err)
		}
		handles = append(handles, handle)
	}
	return handles, nil
}

func applyFontOverrides(cfg *entities.Configuration, opts dto.CompileOptions) {
	if opts.FontSizeOverride > 0 {
		cfg.Font.Size = opts.FontSizeOverride
	}
	if opts.FontFileOverride != "" {
		cfg.Font.File = opts.FontFileOverride
	}
}
