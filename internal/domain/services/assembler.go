package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/reglet-dev/glyphc/internal/domain/entities"
	"github.com/reglet-dev/glyphc/internal/domain/values"
)

// FontRequest is what the assembler asks the font collaborator to build.
type FontRequest struct {
	ID    values.Identifier
	Icons []string // sorted
	Size  int
	File  string
}

// FontBuilder builds the icon font for the final selection set. It is called
// exactly once per compilation.
type FontBuilder interface {
	Build(ctx context.Context, req FontRequest) (*entities.FontHandle, error)
}

// AssemblyState is the position of an assembly pass in its state machine.
type AssemblyState int

const (
	StateInit AssemblyState = iota
	StateIconExtraction
	StateFontBuild
	StateGroupWalk
	StateWidgetWalk
	StateDone
)

func (s AssemblyState) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateIconExtraction:
		return "icon-extraction"
	case StateFontBuild:
		return "font-build"
	case StateGroupWalk:
		return "group-walk"
	case StateWidgetWalk:
		return "widget-walk"
	case StateDone:
		return "done"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Assembly is the output of one assembly pass. Instructions are in
// declaration order and still need sequencing.
type Assembly struct {
	CompilationID values.CompilationID
	Instructions  []entities.Instruction
	Font          *entities.FontHandle
	Selection     []string
	Pruned        []values.Identifier
	Diagnostics   []entities.Diagnostic
}

// ObjectGraphAssembler walks the group → widget → glyph tree and produces one
// instruction per object construction, wiring and registration.
type ObjectGraphAssembler struct {
	fonts  FontBuilder
	filter *GroupFilter
}

// NewObjectGraphAssembler creates an assembler. filter may be nil.
func NewObjectGraphAssembler(fonts FontBuilder, filter *GroupFilter) *ObjectGraphAssembler {
	return &ObjectGraphAssembler{fonts: fonts, filter: filter}
}

// Assemble runs one pass over cfg. Any error aborts the pass and no
// instructions are returned.
func (a *ObjectGraphAssembler) Assemble(ctx context.Context, cc *CompilationContext, cfg *entities.Configuration) (*Assembly, error) {
	if cfg == nil {
		return nil, fmt.Errorf("cannot assemble nil configuration")
	}

	p := &assemblyPass{
		assembler: a,
		cc:        cc,
		cfg:       cfg,
		list:      &InstructionList{},
		glyphs:    make(map[glyphSlot]ResolvedGlyph),
	}
	p.registrar = NewDerivedEntityRegistrar(cfg, cc.Allocator, p.list, cc.Logger)
	return p.run(ctx)
}

// glyphSlot locates one glyph reference in the configuration tree.
// widget is -1 for the group glyph.
type glyphSlot struct {
	group  int
	widget int
	field  string
}

type deferredGlyph struct {
	slot     glyphSlot
	ref      entities.GlyphRef
	location string
}

type assemblyPass struct {
	assembler *ObjectGraphAssembler
	cc        *CompilationContext
	cfg       *entities.Configuration
	list      *InstructionList
	registrar *DerivedEntityRegistrar

	state    AssemblyState
	visible  []int
	pruned   []values.Identifier
	glyphs   map[glyphSlot]ResolvedGlyph
	deferred []deferredGlyph
	notes    []entities.Diagnostic
	font     *entities.FontHandle
}

func (p *assemblyPass) enter(state AssemblyState) {
	p.cc.Logger.Debug("assembly state", "from", p.state.String(), "to", state.String())
	p.state = state
}

func (p *assemblyPass) run(ctx context.Context) (*Assembly, error) {
	p.enter(StateIconExtraction)
	if err := p.extractIcons(); err != nil {
		return nil, err
	}

	p.enter(StateFontBuild)
	if err := p.buildFont(ctx); err != nil {
		return nil, err
	}

	p.enter(StateGroupWalk)
	if err := p.claimDeclared(); err != nil {
		return nil, err
	}
	p.emitFont()
	if err := p.emitController(); err != nil {
		return nil, err
	}
	for _, gi := range p.visible {
		if err := p.walkGroup(gi); err != nil {
			return nil, err
		}
	}

	p.enter(StateDone)
	return &Assembly{
		CompilationID: values.NewCompilationID(p.cfg.Raw),
		Instructions:  p.list.Take(),
		Font:          p.font,
		Selection:     p.cc.Selection.Sorted(),
		Pruned:        p.pruned,
		Diagnostics:   append(p.notes, p.cc.Allocator.Diagnostics()...),
	}, nil
}

// extractIcons seeds the selection set from device classes, then resolves
// every concrete glyph of the surviving groups, then expands wildcards
// against the now stable selection.
func (p *assemblyPass) extractIcons() error {
	for _, s := range p.cfg.DeclaredSensors() {
		icons := IconsForDeviceClass(s.DeviceClass)
		if len(icons) == 0 && !s.DeviceClass.IsEmpty() {
			p.cc.Logger.Debug("device class implies no icons", "sensor", s.ID.String(), "device_class", s.DeviceClass.String())
			p.notes = append(p.notes, entities.Diagnostic{
				Severity: entities.SeverityNote,
				Code:     entities.CodeUnknownDeviceClass,
				Message:  fmt.Sprintf("device class %q of sensor %s implies no icons", s.DeviceClass, s.ID),
				Location: "sensor " + s.ID.String(),
			})
		}
		for _, icon := range icons {
			p.cc.Selection.Add(icon)
		}
	}

	for gi, g := range p.cfg.Groups {
		keep, err := p.keep(g)
		if err != nil {
			return err
		}
		if !keep {
			p.cc.Logger.Debug("group pruned", "group", g.ID.String(), "visible", g.Visible)
			p.pruned = append(p.pruned, g.ID)
			continue
		}
		p.visible = append(p.visible, gi)

		if err := p.collect(glyphSlot{group: gi, widget: -1, field: "glyph"}, g.Glyph, entities.GroupLocation(gi, g.ID)); err != nil {
			return err
		}
		for wi, w := range g.Widgets {
			c := &glyphCollector{}
			if err := w.Source.Accept(c); err != nil {
				return err
			}
			loc := entities.WidgetLocation(gi, g.ID, wi)
			for _, fg := range c.glyphs {
				if err := p.collect(glyphSlot{group: gi, widget: wi, field: fg.field}, fg.ref, loc+"."+fg.field); err != nil {
					return err
				}
			}
		}
	}

	for _, d := range p.deferred {
		resolved, err := p.cc.Resolver.Resolve(d.ref, d.location)
		if err != nil {
			return err
		}
		p.glyphs[d.slot] = resolved
	}
	return nil
}

func (p *assemblyPass) keep(g entities.Group) (bool, error) {
	if !g.Visible {
		return false, nil
	}
	return p.assembler.filter.Matches(g)
}

func (p *assemblyPass) collect(slot glyphSlot, ref entities.GlyphRef, location string) error {
	if IsDeferred(ref) {
		p.deferred = append(p.deferred, deferredGlyph{slot: slot, ref: ref, location: location})
		return nil
	}
	resolved, err := p.cc.Resolver.Resolve(ref, location)
	if err != nil {
		return err
	}
	p.glyphs[slot] = resolved
	return nil
}

func (p *assemblyPass) buildFont(ctx context.Context) error {
	req := FontRequest{
		ID:    p.cfg.Font.ID,
		Icons: p.cc.Selection.Sorted(),
		Size:  p.cfg.Font.Size,
		File:  p.cfg.Font.File,
	}
	font, err := p.assembler.fonts.Build(ctx, req)
	if err != nil {
		var fbe *entities.FontBuildError
		if errors.As(err, &fbe) {
			return fbe
		}
		return &entities.FontBuildError{Cause: err}
	}
	p.font = font
	p.cc.Logger.Debug("font built", "font", font.ID.String(), "glyphs", len(font.Glyphs))
	return nil
}

// claimDeclared reserves every identifier the host or the tree already owns.
func (p *assemblyPass) claimDeclared() error {
	for _, id := range p.cfg.DeclaredHandles() {
		if err := p.cc.Allocator.Claim(id, "declared entity"); err != nil {
			return err
		}
	}
	if err := p.cc.Allocator.Claim(p.font.ID, "font"); err != nil {
		return err
	}
	if err := p.cc.Allocator.Claim(p.cfg.Controller.ID, "controller"); err != nil {
		return err
	}
	for _, gi := range p.visible {
		g := p.cfg.Groups[gi]
		if err := p.cc.Allocator.Claim(g.ID, entities.GroupLocation(gi, g.ID)); err != nil {
			return err
		}
	}
	return nil
}

func (p *assemblyPass) emitFont() {
	p.list.Construct(entities.PhaseFont, p.font.ID, TypeGlyphFont,
		arg("size", entities.IntOperand(p.font.Size)),
		arg("glyphs", entities.CodepointsOperand(p.font.Codepoints())))
}

func (p *assemblyPass) emitController() error {
	ctrl := p.cfg.Controller
	p.list.Construct(entities.PhaseController, ctrl.ID, TypeController, arg("font", ref(p.font.ID)))
	if !ctrl.TimeID.IsEmpty() {
		p.list.Wire(ctrl.ID, "time", hostRef(ctrl.TimeID))
	}
	p.list.Register(entities.PhaseRegistration, &entities.EntityConfig{
		ID:   ctrl.ID,
		Name: ctrl.ID.String(),
		Kind: values.EntityKindComponent,
	})
	if ctrl.ResetSwitch {
		if _, err := p.registrar.RegisterResetSwitch(ctrl.ID); err != nil {
			return err
		}
	}
	return nil
}

func (p *assemblyPass) walkGroup(gi int) error {
	g := p.cfg.Groups[gi]
	p.list.Construct(entities.PhaseGroup, g.ID, TypeGroup,
		arg("controller", ref(p.cfg.Controller.ID)),
		arg("name", entities.StringOperand(g.ID.String())))
	p.list.Wire(g.ID, "glyph", p.glyphs[glyphSlot{group: gi, widget: -1, field: "glyph"}].Operand())

	p.enter(StateWidgetWalk)
	for wi, w := range g.Widgets {
		id := w.ID
		if id.IsEmpty() {
			id = values.Identifier(fmt.Sprintf("%s_%s_%d", g.ID, w.Source.Kind().Slug(), wi))
		}
		loc := entities.WidgetLocation(gi, g.ID, wi)
		if err := p.cc.Allocator.Claim(id, loc); err != nil {
			return err
		}
		e := &widgetEmitter{pass: p, groupIndex: gi, group: g, index: wi, id: id, location: loc}
		if err := w.Source.Accept(e); err != nil {
			return err
		}
	}
	p.enter(StateGroupWalk)
	return nil
}

// fieldGlyph is one glyph-valued field of a widget source.
type fieldGlyph struct {
	field string
	ref   entities.GlyphRef
}

// glyphCollector lists the glyph references a widget source carries.
type glyphCollector struct {
	glyphs []fieldGlyph
}

func (c *glyphCollector) VisitSensor(entities.SensorSource) error { return nil }

func (c *glyphCollector) VisitBinarySensor(s entities.BinarySensorSource) error {
	c.glyphs = append(c.glyphs,
		fieldGlyph{field: "on_glyph", ref: s.OnGlyph},
		fieldGlyph{field: "off_glyph", ref: s.OffGlyph})
	return nil
}

func (c *glyphCollector) VisitDigitalTime(entities.DigitalTimeSource) error { return nil }

func (c *glyphCollector) VisitAnalogTime(entities.AnalogTimeSource) error { return nil }

// widgetEmitter emits the instructions of one widget.
type widgetEmitter struct {
	pass       *assemblyPass
	groupIndex int
	group      entities.Group
	index      int
	id         values.Identifier
	location   string
}

func (e *widgetEmitter) VisitSensor(s entities.SensorSource) error {
	e.construct(TypeSensorWidget, s.Sensor)
	e.wireClassIcons(s.Sensor)
	e.register()
	return nil
}

func (e *widgetEmitter) VisitBinarySensor(s entities.BinarySensorSource) error {
	e.construct(TypeBinarySensorWidget, s.BinarySensor)
	e.wireClassIcons(s.BinarySensor)
	e.wireGlyph("on_glyph")
	e.wireGlyph("off_glyph")
	e.register()
	_, _, err := e.pass.registrar.RegisterBinarySensorDerivatives(e.id, s, e.index, e.location)
	return err
}

func (e *widgetEmitter) VisitDigitalTime(s entities.DigitalTimeSource) error {
	e.construct(TypeDigitalTimeWidget, s.Time)
	format := s.Format
	if format == "" {
		format = entities.DefaultTimeFormat
	}
	e.pass.list.Wire(e.id, "format", entities.StringOperand(format))
	e.register()
	return nil
}

func (e *widgetEmitter) VisitAnalogTime(s entities.AnalogTimeSource) error {
	e.construct(TypeAnalogTimeWidget, s.Time)
	e.register()
	return nil
}

func (e *widgetEmitter) construct(typ string, handle values.Identifier) {
	e.pass.list.Construct(entities.PhaseWidget, e.id, typ, arg("group", ref(e.group.ID)))
	e.pass.list.Wire(e.id, "source", hostRef(handle))
}

func (e *widgetEmitter) wireClassIcons(handle values.Identifier) {
	icons := IconsForDeviceClass(e.pass.registrar.DeviceClassOf(handle))
	if len(icons) == 0 {
		return
	}
	e.pass.list.Wire(e.id, "class_icons", entities.CodepointsOperand(e.pass.cc.Resolver.Codepoints(icons)))
}

func (e *widgetEmitter) wireGlyph(field string) {
	slot := glyphSlot{group: e.groupIndex, widget: e.index, field: field}
	e.pass.list.Wire(e.id, field, e.pass.glyphs[slot].Operand())
}

func (e *widgetEmitter) register() {
	e.pass.list.Register(entities.PhaseRegistration, &entities.EntityConfig{
		ID:     e.id,
		Name:   e.id.String(),
		Kind:   values.EntityKindWidget,
		Parent: e.group.ID,
	})
}
