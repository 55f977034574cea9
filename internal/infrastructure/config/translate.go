package config

import (
	"fmt"

	"github.com/reglet-dev/glyphc/internal/domain/entities"
	"github.com/reglet-dev/glyphc/internal/domain/values"
)

// translator turns a shape-checked document into the domain configuration
// tree. It applies defaults and resolves every handle reference against the
// declarations; any failure is a *entities.ConfigError.
type translator struct {
	sensors       map[values.Identifier]bool
	binarySensors map[values.Identifier]bool
	times         map[values.Identifier]bool
	images        map[values.Identifier]bool
	declared      map[values.Identifier]string
}

func newTranslator() *translator {
	return &translator{
		sensors:       make(map[values.Identifier]bool),
		binarySensors: make(map[values.Identifier]bool),
		times:         make(map[values.Identifier]bool),
		images:        make(map[values.Identifier]bool),
		declared:      make(map[values.Identifier]string),
	}
}

func (t *translator) translate(doc *document, raw []byte) (*entities.Configuration, error) {
	// The clock bus shares the UART with the logger.
	if doc.Logger != nil && doc.Logger.BaudRate != nil && *doc.Logger.BaudRate != 0 {
		return nil, entities.NewConfigError("logger.baud_rate",
			"the clock bus uses the serial port, make sure logger.baud_rate = 0")
	}

	cfg := &entities.Configuration{
		MinCompilerVersion: doc.MinCompilerVersion,
		Raw:                raw,
	}
	if doc.Version != nil {
		cfg.Version = fmt.Sprint(doc.Version)
	}

	var err error
	if cfg.Sensors, err = t.sensorDecls("sensors", doc.Sensors, t.sensors); err != nil {
		return nil, err
	}
	if cfg.BinarySensors, err = t.sensorDecls("binary_sensors", doc.BinarySensors, t.binarySensors); err != nil {
		return nil, err
	}
	if cfg.Times, err = t.handleDecls("times", doc.Times, t.times); err != nil {
		return nil, err
	}
	if cfg.Images, err = t.handleDecls("images", doc.Images, t.images); err != nil {
		return nil, err
	}
	if cfg.Controller, err = t.controller(doc.Controller); err != nil {
		return nil, err
	}
	if cfg.Font, err = t.font(doc.Font); err != nil {
		return nil, err
	}

	groupIDs := make(map[values.Identifier]int)
	for gi, gd := range doc.Groups {
		g, err := t.group(gi, gd)
		if err != nil {
			return nil, err
		}
		if prev, dup := groupIDs[g.ID]; dup {
			return nil, entities.NewConfigError(fmt.Sprintf("groups[%d].id", gi),
				fmt.Sprintf("duplicate group id %q (first declared at groups[%d])", g.ID, prev))
		}
		groupIDs[g.ID] = gi
		cfg.Groups = append(cfg.Groups, g)
	}

	return cfg, nil
}

func (t *translator) identifier(path, raw string) (values.Identifier, error) {
	id, err := values.NewIdentifier(raw)
	if err != nil {
		return "", entities.NewConfigError(path, err.Error())
	}
	return id, nil
}

func (t *translator) declare(path string, id values.Identifier) error {
	if prev, dup := t.declared[id]; dup {
		return entities.NewConfigError(path, fmt.Sprintf("handle %q is already declared at %s", id, prev))
	}
	t.declared[id] = path
	return nil
}

func (t *translator) sensorDecls(section string, docs []sensorDoc, index map[values.Identifier]bool) ([]entities.SensorDecl, error) {
	out := make([]entities.SensorDecl, 0, len(docs))
	for i, d := range docs {
		path := fmt.Sprintf("%s[%d].id", section, i)
		id, err := t.identifier(path, d.ID)
		if err != nil {
			return nil, err
		}
		if err := t.declare(path, id); err != nil {
			return nil, err
		}
		index[id] = true
		out = append(out, entities.SensorDecl{
			ID:          id,
			Name:        d.Name,
			DeviceClass: values.NewDeviceClass(d.DeviceClass),
		})
	}
	return out, nil
}

func (t *translator) handleDecls(section string, docs []handleDoc, index map[values.Identifier]bool) ([]entities.HandleDecl, error) {
	out := make([]entities.HandleDecl, 0, len(docs))
	for i, d := range docs {
		path := fmt.Sprintf("%s[%d].id", section, i)
		id, err := t.identifier(path, d.ID)
		if err != nil {
			return nil, err
		}
		if err := t.declare(path, id); err != nil {
			return nil, err
		}
		index[id] = true
		out = append(out, entities.HandleDecl{ID: id})
	}
	return out, nil
}

func (t *translator) controller(d *controllerDoc) (entities.Controller, error) {
	ctrl := entities.Controller{ID: entities.DefaultControllerID, ResetSwitch: true}
	if d == nil {
		return ctrl, nil
	}

	if d.ID != "" {
		id, err := t.identifier("controller.id", d.ID)
		if err != nil {
			return ctrl, err
		}
		ctrl.ID = id
	}
	if d.TimeID != "" {
		id, err := t.reference("controller.time_id", d.TimeID, t.times, "time source")
		if err != nil {
			return ctrl, err
		}
		ctrl.TimeID = id
	}
	if d.ResetSwitch != nil {
		ctrl.ResetSwitch = *d.ResetSwitch
	}
	return ctrl, nil
}

func (t *translator) font(d fontDoc) (entities.FontSpec, error) {
	spec := entities.FontSpec{ID: entities.DefaultFontID, Size: entities.DefaultFontSize, File: d.File}
	if d.ID != "" {
		id, err := t.identifier("font.id", d.ID)
		if err != nil {
			return spec, err
		}
		spec.ID = id
	}
	if d.Size > 0 {
		spec.Size = d.Size
	}
	return spec, nil
}

func (t *translator) reference(path, raw string, index map[values.Identifier]bool, what string) (values.Identifier, error) {
	id, err := t.identifier(path, raw)
	if err != nil {
		return "", err
	}
	if !index[id] {
		return "", entities.NewConfigError(path, fmt.Sprintf("unknown %s %q", what, id))
	}
	return id, nil
}

func (t *translator) group(gi int, d groupDoc) (entities.Group, error) {
	base := fmt.Sprintf("groups[%d]", gi)
	id, err := t.identifier(base+".id", d.ID)
	if err != nil {
		return entities.Group{}, err
	}

	g := entities.Group{ID: id, Visible: true}
	if d.Visible != nil {
		g.Visible = *d.Visible
	}
	if g.Glyph, err = t.glyph(base+".glyph", d.Glyph); err != nil {
		return entities.Group{}, err
	}

	for wi, wd := range d.Widgets {
		w, err := t.widget(gi, id, wi, wd)
		if err != nil {
			return entities.Group{}, err
		}
		g.Widgets = append(g.Widgets, w)
	}
	return g, nil
}

func (t *translator) widget(gi int, groupID values.Identifier, wi int, d widgetDoc) (entities.Widget, error) {
	loc := entities.WidgetLocation(gi, groupID, wi)
	var w entities.Widget

	if d.ID != "" {
		id, err := t.identifier(loc+".id", d.ID)
		if err != nil {
			return w, err
		}
		w.ID = id
	}

	kind, err := entities.ParseSourceKind(d.Type)
	if err != nil {
		return w, entities.NewConfigError(loc+".type", err.Error())
	}

	switch kind {
	case entities.SourceKindSensor:
		handle, err := t.reference(loc+".sensor_id", d.SensorID, t.sensors, "sensor")
		if err != nil {
			return w, err
		}
		w.Source = entities.SensorSource{Sensor: handle}

	case entities.SourceKindBinarySensor:
		handle, err := t.reference(loc+".binary_sensor_id", d.BinarySensorID, t.binarySensors, "binary sensor")
		if err != nil {
			return w, err
		}
		src := entities.BinarySensorSource{BinarySensor: handle, Sticky: d.Sticky}
		if src.OnGlyph, err = t.glyph(loc+".on_glyph", d.OnGlyph); err != nil {
			return w, err
		}
		if src.OffGlyph, err = t.glyph(loc+".off_glyph", d.OffGlyph); err != nil {
			return w, err
		}
		w.Source = src

	case entities.SourceKindDigitalTime:
		handle, err := t.reference(loc+".time_id", d.TimeID, t.times, "time source")
		if err != nil {
			return w, err
		}
		format := d.Format
		if format == "" {
			format = entities.DefaultTimeFormat
		}
		w.Source = entities.DigitalTimeSource{Time: handle, Format: format}

	case entities.SourceKindAnalogTime:
		handle, err := t.reference(loc+".time_id", d.TimeID, t.times, "time source")
		if err != nil {
			return w, err
		}
		w.Source = entities.AnalogTimeSource{Time: handle}
	}

	return w, nil
}

// glyph decodes a glyph field: null, an icon name, "*", a list of icon names
// or {image: <handle>}.
func (t *translator) glyph(path string, raw any) (entities.GlyphRef, error) {
	switch v := raw.(type) {
	case nil:
		return entities.EmptyGlyph{}, nil

	case string:
		if v == entities.WildcardMarker {
			return entities.WildcardGlyph{}, nil
		}
		return entities.IconGlyph{Name: v}, nil

	case []any:
		names := make([]string, 0, len(v))
		for i, item := range v {
			name, ok := item.(string)
			if !ok {
				return nil, entities.NewConfigError(fmt.Sprintf("%s[%d]", path, i), "icon names must be strings")
			}
			names = append(names, name)
		}
		return entities.IconListGlyph{Names: names}, nil

	case map[string]any:
		image, ok := v["image"].(string)
		if !ok || len(v) != 1 {
			return nil, entities.NewConfigError(path, "an image glyph must be written as {image: <handle>}")
		}
		handle, err := t.reference(path+".image", image, t.images, "image")
		if err != nil {
			return nil, err
		}
		return entities.ImageGlyph{Handle: handle}, nil

	default:
		return nil, entities.NewConfigError(path, fmt.Sprintf("unsupported glyph value of type %T", raw))
	}
}
