package services

import (
	"log/slog"

	"github.com/reglet-dev/glyphc/internal/domain/entities"
	"github.com/reglet-dev/glyphc/internal/domain/values"
)

// binarySensorDerivatives are the entities every binary-sensor widget gets,
// in registration order.
var binarySensorDerivatives = []values.EntityKind{
	values.EntityKindAlertSensor,
	values.EntityKindStickySwitch,
}

// DerivedEntityRegistrar synthesizes the auxiliary entities of widgets and of
// the controller and emits their construction, wiring and registration.
//
// Registration is emitted as instructions; the emitter calls the host in
// stream order once the whole pass has succeeded.
type DerivedEntityRegistrar struct {
	config    *entities.Configuration
	allocator *IdentifierAllocator
	list      *InstructionList
	logger    *slog.Logger
}

// NewDerivedEntityRegistrar creates a registrar for one compilation pass.
func NewDerivedEntityRegistrar(
	config *entities.Configuration,
	allocator *IdentifierAllocator,
	list *InstructionList,
	logger *slog.Logger,
) *DerivedEntityRegistrar {
	if logger == nil {
		logger = slog.Default()
	}
	return &DerivedEntityRegistrar{config: config, allocator: allocator, list: list, logger: logger}
}

// DeviceClassOf returns the declared device class of a host sensor, or the
// empty class when the sensor is not declared.
func (r *DerivedEntityRegistrar) DeviceClassOf(handle values.Identifier) values.DeviceClass {
	sensor, ok := r.config.FindSensor(handle)
	if !ok {
		r.logger.Debug("no declared sensor for handle, using empty device class", "handle", handle.String())
		return ""
	}
	return sensor.DeviceClass
}

// RegisterBinarySensorDerivatives synthesizes the alert sensor and sticky
// switch of a binary-sensor widget. index is the widget's position in its
// group and is used for disambiguation.
func (r *DerivedEntityRegistrar) RegisterBinarySensorDerivatives(
	widgetID values.Identifier,
	source entities.BinarySensorSource,
	index int,
	location string,
) (alert, sticky entities.DerivedEntity, err error) {
	ids, err := r.allocator.AllocateDerivedSet(source.BinarySensor, binarySensorDerivatives, index, location)
	if err != nil {
		return entities.DerivedEntity{}, entities.DerivedEntity{}, err
	}

	alert = entities.DerivedEntity{
		ID:          ids[0],
		BaseName:    source.BinarySensor,
		Kind:        values.EntityKindAlertSensor,
		DeviceClass: r.DeviceClassOf(source.BinarySensor),
		Parent:      widgetID,
	}
	sticky = entities.DerivedEntity{
		ID:           ids[1],
		BaseName:     source.BinarySensor,
		Kind:         values.EntityKindStickySwitch,
		InitialState: source.Sticky,
		Parent:       widgetID,
	}

	r.list.Construct(entities.PhaseWidget, alert.ID, TypeAlertSensor, arg("widget", ref(widgetID)))
	r.list.Construct(entities.PhaseWidget, sticky.ID, TypeStickySwitch, arg("widget", ref(widgetID)))
	r.list.Wire(widgetID, "alert_sensor", ref(alert.ID))
	r.list.Wire(widgetID, "sticky_switch", ref(sticky.ID))
	r.list.Register(entities.PhaseDerivedRegistration, alert.Config(), entities.RegisteredKey(widgetID))
	r.list.Register(entities.PhaseDerivedRegistration, sticky.Config(), entities.RegisteredKey(alert.ID))

	r.logger.Debug("derived entities synthesized",
		"widget", widgetID.String(),
		"alert_sensor", alert.ID.String(),
		"sticky_switch", sticky.ID.String())

	return alert, sticky, nil
}

// RegisterResetSwitch synthesizes the controller's reset switch.
func (r *DerivedEntityRegistrar) RegisterResetSwitch(controllerID values.Identifier) (entities.DerivedEntity, error) {
	id := r.allocator.AllocateDerived(controllerID, values.EntityKindResetSwitch)
	if err := r.allocator.Claim(id, "controller"); err != nil {
		return entities.DerivedEntity{}, err
	}

	reset := entities.DerivedEntity{
		ID:       id,
		BaseName: controllerID,
		Kind:     values.EntityKindResetSwitch,
		Enabled:  true,
		Parent:   controllerID,
	}

	r.list.Construct(entities.PhaseWidget, reset.ID, TypeResetSwitch, arg("controller", ref(controllerID)))
	r.list.Register(entities.PhaseDerivedRegistration, reset.Config(), entities.RegisteredKey(controllerID))
	return reset, nil
}
