package values

import "fmt"

// EntityKind classifies entities registered with the host platform.
type EntityKind string

const (
	// EntityKindComponent is the clock controller itself
	EntityKindComponent EntityKind = "component"
	// EntityKindWidget is a primary widget declared in a group
	EntityKindWidget EntityKind = "widget"
	// EntityKindAlertSensor is the binary sensor synthesized for a binary-sensor widget
	EntityKindAlertSensor EntityKind = "alert_sensor"
	// EntityKindStickySwitch is the switch that latches a binary-sensor widget's alert
	EntityKindStickySwitch EntityKind = "sticky_switch"
	// EntityKindResetSwitch is the controller's reset switch
	EntityKindResetSwitch EntityKind = "reset_switch"
)

// Suffix returns the identifier suffix used when synthesizing an entity of this kind.
func (k EntityKind) Suffix() string {
	switch k {
	case EntityKindAlertSensor:
		return "sensor"
	case EntityKindStickySwitch:
		return "sticky_switch"
	case EntityKindResetSwitch:
		return "reset"
	default:
		return string(k)
	}
}

// IsDerived returns true for entities synthesized by the compiler
func (k EntityKind) IsDerived() bool {
	switch k {
	case EntityKindAlertSensor, EntityKindStickySwitch, EntityKindResetSwitch:
		return true
	default:
		return false
	}
}

// Validate returns an error if the kind value is invalid
func (k EntityKind) Validate() error {
	switch k {
	case EntityKindComponent, EntityKindWidget, EntityKindAlertSensor,
		EntityKindStickySwitch, EntityKindResetSwitch:
		return nil
	default:
		return fmt.Errorf("invalid entity kind: %s", k)
	}
}
