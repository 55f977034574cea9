package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reglet-dev/glyphc/internal/domain/entities"
	"github.com/reglet-dev/glyphc/internal/domain/values"
)

func Test_DerivedEntityRegistrar_BinarySensorDerivatives(t *testing.T) {
	cfg := &entities.Configuration{
		BinarySensors: []entities.SensorDecl{{ID: "door", DeviceClass: "door"}},
	}
	list := &InstructionList{}
	r := NewDerivedEntityRegistrar(cfg, NewIdentifierAllocator(discardLogger(), false), list, discardLogger())

	sticky := true
	alert, sw, err := r.RegisterBinarySensorDerivatives("main_binary_sensor_0",
		entities.BinarySensorSource{BinarySensor: "door", Sticky: &sticky}, 0, "w0")
	require.NoError(t, err)

	assert.Equal(t, values.Identifier("door_sensor"), alert.ID)
	assert.Equal(t, values.DeviceClass("door"), alert.DeviceClass, "device class copied from the base sensor")
	assert.Equal(t, values.Identifier("door_sticky_switch"), sw.ID)
	require.NotNil(t, sw.InitialState)
	assert.True(t, *sw.InitialState)

	instrs := list.Take()
	var registers []entities.Instruction
	for _, in := range instrs {
		if in.Op == entities.OpRegister {
			registers = append(registers, in)
		}
	}
	require.Len(t, registers, 2)
	assert.Equal(t, values.Identifier("door_sensor"), registers[0].Target, "alert sensor registers first")
	assert.Equal(t, values.Identifier("door_sticky_switch"), registers[1].Target)

	for _, in := range registers {
		assert.True(t, in.Entity.DisabledByDefault, "derived entities are hidden by default")
		assert.Equal(t, entities.PhaseDerivedRegistration, in.Phase)
	}
	assert.Contains(t, registers[0].After, entities.RegisteredKey("main_binary_sensor_0"))
	assert.Contains(t, registers[1].After, entities.RegisteredKey("door_sensor"))
	require.NotNil(t, registers[1].Entity.InitialState, "initial state is part of registration")
}

func Test_DerivedEntityRegistrar_UnknownSensorHasEmptyDeviceClass(t *testing.T) {
	r := NewDerivedEntityRegistrar(&entities.Configuration{}, NewIdentifierAllocator(discardLogger(), false),
		&InstructionList{}, discardLogger())

	alert, sw, err := r.RegisterBinarySensorDerivatives("w", entities.BinarySensorSource{BinarySensor: "ghost"}, 0, "w0")
	require.NoError(t, err)
	assert.True(t, alert.DeviceClass.IsEmpty())
	assert.Nil(t, sw.InitialState)
}

func Test_DerivedEntityRegistrar_ResetSwitch(t *testing.T) {
	list := &InstructionList{}
	r := NewDerivedEntityRegistrar(&entities.Configuration{}, NewIdentifierAllocator(discardLogger(), false),
		list, discardLogger())

	reset, err := r.RegisterResetSwitch("oclock")
	require.NoError(t, err)
	assert.Equal(t, values.Identifier("oclock_reset"), reset.ID)
	assert.False(t, reset.Config().DisabledByDefault, "the reset switch is shown by default")

	instrs := list.Take()
	require.Len(t, instrs, 2)
	assert.Equal(t, entities.OpConstruct, instrs[0].Op)
	assert.Equal(t, entities.OpRegister, instrs[1].Op)
}
