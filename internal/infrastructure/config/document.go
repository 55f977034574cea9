package config

// document mirrors the YAML configuration file. Glyph fields stay untyped
// until translation because they accept a string, a list or an image mapping.
type document struct {
	Version            any            `yaml:"version"`
	MinCompilerVersion string         `yaml:"min_compiler_version"`
	Controller         *controllerDoc `yaml:"controller"`
	Logger             *loggerDoc     `yaml:"logger"`
	Font               fontDoc        `yaml:"font"`
	Sensors            []sensorDoc    `yaml:"sensors"`
	BinarySensors      []sensorDoc    `yaml:"binary_sensors"`
	Times              []handleDoc    `yaml:"times"`
	Images             []handleDoc    `yaml:"images"`
	Groups             []groupDoc     `yaml:"groups"`
}

type controllerDoc struct {
	ID          string `yaml:"id"`
	TimeID      string `yaml:"time_id"`
	ResetSwitch *bool  `yaml:"reset_switch"`
}

type loggerDoc struct {
	BaudRate *int `yaml:"baud_rate"`
}

type fontDoc struct {
	ID   string `yaml:"id"`
	Size int    `yaml:"size"`
	File string `yaml:"file"`
}

type sensorDoc struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	DeviceClass string `yaml:"device_class"`
}

type handleDoc struct {
	ID string `yaml:"id"`
}

type groupDoc struct {
	ID      string      `yaml:"id"`
	Visible *bool       `yaml:"visible"`
	Glyph   any         `yaml:"glyph"`
	Widgets []widgetDoc `yaml:"widgets"`
}

type widgetDoc struct {
	ID             string `yaml:"id"`
	Type           string `yaml:"type"`
	SensorID       string `yaml:"sensor_id"`
	BinarySensorID string `yaml:"binary_sensor_id"`
	TimeID         string `yaml:"time_id"`
	OnGlyph        any    `yaml:"on_glyph"`
	OffGlyph       any    `yaml:"off_glyph"`
	Sticky         *bool  `yaml:"sticky"`
	Format         string `yaml:"format"`
}
