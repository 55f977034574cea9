package values

import "strings"

// DeviceClass is the host platform's device class of a sensor, e.g. "motion".
// The empty DeviceClass is valid and means "unspecified".
type DeviceClass string

// NewDeviceClass normalizes a raw device class string.
func NewDeviceClass(s string) DeviceClass {
	return DeviceClass(strings.ToLower(strings.TrimSpace(s)))
}

// String returns the string representation
func (d DeviceClass) String() string {
	return string(d)
}

// IsEmpty returns true if no device class was declared
func (d DeviceClass) IsEmpty() bool {
	return d == ""
}
