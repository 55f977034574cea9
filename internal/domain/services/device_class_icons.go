package services

import "github.com/reglet-dev/glyphc/internal/domain/values"

// deviceClassIcons lists the icons a sensor's device class implies. They are
// selected before any group glyph is resolved.
var deviceClassIcons = map[values.DeviceClass][]string{
	"temperature": {"thermometer"},
	"humidity":    {"water-percent"},
	"motion":      {"walk", "run"},
	"door":        {"door-open", "door-closed"},
	"window":      {"window-open", "window-closed"},
	"occupancy":   {"home-account"},
	"battery":     {"battery"},
	"illuminance": {"brightness-5"},
	"power":       {"flash"},
	"moisture":    {"water"},
	"smoke":       {"smoke-detector"},
}

// IconsForDeviceClass returns the icons implied by dc, or nil.
func IconsForDeviceClass(dc values.DeviceClass) []string {
	icons := deviceClassIcons[dc]
	if icons == nil {
		return nil
	}
	out := make([]string, len(icons))
	copy(out, icons)
	return out
}
