package entities

import (
	"fmt"

	"github.com/reglet-dev/glyphc/internal/domain/values"
)

// GroupLocation names a group in error messages.
func GroupLocation(index int, id values.Identifier) string {
	return fmt.Sprintf("groups[%d] (%s)", index, id)
}

// WidgetLocation names a widget in error messages.
func WidgetLocation(groupIndex int, groupID values.Identifier, widgetIndex int) string {
	return fmt.Sprintf("groups[%d] (%s).widgets[%d]", groupIndex, groupID, widgetIndex)
}
