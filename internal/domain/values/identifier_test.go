package values

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_NewIdentifier(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"valid ID", "door_sensor", "door_sensor", false},
		{"trims whitespace", "  main  ", "main", false},
		{"leading underscore", "_hidden", "_hidden", false},
		{"empty string", "", "", true},
		{"whitespace only", "   ", "", true},
		{"leading digit", "1door", "", true},
		{"dash", "door-sensor", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := NewIdentifier(tt.input)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, id.String())
			}
		})
	}
}

func Test_MustNewIdentifier_Panics(t *testing.T) {
	assert.Panics(t, func() {
		MustNewIdentifier("")
	})
}

func Test_Identifier_WithSuffixAndIndex(t *testing.T) {
	id := MustNewIdentifier("door")

	assert.Equal(t, Identifier("door_sensor"), id.WithSuffix("sensor"))
	assert.Equal(t, Identifier("door_sensor1"), id.WithSuffix("sensor").WithIndex(1))
	assert.True(t, Identifier("").IsEmpty())
}
