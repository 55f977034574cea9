package values

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_NewCompilationID_Deterministic(t *testing.T) {
	a := NewCompilationID([]byte("groups: []"))
	b := NewCompilationID([]byte("groups: []"))
	c := NewCompilationID([]byte("groups: [x]"))

	assert.Equal(t, a.String(), b.String())
	assert.NotEqual(t, a.String(), c.String())
	assert.False(t, a.IsZero())
}

func Test_ParseCompilationID(t *testing.T) {
	id := NewCompilationID([]byte("config"))

	parsed, err := ParseCompilationID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)

	_, err = ParseCompilationID("not-a-uuid")
	assert.Error(t, err)
}
