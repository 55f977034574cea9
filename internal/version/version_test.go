package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_CheckMinimum(t *testing.T) {
	tests := []struct {
		name    string
		current string
		minimum string
		wantErr string
	}{
		{name: "no minimum", current: "0.1.0", minimum: ""},
		{name: "dev build", current: "dev", minimum: "9.0.0"},
		{name: "satisfied", current: "1.2.0", minimum: "1.1.0"},
		{name: "equal", current: "v1.2.0", minimum: "1.2.0"},
		{name: "too old", current: "1.0.0", minimum: "1.2.0", wantErr: "requires glyphc >= 1.2.0"},
		{name: "bad minimum", current: "1.0.0", minimum: "not-a-version", wantErr: "invalid min_compiler_version"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkMinimum(tt.current, tt.minimum)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func Test_Info_Full(t *testing.T) {
	info := Info{Version: "1.0.0", Commit: "abc", BuildDate: "today", GoVersion: "go1.25", Platform: "linux/amd64"}
	assert.Equal(t, "1.0.0 (abc) built today go1.25 linux/amd64", info.Full())
	assert.Equal(t, "1.0.0", info.String())
}
