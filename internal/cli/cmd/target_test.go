package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/eve/internal/application/usecase"
)

func TestParseTarget(t *testing.T) {
	tests := []struct {
		ref     string
		want    usecase.Target
		wantErr bool
	}{
		{ref: "wifi", want: usecase.Target{Core: "wifi"}},
		{ref: "sensor.1", want: usecase.Target{Domain: "sensor", Index: 1}},
		{ref: "binary_sensor[0]", want: usecase.Target{Domain: "binary_sensor", Index: 0}},
		{ref: "sensor:dht:1a2b3c4d", want: usecase.Target{Key: "sensor:dht:1a2b3c4d"}},
		{ref: "", wantErr: true},
		{ref: "sensor.x", wantErr: true},
		{ref: "[2]", wantErr: true},
		{ref: "sensor[-1]", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			got, err := parseTarget(tt.ref)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
