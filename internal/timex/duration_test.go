package timex

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDuration_UnmarshalJSON(t *testing.T) {
	var payload struct {
		TTL Duration `json:"ttl"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"ttl":"720h"}`), &payload))
	assert.Equal(t, 720*time.Hour, payload.TTL.Std())

	require.NoError(t, json.Unmarshal([]byte(`{"ttl":3000000000}`), &payload))
	assert.Equal(t, 3*time.Second, payload.TTL.Std())

	assert.Error(t, json.Unmarshal([]byte(`{"ttl":"not-a-duration"}`), &payload))
	assert.Error(t, json.Unmarshal([]byte(`{"ttl":true}`), &payload))
}

func TestDuration_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(Duration(90 * time.Minute))
	require.NoError(t, err)
	assert.Equal(t, `"1h30m0s"`, string(b))
}
