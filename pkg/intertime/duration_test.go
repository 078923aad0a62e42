package intertime

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDuration_JSON(t *testing.T) {
	b, err := json.Marshal(struct {
		Avg Duration `json:"avg"`
	}{Avg: Duration(1500 * time.Millisecond)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"avg":"1.5s"}`, string(b))

	var d Duration
	require.NoError(t, json.Unmarshal([]byte(`"250ms"`), &d))
	assert.Equal(t, Duration(250*time.Millisecond), d)

	assert.Error(t, json.Unmarshal([]byte(`"soon"`), &d))
	assert.Error(t, json.Unmarshal([]byte(`12`), &d))
}

func TestFromMilliseconds(t *testing.T) {
	assert.Equal(t, Duration(12*time.Millisecond), FromMilliseconds(12))
	assert.Equal(t, Duration(1500*time.Microsecond), FromMilliseconds(1.5))
}
