package utils

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToInt(t *testing.T) {
	assert.Equal(t, 3, ToInt(3))
	assert.Equal(t, 3, ToInt(3.0))
	assert.Equal(t, 3, ToInt(json.Number("3")))
	assert.Equal(t, 3, ToInt("3"))
	assert.Equal(t, 0, ToInt("not a number"))
	assert.Equal(t, 0, ToInt(nil))
}

func TestToFloat(t *testing.T) {
	assert.Equal(t, 1.5, ToFloat(1.5))
	assert.Equal(t, 1.5, ToFloat(json.Number("1.5")))
	assert.Equal(t, 2.0, ToFloat(2))
	assert.Equal(t, 0.0, ToFloat(map[string]any{}))
}

func TestToString(t *testing.T) {
	assert.Equal(t, "abc", ToString("abc"))
	assert.Equal(t, "12", ToString(json.Number("12")))
	assert.Equal(t, "true", ToString(true))
}

func TestToBool(t *testing.T) {
	assert.True(t, ToBool(true))
	assert.True(t, ToBool(1))
	assert.True(t, ToBool("true"))
	assert.True(t, ToBool(json.Number("1")))
	assert.False(t, ToBool(0))
	assert.False(t, ToBool("no"))
}
