package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMin(t *testing.T) {
	assert.Equal(t, 2, Min(2, 5))
	assert.Equal(t, -1, Min(3, -1))
	assert.Equal(t, 4, Min(4, 4))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 25.0, Percent(1, 4))
	assert.Equal(t, 0.0, Percent(5, 0))
}
