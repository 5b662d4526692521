package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKilometers(t *testing.T) {
	assert.Equal(t, "1.50 km", Kilometers(1500))
	assert.Equal(t, "0.00 km", Kilometers(0))
	assert.Equal(t, "230.25 km", Kilometers(230250))
	assert.Equal(t, "0.12 km", Kilometers(123.4))
}

func TestMinutes(t *testing.T) {
	assert.Equal(t, "2 minutes", Minutes(125))
	assert.Equal(t, "0 minutes", Minutes(59))
	assert.Equal(t, "1 minute", Minutes(60))
	assert.Equal(t, "1 minute", Minutes(119))
	assert.Equal(t, "90 minutes", Minutes(5400))
}
