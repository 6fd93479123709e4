package wallpaper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDestination(t *testing.T) {
	for _, d := range []Destination{DestHome, DestLock, DestBoth} {
		got, err := ParseDestination(d.String())
		assert.NoError(t, err)
		assert.Equal(t, d, got)
	}

	got, err := ParseDestination(" LOCK ")
	assert.NoError(t, err)
	assert.Equal(t, DestLock, got)

	_, err = ParseDestination("desktop")
	assert.Error(t, err)
}

func TestDestinationTargets(t *testing.T) {
	assert.Equal(t, []Destination{DestHome}, DestHome.Targets())
	assert.Equal(t, []Destination{DestLock}, DestLock.Targets())
	assert.Equal(t, []Destination{DestHome, DestLock}, DestBoth.Targets())
	assert.Equal(t, "Destination(7)", Destination(7).String())
}
