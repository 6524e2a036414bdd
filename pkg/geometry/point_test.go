package geometry

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistance(t *testing.T) {
	a := MakePoint(0, 0)
	b := MakePoint(3, 4)
	assert.InDelta(t, 5.0, a.DistanceTo(b), 1e-12)
	assert.InDelta(t, 25.0, a.SquaredDistanceTo(b), 1e-12)
	assert.Equal(t, 3.0, b.X())
	assert.Equal(t, 4.0, b.Y())
}

func TestCentroid(t *testing.T) {
	c := Centroid([]Point{MakePoint(0, 0), MakePoint(0, 1), MakePoint(2, 2)})
	assert.InDelta(t, 2.0/3.0, c.X(), 1e-12)
	assert.InDelta(t, 1.0, c.Y(), 1e-12)

	assert.Panics(t, func() { Centroid(nil) })
}

func TestCoordinates(t *testing.T) {
	coords := Coordinates{2: MakePoint(1, 1), 0: MakePoint(-1, 5), 7: MakePoint(3, 0)}

	assert.Equal(t, []int{0, 2, 7}, coords.Ids())

	_, err := coords.Lookup(4)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingCoordinate))

	points, err := coords.Points([]int{7, 0})
	require.NoError(t, err)
	assert.Equal(t, []Point{MakePoint(3, 0), MakePoint(-1, 5)}, points)

	_, err = coords.Points([]int{7, 9})
	assert.ErrorIs(t, err, ErrMissingCoordinate)

	bound := coords.Bound()
	assert.Equal(t, -1.0, bound.Min[0])
	assert.Equal(t, 0.0, bound.Min[1])
	assert.Equal(t, 3.0, bound.Max[0])
	assert.Equal(t, 5.0, bound.Max[1])
}
