package geoutil_test

import (
	"math"
	"testing"

	"git.fiblab.net/general/common/v2/geometry"
	"github.com/stretchr/testify/assert"

	"github.com/TimurZav/digital-city-cars/utils/geoutil"
)

func TestIsClose(t *testing.T) {
	// test: exact equality

	assert.True(t, geoutil.IsClose(4e6, 4e6, geoutil.DefaultRelTol))

	// test: offset inside the relative tolerance

	assert.True(t, geoutil.IsClose(4e6*(1+1e-7), 4e6, geoutil.DefaultRelTol))

	// test: offset outside the relative tolerance

	assert.False(t, geoutil.IsClose(4e6*(1+1e-5), 4e6, geoutil.DefaultRelTol))

	// test: near-zero values fall back to the absolute floor

	assert.True(t, geoutil.IsClose(0, 1e-10, geoutil.DefaultRelTol))
	assert.False(t, geoutil.IsClose(0, 1e-3, geoutil.DefaultRelTol))
}

func TestMagnitude(t *testing.T) {
	assert.Equal(t, 5.0, geoutil.Magnitude(geometry.Point{X: 3, Y: 4}))
	assert.Equal(t, 0.0, geoutil.Magnitude(geometry.Point{}))
}

func TestParallel(t *testing.T) {
	v := geometry.Point{X: 1, Y: 2}

	// test: same direction, different scale

	assert.True(t, geoutil.Parallel(v, geometry.Point{X: 10, Y: 20}, geoutil.DefaultRelTol))

	// test: opposite direction is not parallel

	assert.False(t, geoutil.Parallel(v, geometry.Point{X: -1, Y: -2}, geoutil.DefaultRelTol))

	// test: perpendicular and zero vectors

	assert.False(t, geoutil.Parallel(v, geometry.Point{X: -2, Y: 1}, geoutil.DefaultRelTol))
	assert.False(t, geoutil.Parallel(v, geometry.Point{}, geoutil.DefaultRelTol))

	// test: tiny angular deviation stays within the tolerance

	assert.True(t, geoutil.Parallel(v, geometry.Point{X: 10, Y: 20 + 1e-6}, geoutil.DefaultRelTol))
}

func TestLinspace(t *testing.T) {
	// test: single segment, inclusive endpoints, even spacing

	xs, ys := geoutil.Linspace([]geometry.Point{{X: 0, Y: 0}, {X: 4, Y: 8}}, 5)
	assert.Equal(t, []float64{0, 1, 2, 3, 4}, xs)
	assert.Equal(t, []float64{0, 2, 4, 6, 8}, ys)

	// test: joined segments share the middle waypoint exactly once

	xs, ys = geoutil.Linspace([]geometry.Point{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}}, 5)
	assert.Len(t, xs, 9)
	assert.Len(t, ys, 9)
	assert.Equal(t, 4.0, xs[4])
	assert.Equal(t, 0.0, ys[4])
	assert.Equal(t, 4.0, xs[8])
	assert.Equal(t, 4.0, ys[8])

	// test: degenerate inputs

	xs, ys = geoutil.Linspace([]geometry.Point{{X: 7, Y: 7}}, 5)
	assert.Equal(t, []float64{7}, xs)
	assert.Equal(t, []float64{7}, ys)
	xs, ys = geoutil.Linspace(nil, 5)
	assert.Empty(t, xs)
	assert.Empty(t, ys)
}

func TestAngles(t *testing.T) {
	view := []geometry.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}}
	angles := geoutil.Angles(view)
	assert.Len(t, angles, 2)
	assert.InDelta(t, 0, angles[0], 1e-12)
	assert.InDelta(t, math.Pi/2, angles[1], 1e-12)

	// test: bend between the two segments

	assert.InDelta(t, math.Pi/2, geoutil.MaxBend(angles), 1e-12)
	assert.Equal(t, 0.0, geoutil.MaxBend(angles[:1]))

	// test: heading delta wraps across ±π

	assert.InDelta(t, 0.2, geoutil.HeadingDelta(math.Pi-0.1, -math.Pi+0.1), 1e-12)
}

func TestDecompile(t *testing.T) {
	lines := [][]geometry.Point{
		{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}},
		{{X: 2, Y: 0}, {X: 2, Y: 3}},
	}

	// test: join vertex kept once, parallel slices of equal length

	xs, ys := geoutil.Decompile(lines)
	assert.Equal(t, []float64{0, 1, 2, 2}, xs)
	assert.Equal(t, []float64{0, 0, 0, 3}, ys)
	assert.Equal(t, len(xs), len(ys))

	// test: single line passes through unchanged

	xs, ys = geoutil.Decompile(lines[:1])
	assert.Equal(t, []float64{0, 1, 2}, xs)
	assert.Equal(t, []float64{0, 0, 0}, ys)
}
