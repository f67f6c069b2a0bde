package route_test

import (
	"testing"

	"git.fiblab.net/general/common/v2/geometry"
	"github.com/stretchr/testify/assert"

	"github.com/TimurZav/digital-city-cars/entity/roadgraph"
	"github.com/TimurZav/digital-city-cars/entity/route"
)

func newTestPlanner() (*route.Planner, *roadgraph.Graph) {
	nodes := []roadgraph.NodeSeed{
		{ID: 1, X: 0, Y: 0, StreetCount: 2},
		{ID: 2, X: 100, Y: 0, StreetCount: 2},
		{ID: 3, X: 100, Y: 100, StreetCount: 1},
		{ID: 9, X: 500, Y: 500, StreetCount: 1},
	}
	edges := []roadgraph.EdgeSeed{
		// 两条平行路段：直线的短，绕行的长
		{U: 1, V: 2, Length: 100},
		{U: 1, V: 2, Length: 160, Geometry: []roadgraph.PointSeed{{X: 0, Y: 0}, {X: 50, Y: 60}, {X: 100, Y: 0}}},
		{U: 2, V: 3, Length: 120, Geometry: []roadgraph.PointSeed{{X: 100, Y: 0}, {X: 120, Y: 50}, {X: 100, Y: 100}}},
	}
	g := roadgraph.New(nodes, edges)
	return route.NewPlanner(g), g
}

func TestComputeRoute(t *testing.T) {
	p, _ := newTestPlanner()

	route1, err := p.ComputeRoute(1, 3)
	assert.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, route1)

	// test: unreachable destination propagates ErrNoPath untouched

	_, err = p.ComputeRoute(1, 9)
	assert.ErrorIs(t, err, roadgraph.ErrNoPath)
}

func TestRouteLinesPicksShortestParallelEdge(t *testing.T) {
	p, _ := newTestPlanner()

	lines := p.RouteLines([]int64{1, 2})
	assert.Len(t, lines, 1)

	// test: the 100m straight edge wins over the 160m detour,
	// and without geometry it degrades to the two-point segment

	assert.Equal(t, []geometry.Point{{X: 0, Y: 0}, {X: 100, Y: 0}}, lines[0])
}

func TestRouteLinesUsesGeometryOfShortestEdge(t *testing.T) {
	nodes := []roadgraph.NodeSeed{
		{ID: 1, X: 0, Y: 0}, {ID: 2, X: 100, Y: 0},
	}
	edges := []roadgraph.EdgeSeed{
		{U: 1, V: 2, Length: 160},
		{U: 1, V: 2, Length: 100, Geometry: []roadgraph.PointSeed{{X: 0, Y: 0}, {X: 50, Y: 10}, {X: 100, Y: 0}}},
	}
	p := route.NewPlanner(roadgraph.New(nodes, edges))

	// test: the shorter parallel edge carries geometry, so the polyline is used

	lines := p.RouteLines([]int64{1, 2})
	assert.Len(t, lines, 1)
	assert.Len(t, lines[0], 3)
	assert.Equal(t, geometry.Point{X: 50, Y: 10}, lines[0][1])
}

func TestDecompileRoute(t *testing.T) {
	p, _ := newTestPlanner()

	path, err := p.DecompileRoute(1, 3)
	assert.NoError(t, err)

	// test: join vertex between the two edges kept once

	assert.Equal(t, 4, path.Len())
	assert.Equal(t, geometry.Point{X: 0, Y: 0}, path.At(0))
	assert.Equal(t, geometry.Point{X: 100, Y: 0}, path.At(1))
	assert.Equal(t, geometry.Point{X: 120, Y: 50}, path.At(2))
	assert.Equal(t, geometry.Point{X: 100, Y: 100}, path.At(3))
	assert.Equal(t, geometry.Point{X: 100, Y: 100}, path.End())

	// test: head consumption is monotone and end survives exhaustion

	view := path.View(3)
	assert.Len(t, view, 3)
	path.Advance()
	assert.Equal(t, 3, path.Len())
	assert.Equal(t, geometry.Point{X: 100, Y: 0}, path.At(0))
	for !path.Exhausted() {
		path.Advance()
	}
	assert.Empty(t, path.View(3))
	assert.Equal(t, geometry.Point{X: 100, Y: 100}, path.End())

	// test: no-path pairs surface the sentinel

	_, err = p.DecompileRoute(1, 9)
	assert.ErrorIs(t, err, roadgraph.ErrNoPath)

	// test: origin equals destination degrades to a single-point path

	path, err = p.DecompileRoute(2, 2)
	assert.NoError(t, err)
	assert.Equal(t, 1, path.Len())
	assert.Equal(t, geometry.Point{X: 100, Y: 0}, path.At(0))
}
