package roadgraph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/TimurZav/digital-city-cars/entity/roadgraph"
)

// 构造一个带平行路段与单向路段的小路网
//
//	1 <--> 2 --> 4
//	 \    (双边平行)
//	  --> 3
func newTestGraph() *roadgraph.Graph {
	nodes := []roadgraph.NodeSeed{
		{ID: 1, X: 0, Y: 0, StreetCount: 3},
		{ID: 2, X: 100, Y: 0, StreetCount: 2},
		{ID: 3, X: 0, Y: 100, StreetCount: 1},
		{ID: 4, X: 200, Y: 0, StreetCount: 1},
	}
	edges := []roadgraph.EdgeSeed{
		{U: 1, V: 2, Length: 100},
		{U: 1, V: 2, Length: 160, Geometry: []roadgraph.PointSeed{{X: 0, Y: 0}, {X: 50, Y: 60}, {X: 100, Y: 0}}},
		{U: 2, V: 1, Length: 100},
		{U: 1, V: 3, Length: 100},
		{U: 2, V: 4, Length: 100},
	}
	return roadgraph.New(nodes, edges)
}

func TestGraphQueries(t *testing.T) {
	g := newTestGraph()

	// test: node order follows the input order

	ids := make([]int64, 0)
	for _, n := range g.Nodes() {
		ids = append(ids, n.ID())
	}
	assert.Equal(t, []int64{1, 2, 3, 4}, ids)

	// test: degree counts every directed incident edge, parallels included

	assert.Equal(t, 4, g.Get(1).Degree())
	assert.Equal(t, 4, g.Get(2).Degree())
	assert.Equal(t, 1, g.Get(3).Degree())
	assert.Equal(t, 3, g.Get(1).StreetCount())

	// test: incident edges list outgoing first, each in input order

	incident := g.Get(1).IncidentEdges()
	assert.Len(t, incident, 4)
	assert.Equal(t, int64(1), incident[0].U().ID())
	assert.Equal(t, int64(2), incident[0].V().ID())
	assert.Equal(t, int64(3), incident[2].V().ID())
	assert.Equal(t, int64(2), incident[3].U().ID())

	// test: parallel edge set between a node pair

	between := g.EdgesBetween(1, 2)
	assert.Len(t, between, 2)
	assert.Equal(t, 100.0, between[0].Length())
	assert.Equal(t, 160.0, between[1].Length())
	assert.Empty(t, g.EdgesBetween(3, 1))

	// test: missing node lookup

	_, err := g.GetOrError(99)
	assert.Error(t, err)

	// test: straight-line fallback when the edge has no geometry

	line := between[0].Line()
	assert.Len(t, line, 2)
	assert.Equal(t, g.Position(1), line[0])
	assert.Equal(t, g.Position(2), line[1])
	assert.Len(t, between[1].Line(), 3)
}

func TestShortestPath(t *testing.T) {
	nodes := []roadgraph.NodeSeed{
		{ID: 1}, {ID: 2}, {ID: 3}, {ID: 4}, {ID: 9},
	}
	edges := []roadgraph.EdgeSeed{
		{U: 1, V: 2, Length: 1},
		{U: 2, V: 4, Length: 1},
		{U: 1, V: 3, Length: 5},
		{U: 3, V: 4, Length: 1},
		// 平行路段，更短的一条决定代价
		{U: 1, V: 4, Length: 10},
		{U: 1, V: 4, Length: 1.5},
	}
	g := roadgraph.New(nodes, edges)

	// test: cheapest parallel edge wins

	route, err := g.ShortestPath(1, 4, nil)
	assert.NoError(t, err)
	assert.Equal(t, []int64{1, 4}, route)

	// test: multi-hop route under a custom weight

	hops := func(e *roadgraph.Edge) float64 { return 1 }
	route, err = g.ShortestPath(1, 4, hops)
	assert.NoError(t, err)
	assert.Equal(t, []int64{1, 4}, route)

	// test: origin equals destination

	route, err = g.ShortestPath(2, 2, nil)
	assert.NoError(t, err)
	assert.Equal(t, []int64{2}, route)

	// test: disconnected destination

	_, err = g.ShortestPath(1, 9, nil)
	assert.ErrorIs(t, err, roadgraph.ErrNoPath)

	// test: unknown endpoints surface as errors, not panics

	_, err = g.ShortestPath(1, 12345, nil)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, roadgraph.ErrNoPath)
}
