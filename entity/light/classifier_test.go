package light_test

import (
	"math"
	"testing"

	"git.fiblab.net/general/common/v2/geometry"
	"github.com/stretchr/testify/assert"

	"github.com/TimurZav/digital-city-cars/entity/light"
	"github.com/TimurZav/digital-city-cars/entity/roadgraph"
	"github.com/TimurZav/digital-city-cars/entity/route"
	"github.com/TimurZav/digital-city-cars/utils/geoutil"
)

// 两对互联节点放在指定遍历序号上，使其度为4，其余节点保持孤立
func newPrescaleGraph() *roadgraph.Graph {
	nodes := make([]roadgraph.NodeSeed, 12)
	for i := range nodes {
		nodes[i] = roadgraph.NodeSeed{ID: int64(100 + i), X: float64(i) * 10, StreetCount: 2}
	}
	pair := func(a, b int64) []roadgraph.EdgeSeed {
		return []roadgraph.EdgeSeed{
			{U: a, V: b, Length: 10}, {U: b, V: a, Length: 10},
			{U: a, V: b, Length: 12}, {U: b, V: a, Length: 12},
		}
	}
	edges := append(pair(103, 104), pair(108, 111)...)
	return roadgraph.New(nodes, edges)
}

func TestFindTrafficLightsPrescaleCoupling(t *testing.T) {
	g := newPrescaleGraph()

	// sanity: degree-eligible nodes sit at absolute indices 3, 4, 8, 11

	eligible := make([]int, 0)
	for i, n := range g.Nodes() {
		if n.Degree() > 3 {
			eligible = append(eligible, i)
		}
	}
	assert.Equal(t, []int{3, 4, 8, 11}, eligible)

	// test: only the eligible nodes on a multiple-of-4 index are selected

	assert.Equal(t, []int64{104, 108}, light.FindTrafficLights(g, light.DefaultPrescale))

	// test: prescale 1 keeps every eligible node

	assert.Equal(t, []int64{103, 104, 108, 111}, light.FindTrafficLights(g, 1))
}

func TestFindCuldesacs(t *testing.T) {
	nodes := []roadgraph.NodeSeed{
		{ID: 1, StreetCount: 3},
		{ID: 2, StreetCount: 1},
		{ID: 3, StreetCount: 2},
		{ID: 4, StreetCount: 1},
	}
	g := roadgraph.New(nodes, nil)
	assert.Equal(t, []int64{2, 4}, light.FindCuldesacs(g))
}

// 十字路口：中心节点0与北(1)、东(2)、南(3)、西(4)四个邻居相连
func newCrossGraph(twoWayWest bool) *roadgraph.Graph {
	nodes := []roadgraph.NodeSeed{
		{ID: 0, X: 0, Y: 0, StreetCount: 4},
		{ID: 1, X: 0, Y: 100, StreetCount: 1},
		{ID: 2, X: 100, Y: 0, StreetCount: 1},
		{ID: 3, X: 0, Y: -100, StreetCount: 1},
		{ID: 4, X: -100, Y: 0, StreetCount: 1},
	}
	edges := make([]roadgraph.EdgeSeed, 0)
	for _, n := range []int64{1, 2, 3} {
		edges = append(edges,
			roadgraph.EdgeSeed{U: 0, V: n, Length: 100},
			roadgraph.EdgeSeed{U: n, V: 0, Length: 100},
		)
	}
	if twoWayWest {
		edges = append(edges,
			roadgraph.EdgeSeed{U: 0, V: 4, Length: 100},
			roadgraph.EdgeSeed{U: 4, V: 0, Length: 100},
		)
	} else {
		// 西侧只进不出：从路口出发无法到达，进近几何不可解析
		edges = append(edges, roadgraph.EdgeSeed{U: 4, V: 0, Length: 100})
	}
	return roadgraph.New(nodes, edges)
}

func TestDeterminePedigreeFourWay(t *testing.T) {
	g := newCrossGraph(true)
	planner := route.NewPlanner(g)

	vectors := light.DeterminePedigree(g, planner, 0)
	assert.Len(t, vectors, 4)

	// test: straight approaches point exactly at the four neighbors

	assert.Equal(t, geometry.Point{X: 0, Y: 100}, vectors[0])
	assert.Equal(t, geometry.Point{X: 100, Y: 0}, vectors[1])
	assert.Equal(t, geometry.Point{X: 0, Y: -100}, vectors[2])
	assert.Equal(t, geometry.Point{X: -100, Y: 0}, vectors[3])

	// test: consecutive directions are ~90 degrees apart

	for i := 0; i < 4; i++ {
		a := vectors[i]
		b := vectors[(i+1)%4]
		delta := geoutil.HeadingDelta(math.Atan2(a.Y, a.X), math.Atan2(b.Y, b.X))
		assert.InDelta(t, math.Pi/2, delta, 1e-9)
	}
}

func TestDeterminePedigreeSkipsUnresolvableApproach(t *testing.T) {
	g := newCrossGraph(false)
	planner := route.NewPlanner(g)

	// test: the west approach cannot be decompiled and is silently dropped

	vectors := light.DeterminePedigree(g, planner, 0)
	assert.Len(t, vectors, 3)
	for _, v := range vectors {
		assert.NotEqual(t, geometry.Point{X: -100, Y: 0}, v)
	}
}

func TestDeterminePedigreeDropsReverseOfOutgoing(t *testing.T) {
	// 一条双向街道只贡献一个进近方向
	nodes := []roadgraph.NodeSeed{
		{ID: 0, X: 0, Y: 0, StreetCount: 1},
		{ID: 1, X: 50, Y: 0, StreetCount: 1},
	}
	edges := []roadgraph.EdgeSeed{
		{U: 0, V: 1, Length: 50},
		{U: 1, V: 0, Length: 50},
	}
	g := roadgraph.New(nodes, edges)
	planner := route.NewPlanner(g)

	vectors := light.DeterminePedigree(g, planner, 0)
	assert.Equal(t, []geometry.Point{{X: 50, Y: 0}}, vectors)
}
