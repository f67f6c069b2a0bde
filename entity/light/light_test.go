package light_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/TimurZav/digital-city-cars/entity/roadgraph"
	"github.com/TimurZav/digital-city-cars/task"
	"github.com/TimurZav/digital-city-cars/utils/config"
	"github.com/TimurZav/digital-city-cars/utils/input"
)

// 四向路口的仿真世界：节点2为信号灯路口，节点5为断头路
func newLightWorld(c config.Config) *task.Context {
	nodes := []roadgraph.NodeSeed{
		{ID: 1, X: 0, Y: 0, StreetCount: 2},
		{ID: 2, X: 100, Y: 0, StreetCount: 4},
		{ID: 3, X: 200, Y: 0, StreetCount: 2},
		{ID: 4, X: 100, Y: 100, StreetCount: 2},
		{ID: 5, X: 100, Y: -100, StreetCount: 1},
	}
	edges := make([]roadgraph.EdgeSeed, 0)
	for _, n := range []int64{1, 3, 4, 5} {
		edges = append(edges,
			roadgraph.EdgeSeed{U: 2, V: n, Length: 100},
			roadgraph.EdgeSeed{U: n, V: 2, Length: 100},
		)
	}
	ctx := task.NewContext("test", c, &input.Seeds{Nodes: nodes, Edges: edges})
	ctx.Init()
	ctx.PrepareStep()
	return ctx
}

func TestLightPhaseFlip(t *testing.T) {
	// dt大于切换周期，每步都会翻转一次相位
	ctx := newLightWorld(config.Config{
		Control: config.Control{Step: config.ControlStep{Total: 100, Interval: 1}},
		Fleet:   config.Fleet{Trips: []config.TripSeed{{Origin: 1, Destination: 3}}},
		Lights:  config.Lights{Prescale: 1, SwitchPeriod: 0.5},
	})
	lights := ctx.LightManager().Lights()
	assert.Len(t, lights, 1)
	l := lights[0]
	assert.Equal(t, 4, l.Degree())

	// test: the initial phase alternates by direction index

	assert.True(t, l.Go(0))
	assert.False(t, l.Go(1))
	assert.True(t, l.Go(2))
	assert.False(t, l.Go(3))

	// test: every direction flips together on each switch

	prev := make([]bool, l.Degree())
	for j := range prev {
		prev[j] = l.Go(j)
	}
	for i := 0; i < 5; i++ {
		ctx.UpdateStep()
		ctx.PrepareStep()
		for j := 0; j < l.Degree(); j++ {
			assert.Equal(t, !prev[j], l.Go(j), "direction %d after tick %d", j, i)
			prev[j] = l.Go(j)
		}
	}
}

func TestLightManagerLookup(t *testing.T) {
	ctx := newLightWorld(config.Config{
		Control: config.Control{Step: config.ControlStep{Total: 100, Interval: 1.0 / 60}},
		Fleet:   config.Fleet{Trips: []config.TripSeed{{Origin: 1, Destination: 3}}},
		Lights:  config.Lights{Prescale: 1},
	})

	assert.Equal(t, int64(2), ctx.LightManager().Get(2).ID())

	_, err := ctx.LightManager().GetOrError(999)
	assert.Error(t, err)

	// test: street_count==1 nodes are reported as cul-de-sacs

	assert.Equal(t, []int64{5}, ctx.LightManager().Culdesacs())
}
