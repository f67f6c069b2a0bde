package entity

import (
	"github.com/TimurZav/digital-city-cars/clock"
	"github.com/TimurZav/digital-city-cars/entity/roadgraph"
	"github.com/TimurZav/digital-city-cars/entity/route"
	"github.com/TimurZav/digital-city-cars/utils/config"
)

type ITaskContext interface {
	Clock() *clock.Clock
	Graph() *roadgraph.Graph
	Planner() *route.Planner
	CarManager() ICarManager
	LightManager() ILightManager
	RuntimeConfig() *config.RuntimeConfig
}
