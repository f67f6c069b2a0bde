package route

import (
	"git.fiblab.net/general/common/v2/geometry"
	"github.com/samber/lo"

	"github.com/TimurZav/digital-city-cars/entity/roadgraph"
	"github.com/TimurZav/digital-city-cars/utils/geoutil"
)

// Planner 路径规划器
// 功能：在只读路网上计算节点路由，并将路由解编为可行驶的折线路径
// 说明：不持有任何可变状态，整个运行期间共享一个实例
type Planner struct {
	graph  *roadgraph.Graph
	weight roadgraph.WeightFunc
}

// 创建路径规划器，权重默认为路段长度
func NewPlanner(graph *roadgraph.Graph) *Planner {
	return &Planner{
		graph:  graph,
		weight: roadgraph.WeightLength,
	}
}

// ComputeRoute 计算起终点之间的节点路由
// 功能：最短路计算，返回沿途节点ID序列
// 说明：终点不可达时原样返回roadgraph.ErrNoPath，由调用方决定如何降级
func (p *Planner) ComputeRoute(origin, destination int64) ([]int64, error) {
	return p.graph.ShortestPath(origin, destination, p.weight)
}

// RouteLines 将节点路由解编为逐路段折线
// 功能：对路由中每对相邻节点，在平行路段中选取长度最短的一条，
// 有折线几何时使用折线，否则退化为两点直线段
// 说明：路由来自ComputeRoute时相邻节点间必有路段，缺失视为路网损坏
func (p *Planner) RouteLines(nodes []int64) [][]geometry.Point {
	if len(nodes) == 1 {
		// 起终点重合，路径退化为单点
		return [][]geometry.Point{{p.graph.Position(nodes[0])}}
	}
	lines := make([][]geometry.Point, 0, len(nodes)-1)
	for i := 0; i+1 < len(nodes); i++ {
		edges := p.graph.EdgesBetween(nodes[i], nodes[i+1])
		if len(edges) == 0 {
			log.Panicf("no edge between consecutive route nodes %d->%d", nodes[i], nodes[i+1])
		}
		e := lo.MinBy(edges, func(a, b *roadgraph.Edge) bool {
			return a.Length() < b.Length()
		})
		lines = append(lines, e.Line())
	}
	return lines
}

// 计算起点到终点的逐路段折线，封装ComputeRoute+RouteLines
func (p *Planner) LinesTo(origin, destination int64) ([][]geometry.Point, error) {
	nodes, err := p.ComputeRoute(origin, destination)
	if err != nil {
		return nil, err
	}
	return p.RouteLines(nodes), nil
}

// DecompileRoute 计算并解编起终点之间的完整行驶路径
// 功能：路由、选边、压平一步到位，返回可逐点消费的路径
// 返回：等长x、y序列构成的路径；不可达时返回roadgraph.ErrNoPath
func (p *Planner) DecompileRoute(origin, destination int64) (*Path, error) {
	lines, err := p.LinesTo(origin, destination)
	if err != nil {
		return nil, err
	}
	xs, ys := geoutil.Decompile(lines)
	return NewPath(xs, ys), nil
}
