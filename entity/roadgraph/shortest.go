package roadgraph

import (
	"errors"
	"fmt"

	"github.com/TimurZav/digital-city-cars/utils/container"
)

var (
	// 起点与终点之间不存在可行路径
	ErrNoPath = errors.New("no path between origin and destination")
)

// WeightFunc 路段权重函数，返回值必须为正
type WeightFunc func(e *Edge) float64

// 默认权重：路段长度
func WeightLength(e *Edge) float64 {
	return e.Length()
}

// ShortestPath 计算两节点间的最短路
// 功能：以weight为代价的Dijkstra最短路，返回沿途节点ID序列（含起终点）
// 参数：origin-起点ID，destination-终点ID，weight-权重函数（nil时按路段长度）
// 返回：节点ID序列；终点不可达时返回ErrNoPath
// 算法说明：
// 1. 小顶堆维护待扩展节点，按当前最短距离出堆
// 2. 松弛出堆节点的所有出边，平行路段各自参与松弛，代价低者胜出
// 3. 终点出堆即终止，沿前驱指针回溯得到路径
// 说明：不修改任何共享状态，可在同一张图上反复调用
func (g *Graph) ShortestPath(origin, destination int64, weight WeightFunc) ([]int64, error) {
	if weight == nil {
		weight = WeightLength
	}
	src, err := g.GetOrError(origin)
	if err != nil {
		return nil, fmt.Errorf("shortest path: %w", err)
	}
	if _, err := g.GetOrError(destination); err != nil {
		return nil, fmt.Errorf("shortest path: %w", err)
	}
	if origin == destination {
		return []int64{origin}, nil
	}

	dist := make(map[int64]float64, len(g.nodes))
	prev := make(map[int64]*Node, len(g.nodes))
	queue := container.NewPriorityQueue[*Node]()
	dist[origin] = 0
	queue.HeapPush(src, 0)
	for queue.Len() > 0 {
		n, d := queue.HeapPop()
		if d > dist[n.id] {
			// 堆中的过期副本
			continue
		}
		if n.id == destination {
			break
		}
		for _, e := range n.outEdges {
			next := d + weight(e)
			if old, ok := dist[e.v.id]; !ok || next < old {
				dist[e.v.id] = next
				prev[e.v.id] = n
				queue.HeapPush(e.v, next)
			}
		}
	}
	if _, ok := dist[destination]; !ok {
		return nil, ErrNoPath
	}

	// 回溯路径
	route := []int64{destination}
	for id := destination; id != origin; {
		p := prev[id]
		route = append(route, p.id)
		id = p.id
	}
	for i, j := 0, len(route)-1; i < j; i, j = i+1, j-1 {
		route[i], route[j] = route[j], route[i]
	}
	return route, nil
}
