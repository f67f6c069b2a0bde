package roadgraph

import (
	"fmt"

	"git.fiblab.net/general/common/v2/geometry"
	"github.com/samber/lo"
)

// Node 路网节点（道路交汇点）
// 功能：保存节点坐标与街道数，维护以该节点为端点的出边与入边列表
type Node struct {
	id          int64
	position    geometry.Point
	streetCount int // 交汇的物理街道数（不区分方向），区别于Degree

	outEdges []*Edge // 出边，按输入顺序
	inEdges  []*Edge // 入边，按输入顺序
}

// 获取节点ID
func (n *Node) ID() int64 {
	return n.id
}

// 获取节点坐标
func (n *Node) Position() geometry.Point {
	return n.position
}

// 获取交汇的物理街道数
func (n *Node) StreetCount() int {
	return n.streetCount
}

// 节点的度：出边与入边的总数，平行路段分别计数
func (n *Node) Degree() int {
	return len(n.outEdges) + len(n.inEdges)
}

// 出边列表
func (n *Node) OutEdges() []*Edge {
	return n.outEdges
}

// 入边列表
func (n *Node) InEdges() []*Edge {
	return n.inEdges
}

// 与节点关联的所有路段：先出边后入边，各按输入顺序
func (n *Node) IncidentEdges() []*Edge {
	edges := make([]*Edge, 0, len(n.outEdges)+len(n.inEdges))
	edges = append(edges, n.outEdges...)
	edges = append(edges, n.inEdges...)
	return edges
}

func (n *Node) String() string {
	return fmt.Sprintf("Node{ID=%d, Degree=%d, StreetCount=%d}", n.id, n.Degree(), n.streetCount)
}

// Edge 有向路段
// 功能：连接两个节点的一段道路，带长度与可选的折线几何
type Edge struct {
	u, v     *Node
	length   float64
	geometry []geometry.Point // 为空时表示u到v的直线段
}

// 起点节点
func (e *Edge) U() *Node {
	return e.u
}

// 终点节点
func (e *Edge) V() *Node {
	return e.v
}

// 路段长度（始终为正）
func (e *Edge) Length() float64 {
	return e.length
}

// 路段折线几何，首点在u、末点在v；无几何数据时返回nil
func (e *Edge) Geometry() []geometry.Point {
	return e.geometry
}

// 路段折线，无几何数据时退化为[u, v]两点直线段
func (e *Edge) Line() []geometry.Point {
	if len(e.geometry) > 0 {
		return e.geometry
	}
	return []geometry.Point{e.u.position, e.v.position}
}

func (e *Edge) String() string {
	return fmt.Sprintf("Edge{%d->%d, Length=%v}", e.u.id, e.v.id, e.length)
}

// Graph 只读路网
// 功能：维护节点与有向路段，提供拓扑查询与最短路计算
// 说明：构建完成后不再修改，节点顺序与输入顺序一致且在整个运行期间保持稳定
type Graph struct {
	nodes   []*Node // 按输入顺序
	nodeMap map[int64]*Node
	edges   []*Edge // 按输入顺序
}

// New 从输入数据构建路网
// 功能：校验并装载节点与路段，建立邻接关系
// 参数：nodeSeeds-节点数据，edgeSeeds-路段数据
// 返回：构建完成的只读路网
// 说明：节点ID重复、路段端点缺失、路段长度非正均视为数据错误，直接panic
func New(nodeSeeds []NodeSeed, edgeSeeds []EdgeSeed) *Graph {
	g := &Graph{
		nodes:   make([]*Node, 0, len(nodeSeeds)),
		nodeMap: make(map[int64]*Node, len(nodeSeeds)),
		edges:   make([]*Edge, 0, len(edgeSeeds)),
	}
	for _, s := range nodeSeeds {
		if _, ok := g.nodeMap[s.ID]; ok {
			log.Panicf("duplicated node id %d", s.ID)
		}
		n := &Node{
			id:          s.ID,
			position:    geometry.Point{X: s.X, Y: s.Y},
			streetCount: s.StreetCount,
		}
		g.nodes = append(g.nodes, n)
		g.nodeMap[s.ID] = n
	}
	for _, s := range edgeSeeds {
		u, ok := g.nodeMap[s.U]
		if !ok {
			log.Panicf("edge %d->%d references unknown node %d", s.U, s.V, s.U)
		}
		v, ok := g.nodeMap[s.V]
		if !ok {
			log.Panicf("edge %d->%d references unknown node %d", s.U, s.V, s.V)
		}
		if s.Length <= 0 {
			log.Panicf("edge %d->%d has non-positive length %v", s.U, s.V, s.Length)
		}
		e := &Edge{
			u:      u,
			v:      v,
			length: s.Length,
			geometry: lo.Map(s.Geometry, func(p PointSeed, _ int) geometry.Point {
				return geometry.Point{X: p.X, Y: p.Y}
			}),
		}
		if len(s.Geometry) == 0 {
			e.geometry = nil
		}
		g.edges = append(g.edges, e)
		u.outEdges = append(u.outEdges, e)
		v.inEdges = append(v.inEdges, e)
	}
	log.Infof("road graph loaded: %d nodes, %d edges", len(g.nodes), len(g.edges))
	return g
}

// 节点列表，按输入顺序，顺序在整个运行期间稳定
func (g *Graph) Nodes() []*Node {
	return g.nodes
}

// 路段列表，按输入顺序
func (g *Graph) Edges() []*Edge {
	return g.edges
}

// 输入节点ID，查找节点，如果不存在则panic
func (g *Graph) Get(id int64) *Node {
	n, ok := g.nodeMap[id]
	if !ok {
		log.Panicf("no node %d in road graph", id)
	}
	return n
}

// 输入节点ID，查找节点，如果不存在则返回error
func (g *Graph) GetOrError(id int64) (*Node, error) {
	n, ok := g.nodeMap[id]
	if !ok {
		return nil, fmt.Errorf("no node %d in road graph", id)
	}
	return n, nil
}

// 节点坐标快捷查询，节点不存在则panic
func (g *Graph) Position(id int64) geometry.Point {
	return g.Get(id).Position()
}

// u到v之间的所有平行路段，按输入顺序；不存在时返回空
func (g *Graph) EdgesBetween(u, v int64) []*Edge {
	from, ok := g.nodeMap[u]
	if !ok {
		return nil
	}
	return lo.Filter(from.outEdges, func(e *Edge, _ int) bool {
		return e.v.id == v
	})
}
