package light

import (
	"git.fiblab.net/general/common/v2/geometry"
	"github.com/samber/lo"

	"github.com/TimurZav/digital-city-cars/entity/roadgraph"
	"github.com/TimurZav/digital-city-cars/entity/route"
)

const (
	// 信号灯选点时对节点遍历序号的默认预分频系数
	DefaultPrescale = 4
	// 默认相位切换周期(s)
	DefaultSwitchPeriod = 30.0
)

// FindCuldesacs 找出路网中的断头路节点
// 功能：返回物理街道数恰好为1的节点ID，按节点输入顺序
func FindCuldesacs(g *roadgraph.Graph) []int64 {
	ids := make([]int64, 0)
	for _, n := range g.Nodes() {
		if n.StreetCount() == 1 {
			ids = append(ids, n.ID())
		}
	}
	return ids
}

// FindTrafficLights 选出设置信号灯的路口节点
// 功能：按稳定的节点遍历顺序，选出度大于3且绝对遍历序号能被prescale整除的节点
// 参数：g-路网，prescale-预分频系数（必须>=1）
// 返回：选中的节点ID，按遍历顺序
// 说明：判据使用的是全部节点中的绝对序号而不是合格节点中的序号，
// 因此度合格但序号不整除的节点会被跳过；该耦合是选点行为的一部分，不得改动
func FindTrafficLights(g *roadgraph.Graph, prescale int) []int64 {
	if prescale < 1 {
		log.Panicf("bad traffic light prescale %d", prescale)
	}
	ids := make([]int64, 0)
	for i, n := range g.Nodes() {
		if n.Degree() > 3 && i%prescale == 0 {
			ids = append(ids, n.ID())
		}
	}
	return ids
}

// DeterminePedigree 计算路口各进近方向的出射方向向量
// 功能：为一个路口节点生成按进近方向排列的单位无关方向向量
// 参数：g-路网，planner-路径规划器，nodeID-路口节点ID
// 返回：方向向量序列，顺序由路网决定且稳定
// 算法说明：
// 1. 将关联路段按方向分为出边与入边
// 2. 对每条出边，去掉首条与之互为反向的入边（双向街道只贡献一个进近方向）
// 3. 剩余路段的对端节点合并为无向邻居序列，保持顺序并去重
// 4. 对每个邻居解编本路口出发的路径，取首条折线上紧邻路口的第一个点，
//    以“路口坐标->该点”作为方向向量
// 说明：邻居的路径或几何无法解析时静默跳过，不报错；因此向量数可能小于节点的度
func DeterminePedigree(g *roadgraph.Graph, planner *route.Planner, nodeID int64) []geometry.Point {
	node := g.Get(nodeID)
	out := node.OutEdges()
	in := make([]*roadgraph.Edge, len(node.InEdges()))
	copy(in, node.InEdges())

	for _, oe := range out {
		for i, ie := range in {
			if ie.U().ID() == oe.V().ID() && ie.V().ID() == oe.U().ID() {
				in = append(in[:i], in[i+1:]...)
				break
			}
		}
	}

	neighbors := make([]int64, 0, len(out)+len(in))
	for _, e := range out {
		neighbors = append(neighbors, e.V().ID())
	}
	for _, e := range in {
		neighbors = append(neighbors, e.U().ID())
	}
	neighbors = lo.Uniq(neighbors)

	origin := node.Position()
	vectors := make([]geometry.Point, 0, len(neighbors))
	for _, neighbor := range neighbors {
		lines, err := planner.LinesTo(nodeID, neighbor)
		if err != nil || len(lines) == 0 || len(lines[0]) < 2 {
			// 进近几何不可解析，跳过该方向
			log.Debugf("skip pedigree neighbor %d of node %d", neighbor, nodeID)
			continue
		}
		first := lines[0][1]
		vectors = append(vectors, geometry.Point{X: first.X - origin.X, Y: first.Y - origin.Y})
	}
	return vectors
}
