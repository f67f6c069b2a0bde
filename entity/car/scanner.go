package car

import (
	"math"

	"git.fiblab.net/general/common/v2/geometry"

	"github.com/TimurZav/digital-city-cars/entity"
	"github.com/TimurZav/digital-city-cars/utils/config"
	"github.com/TimurZav/digital-city-cars/utils/geoutil"
)

// scanner 车辆障碍物扫描策略
// 功能：在视野网格上查找命中的障碍车
// 说明：两种实现观测行为完全一致，linear为参考语义，也是grid的测试基准
type scanner interface {
	// rebuild 快照就绪后重建内部索引，每tick调用一次
	rebuild(cars []entity.ICar)
	// scanCars 返回命中网格的车队序号最小的车，无命中时ok=false
	scanCars(view *FrontView, xs, ys []float64) (entity.ICar, bool)
}

// newScanner 根据配置创建扫描策略
func newScanner(strategy string, rtol float64) scanner {
	switch strategy {
	case config.StrategyLinear:
		return &linearScanner{}
	case config.StrategyGrid:
		return &gridScanner{rtol: rtol}
	default:
		log.Panicf("unknown perception strategy %q", strategy)
		return nil
	}
}

// 位置是否命中网格中的某个采样点（同一采样点上两轴同时IsClose）
func matchOnGrid(p geometry.Point, xs, ys []float64, rtol float64) bool {
	for i := range xs {
		if geoutil.IsClose(p.X, xs[i], rtol) && geoutil.IsClose(p.Y, ys[i], rtol) {
			return true
		}
	}
	return false
}

// linearScanner 参考扫描实现
// 功能：按车队顺序逐车匹配网格采样点，返回第一个命中者
// 说明：复杂度为车队规模乘网格点数；先命中者胜出而不是最近者优先
type linearScanner struct {
	cars []entity.ICar
}

func (s *linearScanner) rebuild(cars []entity.ICar) {
	s.cars = cars
}

func (s *linearScanner) scanCars(view *FrontView, xs, ys []float64) (entity.ICar, bool) {
	for _, c := range s.cars {
		if c.ID() == view.selfID {
			continue
		}
		if matchOnGrid(c.XY(), xs, ys, view.rtol) {
			return c, true
		}
	}
	return nil, false
}

// gridScanner 空间哈希扫描实现
// 功能：把车辆快照位置散列进均匀格网，采样点只探查周边格子内的候选车
// 算法说明：
// 1. rebuild时以不小于最大容差半径两倍的格边长重建格网
// 2. 每个采样点探查所在格与相邻八格中的候选车
// 3. 命中判定与linear完全相同（同一采样点两轴同时IsClose）
// 4. 返回全部命中里车队序号最小者，保证观测行为与linear一致
type gridScanner struct {
	rtol     float64
	cellSize float64
	cars     []entity.ICar
	cells    map[cellKey][]int
}

type cellKey struct {
	x, y int64
}

func (s *gridScanner) rebuild(cars []entity.ICar) {
	s.cars = cars
	maxAbs := 0.0
	for _, c := range cars {
		p := c.XY()
		maxAbs = math.Max(maxAbs, math.Max(math.Abs(p.X), math.Abs(p.Y)))
	}
	// 格边长覆盖坐标量级下最大可能的容差半径，候选车必然落在采样点的相邻格内
	s.cellSize = math.Max(1, 2*(geoutil.DefaultAbsTol+s.rtol*maxAbs))
	s.cells = make(map[cellKey][]int, len(cars))
	for i, c := range cars {
		k := s.key(c.XY())
		s.cells[k] = append(s.cells[k], i)
	}
}

func (s *gridScanner) key(p geometry.Point) cellKey {
	return cellKey{
		x: int64(math.Floor(p.X / s.cellSize)),
		y: int64(math.Floor(p.Y / s.cellSize)),
	}
}

func (s *gridScanner) scanCars(view *FrontView, xs, ys []float64) (entity.ICar, bool) {
	best := -1
	for i := range xs {
		g := geometry.Point{X: xs[i], Y: ys[i]}
		k := s.key(g)
		for dx := int64(-1); dx <= 1; dx++ {
			for dy := int64(-1); dy <= 1; dy++ {
				for _, idx := range s.cells[cellKey{x: k.x + dx, y: k.y + dy}] {
					if best >= 0 && idx >= best {
						continue
					}
					c := s.cars[idx]
					if c.ID() == view.selfID {
						continue
					}
					p := c.XY()
					if geoutil.IsClose(p.X, g.X, s.rtol) && geoutil.IsClose(p.Y, g.Y, s.rtol) {
						best = idx
					}
				}
			}
		}
	}
	if best < 0 {
		return nil, false
	}
	return s.cars[best], true
}
