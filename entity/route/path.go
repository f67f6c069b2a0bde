package route

import (
	"fmt"

	"git.fiblab.net/general/common/v2/geometry"
)

// Path 解编后的行驶路径
// 功能：平行的x、y路径点序列，从头部逐点消费
// 说明：消费只进不退；终点坐标在消费完后仍可读取
type Path struct {
	xs, ys []float64
	end    geometry.Point
}

// 由等长的x、y坐标序列构造路径
func NewPath(xs, ys []float64) *Path {
	if len(xs) != len(ys) || len(xs) == 0 {
		log.Panicf("bad path: %d xs, %d ys", len(xs), len(ys))
	}
	return &Path{
		xs:  xs,
		ys:  ys,
		end: geometry.Point{X: xs[len(xs)-1], Y: ys[len(ys)-1]},
	}
}

// 剩余（未消费）路径点数
func (p *Path) Len() int {
	return len(p.xs)
}

// 路径是否已全部消费
func (p *Path) Exhausted() bool {
	return len(p.xs) == 0
}

// 第i个未消费路径点
func (p *Path) At(i int) geometry.Point {
	return geometry.Point{X: p.xs[i], Y: p.ys[i]}
}

// 前k个未消费路径点，不足k个时返回全部剩余点
func (p *Path) View(k int) []geometry.Point {
	if k > len(p.xs) {
		k = len(p.xs)
	}
	view := make([]geometry.Point, k)
	for i := 0; i < k; i++ {
		view[i] = geometry.Point{X: p.xs[i], Y: p.ys[i]}
	}
	return view
}

// 消费头部路径点，已消费完时不做任何事
func (p *Path) Advance() {
	if len(p.xs) == 0 {
		return
	}
	p.xs = p.xs[1:]
	p.ys = p.ys[1:]
}

// 路径终点坐标，消费完毕后仍然有效
func (p *Path) End() geometry.Point {
	return p.end
}

func (p *Path) String() string {
	return fmt.Sprintf("Path{%d points left, end=(%v,%v)}", len(p.xs), p.end.X, p.end.Y)
}
