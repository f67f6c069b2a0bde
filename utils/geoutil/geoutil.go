package geoutil

import (
	"math"

	"git.fiblab.net/general/common/v2/geometry"
	"github.com/samber/lo"
)

const (
	// 浮点坐标比较的默认相对容差（与坐标量级相乘）
	DefaultRelTol = 1e-6
	// 绝对容差下限，避免坐标接近零时相对容差退化为零
	DefaultAbsTol = 1e-9
	// 视野网格插值时每段路径的默认采样点数
	DefaultGridResolution = 50
)

// 二维向量的模长
func Magnitude(v geometry.Point) float64 {
	return math.Hypot(v.X, v.Y)
}

// IsClose 带容差的标量比较
// 功能：判断a与b在相对容差rtol下是否相等，|a-b| <= DefaultAbsTol + rtol*|b|
// 说明：全仓库所有容差比较的唯一入口，禁止在调用处内联容差常数
func IsClose(a, b, rtol float64) bool {
	return math.Abs(a-b) <= DefaultAbsTol+rtol*math.Abs(b)
}

// 两点在x、y两轴上同时满足IsClose
func PointsClose(p, q geometry.Point, rtol float64) bool {
	return IsClose(p.X, q.X, rtol) && IsClose(p.Y, q.Y, rtol)
}

// Parallel 判断两向量是否同向平行
// 功能：叉积相对于模长乘积在容差内为零且点积为正时返回true
// 说明：反向向量不视为平行（红灯匹配需要的是“朝向一致”），零向量恒为false
func Parallel(v, w geometry.Point, rtol float64) bool {
	scale := Magnitude(v) * Magnitude(w)
	if scale == 0 {
		return false
	}
	cross := v.X*w.Y - v.Y*w.X
	dot := v.X*w.X + v.Y*w.Y
	return math.Abs(cross) <= rtol*scale && dot > 0
}

// Linspace 对路径点序列做等间隔插值，生成障碍物匹配用的坐标网格
// 功能：对每对相邻路径点生成samples个均匀插值点（含两端），
// 相邻段共享的衔接点去重，返回平行的x、y坐标序列
// 参数：waypoints-路径点序列，samples-每段采样点数（<2时按2处理）
func Linspace(waypoints []geometry.Point, samples int) (xs, ys []float64) {
	if len(waypoints) == 0 {
		return nil, nil
	}
	if samples < 2 {
		samples = 2
	}
	xs = make([]float64, 0, (samples-1)*(len(waypoints)-1)+1)
	ys = make([]float64, 0, cap(xs))
	xs = append(xs, waypoints[0].X)
	ys = append(ys, waypoints[0].Y)
	for i := 0; i+1 < len(waypoints); i++ {
		for j := 1; j < samples; j++ {
			p := geometry.Blend(waypoints[i], waypoints[i+1], float64(j)/float64(samples-1))
			xs = append(xs, p.X)
			ys = append(ys, p.Y)
		}
	}
	return xs, ys
}

// 路径点序列每段的航向角（atan2），长度为len(view)-1
func Angles(view []geometry.Point) []float64 {
	return lo.Map(geometry.GetPolylineDirections(view), func(d geometry.PolylineDirection, _ int) float64 {
		return d.Direction
	})
}

// 两个航向角之间的最小夹角，归一到[0, π]
func HeadingDelta(a, b float64) float64 {
	d := math.Mod(b-a, 2*math.Pi)
	if d > math.Pi {
		d -= 2 * math.Pi
	} else if d < -math.Pi {
		d += 2 * math.Pi
	}
	return math.Abs(d)
}

// 航向角序列中相邻两段之间的最大转弯角，无弯道时为0
func MaxBend(angles []float64) float64 {
	maxBend := 0.0
	for i := 0; i+1 < len(angles); i++ {
		if d := HeadingDelta(angles[i], angles[i+1]); d > maxBend {
			maxBend = d
		}
	}
	return maxBend
}

// Decompile 将逐边折线序列压平为平行的x、y路径坐标
// 功能：按序拼接所有折线，相邻折线共享的衔接点（前一条的终点=后一条的起点）只保留一份
// 返回：等长的xs、ys序列，输入非空时长度恒为正
func Decompile(lines [][]geometry.Point) (xs, ys []float64) {
	xs = make([]float64, 0)
	ys = make([]float64, 0)
	for _, line := range lines {
		for _, p := range line {
			if n := len(xs); n > 0 && xs[n-1] == p.X && ys[n-1] == p.Y {
				continue
			}
			xs = append(xs, p.X)
			ys = append(ys, p.Y)
		}
	}
	return xs, ys
}
