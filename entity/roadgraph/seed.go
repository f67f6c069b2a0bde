package roadgraph

// 路网的外部数据格式，与OSM导出工具的字段保持一致。
// MongoDB集合与本地JSON文件共用同一套标签。

// NodeSeed 路口节点的输入数据
type NodeSeed struct {
	ID          int64   `bson:"id" json:"id" yaml:"id"`
	X           float64 `bson:"x" json:"x" yaml:"x"`
	Y           float64 `bson:"y" json:"y" yaml:"y"`
	StreetCount int     `bson:"street_count" json:"street_count" yaml:"street_count"`
}

// PointSeed 折线顶点的输入数据
type PointSeed struct {
	X float64 `bson:"x" json:"x" yaml:"x"`
	Y float64 `bson:"y" json:"y" yaml:"y"`
}

// EdgeSeed 有向路段的输入数据
// 说明：同一对(u,v)之间允许多条平行路段；geometry为空时视为u到v的直线段
type EdgeSeed struct {
	U        int64       `bson:"u" json:"u" yaml:"u"`
	V        int64       `bson:"v" json:"v" yaml:"v"`
	Length   float64     `bson:"length" json:"length" yaml:"length"`
	Geometry []PointSeed `bson:"geometry,omitempty" json:"geometry,omitempty" yaml:"geometry,omitempty"`
}
