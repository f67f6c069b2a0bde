package output

import (
	"context"

	"git.fiblab.net/general/common/v2/mongoutil"
	"github.com/TimurZav/digital-city-cars/entity"
	"github.com/TimurZav/digital-city-cars/utils/config"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.mongodb.org/mongo-driver/mongo"
)

// stepDoc 单辆车在单步的快照文档
type stepDoc struct {
	RunID  string  `bson:"run_id"`
	Job    string  `bson:"job"`
	Step   int32   `bson:"step"`
	CarID  int32   `bson:"car_id"`
	X      float64 `bson:"x"`
	Y      float64 `bson:"y"`
	V      float64 `bson:"v"`
	Status string  `bson:"status"`
}

// Recorder 运行快照记录器
// 功能：按步缓冲车辆快照并批量写入MongoDB
// 说明：每次运行生成唯一的run_id，便于在同一集合中区分多次运行
type Recorder struct {
	runID     string            // 本次运行的唯一标识
	job       string            // 任务名
	client    *mongo.Client     // 输出数据库连接
	coll      *mongo.Collection // 快照集合
	carIDs    []int32           // 记录范围，为空表示全部车辆
	batchSize int               // 单次批量写入的文档数
	buffer    []any             // 待写入的文档缓冲
	filtered  []entity.ICar     // 过滤后的记录对象，首次记录时解析
	resolved  bool              // 过滤结果是否已解析
}

// NewRecorder 创建快照记录器
// 功能：连接输出数据库并初始化写入缓冲
// 参数：job-任务名，output-输出配置
// 返回：记录器指针
func NewRecorder(job string, output config.Output) *Recorder {
	client := mongoutil.NewClient(output.URI)
	r := &Recorder{
		runID:     uuid.NewString(),
		job:       job,
		client:    client,
		coll:      client.Database(output.DB).Collection(output.Col),
		carIDs:    output.CarIDs,
		batchSize: output.BatchSize,
		buffer:    make([]any, 0, output.BatchSize),
	}
	log.Infof("record run %s to %s.%s", r.runID, output.DB, output.Col)
	return r
}

// Record 记录一步的车辆快照
// 功能：将记录范围内车辆的当前状态追加到缓冲，缓冲满时批量写入
// 参数：step-当前步数，cars-全部车辆
// 算法说明：
// 1. 首次调用时按配置的车辆ID解析记录范围，空配置表示记录全部车辆
// 2. 逐车追加{run_id,job,step,car_id,x,y,v,status}文档
// 3. 缓冲达到批量大小时写入数据库
func (r *Recorder) Record(step int32, cars []entity.ICar) {
	if !r.resolved {
		r.resolve(cars)
	}
	for _, c := range r.filtered {
		pos := c.XY()
		r.buffer = append(r.buffer, stepDoc{
			RunID:  r.runID,
			Job:    r.job,
			Step:   step,
			CarID:  c.ID(),
			X:      pos.X,
			Y:      pos.Y,
			V:      c.V(),
			Status: c.Status().String(),
		})
	}
	if len(r.buffer) >= r.batchSize {
		r.flush()
	}
}

// Close 关闭记录器
// 功能：写入剩余缓冲并断开数据库连接
func (r *Recorder) Close() {
	r.flush()
	if err := r.client.Disconnect(context.Background()); err != nil {
		log.Errorf("failed to disconnect output client: %v", err)
	}
	log.Infof("finish recording run %s", r.runID)
}

// resolve 解析记录范围
func (r *Recorder) resolve(cars []entity.ICar) {
	dataMap := lo.SliceToMap(cars, func(c entity.ICar) (int32, entity.ICar) { return c.ID(), c })
	okData, failedIDs := find(dataMap, cars, r.carIDs)
	if len(failedIDs) > 0 {
		log.Warnf("output car ids not found: %v", failedIDs)
	}
	r.filtered = okData
	r.resolved = true
}

// find 按ID筛选数据
// 说明：ids为空表示不筛选，直接返回全部data；不存在的ID进入失败列表
func find[T any](dataMap map[int32]T, data []T, ids []int32) (okData []T, failedIDs []int32) {
	if len(ids) == 0 {
		return data, nil
	}
	okData = make([]T, 0, len(ids))
	failedIDs = make([]int32, 0, len(ids))
	for _, id := range ids {
		if d, ok := dataMap[id]; ok {
			okData = append(okData, d)
		} else {
			failedIDs = append(failedIDs, id)
		}
	}
	return
}

// flush 批量写入缓冲中的文档
func (r *Recorder) flush() {
	if len(r.buffer) == 0 {
		return
	}
	if _, err := r.coll.InsertMany(context.Background(), r.buffer); err != nil {
		log.Errorf("failed to insert %d snapshot docs: %v", len(r.buffer), err)
	}
	r.buffer = r.buffer[:0]
}
