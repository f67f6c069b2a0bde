package input

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"git.fiblab.net/general/common/v2/mongoutil"
	"github.com/TimurZav/digital-city-cars/entity/roadgraph"
	"github.com/TimurZav/digital-city-cars/utils/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Seeds 路网种子数据
// 功能：存储构建路网所需的全部输入数据
// 说明：MongoDB集合与本地JSON文件提供相同的字段，加载后交由路网构建校验
type Seeds struct {
	Nodes []roadgraph.NodeSeed `json:"nodes"` // 路口节点
	Edges []roadgraph.EdgeSeed `json:"edges"` // 有向路段
}

// Init 下载数据
// 功能：根据配置加载路网种子数据
// 参数：config-配置对象，cacheDir-缓存目录
// 返回：加载完成的种子数据指针
// 算法说明：
// 1. 缓存检查：验证缓存目录的有效性
// 2. 文件加载：配置了本地文件时直接从文件读取
// 3. 缓存加载：缓存文件存在时优先使用缓存，跳过数据库访问
// 4. 数据库加载：从MongoDB的{col}.nodes与{col}.edges两个集合拉取全部文档
// 5. 缓存回写：拉取成功后写入缓存文件供下次使用
// 说明：数据加载的主入口，节点与路段的有效性校验由路网构建负责
func Init(config config.Config, cacheDir string) (res *Seeds) {
	useCache := preCheckCache(cacheDir)
	if !useCache {
		cacheDir = ""
	}

	inputPath := config.Input.Map
	if inputPath.File != "" {
		seeds, err := readSeedsFile(inputPath.File)
		if err != nil {
			log.Panicf("failed to load input from file %s: %v", inputPath.File, err)
		}
		return seeds
	}

	cachePath := ""
	if cacheDir != "" {
		cachePath = filepath.Join(cacheDir, inputPath.GetCachePath())
		if seeds, err := readSeedsFile(cachePath); err == nil {
			log.Infof("load input from cache %s", cachePath)
			return seeds
		} else if !os.IsNotExist(err) {
			log.Warnf("ignore broken cache %s: %v", cachePath, err)
		}
	}
	if inputPath.OnlyCache {
		log.Panicf("no usable cache for %s.%s in cache-only mode", inputPath.DB, inputPath.Col)
	}
	if config.Input.URI == "" {
		log.Panicf("no input source for %s.%s: mongo uri is empty and no cache hit", inputPath.DB, inputPath.Col)
	}

	client := mongoutil.NewClient(config.Input.URI)
	defer client.Disconnect(context.Background())

	log.Infof("start fetching from %s.%s", inputPath.DB, inputPath.Col)
	res = &Seeds{
		Nodes: fetchSeeds[roadgraph.NodeSeed](client, inputPath, "nodes"),
		Edges: fetchSeeds[roadgraph.EdgeSeed](client, inputPath, "edges"),
	}
	log.Infof("finish fetching from %s.%s", inputPath.DB, inputPath.Col)

	if cachePath != "" {
		if err := writeSeedsFile(cachePath, res); err != nil {
			log.Warnf("failed to write cache %s: %v", cachePath, err)
		} else {
			log.Infof("write input cache to %s", cachePath)
		}
	}
	return
}

// fetchSeeds 拉取一类种子数据
// 功能：读取{col}.{kind}集合的全部文档并按BSON标签解码
// 参数：client-数据库连接，inputPath-输入路径配置，kind-集合后缀（nodes或edges）
// 返回：解码后的种子切片
func fetchSeeds[T any](client *mongo.Client, inputPath config.InputPath, kind string) []T {
	coll := client.Database(inputPath.GetDb()).Collection(inputPath.GetColl() + "." + kind)
	cursor, err := coll.Find(context.Background(), bson.D{})
	if err != nil {
		log.Panicf("failed to query %s.%s.%s: %v", inputPath.DB, inputPath.Col, kind, err)
	}
	var items []T
	if err := cursor.All(context.Background(), &items); err != nil {
		log.Panicf("failed to decode %s.%s.%s: %v", inputPath.DB, inputPath.Col, kind, err)
	}
	return items
}

// readSeedsFile 从JSON文件读取种子数据
func readSeedsFile(path string) (*Seeds, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	seeds := &Seeds{}
	if err := json.Unmarshal(data, seeds); err != nil {
		return nil, err
	}
	return seeds, nil
}

// writeSeedsFile 将种子数据写入JSON文件
func writeSeedsFile(path string, seeds *Seeds) error {
	data, err := json.Marshal(seeds)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// preCheckCache 预检查缓存目录
// 功能：验证输入缓存目录的有效性，决定是否启用缓存
// 说明：目录不存在或指向文件时禁用缓存，避免后续读写报错
func preCheckCache(cacheDir string) bool {
	if cacheDir == "" {
		log.Info("disable input cache")
		return false
	}
	if stat, err := os.Stat(cacheDir); err == nil && stat.IsDir() {
		// 文件夹存在
		log.Infof("enable input cache at %s", cacheDir)
		return true
	}
	log.Errorf("disable input cache because invalid dir %s (not exist or file)", cacheDir)
	return false
}
