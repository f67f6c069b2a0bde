package main

import (
	"encoding/base64"
	"flag"
	"os"

	easy "git.fiblab.net/utils/logrus-easy-formatter"
	"github.com/TimurZav/digital-city-cars/task"
	"github.com/TimurZav/digital-city-cars/utils/config"
	"github.com/TimurZav/digital-city-cars/utils/input"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

var (
	// 模拟任务名，用于日志标注与输出文档的job字段
	job = flag.String("job", "job0", "the name of the whole simulation task")
	// 配置文件路径
	configPath = flag.String("config", "", "config file path")
	// 配置文件Base64编码后的数据
	configData = flag.String("config-data", "", "config file base64 encoded data")
	// 数据加载input的缓存地址，设置为空则禁用缓存功能
	// 缓存：将路网种子按数据库db和col序列化到本地文件系统，并总是先试图从文件系统中加载
	cacheDir = flag.String("cache", "data/", "input cache dir path (empty means disable cache)")
	// 是否启用快照输出，关闭时忽略配置中的output段
	enableOutput = flag.Bool("output", true, "enable snapshot output to MongoDB")

	// log
	logLevels = map[string]logrus.Level{
		"trace":    logrus.TraceLevel,
		"debug":    logrus.DebugLevel,
		"info":     logrus.InfoLevel,
		"warn":     logrus.WarnLevel,
		"error":    logrus.ErrorLevel,
		"critical": logrus.FatalLevel,
		"off":      logrus.PanicLevel,
	}
	logLevel = flag.String("log.level", "info", "日志级别（可选项：trace debug info warn error critical off）")

	log = logrus.WithField("module", "citycars")
)

func main() {
	flag.Parse()
	logrus.SetFormatter(&easy.Formatter{
		TimestampFormat: "2006-01-02 15:04:05.0000",
		LogFormat:       "[%module%] [%time%] [%lvl%] %msg%\n",
	})
	// log: 运行时才修改
	if level, ok := logLevels[*logLevel]; ok {
		logrus.SetLevel(level)
	} else {
		log.Panicf("log.level must be one of %v", logLevels)
	}
	// .env提供环境变量形式的连接信息，文件不存在时直接使用系统环境
	if err := godotenv.Load(); err != nil {
		log.Debugf("no .env file: %v", err)
	}
	// 获取配置
	var c config.Config
	var file []byte
	var err error
	if *configPath != "" {
		file, err = os.ReadFile(*configPath)
		if err != nil {
			log.Panicf("config file load err: %v", err)
		}
	} else if *configData != "" {
		file, err = base64.StdEncoding.DecodeString(*configData)
		if err != nil {
			log.Panicf("config data load err: %v", err)
		}
	} else {
		log.Panic("config file or config data must be specified")
	}
	if err := yaml.UnmarshalStrict(file, &c); err != nil {
		log.Panicf("config file load err: %v", err)
	}
	// 连接串优先取环境变量，避免在配置文件中保存凭据
	if uri := os.Getenv("MONGO_URI"); uri != "" {
		c.Input.URI = uri
	}
	if uri := os.Getenv("OUTPUT_MONGO_URI"); uri != "" {
		c.Output.URI = uri
	}
	if !*enableOutput {
		c.Output = config.Output{}
	}
	log.Infof("%+v", c)

	seeds := input.Init(c, *cacheDir)
	t := task.NewContext(*job, c, seeds)
	t.Run()
}
