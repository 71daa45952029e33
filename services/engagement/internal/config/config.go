package config

import (
	"github.com/zeromicro/go-zero/rest"
)

type Config struct {
	rest.RestConf
	MySQL     MySQLConf
	Redis     RedisConf
	Etcd      EtcdConf  `json:",optional"`
	Kafka     KafkaConf `json:",optional"`
	IdCreator IdCreatorConf
	Cache     CacheConf
	// RestConf中已有Log字段
	Logger  LoggerConf
	Metrics MetricsConf `json:",optional"`
}

type MySQLConf struct {
	DataSource      string
	MaxOpenConns    int `json:",default=50"`
	MaxIdleConns    int `json:",default=10"`
	ConnMaxLifetime int `json:",default=3600"`
}

type RedisConf struct {
	Addr     string
	Password string `json:",optional"`
	DB       int    `json:",default=0"`
}

type EtcdConf struct {
	Endpoints   []string `json:",optional"`
	DialTimeout int      `json:",default=3"`
}

// KafkaConf Brokers为空时事件只写日志
type KafkaConf struct {
	Brokers []string `json:",optional"`
	Topic   string   `json:",default=engagement"`
}

type IdCreatorConf struct {
	Model    string `json:",default=local,options=segment|snowflake|local"`
	Name     string `json:",default=engagement"`
	WorkerId int64  `json:",default=1"`
	// snowflake模式下本实例对外地址
	Addr string `json:",optional"`
}

// CacheConf 时间单位均为秒
type CacheConf struct {
	TTL           int   `json:",default=60"`
	RebuildBefore int   `json:",default=10"`
	LocalSize     int   `json:",default=67108864"`
	LocalTTL      int   `json:",default=5"`
	HotWindow     int64 `json:",default=10"`
	HotThreshold  int64 `json:",default=20"`
}

type LoggerConf struct {
	// 为空时输出到stdout
	Path  string `json:",optional"`
	Level string `json:",default=info,options=debug|info|warn|error"`
}

type MetricsConf struct {
	// 为空时不启动
	Addr            string `json:",optional"`
	CollectInterval int    `json:",default=15"`
}
