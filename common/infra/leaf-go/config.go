package leaf_go

import (
	"time"

	"gorm.io/gorm"
)

const (
	Segment   = 1
	Snowflake = 2
	// Local 单机雪花算法，workerId由配置指定，不依赖etcd
	Local = 3
)

type SegmentConfig struct {
	// 服务名称，同一服务共享数据库的同一记录
	Name string
	// 号段表所在的数据库
	DB *gorm.DB
}

type SnowflakeConfig struct {
	// 使用的服务名称，同一服务保证不分发相同id，同一服务上限1024个节点
	CreatorName string
	// 该服务的ip+port，其他同一服务启动时获取该机器的时钟，验证时钟回拨的风险
	Addr string
	// etcd地址
	EtcdAddr []string
	// 连接etcd的超时时间，为0时使用1秒
	DialTimeout time.Duration
}

type LocalConfig struct {
	// 0~1023
	WorkerId int64
}

type Config struct {
	Model           int
	SegmentConfig   *SegmentConfig
	SnowflakeConfig *SnowflakeConfig
	LocalConfig     *LocalConfig
}
