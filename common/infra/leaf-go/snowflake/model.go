package snowflake

import (
	"sync/atomic"
	"time"

	"github.com/bwmarrin/snowflake"
	etcd "go.etcd.io/etcd/client/v3"
)

// Creator workerId由etcd统一分配，并定时上报时钟用于检测回拨
type Creator struct {
	name string
	addr string
	// 当前节点是否可正常工作，小步长回拨时置为false
	working  atomic.Bool
	client   *etcd.Client
	snowNode *snowflake.Node
	lease    etcd.LeaseID
	// etcd不可用时只依据本地时钟
	local atomic.Bool
	// 本地时钟(millisecond)
	lastTime atomic.Int64
	stop     chan struct{}
}

// LocalCreator workerId由配置给出，适用于单实例部署和测试
type LocalCreator struct {
	snowNode *snowflake.Node
}

type Config struct {
	CreatorName string
	Addr        string
	EtcdAddr    []string
	DialTimeout time.Duration
}

func (c *Config) dialTimeout() time.Duration {
	if c.DialTimeout <= 0 {
		return time.Second
	}
	return c.DialTimeout
}

const (
	workerKeyPrefix    = "IdCreator/"
	foreverKeyPrefix   = "IdCreatorForever/"
	temporaryKeyPrefix = "IdCreatorTemporary/"
	maxWorker          = 1024
)
