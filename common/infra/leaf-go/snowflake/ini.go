package snowflake

import (
	"GoEngage/common/util"
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/bwmarrin/snowflake"
	etcd "go.etcd.io/etcd/client/v3"
)

var (
	ErrWorkerExhausted = errors.New("worker id not enough")
	ErrClockBackwards  = errors.New("clock moved backwards")
)

func NewCreator(ctx context.Context, config *Config) (*Creator, error) {
	client, err := etcd.New(etcd.Config{
		Endpoints:   config.EtcdAddr,
		DialTimeout: config.dialTimeout(),
	})
	if err != nil {
		return nil, err
	}

	id, err := allocWorker(ctx, client, config)
	if err != nil {
		_ = client.Close()
		return nil, err
	}
	c, err := initCreator(ctx, client, config, id)
	if err != nil {
		_ = client.Close()
		return nil, err
	}
	return c, nil
}

// allocWorker 同一服务的实例在分布式锁内依次领取workerId，重启的实例复用之前的workerId
func allocWorker(ctx context.Context, client *etcd.Client, config *Config) (int64, error) {
	lock, err := util.NewEtcdLock(ctx, client, "lock/"+config.CreatorName, 10)
	if err != nil {
		return 0, err
	}
	defer lock.Unlock()

	res, err := client.Get(ctx, workerKeyPrefix+config.CreatorName+"/"+config.Addr)
	if err != nil {
		return 0, err
	}
	if len(res.Kvs) == 1 {
		return strconv.ParseInt(string(res.Kvs[0].Value), 10, 64)
	}

	res, err = client.Get(ctx, workerKeyPrefix+config.CreatorName, etcd.WithPrefix(), etcd.WithCountOnly())
	if err != nil {
		return 0, err
	}
	id := res.Count
	if id >= maxWorker {
		return 0, ErrWorkerExhausted
	}
	_, err = client.Put(ctx, workerKeyPrefix+config.CreatorName+"/"+config.Addr, strconv.FormatInt(id, 10))
	if err != nil {
		return 0, err
	}
	return id, nil
}

func initCreator(ctx context.Context, client *etcd.Client, config *Config, id int64) (*Creator, error) {
	node, err := snowflake.NewNode(id)
	if err != nil {
		return nil, err
	}
	// 该key永久存储在etcd中，定时上报时钟到该节点
	key := foreverKeyPrefix + config.CreatorName + "/" + config.Addr
	res, err := client.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	now := time.Now().UnixMilli()
	if len(res.Kvs) == 0 {
		if _, err = client.Put(ctx, key, strconv.FormatInt(now, 10)); err != nil {
			return nil, err
		}
	} else {
		last, err := strconv.ParseInt(string(res.Kvs[0].Value), 10, 64)
		if err != nil {
			return nil, err
		}
		if now < last {
			return nil, ErrClockBackwards
		}
	}

	leaseResp, err := client.Grant(ctx, 10)
	if err != nil {
		return nil, err
	}
	ch, err := client.KeepAlive(context.Background(), leaseResp.ID)
	if err != nil {
		return nil, err
	}
	// 正在运行的实例地址与lease绑定，实例下线后自动删除
	_, err = client.Put(ctx, temporaryKeyPrefix+config.CreatorName+"/"+config.Addr, config.Addr, etcd.WithLease(leaseResp.ID))
	if err != nil {
		return nil, err
	}

	c := &Creator{
		name:     config.CreatorName,
		addr:     config.Addr,
		client:   client,
		snowNode: node,
		lease:    leaseResp.ID,
		stop:     make(chan struct{}),
	}
	c.lastTime.Store(now)
	c.working.Store(true)
	go c.heartCheck()
	go c.watchLease(ch)
	return c, nil
}

func NewLocalCreator(workerId int64) (*LocalCreator, error) {
	node, err := snowflake.NewNode(workerId)
	if err != nil {
		return nil, err
	}
	return &LocalCreator{snowNode: node}, nil
}
