package util

import (
	"context"
	"errors"
	"sync"
	"time"

	etcd "go.etcd.io/etcd/client/v3"
)

var ErrLockTimeout = errors.New("etcd lock timeout")

// EtcdLock 基于lease的互斥锁，持有期间lease自动续约
type EtcdLock struct {
	client  *etcd.Client
	key     string
	leaseId etcd.LeaseID
	stop    context.CancelFunc
	once    sync.Once
}

// NewEtcdLock 在ctx超时前不断尝试抢占key，ttl为lease的秒数
func NewEtcdLock(ctx context.Context, client *etcd.Client, key string, ttl int64) (*EtcdLock, error) {
	leaseResp, err := client.Grant(ctx, ttl)
	if err != nil {
		return nil, err
	}

	keepCtx, stop := context.WithCancel(context.Background())
	lock := &EtcdLock{
		client:  client,
		key:     key,
		leaseId: leaseResp.ID,
		stop:    stop,
	}

	ch, err := client.KeepAlive(keepCtx, leaseResp.ID)
	if err != nil {
		lock.Unlock()
		return nil, err
	}
	// 消费续约响应，防止channel写满
	go func() {
		for range ch {
		}
	}()

	ticker := time.NewTicker(time.Millisecond * 15)
	defer ticker.Stop()
	for i := 0; i < 50; i++ {
		res, err := client.Txn(ctx).
			If(etcd.Compare(etcd.CreateRevision(key), "=", 0)).
			Then(etcd.OpPut(key, "locked", etcd.WithLease(leaseResp.ID))).
			Commit()
		if err == nil && res.Succeeded {
			return lock, nil
		}
		select {
		case <-ctx.Done():
			lock.Unlock()
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
	lock.Unlock()
	return nil, ErrLockTimeout
}

// Unlock 撤销lease，key随之删除，可重复调用
func (l *EtcdLock) Unlock() {
	l.once.Do(func() {
		l.stop()
		timeout, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_, _ = l.client.Revoke(timeout, l.leaseId)
	})
}
