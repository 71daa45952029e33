package snowflake

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	etcd "go.etcd.io/etcd/client/v3"
)

func (c *Creator) GetId() (int64, bool) {
	if !c.working.Load() {
		return 0, false
	}
	return c.snowNode.Generate().Int64(), true
}

func (c *Creator) GetIdWithContext(ctx context.Context) (int64, error) {
	return retry(ctx, c.GetId)
}

func (c *Creator) GetIdWithTimeout(timeout time.Duration) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return c.GetIdWithContext(ctx)
}

// Close 停止时钟上报并释放lease
func (c *Creator) Close() error {
	close(c.stop)
	timeout, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_, _ = c.client.Revoke(timeout, c.lease)
	return c.client.Close()
}

// watchLease 续约失效，认为etcd不可用，改为只使用本地时钟
func (c *Creator) watchLease(ch <-chan *etcd.LeaseKeepAliveResponse) {
	for range ch {
	}
	select {
	case <-c.stop:
	default:
		slog.Error("snowflake lease keepalive closed, fallback to local clock", "creator", c.name)
		c.local.Store(true)
	}
}

// heartCheck 定时上报时钟到etcd，发现小步长回拨时暂停发号
func (c *Creator) heartCheck() {
	ticker := time.NewTicker(time.Millisecond * 200)
	defer ticker.Stop()
	key := foreverKeyPrefix + c.name + "/" + c.addr

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
		}
		last := c.lastTime.Load()
		if !c.local.Load() {
			timeout, cancel := context.WithTimeout(context.Background(), time.Millisecond*500)
			resp, err := c.client.Get(timeout, key)
			if err == nil && len(resp.Kvs) == 1 {
				if t, err := strconv.ParseInt(string(resp.Kvs[0].Value), 10, 64); err == nil {
					last = t
				}
			}
			c.checkClock(last)
			_, _ = c.client.Put(timeout, key, strconv.FormatInt(time.Now().UnixMilli(), 10))
			cancel()
		} else {
			c.checkClock(last)
		}
		c.lastTime.Store(time.Now().UnixMilli())
	}
}

func (c *Creator) checkClock(last int64) {
	back := last - time.Now().UnixMilli()
	if back <= 0 {
		return
	}
	if back > 500 {
		panic(ErrClockBackwards)
	}
	// 小步长回拨，等待双倍时间
	c.working.Store(false)
	time.Sleep(time.Duration(back) * time.Millisecond * 2)
	c.working.Store(true)
}

func (l *LocalCreator) GetId() (int64, bool) {
	return l.snowNode.Generate().Int64(), true
}

func (l *LocalCreator) GetIdWithContext(ctx context.Context) (int64, error) {
	return retry(ctx, l.GetId)
}

func (l *LocalCreator) GetIdWithTimeout(timeout time.Duration) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return l.GetIdWithContext(ctx)
}

func retry(ctx context.Context, get func() (int64, bool)) (int64, error) {
	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		if id, ok := get(); ok {
			return id, nil
		}
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-time.After(time.Millisecond * 50):
		}
	}
}
