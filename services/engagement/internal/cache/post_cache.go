package cache

import (
	"GoEngage/common/infra/hotkey"
	"GoEngage/common/infra/lua"
	syncx "GoEngage/common/infra/sync"
	"GoEngage/common/model/database"
	"GoEngage/services/engagement/internal/metrics"
	"GoEngage/services/engagement/internal/script"
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/golang/groupcache/singleflight"
)

const (
	StatusError       = 1 << 0
	StatusFind        = 1 << 1
	StatusNeedRebuild = 1 << 2
	StatusNotFind     = 1 << 3
)

type Options struct {
	// redis中评论列表的过期时间
	TTL time.Duration
	// 剩余过期时间小于该值时后台重建
	RebuildBefore time.Duration
	// 版本号的过期时间，需要远大于TTL
	VersionTTL time.Duration
}

// Loader 缓存未命中时从数据库加载
type Loader func(ctx context.Context) ([]database.Post, error)

// PostCache 按目标缓存评论列表，本地热key缓存 -> redis -> 数据库
type PostCache struct {
	executor *lua.Executor
	sync     *syncx.Sync
	local    *hotkey.Core
	group    *singleflight.Group
	logger   *slog.Logger
	opts     Options
	wg       sync.WaitGroup
}

// NewPostCache executor需要已加载script.All()
func NewPostCache(executor *lua.Executor, sync *syncx.Sync, local *hotkey.Core, logger *slog.Logger, opts Options) *PostCache {
	if opts.TTL <= 0 {
		opts.TTL = time.Minute
	}
	if opts.RebuildBefore <= 0 || opts.RebuildBefore >= opts.TTL {
		opts.RebuildBefore = opts.TTL / 4
	}
	if opts.VersionTTL < opts.TTL {
		opts.VersionTTL = 24 * time.Hour
	}
	return &PostCache{
		executor: executor,
		sync:     sync,
		local:    local,
		group:    &singleflight.Group{},
		logger:   logger,
		opts:     opts,
	}
}

func PostsKey(target database.Target) string {
	return "Posts:{" + target.String() + "}"
}

// 与PostsKey同slot
func versionKey(target database.Target) string {
	return "PostsVersion:{" + target.String() + "}"
}

// Posts 返回的切片在调用方之间共享，不要修改
func (c *PostCache) Posts(ctx context.Context, target database.Target, load Loader) ([]database.Post, error) {
	key := PostsKey(target)
	if b, ok := c.local.Get(key); ok {
		posts, err := decode(b)
		if err == nil {
			metrics.CacheLookups.WithLabelValues(metrics.LayerLocal).Inc()
			return posts, nil
		}
		c.local.Del(key)
	}

	payload, status, version := c.getFromRedis(ctx, target)
	if status == StatusFind || status == StatusNeedRebuild {
		posts, err := decode([]byte(payload))
		if err == nil {
			metrics.CacheLookups.WithLabelValues(metrics.LayerRedis).Inc()
			c.keepHot(key, []byte(payload))
			if status == StatusNeedRebuild {
				c.wg.Add(1)
				go c.rebuild(target, version, load)
			}
			return posts, nil
		}
		c.logger.Warn("decode cached posts", "key", key, "err", err.Error())
		status = StatusNotFind
	}

	res, err := c.group.Do(key, func() (interface{}, error) {
		posts, err := load(ctx)
		if err != nil {
			return nil, err
		}
		b, err := json.Marshal(posts)
		if err != nil {
			return nil, err
		}
		// redis出错时不回写
		if status == StatusNotFind {
			c.build(ctx, target, version, b)
		}
		c.keepHot(key, b)
		return posts, nil
	})
	if err != nil {
		return nil, err
	}
	metrics.CacheLookups.WithLabelValues(metrics.LayerDB).Inc()
	return res.([]database.Post), nil
}

// Invalidate 目标下评论有写入后调用
func (c *PostCache) Invalidate(ctx context.Context, target database.Target) error {
	c.local.Del(PostsKey(target))
	return c.executor.Execute(ctx, script.InvalidatePosts,
		[]string{PostsKey(target), versionKey(target)},
		int64(c.opts.VersionTTL.Seconds()),
	).Err()
}

// Wait 等待后台重建结束
func (c *PostCache) Wait() {
	c.wg.Wait()
}

func (c *PostCache) getFromRedis(ctx context.Context, target database.Target) (string, int, string) {
	key := PostsKey(target)
	res, err := c.executor.Execute(ctx, script.GetPosts, []string{key, versionKey(target)}).StringSlice()
	if err != nil || len(res) != 3 {
		if err != nil {
			c.logger.Error("get posts from redis", "key", key, "err", err.Error())
		}
		return "", StatusError, ""
	}
	status, err := strconv.Atoi(res[1])
	if err != nil {
		return "", StatusError, ""
	}
	switch status {
	case StatusNotFind:
		c.logger.Debug("posts not exists in redis", "key", key)
	case StatusNeedRebuild:
		c.logger.Info("get posts from redis but need to rebuild", "key", key)
	}
	return res[0], status, res[2]
}

// build 读取之后版本号发生变化则放弃写入，返回是否写入
func (c *PostCache) build(ctx context.Context, target database.Target, version string, payload []byte) bool {
	key := PostsKey(target)
	ok, err := c.executor.Execute(ctx, script.BuildPosts,
		[]string{key, versionKey(target)},
		string(payload),
		int64(c.opts.TTL.Seconds()),
		int64(c.opts.RebuildBefore.Seconds()),
		version,
	).Int64()
	if err != nil {
		c.logger.Error("build posts cache", "key", key, "err", err.Error())
		return false
	}
	if ok == 0 {
		c.logger.Debug("posts changed while building cache", "key", key)
	}
	return ok == 1
}

func (c *PostCache) rebuild(target database.Target, version string, load Loader) {
	defer c.wg.Done()
	key := PostsKey(target)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	mutex := c.sync.NewMutex(key+":mutex", syncx.WithTTL(time.Second), syncx.WithUtil(5*time.Second))
	if err := mutex.TryLock(ctx); err != nil {
		return
	}
	defer func() { _ = mutex.Unlock(ctx) }()

	posts, err := load(ctx)
	if err != nil {
		c.logger.Error("load posts for rebuild", "key", key, "err", err.Error())
		return
	}
	b, err := json.Marshal(posts)
	if err != nil {
		return
	}
	c.build(ctx, target, version, b)
}

// keepHot 只有热key才进入本地缓存
func (c *PostCache) keepHot(key string, payload []byte) {
	if c.local.IsHotKey(key) {
		c.local.Set(key, payload, c.local.TTL())
	}
}

func decode(b []byte) ([]database.Post, error) {
	posts := make([]database.Post, 0)
	if err := json.Unmarshal(b, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}
