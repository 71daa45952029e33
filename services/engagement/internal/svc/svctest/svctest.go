package svctest

import (
	"GoEngage/common/infra/hotkey"
	leaf "GoEngage/common/infra/leaf-go"
	"GoEngage/common/infra/lua"
	syncx "GoEngage/common/infra/sync"
	"GoEngage/common/model/mq"
	"GoEngage/services/engagement/internal/cache"
	"GoEngage/services/engagement/internal/middleware"
	"GoEngage/services/engagement/internal/script"
	"GoEngage/services/engagement/internal/store/storetest"
	"GoEngage/services/engagement/internal/svc"
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

// Recorder 记录发布的事件
type Recorder struct {
	mu   sync.Mutex
	msgs []mq.Message
}

func (r *Recorder) Publish(_ context.Context, msg mq.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
	return nil
}

func (r *Recorder) Types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	res := make([]string, len(r.msgs))
	for i, m := range r.msgs {
		res[i] = m.Type()
	}
	return res
}

func (r *Recorder) Last() mq.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.msgs) == 0 {
		return nil
	}
	return r.msgs[len(r.msgs)-1]
}

// New sqlite内存库 + miniredis，依赖全部在测试结束时释放
func New(tb testing.TB) (*svc.ServiceContext, *Recorder) {
	tb.Helper()
	ctx := context.Background()
	s := storetest.New(tb)

	mr := miniredis.RunT(tb)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	tb.Cleanup(func() { _ = client.Close() })
	executor := lua.NewExecutor(client)
	_, err := executor.Load(ctx, script.All())
	require.NoError(tb, err)
	mutexes, err := syncx.NewSync(ctx, client)
	require.NoError(tb, err)
	local := hotkey.NewCore(hotkey.WithCacheSize(1024 * 1024))
	tb.Cleanup(local.Close)

	creator, err := leaf.NewCore(ctx, leaf.Config{Model: leaf.Local, LocalConfig: &leaf.LocalConfig{WorkerId: 1}})
	require.NoError(tb, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	rec := &Recorder{}
	svcCtx := &svc.ServiceContext{
		DB:             s.DB(),
		Store:          s,
		Client:         client,
		Executor:       executor,
		Sync:           mutexes,
		Local:          local,
		Cache:          cache.NewPostCache(executor, mutexes, local, logger, cache.Options{TTL: time.Minute}),
		Creator:        creator,
		Publisher:      rec,
		Logger:         logger,
		UserMiddleware: middleware.NewUserMiddleware().Handle,
	}
	tb.Cleanup(svcCtx.Cache.Wait)
	return svcCtx, rec
}
