package cache

import (
	"GoEngage/common/infra/hotkey"
	"GoEngage/common/infra/lua"
	syncx "GoEngage/common/infra/sync"
	"GoEngage/common/model/database"
	"GoEngage/services/engagement/internal/script"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var target = database.Target{ContentType: database.ContentCourse, ContentId: "rust-101"}

type fixture struct {
	mr    *miniredis.Miniredis
	cache *PostCache
	loads atomic.Int64
	posts atomic.Pointer[[]database.Post]
}

func newFixture(t *testing.T, opts Options, hot ...hotkey.Option) *fixture {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	ctx := context.Background()

	executor := lua.NewExecutor(client)
	_, err := executor.Load(ctx, script.All())
	require.NoError(t, err)
	mutexes, err := syncx.NewSync(ctx, client)
	require.NoError(t, err)

	local := hotkey.NewCore(append([]hotkey.Option{hotkey.WithCacheSize(1024 * 1024)}, hot...)...)
	t.Cleanup(local.Close)

	f := &fixture{mr: mr}
	f.cache = NewPostCache(executor, mutexes, local, slog.New(slog.NewTextHandler(io.Discard, nil)), opts)
	f.setPosts(1)
	return f
}

func (f *fixture) setPosts(ids ...int64) {
	posts := make([]database.Post, 0, len(ids))
	for _, id := range ids {
		posts = append(posts, database.Post{Id: id, ContentType: target.ContentType, ContentId: target.ContentId})
	}
	f.posts.Store(&posts)
}

func (f *fixture) load(context.Context) ([]database.Post, error) {
	f.loads.Add(1)
	return *f.posts.Load(), nil
}

func ids(posts []database.Post) []int64 {
	out := make([]int64, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.Id)
	}
	return out
}

func TestPosts_MissThenRedisHit(t *testing.T) {
	f := newFixture(t, Options{TTL: time.Minute})
	ctx := context.Background()

	posts, err := f.cache.Posts(ctx, target, f.load)
	require.NoError(t, err)
	require.Equal(t, []int64{1}, ids(posts))
	require.True(t, f.mr.Exists(PostsKey(target)))

	posts, err = f.cache.Posts(ctx, target, f.load)
	require.NoError(t, err)
	require.Equal(t, []int64{1}, ids(posts))
	require.Equal(t, int64(1), f.loads.Load())
}

func TestInvalidate_ForcesReload(t *testing.T) {
	f := newFixture(t, Options{TTL: time.Minute})
	ctx := context.Background()

	_, err := f.cache.Posts(ctx, target, f.load)
	require.NoError(t, err)

	f.setPosts(1, 2)
	require.NoError(t, f.cache.Invalidate(ctx, target))
	require.False(t, f.mr.Exists(PostsKey(target)))

	posts, err := f.cache.Posts(ctx, target, f.load)
	require.NoError(t, err)
	require.Equal(t, []int64{1, 2}, ids(posts))
	require.Equal(t, int64(2), f.loads.Load())
}

func TestBuild_RejectedAfterConcurrentWrite(t *testing.T) {
	f := newFixture(t, Options{TTL: time.Minute})
	ctx := context.Background()

	_, status, version := f.cache.getFromRedis(ctx, target)
	require.Equal(t, StatusNotFind, status)

	// 读取数据库期间有写入
	require.NoError(t, f.cache.Invalidate(ctx, target))

	stale, err := json.Marshal([]database.Post{{Id: 1}})
	require.NoError(t, err)
	require.False(t, f.cache.build(ctx, target, version, stale))
	require.False(t, f.mr.Exists(PostsKey(target)))

	_, _, version = f.cache.getFromRedis(ctx, target)
	require.True(t, f.cache.build(ctx, target, version, stale))
}

func TestPosts_NeedRebuildServesOldAndRefreshes(t *testing.T) {
	f := newFixture(t, Options{TTL: 10 * time.Second, RebuildBefore: 5 * time.Second})
	ctx := context.Background()

	_, err := f.cache.Posts(ctx, target, f.load)
	require.NoError(t, err)

	f.setPosts(1, 3)
	f.mr.FastForward(6 * time.Second)

	posts, err := f.cache.Posts(ctx, target, f.load)
	require.NoError(t, err)
	require.Equal(t, []int64{1}, ids(posts))
	f.cache.Wait()
	require.Equal(t, int64(2), f.loads.Load())

	posts, err = f.cache.Posts(ctx, target, f.load)
	require.NoError(t, err)
	require.Equal(t, []int64{1, 3}, ids(posts))
}

func TestPosts_ConcurrentMissLoadsOnce(t *testing.T) {
	f := newFixture(t, Options{TTL: time.Minute})
	ctx := context.Background()
	release := make(chan struct{})
	var loads atomic.Int64
	load := func(context.Context) ([]database.Post, error) {
		loads.Add(1)
		<-release
		return []database.Post{{Id: 7}}, nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			posts, err := f.cache.Posts(ctx, target, load)
			assert.NoError(t, err)
			assert.Equal(t, []int64{7}, ids(posts))
		}()
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()
	require.Equal(t, int64(1), loads.Load())
}

func TestPosts_HotKeyServedLocally(t *testing.T) {
	f := newFixture(t, Options{TTL: time.Minute}, hotkey.WithWindow(10, 2))
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := f.cache.Posts(ctx, target, f.load)
		require.NoError(t, err)
	}
	f.mr.FlushAll()

	posts, err := f.cache.Posts(ctx, target, f.load)
	require.NoError(t, err)
	require.Equal(t, []int64{1}, ids(posts))
	require.Equal(t, int64(1), f.loads.Load())

	require.NoError(t, f.cache.Invalidate(ctx, target))
	_, err = f.cache.Posts(ctx, target, f.load)
	require.NoError(t, err)
	require.Equal(t, int64(2), f.loads.Load())
}
