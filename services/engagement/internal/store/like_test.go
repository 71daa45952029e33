package store_test

import (
	"GoEngage/common/errorx"
	"GoEngage/common/model/database"
	"GoEngage/services/engagement/internal/store/storetest"
	"context"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleLike_TwiceRestoresState(t *testing.T) {
	s := storetest.New(t)
	ctx := context.Background()
	post := storetest.SeedPost(t, s, 1, 0, storetest.At(1))

	first, err := s.ToggleLike(ctx, database.BusinessComment, 9, post.Id)
	require.NoError(t, err)
	require.True(t, first.Liked)
	require.True(t, first.Changed)
	require.Equal(t, int64(1), first.LikesCount)
	require.Equal(t, storetest.Tutorial, first.Owner.Target)

	second, err := s.ToggleLike(ctx, database.BusinessComment, 9, post.Id)
	require.NoError(t, err)
	require.False(t, second.Liked)
	require.Equal(t, int64(0), second.LikesCount)
}

func TestSetLike_Idempotent(t *testing.T) {
	s := storetest.New(t)
	ctx := context.Background()
	post := storetest.SeedPost(t, s, 1, 0, storetest.At(1))

	for i := 0; i < 3; i++ {
		res, err := s.SetLike(ctx, database.BusinessComment, 4, post.Id, database.Liked)
		require.NoError(t, err)
		require.True(t, res.Liked)
		require.Equal(t, i == 0, res.Changed)
		require.Equal(t, int64(1), res.LikesCount)
	}
	for i := 0; i < 2; i++ {
		res, err := s.SetLike(ctx, database.BusinessComment, 4, post.Id, database.NotLiked)
		require.NoError(t, err)
		require.False(t, res.Liked)
		require.Equal(t, int64(0), res.LikesCount)
	}
}

func TestToggleLike_Errors(t *testing.T) {
	s := storetest.New(t)
	ctx := context.Background()

	_, err := s.ToggleLike(ctx, database.BusinessComment, 0, 1)
	require.ErrorIs(t, err, errorx.ErrUnauthorized)

	_, err = s.ToggleLike(ctx, database.BusinessComment, 1, 123456)
	require.True(t, errorx.Is(err, errorx.NotFound))

	_, err = s.ToggleLike(ctx, 99, 1, 1)
	require.True(t, errorx.Is(err, errorx.Validation))
}

func TestToggleLike_RandomSequenceKeepsCountConsistent(t *testing.T) {
	s := storetest.New(t)
	ctx := context.Background()
	post := storetest.SeedPost(t, s, 1, 0, storetest.At(1))
	rnd := rand.New(rand.NewSource(42))

	state := make(map[int64]bool)
	for i := 0; i < 200; i++ {
		user := int64(rnd.Intn(10) + 1)
		res, err := s.ToggleLike(ctx, database.BusinessComment, user, post.Id)
		require.NoError(t, err)
		state[user] = !state[user]
		require.Equal(t, state[user], res.Liked)

		expect := int64(0)
		for _, liked := range state {
			if liked {
				expect++
			}
		}
		require.Equal(t, expect, res.LikesCount)
	}
	n, err := s.CountLikeEdges(ctx, database.BusinessComment, post.Id)
	require.NoError(t, err)
	got, err := s.GetPost(ctx, post.Id)
	require.NoError(t, err)
	require.Equal(t, n, got.LikesCount)
}

func TestToggleLike_ConcurrentUsers(t *testing.T) {
	s := storetest.New(t)
	ctx := context.Background()
	post := storetest.SeedPost(t, s, 1, 0, storetest.At(1))

	var wg sync.WaitGroup
	for u := int64(1); u <= 20; u++ {
		wg.Add(1)
		go func(user int64) {
			defer wg.Done()
			// 偶数用户点赞后取消，奇数用户只点赞
			_, err := s.ToggleLike(ctx, database.BusinessComment, user, post.Id)
			assert.NoError(t, err)
			if user%2 == 0 {
				_, err = s.ToggleLike(ctx, database.BusinessComment, user, post.Id)
				assert.NoError(t, err)
			}
		}(u)
	}
	wg.Wait()

	got, err := s.GetPost(ctx, post.Id)
	require.NoError(t, err)
	require.Equal(t, int64(10), got.LikesCount)
	n, err := s.CountLikeEdges(ctx, database.BusinessComment, post.Id)
	require.NoError(t, err)
	require.Equal(t, int64(10), n)
}

func TestListLikedIds(t *testing.T) {
	s := storetest.New(t)
	ctx := context.Background()
	a := storetest.SeedPost(t, s, 1, 0, storetest.At(1))
	b := storetest.SeedPost(t, s, 1, 0, storetest.At(2))
	c := storetest.SeedPost(t, s, 1, a.Id, storetest.At(3))

	for _, id := range []int64{a.Id, c.Id} {
		_, err := s.SetLike(ctx, database.BusinessComment, 5, id, database.Liked)
		require.NoError(t, err)
	}
	_, err := s.SetLike(ctx, database.BusinessComment, 6, b.Id, database.Liked)
	require.NoError(t, err)

	liked, err := s.ListLikedIds(ctx, database.BusinessComment, []int64{a.Id, b.Id, c.Id}, 5)
	require.NoError(t, err)
	require.Equal(t, map[int64]bool{a.Id: true, c.Id: true}, liked)

	liked, err = s.ListLikedIds(ctx, database.BusinessDiscussionReply, []int64{a.Id}, 5)
	require.NoError(t, err)
	require.Empty(t, liked)

	liked, err = s.ListLikedIds(ctx, database.BusinessComment, []int64{a.Id}, 0)
	require.NoError(t, err)
	require.Empty(t, liked)
}

func TestSetLike_ConcurrentSameUser(t *testing.T) {
	s := storetest.New(t)
	ctx := context.Background()
	post := storetest.SeedPost(t, s, 1, 0, storetest.At(1))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := s.SetLike(ctx, database.BusinessComment, 7, post.Id, database.Liked)
			assert.NoError(t, err)
			if err == nil {
				assert.True(t, res.Liked)
				assert.Equal(t, int64(1), res.LikesCount)
			}
		}()
	}
	wg.Wait()

	got, err := s.GetPost(ctx, post.Id)
	require.NoError(t, err)
	require.Equal(t, int64(1), got.LikesCount)
	n, err := s.CountLikeEdges(ctx, database.BusinessComment, post.Id)
	require.NoError(t, err)
	require.Equal(t, int64(1), n)
}

func TestToggleLike_ConcurrentSameUser(t *testing.T) {
	s := storetest.New(t)
	ctx := context.Background()
	post := storetest.SeedPost(t, s, 1, 0, storetest.At(1))

	// 偶数次切换后回到未点赞
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.ToggleLike(ctx, database.BusinessComment, 7, post.Id)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := s.GetPost(ctx, post.Id)
	require.NoError(t, err)
	require.Zero(t, got.LikesCount)
	n, err := s.CountLikeEdges(ctx, database.BusinessComment, post.Id)
	require.NoError(t, err)
	require.Zero(t, n)
}
