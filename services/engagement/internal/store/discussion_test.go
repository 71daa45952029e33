package store_test

import (
	"GoEngage/common/errorx"
	"GoEngage/common/model/database"
	"GoEngage/services/engagement/internal/store"
	"GoEngage/services/engagement/internal/store/storetest"
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReply(threadId, authorId, parentId int64) *database.DiscussionReply {
	return &database.DiscussionReply{
		Id:       storetest.NextId(),
		ThreadId: threadId,
		AuthorId: authorId,
		ParentId: parentId,
		Body:     "close from the sender side",
	}
}

func TestIncrementViews_Concurrent(t *testing.T) {
	s := storetest.New(t)
	ctx := context.Background()
	thread := storetest.SeedThread(t, s, 1)

	var wg sync.WaitGroup
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.IncrementViews(ctx, thread.Id)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := s.GetThread(ctx, thread.Id)
	require.NoError(t, err)
	require.Equal(t, int64(25), got.ViewsCount)

	views, err := s.IncrementViews(ctx, thread.Id)
	require.NoError(t, err)
	require.Equal(t, int64(26), views)

	_, err = s.IncrementViews(ctx, 987654)
	require.True(t, errorx.Is(err, errorx.NotFound))
}

func TestIncrementCounter_Whitelist(t *testing.T) {
	s := storetest.New(t)
	ctx := context.Background()
	thread := storetest.SeedThread(t, s, 1)

	_, err := s.IncrementCounter(ctx, store.TableDiscussionThreads, thread.Id, "author_id", 1)
	require.True(t, errorx.Is(err, errorx.Validation))
	_, err = s.IncrementCounter(ctx, "users", thread.Id, store.FieldViewsCount, 1)
	require.True(t, errorx.Is(err, errorx.Validation))

	_, err = s.IncrementCounter(ctx, store.TableDiscussionThreads, thread.Id, store.FieldRepliesCount, -1)
	require.True(t, errorx.Is(err, errorx.Conflict))
}

func TestDiscussionReplies_CountTracksRows(t *testing.T) {
	s := storetest.New(t)
	ctx := context.Background()
	thread := storetest.SeedThread(t, s, 1)

	first := newReply(thread.Id, 2, 0)
	count, err := s.InsertDiscussionReply(ctx, first)
	require.NoError(t, err)
	require.Equal(t, int64(1), count)

	count, err = s.InsertDiscussionReply(ctx, newReply(thread.Id, 3, first.Id))
	require.NoError(t, err)
	require.Equal(t, int64(2), count)

	_, _, err = s.DeleteDiscussionReply(ctx, first.Id, 3)
	require.True(t, errorx.Is(err, errorx.Forbidden))

	_, err = s.ToggleLike(ctx, database.BusinessDiscussionReply, 9, first.Id)
	require.NoError(t, err)
	deleted, count, err := s.DeleteDiscussionReply(ctx, first.Id, 2)
	require.NoError(t, err)
	require.Equal(t, first.Id, deleted.Id)
	require.Equal(t, int64(1), count)

	n, err := s.CountLikeEdges(ctx, database.BusinessDiscussionReply, first.Id)
	require.NoError(t, err)
	require.Zero(t, n)

	replies, err := s.ListDiscussionReplies(ctx, thread.Id)
	require.NoError(t, err)
	got, err := s.GetThread(ctx, thread.Id)
	require.NoError(t, err)
	require.Equal(t, int64(len(replies)), got.RepliesCount)
}

func TestInsertDiscussionReply_Rules(t *testing.T) {
	s := storetest.New(t)
	ctx := context.Background()
	thread := storetest.SeedThread(t, s, 1)
	other := storetest.SeedThread(t, s, 1)

	root := newReply(thread.Id, 2, 0)
	_, err := s.InsertDiscussionReply(ctx, root)
	require.NoError(t, err)
	nested := newReply(thread.Id, 2, root.Id)
	_, err = s.InsertDiscussionReply(ctx, nested)
	require.NoError(t, err)

	_, err = s.InsertDiscussionReply(ctx, newReply(thread.Id, 2, nested.Id))
	require.True(t, errorx.Is(err, errorx.Validation))
	_, err = s.InsertDiscussionReply(ctx, newReply(other.Id, 2, root.Id))
	require.True(t, errorx.Is(err, errorx.Validation))
	_, err = s.InsertDiscussionReply(ctx, newReply(555555, 2, 0))
	require.True(t, errorx.Is(err, errorx.NotFound))

	got, err := s.GetThread(ctx, other.Id)
	require.NoError(t, err)
	require.Zero(t, got.RepliesCount)
}

func TestMarkSolvedAndHelpful_ThreadAuthorOnly(t *testing.T) {
	s := storetest.New(t)
	ctx := context.Background()
	thread := storetest.SeedThread(t, s, 1)
	reply := newReply(thread.Id, 2, 0)
	_, err := s.InsertDiscussionReply(ctx, reply)
	require.NoError(t, err)

	_, err = s.MarkSolved(ctx, thread.Id, 2, true)
	require.True(t, errorx.Is(err, errorx.Forbidden))
	_, err = s.MarkHelpful(ctx, reply.Id, 2, true)
	require.True(t, errorx.Is(err, errorx.Forbidden))

	solved, err := s.MarkSolved(ctx, thread.Id, 1, true)
	require.NoError(t, err)
	require.True(t, solved.IsSolved)
	helpful, err := s.MarkHelpful(ctx, reply.Id, 1, true)
	require.NoError(t, err)
	require.True(t, helpful.IsHelpful)

	got, err := s.GetDiscussionReply(ctx, reply.Id)
	require.NoError(t, err)
	require.True(t, got.IsHelpful)
}

func TestListThreads_Filters(t *testing.T) {
	s := storetest.New(t)
	ctx := context.Background()
	a := storetest.SeedThread(t, s, 1, "go", "channels")
	b := storetest.SeedThread(t, s, 1, "go")
	c := storetest.SeedThread(t, s, 1, "gorm")
	course := &database.DiscussionThread{
		Id: storetest.NextId(), AuthorId: 1, ContentType: database.ContentCourse, ContentId: "c1",
		Title: "t", Description: "d", Tags: database.JoinTags([]string{"go"}),
	}
	require.NoError(t, s.CreateThread(ctx, course))

	ids := func(threads []database.DiscussionThread) []int64 {
		out := make([]int64, 0, len(threads))
		for _, th := range threads {
			out = append(out, th.Id)
		}
		return out
	}

	tagged, err := s.ListThreads(ctx, store.ThreadFilter{Tag: "go", Target: &storetest.Tutorial})
	require.NoError(t, err)
	require.ElementsMatch(t, []int64{a.Id, b.Id}, ids(tagged))

	all, err := s.ListThreads(ctx, store.ThreadFilter{})
	require.NoError(t, err)
	require.ElementsMatch(t, []int64{a.Id, b.Id, c.Id, course.Id}, ids(all))

	limited, err := s.ListThreads(ctx, store.ThreadFilter{Limit: 2})
	require.NoError(t, err)
	require.Len(t, limited, 2)
}

func TestInsertDiscussionReply_ToPromotedOrphan(t *testing.T) {
	s := storetest.New(t)
	ctx := context.Background()
	thread := storetest.SeedThread(t, s, 1)
	root := newReply(thread.Id, 2, 0)
	_, err := s.InsertDiscussionReply(ctx, root)
	require.NoError(t, err)
	orphan := newReply(thread.Id, 3, root.Id)
	_, err = s.InsertDiscussionReply(ctx, orphan)
	require.NoError(t, err)
	_, _, err = s.DeleteDiscussionReply(ctx, root.Id, 2)
	require.NoError(t, err)

	count, err := s.InsertDiscussionReply(ctx, newReply(thread.Id, 4, orphan.Id))
	require.NoError(t, err)
	require.Equal(t, int64(2), count)
}

func TestDiscussionReplies_ConcurrentInsertAndDelete(t *testing.T) {
	s := storetest.New(t)
	ctx := context.Background()
	thread := storetest.SeedThread(t, s, 1)

	roots := make([]*database.DiscussionReply, 10)
	for i := range roots {
		roots[i] = newReply(thread.Id, 2, 0)
		_, err := s.InsertDiscussionReply(ctx, roots[i])
		require.NoError(t, err)
	}

	var wg sync.WaitGroup
	for _, root := range roots {
		wg.Add(2)
		go func(root *database.DiscussionReply) {
			defer wg.Done()
			_, err := s.InsertDiscussionReply(ctx, newReply(thread.Id, 3, root.Id))
			// 父回复先被删除时只能是参数错误
			if err != nil {
				assert.True(t, errorx.Is(err, errorx.Validation), "got %v", err)
			}
		}(root)
		go func(root *database.DiscussionReply) {
			defer wg.Done()
			_, _, err := s.DeleteDiscussionReply(ctx, root.Id, 2)
			assert.NoError(t, err)
		}(root)
	}
	wg.Wait()

	_, _, err := s.DeleteDiscussionReply(ctx, roots[0].Id, 2)
	require.True(t, errorx.Is(err, errorx.NotFound))

	replies, err := s.ListDiscussionReplies(ctx, thread.Id)
	require.NoError(t, err)
	require.LessOrEqual(t, len(replies), 10)
	got, err := s.GetThread(ctx, thread.Id)
	require.NoError(t, err)
	require.Equal(t, int64(len(replies)), got.RepliesCount)
}
