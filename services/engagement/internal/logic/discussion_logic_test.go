package logic

import (
	"GoEngage/common/errorx"
	"GoEngage/common/model/database"
	"GoEngage/common/model/mq"
	"GoEngage/services/engagement/internal/svc"
	"GoEngage/services/engagement/internal/types"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createDiscussion(t *testing.T, svcCtx *svc.ServiceContext, userId int64, tags ...string) *types.DiscussionResp {
	t.Helper()
	resp, err := NewCreateDiscussionLogic(as(userId), svcCtx).CreateDiscussion(&types.CreateDiscussionReq{
		ContentType: database.ContentModule,
		ContentId:   "concurrency",
		Title:       "  Why does my select block?  ",
		Description: "select with no default never returns",
		Tags:        tags,
	})
	require.NoError(t, err)
	return resp
}

func reply(t *testing.T, svcCtx *svc.ServiceContext, userId, threadId, parentId int64) *types.DiscussionReplyResp {
	t.Helper()
	resp, err := NewDiscussionReplyLogic(as(userId), svcCtx).DiscussionReply(&types.DiscussionReplyReq{
		Id: threadId, ParentId: parentId, Body: "add a default case",
	})
	require.NoError(t, err)
	return resp
}

func TestCreateDiscussion(t *testing.T) {
	svcCtx, rec := newTestSvc(t)
	d := createDiscussion(t, svcCtx, 1, "Go", "select", "go")
	require.Equal(t, "Why does my select block?", d.Title)
	require.Equal(t, []string{"go", "select"}, d.Tags)
	require.Equal(t, mq.TypeDiscussion, rec.Last().Type())

	_, err := NewCreateDiscussionLogic(as(1), svcCtx).CreateDiscussion(&types.CreateDiscussionReq{
		ContentType: database.ContentModule, ContentId: "x", Title: "t", Description: "d", Tags: []string{"50%"},
	})
	require.True(t, errorx.Is(err, errorx.Validation))
	_, err = NewCreateDiscussionLogic(anonymous, svcCtx).CreateDiscussion(&types.CreateDiscussionReq{})
	require.ErrorIs(t, err, errorx.ErrUnauthorized)
}

func TestListDiscussions_FilterByTag(t *testing.T) {
	svcCtx, _ := newTestSvc(t)
	first := createDiscussion(t, svcCtx, 1, "go")
	createDiscussion(t, svcCtx, 1, "rust")
	third := createDiscussion(t, svcCtx, 2, "go", "select")

	resp, err := NewListDiscussionsLogic(anonymous, svcCtx).ListDiscussions(&types.ListDiscussionsReq{Tag: "GO"})
	require.NoError(t, err)
	require.Len(t, resp.Discussions, 2)
	ids := []int64{resp.Discussions[0].Id, resp.Discussions[1].Id}
	require.ElementsMatch(t, []int64{first.Id, third.Id}, ids)

	resp, err = NewListDiscussionsLogic(anonymous, svcCtx).ListDiscussions(&types.ListDiscussionsReq{
		ContentType: database.ContentModule, ContentId: "concurrency", Limit: 1,
	})
	require.NoError(t, err)
	require.Len(t, resp.Discussions, 1)

	_, err = NewListDiscussionsLogic(anonymous, svcCtx).ListDiscussions(&types.ListDiscussionsReq{ContentId: "only-id"})
	require.True(t, errorx.Is(err, errorx.Validation))
}

func TestGetDiscussion_RecordsViewAndLoadsReplies(t *testing.T) {
	svcCtx, _ := newTestSvc(t)
	d := createDiscussion(t, svcCtx, 1)
	root := reply(t, svcCtx, 2, d.Id, 0)
	nested := reply(t, svcCtx, 3, d.Id, root.Reply.Id)
	require.Equal(t, int64(2), nested.RepliesCount)

	_, err := NewToggleLikeLogic(as(4), svcCtx).ToggleLike(database.BusinessDiscussionReply, &types.IdReq{Id: nested.Reply.Id})
	require.NoError(t, err)

	got, err := NewGetDiscussionLogic(anonymous, svcCtx).GetDiscussion(&types.IdReq{Id: d.Id})
	require.NoError(t, err)
	require.Equal(t, int64(1), got.Discussion.ViewsCount)
	require.Equal(t, int64(2), got.Discussion.RepliesCount)
	require.Len(t, got.Replies, 1)
	require.Len(t, got.Replies[0].Replies, 1)
	require.False(t, got.Replies[0].Replies[0].Liked)

	got, err = NewGetDiscussionLogic(as(4), svcCtx).GetDiscussion(&types.IdReq{Id: d.Id})
	require.NoError(t, err)
	require.Equal(t, int64(2), got.Discussion.ViewsCount)
	require.True(t, got.Replies[0].Replies[0].Liked)
	require.Equal(t, int64(1), got.Replies[0].Replies[0].LikesCount)

	_, err = NewGetDiscussionLogic(anonymous, svcCtx).GetDiscussion(&types.IdReq{Id: 31337})
	require.True(t, errorx.Is(err, errorx.NotFound))
}

func TestRecordView_ConcurrentAnonymous(t *testing.T) {
	svcCtx, _ := newTestSvc(t)
	d := createDiscussion(t, svcCtx, 1)

	var wg sync.WaitGroup
	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := NewRecordViewLogic(anonymous, svcCtx).RecordView(&types.IdReq{Id: d.Id})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	resp, err := NewRecordViewLogic(anonymous, svcCtx).RecordView(&types.IdReq{Id: d.Id})
	require.NoError(t, err)
	require.Equal(t, int64(31), resp.ViewsCount)

}

func TestRecordView_MissingThreadIsSilent(t *testing.T) {
	svcCtx, _ := newTestSvc(t)
	resp, err := NewRecordViewLogic(anonymous, svcCtx).RecordView(&types.IdReq{Id: 424242})
	require.NoError(t, err)
	require.Equal(t, int64(424242), resp.Id)
	require.Zero(t, resp.ViewsCount)
}

func TestDelDiscussionReply_DecrementsCount(t *testing.T) {
	svcCtx, rec := newTestSvc(t)
	d := createDiscussion(t, svcCtx, 1)
	r := reply(t, svcCtx, 2, d.Id, 0)
	reply(t, svcCtx, 3, d.Id, 0)

	_, err := NewDelDiscussionReplyLogic(as(3), svcCtx).DelDiscussionReply(&types.IdReq{Id: r.Reply.Id})
	require.True(t, errorx.Is(err, errorx.Forbidden))

	resp, err := NewDelDiscussionReplyLogic(as(2), svcCtx).DelDiscussionReply(&types.IdReq{Id: r.Reply.Id})
	require.NoError(t, err)
	require.Equal(t, int64(1), resp.RepliesCount)
	require.Equal(t, d.Id, resp.ThreadId)
	require.Equal(t, mq.TypeDelReply, rec.Last().Type())
}

func TestMarkSolvedAndHelpful(t *testing.T) {
	svcCtx, rec := newTestSvc(t)
	d := createDiscussion(t, svcCtx, 1)
	r := reply(t, svcCtx, 2, d.Id, 0)

	_, err := NewMarkSolvedLogic(as(2), svcCtx).MarkSolved(&types.MarkSolvedReq{Id: d.Id, Solved: true})
	require.True(t, errorx.Is(err, errorx.Forbidden))
	_, err = NewMarkHelpfulLogic(as(2), svcCtx).MarkHelpful(&types.MarkHelpfulReq{Id: r.Reply.Id, Helpful: true})
	require.True(t, errorx.Is(err, errorx.Forbidden))

	solved, err := NewMarkSolvedLogic(as(1), svcCtx).MarkSolved(&types.MarkSolvedReq{Id: d.Id, Solved: true})
	require.NoError(t, err)
	require.True(t, solved.IsSolved)
	require.Equal(t, mq.TypeThreadSolved, rec.Last().Type())

	helpful, err := NewMarkHelpfulLogic(as(1), svcCtx).MarkHelpful(&types.MarkHelpfulReq{Id: r.Reply.Id, Helpful: true})
	require.NoError(t, err)
	require.True(t, helpful.IsHelpful)
	require.Equal(t, mq.TypeReplyHelpful, rec.Last().Type())

	got, err := NewGetDiscussionLogic(anonymous, svcCtx).GetDiscussion(&types.IdReq{Id: d.Id})
	require.NoError(t, err)
	require.True(t, got.Discussion.IsSolved)
	require.True(t, got.Replies[0].IsHelpful)
}
