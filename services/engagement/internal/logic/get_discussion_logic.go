package logic

import (
	"GoEngage/common/model/database"
	"GoEngage/common/util"
	"GoEngage/services/engagement/internal/metrics"
	"GoEngage/services/engagement/internal/svc"
	"GoEngage/services/engagement/internal/tree"
	"GoEngage/services/engagement/internal/types"
	"context"

	"github.com/samber/lo"
)

type GetDiscussionLogic struct {
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewGetDiscussionLogic(ctx context.Context, svcCtx *svc.ServiceContext) *GetDiscussionLogic {
	return &GetDiscussionLogic{
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// GetDiscussion 返回问答帖及回复树，同时记一次浏览，计数失败不影响读取
func (l *GetDiscussionLogic) GetDiscussion(req *types.IdReq) (*types.GetDiscussionResp, error) {
	logger := util.SetTrace(l.ctx, l.svcCtx.Logger)
	userId := util.UserIdFrom(l.ctx)
	logger.Info("user get discussion", "userId", userId, "threadId", req.Id)

	thread, err := l.svcCtx.Store.GetThread(l.ctx, req.Id)
	if err != nil {
		logger.Info("get thread", "err", err.Error())
		return nil, err
	}
	views, err := l.svcCtx.Store.IncrementViews(l.ctx, req.Id)
	if err != nil {
		logger.Warn("record view", "threadId", req.Id, "err", err.Error())
	} else {
		metrics.Views.Inc()
		thread.ViewsCount = views
	}

	replies, err := l.svcCtx.Store.ListDiscussionReplies(l.ctx, req.Id)
	if err != nil {
		logger.Error("list replies", "err", err.Error())
		return nil, err
	}
	liked := map[int64]bool{}
	if userId != 0 && len(replies) > 0 {
		ids := lo.Map(replies, func(r database.DiscussionReply, _ int) int64 { return r.Id })
		liked, err = l.svcCtx.Store.ListLikedIds(l.ctx, database.BusinessDiscussionReply, ids, userId)
		if err != nil {
			logger.Error("list liked replies", "err", err.Error())
			return nil, err
		}
	}

	return &types.GetDiscussionResp{
		Discussion: discussionResp(thread),
		Replies: toNodes(tree.Assemble(replies), func(r database.DiscussionReply) *types.CommentNode {
			return replyNode(r, liked)
		}),
	}, nil
}
