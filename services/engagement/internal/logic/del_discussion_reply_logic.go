package logic

import (
	"GoEngage/common/model/mq"
	"GoEngage/common/util"
	"GoEngage/services/engagement/internal/svc"
	"GoEngage/services/engagement/internal/types"
	"context"
	"time"
)

type DelDiscussionReplyLogic struct {
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewDelDiscussionReplyLogic(ctx context.Context, svcCtx *svc.ServiceContext) *DelDiscussionReplyLogic {
	return &DelDiscussionReplyLogic{
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *DelDiscussionReplyLogic) DelDiscussionReply(req *types.IdReq) (*types.DelDiscussionReplyResp, error) {
	userId, err := requireUser(l.ctx)
	if err != nil {
		return nil, err
	}
	logger := util.SetTrace(l.ctx, l.svcCtx.Logger)
	logger.Info("user delete reply", "userId", userId, "replyId", req.Id)

	reply, count, err := l.svcCtx.Store.DeleteDiscussionReply(l.ctx, req.Id, userId)
	if err != nil {
		logger.Info("delete reply", "err", err.Error())
		return nil, err
	}

	ctx, cancel := afterCommit(l.ctx)
	defer cancel()
	publish(ctx, l.svcCtx, logger, mq.ReplyKafkaJson{
		Id:           reply.Id,
		ThreadId:     reply.ThreadId,
		UserId:       userId,
		ParentId:     reply.ParentId,
		RepliesCount: count,
		Deleted:      true,
		TimeStamp:    time.Now().Unix(),
	})
	return &types.DelDiscussionReplyResp{ThreadId: reply.ThreadId, RepliesCount: count}, nil
}
