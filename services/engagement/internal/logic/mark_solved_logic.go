package logic

import (
	"GoEngage/common/model/mq"
	"GoEngage/common/util"
	"GoEngage/services/engagement/internal/svc"
	"GoEngage/services/engagement/internal/types"
	"context"
	"time"
)

type MarkSolvedLogic struct {
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewMarkSolvedLogic(ctx context.Context, svcCtx *svc.ServiceContext) *MarkSolvedLogic {
	return &MarkSolvedLogic{
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// MarkSolved 只有提问者可以标记
func (l *MarkSolvedLogic) MarkSolved(req *types.MarkSolvedReq) (*types.DiscussionResp, error) {
	userId, err := requireUser(l.ctx)
	if err != nil {
		return nil, err
	}
	logger := util.SetTrace(l.ctx, l.svcCtx.Logger)
	logger.Info("user mark solved", "userId", userId, "threadId", req.Id, "solved", req.Solved)

	thread, err := l.svcCtx.Store.MarkSolved(l.ctx, req.Id, userId, req.Solved)
	if err != nil {
		logger.Info("mark solved", "err", err.Error())
		return nil, err
	}

	ctx, cancel := afterCommit(l.ctx)
	defer cancel()
	publish(ctx, l.svcCtx, logger, mq.FlagKafkaJson{
		FlagType:  mq.TypeThreadSolved,
		ThreadId:  thread.Id,
		UserId:    userId,
		Value:     req.Solved,
		TimeStamp: time.Now().Unix(),
	})
	resp := discussionResp(thread)
	return &resp, nil
}
