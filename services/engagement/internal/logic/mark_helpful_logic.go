package logic

import (
	"GoEngage/common/model/mq"
	"GoEngage/common/util"
	"GoEngage/services/engagement/internal/svc"
	"GoEngage/services/engagement/internal/types"
	"context"
	"time"
)

type MarkHelpfulLogic struct {
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewMarkHelpfulLogic(ctx context.Context, svcCtx *svc.ServiceContext) *MarkHelpfulLogic {
	return &MarkHelpfulLogic{
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// MarkHelpful 只有提问者可以标记回复
func (l *MarkHelpfulLogic) MarkHelpful(req *types.MarkHelpfulReq) (*types.CommentNode, error) {
	userId, err := requireUser(l.ctx)
	if err != nil {
		return nil, err
	}
	logger := util.SetTrace(l.ctx, l.svcCtx.Logger)
	logger.Info("user mark helpful", "userId", userId, "replyId", req.Id, "helpful", req.Helpful)

	reply, err := l.svcCtx.Store.MarkHelpful(l.ctx, req.Id, userId, req.Helpful)
	if err != nil {
		logger.Info("mark helpful", "err", err.Error())
		return nil, err
	}

	ctx, cancel := afterCommit(l.ctx)
	defer cancel()
	publish(ctx, l.svcCtx, logger, mq.FlagKafkaJson{
		FlagType:  mq.TypeReplyHelpful,
		ThreadId:  reply.ThreadId,
		ReplyId:   reply.Id,
		UserId:    userId,
		Value:     req.Helpful,
		TimeStamp: time.Now().Unix(),
	})
	return replyNode(*reply, nil), nil
}
