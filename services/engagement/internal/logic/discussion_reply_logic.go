package logic

import (
	"GoEngage/common/errorx"
	"GoEngage/common/model/database"
	"GoEngage/common/model/mq"
	"GoEngage/common/util"
	"GoEngage/services/engagement/internal/svc"
	"GoEngage/services/engagement/internal/types"
	"context"
)

type DiscussionReplyLogic struct {
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewDiscussionReplyLogic(ctx context.Context, svcCtx *svc.ServiceContext) *DiscussionReplyLogic {
	return &DiscussionReplyLogic{
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// DiscussionReply 回复数与回复在同一事务内写入
func (l *DiscussionReplyLogic) DiscussionReply(req *types.DiscussionReplyReq) (*types.DiscussionReplyResp, error) {
	userId, err := requireUser(l.ctx)
	if err != nil {
		return nil, err
	}
	logger := util.SetTrace(l.ctx, l.svcCtx.Logger)
	if req.ParentId < 0 {
		return nil, errorx.NewValidation("invalid parent id %d", req.ParentId)
	}
	body, err := normalizeText(req.Body, "body", MaxBodyLen)
	if err != nil {
		return nil, err
	}
	logger.Info("user reply discussion", "userId", userId, "threadId", req.Id, "parentId", req.ParentId)

	id, err := newId(l.svcCtx)
	if err != nil {
		logger.Error("get unique id failed", "err", err.Error())
		return nil, err
	}
	reply := &database.DiscussionReply{
		Id:       id,
		ThreadId: req.Id,
		AuthorId: userId,
		ParentId: req.ParentId,
		Body:     body,
	}
	count, err := l.svcCtx.Store.InsertDiscussionReply(l.ctx, reply)
	if err != nil {
		logger.Info("insert reply", "err", err.Error())
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
		TimeStamp:    reply.CreatedAt.Unix(),
	})
	return &types.DiscussionReplyResp{Reply: replyNode(*reply, nil), RepliesCount: count}, nil
}
