package logic

import (
	"GoEngage/common/model/database"
	"GoEngage/common/model/mq"
	"GoEngage/common/util"
	"GoEngage/services/engagement/internal/svc"
	"GoEngage/services/engagement/internal/types"
	"context"
	"time"
)

type DelCommentLogic struct {
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewDelCommentLogic(ctx context.Context, svcCtx *svc.ServiceContext) *DelCommentLogic {
	return &DelCommentLogic{
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// DelComment 回复保留，之后作为孤儿显示在根列表
func (l *DelCommentLogic) DelComment(req *types.IdReq) error {
	userId, err := requireUser(l.ctx)
	if err != nil {
		return err
	}
	logger := util.SetTrace(l.ctx, l.svcCtx.Logger)
	logger.Info("user delete comment", "userId", userId, "commentId", req.Id)

	post, err := l.svcCtx.Store.DeletePost(l.ctx, req.Id, userId)
	if err != nil {
		logger.Info("delete post", "err", err.Error())
		return err
	}

	ctx, cancel := afterCommit(l.ctx)
	defer cancel()
	invalidate(ctx, l.svcCtx, logger, database.Target{ContentType: post.ContentType, ContentId: post.ContentId})
	publish(ctx, l.svcCtx, logger, mq.DelCommentKafkaJson{
		UserId:      userId,
		CommentId:   post.Id,
		ContentType: post.ContentType,
		ContentId:   post.ContentId,
		TimeStamp:   time.Now().Unix(),
	})
	return nil
}
