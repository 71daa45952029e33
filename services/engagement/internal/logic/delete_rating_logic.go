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

type DeleteRatingLogic struct {
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewDeleteRatingLogic(ctx context.Context, svcCtx *svc.ServiceContext) *DeleteRatingLogic {
	return &DeleteRatingLogic{
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *DeleteRatingLogic) DeleteRating(req *types.TargetReq) error {
	userId, err := requireUser(l.ctx)
	if err != nil {
		return err
	}
	logger := util.SetTrace(l.ctx, l.svcCtx.Logger)
	target := database.Target{ContentType: req.ContentType, ContentId: req.ContentId}
	if err = target.Validate(); err != nil {
		return err
	}
	logger.Info("user delete rating", "userId", userId, "target", target.String())

	if err = l.svcCtx.Store.DeleteRating(l.ctx, userId, target); err != nil {
		logger.Info("delete rating", "err", err.Error())
		return err
	}

	ctx, cancel := afterCommit(l.ctx)
	defer cancel()
	publish(ctx, l.svcCtx, logger, mq.RatingKafkaJson{
		UserId:      userId,
		ContentType: target.ContentType,
		ContentId:   target.ContentId,
		Deleted:     true,
		TimeStamp:   time.Now().Unix(),
	})
	return nil
}
