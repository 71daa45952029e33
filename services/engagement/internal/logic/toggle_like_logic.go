package logic

import (
	"GoEngage/common/model/database"
	"GoEngage/common/model/mq"
	"GoEngage/common/util"
	"GoEngage/services/engagement/internal/metrics"
	"GoEngage/services/engagement/internal/store"
	"GoEngage/services/engagement/internal/svc"
	"GoEngage/services/engagement/internal/types"
	"context"
	"log/slog"
	"strconv"
	"time"
)

type ToggleLikeLogic struct {
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewToggleLikeLogic(ctx context.Context, svcCtx *svc.ServiceContext) *ToggleLikeLogic {
	return &ToggleLikeLogic{
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// ToggleLike business为评论或问答回复
func (l *ToggleLikeLogic) ToggleLike(business int, req *types.IdReq) (*types.LikeResp, error) {
	userId, err := requireUser(l.ctx)
	if err != nil {
		return nil, err
	}
	logger := util.SetTrace(l.ctx, l.svcCtx.Logger)
	logger.Info("user toggle like", "business", business, "userId", userId, "likeId", req.Id)

	res, err := l.svcCtx.Store.ToggleLike(l.ctx, business, userId, req.Id)
	if err != nil {
		logger.Info("toggle like", "err", err.Error())
		return nil, err
	}
	afterLike(l.ctx, l.svcCtx, logger, business, userId, req.Id, res)
	return &types.LikeResp{TargetId: req.Id, Liked: res.Liked, LikesCount: res.LikesCount}, nil
}

// afterLike 状态未变化时不失效缓存也不发送事件
func afterLike(ctx context.Context, svcCtx *svc.ServiceContext, logger *slog.Logger,
	business int, userId int64, targetId int64, res *store.LikeResult) {
	metrics.LikeChanges.WithLabelValues(strconv.Itoa(business), metrics.LikeResult(res.Liked, res.Changed)).Inc()
	if !res.Changed {
		logger.Info("like state unchanged", "liked", res.Liked)
		return
	}
	ctx, cancel := afterCommit(ctx)
	defer cancel()
	if business == database.BusinessComment {
		invalidate(ctx, svcCtx, logger, res.Owner.Target)
	}
	publish(ctx, svcCtx, logger, mq.LikeKafkaJson{
		TimeStamp:  time.Now().Unix(),
		Business:   business,
		UserId:     userId,
		LikeId:     targetId,
		Liked:      res.Liked,
		LikesCount: res.LikesCount,
	})
}
