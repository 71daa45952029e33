package logic

import (
	"GoEngage/common/model/database"
	"GoEngage/common/util"
	"GoEngage/services/engagement/internal/svc"
	"GoEngage/services/engagement/internal/types"
	"context"
)

type LikeLogic struct {
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewLikeLogic(ctx context.Context, svcCtx *svc.ServiceContext) *LikeLogic {
	return &LikeLogic{
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// Like 已点赞时直接返回当前状态
func (l *LikeLogic) Like(business int, req *types.IdReq) (*types.LikeResp, error) {
	return setLike(l.ctx, l.svcCtx, business, req.Id, database.Liked)
}

func setLike(ctx context.Context, svcCtx *svc.ServiceContext, business int, targetId int64, state database.LikeState) (*types.LikeResp, error) {
	userId, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	logger := util.SetTrace(ctx, svcCtx.Logger)
	logger.Info("user set like", "business", business, "userId", userId, "likeId", targetId, "liked", bool(state))

	res, err := svcCtx.Store.SetLike(ctx, business, userId, targetId, state)
	if err != nil {
		logger.Info("set like", "err", err.Error())
		return nil, err
	}
	afterLike(ctx, svcCtx, logger, business, userId, targetId, res)
	return &types.LikeResp{TargetId: targetId, Liked: res.Liked, LikesCount: res.LikesCount}, nil
}
