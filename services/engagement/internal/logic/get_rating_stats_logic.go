package logic

import (
	"GoEngage/common/model/database"
	"GoEngage/common/util"
	"GoEngage/services/engagement/internal/rating"
	"GoEngage/services/engagement/internal/svc"
	"GoEngage/services/engagement/internal/types"
	"context"
)

type GetRatingStatsLogic struct {
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewGetRatingStatsLogic(ctx context.Context, svcCtx *svc.ServiceContext) *GetRatingStatsLogic {
	return &GetRatingStatsLogic{
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *GetRatingStatsLogic) GetRatingStats(req *types.TargetReq) (*types.RatingStatsResp, error) {
	logger := util.SetTrace(l.ctx, l.svcCtx.Logger)
	target := database.Target{ContentType: req.ContentType, ContentId: req.ContentId}
	if err := target.Validate(); err != nil {
		return nil, err
	}
	logger.Info("get rating stats", "target", target.String())

	ratings, err := l.svcCtx.Store.ListRatings(l.ctx, target)
	if err != nil {
		logger.Error("list ratings", "err", err.Error())
		return nil, err
	}
	stats := rating.ComputeStats(ratings)
	return &types.RatingStatsResp{
		ContentType:  target.ContentType,
		ContentId:    target.ContentId,
		Average:      stats.Average,
		Count:        stats.Count,
		Distribution: stats.Distribution[:],
	}, nil
}
