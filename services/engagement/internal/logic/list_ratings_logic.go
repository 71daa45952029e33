package logic

import (
	"GoEngage/common/model/database"
	"GoEngage/common/util"
	"GoEngage/services/engagement/internal/svc"
	"GoEngage/services/engagement/internal/types"
	"context"
)

type ListRatingsLogic struct {
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewListRatingsLogic(ctx context.Context, svcCtx *svc.ServiceContext) *ListRatingsLogic {
	return &ListRatingsLogic{
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// ListRatings 最近更新的在前
func (l *ListRatingsLogic) ListRatings(req *types.ListRatingsReq) (*types.ListRatingsResp, error) {
	logger := util.SetTrace(l.ctx, l.svcCtx.Logger)
	target := database.Target{ContentType: req.ContentType, ContentId: req.ContentId}
	if err := target.Validate(); err != nil {
		return nil, err
	}
	logger.Info("list ratings", "target", target.String(), "limit", req.Limit, "offset", req.Offset)

	ratings, err := l.svcCtx.Store.ListRatings(l.ctx, target)
	if err != nil {
		logger.Error("list ratings", "err", err.Error())
		return nil, err
	}
	start := min(max(req.Offset, 0), len(ratings))
	end := min(start+pageSize(req.Limit), len(ratings))
	resp := &types.ListRatingsResp{
		Total:   len(ratings),
		Ratings: make([]types.RatingResp, 0, end-start),
	}
	for i := start; i < end; i++ {
		resp.Ratings = append(resp.Ratings, ratingResp(&ratings[i]))
	}
	return resp, nil
}
