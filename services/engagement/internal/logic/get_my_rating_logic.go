package logic

import (
	"GoEngage/common/model/database"
	"GoEngage/common/util"
	"GoEngage/services/engagement/internal/svc"
	"GoEngage/services/engagement/internal/types"
	"context"
)

type GetMyRatingLogic struct {
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewGetMyRatingLogic(ctx context.Context, svcCtx *svc.ServiceContext) *GetMyRatingLogic {
	return &GetMyRatingLogic{
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *GetMyRatingLogic) GetMyRating(req *types.TargetReq) (*types.RatingResp, error) {
	userId, err := requireUser(l.ctx)
	if err != nil {
		return nil, err
	}
	logger := util.SetTrace(l.ctx, l.svcCtx.Logger)
	target := database.Target{ContentType: req.ContentType, ContentId: req.ContentId}
	if err = target.Validate(); err != nil {
		return nil, err
	}
	logger.Info("user get rating", "userId", userId, "target", target.String())

	r, err := l.svcCtx.Store.GetRating(l.ctx, userId, target)
	if err != nil {
		return nil, err
	}
	resp := ratingResp(r)
	return &resp, nil
}
