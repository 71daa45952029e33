package logic

import (
	"GoEngage/common/model/database"
	"GoEngage/services/engagement/internal/svc"
	"GoEngage/services/engagement/internal/types"
	"context"
)

type CancelLikeLogic struct {
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewCancelLikeLogic(ctx context.Context, svcCtx *svc.ServiceContext) *CancelLikeLogic {
	return &CancelLikeLogic{
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// CancelLike 未点赞时直接返回当前状态
func (l *CancelLikeLogic) CancelLike(business int, req *types.IdReq) (*types.LikeResp, error) {
	return setLike(l.ctx, l.svcCtx, business, req.Id, database.NotLiked)
}
