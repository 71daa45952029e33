package logic

import (
	"GoEngage/common/errorx"
	"GoEngage/common/util"
	"GoEngage/services/engagement/internal/metrics"
	"GoEngage/services/engagement/internal/svc"
	"GoEngage/services/engagement/internal/types"
	"context"
)

type RecordViewLogic struct {
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewRecordViewLogic(ctx context.Context, svcCtx *svc.ServiceContext) *RecordViewLogic {
	return &RecordViewLogic{
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// RecordView 匿名用户同样计数，问答帖不存在时只记日志
func (l *RecordViewLogic) RecordView(req *types.IdReq) (*types.ViewResp, error) {
	logger := util.SetTrace(l.ctx, l.svcCtx.Logger)
	logger.Debug("record view", "threadId", req.Id)

	views, err := l.svcCtx.Store.IncrementViews(l.ctx, req.Id)
	if errorx.Is(err, errorx.NotFound) {
		logger.Warn("record view on missing thread", "threadId", req.Id)
		return &types.ViewResp{Id: req.Id}, nil
	} else if err != nil {
		logger.Error("increment views", "err", err.Error())
		return nil, err
	}
	metrics.Views.Inc()
	return &types.ViewResp{Id: req.Id, ViewsCount: views}, nil
}
