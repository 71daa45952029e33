package logic

import (
	"GoEngage/common/errorx"
	"GoEngage/common/model/database"
	"GoEngage/common/util"
	"GoEngage/services/engagement/internal/store"
	"GoEngage/services/engagement/internal/svc"
	"GoEngage/services/engagement/internal/types"
	"context"
)

type ListDiscussionsLogic struct {
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewListDiscussionsLogic(ctx context.Context, svcCtx *svc.ServiceContext) *ListDiscussionsLogic {
	return &ListDiscussionsLogic{
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// ListDiscussions 最新的在前，可按目标和tag过滤
func (l *ListDiscussionsLogic) ListDiscussions(req *types.ListDiscussionsReq) (*types.ListDiscussionsResp, error) {
	logger := util.SetTrace(l.ctx, l.svcCtx.Logger)
	filter := store.ThreadFilter{
		Limit:  pageSize(req.Limit),
		Offset: max(req.Offset, 0),
	}
	if req.ContentType != "" || req.ContentId != "" {
		target := database.Target{ContentType: req.ContentType, ContentId: req.ContentId}
		if err := target.Validate(); err != nil {
			return nil, err
		}
		filter.Target = &target
	}
	if req.Tag != "" {
		tags, err := database.NormalizeTags([]string{req.Tag})
		if err != nil {
			return nil, err
		}
		if len(tags) != 1 {
			return nil, errorx.NewValidation("invalid tag %q", req.Tag)
		}
		filter.Tag = tags[0]
	}
	logger.Info("list discussions", "tag", filter.Tag, "limit", filter.Limit, "offset", filter.Offset)

	threads, err := l.svcCtx.Store.ListThreads(l.ctx, filter)
	if err != nil {
		logger.Error("list threads", "err", err.Error())
		return nil, err
	}
	resp := &types.ListDiscussionsResp{Discussions: make([]types.DiscussionResp, len(threads))}
	for i := range threads {
		resp.Discussions[i] = discussionResp(&threads[i])
	}
	return resp, nil
}
