package logic

import (
	"GoEngage/common/errorx"
	"GoEngage/common/model/database"
	"GoEngage/common/util"
	"GoEngage/services/engagement/internal/svc"
	"GoEngage/services/engagement/internal/tree"
	"GoEngage/services/engagement/internal/types"
	"context"

	"github.com/samber/lo"
)

type LoadTreeLogic struct {
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewLoadTreeLogic(ctx context.Context, svcCtx *svc.ServiceContext) *LoadTreeLogic {
	return &LoadTreeLogic{
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// LoadTree 组装目标下的评论树，登录用户附带点赞状态
func (l *LoadTreeLogic) LoadTree(req *types.LoadTreeReq) (*types.LoadTreeResp, error) {
	logger := util.SetTrace(l.ctx, l.svcCtx.Logger)
	target := database.Target{ContentType: req.ContentType, ContentId: req.ContentId}
	if err := target.Validate(); err != nil {
		return nil, err
	}
	if !tree.ValidOrder(req.Order) {
		return nil, errorx.NewValidation("unknown order %q", req.Order)
	}
	userId := util.UserIdFrom(l.ctx)
	logger.Info("user load comment tree", "target", target.String(), "userId", userId, "order", req.Order)

	posts, err := l.svcCtx.Cache.Posts(l.ctx, target, func(ctx context.Context) ([]database.Post, error) {
		return l.svcCtx.Store.ListPosts(ctx, target)
	})
	if err != nil {
		logger.Error("load posts", "err", err.Error())
		return nil, err
	}

	liked := map[int64]bool{}
	if userId != 0 && len(posts) > 0 {
		ids := lo.Map(posts, func(p database.Post, _ int) int64 { return p.Id })
		liked, err = l.svcCtx.Store.ListLikedIds(l.ctx, database.BusinessComment, ids, userId)
		if err != nil {
			logger.Error("list liked comments", "err", err.Error())
			return nil, err
		}
	}

	roots, err := tree.OrderRoots(tree.Assemble(posts), req.Order, func(p database.Post) int64 {
		return p.LikesCount
	})
	if err != nil {
		return nil, err
	}
	order := req.Order
	if order == "" {
		order = tree.OrderOldest
	}
	logger.Debug("comment tree assembled", "posts", len(posts), "roots", len(roots))
	return &types.LoadTreeResp{
		ContentType: target.ContentType,
		ContentId:   target.ContentId,
		Order:       order,
		Total:       len(posts),
		Comments: toNodes(roots, func(p database.Post) *types.CommentNode {
			return postNode(p, liked)
		}),
	}, nil
}
