package logic

import (
	"GoEngage/common/model/database"
	"GoEngage/common/util"
	"GoEngage/services/engagement/internal/svc"
	"GoEngage/services/engagement/internal/types"
	"context"
)

type EditCommentLogic struct {
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewEditCommentLogic(ctx context.Context, svcCtx *svc.ServiceContext) *EditCommentLogic {
	return &EditCommentLogic{
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *EditCommentLogic) EditComment(req *types.EditCommentReq) (*types.CommentNode, error) {
	userId, err := requireUser(l.ctx)
	if err != nil {
		return nil, err
	}
	logger := util.SetTrace(l.ctx, l.svcCtx.Logger)
	body, err := normalizeText(req.Body, "body", MaxBodyLen)
	if err != nil {
		return nil, err
	}
	logger.Info("user edit comment", "userId", userId, "commentId", req.Id)

	post, err := l.svcCtx.Store.UpdatePostBody(l.ctx, req.Id, userId, body)
	if err != nil {
		logger.Info("update post body", "err", err.Error())
		return nil, err
	}

	ctx, cancel := afterCommit(l.ctx)
	defer cancel()
	invalidate(ctx, l.svcCtx, logger, database.Target{ContentType: post.ContentType, ContentId: post.ContentId})
	return postNode(*post, nil), nil
}
