package logic

import (
	"GoEngage/common/errorx"
	"GoEngage/common/model/database"
	"GoEngage/common/model/mq"
	"GoEngage/common/util"
	"GoEngage/services/engagement/internal/svc"
	"GoEngage/services/engagement/internal/types"
	"context"
)

type CommentLogic struct {
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewCommentLogic(ctx context.Context, svcCtx *svc.ServiceContext) *CommentLogic {
	return &CommentLogic{
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// Comment ParentId为0时发表根评论，否则回复一条根评论
func (l *CommentLogic) Comment(req *types.CommentReq) (*types.CommentNode, error) {
	userId, err := requireUser(l.ctx)
	if err != nil {
		return nil, err
	}
	logger := util.SetTrace(l.ctx, l.svcCtx.Logger)
	target := database.Target{ContentType: req.ContentType, ContentId: req.ContentId}
	if err = target.Validate(); err != nil {
		return nil, err
	}
	if req.ParentId < 0 {
		return nil, errorx.NewValidation("invalid parent id %d", req.ParentId)
	}
	body, err := normalizeText(req.Body, "body", MaxBodyLen)
	if err != nil {
		return nil, err
	}
	logger.Info("user comment", "userId", userId, "target", target.String(), "parentId", req.ParentId)

	id, err := newId(l.svcCtx)
	if err != nil {
		logger.Error("get unique id failed", "err", err.Error())
		return nil, err
	}
	post := &database.Post{
		Id:          id,
		AuthorId:    userId,
		ContentType: target.ContentType,
		ContentId:   target.ContentId,
		ParentId:    req.ParentId,
		Body:        body,
	}
	if err = l.svcCtx.Store.InsertPost(l.ctx, post); err != nil {
		logger.Info("insert post", "err", err.Error())
		return nil, err
	}

	ctx, cancel := afterCommit(l.ctx)
	defer cancel()
	invalidate(ctx, l.svcCtx, logger, target)
	publish(ctx, l.svcCtx, logger, mq.CommentKafkaJson{
		Id:          post.Id,
		UserId:      userId,
		ContentType: post.ContentType,
		ContentId:   post.ContentId,
		ParentId:    post.ParentId,
		TimeStamp:   post.CreatedAt.Unix(),
	})
	return postNode(*post, nil), nil
}
