package logic

import (
	"GoEngage/common/model/database"
	"GoEngage/common/model/mq"
	"GoEngage/common/util"
	"GoEngage/services/engagement/internal/svc"
	"GoEngage/services/engagement/internal/types"
	"context"
)

type CreateDiscussionLogic struct {
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewCreateDiscussionLogic(ctx context.Context, svcCtx *svc.ServiceContext) *CreateDiscussionLogic {
	return &CreateDiscussionLogic{
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *CreateDiscussionLogic) CreateDiscussion(req *types.CreateDiscussionReq) (*types.DiscussionResp, error) {
	userId, err := requireUser(l.ctx)
	if err != nil {
		return nil, err
	}
	logger := util.SetTrace(l.ctx, l.svcCtx.Logger)
	target := database.Target{ContentType: req.ContentType, ContentId: req.ContentId}
	if err = target.Validate(); err != nil {
		return nil, err
	}
	title, err := normalizeText(req.Title, "title", MaxTitleLen)
	if err != nil {
		return nil, err
	}
	description, err := normalizeText(req.Description, "description", MaxDescriptionLen)
	if err != nil {
		return nil, err
	}
	tags, err := database.NormalizeTags(req.Tags)
	if err != nil {
		return nil, err
	}
	logger.Info("user create discussion", "userId", userId, "target", target.String(), "tags", tags)

	id, err := newId(l.svcCtx)
	if err != nil {
		logger.Error("get unique id failed", "err", err.Error())
		return nil, err
	}
	thread := &database.DiscussionThread{
		Id:          id,
		AuthorId:    userId,
		ContentType: target.ContentType,
		ContentId:   target.ContentId,
		Title:       title,
		Description: description,
		Tags:        database.JoinTags(tags),
	}
	if err = l.svcCtx.Store.CreateThread(l.ctx, thread); err != nil {
		logger.Error("create thread", "err", err.Error())
		return nil, err
	}

	ctx, cancel := afterCommit(l.ctx)
	defer cancel()
	publish(ctx, l.svcCtx, logger, mq.DiscussionKafkaJson{
		Id:          thread.Id,
		UserId:      userId,
		ContentType: thread.ContentType,
		ContentId:   thread.ContentId,
		Tags:        tags,
		TimeStamp:   thread.CreatedAt.Unix(),
	})
	resp := discussionResp(thread)
	return &resp, nil
}
