package logic

import (
	"GoEngage/common/model/database"
	"GoEngage/common/model/mq"
	"GoEngage/common/util"
	"GoEngage/services/engagement/internal/metrics"
	"GoEngage/services/engagement/internal/rating"
	"GoEngage/services/engagement/internal/svc"
	"GoEngage/services/engagement/internal/types"
	"context"
	"strconv"
)

type SubmitRatingLogic struct {
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewSubmitRatingLogic(ctx context.Context, svcCtx *svc.ServiceContext) *SubmitRatingLogic {
	return &SubmitRatingLogic{
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// SubmitRating 重复提交会覆盖星级与评价
func (l *SubmitRatingLogic) SubmitRating(req *types.SubmitRatingReq) (*types.RatingResp, error) {
	userId, err := requireUser(l.ctx)
	if err != nil {
		return nil, err
	}
	logger := util.SetTrace(l.ctx, l.svcCtx.Logger)
	target := database.Target{ContentType: req.ContentType, ContentId: req.ContentId}
	if err = target.Validate(); err != nil {
		return nil, err
	}
	if err = rating.ValidateStars(req.Stars); err != nil {
		return nil, err
	}
	review, err := rating.NormalizeReview(req.ReviewText)
	if err != nil {
		return nil, err
	}
	logger.Info("user submit rating", "userId", userId, "target", target.String(), "stars", req.Stars)

	id, err := newId(l.svcCtx)
	if err != nil {
		logger.Error("get unique id failed", "err", err.Error())
		return nil, err
	}
	r, err := l.svcCtx.Store.UpsertRating(l.ctx, &database.Rating{
		Id:          id,
		UserId:      userId,
		ContentType: target.ContentType,
		ContentId:   target.ContentId,
		Stars:       req.Stars,
		ReviewText:  review,
	})
	if err != nil {
		logger.Error("upsert rating", "err", err.Error())
		return nil, err
	}
	metrics.RatingsSubmitted.WithLabelValues(strconv.Itoa(r.Stars)).Inc()

	ctx, cancel := afterCommit(l.ctx)
	defer cancel()
	publish(ctx, l.svcCtx, logger, mq.RatingKafkaJson{
		Id:          r.Id,
		UserId:      userId,
		ContentType: r.ContentType,
		ContentId:   r.ContentId,
		Stars:       r.Stars,
		TimeStamp:   r.UpdatedAt.Unix(),
	})
	resp := ratingResp(r)
	return &resp, nil
}
