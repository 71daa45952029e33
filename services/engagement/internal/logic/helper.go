package logic

import (
	"GoEngage/common/errorx"
	"GoEngage/common/model/database"
	"GoEngage/common/model/mq"
	"GoEngage/common/util"
	"GoEngage/services/engagement/internal/svc"
	"GoEngage/services/engagement/internal/tree"
	"GoEngage/services/engagement/internal/types"
	"context"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	MaxBodyLen        = 10000
	MaxTitleLen       = 200
	MaxDescriptionLen = 20000

	DefaultPageSize = 20
	MaxPageSize     = 100
)

// requireUser 写操作在访问存储前检查登录状态
func requireUser(ctx context.Context) (int64, error) {
	userId := util.UserIdFrom(ctx)
	if userId == 0 {
		return 0, errorx.ErrUnauthorized
	}
	return userId, nil
}

func normalizeText(s string, what string, max int) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", errorx.NewValidation("%s is empty", what)
	}
	if utf8.RuneCountInString(s) > max {
		return "", errorx.NewValidation("%s longer than %d characters", what, max)
	}
	return s, nil
}

func pageSize(limit int) int {
	if limit <= 0 {
		return DefaultPageSize
	}
	if limit > MaxPageSize {
		return MaxPageSize
	}
	return limit
}

func newId(svcCtx *svc.ServiceContext) (int64, error) {
	id, err := svcCtx.Creator.GetIdWithTimeout(time.Second)
	if err != nil {
		return 0, errorx.New(errorx.Internal, "id_unavailable", err)
	}
	return id, nil
}

// afterCommit 提交后的缓存失效与事件发送不随请求取消
func afterCommit(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), time.Second)
}

func invalidate(ctx context.Context, svcCtx *svc.ServiceContext, logger *slog.Logger, target database.Target) {
	if err := svcCtx.Cache.Invalidate(ctx, target); err != nil {
		logger.Error("invalidate posts cache", "target", target.String(), "err", err.Error())
	}
}

func publish(ctx context.Context, svcCtx *svc.ServiceContext, logger *slog.Logger, msg mq.Message) {
	if err := svcCtx.Publisher.Publish(ctx, msg); err != nil {
		logger.Error("publish event", "type", msg.Type(), "key", msg.Key(), "err", err.Error())
	}
}

func postNode(p database.Post, liked map[int64]bool) *types.CommentNode {
	return &types.CommentNode{
		Id:         p.Id,
		AuthorId:   p.AuthorId,
		ParentId:   p.ParentId,
		Body:       p.Body,
		LikesCount: p.LikesCount,
		Liked:      liked[p.Id],
		IsHelpful:  p.IsHelpful,
		CreatedAt:  p.CreatedAt.UnixMilli(),
		UpdatedAt:  p.UpdatedAt.UnixMilli(),
		Replies:    []*types.CommentNode{},
	}
}

func replyNode(r database.DiscussionReply, liked map[int64]bool) *types.CommentNode {
	return &types.CommentNode{
		Id:         r.Id,
		AuthorId:   r.AuthorId,
		ParentId:   r.ParentId,
		Body:       r.Body,
		LikesCount: r.LikesCount,
		Liked:      liked[r.Id],
		IsHelpful:  r.IsHelpful,
		CreatedAt:  r.CreatedAt.UnixMilli(),
		UpdatedAt:  r.UpdatedAt.UnixMilli(),
		Replies:    []*types.CommentNode{},
	}
}

func toNodes[T tree.Item](roots []*tree.Node[T], convert func(T) *types.CommentNode) []*types.CommentNode {
	res := make([]*types.CommentNode, len(roots))
	for i, r := range roots {
		res[i] = convert(r.Value)
		res[i].Replies = toNodes(r.Replies, convert)
	}
	return res
}

func ratingResp(r *database.Rating) types.RatingResp {
	return types.RatingResp{
		Id:          r.Id,
		UserId:      r.UserId,
		ContentType: r.ContentType,
		ContentId:   r.ContentId,
		Stars:       r.Stars,
		ReviewText:  r.ReviewText,
		CreatedAt:   r.CreatedAt.UnixMilli(),
		UpdatedAt:   r.UpdatedAt.UnixMilli(),
	}
}

func discussionResp(t *database.DiscussionThread) types.DiscussionResp {
	return types.DiscussionResp{
		Id:           t.Id,
		AuthorId:     t.AuthorId,
		ContentType:  t.ContentType,
		ContentId:    t.ContentId,
		Title:        t.Title,
		Description:  t.Description,
		Tags:         t.TagList(),
		IsSolved:     t.IsSolved,
		ViewsCount:   t.ViewsCount,
		RepliesCount: t.RepliesCount,
		CreatedAt:    t.CreatedAt.UnixMilli(),
		UpdatedAt:    t.UpdatedAt.UnixMilli(),
	}
}
