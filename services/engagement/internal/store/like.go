package store

import (
	"GoEngage/common/errorx"
	"GoEngage/common/model/database"
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LikeResult 点赞状态变更后的结果
type LikeResult struct {
	Liked      bool
	LikesCount int64
	// Changed 本次调用是否改变了状态
	Changed bool
	Owner   LikeOwner
}

// LikeOwner 被点赞对象所在的位置，用于失效缓存与发送事件
type LikeOwner struct {
	Target   database.Target
	ThreadId int64
}

func likeTable(business int) (string, error) {
	switch business {
	case database.BusinessComment:
		return TablePosts, nil
	case database.BusinessDiscussionReply:
		return TableDiscussionReplies, nil
	}
	return "", errorx.NewValidation("unknown like business %d", business)
}

// lockLikeTarget 锁住被点赞的行，同一目标的点赞串行执行
func lockLikeTarget(tx *gorm.DB, business int, id int64) (LikeOwner, error) {
	switch business {
	case database.BusinessComment:
		post := &database.Post{}
		if err := take(tx.Clauses(lockForUpdate), post, "post", id); err != nil {
			return LikeOwner{}, err
		}
		return LikeOwner{Target: database.Target{ContentType: post.ContentType, ContentId: post.ContentId}}, nil
	case database.BusinessDiscussionReply:
		reply := &database.DiscussionReply{}
		if err := take(tx.Clauses(lockForUpdate), reply, "reply", id); err != nil {
			return LikeOwner{}, err
		}
		return LikeOwner{ThreadId: reply.ThreadId}, nil
	}
	return LikeOwner{}, errorx.NewValidation("unknown like business %d", business)
}

// ListLikedIds 返回ids中该用户点过赞的部分
func (s *Store) ListLikedIds(ctx context.Context, business int, ids []int64, userId int64) (map[int64]bool, error) {
	liked := make(map[int64]bool)
	if len(ids) == 0 || userId == 0 {
		return liked, nil
	}
	targets := make([]int64, 0)
	err := s.db.WithContext(ctx).Model(&database.LikeEdge{}).
		Where("business = ? AND user_id = ? AND target_id IN ?", business, userId, ids).
		Pluck("target_id", &targets).Error
	if err != nil {
		return nil, fmt.Errorf("list liked ids: %w", err)
	}
	for _, id := range targets {
		liked[id] = true
	}
	return liked, nil
}

// ToggleLike 翻转点赞状态
func (s *Store) ToggleLike(ctx context.Context, business int, userId int64, targetId int64) (*LikeResult, error) {
	return s.changeLike(ctx, business, userId, targetId, func(current database.LikeState) database.LikeState {
		return !current
	})
}

// SetLike 设置为指定状态，重复调用无副作用
func (s *Store) SetLike(ctx context.Context, business int, userId int64, targetId int64, state database.LikeState) (*LikeResult, error) {
	return s.changeLike(ctx, business, userId, targetId, func(database.LikeState) database.LikeState {
		return state
	})
}

func (s *Store) changeLike(ctx context.Context, business int, userId int64, targetId int64,
	next func(current database.LikeState) database.LikeState) (*LikeResult, error) {
	if userId == 0 {
		return nil, errorx.ErrUnauthorized
	}
	table, err := likeTable(business)
	if err != nil {
		return nil, err
	}

	res := &LikeResult{}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		owner, err := lockLikeTarget(tx, business, targetId)
		if err != nil {
			return err
		}
		res.Owner = owner

		edge := tx.Model(&database.LikeEdge{}).
			Where("business = ? AND user_id = ? AND target_id = ?", business, userId, targetId)
		var n int64
		if err = edge.Count(&n).Error; err != nil {
			return fmt.Errorf("query like edge: %w", err)
		}
		current := database.LikeState(n > 0)
		want := next(current)

		var delta int64
		switch {
		case want == current:
		case want == database.Liked:
			created := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&database.LikeEdge{
				Business: business,
				UserId:   userId,
				TargetId: targetId,
			})
			if created.Error != nil {
				return fmt.Errorf("create like edge: %w", created.Error)
			}
			// 并发插入被唯一索引挡住，视为已点赞
			if created.RowsAffected > 0 {
				delta = 1
			}
		default:
			deleted := tx.Where("business = ? AND user_id = ? AND target_id = ?", business, userId, targetId).
				Delete(&database.LikeEdge{})
			if deleted.Error != nil {
				return fmt.Errorf("delete like edge: %w", deleted.Error)
			}
			if deleted.RowsAffected > 0 {
				delta = -1
			}
		}

		res.Liked = bool(want)
		res.Changed = delta != 0
		if delta == 0 {
			res.LikesCount, err = readCounter(tx, table, targetId, FieldLikesCount)
			return err
		}
		res.LikesCount, err = incrementCounter(tx, table, targetId, FieldLikesCount, delta)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// CountLikeEdges 点赞记录数，即likes_count应有的值
func (s *Store) CountLikeEdges(ctx context.Context, business int, targetId int64) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&database.LikeEdge{}).
		Where("business = ? AND target_id = ?", business, targetId).
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("count like edges: %w", err)
	}
	return n, nil
}
