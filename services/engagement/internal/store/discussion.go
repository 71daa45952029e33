package store

import (
	"GoEngage/common/errorx"
	"GoEngage/common/model/database"
	"context"
	"fmt"

	"gorm.io/gorm"
)

// ThreadFilter 为空的字段不参与过滤
type ThreadFilter struct {
	Target *database.Target
	Tag    string
	Limit  int
	Offset int
}

func (s *Store) CreateThread(ctx context.Context, thread *database.DiscussionThread) error {
	if err := s.db.WithContext(ctx).Create(thread).Error; err != nil {
		return fmt.Errorf("create thread: %w", err)
	}
	return nil
}

func (s *Store) GetThread(ctx context.Context, id int64) (*database.DiscussionThread, error) {
	thread := &database.DiscussionThread{}
	if err := take(s.db.WithContext(ctx), thread, "thread", id); err != nil {
		return nil, err
	}
	return thread, nil
}

// ListThreads 最新的在前
func (s *Store) ListThreads(ctx context.Context, filter ThreadFilter) ([]database.DiscussionThread, error) {
	query := s.db.WithContext(ctx).Model(&database.DiscussionThread{})
	if filter.Target != nil {
		query = query.Where("content_type = ? AND content_id = ?", filter.Target.ContentType, filter.Target.ContentId)
	}
	if filter.Tag != "" {
		query = query.Where("tags LIKE ?", "%,"+filter.Tag+",%")
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}
	threads := make([]database.DiscussionThread, 0)
	if err := query.Order("created_at desc, id desc").Find(&threads).Error; err != nil {
		return nil, fmt.Errorf("list threads: %w", err)
	}
	return threads, nil
}

// MarkSolved 只有提问者可以标记
func (s *Store) MarkSolved(ctx context.Context, threadId int64, userId int64, solved bool) (*database.DiscussionThread, error) {
	thread := &database.DiscussionThread{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := take(tx.Clauses(lockForUpdate), thread, "thread", threadId); err != nil {
			return err
		}
		if thread.AuthorId != userId {
			return errorx.NewForbidden("thread %d is not yours", threadId)
		}
		if err := tx.Model(thread).Update("is_solved", solved).Error; err != nil {
			return fmt.Errorf("update thread solved: %w", err)
		}
		thread.IsSolved = solved
		return nil
	})
	if err != nil {
		return nil, err
	}
	return thread, nil
}

// IncrementViews 浏览数加一，返回新值
func (s *Store) IncrementViews(ctx context.Context, threadId int64) (int64, error) {
	return s.IncrementCounter(ctx, TableDiscussionThreads, threadId, FieldViewsCount, 1)
}

// ListDiscussionReplies 按创建时间正序
func (s *Store) ListDiscussionReplies(ctx context.Context, threadId int64) ([]database.DiscussionReply, error) {
	replies := make([]database.DiscussionReply, 0)
	err := s.db.WithContext(ctx).
		Where("thread_id = ?", threadId).
		Order("created_at asc, id asc").
		Find(&replies).Error
	if err != nil {
		return nil, fmt.Errorf("list replies of thread %d: %w", threadId, err)
	}
	return replies, nil
}

func (s *Store) GetDiscussionReply(ctx context.Context, id int64) (*database.DiscussionReply, error) {
	reply := &database.DiscussionReply{}
	if err := take(s.db.WithContext(ctx), reply, "reply", id); err != nil {
		return nil, err
	}
	return reply, nil
}

// InsertDiscussionReply 写入回复并在同一事务内给问答帖的回复数加一，返回新的回复数
func (s *Store) InsertDiscussionReply(ctx context.Context, reply *database.DiscussionReply) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := take(tx.Clauses(lockForUpdate), &database.DiscussionThread{}, "thread", reply.ThreadId); err != nil {
			return err
		}
		if reply.ParentId != 0 {
			parent := &database.DiscussionReply{}
			err := take(tx.Clauses(lockForUpdate), parent, "parent reply", reply.ParentId)
			if errorx.Is(err, errorx.NotFound) {
				return errorx.NewValidation("parent reply %d not found", reply.ParentId)
			} else if err != nil {
				return err
			}
			if parent.ThreadId != reply.ThreadId {
				return errorx.NewValidation("parent reply %d belongs to another thread", reply.ParentId)
			}
			if parent.ParentId != 0 {
				promoted, err := orphaned(tx, &database.DiscussionReply{}, parent.ParentId)
				if err != nil {
					return err
				}
				if !promoted {
					return errorx.NewValidation("cannot reply to a reply")
				}
			}
		}
		if err := tx.Create(reply).Error; err != nil {
			return fmt.Errorf("create reply: %w", err)
		}
		var err error
		count, err = incrementCounter(tx, TableDiscussionThreads, reply.ThreadId, FieldRepliesCount, 1)
		return err
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// DeleteDiscussionReply 删除回复及其点赞记录，回复数减一
func (s *Store) DeleteDiscussionReply(ctx context.Context, id int64, authorId int64) (*database.DiscussionReply, int64, error) {
	reply := &database.DiscussionReply{}
	var count int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 与InsertDiscussionReply保持先锁问答帖再锁回复的顺序
		if err := take(tx, reply, "reply", id); err != nil {
			return err
		}
		threadId := reply.ThreadId
		if err := take(tx.Clauses(lockForUpdate), &database.DiscussionThread{}, "thread", threadId); err != nil {
			return err
		}
		if err := take(tx.Clauses(lockForUpdate), reply, "reply", id); err != nil {
			return err
		}
		if reply.ThreadId != threadId {
			return errorx.NewConflict("reply %d moved to another thread", id)
		}
		if reply.AuthorId != authorId {
			return errorx.NewForbidden("reply %d is not yours", id)
		}
		err := tx.Where("business = ? AND target_id = ?", database.BusinessDiscussionReply, id).
			Delete(&database.LikeEdge{}).Error
		if err != nil {
			return fmt.Errorf("delete like edges: %w", err)
		}
		if err = tx.Delete(&database.DiscussionReply{}, id).Error; err != nil {
			return fmt.Errorf("delete reply: %w", err)
		}
		count, err = incrementCounter(tx, TableDiscussionThreads, reply.ThreadId, FieldRepliesCount, -1)
		return err
	})
	if err != nil {
		return nil, 0, err
	}
	return reply, count, nil
}

// MarkHelpful 只有提问者可以把回复标记为有用
func (s *Store) MarkHelpful(ctx context.Context, replyId int64, userId int64, helpful bool) (*database.DiscussionReply, error) {
	reply := &database.DiscussionReply{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := take(tx.Clauses(lockForUpdate), reply, "reply", replyId); err != nil {
			return err
		}
		thread := &database.DiscussionThread{}
		if err := take(tx, thread, "thread", reply.ThreadId); err != nil {
			return err
		}
		if thread.AuthorId != userId {
			return errorx.NewForbidden("thread %d is not yours", thread.Id)
		}
		if err := tx.Model(reply).Update("is_helpful", helpful).Error; err != nil {
			return fmt.Errorf("update reply helpful: %w", err)
		}
		reply.IsHelpful = helpful
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reply, nil
}
