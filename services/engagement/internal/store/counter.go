package store

import (
	"GoEngage/common/errorx"
	"context"
	"fmt"

	"gorm.io/gorm"
)

const (
	TablePosts             = "posts"
	TableDiscussionThreads = "discussion_threads"
	TableDiscussionReplies = "discussion_replies"

	FieldLikesCount   = "likes_count"
	FieldViewsCount   = "views_count"
	FieldRepliesCount = "replies_count"
)

// 允许自增的计数字段，表名与字段名会拼进sql
var counters = map[string]map[string]bool{
	TablePosts:             {FieldLikesCount: true},
	TableDiscussionReplies: {FieldLikesCount: true},
	TableDiscussionThreads: {FieldViewsCount: true, FieldRepliesCount: true},
}

func checkCounter(table, field string) error {
	if !counters[table][field] {
		return errorx.NewValidation("counter %s.%s is not allowed", table, field)
	}
	return nil
}

// IncrementCounter 原子地给计数加上delta并返回新值
func (s *Store) IncrementCounter(ctx context.Context, table string, id int64, field string, delta int64) (int64, error) {
	if err := checkCounter(table, field); err != nil {
		return 0, err
	}
	var value int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		value, err = incrementCounter(tx, table, id, field, delta)
		return err
	})
	return value, err
}

// incrementCounter 调用方负责校验table与field
func incrementCounter(tx *gorm.DB, table string, id int64, field string, delta int64) (int64, error) {
	res := tx.Table(table).
		Where("id = ? AND "+field+" + ? >= 0", id, delta).
		Update(field, gorm.Expr(field+" + ?", delta))
	if res.Error != nil {
		return 0, fmt.Errorf("update %s.%s: %w", table, field, res.Error)
	}
	if res.RowsAffected == 0 {
		var n int64
		if err := tx.Table(table).Where("id = ?", id).Count(&n).Error; err != nil {
			return 0, fmt.Errorf("count %s: %w", table, err)
		}
		if n == 0 {
			return 0, errorx.NewNotFound("%s %d not found", table, id)
		}
		return 0, errorx.NewConflict("%s.%s of %d would become negative", table, field, id)
	}
	return readCounter(tx, table, id, field)
}

func readCounter(tx *gorm.DB, table string, id int64, field string) (int64, error) {
	var value int64
	err := tx.Table(table).Select(field).Where("id = ?", id).Row().Scan(&value)
	if err != nil {
		return 0, fmt.Errorf("read %s.%s: %w", table, field, err)
	}
	return value, nil
}
