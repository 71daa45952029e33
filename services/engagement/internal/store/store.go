package store

import (
	"GoEngage/common/errorx"
	"GoEngage/common/model/database"
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store 评论/点赞/问答/评分的事实存储，冗余计数与事实记录在同一事务内维护
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) DB() *gorm.DB {
	return s.db
}

func (s *Store) Migrate(ctx context.Context) error {
	if err := database.AutoMigrate(s.db.WithContext(ctx)); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

var lockForUpdate = clause.Locking{Strength: "UPDATE"}

// take 查询单条记录，不存在时返回NotFound
func take(tx *gorm.DB, dest interface{}, what string, conds ...interface{}) error {
	err := tx.Take(dest, conds...).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errorx.NewNotFound("%s not found", what)
	}
	if err != nil {
		return fmt.Errorf("query %s: %w", what, err)
	}
	return nil
}

// orphaned 父记录已被删除的回复会被提升为根
func orphaned(tx *gorm.DB, model interface{}, parentId int64) (bool, error) {
	var n int64
	if err := tx.Model(model).Where("id = ?", parentId).Count(&n).Error; err != nil {
		return false, fmt.Errorf("check parent %d: %w", parentId, err)
	}
	return n == 0, nil
}
