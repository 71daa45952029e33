package store

import (
	"GoEngage/common/errorx"
	"GoEngage/common/model/database"
	"context"
	"fmt"

	"gorm.io/gorm"
)

// ListPosts 按创建时间正序返回目标下全部评论与回复
func (s *Store) ListPosts(ctx context.Context, target database.Target) ([]database.Post, error) {
	posts := make([]database.Post, 0)
	err := s.db.WithContext(ctx).
		Where("content_type = ? AND content_id = ?", target.ContentType, target.ContentId).
		Order("created_at asc, id asc").
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("list posts of %s: %w", target, err)
	}
	return posts, nil
}

func (s *Store) GetPost(ctx context.Context, id int64) (*database.Post, error) {
	post := &database.Post{}
	if err := take(s.db.WithContext(ctx), post, "post", id); err != nil {
		return nil, err
	}
	return post, nil
}

// InsertPost 回复只能挂在同一目标下的根评论上
func (s *Store) InsertPost(ctx context.Context, post *database.Post) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if post.ParentId != 0 {
			parent := &database.Post{}
			// 锁父评论，避免与删除并发
			if err := take(tx.Clauses(lockForUpdate), parent, "parent post", post.ParentId); err != nil {
				if errorx.Is(err, errorx.NotFound) {
					return errorx.NewValidation("parent post %d not found", post.ParentId)
				}
				return err
			}
			if parent.ContentType != post.ContentType || parent.ContentId != post.ContentId {
				return errorx.NewValidation("parent post %d belongs to another target", post.ParentId)
			}
			if !parent.IsRoot() {
				// 父评论的根已删除时它在树中显示为根，允许回复
				promoted, err := orphaned(tx, &database.Post{}, parent.ParentId)
				if err != nil {
					return err
				}
				if !promoted {
					return errorx.NewValidation("cannot reply to a reply")
				}
			}
		}
		if err := tx.Create(post).Error; err != nil {
			return fmt.Errorf("create post: %w", err)
		}
		return nil
	})
}

// UpdatePostBody 只有作者本人可以修改
func (s *Store) UpdatePostBody(ctx context.Context, id int64, authorId int64, body string) (*database.Post, error) {
	post := &database.Post{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := take(tx.Clauses(lockForUpdate), post, "post", id); err != nil {
			return err
		}
		if post.AuthorId != authorId {
			return errorx.NewForbidden("post %d is not yours", id)
		}
		if err := tx.Model(post).Update("body", body).Error; err != nil {
			return fmt.Errorf("update post body: %w", err)
		}
		post.Body = body
		return nil
	})
	if err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost 删除评论及其点赞记录，回复保留，组装时作为孤儿提升为根
func (s *Store) DeletePost(ctx context.Context, id int64, authorId int64) (*database.Post, error) {
	post := &database.Post{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := take(tx.Clauses(lockForUpdate), post, "post", id); err != nil {
			return err
		}
		if post.AuthorId != authorId {
			return errorx.NewForbidden("post %d is not yours", id)
		}
		err := tx.Where("business = ? AND target_id = ?", database.BusinessComment, id).
			Delete(&database.LikeEdge{}).Error
		if err != nil {
			return fmt.Errorf("delete like edges: %w", err)
		}
		if err := tx.Delete(&database.Post{}, id).Error; err != nil {
			return fmt.Errorf("delete post: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return post, nil
}
